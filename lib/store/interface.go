package store

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the generic interface for interacting with a key-value store.
// All write operations return only an error (nil on success), while read
// operations return the requested data along with an error (nil on success).
//
// Whole-entry replace is the only write granularity: there are no partial
// updates of a stored value.
type IStore interface {
	// List enumerates all keys currently present in the store.
	List() (keys []string, err error)
	// Read returns the raw stored bytes for a key.
	// The boolean return value indicates whether an entry for the key was found.
	Read(key string) (value []byte, loaded bool, err error)
	// Write inserts or replaces the entry for a key atomically: after Write
	// returns, either the new content is fully in place or - on error - the
	// previous content is untouched.
	Write(key string, value []byte) (err error)
	// Delete removes the entry for a key. Deleting an absent key is a no-op.
	Delete(key string) (err error)
	// Has returns whether an entry for the key exists in the store.
	Has(key string) (loaded bool, err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
//
// The Recoverable method partitions the error space: only out-of-space
// conditions are recoverable (the caller may free disk space and retry),
// everything else means the store can no longer be trusted and the caller
// is expected to stop using it.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Recoverable returns whether the caller may retry the failed operation.
func (e *Error) Recoverable() bool {
	return e.Code == RetCOutOfSpace
}

// NewError creates a new store Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// NewErrorf creates a new store Error with the given code and a formatted message.
func NewErrorf(code RetCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidDirectory                // 2: Store directory is missing, not a directory or not writable.
	RetCInvalidEncoding                 // 3: A filename in the store directory does not decode to a valid key.
	RetCOutOfSpace                      // 4: Not enough free space on the store's volume for the write.
	RetCCorruptValue                    // 5: A stored value could not be decoded.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidDirectory:
		return "InvalidDirectory"
	case RetCInvalidEncoding:
		return "InvalidEncoding"
	case RetCOutOfSpace:
		return "OutOfSpace"
	case RetCCorruptValue:
		return "CorruptValue"
	default:
		return "Unknown"
	}
}
