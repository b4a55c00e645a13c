package box

// --------------------------------------------------------------------------
// Capability Interfaces
// --------------------------------------------------------------------------

// IBox is the capability interface for a single persisted value. A box loads
// its entry once, serves all further access from memory and writes every
// mutation back through its store.
type IBox[T any] interface {
	// Key returns the store key this box is bound to.
	Key() string
	// Access runs fn with mutable access to the cached value and persists
	// the value afterwards, on every exit path. See Box.Access for the full
	// contract.
	Access(fn func(value *T) error) error
}

// IDictionary is the capability interface for a persisted key-value mapping.
// Every operation runs a full access cycle on the underlying value: the
// whole mapping is loaded, one entry is touched, the whole mapping is
// written back. This O(mapping size) cost per operation is the intended
// trade-off for small config/state dictionaries; implementations must not
// silently switch to per-entry persistence.
type IDictionary[K comparable, V any] interface {
	// Get returns the value for an entry. The boolean return value
	// indicates whether the entry was found.
	Get(key K) (value V, loaded bool, err error)
	// Set inserts or updates an entry.
	Set(key K, value V) (err error)
	// GetOrInsert returns the value for an entry, inserting and persisting
	// def first if the entry does not exist.
	GetOrInsert(key K, def V) (value V, err error)
	// Delete removes an entry. The boolean return value indicates whether
	// the entry existed.
	Delete(key K) (loaded bool, err error)
	// Len returns the number of entries.
	Len() (n int, err error)
	// Keys returns all entry keys in unspecified order.
	Keys() (keys []K, err error)
}

// --------------------------------------------------------------------------
// Error Handler
// --------------------------------------------------------------------------

// ErrorHandler is invoked when persisting a box value fails with a
// recoverable error (out of space). It receives a description of the
// failure. Returning true retries the write - indefinitely, as long as the
// handler keeps returning true. Returning false gives up, which is
// unrecoverable for the box: the in-memory value has already advanced past
// the persisted state.
type ErrorHandler func(description string) bool
