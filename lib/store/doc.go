// Package store defines the interface and error model for durable key-value
// persistence. It is the contract between the storage backends and the box
// layer built on top of them.
//
// The package focuses on:
//   - A unified interface (IStore) for whole-entry key-value operations
//     across different backends
//   - A structured error system using typed return codes that lets callers
//     distinguish the one recoverable condition (out of space) from
//     unrecoverable store failures
//
// Key Components:
//
//   - IStore Interface: The core abstraction defining list, read, write,
//     delete and existence operations. Writes replace the whole entry
//     atomically; there are no partial updates and no cross-entry
//     transactions.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes (RetCode) and descriptive messages. Error.Recoverable partitions
//     failures: RetCOutOfSpace may be retried after freeing space, every
//     other code means the store's integrity assumptions no longer hold and
//     the caller should stop, not retry.
//
// Implementations:
//
//	The repository includes two implementations of the IStore interface:
//
//	- File store (fstore): A directory-backed store where every entry is one
//	  file. Writes are crash-safe via temp-file-plus-rename and guarded by a
//	  free-space preflight check. This is the durable backend.
//	  Available in the "github.com/ValentinKolb/fsbox/lib/store/fstore" package.
//
//	- Memory store (mstore): A process-local, ephemeral implementation backed
//	  by a concurrent map. Useful as a fast test double and for state that
//	  does not need to survive a restart.
//	  Available in the "github.com/ValentinKolb/fsbox/lib/store/mstore" package.
//
// This interface-driven approach allows applications to:
//   - Switch between durable and ephemeral storage without code changes
//   - Handle errors in a consistent and type-safe manner across implementations
//   - Test persistence logic against an in-memory backend
package store
