// Package box provides durable, cached application state on top of the
// store.IStore persistence layer. A box binds one store key to one typed Go
// value: the value is loaded and decoded once, served from memory afterwards
// and re-persisted on every mutation.
//
// The package focuses on:
//   - A scoped read-modify-write accessor as the single mutation primitive,
//     guaranteeing that the persisted entry always equals the encoded cache
//     after a successful access
//   - Persistence on every exit path: even when the accessor function fails,
//     the post-mutation state is written before the error is re-propagated
//   - An injectable retry policy for the one recoverable failure mode
//     (out of space), with explicit escalation to an unrecoverable error
//     when retrying is declined
//
// Key Components:
//
//   - Box[T]: The value box. Created either with a default (New, which
//     persists the default immediately when no entry exists) or as a probe
//     (Open, which reports absence instead). The generic Access function
//     variant returns a result value out of the accessor closure.
//
//   - Dictionary[K,V]: A box specialized for a key-value mapping with
//     per-entry operations (Get, Set, GetOrInsert, Delete, Len, Keys). Each
//     operation runs a full access cycle: whole mapping in, one entry
//     touched, whole mapping out. The O(mapping size) cost per operation is
//     a deliberate simplicity trade-off for small state dictionaries.
//
//   - IBox / IDictionary: Capability interfaces for code that accepts any
//     box-like collaborator.
//
//   - ErrorHandler: The retry/fatal decision hook for recoverable write
//     failures.
//
// Error semantics follow the store package: everything except out-of-space
// is unrecoverable, and a box whose persist was abandoned reports an
// unrecoverable error because its cache has advanced past the persisted
// state. Coder failures in either direction are unrecoverable as well.
//
// Thread Safety:
//
//	Boxes perform no internal locking and start no background goroutines;
//	every mutation is synchronous. Each box is meant to be driven by one
//	logical owner at a time. Concurrent use of the same key through
//	multiple boxes or processes requires external synchronization.
package box
