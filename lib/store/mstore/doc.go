// Package mstore implements an ephemeral, in-memory key-value store based
// on the store.IStore interface. It is backed by a concurrent map and never
// touches the filesystem, which makes every operation infallible.
//
// The implementation copies values on read and write, so callers can never
// corrupt stored entries through shared slices - matching the isolation a
// file-backed store gives for free.
//
// Intended uses:
//   - Fast test double for code written against store.IStore
//   - Ephemeral state that is rebuilt on startup anyway
package mstore
