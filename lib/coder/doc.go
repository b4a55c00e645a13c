// Package coder provides value serialization for boxes. It defines a common
// interface and multiple implementations for encoding a logical value into
// the bytes stored under one key and decoding them back.
//
// Key Components:
//
//   - ICoder: Core interface that all coder implementations must satisfy.
//
//   - jsonCoderImpl: Implementation using JSON encoding. This is the default
//     because stored entries remain human-readable and diffable on disk.
//
//   - gobCoderImpl: Implementation using Go's built-in gob encoding. Supports
//     a wider range of Go types than JSON but produces opaque bytes.
//
// A value that fails to encode, or a stored entry that fails to decode,
// indicates a programming error or corrupted data. Callers at the box layer
// treat both as unrecoverable.
//
// Thread Safety:
//
//	All coder implementations are stateless and safe for concurrent use.
package coder
