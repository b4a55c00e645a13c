// Package fstore implements a durable, directory-backed key-value store
// based on the store.IStore interface. Every entry is one file; the file
// content is the raw stored bytes of exactly one key.
//
// Key Features:
//   - Atomic whole-entry replacement via staging file plus rename, so a
//     crash mid-write never leaves a torn entry behind
//   - Free-space preflight with a fixed safety margin (default 8 MiB) that
//     turns disk pressure into an early, recoverable RetCOutOfSpace error
//     instead of a partial write
//   - Injective key-to-filename mapping through a pluggable keycodec, with
//     a configurable prefix separating store entries from unrelated files
//   - Constructor-time validation of the target directory (existence and
//     writability, probed with a throwaway file)
//
// Implementation Details:
//
//   - Atomicity: Writes land in a dot-prefixed staging file in the store
//     directory itself (never a different volume) and are moved into place
//     with os.Rename. Readers either see the previous entry or the complete
//     new one. There is no write-ahead log; each entry is independently
//     atomic and no cross-entry transaction is offered.
//
//   - Integrity policy: List treats a file that carries the store prefix
//     but does not decode to a key as an unrecoverable RetCInvalidEncoding
//     error. The store assumes exclusive ownership of its prefix; foreign
//     or corrupted names are surfaced, not skipped.
//
//   - Error model: Beyond "entry not found" (reported via the loaded flag)
//     and out-of-space (recoverable), every filesystem failure is reported
//     as an unrecoverable store.Error. The store does not attempt to repair
//     or defend against a corrupted directory.
//
// Thread Safety:
//
//	The store performs no internal locking. Each store (and each box bound
//	to it) is meant to be driven by one logical owner at a time; the only
//	cross-process guarantee is the atomicity of a single rename.
package fstore
