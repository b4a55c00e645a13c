package fstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/ValentinKolb/fsbox/lib/keycodec"
	"github.com/ValentinKolb/fsbox/lib/logger"
	"github.com/ValentinKolb/fsbox/lib/store"
)

var log = logger.GetLogger("fstore")

// --------------------------------------------------------------------------
// Constants and Options
// --------------------------------------------------------------------------

const (
	// defaultPrefix marks the files owned by a store and separates them from
	// unrelated files sharing the same directory
	defaultPrefix = "store-"

	// defaultSafetyMargin is the free-space headroom (beyond the exact byte
	// count being written) required before a write is attempted
	defaultSafetyMargin = 8 * 1024 * 1024

	// tmpPattern is the name pattern for staging files. It starts with a dot
	// so staged files can never be mistaken for entries of any prefix.
	tmpPattern = ".tmp-*"
)

// StoreOptions configures the file store behavior during initialization
type StoreOptions struct {
	Prefix       string            // Filename prefix for entries (empty = use default: "store-")
	KeyCodec     keycodec.IKeyCodec // Codec mapping keys to filenames (nil = use default: base64)
	SafetyMargin uint64            // Free-space headroom in bytes (0 = use default: 8 MiB)
}

// DefaultOptions returns the default file store options
func DefaultOptions() *StoreOptions {
	return &StoreOptions{
		Prefix:       defaultPrefix,
		KeyCodec:     keycodec.NewBase64KeyCodec(),
		SafetyMargin: defaultSafetyMargin,
	}
}

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

var (
	metricLists      = metrics.NewCounter(`fsbox_store_lists_total`)
	metricReads      = metrics.NewCounter(`fsbox_store_reads_total`)
	metricWrites     = metrics.NewCounter(`fsbox_store_writes_total`)
	metricDeletes    = metrics.NewCounter(`fsbox_store_deletes_total`)
	metricHas        = metrics.NewCounter(`fsbox_store_has_total`)
	metricOutOfSpace = metrics.NewCounter(`fsbox_store_out_of_space_total`)
)

// --------------------------------------------------------------------------
// Store Implementation
// --------------------------------------------------------------------------

type fileStoreImpl struct {
	dir    string
	prefix string
	codec  keycodec.IKeyCodec
	margin uint64

	// freeSpace reports the available bytes on the volume holding dir.
	// Replaceable so tests can simulate disk pressure.
	freeSpace func(dir string) (uint64, error)
}

// NewFileStore creates a new file-backed store rooted at dir with the
// specified options (optional).
//
// Every entry is one file named <prefix><encoded-key> in dir. The directory
// must already exist and be writable; this is probed with a throwaway file
// so a misconfigured target fails at construction time instead of on the
// first write.
//
// Thread-safety: The returned store performs no internal locking. Concurrent
// use across processes is limited to the atomicity of a single write's
// rename step; callers needing more must synchronize externally.
func NewFileStore(dir string, opts *StoreOptions) (store.IStore, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	codec := opts.KeyCodec
	if codec == nil {
		codec = keycodec.NewBase64KeyCodec()
	}
	margin := opts.SafetyMargin
	if margin == 0 {
		margin = defaultSafetyMargin
	}

	if err := probeDirectory(dir); err != nil {
		return nil, err
	}

	log.Debugf("created file store at %s (prefix=%q)", dir, prefix)

	return &fileStoreImpl{
		dir:       dir,
		prefix:    prefix,
		codec:     codec,
		margin:    margin,
		freeSpace: availableSpace,
	}, nil
}

// probeDirectory verifies that dir exists, is a directory and is writable
// by creating and deleting a throwaway file
func probeDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return store.NewErrorf(store.RetCInvalidDirectory, "cannot stat store directory %s: %v", dir, err)
	}
	if !info.IsDir() {
		return store.NewErrorf(store.RetCInvalidDirectory, "store path %s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return store.NewErrorf(store.RetCInvalidDirectory, "store directory %s is not writable: %v", dir, err)
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		return store.NewErrorf(store.RetCInvalidDirectory, "store directory %s is not writable: %v", dir, err)
	}
	if err := os.Remove(name); err != nil {
		return store.NewErrorf(store.RetCInvalidDirectory, "cannot delete probe file in %s: %v", dir, err)
	}

	return nil
}

// entryPath returns the full path of the entry file for a key
func (s *fileStoreImpl) entryPath(key string) string {
	return filepath.Join(s.dir, s.prefix+s.codec.Encode(key))
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

// List enumerates all entries carrying the store's prefix and decodes their
// names back to keys.
//
// Policy for foreign data: a file that carries the prefix but whose name does
// not decode is treated as a store integrity violation (RetCInvalidEncoding)
// rather than silently skipped. The store assumes it owns its prefix.
func (s *fileStoreImpl) List() ([]string, error) {
	metricLists.Inc()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, store.NewErrorf(store.RetCInternalError, "cannot read store directory %s: %v", s.dir, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, s.prefix) {
			continue
		}

		key, err := s.codec.Decode(strings.TrimPrefix(name, s.prefix))
		if err != nil {
			return nil, store.NewErrorf(store.RetCInvalidEncoding, "undecodable entry %s in store directory %s: %v", name, s.dir, err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// Read returns the stored bytes for a key. A missing entry is reported via
// the loaded flag; an entry that exists but cannot be read is an
// unrecoverable error.
func (s *fileStoreImpl) Read(key string) ([]byte, bool, error) {
	metricReads.Inc()

	value, err := os.ReadFile(s.entryPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, store.NewErrorf(store.RetCInternalError, "cannot read entry for key %q: %v", key, err)
	}

	return value, true, nil
}

// Write stores the value for a key via a staging file and an atomic rename.
// A reader never observes a half-written entry: either the rename happened
// and the new content is fully in place, or the previous content is intact.
func (s *fileStoreImpl) Write(key string, value []byte) error {
	metricWrites.Inc()

	// free-space preflight: fail early and recoverably instead of risking a
	// partial write under disk pressure
	avail, err := s.freeSpace(s.dir)
	if err != nil {
		return store.NewErrorf(store.RetCInternalError, "cannot determine free space for %s: %v", s.dir, err)
	}
	if avail < uint64(len(value))+s.margin {
		metricOutOfSpace.Inc()
		log.Warningf("out of space writing key %q: need %d+%d bytes, %d available", key, len(value), s.margin, avail)
		return store.NewErrorf(store.RetCOutOfSpace, "not enough space to write %d bytes for key %q (%d available, %d margin)", len(value), key, avail, s.margin)
	}

	// stage in the same directory so the final rename cannot cross volumes
	tmp, err := os.CreateTemp(s.dir, tmpPattern)
	if err != nil {
		return store.NewErrorf(store.RetCInternalError, "cannot create staging file for key %q: %v", key, err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		if errors.Is(cause, syscall.ENOSPC) {
			metricOutOfSpace.Inc()
			return store.NewErrorf(store.RetCOutOfSpace, "volume ran out of space while writing key %q: %v", key, cause)
		}
		return store.NewErrorf(store.RetCInternalError, "cannot write staging file for key %q: %v", key, cause)
	}

	if _, err := tmp.Write(value); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return store.NewErrorf(store.RetCInternalError, "cannot close staging file for key %q: %v", key, err)
	}

	if err := os.Rename(tmpName, s.entryPath(key)); err != nil {
		os.Remove(tmpName)
		return store.NewErrorf(store.RetCInternalError, "cannot replace entry for key %q: %v", key, err)
	}

	return nil
}

// Delete removes the entry for a key. Deleting an absent key is a no-op,
// failing to remove a present entry is unrecoverable.
func (s *fileStoreImpl) Delete(key string) error {
	metricDeletes.Inc()

	if err := os.Remove(s.entryPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return store.NewErrorf(store.RetCInternalError, "cannot delete entry for key %q: %v", key, err)
	}
	return nil
}

func (s *fileStoreImpl) Has(key string) (bool, error) {
	metricHas.Inc()

	_, err := os.Stat(s.entryPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, store.NewErrorf(store.RetCInternalError, "cannot stat entry for key %q: %v", key, err)
	}
	return true, nil
}

// String identifies the store in log output
func (s *fileStoreImpl) String() string {
	return fmt.Sprintf("fstore(%s)", s.dir)
}
