package fstore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/fsbox/lib/keycodec"
	"github.com/ValentinKolb/fsbox/lib/store"
	storetesting "github.com/ValentinKolb/fsbox/lib/store/testing"
)

// newTestStore creates a file store in a fresh temp directory
func newTestStore(t testing.TB, opts *StoreOptions) store.IStore {
	t.Helper()

	s, err := NewFileStore(t.TempDir(), opts)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	return s
}

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "FileStore", func() store.IStore {
		return newTestStore(t, nil)
	})

	storetesting.RunStoreTests(t, "FileStore/PercentCodec", func() store.IStore {
		return newTestStore(t, &StoreOptions{KeyCodec: keycodec.NewPercentKeyCodec()})
	})
}

func Benchmark(b *testing.B) {
	storetesting.RunStoreBenchmarks(b, "FileStore", func() store.IStore {
		return newTestStore(b, nil)
	})
}

// --------------------------------------------------------------------------
// Construction
// --------------------------------------------------------------------------

func TestInvalidDirectory(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"), nil)
		storetesting.ExpectErrorCode(t, err, store.RetCInvalidDirectory)
	})

	t.Run("NotADirectory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		_, err := NewFileStore(file, nil)
		storetesting.ExpectErrorCode(t, err, store.RetCInvalidDirectory)
	})

	t.Run("NotWritable", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("running as root, directory permissions are not enforced")
		}

		dir := t.TempDir()
		if err := os.Chmod(dir, 0o555); err != nil {
			t.Fatalf("Failed to chmod: %v", err)
		}
		t.Cleanup(func() { os.Chmod(dir, 0o755) })

		_, err := NewFileStore(dir, nil)
		storetesting.ExpectErrorCode(t, err, store.RetCInvalidDirectory)
	})
}

// --------------------------------------------------------------------------
// On-disk layout
// --------------------------------------------------------------------------

func TestEntryFileNaming(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	if err := s.Write("Counter", []byte("512")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected exactly one file, got %d", len(entries))
	}

	name := entries[0].Name()
	if !strings.HasPrefix(name, defaultPrefix) {
		t.Errorf("Expected entry file %q to carry prefix %q", name, defaultPrefix)
	}

	decoded, err := keycodec.NewBase64KeyCodec().Decode(strings.TrimPrefix(name, defaultPrefix))
	if err != nil || decoded != "Counter" {
		t.Errorf("Expected entry file name to decode to \"Counter\", got %q (err=%v)", decoded, err)
	}

	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(content, []byte("512")) {
		t.Errorf("Expected file content 512, got %q", content)
	}
}

// Two stores with different prefixes share a directory without seeing each
// other's entries.
func TestPrefixIsolation(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewFileStore(dir, &StoreOptions{Prefix: "app1-"})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	s2, err := NewFileStore(dir, &StoreOptions{Prefix: "app2-"})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := s1.Write("shared-key", []byte("one")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s2.Write("shared-key", []byte("two")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	value, _, err := s1.Read("shared-key")
	if err != nil || !bytes.Equal(value, []byte("one")) {
		t.Errorf("Expected store 1 to read its own value, got %q (err=%v)", value, err)
	}

	keys, err := s2.List()
	if err != nil || len(keys) != 1 || keys[0] != "shared-key" {
		t.Errorf("Expected store 2 to list exactly its own key, got %v (err=%v)", keys, err)
	}

	// unrelated files without a matching prefix are ignored
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if keys, err := s1.List(); err != nil || len(keys) != 1 {
		t.Errorf("Expected unrelated file to be ignored, got %v (err=%v)", keys, err)
	}
}

func TestListUndecodableEntry(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	// a file carrying the prefix but not a valid base64 name
	foreign := filepath.Join(dir, defaultPrefix+"not base64!")
	if err := os.WriteFile(foreign, []byte("junk"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err = s.List()
	storetesting.ExpectErrorCode(t, err, store.RetCInvalidEncoding)
}

// --------------------------------------------------------------------------
// Atomicity
// --------------------------------------------------------------------------

// A staging file left behind by a crash between write and rename must not
// disturb the previous entry, and must be invisible to List.
func TestStagingLeftoverIsHarmless(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	if err := s.Write("key", []byte("intact")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// simulate the crash: a staged file that never got renamed
	leftover := filepath.Join(dir, ".tmp-12345")
	if err := os.WriteFile(leftover, []byte("half-writ"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	value, loaded, err := s.Read("key")
	if err != nil || !loaded || !bytes.Equal(value, []byte("intact")) {
		t.Errorf("Expected previous entry to be intact, got %q (loaded=%v err=%v)", value, loaded, err)
	}

	keys, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "key" {
		t.Errorf("Expected staging leftover to be invisible to List, got %v", keys)
	}
}

func TestWriteLeavesNoStagingFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	for i := 0; i < 10; i++ {
		if err := s.Write("key", bytes.Repeat([]byte("x"), 1024)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp-") {
			t.Errorf("Found staging leftover %q after successful writes", entry.Name())
		}
	}
}

// --------------------------------------------------------------------------
// Free-space preflight
// --------------------------------------------------------------------------

func TestWriteOutOfSpace(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	if err := s.Write("key", []byte("before")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// simulate disk pressure: less space available than value + margin
	impl := s.(*fileStoreImpl)
	impl.freeSpace = func(string) (uint64, error) {
		return impl.margin + 2, nil
	}

	err = s.Write("key", []byte("after, longer than three bytes"))
	storetesting.ExpectErrorCode(t, err, store.RetCOutOfSpace)

	if storeErr, ok := err.(*store.Error); !ok || !storeErr.Recoverable() {
		t.Errorf("Expected out-of-space error to be recoverable, got %v", err)
	}

	// the previous entry is untouched
	value, loaded, readErr := s.Read("key")
	if readErr != nil || !loaded || !bytes.Equal(value, []byte("before")) {
		t.Errorf("Expected previous entry to survive a failed write, got %q (loaded=%v err=%v)", value, loaded, readErr)
	}

	// tiny writes below the threshold still pass the preflight
	impl.freeSpace = func(string) (uint64, error) {
		return impl.margin + 100, nil
	}
	if err := s.Write("key", []byte("ok")); err != nil {
		t.Errorf("Expected write within available space to succeed, got %v", err)
	}
}

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

func TestOperationCounters(t *testing.T) {
	s := newTestStore(t, nil)

	hasBefore := metricHas.Get()
	writesBefore := metricWrites.Get()

	if err := s.Write("key", []byte("value")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := s.Has("key"); err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if _, err := s.Has("missing"); err != nil {
		t.Fatalf("Has failed: %v", err)
	}

	if got := metricWrites.Get(); got != writesBefore+1 {
		t.Errorf("Expected write counter to advance by 1, got %d", got-writesBefore)
	}
	if got := metricHas.Get(); got != hasBefore+2 {
		t.Errorf("Expected has counter to advance by 2, got %d", got-hasBefore)
	}
}
