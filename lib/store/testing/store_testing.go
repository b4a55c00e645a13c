package testing

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/ValentinKolb/fsbox/lib/store"
)

// StoreFactory is a function that creates a new instance of an IStore implementation
type StoreFactory func() store.IStore

// RunStoreTests runs a conformance test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Write&Read", func(t *testing.T) {
			testWriteRead(t, factory())
		})

		t.Run("ReadAbsent", func(t *testing.T) {
			testReadAbsent(t, factory())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory())
		})

		t.Run("List", func(t *testing.T) {
			testList(t, factory())
		})

		t.Run("HostileKeys", func(t *testing.T) {
			testHostileKeys(t, factory())
		})

		t.Run("EmptyValue", func(t *testing.T) {
			testEmptyValue(t, factory())
		})

		t.Run("ValueIsolation", func(t *testing.T) {
			testValueIsolation(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// requireNoError fails the test immediately on an unexpected store error
func requireNoError(t testing.TB, err error, op string) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error during %s: %v", op, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testWriteRead(t *testing.T, s store.IStore) {
	testKey := "test-key"
	testValue := []byte("test-value")

	requireNoError(t, s.Write(testKey, testValue), "Write")

	result, loaded, err := s.Read(testKey)
	requireNoError(t, err, "Read")

	if !loaded {
		t.Errorf("Expected key %s to exist after Write", testKey)
	}
	if !bytes.Equal(result, testValue) {
		t.Errorf("Expected value %s, got %s", testValue, result)
	}
}

func testReadAbsent(t *testing.T, s store.IStore) {
	result, loaded, err := s.Read("nonexistent-key")
	requireNoError(t, err, "Read")

	if loaded {
		t.Errorf("Expected nonexistent key to return loaded=false, got value %q", result)
	}
}

func testOverwrite(t *testing.T, s store.IStore) {
	testKey := "test-key"
	testValue1 := []byte("test-value1")
	testValue2 := []byte("test-value2-with-different-length")

	requireNoError(t, s.Write(testKey, testValue1), "Write")
	requireNoError(t, s.Write(testKey, testValue2), "Write")

	result, loaded, err := s.Read(testKey)
	requireNoError(t, err, "Read")

	if !loaded {
		t.Errorf("Expected key %s to exist after overwrite", testKey)
	}
	if !bytes.Equal(result, testValue2) {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}
}

func testDelete(t *testing.T, s store.IStore) {
	testKey := "test-key"

	requireNoError(t, s.Write(testKey, []byte("value")), "Write")
	requireNoError(t, s.Delete(testKey), "Delete")

	if _, loaded, err := s.Read(testKey); err != nil {
		t.Fatalf("Unexpected error reading deleted key: %v", err)
	} else if loaded {
		t.Errorf("Expected key %s to be gone after Delete", testKey)
	}

	// deleting an absent key is a no-op
	requireNoError(t, s.Delete(testKey), "Delete(absent)")
	requireNoError(t, s.Delete("never-existed"), "Delete(absent)")
}

func testHas(t *testing.T, s store.IStore) {
	testKey := "test-key"

	loaded, err := s.Has(testKey)
	requireNoError(t, err, "Has")
	if loaded {
		t.Errorf("Expected Has to return false before Write")
	}

	requireNoError(t, s.Write(testKey, []byte("value")), "Write")

	loaded, err = s.Has(testKey)
	requireNoError(t, err, "Has")
	if !loaded {
		t.Errorf("Expected Has to return true after Write")
	}
}

func testList(t *testing.T, s store.IStore) {
	keys, err := s.List()
	requireNoError(t, err, "List")
	if len(keys) != 0 {
		t.Errorf("Expected empty store to list no keys, got %v", keys)
	}

	want := []string{"alpha", "beta", "gamma"}
	for _, key := range want {
		requireNoError(t, s.Write(key, []byte(key)), "Write")
	}

	keys, err = s.List()
	requireNoError(t, err, "List")

	sort.Strings(keys)
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %d: %v", len(want), len(keys), keys)
	}
	for i, key := range want {
		if keys[i] != key {
			t.Errorf("Expected key %q at position %d, got %q", key, i, keys[i])
		}
	}

	requireNoError(t, s.Delete("beta"), "Delete")

	keys, err = s.List()
	requireNoError(t, err, "List")
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "alpha" || keys[1] != "gamma" {
		t.Errorf("Expected [alpha gamma] after delete, got %v", keys)
	}
}

// testHostileKeys verifies that keys with path separators, dots and binary
// content round-trip through the store without escaping the backing medium
func testHostileKeys(t *testing.T, s store.IStore) {
	hostileKeys := []string{
		"../escape-attempt",
		"path/like/key",
		"..",
		".",
		"key with spaces",
		"unicode-äöü-键",
		string([]byte{0x01, 0xff, 0x00}),
	}

	for i, key := range hostileKeys {
		value := []byte(fmt.Sprintf("value-%d", i))
		requireNoError(t, s.Write(key, value), "Write")

		result, loaded, err := s.Read(key)
		requireNoError(t, err, "Read")
		if !loaded {
			t.Errorf("Expected hostile key %q to exist after Write", key)
			continue
		}
		if !bytes.Equal(result, value) {
			t.Errorf("Expected value %s for key %q, got %s", value, key, result)
		}
	}

	keys, err := s.List()
	requireNoError(t, err, "List")
	if len(keys) != len(hostileKeys) {
		t.Errorf("Expected %d keys after hostile writes, got %d: %v", len(hostileKeys), len(keys), keys)
	}

	for _, key := range hostileKeys {
		requireNoError(t, s.Delete(key), "Delete")
	}
}

func testEmptyValue(t *testing.T, s store.IStore) {
	testKey := "empty"

	requireNoError(t, s.Write(testKey, []byte{}), "Write")

	result, loaded, err := s.Read(testKey)
	requireNoError(t, err, "Read")
	if !loaded {
		t.Errorf("Expected key %s with empty value to exist", testKey)
	}
	if len(result) != 0 {
		t.Errorf("Expected empty value, got %q", result)
	}
}

// testValueIsolation verifies that mutating a slice returned by Read (or
// passed to Write) does not change the stored entry
func testValueIsolation(t *testing.T, s store.IStore) {
	testKey := "isolation"
	original := []byte("original")

	input := make([]byte, len(original))
	copy(input, original)
	requireNoError(t, s.Write(testKey, input), "Write")
	input[0] = 'X'

	result, _, err := s.Read(testKey)
	requireNoError(t, err, "Read")
	if !bytes.Equal(result, original) {
		t.Errorf("Mutating the written slice changed the stored value: got %q", result)
	}

	result[0] = 'Y'

	result2, _, err := s.Read(testKey)
	requireNoError(t, err, "Read")
	if !bytes.Equal(result2, original) {
		t.Errorf("Mutating a read slice changed the stored value: got %q", result2)
	}
}

// --------------------------------------------------------------------------
// Error code helpers shared by implementation-specific tests
// --------------------------------------------------------------------------

// ExpectErrorCode fails the test if err is not a *store.Error carrying code
func ExpectErrorCode(t testing.TB, err error, code store.RetCode) {
	t.Helper()

	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("Expected *store.Error with code %s, got %v", code, err)
	}
	if storeErr.Code != code {
		t.Fatalf("Expected error code %s, got %s (%v)", code, storeErr.Code, err)
	}
}
