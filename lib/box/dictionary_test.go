package box

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/ValentinKolb/fsbox/lib/store/mstore"
)

func TestDictionarySetGet(t *testing.T) {
	st := mstore.NewMemoryStore()

	d, err := NewDictionary[string, string](st, "settings")
	if err != nil {
		t.Fatalf("Failed to create dictionary: %v", err)
	}

	if _, loaded, err := d.Get("account"); err != nil {
		t.Fatalf("Get failed: %v", err)
	} else if loaded {
		t.Error("Expected empty dictionary to report absence")
	}

	if err := d.Set("account", "Testolope"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// a freshly constructed dictionary over the same store and key must
	// observe the entry
	fresh, err := NewDictionary[string, string](st, "settings")
	if err != nil {
		t.Fatalf("Failed to create fresh dictionary: %v", err)
	}

	value, loaded, err := fresh.Get("account")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded || value != "Testolope" {
		t.Errorf("Expected account=Testolope, got %q (loaded=%v)", value, loaded)
	}
}

func TestDictionaryGetOrInsert(t *testing.T) {
	st := mstore.NewMemoryStore()

	d, err := NewDictionary[string, int](st, "limits")
	if err != nil {
		t.Fatalf("Failed to create dictionary: %v", err)
	}

	value, err := d.GetOrInsert("requests", 100)
	if err != nil {
		t.Fatalf("GetOrInsert failed: %v", err)
	}
	if value != 100 {
		t.Errorf("Expected inserted default 100, got %d", value)
	}

	// existing entry wins over a different default
	value, err = d.GetOrInsert("requests", 999)
	if err != nil {
		t.Fatalf("GetOrInsert failed: %v", err)
	}
	if value != 100 {
		t.Errorf("Expected existing value 100 to win, got %d", value)
	}

	// the insert was persisted, not just cached
	raw, _, err := st.Read("limits")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	var persisted map[string]int
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("Failed to decode persisted mapping: %v", err)
	}
	if persisted["requests"] != 100 {
		t.Errorf("Expected persisted mapping to contain requests=100, got %v", persisted)
	}
}

func TestDictionaryDelete(t *testing.T) {
	st := mstore.NewMemoryStore()

	d, err := NewDictionary[string, string](st, "settings")
	if err != nil {
		t.Fatalf("Failed to create dictionary: %v", err)
	}

	if err := d.Set("a", "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	loaded, err := d.Delete("a")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !loaded {
		t.Error("Expected Delete to report the entry existed")
	}

	loaded, err = d.Delete("a")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if loaded {
		t.Error("Expected Delete of absent entry to report false")
	}
}

func TestDictionaryLenAndKeys(t *testing.T) {
	st := mstore.NewMemoryStore()

	d, err := NewDictionary[string, int](st, "settings")
	if err != nil {
		t.Fatalf("Failed to create dictionary: %v", err)
	}

	for i, key := range []string{"a", "b", "c"} {
		if err := d.Set(key, i); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	n, err := d.Len()
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 entries, got %d", n)
	}

	keys, err := d.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Expected keys [a b c], got %v", keys)
	}
}

// The whole mapping is stored under one key: per-entry operations must not
// create additional store entries.
func TestDictionaryWholeValueGranularity(t *testing.T) {
	st := mstore.NewMemoryStore()

	d, err := NewDictionary[string, string](st, "settings")
	if err != nil {
		t.Fatalf("Failed to create dictionary: %v", err)
	}

	for _, key := range []string{"a", "b", "c", "d"} {
		if err := d.Set(key, key); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	keys, err := st.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "settings" {
		t.Errorf("Expected exactly one store entry [settings], got %v", keys)
	}
}

func TestOpenDictionary(t *testing.T) {
	st := mstore.NewMemoryStore()

	if _, loaded, err := OpenDictionary[string, string](st, "settings"); err != nil {
		t.Fatalf("OpenDictionary failed: %v", err)
	} else if loaded {
		t.Error("Expected OpenDictionary to report absence for a missing entry")
	}

	if _, err := NewDictionary[string, string](st, "settings"); err != nil {
		t.Fatalf("Failed to create dictionary: %v", err)
	}

	d, loaded, err := OpenDictionary[string, string](st, "settings")
	if err != nil || !loaded {
		t.Fatalf("Expected OpenDictionary to find the entry (loaded=%v err=%v)", loaded, err)
	}

	n, err := d.Len()
	if err != nil || n != 0 {
		t.Errorf("Expected opened empty dictionary, got len=%d err=%v", n, err)
	}
}
