package mstore

import (
	"github.com/ValentinKolb/fsbox/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
)

type memStoreImpl struct {
	data *xsync.MapOf[string, []byte]
}

// NewMemoryStore creates a new in-memory store instance.
// This store implementation is ephemeral: entries do not survive the
// process. It is primarily useful as a fast test double for persistence
// logic and for state that is rebuilt on startup anyway.
func NewMemoryStore() store.IStore {
	return &memStoreImpl{
		data: xsync.NewMapOf[string, []byte](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *memStoreImpl) List() ([]string, error) {
	keys := make([]string, 0, s.data.Size())
	s.data.Range(func(key string, _ []byte) bool {
		keys = append(keys, key)
		return true
	})
	return keys, nil
}

func (s *memStoreImpl) Read(key string) ([]byte, bool, error) {
	value, ok := s.data.Load(key)
	if !ok {
		return nil, false, nil
	}

	// copy so callers can't mutate the stored bytes
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, true, nil
}

func (s *memStoreImpl) Write(key string, value []byte) error {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	s.data.Store(key, valueCopy)
	return nil
}

func (s *memStoreImpl) Delete(key string) error {
	s.data.Delete(key)
	return nil
}

func (s *memStoreImpl) Has(key string) (bool, error) {
	_, ok := s.data.Load(key)
	return ok, nil
}
