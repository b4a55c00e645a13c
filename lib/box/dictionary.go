package box

import (
	"github.com/ValentinKolb/fsbox/lib/store"
)

// --------------------------------------------------------------------------
// Dictionary Type
// --------------------------------------------------------------------------

// Dictionary is a box specialized for a key-value mapping. It follows the
// same caching and persistence discipline as Box: per-entry operations load
// the whole mapping, touch one entry and write the whole mapping back.
//
// With the default JSON coder the mapping key type K must be a string, an
// integer type or implement encoding.TextMarshaler; use the gob coder for
// other comparable key types.
type Dictionary[K comparable, V any] struct {
	box *Box[map[K]V]
}

// NewDictionary creates a dictionary bound to the entry for key, persisting
// an empty mapping if no entry exists yet. An existing entry takes priority.
func NewDictionary[K comparable, V any](st store.IStore, key string, opts ...Option[map[K]V]) (*Dictionary[K, V], error) {
	b, err := New(st, key, map[K]V{}, opts...)
	if err != nil {
		return nil, err
	}
	return &Dictionary[K, V]{box: b}, nil
}

// OpenDictionary probes for an existing entry and returns a dictionary bound
// to it. The boolean return value indicates whether an entry was found.
func OpenDictionary[K comparable, V any](st store.IStore, key string, opts ...Option[map[K]V]) (*Dictionary[K, V], bool, error) {
	b, loaded, err := Open(st, key, opts...)
	if err != nil || !loaded {
		return nil, loaded, err
	}
	return &Dictionary[K, V]{box: b}, true, nil
}

// Key returns the store key this dictionary is bound to.
func (d *Dictionary[K, V]) Key() string {
	return d.box.Key()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see box/interface.go)
// --------------------------------------------------------------------------

func (d *Dictionary[K, V]) Get(key K) (V, bool, error) {
	type result struct {
		value  V
		loaded bool
	}

	res, err := Access(d.box, func(m *map[K]V) (result, error) {
		value, loaded := (*m)[key]
		return result{value, loaded}, nil
	})
	return res.value, res.loaded, err
}

func (d *Dictionary[K, V]) Set(key K, value V) error {
	return d.box.Access(func(m *map[K]V) error {
		if *m == nil {
			*m = make(map[K]V)
		}
		(*m)[key] = value
		return nil
	})
}

func (d *Dictionary[K, V]) GetOrInsert(key K, def V) (V, error) {
	return Access(d.box, func(m *map[K]V) (V, error) {
		if value, loaded := (*m)[key]; loaded {
			return value, nil
		}
		if *m == nil {
			*m = make(map[K]V)
		}
		(*m)[key] = def
		return def, nil
	})
}

func (d *Dictionary[K, V]) Delete(key K) (bool, error) {
	return Access(d.box, func(m *map[K]V) (bool, error) {
		_, loaded := (*m)[key]
		delete(*m, key)
		return loaded, nil
	})
}

func (d *Dictionary[K, V]) Len() (int, error) {
	return Access(d.box, func(m *map[K]V) (int, error) {
		return len(*m), nil
	})
}

func (d *Dictionary[K, V]) Keys() ([]K, error) {
	return Access(d.box, func(m *map[K]V) ([]K, error) {
		keys := make([]K, 0, len(*m))
		for key := range *m {
			keys = append(keys, key)
		}
		return keys, nil
	})
}
