package box

import (
	"errors"

	"github.com/ValentinKolb/fsbox/lib/coder"
	"github.com/ValentinKolb/fsbox/lib/logger"
	"github.com/ValentinKolb/fsbox/lib/store"
)

var log = logger.GetLogger("box")

// --------------------------------------------------------------------------
// Box Type and Options
// --------------------------------------------------------------------------

// Box is a caching read-modify-write wrapper around one stored entry.
//
// The entry is read and decoded once, on first access, and stays cached for
// the lifetime of the box (no eviction). Every Access call re-encodes the
// cached value and writes it through the store, so after any successful
// access the persisted entry equals the encoded cache.
//
// A box performs no internal locking and starts no goroutines; it is meant
// to be driven by one logical owner at a time.
type Box[T any] struct {
	store        store.IStore
	key          string
	coder        coder.ICoder
	onWriteError ErrorHandler

	loaded bool
	cache  T
}

// Option configures a box during construction
type Option[T any] func(*Box[T])

// WithCoder sets the value coder (default: JSON)
func WithCoder[T any](c coder.ICoder) Option[T] {
	return func(b *Box[T]) {
		b.coder = c
	}
}

// WithErrorHandler sets the handler invoked on recoverable write failures.
// Without a handler, a recoverable write failure is escalated to an
// unrecoverable error.
func WithErrorHandler[T any](h ErrorHandler) Option[T] {
	return func(b *Box[T]) {
		b.onWriteError = h
	}
}

// --------------------------------------------------------------------------
// Construction
// --------------------------------------------------------------------------

func newBox[T any](st store.IStore, key string, opts []Option[T]) *Box[T] {
	b := &Box[T]{
		store: st,
		key:   key,
		coder: coder.NewJSONCoder(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// New creates a box bound to the entry for key, writing def as the initial
// value if no entry exists yet. The default is persisted before New returns,
// so the key is immediately visible to List on the store. An existing entry
// always takes priority; def is then ignored and the entry is loaded lazily
// on first access.
func New[T any](st store.IStore, key string, def T, opts ...Option[T]) (*Box[T], error) {
	b := newBox(st, key, opts)

	loaded, err := st.Has(key)
	if err != nil {
		return nil, err
	}

	if !loaded {
		b.cache = def
		b.loaded = true
		if err := b.persist(); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Open probes for an existing entry and returns a box bound to it, deferring
// the actual load to the first access. The boolean return value indicates
// whether an entry was found; if it is false, no box is returned.
func Open[T any](st store.IStore, key string, opts ...Option[T]) (*Box[T], bool, error) {
	loaded, err := st.Has(key)
	if err != nil {
		return nil, false, err
	}
	if !loaded {
		return nil, false, nil
	}

	return newBox(st, key, opts), true, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see box/interface.go)
// --------------------------------------------------------------------------

func (b *Box[T]) Key() string {
	return b.key
}

// Access is the sole mutation primitive. It loads the entry if this is the
// first access, runs fn with mutable access to the cached value and then
// persists the cache - on every exit path, including an error return from
// fn (the post-mutation state is written, then fn's error is re-propagated)
// and a panic inside fn (the state is written, then the panic continues).
// A persist failure takes precedence over fn's error.
//
// If persisting fails recoverably (out of space), the configured error
// handler decides between retrying indefinitely and giving up; giving up
// (or having no handler) yields an unrecoverable error because the cache
// has advanced past the persisted state.
func (b *Box[T]) Access(fn func(value *T) error) (err error) {
	if !b.loaded {
		if err := b.load(); err != nil {
			return err
		}
	}

	defer func() {
		if persistErr := b.persist(); persistErr != nil {
			err = persistErr
		}
	}()

	return fn(&b.cache)
}

// Access runs fn with mutable access to the cached value of b and returns
// fn's result alongside the persistence outcome. It is the generic variant
// of the Access method for callers that want a value out of the closure.
func Access[T, R any](b *Box[T], fn func(value *T) (R, error)) (R, error) {
	var ret R
	err := b.Access(func(value *T) error {
		r, err := fn(value)
		ret = r
		return err
	})
	return ret, err
}

// --------------------------------------------------------------------------
// Internal Helpers
// --------------------------------------------------------------------------

// load reads and decodes the entry into the cache. Construction guaranteed
// the entry exists, so absence at this point means the store was modified
// behind the box's back - an unrecoverable condition.
func (b *Box[T]) load() error {
	data, loaded, err := b.store.Read(b.key)
	if err != nil {
		return err
	}
	if !loaded {
		return store.NewErrorf(store.RetCInternalError, "entry for key %q vanished from store", b.key)
	}

	if err := b.coder.Decode(data, &b.cache); err != nil {
		return store.NewErrorf(store.RetCCorruptValue, "cannot decode entry for key %q: %v", b.key, err)
	}

	b.loaded = true
	return nil
}

// persist encodes the cache and writes it through the store, driving the
// recoverable-error retry loop
func (b *Box[T]) persist() error {
	data, err := b.coder.Encode(&b.cache)
	if err != nil {
		return store.NewErrorf(store.RetCCorruptValue, "cannot encode value for key %q: %v", b.key, err)
	}

	for {
		err := b.store.Write(b.key, data)
		if err == nil {
			return nil
		}

		var storeErr *store.Error
		if !errors.As(err, &storeErr) || !storeErr.Recoverable() {
			return err
		}

		if b.onWriteError == nil {
			return store.NewErrorf(store.RetCInternalError,
				"cannot persist key %q and no error handler is configured (cached value has advanced past persisted state): %v", b.key, err)
		}

		log.Warningf("recoverable write failure for key %q, asking handler: %v", b.key, err)
		if !b.onWriteError(err.Error()) {
			return store.NewErrorf(store.RetCInternalError,
				"error handler gave up persisting key %q (cached value has advanced past persisted state): %v", b.key, err)
		}
	}
}
