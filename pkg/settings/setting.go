package settings

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Setting is a typed view of one key in a Store. The default is returned
// while the key is unset and is never written to the store.
type Setting[T any] struct {
	store Store
	key   string
	def   T

	mu        sync.Mutex
	nextID    int
	observers map[int]func(T)
}

// New returns a setting for key backed by store
func New[T any](store Store, key string, def T) *Setting[T] {
	return &Setting[T]{
		store:     store,
		key:       key,
		def:       def,
		observers: make(map[int]func(T)),
	}
}

func (s *Setting[T]) Key() string { return s.key }

func (s *Setting[T]) Default() T { return s.def }

// IsSet reports whether the store holds a value for the key
func (s *Setting[T]) IsSet() bool {
	_, ok := s.store.Get(s.key)
	return ok
}

// Lookup returns the stored value. It fails with errors.ErrSettingType when
// the stored value cannot be read as T, and returns the default when unset.
func (s *Setting[T]) Lookup() (T, error) {
	raw, ok := s.store.Get(s.key)
	if !ok {
		return s.def, nil
	}
	var v T
	if err := mapstructure.Decode(raw, &v); err != nil {
		return s.def, errors.Wrapf(err, errors.ErrSettingType, "setting %s holds a %T", s.key, raw).
			WithDetail("key", s.key)
	}
	return v, nil
}

// Value returns the stored value, or the default when unset or unreadable
func (s *Setting[T]) Value() T {
	v, err := s.Lookup()
	if err != nil {
		return s.def
	}
	return v
}

// Set writes v and notifies every observer, including when v equals the
// current value
func (s *Setting[T]) Set(v T) error {
	if err := s.store.Set(s.key, v); err != nil {
		return err
	}

	s.mu.Lock()
	observers := make([]func(T), 0, len(s.observers))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
	return nil
}

// Observe registers fn to be called after each Set, in registration order.
// The returned function removes it; calling it again has no effect.
func (s *Setting[T]) Observe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// Parse reads a value of type T from its text form, e.g. "true" or "42"
func (s *Setting[T]) Parse(text string) (T, error) {
	var v T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &v,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return v, errors.Wrap(err, errors.ErrInternal, "failed to create decoder")
	}
	if err := dec.Decode(text); err != nil {
		return v, errors.Wrapf(err, errors.ErrInvalidInput, "invalid value %q for setting %s", text, s.key).
			WithDetail("key", s.key)
	}
	return v, nil
}

// SetString parses text and sets the result
func (s *Setting[T]) SetString(text string) error {
	v, err := s.Parse(text)
	if err != nil {
		return err
	}
	return s.Set(v)
}

// String formats the current value
func (s *Setting[T]) String() string {
	return fmt.Sprint(s.Value())
}
