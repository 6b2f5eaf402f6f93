// Package settings holds the user's preferences in a key-value store and
// exposes each one as a typed, observable Setting.
package settings

import (
	stderrors "errors"
	"os"
	"sort"
	"sync"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/filesystem"
	"github.com/arthur-debert/topdrawer/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Store is a flat key-value store. Values are strings, booleans or numbers.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any) error
}

// MemoryStore is a Store kept in memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// FileStore is a Store persisted as a TOML file. Every Set rewrites the file.
type FileStore struct {
	fs     afero.Fs
	path   string
	logger zerolog.Logger

	mu     sync.RWMutex
	values map[string]any
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// OpenFileStore loads the settings file at path. A missing file is an empty
// store; it is created on the first Set.
func OpenFileStore(fs afero.Fs, path string) (*FileStore, error) {
	s := &FileStore{
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("settings"),
		values: make(map[string]any),
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("path", path).Msg("No settings file, starting empty")
			return s, nil
		}
		return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to read settings from %s", path).
			WithDetail("path", path)
	}

	k := koanf.New("/")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to parse settings in %s", path).
			WithDetail("path", path)
	}
	for key, v := range k.All() {
		s.values[key] = v
	}

	s.logger.Debug().Str("path", path).Int("keys", len(s.values)).Msg("Loaded settings")
	return s, nil
}

// Path returns the backing file
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores the value and writes the file. On a write failure the previous
// value is restored.
func (s *FileStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Keys returns the stored keys in order
func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *FileStore) flush() error {
	data, err := gotoml.Marshal(s.values)
	if err != nil {
		return errors.Wrap(err, errors.ErrSettingsSave, "failed to encode settings")
	}
	if err := filesystem.WriteFileAtomic(s.fs, s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsSave, "failed to write settings to %s", s.path).
			WithDetail("path", s.path)
	}
	s.logger.Debug().Str("path", s.path).Msg("Saved settings")
	return nil
}
