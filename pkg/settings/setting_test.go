package settings_test

import (
	"testing"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetting_Value(t *testing.T) {
	t.Run("set writes to store", func(t *testing.T) {
		store := settings.NewMemoryStore()
		s := settings.New(store, "key", 0)
		require.NoError(t, s.Set(99))

		v, ok := store.Get("key")
		require.True(t, ok)
		assert.Equal(t, 99, v)
	})

	t.Run("default is not written", func(t *testing.T) {
		store := settings.NewMemoryStore()
		s := settings.New(store, "key", 100)

		_, ok := store.Get("key")
		assert.False(t, ok)
		assert.False(t, s.IsSet())
	})

	t.Run("returns default", func(t *testing.T) {
		s := settings.New(settings.NewMemoryStore(), "key", 100)
		assert.Equal(t, 100, s.Value())
	})

	t.Run("returns previously set value", func(t *testing.T) {
		s := settings.New(settings.NewMemoryStore(), "key", 100)
		require.NoError(t, s.Set(99))
		assert.Equal(t, 99, s.Value())
		assert.True(t, s.IsSet())
	})

	t.Run("wrong type falls back to default", func(t *testing.T) {
		store := settings.NewMemoryStore()
		require.NoError(t, store.Set("key", "not a number"))
		s := settings.New(store, "key", 7)

		assert.Equal(t, 7, s.Value())
		_, err := s.Lookup()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettingType))
	})

	t.Run("widened integers are read back", func(t *testing.T) {
		store := settings.NewMemoryStore()
		require.NoError(t, store.Set("key", int64(12)))
		assert.Equal(t, 12, settings.New(store, "key", 0).Value())
	})
}

func TestSetting_Observe(t *testing.T) {
	t.Run("notified when set", func(t *testing.T) {
		s := settings.New(settings.NewMemoryStore(), "key", 0)
		calls := 0
		s.Observe(func(int) { calls++ })

		require.NoError(t, s.Set(99))
		assert.Equal(t, 1, calls)
	})

	t.Run("notified on every set", func(t *testing.T) {
		s := settings.New(settings.NewMemoryStore(), "key", 0)
		var seen []int
		s.Observe(func(v int) { seen = append(seen, v) })

		require.NoError(t, s.Set(99))
		require.NoError(t, s.Set(3))
		require.NoError(t, s.Set(42))
		assert.Equal(t, []int{99, 3, 42}, seen)
	})

	t.Run("notifies multiple observers", func(t *testing.T) {
		s := settings.New(settings.NewMemoryStore(), "key", 0)
		calls := make([]int, 3)
		for i := range calls {
			i := i
			s.Observe(func(int) { calls[i]++ })
		}

		require.NoError(t, s.Set(99))
		require.NoError(t, s.Set(2))
		assert.Equal(t, []int{2, 2, 2}, calls)
	})

	t.Run("cancelled observer is not called", func(t *testing.T) {
		s := settings.New(settings.NewMemoryStore(), "key", 0)
		living, cancelled := false, false
		s.Observe(func(int) { living = true })
		cancel := s.Observe(func(int) { cancelled = true })
		cancel()
		cancel()

		require.NoError(t, s.Set(99))
		assert.True(t, living)
		assert.False(t, cancelled)
	})

	t.Run("observer may cancel itself", func(t *testing.T) {
		s := settings.New(settings.NewMemoryStore(), "key", 0)
		calls := 0
		var cancel func()
		cancel = s.Observe(func(int) {
			calls++
			cancel()
		})

		require.NoError(t, s.Set(1))
		require.NoError(t, s.Set(2))
		assert.Equal(t, 1, calls)
	})
}

func TestSetting_SetString(t *testing.T) {
	store := settings.NewMemoryStore()

	b := settings.New(store, "flag", false)
	require.NoError(t, b.SetString("true"))
	assert.True(t, b.Value())

	n := settings.New(store, "count", 0)
	require.NoError(t, n.SetString("42"))
	assert.Equal(t, 42, n.Value())

	err := n.SetString("many")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, 42, n.Value())
}

func TestApp(t *testing.T) {
	app := settings.NewApp(settings.NewMemoryStore())

	assert.Equal(t, "", app.RootPath.Value())
	assert.True(t, app.OnlyShowMatching.Value())
	assert.True(t, app.ShortenPaths.Value())
	assert.False(t, app.OpenAtLogin.Value())

	var keys []string
	for _, s := range app.All() {
		keys = append(keys, s.Key())
	}
	assert.Equal(t, []string{
		settings.KeyOnlyShowMatching,
		settings.KeyOpenAtLogin,
		settings.KeyRootPath,
		settings.KeyShortenPaths,
	}, keys)

	s, ok := app.Lookup(settings.KeyShortenPaths)
	require.True(t, ok)
	require.NoError(t, s.SetString("false"))
	assert.False(t, app.ShortenPaths.Value())
	assert.Equal(t, "false", s.String())

	_, ok = app.Lookup("missing")
	assert.False(t, ok)
}
