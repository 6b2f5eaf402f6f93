package filesystem

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates_parents", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, WriteFileAtomic(fs, "/a/b/c.toml", []byte("x = 1\n"), 0644))

		data, err := afero.ReadFile(fs, "/a/b/c.toml")
		require.NoError(t, err)
		assert.Equal(t, "x = 1\n", string(data))

		info, err := fs.Stat("/a/b/c.toml")
		require.NoError(t, err)
		assert.Equal(t, "-rw-r--r--", info.Mode().Perm().String())
	})

	t.Run("replaces_content_without_leftovers", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, WriteFileAtomic(fs, "/c.toml", []byte("old"), 0644))
		require.NoError(t, WriteFileAtomic(fs, "/c.toml", []byte("new"), 0644))

		data, err := afero.ReadFile(fs, "/c.toml")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))

		entries, err := afero.ReadDir(fs, "/")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "c.toml", entries[0].Name())
	})

	t.Run("read_only", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		assert.Error(t, WriteFileAtomic(fs, "/c.toml", []byte("x"), 0644))
	})
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	ok, err := Exists(fs, "/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, afero.WriteFile(fs, "/present", nil, 0644))
	ok, err = Exists(fs, "/present")
	require.NoError(t, err)
	assert.True(t, ok)
}
