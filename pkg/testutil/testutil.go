package testutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// FileTree represents a directory structure for testing. A string value is
// a file with that content, a FileTree value is a directory.
type FileTree map[string]interface{}

// WriteTree recursively creates tree under basePath
func WriteTree(t *testing.T, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := afero.WriteFile(fs, fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			WriteTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// XDGDirs are the base directories set by IsolateXDG
type XDGDirs struct {
	ConfigHome string
	StateHome  string
}

// IsolateXDG points XDG_CONFIG_HOME and XDG_STATE_HOME at fresh temporary
// directories for the duration of the test. It cannot be combined with
// t.Parallel.
func IsolateXDG(t *testing.T) XDGDirs {
	t.Helper()
	dirs := XDGDirs{ConfigHome: t.TempDir(), StateHome: t.TempDir()}
	// registered first so it runs after the environment is restored
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dirs.ConfigHome)
	t.Setenv("XDG_STATE_HOME", dirs.StateHome)
	xdg.Reload()
	return dirs
}
