package settings

import "sort"

// Keys of the application settings
const (
	KeyRootPath         = "root_path"
	KeyOnlyShowMatching = "only_show_matching"
	KeyShortenPaths     = "shorten_paths"
	KeyOpenAtLogin      = "open_at_login"
)

// Accessor is the untyped face of a Setting, for listing and editing
// settings by key
type Accessor interface {
	Key() string
	IsSet() bool
	SetString(text string) error
	String() string
}

// App groups the settings the application reads
type App struct {
	// RootPath is the directory that is scanned
	RootPath *Setting[string]
	// OnlyShowMatching hides directories without matching descendants
	OnlyShowMatching *Setting[bool]
	// ShortenPaths merges chains of single-child directories
	ShortenPaths *Setting[bool]
	OpenAtLogin  *Setting[bool]
}

// NewApp binds the application settings to store
func NewApp(store Store) *App {
	return &App{
		RootPath:         New(store, KeyRootPath, ""),
		OnlyShowMatching: New(store, KeyOnlyShowMatching, true),
		ShortenPaths:     New(store, KeyShortenPaths, true),
		OpenAtLogin:      New(store, KeyOpenAtLogin, false),
	}
}

// All returns every setting ordered by key
func (a *App) All() []Accessor {
	all := []Accessor{a.RootPath, a.OnlyShowMatching, a.ShortenPaths, a.OpenAtLogin}
	sort.Slice(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })
	return all
}

// Lookup finds a setting by key
func (a *App) Lookup(key string) (Accessor, bool) {
	for _, s := range a.All() {
		if s.Key() == key {
			return s, true
		}
	}
	return nil, false
}
