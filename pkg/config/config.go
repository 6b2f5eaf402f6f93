package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/topdrawer/pkg/errors"
)

// AppName names the XDG directories
const AppName = "topdrawer"

// Config is the complete application configuration
type Config struct {
	Rules    Rules    `koanf:"rules"`
	Scan     Scan     `koanf:"scan"`
	Settings Settings `koanf:"settings"`
}

// Rules locates the rules document
type Rules struct {
	File string `koanf:"file"`
}

// Scan controls walking and classifying a directory
type Scan struct {
	Workers    int      `koanf:"workers"`
	MaxDepth   int      `koanf:"max_depth"`
	SkipHidden bool     `koanf:"skip_hidden"`
	Ignore     []string `koanf:"ignore"`
}

// Settings locates the user settings file
type Settings struct {
	File string `koanf:"file"`
}

// DefaultConfigFile is the config file read when none is given
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

func defaultRulesFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "rules.toml")
}

func defaultSettingsFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "settings.toml")
}

// expandHome replaces a leading ~ with the home directory
func expandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}

// postProcess fills derived paths and validates ranges
func postProcess(cfg *Config) error {
	if cfg.Rules.File == "" {
		cfg.Rules.File = defaultRulesFile()
	}
	cfg.Rules.File = expandHome(cfg.Rules.File)

	if cfg.Settings.File == "" {
		cfg.Settings.File = defaultSettingsFile()
	}
	cfg.Settings.File = expandHome(cfg.Settings.File)

	if cfg.Scan.Workers < 0 {
		return errors.Newf(errors.ErrConfigValid, "scan.workers must not be negative, got %d", cfg.Scan.Workers).
			WithDetail("key", "scan.workers")
	}
	if cfg.Scan.MaxDepth < 0 {
		return errors.Newf(errors.ErrConfigValid, "scan.max_depth must not be negative, got %d", cfg.Scan.MaxDepth).
			WithDetail("key", "scan.max_depth")
	}
	return nil
}
