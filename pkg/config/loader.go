package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. TOPDRAWER_SCAN_MAX_DEPTH sets
// scan.max_depth: the first underscore after the prefix separates the
// section from the key.
const EnvPrefix = "TOPDRAWER_"

// Options selects the sources Load reads
type Options struct {
	// File is an explicit config file, which must exist. When empty the
	// default file is read if present.
	File string
	// Overrides are dotted keys applied last, e.g. from command-line flags
	Overrides map[string]interface{}
}

// Load builds the configuration from the embedded defaults, the config
// file, the environment and opts.Overrides
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	path := opts.File
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile()); err == nil {
			path = DefaultConfigFile()
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
			WithDetail("path", path)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}

	// 6. Post-process
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("rules", cfg.Rules.File).
		Str("settings", cfg.Settings.File).
		Int("workers", cfg.Scan.Workers).
		Msg("Configuration ready")
	return &cfg, nil
}
