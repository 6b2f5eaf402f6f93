// Package config handles configuration management for topdrawer.
// It layers the embedded defaults, a TOML config file, TOPDRAWER_*
// environment variables and command-line overrides, in that order.
package config
