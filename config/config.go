// Package config loads the server configuration from TOML.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the full server configuration. Flags may override individual
// fields after loading.
type Config struct {
	// Port the FIX listener binds; 0 picks an ephemeral port.
	Port int `toml:"port"`
	// MetricsAddr serves Prometheus metrics when non-empty, e.g. ":9090".
	MetricsAddr string `toml:"metrics_addr"`
	// LogLevel is a zap level string: debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Instruments are registered before the exchange starts.
	Instruments []string `toml:"instruments"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:     5000,
		LogLevel: "info",
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}
