// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keychain.
//
// go-keychain is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package config supplies operational knobs for cmd/josectl and the
// optional metrics/logging wiring. No protocol-affecting choice (enc,
// alg, crit options, algorithm allow-lists) is read from here: those
// arrive only through the builder/options surface in pkg/jwe and
// pkg/jws, so the protocol core never consults this package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config is the ambient-shell configuration for the CLI and its optional
// metrics/logging wiring.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Timing  TimingConfig  `yaml:"timing"`
}

// LoggingConfig controls the CLI's diagnostic logging.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// MetricsConfig controls whether and where the CLI exposes a Prometheus
// scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// TimingConfig holds RFC 7516 §11.5 mitigation delay bounds. Load parses
// and Validate checks them, but pkg/timingmit does not read this type: it
// always uses its own MinDelay/MaxDelay constants.
type TimingConfig struct {
	MinDelay time.Duration `yaml:"min_delay"`
	MaxDelay time.Duration `yaml:"max_delay"`
}

// Defaults returns the built-in configuration used when no config file is
// present and no flags/env vars override it.
func Defaults() *Config {
	return &Config{
		Logging: LoggingConfig{Debug: false},
		Metrics: MetricsConfig{Enabled: false, Address: ":9090"},
	}
}

// Load reads configuration from an optional YAML file at path (ignored if
// empty or missing), then applies JOSECTL_-prefixed environment variable
// overrides via viper, layered on top of Defaults().
func Load(path string) (*Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetEnvPrefix("JOSECTL")
	v.AutomaticEnv()
	v.SetDefault("logging.debug", cfg.Logging.Debug)
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.address", cfg.Metrics.Address)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg.Logging.Debug = v.GetBool("logging.debug")
	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.Address = v.GetString("metrics.address")
	cfg.Timing.MinDelay = v.GetDuration("timing.min_delay")
	cfg.Timing.MaxDelay = v.GetDuration("timing.max_delay")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks invariants viper's type coercion cannot enforce on its own.
func (c *Config) Validate() error {
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return fmt.Errorf("metrics.address must be set when metrics.enabled is true")
	}
	if c.Timing.MinDelay < 0 || c.Timing.MaxDelay < 0 {
		return fmt.Errorf("timing delays must not be negative")
	}
	if c.Timing.MaxDelay != 0 && c.Timing.MinDelay > c.Timing.MaxDelay {
		return fmt.Errorf("timing.min_delay must not exceed timing.max_delay")
	}
	return nil
}
