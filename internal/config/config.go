// Package config loads the optional YAML configuration file for the
// rjisflow CLI.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FeedConfig configures one feed ingest.
type FeedConfig struct {
	// Path to the feed file. Optional here; the CLI requires a path from
	// either the config file or its positional argument.
	Path string `yaml:"path"`

	// Compression overrides extension-based detection. One of auto, none,
	// gzip, zstd, s2, lz4 (short forms gz/zst accepted).
	Compression string `yaml:"compression" validate:"omitempty,oneof=auto none gzip gz zstd zst s2 lz4"`

	// Fingerprint toggles the xxHash64 feed fingerprint; nil means the
	// feed package default (enabled).
	Fingerprint *bool `yaml:"fingerprint"`
}

// Config is the root of the CLI configuration file.
type Config struct {
	Feed FeedConfig `yaml:"feed"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	v := validator.New()
	if err := v.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}
