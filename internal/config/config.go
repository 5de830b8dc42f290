// Package config loads the CLI's YAML configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	mderrors "github.com/inful/mdgraph/internal/errors"
)

// Config represents the application configuration
type Config struct {
	// Input is the directory scanned for page model files (*.yml, *.yaml).
	Input string `yaml:"input"`
	// Output is the directory transformed models are written to.
	Output string `yaml:"output"`
	// LinkDB is the SQLite link database path; empty disables persistence.
	LinkDB string `yaml:"link_db,omitempty"`

	Placeholder PlaceholderConfig `yaml:"placeholder,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
}

// PlaceholderConfig controls sentinel substitution during traversal.
type PlaceholderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Content string `yaml:"content,omitempty"`
}

// LoggingConfig controls CLI logging.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// Default returns a configuration with sensible defaults applied.
func Default() *Config {
	return &Config{
		Input:  "./models",
		Output: "./out",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a configuration file, applying defaults for absent fields.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mderrors.ConfigNotFound(path)
		}
		return nil, mderrors.FileError("read", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, mderrors.Wrap(err, mderrors.CategoryConfig, mderrors.SeverityFatal, "failed to parse configuration").
			WithContext("path", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Input == "" {
		return mderrors.ConfigRequired("input")
	}
	if c.Output == "" {
		return mderrors.ConfigRequired("output")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return mderrors.ConfigInvalid("logging.level", "must be one of debug, info, warn, error")
	}
	if c.Placeholder.Enabled && c.Placeholder.Content == "" {
		return mderrors.ConfigInvalid("placeholder.content", "required when placeholder mode is enabled")
	}
	return nil
}
