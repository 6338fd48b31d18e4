// Package config handles configuration loading for the server and the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Defaults for values absent from the file. Zero limits also fall back to
// their defaults; zero precision is kept.
const (
	DefaultPrecision      = 6
	DefaultMaxInputLength = 256
	DefaultBatchLimit     = 1000
)

// Config represents the configuration file structure.
type Config struct {
	CORSOrigin     string `yaml:"cors_origin,omitempty" toml:"cors_origin" json:"cors_origin,omitempty"`
	Precision      int    `yaml:"precision,omitempty" toml:"precision" json:"precision"`
	MaxInputLength int    `yaml:"max_input_length,omitempty" toml:"max_input_length" json:"max_input_length"`
	BatchLimit     int    `yaml:"batch_limit,omitempty" toml:"batch_limit" json:"batch_limit"`
}

// Default returns a configuration with all defaults set.
func Default() *Config {
	return &Config{
		Precision:      DefaultPrecision,
		MaxInputLength: DefaultMaxInputLength,
		BatchLimit:     DefaultBatchLimit,
	}
}

// Load reads a YAML or TOML configuration file, chosen by extension.
// A missing file is not an error when optional is set; defaults are returned.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode parses configuration data. ext selects the format: ".toml" for
// TOML, anything else is treated as YAML.
func Decode(data []byte, ext string) (*Config, error) {
	cfg := *Default()

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Precision < 0 || c.Precision > 15:
		return fmt.Errorf("precision must be between 0 and 15, got %d", c.Precision)
	case c.MaxInputLength < 0:
		return fmt.Errorf("max_input_length must not be negative, got %d", c.MaxInputLength)
	case c.BatchLimit < 0:
		return fmt.Errorf("batch_limit must not be negative, got %d", c.BatchLimit)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxInputLength == 0 {
		c.MaxInputLength = DefaultMaxInputLength
	}
	if c.BatchLimit == 0 {
		c.BatchLimit = DefaultBatchLimit
	}
}
