// Package config holds the gdsinspect settings and their loading from a
// YAML file and GDSINSPECT_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how results are printed.
type OutputFormat string

// Output formats.
const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultFileName is looked up in the working directory when no
// configuration file is given explicitly.
const DefaultFileName = ".gdsinspect.yaml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the gdsinspect configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Format is the output format.
	Format OutputFormat `yaml:"format"`

	// Color is auto, always or never.
	Color string `yaml:"color"`

	// Jobs is the number of files processed concurrently. 0 means one per CPU.
	Jobs int `yaml:"jobs"`

	// MaxDepth limits the depth printed by the tree command. 0 means no limit.
	MaxDepth int `yaml:"max_depth"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Format:   FormatText,
		Color:    ColorAuto,
	}
}

// Workers returns the effective number of concurrent jobs.
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !slices.Contains([]OutputFormat{FormatText, FormatJSON, FormatYAML}, c.Format) {
		return fmt.Errorf("%w: unknown format %q (expected text, json or yaml)", ErrInvalidConfig, c.Format)
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Color) {
		return fmt.Errorf("%w: unknown color mode %q (expected auto, always or never)", ErrInvalidConfig, c.Color)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "warning", "error"}, c.LogLevel) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative", ErrInvalidConfig)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative", ErrInvalidConfig)
	}
	return nil
}

// FromYAML parses a configuration on top of the defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Load resolves the configuration. Precedence, highest first:
//  1. environment variables (GDSINSPECT_*)
//  2. the file at path, or DefaultFileName if path is empty and it exists
//  3. built-in defaults
//
// Command-line flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = FromYAML(data)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
