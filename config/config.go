// Package config provides configuration loading and management for castrings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete castrings configuration
type Config struct {
	Compiler string      `yaml:"compiler"`
	Sysroot  string      `yaml:"sysroot"`
	Header   string      `yaml:"header"`
	Output   string      `yaml:"output"`
	Watch    WatchConfig `yaml:"watch"`
}

// WatchConfig configures the optional regenerate-on-change mode
type WatchConfig struct {
	// Enabled turns on watch mode (equivalent to the --watch flag)
	Enabled bool `yaml:"enabled"`
	// DebounceDelay is how long to wait for more changes before regenerating
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Compiler: "clang",
		Header:   "CoreAudio/AudioServerPlugIn.h",
		Watch: WatchConfig{
			Enabled:       false,
			DebounceDelay: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Compiler == "" {
		return fmt.Errorf("compiler is required")
	}
	if c.Header == "" {
		return fmt.Errorf("header is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounce_delay must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Compiler != "" {
		c.Compiler = other.Compiler
	}
	if other.Sysroot != "" {
		c.Sysroot = other.Sysroot
	}
	if other.Header != "" {
		c.Header = other.Header
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}
