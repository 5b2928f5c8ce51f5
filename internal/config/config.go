// Package config loads the planq configuration file. Flags always win
// over file values; the file only supplies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-level settings.
type Config struct {
	// DataDir is the directory holding the exported table files.
	DataDir string `yaml:"data_dir"`
	// DefaultFormat is the output format used when --format is absent.
	DefaultFormat string `yaml:"default_format"`
	// MaxDisplayRows caps table output when no --limit is given.
	// Zero means unlimited.
	MaxDisplayRows int `yaml:"max_display_rows"`
	// Verbose enables debug logging and execution stats.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultFormat:  "table",
		MaxDisplayRows: 100,
	}
}

// DefaultPath is the well-known config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("os.UserConfigDir: %w", err)
	}
	return filepath.Join(dir, "planq", "config.yaml"), nil
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. A present but invalid file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if cfg.DataDir != "" {
		expanded, err := expandHome(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		cfg.DataDir = expanded
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("yaml.Marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("os.UserHomeDir: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
