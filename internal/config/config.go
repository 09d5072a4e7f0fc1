// Package config loads the optional user configuration file. Missing file
// or fields fall back to defaults; the app never refuses to start over
// configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings.
type Config struct {
	// DataDir overrides where the database file is kept. Empty means the
	// platform data directory.
	DataDir string `yaml:"data_dir"`

	// DefaultCategories seed the category set the first time the app runs
	// with no persisted categories.
	DefaultCategories []string `yaml:"default_categories"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DefaultCategories: []string{"Personal", "Work", "Study"},
	}
}

// DefaultPath returns the expected location of the config file.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "gestor", "config.yaml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DBPath resolves the database file location, creating the directory if
// needed.
func (c *Config) DBPath() (string, error) {
	if c.DataDir == "" {
		return "", nil // let the store pick its default
	}
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(c.DataDir, "gestor.db"), nil
}
