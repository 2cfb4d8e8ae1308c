// Package config loads helproom configuration from .helproom/config.yaml
// with sensible defaults and environment overrides. The application runs
// fine with no config file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all helproom configuration.
type Config struct {
	// Database is the path to the SQLite inventory file, relative to the
	// working directory unless absolute.
	Database string `yaml:"database"`

	// UI settings for the terminal interface.
	UI UIConfig `yaml:"ui"`

	// Logging controls the categorized file logger.
	Logging LoggingConfig `yaml:"logging"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme string `yaml:"theme"` // "dark", "light", or "auto"
}

// LoggingConfig controls debug logging.
type LoggingConfig struct {
	Debug      bool            `yaml:"debug"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Database: "inventory.db",
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
		},
	}
}

// DefaultPath returns the config file path under the given workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".helproom", "config.yaml")
}

// Load reads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file, creating the directory.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if db := os.Getenv("HELPROOM_DB"); db != "" {
		c.Database = db
	}
	if os.Getenv("HELPROOM_DEBUG") == "1" {
		c.Logging.Debug = true
		c.Logging.Level = "debug"
	}
	if theme := os.Getenv("HELPROOM_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}
