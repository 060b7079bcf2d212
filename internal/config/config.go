// Package config resolves client configuration from, in increasing
// priority: the YAML config file, EDUSUITE_* environment variables, and
// command-line flags (applied by the caller).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds client settings.
type Config struct {
	// APIBase is the API root, e.g. "http://localhost:8000/api".
	APIBase string `yaml:"api_base"`

	// DB overrides the local database path.
	DB string `yaml:"db"`
}

// Load reads the config file (when present) and applies env overrides.
// A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	var cfg Config

	path, err := defaultPath()
	if err == nil {
		data, readErr := os.ReadFile(path)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(readErr):
			return Config{}, fmt.Errorf("read %s: %w", path, readErr)
		}
	}

	if v := os.Getenv("EDUSUITE_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("EDUSUITE_DB"); v != "" {
		cfg.DB = v
	}

	return cfg, nil
}

// defaultPath resolves $XDG_CONFIG_HOME/edusuite/config.yaml, falling
// back to ~/.config.
func defaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "edusuite", "config.yaml"), nil
}
