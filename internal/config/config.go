// Package config loads the optional collcheck configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults for the baseline table location.
const (
	DefaultTable  = "lc_collate_checksums"
	DefaultSchema = "public"
)

// Config holds the file-configurable defaults. Command-line flags override
// every field.
type Config struct {
	LocalePath string `yaml:"locale_path,omitempty"` // locale search root
	Table      string `yaml:"table,omitempty"`       // baseline table name
	Schema     string `yaml:"schema,omitempty"`      // baseline table schema
}

// Path returns the configuration file location (~/.collcheck.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".collcheck.yaml"), nil
}

// Load reads the configuration file. A missing file is not an error: the
// zero Config is returned and flag defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a configuration file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
