// Package config loads tala's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDataDir is where the task and interruption documents live.
	DefaultDataDir = ".tala"

	// DefaultRetentionDays is how long completed tasks are kept.
	DefaultRetentionDays = 7

	configFileName = "config.yaml"
)

// Config holds the user-tunable settings.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	RetentionDays int    `yaml:"retention_days"`
	Export        Export `yaml:"export"`
}

// Export configures the markdown export side channel.
type Export struct {
	Markdown bool   `yaml:"markdown"`
	Path     string `yaml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataDir:       DefaultDataDir,
		RetentionDays: DefaultRetentionDays,
		Export: Export{
			Markdown: false,
			Path:     "TASKS.md",
		},
	}
}

// Load reads a config file. A missing file is not an error: defaults apply.
// Unset fields fall back to their defaults too.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = DefaultRetentionDays
	}
	if cfg.Export.Path == "" {
		cfg.Export.Path = "TASKS.md"
	}

	return cfg, nil
}

// LoadFromDirectory loads <dir>/.tala/config.yaml, tolerating its absence.
func LoadFromDirectory(dir string) (Config, error) {
	return Load(filepath.Join(dir, DefaultDataDir, configFileName))
}
