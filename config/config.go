// Package config loads server configuration from a YAML file with
// sensible defaults for every field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`

	Rows         int `yaml:"rows"`
	Cols         int `yaml:"cols"`
	MaxRows      int `yaml:"max_rows"`
	MaxCols      int `yaml:"max_cols"`
	HistoryLimit int `yaml:"history_limit"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:         ":8080",
		DataDir:      "DATA",
		Rows:         100,
		Cols:         26,
		MaxRows:      100000,
		MaxCols:      500,
		HistoryLimit: 100,
		LogLevel:     "info",
	}
}

// Load reads a YAML config file, overlaying it on the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
