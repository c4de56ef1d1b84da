package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the yaml configuration of the dlq tool.
type Config struct {
	// DSN is the Postgres connection string.
	DSN string `yaml:"dsn"`

	// FunctionName overrides the server-side query function. Empty keeps
	// the engine default.
	FunctionName string `yaml:"function_name"`

	// Verbose enables debug logging of rendered queries and timings.
	Verbose bool `yaml:"verbose"`
}

var errMissingDSN = errors.New("config: dsn must be set")

func loadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("DLQ_DSN")
	}

	if cfg.DSN == "" {
		return Config{}, errMissingDSN
	}

	return cfg, nil
}
