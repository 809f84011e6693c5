package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// validOutputs are the formats the report package knows how to render.
var validOutputs = map[string]bool{
	"text": true,
	"json": true,
	"csv":  true,
	"xlsx": true,
}

// Load reads and validates a configuration file, starting from defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.Concurrency < 1 {
		return errors.New("concurrency: must be >= 1")
	}

	if cfg.FetchTimeout <= 0 {
		return errors.New("fetch_timeout: must be positive")
	}

	if cfg.UserAgent == "" {
		return errors.New("user_agent: must not be empty")
	}

	if !validOutputs[cfg.Output] {
		return fmt.Errorf("output: unknown format %q (use text, json, csv, or xlsx)", cfg.Output)
	}

	if cfg.SheetName == "" {
		return errors.New("sheet_name: must not be empty")
	}

	return nil
}
