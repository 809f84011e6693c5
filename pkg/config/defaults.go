package config

import (
	"os"
	"strconv"
	"time"

	"chatlinks/pkg/fetcher"
)

// Default values for configuration.
const (
	DefaultConcurrency  = 10
	DefaultFetchTimeout = 15 * time.Second
	DefaultOutput       = "text"
	DefaultSheetName    = "Links"
)

// Environment variable names.
const (
	EnvUserAgent   = "CHATLINKS_USER_AGENT"
	EnvConcurrency = "CHATLINKS_CONCURRENCY"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Concurrency:  DefaultConcurrency,
		FetchTimeout: DefaultFetchTimeout,
		UserAgent:    fetcher.DefaultUserAgent,
		Output:       DefaultOutput,
		SheetName:    DefaultSheetName,
	}
}

// FromEnvironment returns the default configuration with environment
// variable overrides applied. Used when no config file is given.
func FromEnvironment() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	return cfg
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if ua := os.Getenv(EnvUserAgent); ua != "" {
		c.UserAgent = ua
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Concurrency = n
		}
	}
}
