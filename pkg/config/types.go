// Package config provides configuration loading and validation for chatlinks.
package config

import "time"

// Config is the root configuration structure loaded from YAML. Every field
// has a default; a config file is optional and command-line flags take
// precedence over it.
type Config struct {
	// Concurrency bounds the number of in-flight metadata fetches.
	Concurrency int `yaml:"concurrency"`

	// FetchTimeout is the per-request fetch budget.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// UserAgent is sent on every metadata request.
	UserAgent string `yaml:"user_agent"`

	// Output is the default report format (text, json, csv, xlsx).
	Output string `yaml:"output"`

	// SheetName names the worksheet for xlsx output.
	SheetName string `yaml:"sheet_name"`
}
