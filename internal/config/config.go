// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataSource is a file path or an http(s) URL holding the dataset.
	DataSource string `koanf:"data_source"`

	// FetchTimeoutMS bounds a single dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// PageSize is the default number of rows per page.
	PageSize int `koanf:"page_size"`

	// MaxPageSize caps the size query parameter.
	MaxPageSize int `koanf:"max_page_size"`

	// ReloadIntervalS re-fetches the dataset periodically; 0 disables it.
	ReloadIntervalS int `koanf:"reload_interval_s"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataSource:      "data/salaries.csv",
		FetchTimeoutMS:  5_000,
		PageSize:        25,
		MaxPageSize:     500,
		ReloadIntervalS: 0,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// ReloadInterval returns ReloadIntervalS as a duration.
func (c *Config) ReloadInterval() time.Duration {
	return time.Duration(c.ReloadIntervalS) * time.Second
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataSource) == "":
		return fmt.Errorf("%w: data_source must not be empty", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive, got %d", ErrInvalidConfig, c.FetchTimeoutMS)
	case c.PageSize < 1:
		return fmt.Errorf("%w: page_size must be at least 1, got %d", ErrInvalidConfig, c.PageSize)
	case c.MaxPageSize < c.PageSize:
		return fmt.Errorf("%w: max_page_size %d is below page_size %d", ErrInvalidConfig, c.MaxPageSize, c.PageSize)
	case c.ReloadIntervalS < 0:
		return fmt.Errorf("%w: reload_interval_s must not be negative, got %d", ErrInvalidConfig, c.ReloadIntervalS)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
