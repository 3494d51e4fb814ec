// Package config provides centralized configuration management for the
// application. It loads settings from environment variables with sensible
// defaults and validates them on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Validator ValidatorConfig
	RefData   RefDataConfig
	Rate      RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ValidatorConfig holds constancia-database settings.
type ValidatorConfig struct {
	// DatabaseURL is where the constancia workbook lives. It must point
	// at the raw .xlsx bytes, not a viewer page.
	DatabaseURL string `env:"DATABASE_URL" default:"https://raw.githubusercontent.com/DA-itd/web2/main/database.xlsx"`

	// FetchOnStartup loads the remote workbook when the server boots
	// (default: true). With it off, the database only arrives via
	// upload or an explicit refresh call.
	FetchOnStartup bool `env:"DATABASE_FETCH_ON_STARTUP" default:"true"`

	// FolioAliases is a comma-separated list of recognized folio column
	// headers. Empty means the built-in canonical list. Institution-
	// specific header variants belong here, not in code.
	FolioAliases []string `env:"FOLIO_ALIASES"`

	// HeaderScanRows bounds the per-sheet header search (default: 10)
	HeaderScanRows int `env:"HEADER_SCAN_ROWS" default:"10"`

	// MaxUploadSize is the maximum workbook size in bytes (default: 20MB)
	MaxUploadSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`
}

// RefDataConfig holds reference-data (teachers/departments/courses) settings.
type RefDataConfig struct {
	// BaseURL is the directory the CSV files are served from.
	BaseURL string `env:"REFDATA_BASE_URL" default:"https://raw.githubusercontent.com/DA-itd/web/main/"`

	// FetchTimeout bounds each remote fetch (default: 30s)
	FetchTimeout time.Duration `env:"REFDATA_FETCH_TIMEOUT" default:"30s"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP limit (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if c.Validator.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.Validator.HeaderScanRows <= 0 {
		errs = append(errs, "HEADER_SCAN_ROWS must be positive")
	}
	if c.Validator.MaxUploadSize <= 0 {
		errs = append(errs, "UPLOAD_MAX_FILE_SIZE must be positive")
	}

	if c.RefData.BaseURL == "" {
		errs = append(errs, "REFDATA_BASE_URL is required")
	}
	if c.RefData.FetchTimeout <= 0 {
		errs = append(errs, "REFDATA_FETCH_TIMEOUT must be positive")
	}

	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be debug, info, warn, or error", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
