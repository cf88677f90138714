// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override the Vite dev
	// server default.
	// Parsed from CORS_ORIGINS by LoadFrom.
	CORSOrigins []string

	// StorageDriver selects the blob store backend: file, sqlite, postgres or memory.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`

	// DataDir is the directory of the file backend and of the SQLite database file.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string `env:"DATABASE_URL"`

	// CatalogDir optionally overrides the embedded catalog files.
	CatalogDir string `env:"CATALOG_DIR"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// OTelEndpoint enables OTLP/HTTP trace export when set, e.g. "http://localhost:4318".
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom reads configuration from environ instead of the process
// environment. Returns an error listing any required variables that are not
// set or any values that are invalid.
func LoadFrom(environ map[string]string) (Config, error) {
	var raw struct {
		Config
		CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`
	}
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg := raw.Config
	cfg.CORSOrigins = splitCSV(raw.CORSOrigins)
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	switch cfg.StorageDriver {
	case DriverFile, DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return Config{}, fmt.Errorf("config.Load: STORAGE_DRIVER %q is not one of file, sqlite, postgres, memory", cfg.StorageDriver)
	}

	var missing []string
	if cfg.StorageDriver == DriverPostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("config.Load: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
