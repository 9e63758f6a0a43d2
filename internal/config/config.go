// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted in STORE_DRIVER and by repo.Open.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration values for the server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Host is the interface the HTTP server binds. Loopback by default.
	Host string `env:"HOST" envDefault:"127.0.0.1"`

	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// StoreDriver selects the slot backend: file, sqlite or postgres.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`

	// DataDir holds the file slots or the SQLite database.
	// Defaults to ~/.triplog.
	DataDir string `env:"DATA_DIR"`

	// DatabaseURL is the Postgres connection string. Required only for the
	// postgres driver.
	DatabaseURL string `env:"DATABASE_URL"`

	// MaxUploadBytes caps every request body, image uploads included.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"33554432"`
}

// Load reads configuration from environment variables and returns a validated
// Config. Returns an error naming every invalid or missing variable.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: resolve DATA_DIR: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".triplog")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains([]string{DriverFile, DriverSQLite, DriverPostgres}, c.StoreDriver) {
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unknown driver %q", c.StoreDriver))
	}
	if c.StoreDriver == DriverPostgres && c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL: required when STORE_DRIVER=postgres"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES: must be positive"))
	}
	return errors.Join(errs...)
}

// ListenAddr is the host:port the HTTP server binds.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ParseLevel maps a LOG_LEVEL value to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return l, nil
}

// trimAll trims each entry, dropping empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
