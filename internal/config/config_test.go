package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/config"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // registers the restore
		require.NoError(t, os.Unsetenv(k))
	}
}

// TestLoad_defaults verifies that every variable falls back to its default
// when nothing is set.
func TestLoad_defaults(t *testing.T) {
	unsetenv(t, "HOST", "PORT", "LOG_LEVEL", "CORS_ORIGINS", "STORE_DRIVER", "DATA_DIR", "DATABASE_URL", "MAX_UPLOAD_BYTES")
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Host)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "127.0.0.1:8080", cfg.ListenAddr())
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, config.DriverFile, cfg.StoreDriver)
	require.Equal(t, filepath.Join(home, ".triplog"), cfg.DataDir)
	require.Empty(t, cfg.DatabaseURL)
	require.EqualValues(t, 32<<20, cfg.MaxUploadBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/trips")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATA_DIR", "/var/lib/triplog")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "postgres://user:pass@db:5432/trips", cfg.DatabaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.DriverPostgres, cfg.StoreDriver)
	require.Equal(t, "/var/lib/triplog", cfg.DataDir)
	require.EqualValues(t, 1024, cfg.MaxUploadBytes)
}

// TestLoad_postgresRequiresURL verifies that the postgres driver cannot start
// without DATABASE_URL, and that the error names the missing variable.
func TestLoad_postgresRequiresURL(t *testing.T) {
	unsetenv(t, "DATABASE_URL")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATA_DIR", t.TempDir())

	_, err := config.Load()

	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_invalidValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("DATA_DIR", t.TempDir())

	_, err := config.Load()

	require.ErrorContains(t, err, "STORE_DRIVER")
	require.ErrorContains(t, err, "LOG_LEVEL")
}

func TestLoad_malformedNumber(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	_, err := config.Load()

	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := config.ParseLevel("warn")
	require.NoError(t, err)
	require.Equal(t, "WARN", l.String())

	_, err = config.ParseLevel("")
	require.Error(t, err)
}

func TestListenAddr_IPv6(t *testing.T) {
	cfg := config.Config{Host: "::1", Port: "8080"}
	require.Equal(t, "[::1]:8080", cfg.ListenAddr())
}
