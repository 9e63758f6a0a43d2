package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql (goose)
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite" driver for database/sql

	"github.com/pkordes/triplog/internal/config"
	"github.com/pkordes/triplog/migrations"
)

// Options selects and configures a storage backend.
type Options struct {
	// Driver is one of config.DriverFile, config.DriverSQLite or config.DriverPostgres.
	Driver string
	// DataDir holds the slot files (file) or triplog.db (sqlite).
	DataDir string
	// DatabaseURL is the Postgres connection string (postgres only).
	DatabaseURL string
}

// Open constructs the SlotRepo for opts, applying pending migrations for the
// SQL backends. The returned close function releases the backend's resources.
func Open(ctx context.Context, opts Options, log *slog.Logger) (SlotRepo, func(), error) {
	switch opts.Driver {
	case config.DriverFile:
		r, err := NewFileSlotRepo(opts.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.DebugContext(ctx, "file store opened", "dir", opts.DataDir)
		return r, func() {}, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, filepath.Join(opts.DataDir, "triplog.db"))
		if err != nil {
			return nil, nil, err
		}
		log.DebugContext(ctx, "sqlite store opened", "dir", opts.DataDir)
		return NewSQLiteSlotRepo(db), func() { db.Close() }, nil

	case config.DriverPostgres:
		if err := migratePostgres(ctx, opts.DatabaseURL); err != nil {
			return nil, nil, err
		}
		// pgxpool.New does not open connections immediately; Ping verifies
		// the database is reachable before the first save.
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repo.Open: ping: %w", err)
		}
		log.DebugContext(ctx, "postgres store opened")
		return NewPostgresSlotRepo(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("repo.Open: unknown store driver %q", opts.Driver)
}

// OpenSQLite opens (creating if needed) the SQLite database at path, enables
// WAL, and applies migrations. Pass ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: setting WAL mode: %w", err)
	}
	if err := Migrate(ctx, db, goose.DialectSQLite3, "sqlite"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migratePostgres(ctx context.Context, dsn string) error {
	if dsn == "" {
		return errors.New("repo.Open: postgres driver requires a database URL")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("repo.Open: open migration connection: %w", err)
	}
	defer db.Close()
	return Migrate(ctx, db, goose.DialectPostgres, "postgres")
}

// Migrate applies every pending migration in the named migrations directory.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := migrations.For(dir)
	if err != nil {
		return fmt.Errorf("repo.Migrate: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("repo.Migrate: up: %w", err)
	}
	return nil
}
