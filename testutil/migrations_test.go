package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/migrations"
	"github.com/pkordes/triplog/testutil"
)

// TestMigrations_Postgres verifies the full migration round-trip against a
// real Postgres database: up, assert the slots table exists, reset, assert it
// is gone. Skipped when TEST_DATABASE_URL is not set.
func TestMigrations_Postgres(t *testing.T) {
	db := testutil.NewSQLDB(t)
	exists := func(table string) bool {
		const q = `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public'
				AND   table_name   = $1
			)`
		var ok bool
		require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&ok))
		return ok
	}
	runRoundTrip(t, db, goose.DialectPostgres, "postgres", exists)
}

// TestMigrations_SQLite runs the same round-trip against a scratch SQLite file.
func TestMigrations_SQLite(t *testing.T) {
	// NewSQLite has already migrated up; the round-trip resets first.
	db := testutil.NewSQLite(t)
	exists := func(table string) bool {
		var n int
		err := db.QueryRowContext(context.Background(),
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		return n == 1
	}
	runRoundTrip(t, db, goose.DialectSQLite3, "sqlite", exists)
}

func runRoundTrip(t *testing.T, db *sql.DB, dialect goose.Dialect, dir string, exists func(string) bool) {
	t.Helper()

	fsys, err := migrations.For(dir)
	require.NoError(t, err)
	provider, err := goose.NewProvider(dialect, db, fsys)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package may already have migrated this database. Reset to
	// version 0 so the test is order-independent.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")
	assert.True(t, exists("slots"), "expected table slots to exist")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assert.False(t, exists("slots"), "expected table slots to be dropped")
}
