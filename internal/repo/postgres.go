package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/triplog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgSlotRepo is the Postgres implementation of SlotRepo.
type pgSlotRepo struct {
	db db
}

// NewPostgresSlotRepo constructs a SlotRepo backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresSlotRepo(db db) SlotRepo {
	return &pgSlotRepo{db: db}
}

// Get reads one slot value.
func (r *pgSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM slots WHERE key = @key`

	var value []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.pgSlotRepo.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.pgSlotRepo.Get %q: %w", key, err)
	}
	return value, nil
}

// Put upserts one slot value in a single statement, so readers never see a
// partially written value.
func (r *pgSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO slots (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at`

	args := pgx.NamedArgs{
		"key":   key,
		"value": value,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.pgSlotRepo.Put %q: %w", key, err)
	}
	return nil
}
