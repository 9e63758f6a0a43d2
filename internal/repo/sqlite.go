package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pkordes/triplog/internal/domain"
)

// sqliteSlotRepo is the SQLite implementation of SlotRepo.
type sqliteSlotRepo struct {
	db *sql.DB
}

// NewSQLiteSlotRepo constructs a SlotRepo over an open SQLite database whose
// migrations have already been applied.
func NewSQLiteSlotRepo(db *sql.DB) SlotRepo {
	return &sqliteSlotRepo{db: db}
}

func (r *sqliteSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo.sqliteSlotRepo.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.sqliteSlotRepo.Get %q: %w", key, err)
	}
	return value, nil
}

func (r *sqliteSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	const q = `INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, q, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("repo.sqliteSlotRepo.Put %q: %w", key, err)
	}
	return nil
}
