package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/testutil"
)

// backends returns one constructor per SlotRepo implementation so the same
// contract tests run against each. Postgres skips without TEST_DATABASE_URL.
func backends() map[string]func(t *testing.T) repo.SlotRepo {
	return map[string]func(t *testing.T) repo.SlotRepo{
		"file": func(t *testing.T) repo.SlotRepo {
			r, err := repo.NewFileSlotRepo(t.TempDir())
			require.NoError(t, err)
			return r
		},
		"sqlite": func(t *testing.T) repo.SlotRepo {
			return repo.NewSQLiteSlotRepo(testutil.NewSQLite(t))
		},
		"postgres": func(t *testing.T) repo.SlotRepo {
			pool := testutil.NewPool(t)
			tx, err := pool.Begin(context.Background())
			require.NoError(t, err, "begin transaction")
			t.Cleanup(func() {
				// Rollback discards all changes made during the test.
				_ = tx.Rollback(context.Background())
			})
			return repo.NewPostgresSlotRepo(tx)
		},
	}
}

func TestSlotRepo_GetMissing(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			r := open(t)

			_, err := r.Get(context.Background(), "absent")

			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestSlotRepo_PutThenGet(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			ctx := context.Background()

			require.NoError(t, r.Put(ctx, "palette", []byte("aqua")))
			got, err := r.Get(ctx, "palette")

			require.NoError(t, err)
			assert.Equal(t, []byte("aqua"), got)
		})
	}
}

func TestSlotRepo_PutOverwrites(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			ctx := context.Background()

			require.NoError(t, r.Put(ctx, repo.SlotTrips, []byte(`[{"id":"a"}]`)))
			require.NoError(t, r.Put(ctx, repo.SlotTrips, []byte(`[]`)))
			got, err := r.Get(ctx, repo.SlotTrips)

			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), got)
		})
	}
}

func TestFileSlotRepo_RejectsUnsafeKey(t *testing.T) {
	r, err := repo.NewFileSlotRepo(t.TempDir())
	require.NoError(t, err)

	err = r.Put(context.Background(), "../escape", []byte("x"))

	assert.Error(t, err)
}
