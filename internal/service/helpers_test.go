package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/service"
)

// memRepo is an in-memory repo.CollectionRepo that records every save.
// Set failSave to make the next saves fail.
type memRepo struct {
	stored   []domain.Trip
	saves    int
	failSave error
}

func (m *memRepo) Load(context.Context) ([]domain.Trip, error) {
	return domain.CloneTrips(m.stored), nil
}

func (m *memRepo) Save(_ context.Context, trips []domain.Trip) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.saves++
	m.stored = domain.CloneTrips(trips)
	return nil
}

// compile-time check: memRepo must satisfy repo.CollectionRepo.
var _ repo.CollectionRepo = (*memRepo)(nil)

var errDiskFull = errors.New("quota exceeded")

// newCollection returns a Collection preloaded with trips.
func newCollection(t *testing.T, trips ...domain.Trip) (*service.Collection, *memRepo) {
	t.Helper()
	r := &memRepo{stored: trips}
	c, err := service.NewCollection(context.Background(), r)
	require.NoError(t, err)
	return c, r
}

func tripWithItems(id string, itemIDs ...string) domain.Trip {
	t := domain.Trip{ID: id, Name: "Trip " + id, Category: domain.CategoryLeisure}
	for _, iid := range itemIDs {
		t.Itinerary = append(t.Itinerary, domain.ItineraryItem{ID: iid, Text: "do " + iid})
	}
	t.Normalize()
	return t
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
