package service

import (
	"context"
	"fmt"

	"github.com/pkordes/triplog/internal/domain"
)

// ExportService assembles the downloadable snapshots of the collection.
type ExportService struct {
	c *Collection
}

// NewExportService constructs an ExportService over the shared Collection.
func NewExportService(c *Collection) *ExportService {
	return &ExportService{c: c}
}

// Trips returns the trips matching q in view order. The zero Query exports
// the whole collection in stored order.
func (s *ExportService) Trips(ctx context.Context, q domain.Query) ([]domain.Trip, error) {
	return domain.Apply(s.c.snapshot(), q), nil
}

// Rows returns the flat export of the trips matching q: one row per
// itinerary item, one row for a trip without items.
func (s *ExportService) Rows(ctx context.Context, q domain.Query) ([]domain.ExportRow, error) {
	trips, err := s.Trips(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}
	return domain.ExportRows(trips), nil
}

// Trip returns one trip for single-trip export together with its download
// file name, "<name>.json" or "trip.json" for an unnamed trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) Trip(ctx context.Context, id string) (domain.Trip, string, error) {
	t, err := s.c.find(id)
	if err != nil {
		return domain.Trip{}, "", fmt.Errorf("service.ExportService.Trip: %w", err)
	}
	name := t.Name
	if name == "" {
		name = "trip"
	}
	return t, name + ".json", nil
}
