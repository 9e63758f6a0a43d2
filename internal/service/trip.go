package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	c *Collection
}

// NewTripService constructs a TripService over the shared Collection.
func NewTripService(c *Collection) *TripService {
	return &TripService{c: c}
}

// Create validates and persists a new trip at the front of the collection.
// Returns domain.ErrValidation if the name is empty or whitespace-only.
func (s *TripService) Create(ctx context.Context, f domain.TripFields) (domain.Trip, error) {
	f = normalizeFields(f)
	if f.Name == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: enter trip name", domain.ErrValidation)
	}

	t := domain.Trip{ID: domain.NewID()}
	f.Apply(&t)
	t.Normalize()

	err := s.c.mutate(ctx, func(trips *[]domain.Trip) error {
		*trips = append([]domain.Trip{t}, *trips...)
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return t.Clone(), nil
}

// Find returns a single trip by id.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) Find(ctx context.Context, id string) (domain.Trip, error) {
	t, err := s.c.find(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Find: %w", err)
	}
	return t, nil
}

// List returns the whole collection in stored order.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	return s.c.snapshot(), nil
}

// Query returns the filtered, sorted view of the collection with its stats.
// It never writes.
func (s *TripService) Query(ctx context.Context, q domain.Query) (domain.View, error) {
	return domain.BuildView(s.c.snapshot(), q), nil
}

// Update replaces the mutable fields of an existing trip. The id, itinerary
// and images are left untouched.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Update(ctx context.Context, id string, f domain.TripFields) (domain.Trip, error) {
	f = normalizeFields(f)

	var updated domain.Trip
	err := s.c.mutateTrip(ctx, id, func(t *domain.Trip) error {
		f.Apply(t)
		updated = t.Clone()
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip with its itinerary and gallery, and cancels any image
// uploads still running for it. Deleting an absent trip is a no-op.
func (s *TripService) Delete(ctx context.Context, id string) error {
	err := s.c.mutate(ctx, func(trips *[]domain.Trip) error {
		s.c.cancelTasksLocked(id)
		kept := (*trips)[:0:0]
		for _, t := range *trips {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(*trips) {
			return errUnchanged
		}
		*trips = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ImportMerge prepends the trips in payload, a JSON array of trip objects, to
// the collection as-is. Identifiers are not reconciled, so duplicates are
// kept. Returns the number of trips imported.
// Returns domain.ErrMalformedInput, with no state change, for any other payload.
func (s *TripService) ImportMerge(ctx context.Context, payload []byte) (int, error) {
	incoming, err := repo.DecodeTrips(payload)
	if err != nil {
		return 0, fmt.Errorf("service.TripService.ImportMerge: %w", err)
	}

	err = s.c.mutate(ctx, func(trips *[]domain.Trip) error {
		*trips = append(incoming, *trips...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("service.TripService.ImportMerge: %w", err)
	}
	return len(incoming), nil
}

// normalizeFields trims the free-form identity fields and defaults the category.
//   - Name and Location are trimmed.
//   - An unknown or empty category becomes leisure.
func normalizeFields(f domain.TripFields) domain.TripFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Location = strings.TrimSpace(f.Location)
	if c, ok := domain.ParseCategory(string(f.Category)); ok {
		f.Category = c
	} else {
		f.Category = domain.CategoryLeisure
	}
	return f
}
