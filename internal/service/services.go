package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/triplog/internal/imaging"
	"github.com/pkordes/triplog/internal/repo"
)

// Services bundles every service sharing one Collection. The HTTP server and
// the CLI both wire their handlers from it.
type Services struct {
	Trips       *TripService
	Itinerary   *ItineraryService
	Gallery     *GalleryService
	Export      *ExportService
	Preferences *PreferencesService
}

// New loads the collection from slots and wires every service around it.
func New(ctx context.Context, slots repo.SlotRepo, log *slog.Logger) (*Services, error) {
	c, err := NewCollection(ctx, repo.NewCollectionStore(slots, log))
	if err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}
	return &Services{
		Trips:       NewTripService(c),
		Itinerary:   NewItineraryService(c),
		Gallery:     NewGalleryService(c, imaging.NewDownscaler()),
		Export:      NewExportService(c),
		Preferences: NewPreferencesService(repo.NewPreferencesStore(slots)),
	}, nil
}
