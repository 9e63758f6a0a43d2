package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
)

// shortIDLen is how many trailing characters of an id the listings show.
// UUIDv7 ids share their leading timestamp bits, so the tail is what differs.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[len(id)-shortIDLen:]
}

// matchRef reports whether ref names id: the full id, or a unique prefix or
// suffix of it.
func matchRef(id, ref string) bool {
	return id == ref || strings.HasPrefix(id, ref) || strings.HasSuffix(id, ref)
}

// resolveTrip finds the trip named by ref.
func resolveTrip(ctx context.Context, app *App, ref string) (domain.Trip, error) {
	if t, err := app.Services.Trips.Find(ctx, ref); err == nil {
		return t, nil
	}
	all, err := app.Services.Trips.List(ctx)
	if err != nil {
		return domain.Trip{}, err
	}
	var hits []domain.Trip
	for _, t := range all {
		if ref != "" && matchRef(t.ID, ref) {
			hits = append(hits, t)
		}
	}
	switch len(hits) {
	case 0:
		return domain.Trip{}, fmt.Errorf("trip %q: %w", ref, domain.ErrNotFound)
	case 1:
		return hits[0], nil
	default:
		return domain.Trip{}, fmt.Errorf("trip %q is ambiguous (%d matches); use more characters", ref, len(hits))
	}
}

// resolveItem finds the itinerary item of t named by ref.
func resolveItem(t domain.Trip, ref string) (domain.ItineraryItem, error) {
	var hits []domain.ItineraryItem
	for _, it := range t.Itinerary {
		if it.ID == ref {
			return it, nil
		}
		if ref != "" && matchRef(it.ID, ref) {
			hits = append(hits, it)
		}
	}
	switch len(hits) {
	case 0:
		return domain.ItineraryItem{}, fmt.Errorf("item %q: %w", ref, domain.ErrNotFound)
	case 1:
		return hits[0], nil
	default:
		return domain.ItineraryItem{}, fmt.Errorf("item %q is ambiguous (%d matches); use more characters", ref, len(hits))
	}
}
