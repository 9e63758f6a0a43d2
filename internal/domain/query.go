package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortMode selects the ordering of a filtered view.
type SortMode string

const (
	// SortNone keeps the stored (newest-inserted-first) order.
	SortNone SortMode = ""
	// SortLatest orders by id descending: most recently created first.
	SortLatest SortMode = "latest"
	// SortOldest orders by id ascending.
	SortOldest SortMode = "oldest"
	// SortAZ orders by name ascending.
	SortAZ SortMode = "az"
)

// ParseSortMode validates s as a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortNone, SortLatest, SortOldest, SortAZ:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown sort %q (want latest, oldest or az)", ErrValidation, s)
	}
}

// Query is the filter/sort specification of a list view.
//
// Date bounds are compared as strings, not calendar dates. ISO-8601 dates
// order correctly that way, but a trip with an empty Start is dropped as soon
// as From is set, and a trip with an empty End always passes To.
type Query struct {
	From string
	To   string
	Text string
	Sort SortMode
}

// Matches reports whether t passes every filter in q.
func (q Query) Matches(t Trip) bool {
	if q.From != "" && t.Start < q.From {
		return false
	}
	if q.To != "" && t.End > q.To {
		return false
	}
	if q.Text != "" {
		hay := strings.ToLower(t.Name + t.Location + t.Description)
		if !strings.Contains(hay, strings.ToLower(q.Text)) {
			return false
		}
	}
	return true
}

// Apply returns the trips matching q in q.Sort order. The input slice is
// never modified; the result is a new slice of the same Trip values.
func Apply(trips []Trip, q Query) []Trip {
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if q.Matches(t) {
			out = append(out, t)
		}
	}

	switch q.Sort {
	case SortLatest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	case SortAZ:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

// Stats are the dashboard counters. Everything except Shown is computed over
// the whole collection, not the filtered view.
type Stats struct {
	TotalTrips  int `json:"total_trips"`
	TotalPlaces int `json:"total_places"`
	TotalItems  int `json:"total_items"`
	TotalImages int `json:"total_images"`
	Shown       int `json:"shown"`
}

// ComputeStats counts all over the unfiltered collection and shown over the
// filtered one. A place is a trip's location, or its name when it has none;
// trips with neither do not count as a place.
func ComputeStats(all []Trip, shown int) Stats {
	places := make(map[string]struct{}, len(all))
	s := Stats{TotalTrips: len(all), Shown: shown}
	for _, t := range all {
		place := t.Location
		if place == "" {
			place = t.Name
		}
		if place != "" {
			places[place] = struct{}{}
		}
		s.TotalItems += len(t.Itinerary)
		s.TotalImages += len(t.Images)
	}
	s.TotalPlaces = len(places)
	return s
}

// View is a filtered, sorted projection of the collection plus its stats.
type View struct {
	Trips []Trip
	Stats Stats
}

// BuildView applies q to all and computes the matching stats.
func BuildView(all []Trip, q Query) View {
	trips := Apply(all, q)
	return View{Trips: trips, Stats: ComputeStats(all, len(trips))}
}
