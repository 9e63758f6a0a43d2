// Package domain contains the core data types for the trip logger and the
// pure functions (filtering, sorting, reordering) that operate on them.
// It does no storage or network I/O; WriteCSV only encodes to a caller-supplied writer.
package domain

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Category classifies a trip. The set is fixed.
type Category string

const (
	CategoryLeisure   Category = "leisure"
	CategoryBusiness  Category = "business"
	CategoryAdventure Category = "adventure"
	CategoryFamily    Category = "family"
	CategoryOther     Category = "other"
)

// Categories lists every valid Category in display order.
var Categories = []Category{
	CategoryLeisure, CategoryBusiness, CategoryAdventure, CategoryFamily, CategoryOther,
}

// ParseCategory returns the Category named by s (case-insensitive).
// The second result is false when s does not name a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Trip is one journey. It is the unit of ownership for its itinerary and
// gallery: items and images never outlive the trip that holds them.
//
// The JSON keys are the stored shape of the collection blob and of every
// export file, so they must not change.
type Trip struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Start       string          `json:"start"` // ISO-8601 calendar date or ""
	End         string          `json:"end"`   // ISO-8601 calendar date or ""
	Category    Category        `json:"category"`
	Description string          `json:"desc"`
	Itinerary   []ItineraryItem `json:"itinerary"`
	Images      []string        `json:"images"` // data URLs, display order
}

// TripFields carries the mutable fields of a Trip from callers to the service.
// ID and the child collections are deliberately absent.
type TripFields struct {
	Name        string
	Location    string
	Start       string
	End         string
	Category    Category
	Description string
}

// Apply overwrites the mutable fields of t with f.
func (f TripFields) Apply(t *Trip) {
	t.Name = f.Name
	t.Location = f.Location
	t.Start = f.Start
	t.End = f.End
	t.Category = f.Category
	t.Description = f.Description
}

// Normalize fills nil child slices so a trip always serializes with
// "itinerary": [] and "images": [] rather than null.
func (t *Trip) Normalize() {
	if t.Itinerary == nil {
		t.Itinerary = []ItineraryItem{}
	}
	if t.Images == nil {
		t.Images = []string{}
	}
}

// Clone returns a deep copy of t. Image payloads are strings and are shared.
func (t Trip) Clone() Trip {
	out := t
	out.Itinerary = slices.Clone(t.Itinerary)
	out.Images = slices.Clone(t.Images)
	return out
}

// CloneTrips deep-copies a collection.
func CloneTrips(trips []Trip) []Trip {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = t.Clone()
	}
	return out
}

// IndexOf returns the position of the first trip with the given id, or -1.
// Imported collections may contain duplicate ids; the first one wins.
func IndexOf(trips []Trip, id string) int {
	for i := range trips {
		if trips[i].ID == id {
			return i
		}
	}
	return -1
}

// NewID returns a fresh identifier. UUIDv7 strings embed the creation time in
// their leading bits, so lexical order equals generation order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system random source fails.
		return uuid.NewString()
	}
	return id.String()
}

// MapSearchURL returns the OpenStreetMap search link for a trip location.
func MapSearchURL(location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("%w: no location", ErrValidation)
	}
	// Spaces as %20, not "+", to match how browsers build the link.
	q := strings.ReplaceAll(url.QueryEscape(location), "+", "%20")
	return "https://www.openstreetmap.org/search?query=" + q, nil
}
