package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/triplog/internal/domain"
)

// CollectionRepo loads and saves the whole trip collection as one unit.
type CollectionRepo interface {
	// Load returns the stored collection. A missing or unreadable blob yields
	// an empty collection, not an error; only backend failures are returned.
	Load(ctx context.Context) ([]domain.Trip, error)

	// Save serializes the full collection and overwrites the stored blob.
	Save(ctx context.Context, trips []domain.Trip) error
}

// CollectionStore is the CollectionRepo over a SlotRepo.
type CollectionStore struct {
	slots SlotRepo
	log   *slog.Logger
}

// NewCollectionStore constructs a CollectionStore writing to SlotTrips.
func NewCollectionStore(slots SlotRepo, log *slog.Logger) *CollectionStore {
	return &CollectionStore{slots: slots, log: log}
}

// Load reads and decodes the collection blob. There is no schema version:
// anything that is not a JSON array of trips is treated as absent.
func (s *CollectionStore) Load(ctx context.Context) ([]domain.Trip, error) {
	raw, err := s.slots.Get(ctx, SlotTrips)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Trip{}, nil
		}
		return nil, fmt.Errorf("repo.CollectionStore.Load: %w", err)
	}

	trips, err := DecodeTrips(raw)
	if err != nil {
		s.log.WarnContext(ctx, "discarding unreadable trip collection",
			"slot", SlotTrips,
			"bytes", len(raw),
			"error", err,
		)
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Save encodes trips and overwrites the collection slot.
func (s *CollectionStore) Save(ctx context.Context, trips []domain.Trip) error {
	if trips == nil {
		trips = []domain.Trip{}
	}
	b, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("repo.CollectionStore.Save: encode: %w", err)
	}
	if err := s.slots.Put(ctx, SlotTrips, b); err != nil {
		return fmt.Errorf("repo.CollectionStore.Save: %w", err)
	}
	return nil
}

// DecodeTrips parses raw as a JSON array of trip objects. It is shared by the
// stored blob and by user-supplied import files. Every element must be a JSON
// object; child collections missing from the input are normalized to empty.
// Returns domain.ErrMalformedInput for anything else.
func DecodeTrips(raw []byte) ([]domain.Trip, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of trips: %v", domain.ErrMalformedInput, err)
	}
	if elems == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of trips, got null", domain.ErrMalformedInput)
	}

	trips := make([]domain.Trip, 0, len(elems))
	for i, e := range elems {
		var t domain.Trip
		if len(e) == 0 || e[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", domain.ErrMalformedInput, i)
		}
		if err := json.Unmarshal(e, &t); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", domain.ErrMalformedInput, i, err)
		}
		t.Normalize()
		trips = append(trips, t)
	}
	return trips, nil
}

// PreferencesRepo loads and saves display preferences.
type PreferencesRepo interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, p domain.Preferences) error
}

// PreferencesStore keeps the palette and mode in their own slots as plain
// strings.
type PreferencesStore struct {
	slots SlotRepo
}

// NewPreferencesStore constructs a PreferencesStore.
func NewPreferencesStore(slots SlotRepo) *PreferencesStore {
	return &PreferencesStore{slots: slots}
}

// Load returns the stored preferences. Missing or unknown values fall back to
// domain.DefaultPreferences field by field.
func (s *PreferencesStore) Load(ctx context.Context) (domain.Preferences, error) {
	p := domain.DefaultPreferences

	raw, err := s.get(ctx, SlotPalette)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.PreferencesStore.Load: %w", err)
	}
	if palette, perr := domain.ParsePalette(raw); perr == nil {
		p.Palette = palette
	}

	raw, err = s.get(ctx, SlotMode)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.PreferencesStore.Load: %w", err)
	}
	if mode, merr := domain.ParseMode(raw); merr == nil {
		p.Mode = mode
	}
	return p, nil
}

// Save writes both preference slots.
func (s *PreferencesStore) Save(ctx context.Context, p domain.Preferences) error {
	if err := s.slots.Put(ctx, SlotPalette, []byte(p.Palette)); err != nil {
		return fmt.Errorf("repo.PreferencesStore.Save: %w", err)
	}
	if err := s.slots.Put(ctx, SlotMode, []byte(p.Mode)); err != nil {
		return fmt.Errorf("repo.PreferencesStore.Save: %w", err)
	}
	return nil
}

// get returns "" for an absent slot.
func (s *PreferencesStore) get(ctx context.Context, key string) (string, error) {
	b, err := s.slots.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(b), nil
}
