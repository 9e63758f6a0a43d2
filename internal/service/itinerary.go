package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
)

// ItineraryService implements the per-trip itinerary operations.
// Every method returns domain.ErrNotFound when the parent trip does not exist;
// operations on a missing item of an existing trip are silent no-ops.
type ItineraryService struct {
	c *Collection
}

// NewItineraryService constructs an ItineraryService over the shared Collection.
func NewItineraryService(c *Collection) *ItineraryService {
	return &ItineraryService{c: c}
}

// Add appends a new, not-done item to the trip's itinerary.
// Returns domain.ErrValidation if text is empty.
func (s *ItineraryService) Add(ctx context.Context, tripID, at, text string) (domain.ItineraryItem, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Add: %w: enter activity", domain.ErrValidation)
	}
	item := domain.ItineraryItem{ID: domain.NewID(), Time: strings.TrimSpace(at), Text: text}

	err := s.c.mutateTrip(ctx, tripID, func(t *domain.Trip) error {
		t.Itinerary = append(t.Itinerary, item)
		return nil
	})
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Add: %w", err)
	}
	return item, nil
}

// ToggleDone flips the completion flag of an item.
func (s *ItineraryService) ToggleDone(ctx context.Context, tripID, itemID string) error {
	if err := s.patch(ctx, tripID, itemID, nil, true); err != nil {
		return fmt.Errorf("service.ItineraryService.ToggleDone: %w", err)
	}
	return nil
}

// Edit replaces an item's text. A nil text means the edit was cancelled and
// leaves the item unchanged.
func (s *ItineraryService) Edit(ctx context.Context, tripID, itemID string, text *string) error {
	if err := s.patch(ctx, tripID, itemID, text, false); err != nil {
		return fmt.Errorf("service.ItineraryService.Edit: %w", err)
	}
	return nil
}

// Patch applies a text replacement and a done toggle to one item in a single
// save, so either both changes persist or neither does. A nil text keeps the
// current text. Unknown items are left alone.
func (s *ItineraryService) Patch(ctx context.Context, tripID, itemID string, text *string, toggleDone bool) error {
	if err := s.patch(ctx, tripID, itemID, text, toggleDone); err != nil {
		return fmt.Errorf("service.ItineraryService.Patch: %w", err)
	}
	return nil
}

func (s *ItineraryService) patch(ctx context.Context, tripID, itemID string, text *string, toggleDone bool) error {
	return s.c.mutateTrip(ctx, tripID, func(t *domain.Trip) error {
		i := domain.ItemIndex(t.Itinerary, itemID)
		if i < 0 || (text == nil && !toggleDone) {
			return errUnchanged
		}
		if text != nil {
			t.Itinerary[i].Text = *text
		}
		if toggleDone {
			t.Itinerary[i].Done = !t.Itinerary[i].Done
		}
		return nil
	})
}

// Delete removes an item. Deleting an absent item is a no-op.
func (s *ItineraryService) Delete(ctx context.Context, tripID, itemID string) error {
	err := s.c.mutateTrip(ctx, tripID, func(t *domain.Trip) error {
		i := domain.ItemIndex(t.Itinerary, itemID)
		if i < 0 {
			return errUnchanged
		}
		t.Itinerary = append(t.Itinerary[:i:i], t.Itinerary[i+1:]...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// Reorder moves movedID to sit immediately before beforeID. Unknown ids leave
// the itinerary unchanged.
func (s *ItineraryService) Reorder(ctx context.Context, tripID, movedID, beforeID string) ([]domain.ItineraryItem, error) {
	var out []domain.ItineraryItem
	err := s.c.mutateTrip(ctx, tripID, func(t *domain.Trip) error {
		reordered, changed := domain.Reorder(t.Itinerary, movedID, beforeID)
		out = append([]domain.ItineraryItem{}, reordered...)
		if !changed {
			return errUnchanged
		}
		t.Itinerary = reordered
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Reorder: %w", err)
	}
	return out, nil
}
