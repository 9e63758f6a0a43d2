package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/handler"
)

// mockItineraryServicer is a test double for handler.ItineraryServicer.
type mockItineraryServicer struct {
	add     func(ctx context.Context, tripID, at, text string) (domain.ItineraryItem, error)
	patch   func(ctx context.Context, tripID, itemID string, text *string, toggleDone bool) error
	delete  func(ctx context.Context, tripID, itemID string) error
	reorder func(ctx context.Context, tripID, movedID, beforeID string) ([]domain.ItineraryItem, error)
}

func (m *mockItineraryServicer) Add(ctx context.Context, tripID, at, text string) (domain.ItineraryItem, error) {
	return m.add(ctx, tripID, at, text)
}
func (m *mockItineraryServicer) Patch(ctx context.Context, tripID, itemID string, text *string, toggleDone bool) error {
	return m.patch(ctx, tripID, itemID, text, toggleDone)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, tripID, itemID string) error {
	return m.delete(ctx, tripID, itemID)
}
func (m *mockItineraryServicer) Reorder(ctx context.Context, tripID, movedID, beforeID string) ([]domain.ItineraryItem, error) {
	return m.reorder(ctx, tripID, movedID, beforeID)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

func newItineraryHandler(trips handler.TripServicer, items handler.ItineraryServicer) http.Handler {
	return handler.NewServer(handler.Deps{Trips: trips, Itinerary: items}, discardLogger()).Routes()
}

// ---- PATCH /trips/{id}/itinerary/{itemId} ----------------------------------

func TestPatchItem_TextAndToggleInOneCall(t *testing.T) {
	fixture := tripFixture()
	var calls int
	var gotText *string
	var gotToggle bool
	items := &mockItineraryServicer{
		patch: func(_ context.Context, tripID, itemID string, text *string, toggleDone bool) error {
			calls++
			assert.Equal(t, fixture.ID, tripID)
			assert.Equal(t, "i2", itemID)
			gotText, gotToggle = text, toggleDone
			return nil
		},
	}
	trips := &mockTripServicer{
		find: func(context.Context, string) (domain.Trip, error) { return fixture, nil },
	}

	req := httptest.NewRequest(http.MethodPatch, "/trips/"+fixture.ID+"/itinerary/i2",
		jsonBody(t, map[string]any{"text": "Belem tower", "toggle_done": true}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newItineraryHandler(trips, items).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, calls)
	require.NotNil(t, gotText)
	assert.Equal(t, "Belem tower", *gotText)
	assert.True(t, gotToggle)
}

func TestPatchItem_500_FailedSave(t *testing.T) {
	fixture := tripFixture()
	items := &mockItineraryServicer{
		patch: func(context.Context, string, string, *string, bool) error {
			return errors.New("service.ItineraryService.Patch: disk full")
		},
	}
	trips := &mockTripServicer{
		find: func(context.Context, string) (domain.Trip, error) {
			t.Fatal("trip must not be re-read after a failed patch")
			return domain.Trip{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/trips/"+fixture.ID+"/itinerary/i2",
		jsonBody(t, map[string]any{"text": "Belem tower", "toggle_done": true}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newItineraryHandler(trips, items).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Code)
}

func TestPatchItem_404_UnknownTrip(t *testing.T) {
	items := &mockItineraryServicer{
		patch: func(context.Context, string, string, *string, bool) error {
			return fmt.Errorf("service.ItineraryService.Patch: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/trips/ghost/itinerary/i1",
		jsonBody(t, map[string]any{"toggle_done": true}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newItineraryHandler(&mockTripServicer{}, items).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
