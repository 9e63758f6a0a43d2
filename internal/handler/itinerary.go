package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pkordes/triplog/internal/domain"
)

// ItemRequest is the body of POST /trips/{id}/itinerary.
type ItemRequest struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// ItemPatch is the body of PATCH /trips/{id}/itinerary/{itemId}.
// Text replaces the activity when present; ToggleDone flips completion.
type ItemPatch struct {
	Text       *string `json:"text"`
	ToggleDone bool    `json:"toggle_done"`
}

// MoveRequest is the body of POST /trips/{id}/itinerary/{itemId}/move.
type MoveRequest struct {
	Before string `json:"before"`
}

// AddItem handles POST /trips/{id}/itinerary.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var body ItemRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	item, err := s.itinerary.Add(r.Context(), id, body.Time, body.Text)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// PatchItem handles PATCH /trips/{id}/itinerary/{itemId} and returns the
// updated trip. Unknown items of an existing trip are left alone.
func (s *Server) PatchItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, err := itemParams(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var body ItemPatch
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if body.Text == nil && !body.ToggleDone {
		s.writeError(w, r, fmt.Errorf("%w: nothing to change", domain.ErrValidation), "")
		return
	}

	if err := s.itinerary.Patch(r.Context(), id, itemID, body.Text, body.ToggleDone); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}

	trip, err := s.trips.Find(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteItem handles DELETE /trips/{id}/itinerary/{itemId}. Always 204 once
// the request is well formed.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, err := itemParams(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if err := s.itinerary.Delete(r.Context(), id, itemID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.writeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveItem handles POST /trips/{id}/itinerary/{itemId}/move, placing the item
// immediately before the item named in the body. Returns the itinerary in its
// new order.
func (s *Server) MoveItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, err := itemParams(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var body MoveRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if body.Before == "" {
		s.writeError(w, r, fmt.Errorf("%w: before is required", domain.ErrValidation), "")
		return
	}
	items, err := s.itinerary.Reorder(r.Context(), id, itemID, body.Before)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func itemParams(r *http.Request) (string, string, error) {
	id, err := tripID(r)
	if err != nil {
		return "", "", err
	}
	var itemID string
	if err := pathParam(r, "itemId", &itemID); err != nil {
		return "", "", err
	}
	return id, itemID, nil
}
