package handler

import (
	"net/http"

	"github.com/pkordes/triplog/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}. Keys match the
// stored trip shape.
type TripRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Category    string `json:"category"`
	Description string `json:"desc"`
}

// TripResponse is a trip plus its itinerary completion percentage.
type TripResponse struct {
	domain.Trip
	Completion int `json:"completion"`
}

// ListResponse is the body of GET /trips.
type ListResponse struct {
	Trips []domain.Trip `json:"trips"`
	Stats domain.Stats  `json:"stats"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	created, err := s.trips.Create(r.Context(), body.fields())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?from=, ?to=, ?q= and ?sort=latest|oldest|az. The stats are always
// computed over the whole collection.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q, err := bindQuery(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	view, err := s.trips.Query(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	trips := view.Trips
	if trips == nil {
		trips = []domain.Trip{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Trips: trips, Stats: view.Stats})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	trip, err := s.trips.Find(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}. The itinerary and gallery are kept.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	updated, err := s.trips.Update(r.Context(), id, body.fields())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}. Deleting an absent trip is still 204.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (b TripRequest) fields() domain.TripFields {
	return domain.TripFields{
		Name:        b.Name,
		Location:    b.Location,
		Start:       b.Start,
		End:         b.End,
		Category:    domain.Category(b.Category),
		Description: b.Description,
	}
}

func tripToResponse(t domain.Trip) TripResponse {
	t.Normalize()
	return TripResponse{Trip: t, Completion: domain.CompletionPercent(t.Itinerary)}
}
