package handler

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
)

//go:embed templates/print.html.tmpl
var printTemplate string

var printPage = template.Must(template.New("print").Parse(printTemplate))

// MapResponse is the body of GET /trips/{id}/map.
type MapResponse struct {
	URL string `json:"url"`
}

// ShareTrip handles GET /trips/{id}/share: the trip as indented JSON text,
// ready to paste.
func (s *Server) ShareTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadTrip(w, r)
	if !ok {
		return
	}
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(trip); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, buf.String())
}

// MapTrip handles GET /trips/{id}/map. A trip without a location is 422.
func (s *Server) MapTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadTrip(w, r)
	if !ok {
		return
	}
	u, err := domain.MapSearchURL(trip.Location)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, MapResponse{URL: u})
}

// printData is the view model of the print template.
type printData struct {
	domain.Trip
	Completion int
	Photos     []template.URL
}

// PrintTrip handles GET /trips/{id}/print: a standalone HTML page with the
// trip details, itinerary and photos.
func (s *Server) PrintTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadTrip(w, r)
	if !ok {
		return
	}
	data := printData{Trip: trip, Completion: domain.CompletionPercent(trip.Itinerary)}
	for _, img := range trip.Images {
		// Only image data URLs are trusted as img sources.
		if strings.HasPrefix(img, "data:image/") {
			data.Photos = append(data.Photos, template.URL(img))
		}
	}

	var buf strings.Builder
	if err := printPage.Execute(&buf, data); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, buf.String())
}

// loadTrip resolves {id}, writing the error response itself on failure.
func (s *Server) loadTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	id, err := tripID(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return domain.Trip{}, false
	}
	trip, err := s.trips.Find(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return domain.Trip{}, false
	}
	trip.Normalize()
	return trip, true
}
