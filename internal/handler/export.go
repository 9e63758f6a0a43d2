package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/pkordes/triplog/internal/domain"
)

// Export formats accepted in ?format=.
const (
	formatJSON = "json"
	formatCSV  = "csv"
)

// ExportAll handles GET /export. The JSON form is the stored collection,
// byte-compatible with POST /import. Use ?format=csv for the flat table.
func (s *Server) ExportAll(w http.ResponseWriter, r *http.Request) {
	s.exportQuery(w, r, domain.Query{}, "all_trips")
}

// ExportVisible handles GET /export/visible: the trips matching the list
// filters, in view order.
func (s *Server) ExportVisible(w http.ResponseWriter, r *http.Request) {
	q, err := bindQuery(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.exportQuery(w, r, q, "visible_trips")
}

// ExportTrip handles GET /trips/{id}/export, downloading one trip as
// "<name>.json".
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	trip, filename, err := s.export.Trip(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	trip.Normalize()
	b, err := json.Marshal(trip)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeAttachment(w, "application/json", filename, b)
}

// ImportResponse is the body of POST /import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportTrips handles POST /import. The body is a JSON array of trips, as
// produced by GET /export; the trips are prepended to the collection.
func (s *Server) ImportTrips(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	n, err := s.trips.ImportMerge(r.Context(), payload)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Imported: n})
}

func (s *Server) exportQuery(w http.ResponseWriter, r *http.Request, q domain.Query, basename string) {
	format := formatJSON
	if err := queryParam(r, "format", &format); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	switch format {
	case formatJSON:
		trips, err := s.export.Trips(r.Context(), q)
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		if trips == nil {
			trips = []domain.Trip{}
		}
		b, err := json.Marshal(trips)
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeAttachment(w, "application/json", basename+".json", b)
	case formatCSV:
		rows, err := s.export.Rows(r.Context(), q)
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		var buf bytes.Buffer
		if err := domain.WriteCSV(&buf, rows); err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeAttachment(w, "text/csv", basename+".csv", buf.Bytes())
	default:
		s.writeError(w, r, fmt.Errorf("%w: unknown format %q (want json or csv)", domain.ErrValidation, format), "")
	}
}

// writeAttachment sends body as a download named filename.
func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
