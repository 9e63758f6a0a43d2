package handler

import (
	"net/http"
)

// PreferencesRequest is the body of PUT /preferences. Omitted fields keep
// their current value.
type PreferencesRequest struct {
	Palette *string `json:"palette"`
	Mode    *string `json:"mode"`
}

// GetPreferences handles GET /preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	p, err := s.prefs.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PutPreferences handles PUT /preferences.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var body PreferencesRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	p, err := s.prefs.Update(r.Context(), body.Palette, body.Mode)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
