package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	codeValidation = "validation_error"
	codeMalformed  = "malformed_input"
	codeNotFound   = "not_found"
	codeTooLarge   = "payload_too_large"
	codeInternal   = "internal_error"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status is already sent; an encode error can only be a broken connection.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto an HTTP status and error body. notFound is the
// message used for domain.ErrNotFound, because the handler is the layer that
// knows what was being looked up. Unexpected errors are logged and hidden
// behind a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(codeValidation, detail(err, domain.ErrValidation)))
	case errors.Is(err, domain.ErrMalformedInput):
		writeJSON(w, http.StatusBadRequest, errorBody(codeMalformed, detail(err, domain.ErrMalformedInput)))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(codeNotFound, notFound))
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge,
			errorBody(codeTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody(codeInternal, "internal server error"))
	}
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// detail extracts the human-readable part that follows a wrapped sentinel.
// e.g. "service.TripService.Create: validation error: enter trip name" → "enter trip name"
func detail(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// trimOp drops the leading "service.Type.Method: " operation prefix.
func trimOp(msg string) string {
	if op, rest, ok := strings.Cut(msg, ": "); ok && strings.HasPrefix(op, "service.") {
		return rest
	}
	return msg
}

// decodeJSON decodes the request body into v. A body that is not valid JSON
// for v is domain.ErrMalformedInput; hitting the body limit is returned as is.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: request body is required", domain.ErrMalformedInput)
	}
	return fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
}
