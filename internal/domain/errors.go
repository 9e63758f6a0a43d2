package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip, itinerary item, image or storage slot does not exist.
// Lookups map this to HTTP 404; deletes swallow it because they are idempotent.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule (e.g. empty trip name, empty activity text).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMalformedInput is returned when a payload cannot be interpreted at all:
// an import file that is not a JSON array of trips, or bytes that are not a
// decodable image. Handlers should map this to HTTP 400 Bad Request.
var ErrMalformedInput = errors.New("malformed input")
