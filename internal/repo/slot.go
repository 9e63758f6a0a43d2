// Package repo contains all durable storage access for the trip logger.
// Storage is a set of named slots, each holding one opaque value that is
// always written whole. Each backend lives in its own file; no business logic
// lives here, only I/O and (de)serialization.
package repo

import (
	"context"
)

// Slot names. The trip collection lives in one slot and each display
// preference in another.
const (
	SlotTrips   = "neonTripDB_v2"
	SlotPalette = "palette"
	SlotMode    = "mode"
)

// SlotRepo is a durable key/value store with whole-value overwrite semantics.
// Services depend on this interface, not on a concrete backend, which lets
// them be unit-tested with an in-memory double.
type SlotRepo interface {
	// Get returns the stored value for key.
	// Returns domain.ErrNotFound if nothing has been stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put atomically replaces the value stored under key. Last writer wins;
	// there is no cross-process coordination.
	Put(ctx context.Context, key string, value []byte) error
}
