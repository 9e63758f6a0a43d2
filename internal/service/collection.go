// Package service contains the business logic for the trip logger.
// Services validate inputs, enforce business rules, and route every change to
// the trip collection through one Collection, which persists after each
// mutation. No storage code lives here; services depend on repo interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
)

// errUnchanged is returned by a mutation function to signal that nothing
// changed and no save is needed. mutate translates it to a nil error.
var errUnchanged = errors.New("unchanged")

// Collection owns the in-memory trip collection. It is the only place the
// collection is read or written; TripService, ItineraryService and
// GalleryService all share one Collection.
//
// Every mutation is applied under the lock and then saved in full. When the
// save fails the in-memory state is rolled back so memory and storage agree.
type Collection struct {
	store repo.CollectionRepo

	mu    sync.Mutex
	trips []domain.Trip

	// tasks holds cancel functions for in-flight image uploads by trip id.
	tasks  map[string]map[uint64]context.CancelFunc
	taskID uint64
}

// NewCollection loads the stored collection and returns its owner.
func NewCollection(ctx context.Context, store repo.CollectionRepo) (*Collection, error) {
	trips, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NewCollection: %w", err)
	}
	return &Collection{
		store: store,
		trips: trips,
		tasks: make(map[string]map[uint64]context.CancelFunc),
	}, nil
}

// mutate applies fn to the collection and persists the result.
func (c *Collection) mutate(ctx context.Context, fn func(trips *[]domain.Trip) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := domain.CloneTrips(c.trips)
	if err := fn(&c.trips); err != nil {
		c.trips = prev
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := c.store.Save(ctx, c.trips); err != nil {
		c.trips = prev
		return err
	}
	return nil
}

// mutateTrip applies fn to the trip with the given id.
// Returns domain.ErrNotFound if no such trip exists.
func (c *Collection) mutateTrip(ctx context.Context, id string, fn func(t *domain.Trip) error) error {
	return c.mutate(ctx, func(trips *[]domain.Trip) error {
		i := domain.IndexOf(*trips, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		return fn(&(*trips)[i])
	})
}

// snapshot returns a deep copy of the collection.
func (c *Collection) snapshot() []domain.Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CloneTrips(c.trips)
}

// find returns a deep copy of one trip.
func (c *Collection) find(id string) (domain.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := domain.IndexOf(c.trips, id)
	if i < 0 {
		return domain.Trip{}, domain.ErrNotFound
	}
	return c.trips[i].Clone(), nil
}

// track derives a cancellable context for background work on a trip and
// registers it so deleting the trip cancels the work. The returned release
// function must be called when the work finishes.
func (c *Collection) track(ctx context.Context, tripID string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.taskID++
	id := c.taskID
	if c.tasks[tripID] == nil {
		c.tasks[tripID] = make(map[uint64]context.CancelFunc)
	}
	c.tasks[tripID][id] = cancel
	c.mu.Unlock()

	return ctx, func() {
		c.mu.Lock()
		delete(c.tasks[tripID], id)
		if len(c.tasks[tripID]) == 0 {
			delete(c.tasks, tripID)
		}
		c.mu.Unlock()
		cancel()
	}
}

// cancelTasksLocked cancels every in-flight task for tripID.
// The caller must hold c.mu.
func (c *Collection) cancelTasksLocked(tripID string) {
	for _, cancel := range c.tasks[tripID] {
		cancel()
	}
}
