// Package handler implements the HTTP API of the trip logger on a chi router.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, itinerary.go, gallery.go, ...) but share the Server struct
// so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/triplog/internal/domain"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage or the service layer.
type TripServicer interface {
	Create(ctx context.Context, f domain.TripFields) (domain.Trip, error)
	Find(ctx context.Context, id string) (domain.Trip, error)
	Query(ctx context.Context, q domain.Query) (domain.View, error)
	Update(ctx context.Context, id string, f domain.TripFields) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	ImportMerge(ctx context.Context, payload []byte) (int, error)
}

// ItineraryServicer defines the itinerary operations.
type ItineraryServicer interface {
	Add(ctx context.Context, tripID, at, text string) (domain.ItineraryItem, error)
	Patch(ctx context.Context, tripID, itemID string, text *string, toggleDone bool) error
	Delete(ctx context.Context, tripID, itemID string) error
	Reorder(ctx context.Context, tripID, movedID, beforeID string) ([]domain.ItineraryItem, error)
}

// GalleryServicer defines the image gallery operations.
type GalleryServicer interface {
	AddImages(ctx context.Context, tripID string, uploads [][]byte) (int, error)
	DeleteImage(ctx context.Context, tripID string, index int) error
	Photo(ctx context.Context, tripID string, index int) (domain.Photo, error)
}

// ExportServicer defines the export snapshots.
type ExportServicer interface {
	Trips(ctx context.Context, q domain.Query) ([]domain.Trip, error)
	Rows(ctx context.Context, q domain.Query) ([]domain.ExportRow, error)
	Trip(ctx context.Context, id string) (domain.Trip, string, error)
}

// PreferencesServicer defines the display preference operations.
type PreferencesServicer interface {
	Get(ctx context.Context) (domain.Preferences, error)
	Update(ctx context.Context, palette, mode *string) (domain.Preferences, error)
}

// Deps lists the services a Server is built from. Tests may leave nil the
// services they do not exercise.
type Deps struct {
	Trips       TripServicer
	Itinerary   ItineraryServicer
	Gallery     GalleryServicer
	Export      ExportServicer
	Preferences PreferencesServicer
}

// Server serves every API endpoint.
type Server struct {
	trips     TripServicer
	itinerary ItineraryServicer
	gallery   GalleryServicer
	export    ExportServicer
	prefs     PreferencesServicer
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps, log *slog.Logger) *Server {
	return &Server{
		trips:     d.Trips,
		itinerary: d.Itinerary,
		gallery:   d.Gallery,
		export:    d.Export,
		prefs:     d.Preferences,
		log:       log,
	}
}

// Routes returns the API router. Cross-cutting middleware (request IDs,
// logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Post("/itinerary", s.AddItem)
			r.Patch("/itinerary/{itemId}", s.PatchItem)
			r.Delete("/itinerary/{itemId}", s.DeleteItem)
			r.Post("/itinerary/{itemId}/move", s.MoveItem)

			r.Post("/images", s.UploadImages)
			r.Get("/images/{index}", s.GetImage)
			r.Delete("/images/{index}", s.DeleteImage)

			r.Get("/export", s.ExportTrip)
			r.Get("/share", s.ShareTrip)
			r.Get("/map", s.MapTrip)
			r.Get("/print", s.PrintTrip)
		})
	})

	r.Get("/export", s.ExportAll)
	r.Get("/export/visible", s.ExportVisible)
	r.Post("/import", s.ImportTrips)

	r.Get("/preferences", s.GetPreferences)
	r.Put("/preferences", s.PutPreferences)

	return r
}
