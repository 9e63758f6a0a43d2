package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pkordes/triplog/internal/handler"
	"github.com/pkordes/triplog/internal/middleware"
)

// shutdownTimeout is how long in-flight requests get to finish on shutdown.
const shutdownTimeout = 15 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if host != "" {
				cfg.Host = host
			}
			if port != "" {
				cfg.Port = port
			}
			// Multi-photo uploads need longer read and write windows than JSON.
			srv := &http.Server{
				Addr:              cfg.ListenAddr(),
				Handler:           NewRouter(app),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       60 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			return runServer(cmd.Context(), srv, app.Log)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Interface to bind (overrides HOST)")
	cmd.Flags().StringVar(&port, "port", "", "TCP port (overrides PORT)")

	return cmd
}

// NewRouter wraps the API routes in the server middleware.
// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer →
// CORS → body limit.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(app.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(app.Config.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(app.Config.MaxUploadBytes))

	srv := handler.NewServer(handler.Deps{
		Trips:       app.Services.Trips,
		Itinerary:   app.Services.Itinerary,
		Gallery:     app.Services.Gallery,
		Export:      app.Services.Export,
		Preferences: app.Services.Preferences,
	}, app.Log)
	r.Mount("/", srv.Routes())

	return r
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("server stopped")
	return nil
}
