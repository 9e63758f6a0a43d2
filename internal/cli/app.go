// Package cli implements the triplog command line: the HTTP server and the
// terminal commands over the same services.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pkordes/triplog/internal/config"
	"github.com/pkordes/triplog/internal/service"
)

// App holds everything the commands share.
type App struct {
	Config   config.Config
	Log      *slog.Logger
	Services *service.Services

	// Confirm gates destructive commands unless --yes is given.
	Confirm Confirmer

	// CopyText puts text on the system clipboard.
	CopyText func(text string) error
}

// NewRootCmd creates the top-level "triplog" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "triplog",
		Short:         "Trip journal with itineraries and photo galleries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newTripCmd(app),
		newItemCmd(app),
		newImageCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newPrefsCmd(app),
	)

	return root
}
