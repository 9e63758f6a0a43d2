package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/triplog/internal/domain"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge trips from an exported JSON file",
		Long: "Prepend the trips in FILE, a JSON array as written by export, to the\n" +
			"collection. Trip ids are kept as they are, so importing the same file\n" +
			"twice yields duplicates.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			n, err := app.Services.Trips.ImportMerge(cmd.Context(), payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d trips\n", n)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var from, to, text, sortMode, format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trips as JSON or CSV",
		Long: "Export the collection. With no filters the whole collection is written\n" +
			"in stored order; filters export only the matching trips in view order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseSortMode(sortMode)
			if err != nil {
				return err
			}
			q := domain.Query{From: from, To: to, Text: text, Sort: mode}
			ctx := cmd.Context()

			var buf bytes.Buffer
			switch format {
			case "json":
				trips, err := app.Services.Export.Trips(ctx, q)
				if err != nil {
					return err
				}
				if trips == nil {
					trips = []domain.Trip{}
				}
				b, err := json.Marshal(trips)
				if err != nil {
					return fmt.Errorf("encode trips: %w", err)
				}
				buf.Write(b)
				buf.WriteByte('\n')
			case "csv":
				rows, err := app.Services.Export.Rows(ctx, q)
				if err != nil {
					return err
				}
				if err := domain.WriteCSV(&buf, rows); err != nil {
					return fmt.Errorf("encode rows: %w", err)
				}
			default:
				return fmt.Errorf("%w: unknown format %q (want json or csv)", domain.ErrValidation, format)
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}

	addQueryFlags(cmd, &from, &to, &text, &sortMode)
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json|csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to FILE instead of stdout")

	return cmd
}
