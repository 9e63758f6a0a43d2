package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/triplog/internal/domain"
)

func newTripCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
	}

	cmd.AddCommand(
		newTripAddCmd(app),
		newTripListCmd(app),
		newTripShowCmd(app),
		newTripEditCmd(app),
		newTripRemoveCmd(app),
		newTripShareCmd(app),
		newTripMapCmd(app),
	)

	return cmd
}

// tripFlags are the editable trip fields shared by add and edit.
type tripFlags struct {
	name, location, start, end, category, desc string
}

func (f *tripFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Trip name")
	cmd.Flags().StringVar(&f.location, "location", "", "Where the trip goes")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.category, "category", string(domain.CategoryLeisure),
		"Category (leisure|business|adventure|family|other)")
	cmd.Flags().StringVar(&f.desc, "desc", "", "Free-text description")
}

// apply copies every flag the user set onto base.
func (f *tripFlags) apply(cmd *cobra.Command, base domain.TripFields) domain.TripFields {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("name", &base.Name, f.name)
	set("location", &base.Location, f.location)
	set("start", &base.Start, f.start)
	set("end", &base.End, f.end)
	set("desc", &base.Description, f.desc)
	if cmd.Flags().Changed("category") {
		base.Category = domain.Category(f.category)
	}
	return base
}

func fieldsOf(t domain.Trip) domain.TripFields {
	return domain.TripFields{
		Name:        t.Name,
		Location:    t.Location,
		Start:       t.Start,
		End:         t.End,
		Category:    t.Category,
		Description: t.Description,
	}
}

func newTripAddCmd(app *App) *cobra.Command {
	var f tripFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := domain.TripFields{Category: domain.CategoryLeisure}
			t, err := app.Services.Trips.Create(cmd.Context(), f.apply(cmd, base))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created trip %s (%s)\n", t.Name, t.ID)
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTripListCmd(app *App) *cobra.Command {
	var from, to, text, sortMode string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trips with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseSortMode(sortMode)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			view, err := app.Services.Trips.Query(ctx, domain.Query{From: from, To: to, Text: text, Sort: mode})
			if err != nil {
				return err
			}

			th := loadTheme(ctx, app)
			out := cmd.OutOrStdout()
			if len(view.Trips) == 0 {
				fmt.Fprintln(out, th.Dim.Render("No trips."))
			}
			for _, t := range view.Trips {
				fmt.Fprintln(out, th.renderTripLine(t))
			}
			fmt.Fprintln(out, th.renderStats(view.Stats))
			return nil
		},
	}

	addQueryFlags(cmd, &from, &to, &text, &sortMode)

	return cmd
}

// addQueryFlags registers the list filters shared by list and export.
func addQueryFlags(cmd *cobra.Command, from, to, text, sortMode *string) {
	cmd.Flags().StringVar(from, "from", "", "Only trips starting on or after this date")
	cmd.Flags().StringVar(to, "to", "", "Only trips ending on or before this date")
	cmd.Flags().StringVarP(text, "query", "q", "", "Search name, location and description")
	cmd.Flags().StringVar(sortMode, "sort", "", "Sort order (latest|oldest|az)")
}

func newTripShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TRIP",
		Short: "Show trip details and itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), loadTheme(ctx, app).renderTrip(t))
			return nil
		},
	}
}

func newTripEditCmd(app *App) *cobra.Command {
	var f tripFlags

	cmd := &cobra.Command{
		Use:   "edit TRIP",
		Short: "Change trip fields; flags not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Services.Trips.Update(ctx, t.ID, f.apply(cmd, fieldsOf(t)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated trip %s\n", updated.Name)
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

func newTripRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm TRIP",
		Aliases: []string{"delete"},
		Short:   "Delete a trip with its itinerary and photos",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := confirm(app, yes, fmt.Sprintf("Delete trip %q?", t.Name)); err != nil {
				return err
			}
			if err := app.Services.Trips.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted trip %s\n", t.Name)
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}

func newTripShareCmd(app *App) *cobra.Command {
	var stdout bool

	cmd := &cobra.Command{
		Use:   "share TRIP",
		Short: "Copy the trip as JSON to the clipboard",
		Long: "Copy the trip as indented JSON to the clipboard. When no clipboard is\n" +
			"available the JSON is printed instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTrip(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			var b strings.Builder
			enc := json.NewEncoder(&b)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("encode trip: %w", err)
			}

			if !stdout {
				err := app.CopyText(b.String())
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Copied")
					return nil
				}
				app.Log.Debug("clipboard unavailable", "error", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the JSON instead of copying it")

	return cmd
}

func newTripMapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "map TRIP",
		Short: "Print the OpenStreetMap search link for the trip location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTrip(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			u, err := domain.MapSearchURL(t.Location)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
}
