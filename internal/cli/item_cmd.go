package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage a trip's itinerary",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemDoneCmd(app),
		newItemEditCmd(app),
		newItemRemoveCmd(app),
		newItemMoveCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "add TRIP TEXT",
		Short: "Append an activity to the itinerary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := app.Services.Itinerary.Add(ctx, t.ID, at, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", item.Text, shortID(item.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "time", "", "Time of day, e.g. 09:30")

	return cmd
}

func newItemDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done TRIP ITEM",
		Short: "Toggle an activity's done flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := resolveItem(t, args[1])
			if err != nil {
				return err
			}
			if err := app.Services.Itinerary.ToggleDone(ctx, t.ID, it.ID); err != nil {
				return err
			}
			state := "done"
			if it.Done {
				state = "not done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %q %s\n", it.Text, state)
			return nil
		},
	}
}

func newItemEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit TRIP ITEM TEXT",
		Short: "Replace an activity's text",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := resolveItem(t, args[1])
			if err != nil {
				return err
			}
			text := args[2]
			if err := app.Services.Itinerary.Edit(ctx, t.ID, it.ID, &text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", shortID(it.ID))
			return nil
		},
	}
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm TRIP ITEM",
		Aliases: []string{"delete"},
		Short:   "Delete an activity",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := resolveItem(t, args[1])
			if err != nil {
				return err
			}
			if err := confirm(app, yes, fmt.Sprintf("Delete %q?", it.Text)); err != nil {
				return err
			}
			if err := app.Services.Itinerary.Delete(ctx, t.ID, it.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", it.Text)
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "move TRIP ITEM --before OTHER",
		Short: "Move an activity so it sits just before another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			moved, err := resolveItem(t, args[1])
			if err != nil {
				return err
			}
			target, err := resolveItem(t, before)
			if err != nil {
				return err
			}
			items, err := app.Services.Itinerary.Reorder(ctx, t.ID, moved.ID, target.ID)
			if err != nil {
				return err
			}
			th := loadTheme(ctx, app)
			for i, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s  %s\n", i+1, th.Dim.Render(shortID(it.ID)), it.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Item to place the moved item in front of")
	_ = cmd.MarkFlagRequired("before")

	return cmd
}
