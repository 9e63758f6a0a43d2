package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newImageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage a trip's photo gallery",
	}

	cmd.AddCommand(
		newImageAddCmd(app),
		newImageRemoveCmd(app),
	)

	return cmd
}

func newImageAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TRIP FILE...",
		Short: "Add photos; large images are scaled down to 1600px wide",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			uploads := make([][]byte, 0, len(args)-1)
			for _, path := range args[1:] {
				b, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				uploads = append(uploads, b)
			}

			added, err := app.Services.Gallery.AddImages(ctx, t.ID, uploads)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d photos to %s\n", added, len(uploads), t.Name)
			return err
		},
	}
}

func newImageRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm TRIP INDEX",
		Aliases: []string{"delete"},
		Short:   "Delete the photo at INDEX (0-based)",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			if index < 0 || index >= len(t.Images) {
				return fmt.Errorf("trip %s has %d photos; index %d is out of range", t.Name, len(t.Images), index)
			}
			if err := confirm(app, yes, fmt.Sprintf("Delete photo %d of %s?", index, t.Name)); err != nil {
				return err
			}
			if err := app.Services.Gallery.DeleteImage(ctx, t.ID, index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted photo %d\n", index)
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
