package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	var palette, mode string

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the color palette and light/dark mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p, m *string
			if cmd.Flags().Changed("palette") {
				p = &palette
			}
			if cmd.Flags().Changed("mode") {
				m = &mode
			}

			ctx := cmd.Context()
			prefs, err := app.Services.Preferences.Get(ctx)
			if err != nil {
				return err
			}
			if p != nil || m != nil {
				if prefs, err = app.Services.Preferences.Update(ctx, p, m); err != nil {
					return err
				}
			}

			th := newTheme(prefs)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s %s\n",
				th.Dim.Render("palette"), th.Accent.Render(string(prefs.Palette)),
				th.Dim.Render("mode   "), th.Text.Render(string(prefs.Mode)))
			return nil
		},
	}

	cmd.Flags().StringVar(&palette, "palette", "", "Accent palette (neon|violet|aqua|forest)")
	cmd.Flags().StringVar(&mode, "mode", "", "Display mode (dark|light)")

	return cmd
}
