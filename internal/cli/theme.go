package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pkordes/triplog/internal/domain"
)

// Accent colors per palette.
var accents = map[domain.Palette]lipgloss.Color{
	domain.PaletteNeon:   lipgloss.Color("#39ff14"),
	domain.PaletteViolet: lipgloss.Color("#b388ff"),
	domain.PaletteAqua:   lipgloss.Color("#18ffff"),
	domain.PaletteForest: lipgloss.Color("#66bb6a"),
}

// theme holds the lipgloss styles derived from the display preferences.
type theme struct {
	Title  lipgloss.Style
	Accent lipgloss.Style
	Text   lipgloss.Style
	Dim    lipgloss.Style
	Done   lipgloss.Style
}

func newTheme(p domain.Preferences) theme {
	accent, ok := accents[p.Palette]
	if !ok {
		accent = accents[domain.PaletteNeon]
	}
	fg, dim := lipgloss.Color("#ebebeb"), lipgloss.Color("#8a8a8a")
	if p.Mode == domain.ModeLight {
		fg, dim = lipgloss.Color("#1c1c1c"), lipgloss.Color("#6e6e6e")
	}
	return theme{
		Title:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Accent: lipgloss.NewStyle().Foreground(accent),
		Text:   lipgloss.NewStyle().Foreground(fg),
		Dim:    lipgloss.NewStyle().Foreground(dim),
		Done:   lipgloss.NewStyle().Foreground(dim).Strikethrough(true),
	}
}

// loadTheme builds the theme from the stored preferences, falling back to
// the defaults when they cannot be read.
func loadTheme(ctx context.Context, app *App) theme {
	p, err := app.Services.Preferences.Get(ctx)
	if err != nil {
		p = domain.DefaultPreferences
	}
	return newTheme(p)
}

// dateRange renders "start → end", leaving out missing ends.
func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " →"
	case start == "":
		return "→ " + end
	}
	return start + " → " + end
}

// renderTripLine is one row of the trip listing.
func (th theme) renderTripLine(t domain.Trip) string {
	parts := []string{
		th.Dim.Render(shortID(t.ID)),
		th.Title.Render(t.Name),
	}
	if t.Location != "" {
		parts = append(parts, th.Text.Render(t.Location))
	}
	if r := dateRange(t.Start, t.End); r != "" {
		parts = append(parts, th.Dim.Render(r))
	}
	parts = append(parts, th.Accent.Render(string(t.Category)))
	if len(t.Itinerary) > 0 {
		parts = append(parts, th.Dim.Render(fmt.Sprintf("%d%%", domain.CompletionPercent(t.Itinerary))))
	}
	return strings.Join(parts, "  ")
}

// renderStats is the dashboard line under the listing.
func (th theme) renderStats(s domain.Stats) string {
	return th.Dim.Render(fmt.Sprintf("%d of %d trips · %d places · %d activities · %d photos",
		s.Shown, s.TotalTrips, s.TotalPlaces, s.TotalItems, s.TotalImages))
}

// renderTrip is the detail view of one trip.
func (th theme) renderTrip(t domain.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", th.Title.Render(t.Name), th.Accent.Render(string(t.Category)))
	fmt.Fprintf(&b, "  %s  %s\n", th.Dim.Render("ID      "), t.ID)
	if t.Location != "" {
		fmt.Fprintf(&b, "  %s  %s\n", th.Dim.Render("LOCATION"), th.Text.Render(t.Location))
	}
	if r := dateRange(t.Start, t.End); r != "" {
		fmt.Fprintf(&b, "  %s  %s\n", th.Dim.Render("DATES   "), th.Text.Render(r))
	}
	fmt.Fprintf(&b, "  %s  %d\n", th.Dim.Render("PHOTOS  "), len(t.Images))
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", th.Text.Render(t.Description))
	}

	fmt.Fprintf(&b, "\n%s %s\n", th.Title.Render("Itinerary"),
		th.Dim.Render(fmt.Sprintf("(%d%% done)", domain.CompletionPercent(t.Itinerary))))
	if len(t.Itinerary) == 0 {
		fmt.Fprintf(&b, "  %s\n", th.Dim.Render("no activities"))
	}
	for _, it := range t.Itinerary {
		box, text := "[ ]", th.Text.Render(it.Text)
		if it.Done {
			box, text = "[x]", th.Done.Render(it.Text)
		}
		line := fmt.Sprintf("  %s %s", th.Accent.Render(box), th.Dim.Render(shortID(it.ID)))
		if it.Time != "" {
			line += "  " + th.Accent.Render(it.Time)
		}
		fmt.Fprintf(&b, "%s  %s\n", line, text)
	}
	return b.String()
}
