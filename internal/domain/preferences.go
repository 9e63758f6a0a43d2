package domain

import "fmt"

// Palette is the accent color scheme chosen by the user.
type Palette string

const (
	PaletteNeon   Palette = "neon"
	PaletteViolet Palette = "violet"
	PaletteAqua   Palette = "aqua"
	PaletteForest Palette = "forest"
)

// Mode is the light/dark setting.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// Preferences are the display settings stored beside the trip collection.
// They are independent of trip data.
type Preferences struct {
	Palette Palette `json:"palette"`
	Mode    Mode    `json:"mode"`
}

// DefaultPreferences are used when nothing valid has been stored.
var DefaultPreferences = Preferences{Palette: PaletteNeon, Mode: ModeDark}

// ParsePalette validates s as a Palette.
func ParsePalette(s string) (Palette, error) {
	switch p := Palette(s); p {
	case PaletteNeon, PaletteViolet, PaletteAqua, PaletteForest:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown palette %q", ErrValidation, s)
}

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeDark, ModeLight:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrValidation, s)
}
