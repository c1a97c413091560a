// Package ui renders catalog state into styled terminal blocks. Rendering
// here is a pure projection: functions take the data they display as
// parameters and never reach into filter or wishlist state themselves.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light palette
	lightForeground = lipgloss.Color("#1a1a24")
	lightPrimary    = lipgloss.Color("#5a2ca0")
	lightAccent     = lipgloss.Color("#c2185b")
	lightMuted      = lipgloss.Color("#8a8a96")
	lightBorder     = lipgloss.Color("#d0d0da")
	lightCard       = lipgloss.Color("#f4f4f8")

	// Dark palette
	darkForeground = lipgloss.Color("#ececf4")
	darkPrimary    = lipgloss.Color("#b388ff")
	darkAccent     = lipgloss.Color("#ff4081")
	darkMuted      = lipgloss.Color("#6b6b7b")
	darkBorder     = lipgloss.Color("#3a3a4c")
	darkCard       = lipgloss.Color("#252535")

	// Semantic colors, same in both modes
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
)

// Theme holds the active color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lightForeground,
		Primary:    lightPrimary,
		Accent:     lightAccent,
		Muted:      lightMuted,
		Border:     lightBorder,
		Card:       lightCard,
	}
}

// DarkTheme returns the dark scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: darkForeground,
		Primary:    darkPrimary,
		Accent:     darkAccent,
		Muted:      darkMuted,
		Border:     darkBorder,
		Card:       darkCard,
		IsDark:     true,
	}
}

// ThemeNamed resolves a configured theme name, falling back to detection
// for anything other than "light"/"dark".
func ThemeNamed(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme picks dark mode from GEARSHELF_DARK_MODE or the COLORFGBG
// convention, defaulting to dark (most terminals).
func DetectTheme() Theme {
	if v := os.Getenv("GEARSHELF_DARK_MODE"); v != "" {
		if v == "1" || strings.EqualFold(v, "true") {
			return DarkTheme()
		}
		return LightTheme()
	}

	if fgbg := os.Getenv("COLORFGBG"); fgbg != "" {
		parts := strings.Split(fgbg, ";")
		if len(parts) >= 2 {
			if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil && bg >= 7 && bg != 8 {
				return LightTheme()
			}
		}
	}
	return DarkTheme()
}

// Styles holds the styled components used across the browser.
type Styles struct {
	Theme Theme

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Quote    lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardArt      lipgloss.Style
	PickBadge    lipgloss.Style
	Heart        lipgloss.Style
	Price        lipgloss.Style
	Link         lipgloss.Style

	Notice  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	FilterBar  lipgloss.Style
	FilterOn   lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Primary).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Quote: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		CardArt: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Card).
			Align(lipgloss.Center),

		PickBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a24")).
			Background(colorWarning).
			Padding(0, 1).
			Bold(true),

		Heart: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),

		Link: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Underline(true),

		Notice: lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		FilterBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		FilterOn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}

// DefaultStyles builds styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
