// Package ui provides the visual styling for the dccd terminal client.
// Uses the Dartmouth green palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f7f7f5")
	LightForeground = lipgloss.Color("#1b2a22")
	LightPrimary    = lipgloss.Color("#00693E") // Dartmouth Green
	LightAccent     = lipgloss.Color("#A5D75F") // Spring Green
	LightMuted      = lipgloss.Color("#8a918c")
	LightBorder     = lipgloss.Color("#c9cfca")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0f1a14")
	DarkForeground = lipgloss.Color("#eef2ee")
	DarkPrimary    = lipgloss.Color("#A5D75F") // flipped
	DarkAccent     = lipgloss.Color("#00693E") // flipped
	DarkMuted      = lipgloss.Color("#6d786f")
	DarkBorder     = lipgloss.Color("#34433a")
	DarkCard       = lipgloss.Color("#16241c")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#00693E")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#267ABA") // River Blue
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or DCCD_DARK_MODE=1, light otherwise.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				// 0-6 and 8 (dark grey) are likely dark backgrounds
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("DCCD_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Kicker   lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Survey
	Question       lipgloss.Style
	QuestionActive lipgloss.Style
	SliderTrack    lipgloss.Style
	SliderFill     lipgloss.Style
	SliderKnob     lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Alert          lipgloss.Style

	// Diagram
	NodePrimary   lipgloss.Style
	NodeSecondary lipgloss.Style
	NodeDefault   lipgloss.Style
	EdgeSelected  lipgloss.Style
	EdgeIdle      lipgloss.Style
	Tooltip       lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	white := lipgloss.Color("#ffffff")

	return Styles{
		Theme: theme,

		// Layout styles
		Header: lipgloss.NewStyle().
			Background(LightPrimary).
			Foreground(white).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		// Text styles
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Kicker: lipgloss.NewStyle().
			Foreground(theme.Muted).
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

		// Status styles
		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		// Survey styles
		Question: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		QuestionActive: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary),

		SliderTrack: lipgloss.NewStyle().
			Foreground(theme.Border),

		SliderFill: lipgloss.NewStyle().
			Foreground(LightAccent),

		SliderKnob: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Button: lipgloss.NewStyle().
			Background(LightPrimary).
			Foreground(white).
			Padding(0, 2).
			Bold(true),

		ButtonDisabled: lipgloss.NewStyle().
			Background(theme.Border).
			Foreground(theme.Muted).
			Padding(0, 2),

		Alert: lipgloss.NewStyle().
			Foreground(Destructive).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Destructive),

		// Diagram styles
		NodePrimary: lipgloss.NewStyle().
			Background(LightPrimary).
			Foreground(white).
			Bold(true).
			Border(lipgloss.ThickBorder()).
			BorderForeground(LightPrimary).
			Align(lipgloss.Center),

		NodeSecondary: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(LightAccent).
			Align(lipgloss.Center),

		NodeDefault: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Align(lipgloss.Center),

		EdgeSelected: lipgloss.NewStyle().
			Foreground(LightPrimary).
			Bold(true),

		EdgeIdle: lipgloss.NewStyle().
			Foreground(LightAccent),

		Tooltip: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary),

		// Component styles
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(LightAccent).
			Foreground(lipgloss.Color("#1b2a22")).
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Banner returns the application title bar.
func Banner(s Styles, width int) string {
	title := "Dartmouth Career Design Diagnostic"
	if width <= 0 {
		return s.Header.Render(title)
	}
	return s.Header.Width(width).Render(title)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
