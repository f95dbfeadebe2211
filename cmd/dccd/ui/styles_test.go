package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("DCCD_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when DCCD_DARK_MODE=1")
	}

	t.Setenv("DCCD_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when DCCD_DARK_MODE is unset")
	}
}

func TestDetectTheme_ColorFGBG(t *testing.T) {
	t.Setenv("DCCD_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for background 0")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme for background 15")
	}
}

func TestPaletteFlipsBetweenThemes(t *testing.T) {
	if LightTheme().Primary != DarkTheme().Accent || LightTheme().Accent != DarkTheme().Primary {
		t.Fatalf("dark theme should swap primary and accent")
	}
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	if got := lipgloss.Width(s.RenderDivider(12)); got != 12 {
		t.Fatalf("divider width = %d, want 12", got)
	}
	if s.RenderDivider(0) != "" {
		t.Fatalf("zero width divider should be empty")
	}
}

func TestBanner(t *testing.T) {
	s := NewStyles(LightTheme())
	out := Banner(s, 60)
	if !strings.Contains(out, "Career Design Diagnostic") {
		t.Fatalf("banner missing title: %q", out)
	}
	if got := lipgloss.Width(out); got != 60 {
		t.Fatalf("banner width = %d, want 60", got)
	}
}
