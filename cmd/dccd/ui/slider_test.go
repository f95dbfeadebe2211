package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"dccd/internal/survey"
)

func TestSliderKnobIndex(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{survey.SliderMin, 0},
		{survey.SliderMax, 30},
		{1.5, 15},
		{-4, 0},
		{9, 30},
	}
	for _, tt := range tests {
		if got := SliderKnobIndex(tt.value, 31); got != tt.want {
			t.Errorf("SliderKnobIndex(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestRenderSlider(t *testing.T) {
	s := NewStyles(LightTheme())

	untouched := RenderSlider(s, survey.SliderUntouched, 24)
	if !strings.Contains(untouched, "○") || strings.Contains(untouched, "●") {
		t.Errorf("untouched slider should show a hollow knob: %q", untouched)
	}

	set := RenderSlider(s, 2.6, 24)
	if !strings.Contains(set, "●") {
		t.Errorf("answered slider should show a solid knob: %q", set)
	}

	for _, v := range []float64{0, 1, 1.5, 3, math.NaN()} {
		if w := lipgloss.Width(RenderSlider(s, v, 24)); w != 24 {
			t.Errorf("value %v: width %d, want 24", v, w)
		}
	}
}

func TestRenderSliderLabel(t *testing.T) {
	s := NewStyles(LightTheme())
	if got := RenderSliderLabel(s, survey.SliderUntouched); !strings.Contains(got, "Select an answer") {
		t.Errorf("got %q", got)
	}
	if got := RenderSliderLabel(s, 0.2); !strings.Contains(got, "Strongly disagree") {
		t.Errorf("got %q", got)
	}
}
