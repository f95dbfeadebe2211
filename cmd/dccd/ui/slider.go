package ui

import (
	"math"
	"strings"

	"dccd/internal/survey"
)

// RenderSlider draws a horizontal track for a slider value in
// [survey.SliderMin, survey.SliderMax]. An untouched slider shows a hollow knob.
func RenderSlider(s Styles, value float64, width int) string {
	if width < 2 {
		width = 2
	}
	if math.IsNaN(value) {
		value = survey.SliderUntouched
	}
	value = math.Max(survey.SliderMin, math.Min(survey.SliderMax, value))

	knob := SliderKnobIndex(value, width)
	level := survey.Quantize(value)

	var b strings.Builder
	if level.Valid() {
		b.WriteString(s.SliderFill.Render(strings.Repeat("━", knob)))
		b.WriteString(s.SliderKnob.Render("●"))
	} else {
		b.WriteString(s.SliderTrack.Render(strings.Repeat("─", knob)))
		b.WriteString(s.Muted.Render("○"))
	}
	b.WriteString(s.SliderTrack.Render(strings.Repeat("─", width-knob-1)))
	return b.String()
}

// SliderKnobIndex maps a value onto a track cell.
func SliderKnobIndex(value float64, width int) int {
	span := survey.SliderMax - survey.SliderMin
	idx := int(math.Round((value - survey.SliderMin) / span * float64(width-1)))
	if idx < 0 {
		return 0
	}
	if idx > width-1 {
		return width - 1
	}
	return idx
}

// RenderSliderLabel shows the answer the slider currently reads as.
func RenderSliderLabel(s Styles, value float64) string {
	level := survey.Quantize(value)
	if !level.Valid() {
		return s.Muted.Italic(true).Render(level.Label())
	}
	return s.Bold.Render("Selected: " + level.Label())
}
