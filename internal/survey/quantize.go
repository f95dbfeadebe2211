// Package survey holds the answer model for the agreement-scale survey:
// the slider quantizer, discrete answer levels and the per-question answer map.
package survey

import (
	"math"

	"dccd/internal/api"
)

// Level is a discrete answer on the four-point agreement scale.
type Level int

const (
	StronglyDisagree Level = 0
	Disagree         Level = 1
	Agree            Level = 2
	StronglyAgree    Level = 3

	// Unanswered marks a control that has not been touched yet.
	Unanswered Level = -1
)

// Slider bounds and the reserved untouched position.
const (
	SliderMin       = 0.0
	SliderMax       = 3.0
	SliderUntouched = 1.5
)

// Quantize maps a continuous slider reading to a discrete level.
// The exact midpoint 1.5 is reserved for Unanswered; values outside
// [0, 3] fall through to 0 or 3. NaN is treated as untouched.
func Quantize(v float64) Level {
	switch {
	case v == SliderUntouched || math.IsNaN(v):
		return Unanswered
	case v < 0.5:
		return StronglyDisagree
	case v < 1.5:
		return Disagree
	case v < 2.5:
		return Agree
	default:
		return StronglyAgree
	}
}

// Valid reports whether l is one of the four answer levels.
func (l Level) Valid() bool {
	return l >= StronglyDisagree && l <= StronglyAgree
}

// Option returns the wire value for the level.
func (l Level) Option() (api.ResponseOption, bool) {
	switch l {
	case StronglyDisagree:
		return api.StronglyDisagree, true
	case Disagree:
		return api.Disagree, true
	case Agree:
		return api.Agree, true
	case StronglyAgree:
		return api.StronglyAgree, true
	}
	return "", false
}

// Label returns the display label for the level.
func (l Level) Label() string {
	switch l {
	case StronglyDisagree:
		return "Strongly disagree"
	case Disagree:
		return "Disagree"
	case Agree:
		return "Agree"
	case StronglyAgree:
		return "Strongly agree"
	}
	return "Select an answer"
}

// Labels lists the scale labels left to right.
var Labels = []string{"Strongly disagree", "Disagree", "Agree", "Strongly agree"}

// SliderValue is the position a control shows for a level.
func (l Level) SliderValue() float64 {
	if !l.Valid() {
		return SliderUntouched
	}
	return float64(l)
}

// Nudge moves a slider reading by delta, clamped to the slider bounds.
// Only an untouched slider sits on SliderUntouched: an answered slider
// steps over it, so keyboard input never clears an answer.
func Nudge(v, delta float64) float64 {
	next := step(v, delta)
	if next == SliderUntouched && v != SliderUntouched {
		next = step(next, delta)
	}
	return next
}

func step(v, delta float64) float64 {
	v += delta
	if v < SliderMin {
		return SliderMin
	}
	if v > SliderMax {
		return SliderMax
	}
	// Round so repeated float steps compare exactly against the sentinel.
	return math.Round(v*100) / 100
}
