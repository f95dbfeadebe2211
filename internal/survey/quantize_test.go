package survey

import (
	"math"
	"testing"

	"dccd/internal/api"
)

func TestQuantizeBoundaries(t *testing.T) {
	tests := []struct {
		in   float64
		want Level
	}{
		{1.5, Unanswered},
		{0, StronglyDisagree},
		{0.49, StronglyDisagree},
		{0.5, Disagree},
		{1.49, Disagree},
		{1.51, Agree},
		{2.49, Agree},
		{2.5, StronglyAgree},
		{3, StronglyAgree},
		{-4, StronglyDisagree},
		{17, StronglyAgree},
		{math.Inf(-1), StronglyDisagree},
		{math.Inf(1), StronglyAgree},
		{math.NaN(), Unanswered},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQuantizeIdempotentOnLevels(t *testing.T) {
	for _, l := range []Level{StronglyDisagree, Disagree, Agree, StronglyAgree} {
		if got := Quantize(float64(l)); got != l {
			t.Errorf("Quantize(%d) = %d", l, got)
		}
		if got := Quantize(l.SliderValue()); got != l {
			t.Errorf("Quantize(SliderValue(%d)) = %d", l, got)
		}
	}
	if Quantize(Unanswered.SliderValue()) != Unanswered {
		t.Errorf("untouched slider should stay unanswered")
	}
}

func TestQuantizeRange(t *testing.T) {
	for v := -1.0; v <= 4.0; v += 0.01 {
		got := Quantize(v)
		if !got.Valid() && got != Unanswered {
			t.Fatalf("Quantize(%v) produced out-of-range %d", v, got)
		}
	}
}

func TestNudge(t *testing.T) {
	v := SliderUntouched
	v = Nudge(v, -0.25)
	if Quantize(v) != Disagree {
		t.Fatalf("expected disagree after one step left, got %v", v)
	}
	v = Nudge(v, 0.25)
	if v != 1.75 || Quantize(v) != Agree {
		t.Fatalf("an answered slider should step over the untouched position, got %v", v)
	}
	if Nudge(0.1, -1) != SliderMin || Nudge(2.9, 1) != SliderMax {
		t.Fatalf("nudge must clamp to slider bounds")
	}
}

func TestNudgeNeverLandsOnSentinel(t *testing.T) {
	tests := []struct {
		start float64
		delta float64
		want  []Level
	}{
		{Disagree.SliderValue(), 0.25, []Level{Disagree, Agree, Agree, Agree}},
		{Agree.SliderValue(), -0.25, []Level{Agree, Disagree, Disagree, Disagree}},
		{Disagree.SliderValue(), 0.5, []Level{Agree, StronglyAgree, StronglyAgree, StronglyAgree}},
	}
	for _, tt := range tests {
		v := tt.start
		for i, want := range tt.want {
			v = Nudge(v, tt.delta)
			if got := Quantize(v); got != want {
				t.Errorf("start %v step %v press %d: got %v (%v), want %v", tt.start, tt.delta, i+1, got, v, want)
			}
		}
	}
}

func TestLevelOptionAndLabel(t *testing.T) {
	want := map[Level]api.ResponseOption{
		StronglyDisagree: api.StronglyDisagree,
		Disagree:         api.Disagree,
		Agree:            api.Agree,
		StronglyAgree:    api.StronglyAgree,
	}
	for l, opt := range want {
		got, ok := l.Option()
		if !ok || got != opt {
			t.Errorf("Option(%d) = %q, %v", l, got, ok)
		}
		if l.Label() != Labels[l] {
			t.Errorf("Label(%d) = %q", l, l.Label())
		}
	}
	if _, ok := Unanswered.Option(); ok {
		t.Errorf("unanswered must not map to a wire option")
	}
	if Unanswered.Label() != "Select an answer" {
		t.Errorf("unexpected unanswered label %q", Unanswered.Label())
	}
}
