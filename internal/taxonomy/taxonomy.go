// Package taxonomy holds the fixed registry of career-design activities.
//
// The registry is built once at package initialisation and never mutated.
// Callers only see copies of the activity records.
package taxonomy

import (
	"fmt"
	"strings"
)

// Code identifies an activity ("VAL", "NRG", ...).
type Code string

// Phase is one of the three ordered progression stages.
type Phase string

const (
	PhaseA Phase = "Phase A"
	PhaseB Phase = "Phase B"
	PhaseC Phase = "Phase C"
)

// Rank orders phases A < B < C. Unknown phases rank 0.
func (p Phase) Rank() int {
	switch p {
	case PhaseA:
		return 1
	case PhaseB:
		return 2
	case PhaseC:
		return 3
	default:
		return 0
	}
}

// Tag returns the bare phase letter ("A", "B", "C").
func (p Phase) Tag() string {
	return strings.TrimPrefix(string(p), "Phase ")
}

// ParsePhase accepts the wire form ("Phase A") or the bare tag ("A"),
// case-insensitive and trimmed.
func ParsePhase(s string) (Phase, bool) {
	tag := strings.ToUpper(strings.TrimSpace(s))
	tag = strings.TrimSpace(strings.TrimPrefix(tag, "PHASE"))
	switch tag {
	case "A":
		return PhaseA, true
	case "B":
		return PhaseB, true
	case "C":
		return PhaseC, true
	}
	return "", false
}

// Position is a fixed canvas coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Activity is one entry of the taxonomy.
type Activity struct {
	Code        Code     `json:"code"`
	Name        string   `json:"name"`
	Phase       Phase    `json:"phase"`
	Description string   `json:"description"`
	Position    Position `json:"position"`
}

// Activity codes.
const (
	VAL Code = "VAL"
	STR Code = "STR"
	SKL Code = "SKL"
	NRG Code = "NRG"
	AI  Code = "AI"
	MM  Code = "MM"
	DM  Code = "DM"
)

// Hub is the phase-B activity every primary route passes through.
const Hub = NRG

var activities = [...]Activity{
	{
		Code:        VAL,
		Name:        "Knowdell Values",
		Phase:       PhaseA,
		Description: "Clarifies your core career values so decisions align with what matters most.",
		Position:    Position{X: 60, Y: 60},
	},
	{
		Code:        STR,
		Name:        "CliftonStrengths",
		Phase:       PhaseA,
		Description: "Identifies natural strengths you can build into confident career direction.",
		Position:    Position{X: 420, Y: 60},
	},
	{
		Code:        SKL,
		Name:        "Skillset Card Sort",
		Phase:       PhaseA,
		Description: "Helps you name transferable skills and gaps from your experiences.",
		Position:    Position{X: 780, Y: 60},
	},
	{
		Code:        NRG,
		Name:        "Energy Mapping",
		Phase:       PhaseB,
		Description: "Tracks what energizes or drains you to ground decisions in daily reality.",
		Position:    Position{X: 420, Y: 320},
	},
	{
		Code:        AI,
		Name:        "AI Exploration Generator",
		Phase:       PhaseC,
		Description: "Uses guided reflection to generate career pathways from your self-knowledge.",
		Position:    Position{X: 60, Y: 580},
	},
	{
		Code:        MM,
		Name:        "Mind Mapping",
		Phase:       PhaseC,
		Description: "Expands possibilities through structured, creative exploration of pathways.",
		Position:    Position{X: 420, Y: 580},
	},
	{
		Code:        DM,
		Name:        "Decision Matrix",
		Phase:       PhaseC,
		Description: "Compares options across practical factors to support clear decisions.",
		Position:    Position{X: 780, Y: 580},
	},
}

var (
	byCode = make(map[Code]int, len(activities))
	byName = make(map[string]Code, len(activities))
)

func init() {
	for i, a := range activities {
		if _, dup := byCode[a.Code]; dup {
			panic(fmt.Sprintf("taxonomy: duplicate code %q", a.Code))
		}
		if _, dup := byName[a.Name]; dup {
			panic(fmt.Sprintf("taxonomy: duplicate name %q", a.Name))
		}
		byCode[a.Code] = i
		byName[a.Name] = a.Code
	}
}

// Size is the number of activities in the taxonomy.
const Size = len(activities)

// All returns the activities in canonical order.
func All() []Activity {
	out := make([]Activity, len(activities))
	copy(out, activities[:])
	return out
}

// Lookup returns the activity for a code.
func Lookup(code Code) (Activity, bool) {
	i, ok := byCode[code]
	if !ok {
		return Activity{}, false
	}
	return activities[i], true
}

// CodeForName resolves a display name to its code. Matching is exact;
// unknown names report false.
func CodeForName(name string) (Code, bool) {
	code, ok := byName[name]
	return code, ok
}

// ByPhase returns the activities of one phase in canonical order.
func ByPhase(p Phase) []Activity {
	var out []Activity
	for _, a := range activities {
		if a.Phase == p {
			out = append(out, a)
		}
	}
	return out
}
