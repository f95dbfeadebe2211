// Package route turns backend recommendations into the primary activity
// route, the diagram graph shown for it, and the timed highlight that
// walks the route one step at a time.
package route

import (
	"sync/atomic"

	"dccd/internal/api"
	"dccd/internal/logging"
	"dccd/internal/taxonomy"
)

// MaxRouteLength bounds the primary route: one phase A activity, the hub,
// one phase C activity.
const MaxRouteLength = 3

// CodeSet is a set of activity codes.
type CodeSet map[taxonomy.Code]struct{}

// Has reports membership.
func (s CodeSet) Has(c taxonomy.Code) bool {
	_, ok := s[c]
	return ok
}

// Codes returns the members in taxonomy order.
func (s CodeSet) Codes() []taxonomy.Code {
	out := make([]taxonomy.Code, 0, len(s))
	for _, a := range taxonomy.All() {
		if s.Has(a.Code) {
			out = append(out, a.Code)
		}
	}
	return out
}

// Composition is the derived selection and primary route for one
// recommendation list.
type Composition struct {
	Selected  CodeSet
	Sequence  []taxonomy.Code
	Unmatched []string
}

var unmatchedTotal atomic.Int64

// UnmatchedTotal counts recommendation names that matched no activity
// since process start.
func UnmatchedTotal() int64 {
	return unmatchedTotal.Load()
}

// Compose maps an ordered recommendation list onto the taxonomy.
//
// The first resolvable phase A and phase C recommendations (in input
// order) become the route ends; the hub joins the middle when it was
// recommended at all. Names with no taxonomy entry are skipped, logged
// and counted.
func Compose(recs []api.Recommendation) Composition {
	c := Composition{Selected: make(CodeSet, len(recs))}

	var topA, topC taxonomy.Code
	seenUnmatched := make(map[string]bool)

	for _, rec := range recs {
		code, ok := taxonomy.CodeForName(rec.Name)
		if !ok {
			if !seenUnmatched[rec.Name] {
				seenUnmatched[rec.Name] = true
				c.Unmatched = append(c.Unmatched, rec.Name)
			}
			continue
		}
		c.Selected[code] = struct{}{}

		if code == taxonomy.Hub {
			continue
		}
		phase, _ := taxonomy.ParsePhase(rec.Phase)
		switch {
		case phase == taxonomy.PhaseA && topA == "":
			topA = code
		case phase == taxonomy.PhaseC && topC == "":
			topC = code
		}
	}

	if topA != "" {
		c.Sequence = append(c.Sequence, topA)
	}
	if c.Selected.Has(taxonomy.Hub) {
		c.Sequence = append(c.Sequence, taxonomy.Hub)
	}
	if topC != "" {
		c.Sequence = append(c.Sequence, topC)
	}

	if len(c.Unmatched) > 0 {
		unmatchedTotal.Add(int64(len(c.Unmatched)))
		logging.Get(logging.CategoryRoute).Warnw("recommendations without a taxonomy entry",
			"names", c.Unmatched,
			"total", unmatchedTotal.Load(),
		)
	}
	return c
}

// Index returns the 0-based route position of code, or -1.
func (c Composition) Index(code taxonomy.Code) int {
	for i, s := range c.Sequence {
		if s == code {
			return i
		}
	}
	return -1
}

// SameSequence reports whether two routes are identical.
func SameSequence(a, b []taxonomy.Code) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
