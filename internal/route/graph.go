package route

import (
	"fmt"

	"dccd/internal/taxonomy"
)

// Status is the visual emphasis of a diagram node.
type Status string

const (
	StatusDefault   Status = "default"
	StatusSecondary Status = "secondary"
	StatusPrimary   Status = "primary"
)

// Node is one activity on the diagram.
type Node struct {
	ID        taxonomy.Code     `json:"id"`
	Activity  taxonomy.Activity `json:"activity"`
	Position  taxonomy.Position `json:"position"`
	Status    Status            `json:"status"`
	StepLabel string            `json:"step_label,omitempty"`
}

// Edge connects two activities. Selected edges are drawn emphasised.
type Edge struct {
	ID       string        `json:"id"`
	Source   taxonomy.Code `json:"source"`
	Target   taxonomy.Code `json:"target"`
	Selected bool          `json:"selected"`
}

// Graph is the full diagram for one render pass.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stage int    `json:"stage"`
}

// Node returns the node with the given id.
func (g Graph) Node(id taxonomy.Code) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given id.
func (g Graph) Edge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// EdgeID names the edge from source to target.
func EdgeID(source, target taxonomy.Code) string {
	return string(source) + "-" + string(target)
}

// topology is every phase A activity into the hub, then the hub out to
// every phase C activity. It does not depend on selection.
var topology = func() []Edge {
	var edges []Edge
	for _, a := range taxonomy.ByPhase(taxonomy.PhaseA) {
		edges = append(edges, Edge{ID: EdgeID(a.Code, taxonomy.Hub), Source: a.Code, Target: taxonomy.Hub})
	}
	for _, c := range taxonomy.ByPhase(taxonomy.PhaseC) {
		edges = append(edges, Edge{ID: EdgeID(taxonomy.Hub, c.Code), Source: taxonomy.Hub, Target: c.Code})
	}
	return edges
}()

// StepLabel formats the route position label.
func StepLabel(index int) string {
	return fmt.Sprintf("Step %d", index+1)
}

// BuildGraph derives nodes and edges for a composition at a highlight
// stage. stage is clamped to [0, len(c.Sequence)].
//
// A node is primary once it is inside the highlighted prefix, secondary
// when merely recommended, default otherwise. Step labels follow the
// route regardless of stage. An edge is selected only when both of its
// ends are inside the highlighted prefix.
func BuildGraph(c Composition, stage int) Graph {
	if stage < 0 {
		stage = 0
	}
	if stage > len(c.Sequence) {
		stage = len(c.Sequence)
	}

	highlighted := make(CodeSet, stage)
	for _, code := range c.Sequence[:stage] {
		highlighted[code] = struct{}{}
	}

	all := taxonomy.All()
	g := Graph{
		Nodes: make([]Node, 0, len(all)),
		Edges: make([]Edge, 0, len(topology)),
		Stage: stage,
	}

	for _, a := range all {
		n := Node{
			ID:       a.Code,
			Activity: a,
			Position: a.Position,
			Status:   StatusDefault,
		}
		switch {
		case highlighted.Has(a.Code):
			n.Status = StatusPrimary
		case c.Selected.Has(a.Code):
			n.Status = StatusSecondary
		}
		if i := c.Index(a.Code); i >= 0 {
			n.StepLabel = StepLabel(i)
		}
		g.Nodes = append(g.Nodes, n)
	}

	for _, e := range topology {
		e.Selected = highlighted.Has(e.Source) && highlighted.Has(e.Target)
		g.Edges = append(g.Edges, e)
	}
	return g
}
