package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"dccd/internal/api"
	"dccd/internal/route"
	"dccd/internal/taxonomy"
)

const heavy = "┃━┗┛┏┓┣┫┳┻╋"

func fullRoute() route.Composition {
	return route.Compose([]api.Recommendation{
		{Name: "Knowdell Values", Phase: "Phase A"},
		{Name: "Energy Mapping", Phase: "Phase B"},
		{Name: "Decision Matrix", Phase: "Phase C"},
		{Name: "Mind Mapping", Phase: "Phase C"},
	})
}

func connectorBands(s Styles, g route.Graph, width int) [][]string {
	lay := layoutGrid(g.Nodes)
	total := DiagramWidth(width)
	center := func(col int) int { return col*(width+DiagramColumnGap) + width/2 }
	var bands [][]string
	for r := 0; r < len(lay.rows)-1; r++ {
		bands = append(bands, renderConnectors(s, g.Edges, lay, r, total, center))
	}
	return bands
}

func TestLayoutGridFromPositions(t *testing.T) {
	g := route.BuildGraph(route.Composition{}, 0)
	lay := layoutGrid(g.Nodes)

	if len(lay.rows) != 3 || len(lay.cols) != 3 {
		t.Fatalf("expected 3x3 grid, got %dx%d", len(lay.rows), len(lay.cols))
	}
	want := map[taxonomy.Code][2]int{
		taxonomy.VAL: {0, 0}, taxonomy.STR: {0, 1}, taxonomy.SKL: {0, 2},
		taxonomy.NRG: {1, 1},
		taxonomy.AI: {2, 0}, taxonomy.MM: {2, 1}, taxonomy.DM: {2, 2},
	}
	for code, pos := range want {
		if lay.at[code] != pos {
			t.Errorf("%s at %v, want %v", code, lay.at[code], pos)
		}
	}
}

func TestRenderDiagram_Shape(t *testing.T) {
	s := NewStyles(LightTheme())
	width := DefaultNodeWidth
	out := RenderDiagram(s, route.BuildGraph(fullRoute(), 3), DiagramOptions{NodeWidth: width})

	lines := strings.Split(out, "\n")
	wantLines := 3*(NodeContentLines+2) + 2*ConnectorLines
	if len(lines) != wantLines {
		t.Fatalf("got %d lines, want %d", len(lines), wantLines)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != DiagramWidth(width) {
			t.Errorf("line %d width %d, want %d", i, w, DiagramWidth(width))
		}
	}
	for _, a := range taxonomy.All() {
		if !strings.Contains(out, a.Name) {
			t.Errorf("diagram missing %q", a.Name)
		}
	}
	for _, label := range []string{"Step 1", "Step 2", "Step 3"} {
		if !strings.Contains(out, label) {
			t.Errorf("diagram missing %q", label)
		}
	}
}

func TestRenderDiagram_Empty(t *testing.T) {
	if out := RenderDiagram(NewStyles(LightTheme()), route.Graph{}, DiagramOptions{}); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}

func TestConnectorsFollowStage(t *testing.T) {
	s := NewStyles(LightTheme())
	c := fullRoute()

	tests := []struct {
		stage     int
		wantHeavy []bool // per band: A to hub, hub to C
	}{
		{0, []bool{false, false}},
		{1, []bool{false, false}},
		{2, []bool{true, false}},
		{3, []bool{true, true}},
	}
	for _, tt := range tests {
		bands := connectorBands(s, route.BuildGraph(c, tt.stage), DefaultNodeWidth)
		if len(bands) != 2 {
			t.Fatalf("expected 2 connector bands, got %d", len(bands))
		}
		for i, band := range bands {
			got := strings.ContainsAny(strings.Join(band, "\n"), heavy)
			if got != tt.wantHeavy[i] {
				t.Errorf("stage %d band %d: heavy=%v, want %v", tt.stage, i, got, tt.wantHeavy[i])
			}
		}
	}
}

func TestConnectorJunction(t *testing.T) {
	s := NewStyles(LightTheme())
	bands := connectorBands(s, route.BuildGraph(route.Composition{}, 0), DefaultNodeWidth)

	// Three edges meet above the hub: from the left, straight down and from the right.
	above := bands[0][1]
	for _, glyph := range []string{"╰", "┼", "╯"} {
		if !strings.Contains(above, glyph) {
			t.Errorf("missing %q in %q", glyph, above)
		}
	}
	below := bands[1][1]
	for _, glyph := range []string{"╭", "┼", "╮"} {
		if !strings.Contains(below, glyph) {
			t.Errorf("missing %q in %q", glyph, below)
		}
	}
}

func TestRenderNodeFocus(t *testing.T) {
	s := NewStyles(LightTheme())
	g := route.BuildGraph(fullRoute(), 0)
	n, ok := g.Node(taxonomy.NRG)
	if !ok {
		t.Fatal("hub missing")
	}

	plain := RenderNode(s, n, DefaultNodeWidth, false)
	focused := RenderNode(s, n, DefaultNodeWidth, true)
	if strings.Contains(plain, "╔") || !strings.Contains(focused, "╔") {
		t.Fatalf("focus should switch to a double border")
	}
	if lipgloss.Width(plain) != DefaultNodeWidth || lipgloss.Width(focused) != DefaultNodeWidth {
		t.Fatalf("node width changed with focus")
	}
}

func TestRenderTooltip(t *testing.T) {
	s := NewStyles(LightTheme())
	g := route.BuildGraph(fullRoute(), 3)

	n, _ := g.Node(taxonomy.VAL)
	out := RenderTooltip(s, n, 50)
	for _, want := range []string{"Phase A", "Knowdell Values", "Step 1", "Primary sequence"} {
		if !strings.Contains(out, want) {
			t.Errorf("tooltip missing %q:\n%s", want, out)
		}
	}

	n, _ = g.Node(taxonomy.MM)
	if out := RenderTooltip(s, n, 50); !strings.Contains(out, "Also recommended") {
		t.Errorf("secondary node tooltip:\n%s", out)
	}
	n, _ = g.Node(taxonomy.AI)
	if out := RenderTooltip(s, n, 50); !strings.Contains(out, "Not selected") {
		t.Errorf("default node tooltip:\n%s", out)
	}
}

func TestRenderLegend(t *testing.T) {
	out := RenderLegend(NewStyles(LightTheme()))
	for _, want := range []string{"Primary sequence", "Also recommended", "Not selected"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}
