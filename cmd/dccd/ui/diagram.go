package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dccd/internal/route"
	"dccd/internal/taxonomy"
)

// DiagramOptions controls a diagram render.
type DiagramOptions struct {
	NodeWidth int
	// Focus outlines one node; empty means none.
	Focus taxonomy.Code
}

// direction bits for connector cells
const (
	dirUp = 1 << iota
	dirDown
	dirLeft
	dirRight
)

var lightGlyphs = map[int]string{
	dirUp: "│", dirDown: "│", dirUp | dirDown: "│",
	dirLeft: "─", dirRight: "─", dirLeft | dirRight: "─",
	dirUp | dirRight: "╰", dirUp | dirLeft: "╯",
	dirDown | dirRight: "╭", dirDown | dirLeft: "╮",
	dirUp | dirDown | dirRight: "├", dirUp | dirDown | dirLeft: "┤",
	dirLeft | dirRight | dirDown: "┬", dirLeft | dirRight | dirUp: "┴",
	dirUp | dirDown | dirLeft | dirRight: "┼",
}

var heavyGlyphs = map[int]string{
	dirUp: "┃", dirDown: "┃", dirUp | dirDown: "┃",
	dirLeft: "━", dirRight: "━", dirLeft | dirRight: "━",
	dirUp | dirRight: "┗", dirUp | dirLeft: "┛",
	dirDown | dirRight: "┏", dirDown | dirLeft: "┓",
	dirUp | dirDown | dirRight: "┣", dirUp | dirDown | dirLeft: "┫",
	dirLeft | dirRight | dirDown: "┳", dirLeft | dirRight | dirUp: "┻",
	dirUp | dirDown | dirLeft | dirRight: "╋",
}

type cell struct {
	dirs     int
	selected bool
}

type grid struct {
	cols  []int // distinct X coordinates, ascending
	rows  []int // distinct Y coordinates, ascending
	cells map[int]map[int]route.Node
	at    map[taxonomy.Code][2]int // row, col
}

// layoutGrid places nodes on a grid using their canvas coordinates.
func layoutGrid(nodes []route.Node) grid {
	xs := map[int]struct{}{}
	ys := map[int]struct{}{}
	for _, n := range nodes {
		xs[n.Position.X] = struct{}{}
		ys[n.Position.Y] = struct{}{}
	}
	g := grid{
		cols:  sortedKeys(xs),
		rows:  sortedKeys(ys),
		cells: map[int]map[int]route.Node{},
		at:    map[taxonomy.Code][2]int{},
	}
	for _, n := range nodes {
		r := sort.SearchInts(g.rows, n.Position.Y)
		c := sort.SearchInts(g.cols, n.Position.X)
		if g.cells[r] == nil {
			g.cells[r] = map[int]route.Node{}
		}
		g.cells[r][c] = n
		g.at[n.ID] = [2]int{r, c}
	}
	return g
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// RenderDiagram draws the route graph as node boxes joined by connectors.
// Selected edges are heavy and dark, the rest light.
func RenderDiagram(s Styles, g route.Graph, opts DiagramOptions) string {
	if len(g.Nodes) == 0 {
		return ""
	}
	width := opts.NodeWidth
	if width < MinNodeWidth {
		width = MinNodeWidth
	}

	lay := layoutGrid(g.Nodes)
	total := width*len(lay.cols) + DiagramColumnGap*(len(lay.cols)-1)
	center := func(col int) int { return col*(width+DiagramColumnGap) + width/2 }

	var blocks []string
	for r := range lay.rows {
		blocks = append(blocks, renderRow(s, lay, r, width, opts.Focus))
		if r == len(lay.rows)-1 {
			break
		}
		blocks = append(blocks, renderConnectors(s, g.Edges, lay, r, total, center)...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderRow(s Styles, lay grid, r, width int, focus taxonomy.Code) string {
	blank := strings.TrimRight(strings.Repeat(strings.Repeat(" ", width)+"\n", NodeContentLines+2), "\n")
	gap := strings.Repeat(" ", DiagramColumnGap)

	parts := make([]string, 0, len(lay.cols)*2)
	for c := range lay.cols {
		if c > 0 {
			parts = append(parts, gap)
		}
		n, ok := lay.cells[r][c]
		if !ok {
			parts = append(parts, blank)
			continue
		}
		parts = append(parts, RenderNode(s, n, width, n.ID == focus))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderNode draws one activity box of the given outer width.
func RenderNode(s Styles, n route.Node, width int, focused bool) string {
	var style lipgloss.Style
	switch n.Status {
	case route.StatusPrimary:
		style = s.NodePrimary
	case route.StatusSecondary:
		style = s.NodeSecondary
	default:
		style = s.NodeDefault
	}
	if focused {
		style = style.Border(lipgloss.DoubleBorder()).BorderForeground(Info)
	}

	inner := width - 2
	lines := []string{
		ansi.Truncate(n.StepLabel, inner, "…"),
		ansi.Truncate(n.Activity.Name, inner, "…"),
		ansi.Truncate(string(n.Activity.Phase)+" · "+string(n.ID), inner, "…"),
	}
	return style.Width(inner).Height(NodeContentLines).Render(strings.Join(lines, "\n"))
}

// renderConnectors draws the edges running from row r to row r+1.
func renderConnectors(s Styles, edges []route.Edge, lay grid, r, total int, center func(int) int) []string {
	lines := make([][]cell, ConnectorLines)
	for i := range lines {
		lines[i] = make([]cell, total)
	}
	mark := func(line, x, dirs int, selected bool) {
		if x < 0 || x >= total {
			return
		}
		lines[line][x].dirs |= dirs
		lines[line][x].selected = lines[line][x].selected || selected
	}

	for _, e := range edges {
		src, okS := lay.at[e.Source]
		dst, okT := lay.at[e.Target]
		if !okS || !okT {
			continue
		}
		if src[0] > dst[0] {
			src, dst = dst, src
		}
		if src[0] != r || dst[0] != r+1 {
			continue
		}
		top, bottom := center(src[1]), center(dst[1])

		mark(0, top, dirUp|dirDown, e.Selected)
		mark(2, bottom, dirUp|dirDown, e.Selected)
		switch {
		case top == bottom:
			mark(1, top, dirUp|dirDown, e.Selected)
		case top < bottom:
			mark(1, top, dirUp|dirRight, e.Selected)
			for x := top + 1; x < bottom; x++ {
				mark(1, x, dirLeft|dirRight, e.Selected)
			}
			mark(1, bottom, dirLeft|dirDown, e.Selected)
		default:
			mark(1, top, dirUp|dirLeft, e.Selected)
			for x := bottom + 1; x < top; x++ {
				mark(1, x, dirLeft|dirRight, e.Selected)
			}
			mark(1, bottom, dirRight|dirDown, e.Selected)
		}
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		for _, c := range line {
			switch {
			case c.dirs == 0:
				b.WriteByte(' ')
			case c.selected:
				b.WriteString(s.EdgeSelected.Render(heavyGlyphs[c.dirs]))
			default:
				b.WriteString(s.EdgeIdle.Render(lightGlyphs[c.dirs]))
			}
		}
		out = append(out, b.String())
	}
	return out
}

// RenderLegend explains node emphasis.
func RenderLegend(s Styles) string {
	swatch := func(c lipgloss.TerminalColor, label string) string {
		return lipgloss.NewStyle().Foreground(c).Render("■") + " " + s.Body.Render(label)
	}
	return strings.Join([]string{
		swatch(LightPrimary, "Primary sequence"),
		swatch(LightAccent, "Also recommended"),
		swatch(s.Theme.Border, "Not selected"),
	}, "   ")
}

// RenderTooltip describes the focused node.
func RenderTooltip(s Styles, n route.Node, width int) string {
	var status string
	switch n.Status {
	case route.StatusPrimary:
		status = s.Success.Render("Primary sequence")
	case route.StatusSecondary:
		status = s.Info.Render("Also recommended")
	default:
		status = s.Muted.Render("Not selected")
	}
	if n.StepLabel != "" {
		status = s.Badge.Render(n.StepLabel) + " " + status
	}

	body := strings.Join([]string{
		s.Kicker.Render(string(n.Activity.Phase)),
		s.Bold.Render(n.Activity.Name),
		status,
		"",
		s.Body.Render(n.Activity.Description),
	}, "\n")

	if width > 4 {
		return s.Tooltip.Width(width - 2).Render(body)
	}
	return s.Tooltip.Render(body)
}
