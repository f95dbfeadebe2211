// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for page and diagram sizing
const (
	// Page padding and margins
	PageHorizontalPadding = 4
	PageVerticalPadding   = 2
	HeaderHeight          = 1
	FooterHeight          = 2

	// Survey
	SliderMinWidth     = 20
	SliderMaxWidth     = 48
	QuestionIndent     = 2
	ProgressBarPadding = 2

	// Diagram
	DiagramColumns   = 3
	DiagramColumnGap = 4
	DefaultNodeWidth = 26
	MinNodeWidth     = 16
	NodeContentLines = 3
	ConnectorLines   = 3

	// Responsive breakpoints
	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 20
	CompactModeWidth      = 90
	MinContentWidth       = 40
	MaxContentWidth       = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width, clamped to a readable range.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - PageHorizontalPadding
	if w < MinContentWidth {
		return MinContentWidth
	}
	if w > MaxContentWidth {
		return MaxContentWidth
	}
	return w
}

// ContentHeight returns the height left for page content.
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - HeaderHeight - FooterHeight - PageVerticalPadding
	if h < 1 {
		return 1
	}
	return h
}

// SliderWidth returns the slider track width for the content width.
func (l LayoutConfig) SliderWidth() int {
	w := l.ContentWidth() - QuestionIndent*2 - 20
	if w < SliderMinWidth {
		return SliderMinWidth
	}
	if w > SliderMaxWidth {
		return SliderMaxWidth
	}
	return w
}

// NodeWidth shrinks the preferred node width until three columns fit.
func (l LayoutConfig) NodeWidth(preferred int) int {
	if preferred <= 0 {
		preferred = DefaultNodeWidth
	}
	fit := (l.ContentWidth() - DiagramColumnGap*(DiagramColumns-1)) / DiagramColumns
	if fit < preferred {
		preferred = fit
	}
	if preferred < MinNodeWidth {
		return MinNodeWidth
	}
	return preferred
}

// DiagramWidth returns the total canvas width for a node width.
func DiagramWidth(nodeWidth int) int {
	return nodeWidth*DiagramColumns + DiagramColumnGap*(DiagramColumns-1)
}
