package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding; pages pick the ones they show.
type keyMap struct {
	Quit        key.Binding
	ToggleTheme key.Binding

	// Welcome
	Start       key.Binding
	LastResults key.Binding

	// Survey
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	SetLevel key.Binding
	Clear    key.Binding
	Submit   key.Binding
	Retry    key.Binding
	Back     key.Binding

	// Results
	NextNode key.Binding
	PrevNode key.Binding
	Replay   key.Binding
	Retake   key.Binding
	Welcome  key.Binding
	Scroll   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "light/dark"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter", "start survey"),
		),
		LastResults: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "last results"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "less"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "more"),
		),
		SetLevel: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "pick answer"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "clear"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextNode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next activity"),
		),
		PrevNode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous activity"),
		),
		Replay: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "replay route"),
		),
		Retake: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retake survey"),
		),
		Welcome: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b", "back to welcome"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
	}
}

// pageHelp adapts a binding list to help.KeyMap.
type pageHelp []key.Binding

func (h pageHelp) ShortHelp() []key.Binding  { return h }
func (h pageHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) helpFor(p Page, canRetry bool) pageHelp {
	switch p {
	case PageSurvey:
		h := pageHelp{k.Up, k.Down, k.Left, k.Right, k.SetLevel, k.Clear, k.Submit}
		if canRetry {
			h = append(h, k.Retry)
		}
		return append(h, k.Back, k.Quit)
	case PageResults:
		return pageHelp{k.NextNode, k.Replay, k.Retake, k.Welcome, k.Scroll, k.ToggleTheme, k.Quit}
	default:
		return pageHelp{k.Start, k.LastResults, k.ToggleTheme, k.Quit}
	}
}
