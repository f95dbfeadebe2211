package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dccd/internal/session"
)

const welcomeIntro = `A Signature Visitor Experience at Dartmouth's Center for Career Design.

This short diagnostic helps identify activities that can best support your next step. You will answer %s using a four-point agreement scale.

Your recommendations are calculated from your responses and sequenced so **foundation** activities happen before **advanced exploration**.`

// Notices shown on the welcome page after a redirect.
const (
	noticeNoResults   = "No saved results yet. Take the survey to build your roadmap."
	noticeCorrupt     = "Your saved results could not be read. Please retake the survey."
	noticeUnavailable = "Your saved results could not be loaded."
)

func (m Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Start):
		return m.enterSurvey()
	case key.Matches(km, m.keys.LastResults):
		return m.enterStoredResults()
	}
	return m, nil
}

func (m Model) viewWelcome() string {
	s := m.styles

	count := "a short set of questions"
	if n := len(m.questions); n > 0 {
		count = fmt.Sprintf("%d questions", n)
	}

	parts := []string{
		s.Kicker.Render("LXD: Learn. Experience. Design."),
		s.Title.Render("Welcome to the Dartmouth Center for Career Design"),
		m.markdown(fmt.Sprintf(welcomeIntro, count)),
		"",
	}
	if m.notice != "" {
		parts = append(parts, s.Warning.Render(m.notice), "")
	}
	parts = append(parts, s.Button.Render("Start Survey"))

	body := s.Content.Render(strings.Join(parts, "\n"))
	return body + "\n" + m.footer(false)
}

// redirectWelcome returns to the welcome page with a notice explaining why.
func (m Model) redirectWelcome(err error) Model {
	m.stopHighlight()
	m.page = PageWelcome
	m.results = nil
	switch {
	case errors.Is(err, session.ErrCorrupt):
		m.notice = noticeCorrupt
	case errors.Is(err, session.ErrNoResults):
		m.notice = noticeNoResults
	case err != nil:
		m.notice = noticeUnavailable
	default:
		m.notice = ""
	}
	return m
}
