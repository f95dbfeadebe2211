package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dccd/cmd/dccd/ui"
	"dccd/internal/api"
	"dccd/internal/route"
	"dccd/internal/session"
	"dccd/internal/taxonomy"
)

const nextStepNote = "Next step: Meet with a Career Design intern to review these recommendations and pick your first activity."

func waitForStage(tok *route.Token) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-tok.Events()
		if !ok {
			return nil
		}
		return stageMsg(ev)
	}
}

// enterStoredResults shows the results kept in the session, or returns
// to the welcome page when there are none.
func (m Model) enterStoredResults() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m.redirectWelcome(session.ErrNoResults), nil
	}
	resp, err := session.Results(m.store)
	if err != nil {
		m.log.Infow("no usable stored results", "error", err)
		return m.redirectWelcome(err), nil
	}
	return m.enterResults(resp)
}

// enterResults composes the route and starts the highlight animation.
func (m Model) enterResults(resp *api.RecommendationResponse) (tea.Model, tea.Cmd) {
	if resp == nil {
		return m.redirectWelcome(session.ErrNoResults), nil
	}
	m.page = PageResults
	m.notice = ""
	m.results = resp
	m.composition = route.Compose(resp.Recommendations)
	m.focus = -1
	if len(m.composition.Sequence) > 0 {
		m.focus = focusIndex(m.composition.Sequence[0])
	}
	m.viewport.GotoTop()
	cmd := m.startHighlight()
	m.refreshResults()
	return m, cmd
}

// startHighlight restarts the animation from stage 0. The previous run is
// cancelled by the scheduler before the new one is armed.
func (m *Model) startHighlight() tea.Cmd {
	m.stage = 0
	m.token = m.scheduler.Start(m.composition.Sequence)
	return waitForStage(m.token)
}

func (m *Model) stopHighlight() {
	if m.token != nil {
		m.token.Cancel()
		m.token = nil
	}
}

func (m Model) handleStage(msg stageMsg) (tea.Model, tea.Cmd) {
	ev := route.StageEvent(msg)
	if m.token == nil || ev.Generation != m.token.Generation() {
		return m, nil
	}
	if ev.Stage > m.stage {
		m.stage = ev.Stage
	}
	m.refreshResults()
	if ev.Final {
		return m, nil
	}
	return m, waitForStage(m.token)
}

// Graph is the diagram for the current highlight stage.
func (m Model) Graph() route.Graph {
	return route.BuildGraph(m.composition, m.stage)
}

func focusIndex(code taxonomy.Code) int {
	for i, a := range taxonomy.All() {
		if a.Code == code {
			return i
		}
	}
	return -1
}

func (m Model) focusedCode() taxonomy.Code {
	all := taxonomy.All()
	if m.focus < 0 || m.focus >= len(all) {
		return ""
	}
	return all[m.focus].Code
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.NextNode):
		m.focus = (m.focus + 1) % taxonomy.Size
	case key.Matches(km, m.keys.PrevNode):
		if m.focus <= 0 {
			m.focus = taxonomy.Size - 1
		} else {
			m.focus--
		}
	case key.Matches(km, m.keys.Replay):
		cmd := m.startHighlight()
		m.refreshResults()
		return m, cmd
	case key.Matches(km, m.keys.Retake):
		return m.retake()
	case key.Matches(km, m.keys.Welcome):
		m.stopHighlight()
		m.page = PageWelcome
		return m, nil
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refreshResults()
	return m, nil
}

// retake clears the session and starts the survey over.
func (m Model) retake() (tea.Model, tea.Cmd) {
	m.stopHighlight()
	m.saver.Cancel()
	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			m.log.Warnw("failed to clear session", "error", err)
		}
	}
	m.results = nil
	m.composition = route.Composition{}
	return m.enterSurvey()
}

func (m *Model) refreshResults() {
	if m.page != PageResults || m.results == nil {
		return
	}
	s := m.styles
	width := m.layout.ContentWidth()

	parts := []string{
		s.Kicker.Render("Your Career Design Roadmap"),
		s.Title.Render("Your Recommended Activities"),
		m.markdown(m.results.ScoringNote),
	}
	if note := m.results.PrerequisiteNote; note != nil && *note != "" {
		parts = append(parts, s.Alert.Render(*note))
	}
	if n := len(m.composition.Unmatched); n > 0 {
		parts = append(parts, s.Muted.Render(fmt.Sprintf("%d recommendation(s) could not be placed on the roadmap.", n)))
	}

	g := m.Graph()
	nodeWidth := m.layout.NodeWidth(m.nodeWidth)
	parts = append(parts,
		"",
		ui.RenderLegend(s),
		"",
		ui.RenderDiagram(s, g, ui.DiagramOptions{NodeWidth: nodeWidth, Focus: m.focusedCode()}),
	)
	if n, ok := g.Node(m.focusedCode()); ok {
		parts = append(parts, "", ui.RenderTooltip(s, n, ui.DiagramWidth(nodeWidth)))
	}
	parts = append(parts,
		"",
		s.Info.Width(width).Render(nextStepNote),
		"",
		s.Button.Render("r  Retake Survey")+"  "+s.ButtonDisabled.Render("b  Back to Welcome"),
	)

	footer := m.footer(false)
	m.fitViewport("", footer)
	m.viewport.SetContent(strings.Join(parts, "\n"))
}

func (m Model) viewResults() string {
	if m.results == nil {
		return m.styles.Content.Render("Loading results...")
	}
	return m.viewport.View() + "\n" + m.footer(false)
}
