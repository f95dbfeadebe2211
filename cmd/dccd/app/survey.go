package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dccd/cmd/dccd/ui"
	"dccd/internal/api"
	"dccd/internal/survey"
)

func recommend(ctx context.Context, b Backend, responses []api.ResponseOption) tea.Cmd {
	return func() tea.Msg {
		resp, raw, err := b.Recommend(ctx, responses)
		return recommendationMsg{resp: resp, raw: raw, err: err}
	}
}

// enterSurvey shows the survey with answers restored from the session.
func (m Model) enterSurvey() (tea.Model, tea.Cmd) {
	m.stopHighlight()
	m.page = PageSurvey
	m.notice = ""
	m.submitErr = nil

	answers := survey.Answers{}
	if m.store != nil {
		stored, err := m.store.LoadAnswers()
		if err != nil {
			m.log.Warnw("failed to restore answers", "error", err)
		} else {
			answers = stored
		}
	}
	m.answers = answers
	m.resetSliders()
	m.cursor = m.firstUnanswered()
	m.viewport.GotoTop()

	var cmd tea.Cmd
	if len(m.questions) == 0 && !m.loading {
		m.loading = true
		m.loadErr = nil
		cmd = loadQuestions(m.ctx, m.backend)
	}
	m.refreshSurvey()
	return m, cmd
}

func (m *Model) applyQuestions(questions []api.Question, err error) {
	m.loading = false
	if err != nil {
		m.loadErr = err
		m.log.Warnw("failed to load questions", "error", err)
		m.refresh()
		return
	}
	m.loadErr = nil
	m.questions = questions
	m.resetSliders()
	if m.cursor >= len(questions) {
		m.cursor = 0
	}
	m.refresh()
}

// resetSliders places each slider on its stored level, or on the
// untouched position.
func (m *Model) resetSliders() {
	m.sliders = make(map[int]float64, len(m.questions))
	for _, q := range m.questions {
		m.sliders[q.ID] = m.answers.Get(q.ID).SliderValue()
	}
}

func (m Model) sliderValue(id int) float64 {
	if v, ok := m.sliders[id]; ok {
		return v
	}
	return survey.SliderUntouched
}

func (m Model) firstUnanswered() int {
	for i, q := range m.questions {
		if !m.answers.Get(q.ID).Valid() {
			return i
		}
	}
	return 0
}

// setSlider moves the current question's slider and records the
// quantized answer.
func (m *Model) setSlider(v float64) {
	if m.cursor < 0 || m.cursor >= len(m.questions) {
		return
	}
	id := m.questions[m.cursor].ID
	m.sliders[id] = v
	m.answers = m.answers.With(id, survey.Quantize(v))
	m.submitErr = nil
	m.persistAnswers()
}

// persistAnswers writes the answer map through to the session, debounced
// while the slider is being dragged.
func (m *Model) persistAnswers() {
	if m.store == nil {
		return
	}
	snapshot, store, log := m.answers, m.store, m.log
	save := func() {
		if err := store.SaveAnswers(snapshot); err != nil {
			log.Warnw("failed to save answers", "error", err)
		}
	}
	if m.saveDelay <= 0 {
		m.saver.Cancel()
		save()
		return
	}
	m.saver.Debounce(save)
}

func (m Model) updateSurvey(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if key.Matches(km, m.keys.Back) {
		m.saver.Flush()
		m.page = PageWelcome
		return m, nil
	}
	if m.loading || m.submitting {
		return m, nil
	}
	if m.loadErr != nil {
		if key.Matches(km, m.keys.Retry) {
			m.loading = true
			m.loadErr = nil
			m.refreshSurvey()
			return m, loadQuestions(m.ctx, m.backend)
		}
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.questions)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Left):
		m.setSlider(survey.Nudge(m.currentSlider(), -m.sliderStep))
	case key.Matches(km, m.keys.Right):
		m.setSlider(survey.Nudge(m.currentSlider(), m.sliderStep))
	case key.Matches(km, m.keys.SetLevel):
		n, err := strconv.Atoi(km.String())
		if err != nil {
			return m, nil
		}
		m.setSlider(survey.Level(n - 1).SliderValue())
		if m.cursor < len(m.questions)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Clear):
		m.setSlider(survey.SliderUntouched)
	case key.Matches(km, m.keys.Submit):
		return m.submit()
	}

	m.refreshSurvey()
	return m, nil
}

func (m Model) currentSlider() float64 {
	if m.cursor < 0 || m.cursor >= len(m.questions) {
		return survey.SliderUntouched
	}
	return m.sliderValue(m.questions[m.cursor].ID)
}

// submit sends the answers once every question has one. Otherwise the
// cursor jumps to the first gap.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.answers.Complete(m.questions) {
		m.cursor = m.firstUnanswered()
		m.refreshSurvey()
		return m, nil
	}
	responses, err := m.answers.Responses(m.questions)
	if err != nil {
		m.submitErr = err
		m.refreshSurvey()
		return m, nil
	}

	m.saver.Flush()
	m.submitting = true
	m.submitErr = nil
	m.refreshSurvey()
	m.log.Infow("submitting survey", "responses", len(responses))
	return m, recommend(m.ctx, m.backend, responses)
}

func (m Model) handleRecommendation(msg recommendationMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.submitErr = msg.err
		m.log.Warnw("recommendation request failed", "error", msg.err)
		m.refresh()
		return m, nil
	}

	if m.store != nil {
		if err := m.store.SaveResults(msg.raw); err != nil {
			m.log.Warnw("failed to save results", "error", err)
		}
	}
	if m.page != PageSurvey {
		return m, nil
	}
	return m.enterResults(msg.resp)
}

func (m Model) surveyHeader() string {
	s := m.styles
	total := len(m.questions)
	answered := m.answers.AnsweredCount(m.questions)
	pct := m.answers.CompletionPercent(m.questions)

	lines := []string{
		s.Title.Render("Career Diagnostic Survey"),
		s.Bold.Render(fmt.Sprintf("%d/%d complete (%d%%)", answered, total, pct)),
		m.progress.ViewAs(float64(pct) / 100),
	}
	if m.submitErr != nil {
		lines = append(lines, s.Alert.Render(errorText(m.submitErr)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) surveyFooter() string {
	s := m.styles
	var button string
	switch {
	case m.submitting:
		button = m.spinner.View() + " " + s.Body.Render("Calculating...")
	case m.answers.Complete(m.questions):
		button = s.Button.Render("Continue")
	default:
		button = s.ButtonDisabled.Render("Continue")
	}
	return button + "\n" + m.footer(m.loadErr != nil)
}

// refreshSurvey re-renders the question list and keeps the cursor in view.
func (m *Model) refreshSurvey() {
	if m.page != PageSurvey {
		return
	}
	m.fitViewport(m.surveyHeader(), m.surveyFooter())

	s := m.styles
	width := m.layout.SliderWidth()
	var (
		blocks   []string
		cursorAt int
		cursorH  int
	)
	offset := 0
	for i, q := range m.questions {
		v := m.sliderValue(q.ID)
		statement := fmt.Sprintf("%d. %s", q.ID, q.Statement)

		style := s.Question
		if i == m.cursor {
			style = s.QuestionActive
		}
		lines := []string{
			style.Width(m.layout.ContentWidth()).Render(statement),
			strings.Repeat(" ", ui.QuestionIndent) + ui.RenderSlider(s, v, width) + "  " + ui.RenderSliderLabel(s, v),
		}
		if i == m.cursor {
			lines = append(lines, strings.Repeat(" ", ui.QuestionIndent)+s.Muted.Render(scaleLegend(width)))
		}
		block := strings.Join(lines, "\n") + "\n"
		if i == m.cursor {
			cursorAt, cursorH = offset, lipgloss.Height(block)
		}
		offset += lipgloss.Height(block)
		blocks = append(blocks, block)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))

	// Keep the active question visible.
	if cursorAt < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorAt)
	} else if bottom := cursorAt + cursorH; bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// scaleLegend spreads the four answer labels across the slider width.
func scaleLegend(width int) string {
	labels := []string{"1 " + survey.Labels[0], "2 " + survey.Labels[1], "3 " + survey.Labels[2], "4 " + survey.Labels[3]}
	joined := strings.Join(labels, "  ")
	if len(joined) >= width {
		return joined
	}
	gap := (width - len(strings.Join(labels, ""))) / (len(labels) - 1)
	return strings.Join(labels, strings.Repeat(" ", gap))
}

func (m Model) viewSurvey() string {
	s := m.styles
	switch {
	case m.loading:
		return s.Content.Render(m.spinner.View()+" "+s.Body.Render("Loading survey...")) + "\n" + m.footer(false)
	case m.loadErr != nil:
		body := strings.Join([]string{
			s.Title.Render("Career Diagnostic Survey"),
			s.Alert.Render(errorText(m.loadErr)),
			s.Muted.Render("Press r to try again."),
		}, "\n")
		return s.Content.Render(body) + "\n" + m.footer(true)
	}
	return strings.Join([]string{m.surveyHeader(), m.viewport.View(), m.surveyFooter()}, "\n")
}

// errorText is the alert text for a failed request, with a retry hint
// when repeating the action may help.
func errorText(err error) string {
	msg := api.UserMessage(err)
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Retryable() {
		msg += " Please try again."
	}
	return msg
}
