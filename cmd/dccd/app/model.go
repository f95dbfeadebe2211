// Package app is the interactive dccd client: a welcome page, the survey
// and the results roadmap, driven by bubbletea.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dccd/cmd/dccd/ui"
	"dccd/internal/api"
	"dccd/internal/logging"
	"dccd/internal/route"
	"dccd/internal/session"
	"dccd/internal/survey"
)

// Config holds what the model needs from the caller.
type Config struct {
	Backend   Backend
	Store     session.Store
	Scheduler *route.Scheduler

	// SliderStep is how far one arrow press moves a slider.
	SliderStep float64
	// NodeWidth is the preferred diagram box width.
	NodeWidth int
	// SaveDelay debounces session writes from slider input. Zero writes immediately.
	SaveDelay time.Duration
	// Styles overrides theme detection.
	Styles *ui.Styles
}

// Model is the root bubbletea model.
type Model struct {
	backend   Backend
	store     session.Store
	scheduler *route.Scheduler
	log       *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
	once   *sync.Once

	page   Page
	width  int
	height int
	layout ui.LayoutConfig
	styles ui.Styles
	keys   keyMap

	help     help.Model
	spinner  spinner.Model
	progress progress.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	sliderStep float64
	nodeWidth  int
	saveDelay  time.Duration
	saver      *ui.Debouncer

	// welcome
	notice string

	// survey
	questions  []api.Question
	loading    bool
	loadErr    error
	answers    survey.Answers
	sliders    map[int]float64
	cursor     int
	submitting bool
	submitErr  error

	// results
	results     *api.RecommendationResponse
	composition route.Composition
	token       *route.Token
	stage       int
	focus       int
}

// New creates the root model.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	styles := ui.DefaultStyles()
	if cfg.Styles != nil {
		styles = *cfg.Styles
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = route.NewScheduler(route.DefaultInterval, nil)
	}
	step := cfg.SliderStep
	if step <= 0 {
		step = 0.25
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))
	vp := viewport.New(80, 20)
	vp.SetContent("")

	m := Model{
		backend:    cfg.Backend,
		store:      cfg.Store,
		scheduler:  sched,
		log:        logging.Get(logging.CategoryUI),
		ctx:        ctx,
		cancel:     cancel,
		once:       &sync.Once{},
		page:       PageWelcome,
		width:      80,
		height:     24,
		layout:     ui.NewLayoutConfig(80, 24),
		styles:     styles,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		viewport:   vp,
		sliderStep: step,
		nodeWidth:  cfg.NodeWidth,
		saveDelay:  cfg.SaveDelay,
		saver:      ui.NewDebouncer(cfg.SaveDelay),
		answers:    survey.Answers{},
		sliders:    map[int]float64{},
		loading:    true,
		focus:      -1,
	}
	m.resize(80, 24)
	return m
}

// Init starts the spinner and the parallel startup requests.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startup(m.ctx, m.backend))
}

// startup loads questions and pings the backend concurrently. A failed
// health ping never blocks the survey.
func startup(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		var (
			g         errgroup.Group
			questions []api.Question
			healthErr error
		)
		g.Go(func() error {
			q, err := b.Questions(ctx)
			if err != nil {
				return err
			}
			questions = q
			return nil
		})
		g.Go(func() error {
			healthErr = b.Health(ctx)
			return nil
		})
		err := g.Wait()
		return startupMsg{questions: questions, err: err, healthErr: healthErr}
	}
}

func loadQuestions(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		q, err := b.Questions(ctx)
		return questionsMsg{questions: q, err: err}
	}
}

// Update routes messages to the current page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleTheme):
			m.toggleTheme()
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startupMsg:
		if msg.healthErr != nil {
			m.log.Debugw("backend health check failed", "error", msg.healthErr)
		}
		m.applyQuestions(msg.questions, msg.err)
		return m, nil

	case questionsMsg:
		m.applyQuestions(msg.questions, msg.err)
		return m, nil

	case recommendationMsg:
		return m.handleRecommendation(msg)

	case stageMsg:
		return m.handleStage(msg)
	}

	switch m.page {
	case PageSurvey:
		return m.updateSurvey(msg)
	case PageResults:
		return m.updateResults(msg)
	default:
		return m.updateWelcome(msg)
	}
}

// View renders the current page.
func (m Model) View() string {
	var body string
	switch m.page {
	case PageSurvey:
		body = m.viewSurvey()
	case PageResults:
		body = m.viewResults()
	default:
		body = m.viewWelcome()
	}
	return strings.Join([]string{ui.Banner(m.styles, m.width), body}, "\n")
}

// Page returns the page currently shown.
func (m Model) Page() Page { return m.page }

// Shutdown stops timers and flushes pending session writes. Safe to call
// more than once.
func (m Model) Shutdown() {
	m.once.Do(func() {
		m.saver.Flush()
		m.scheduler.Stop()
		m.cancel()
	})
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.layout = ui.NewLayoutConfig(width, height)
	m.help.Width = m.layout.ContentWidth()
	m.progress.Width = m.layout.ContentWidth()

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.layout.ContentWidth()),
	)
	if err != nil {
		m.log.Warnw("markdown renderer unavailable", "error", err)
		r = nil
	}
	m.renderer = r
	m.refresh()
}

func (m *Model) toggleTheme() {
	if m.styles.Theme.IsDark {
		m.styles = ui.NewStyles(ui.LightTheme())
	} else {
		m.styles = ui.NewStyles(ui.DarkTheme())
	}
	m.spinner.Style = m.styles.Spinner
	m.refresh()
}

// refresh rebuilds scrollable content after state changes.
func (m *Model) refresh() {
	switch m.page {
	case PageSurvey:
		m.refreshSurvey()
	case PageResults:
		m.refreshResults()
	}
}

// markdown renders text through glamour, falling back to plain text.
func (m Model) markdown(text string) string {
	if m.renderer == nil || text == "" {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m Model) footer(canRetry bool) string {
	return m.styles.Footer.Render(m.help.View(m.keys.helpFor(m.page, canRetry)))
}

// fitViewport sizes the viewport to the space left between header and footer.
func (m *Model) fitViewport(header, footer string) {
	h := m.height - 1 - lipgloss.Height(header) - lipgloss.Height(footer)
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.layout.ContentWidth()
	m.viewport.Height = h
}
