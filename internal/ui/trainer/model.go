package trainer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mmc/internal/progress"
	"mmc/internal/question"
	"mmc/internal/session"
)

// screen identifies what the trainer is currently showing.
type screen int

const (
	screenThemes screen = iota
	screenQuestion
	screenSummary
)

// examEntry is the synthetic row appended below the theme list.
const examEntry = "Exam mode"

// Model drives the trainer TUI over a session engine.
type Model struct {
	engine    *session.Engine
	questions *question.Store
	progress  *progress.Store

	screen       screen
	themes       []string
	themeCursor  int
	choiceCursor int
	feedback     *session.Feedback
	startErr     string
	warning      string
	now          time.Time
	width        int
	noColor      bool
}

// Options configures the trainer model.
type Options struct {
	Engine    *session.Engine
	Questions *question.Store
	Progress  *progress.Store
	NoColor   bool

	// StartTheme jumps straight into a theme; StartExam into the exam.
	StartTheme string
	StartExam  bool
}

// NewModel constructs a trainer model and optionally starts a session.
func NewModel(opts Options) Model {
	m := Model{
		engine:    opts.Engine,
		questions: opts.Questions,
		progress:  opts.Progress,
		themes:    opts.Questions.Themes(),
		now:       time.Now(),
		noColor:   opts.NoColor,
	}
	switch {
	case opts.StartExam:
		m = m.startExam()
	case opts.StartTheme != "":
		m = m.startTheme(opts.StartTheme)
	}
	return m
}

// tickMsg carries a clock tick for the exam countdown.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the countdown ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update consumes key presses and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case tickMsg:
		m.now = time.Time(typed)
		if m.engine.ExpireIfDue() {
			m.screen = screenSummary
			m.feedback = nil
		}
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" || key.String() == "q" {
		return m, tea.Quit
	}
	switch m.screen {
	case screenThemes:
		return m.handleThemesKey(key), nil
	case screenQuestion:
		return m.handleQuestionKey(key), nil
	case screenSummary:
		return m.handleSummaryKey(key), nil
	}
	return m, nil
}

func (m Model) handleThemesKey(key tea.KeyMsg) Model {
	rows := len(m.themes) + 1
	switch key.String() {
	case "up", "k":
		if m.themeCursor > 0 {
			m.themeCursor--
		}
	case "down", "j":
		if m.themeCursor < rows-1 {
			m.themeCursor++
		}
	case "enter":
		if m.themeCursor == len(m.themes) {
			return m.startExam()
		}
		return m.startTheme(m.themes[m.themeCursor])
	}
	return m
}

func (m Model) startTheme(theme string) Model {
	if err := m.engine.Start(theme); err != nil {
		m.startErr = err.Error()
		m.screen = screenThemes
		return m
	}
	return m.enterQuestion()
}

func (m Model) startExam() Model {
	if err := m.engine.StartExam(); err != nil {
		m.startErr = err.Error()
		m.screen = screenThemes
		return m
	}
	return m.enterQuestion()
}

func (m Model) enterQuestion() Model {
	m.screen = screenQuestion
	m.choiceCursor = 0
	m.feedback = nil
	m.startErr = ""
	m.warning = ""
	return m
}

func (m Model) handleQuestionKey(key tea.KeyMsg) Model {
	q, ok := m.engine.Current()
	if !ok {
		return m
	}
	choices := q.ChoiceTexts()
	switch key.String() {
	case "up", "k":
		if !m.engine.Answered() && m.choiceCursor > 0 {
			m.choiceCursor--
		}
	case "down", "j":
		if !m.engine.Answered() && m.choiceCursor < len(choices)-1 {
			m.choiceCursor++
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key.String()[0] - '1')
		if !m.engine.Answered() && idx < len(choices) {
			m.choiceCursor = idx
		}
	case "enter":
		if m.engine.Answered() {
			return m.advance()
		}
		return m.submit()
	case "t":
		if !m.engine.Exam() {
			m.screen = screenThemes
		}
	}
	return m
}

func (m Model) submit() Model {
	feedback, err := m.engine.Answer(m.choiceCursor)
	if err != nil {
		return m
	}
	m.feedback = &feedback
	if warn := m.engine.PersistWarning(); warn != nil {
		m.warning = "progress not saved: " + warn.Error()
	}
	if m.engine.Exam() {
		// No per-question feedback in exam mode; move straight on.
		return m.advance()
	}
	return m
}

func (m Model) advance() Model {
	if err := m.engine.Next(); err != nil {
		return m
	}
	if m.engine.State() == session.Completed {
		m.screen = screenSummary
		m.feedback = nil
		return m
	}
	m.choiceCursor = 0
	m.feedback = nil
	return m
}

func (m Model) handleSummaryKey(key tea.KeyMsg) Model {
	switch key.String() {
	case "r":
		if err := m.engine.Reshuffle(); err == nil {
			return m.enterQuestion()
		}
	case "t":
		m.screen = screenThemes
	}
	return m
}
