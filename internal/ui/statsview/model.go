package statsview

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mmc/internal/stats"
)

// tab selects which summary table is visible.
type tab int

const (
	tabThemes tab = iota
	tabQuestions
	tabRuns
)

var tabNames = []string{"Thematics", "Questions", "Sessions"}

// Model is a read-only statistics browser over pre-queried summaries.
type Model struct {
	tables  []table.Model
	active  tab
	noColor bool
}

// Options carries the query results to display.
type Options struct {
	Themes    []stats.ThemeSummary
	Questions []stats.QuestionSummary
	Runs      []stats.RunSummary
	NoColor   bool
}

// NewModel builds the three summary tables.
func NewModel(opts Options) Model {
	m := Model{noColor: opts.NoColor}
	m.tables = []table.Model{
		newTable(
			[]table.Column{
				{Title: "Thematic", Width: 28},
				{Title: "Attempts", Width: 9},
				{Title: "Correct", Width: 8},
				{Title: "Accuracy", Width: 9},
			},
			themeRows(opts.Themes),
		),
		newTable(
			[]table.Column{
				{Title: "ID", Width: 5},
				{Title: "Thematic", Width: 24},
				{Title: "Cat", Width: 4},
				{Title: "Attempts", Width: 9},
				{Title: "Accuracy", Width: 9},
			},
			questionRows(opts.Questions),
		),
		newTable(
			[]table.Column{
				{Title: "Started", Width: 17},
				{Title: "Mode", Width: 9},
				{Title: "Score", Width: 7},
				{Title: "Accuracy", Width: 9},
			},
			runRows(opts.Runs),
		),
	}
	m.tables[m.active].Focus()
	return m
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(minInt(len(rows)+1, 16)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	t.SetStyles(styles)
	return t
}

func themeRows(themes []stats.ThemeSummary) []table.Row {
	rows := make([]table.Row, 0, len(themes))
	for _, theme := range themes {
		rows = append(rows, table.Row{
			theme.Thematic,
			strconv.Itoa(theme.Attempts),
			strconv.Itoa(theme.Correct),
			fmt.Sprintf("%.1f%%", theme.Accuracy()),
		})
	}
	return rows
}

func questionRows(questions []stats.QuestionSummary) []table.Row {
	rows := make([]table.Row, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, table.Row{
			strconv.Itoa(q.QuestionID),
			q.Thematic,
			q.Category,
			strconv.Itoa(q.Attempts),
			fmt.Sprintf("%.1f%%", q.Accuracy()),
		})
	}
	return rows
}

func runRows(runs []stats.RunSummary) []table.Row {
	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		mode := "practice"
		if run.Exam {
			mode = "exam"
		}
		rows = append(rows, table.Row{
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			mode,
			fmt.Sprintf("%d/%d", run.Correct, run.Attempts),
			fmt.Sprintf("%.1f%%", run.Accuracy()),
		})
	}
	return rows
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Init is a no-op; all data is pre-queried.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles tab switching and table navigation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		return m.switchTab(1), nil
	case "shift+tab", "left", "h":
		return m.switchTab(-1), nil
	}
	updated, cmd := m.tables[m.active].Update(msg)
	m.tables[m.active] = updated
	return m, cmd
}

func (m Model) switchTab(delta int) Model {
	m.tables[m.active].Blur()
	m.active = tab((int(m.active) + delta + len(m.tables)) % len(m.tables))
	m.tables[m.active].Focus()
	return m
}

// View renders the tab bar and the active table.
func (m Model) View() string {
	header := ""
	for i, name := range tabNames {
		label := " " + name + " "
		if tab(i) == m.active {
			if m.noColor {
				label = "[" + name + "]"
			} else {
				label = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Render(label)
			}
		}
		header += label
	}
	hint := "tab switch | up/down scroll | q quit"
	if !m.noColor {
		hint = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(hint)
	}
	return header + "\n\n" + m.tables[m.active].View() + "\n\n" + hint + "\n"
}
