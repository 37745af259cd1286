package editor

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"mmc/internal/question"
)

// screen identifies what the editor is currently showing.
type screen int

const (
	screenList screen = iota
	screenForm
)

// Model drives the question editor TUI over a question store.
type Model struct {
	store   *question.Store
	screen  screen
	cursor  int
	form    form
	status  string
	noColor bool
}

// Options configures the editor model.
type Options struct {
	Store   *question.Store
	NoColor bool
}

// NewModel constructs an editor model showing the question list.
func NewModel(opts Options) Model {
	return Model{store: opts.Store, noColor: opts.NoColor}
}

// Init is a no-op; the editor is purely key-driven.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update consumes key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.screen == screenList {
		return m.updateList(key)
	}
	return m.updateForm(key)
}

func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
	case "n":
		m.form = newForm()
		m.screen = screenForm
		m.status = ""
	case "enter":
		if q, ok := m.selected(); ok {
			m.form = formFor(q)
			m.screen = screenForm
			m.status = ""
		}
	case "d":
		if q, ok := m.selected(); ok {
			m = m.deleteQuestion(q.ID)
		}
	}
	return m, nil
}

func (m Model) selected() (question.Question, bool) {
	all := m.store.All()
	if m.cursor < 0 || m.cursor >= len(all) {
		return question.Question{}, false
	}
	return all[m.cursor], true
}

func (m Model) deleteQuestion(id int) Model {
	if err := m.store.Delete(id); err != nil {
		m.status = err.Error()
		return m
	}
	if err := m.store.Save(); err != nil {
		m.status = fmt.Sprintf("bank not saved: %v", err)
		return m
	}
	if m.cursor >= m.store.Len() && m.cursor > 0 {
		m.cursor--
	}
	m.status = fmt.Sprintf("deleted question %d", id)
	return m
}

func (m Model) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenList
		return m, nil
	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	case "ctrl+s":
		return m.save(), nil
	}

	switch m.form.focus {
	case focusCategory:
		if key.String() == "left" || key.String() == "right" || key.String() == " " {
			m.form.toggleCategory()
		}
		return m, nil
	case m.form.answerSlot():
		switch key.String() {
		case "left":
			m.form.cycleAnswer(-1)
		case "right", " ":
			m.form.cycleAnswer(1)
		}
		return m, nil
	}

	if m.form.category == question.CategoryQCM {
		switch key.String() {
		case "ctrl+a":
			m.form.addChoice()
			return m, nil
		case "ctrl+d":
			m.form.removeChoice()
			return m, nil
		}
	}

	if input := m.form.focusedInput(); input != nil {
		updated, cmd := input.Update(key)
		*input = updated
		return m, cmd
	}
	return m, nil
}

// save validates the form and writes through the question store.
func (m Model) save() Model {
	id := m.form.id
	creating := id == 0
	if creating {
		id = m.store.NextID()
	}
	q := m.form.build(id)
	if err := question.ValidateQuestion(q); err != nil {
		var formatErr *question.FormatError
		if errors.As(err, &formatErr) {
			m.form.issues = formatErr.Issues
		} else {
			m.status = err.Error()
		}
		return m
	}
	m.form.issues = nil

	var err error
	if creating {
		err = m.store.Insert(q)
	} else {
		err = m.store.Update(q)
	}
	if err != nil {
		m.status = err.Error()
		return m
	}
	if err := m.store.Save(); err != nil {
		m.status = fmt.Sprintf("bank not saved: %v", err)
		return m
	}
	m.screen = screenList
	m.status = fmt.Sprintf("saved question %d", id)
	return m
}
