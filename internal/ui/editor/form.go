package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"mmc/internal/question"
)

// Focusable fields in form order. Choice fields slot in between the
// prompt and the answer selector for QCM questions.
const (
	focusCategory = iota
	focusThematic
	focusPrompt
	focusChoices // expands to one slot per choice input
)

// form holds the editable state for one question.
type form struct {
	id          int // 0 while creating
	category    question.Category
	thematic    textinput.Model
	prompt      textinput.Model
	choices     []textinput.Model
	answerIdx   int // TF: 0 true, 1 false; QCM: index into choices
	explication textinput.Model
	focus       int
	issues      []question.Issue
}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 60
	return input
}

// newForm builds an empty TF form for a new question.
func newForm() form {
	f := form{
		category:    question.CategoryTF,
		thematic:    newInput("thematic", 120),
		prompt:      newInput("question text", 500),
		explication: newInput("explication (optional)", 500),
	}
	f.setFocus(focusCategory)
	return f
}

// formFor builds a form pre-filled from an existing question.
func formFor(q question.Question) form {
	f := newForm()
	f.id = q.ID
	f.category = q.Category
	f.thematic.SetValue(q.Thematic)
	f.prompt.SetValue(q.Prompt)
	f.explication.SetValue(q.Explication)
	if q.Category == question.CategoryQCM {
		for _, choice := range q.Choices {
			input := newInput("choice", 200)
			input.SetValue(choice)
			f.choices = append(f.choices, input)
		}
		if idx := q.CorrectIndex(); idx >= 0 {
			f.answerIdx = idx
		}
	} else if !q.Answer.Bool {
		f.answerIdx = 1
	}
	return f
}

// fieldCount returns the number of focusable slots.
func (f *form) fieldCount() int {
	// category, thematic, prompt, each choice, answer, explication
	return 3 + len(f.choices) + 2
}

func (f *form) answerSlot() int      { return 3 + len(f.choices) }
func (f *form) explicationSlot() int { return 4 + len(f.choices) }

// setFocus focuses one slot and blurs the rest.
func (f *form) setFocus(slot int) {
	if slot < 0 {
		slot = f.fieldCount() - 1
	}
	if slot >= f.fieldCount() {
		slot = 0
	}
	f.focus = slot
	f.thematic.Blur()
	f.prompt.Blur()
	for i := range f.choices {
		f.choices[i].Blur()
	}
	f.explication.Blur()
	switch {
	case slot == focusThematic:
		f.thematic.Focus()
	case slot == focusPrompt:
		f.prompt.Focus()
	case slot >= focusChoices && slot < f.answerSlot():
		f.choices[slot-focusChoices].Focus()
	case slot == f.explicationSlot():
		f.explication.Focus()
	}
}

// focusedInput returns the text input under focus, if any.
func (f *form) focusedInput() *textinput.Model {
	switch {
	case f.focus == focusThematic:
		return &f.thematic
	case f.focus == focusPrompt:
		return &f.prompt
	case f.focus >= focusChoices && f.focus < f.answerSlot():
		return &f.choices[f.focus-focusChoices]
	case f.focus == f.explicationSlot():
		return &f.explication
	}
	return nil
}

// toggleCategory switches between TF and QCM, adjusting choice fields.
func (f *form) toggleCategory() {
	if f.category == question.CategoryTF {
		f.category = question.CategoryQCM
		if len(f.choices) == 0 {
			f.addChoice()
			f.addChoice()
		}
	} else {
		f.category = question.CategoryTF
		f.choices = nil
	}
	f.answerIdx = 0
	f.setFocus(f.focus)
}

// addChoice appends an empty QCM choice field.
func (f *form) addChoice() {
	f.choices = append(f.choices, newInput("choice", 200))
}

// removeChoice drops the last choice field, keeping at least two.
func (f *form) removeChoice() {
	if len(f.choices) <= 2 {
		return
	}
	f.choices = f.choices[:len(f.choices)-1]
	if f.answerIdx >= len(f.choices) {
		f.answerIdx = len(f.choices) - 1
	}
	f.setFocus(focusChoices + len(f.choices) - 1)
}

// cycleAnswer moves the correct-answer selector.
func (f *form) cycleAnswer(delta int) {
	options := 2
	if f.category == question.CategoryQCM {
		options = len(f.choices)
	}
	if options == 0 {
		return
	}
	f.answerIdx = (f.answerIdx + delta + options) % options
}

// build assembles a Question from the form fields.
func (f *form) build(id int) question.Question {
	q := question.Question{
		ID:          id,
		Category:    f.category,
		Thematic:    strings.TrimSpace(f.thematic.Value()),
		Prompt:      strings.TrimSpace(f.prompt.Value()),
		Explication: strings.TrimSpace(f.explication.Value()),
	}
	if f.category == question.CategoryTF {
		q.Answer = question.BoolAnswer(f.answerIdx == 0)
		return q
	}
	for _, input := range f.choices {
		q.Choices = append(q.Choices, strings.TrimSpace(input.Value()))
	}
	if f.answerIdx >= 0 && f.answerIdx < len(q.Choices) {
		q.Answer = question.ChoiceAnswer(q.Choices[f.answerIdx])
	} else {
		q.Answer = question.ChoiceAnswer("")
	}
	return q
}

// answerLabel describes the current answer selection.
func (f *form) answerLabel() string {
	if f.category == question.CategoryTF {
		return question.TFChoices[f.answerIdx]
	}
	if f.answerIdx >= 0 && f.answerIdx < len(f.choices) {
		value := strings.TrimSpace(f.choices[f.answerIdx].Value())
		if value == "" {
			return "(empty choice)"
		}
		return value
	}
	return "(none)"
}
