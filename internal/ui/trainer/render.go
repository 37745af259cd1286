package trainer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.Color("39")
	correctColor = lipgloss.Color("42")
	wrongColor   = lipgloss.Color("203")
	mutedColor   = lipgloss.Color("245")
)

// stylize applies a foreground color unless colors are disabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func stylizeBold(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
}

// View renders the current screen.
func (m Model) View() string {
	switch m.screen {
	case screenQuestion:
		return m.viewQuestion()
	case screenSummary:
		return m.viewSummary()
	default:
		return m.viewThemes()
	}
}

func (m Model) viewThemes() string {
	var b strings.Builder
	b.WriteString(stylizeBold("MMC Trainer", m.noColor, accentColor))
	b.WriteString("\n")
	b.WriteString(stylize("Select a thematic, or take a mixed timed exam.", m.noColor, mutedColor))
	b.WriteString("\n\n")

	for i, theme := range m.themes {
		b.WriteString(m.themeRow(i, theme))
		b.WriteString("\n")
	}
	b.WriteString(m.examRow())
	b.WriteString("\n")

	if m.startErr != "" {
		b.WriteString("\n")
		b.WriteString(stylize(m.startErr, m.noColor, wrongColor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(stylize("up/down select | enter start | q quit", m.noColor, mutedColor))
	return b.String()
}

func (m Model) themeRow(i int, theme string) string {
	themed := m.questions.ByTheme(theme)
	attempts, correct := 0, 0
	if m.progress != nil {
		for _, q := range themed {
			if record, ok := m.progress.Get(q.ID); ok {
				attempts += record.Attempts
				correct += record.Correct
			}
		}
	}
	label := fmt.Sprintf("%s (%d questions", theme, len(themed))
	if attempts > 0 {
		label += fmt.Sprintf(", %d/%d correct", correct, attempts)
	}
	label += ")"
	return m.row(i, label)
}

func (m Model) examRow() string {
	return m.row(len(m.themes), examEntry)
}

func (m Model) row(i int, label string) string {
	cursor := "  "
	if i == m.themeCursor {
		cursor = "> "
		return cursor + stylizeBold(label, m.noColor, accentColor)
	}
	return cursor + label
}

func (m Model) viewQuestion() string {
	q, ok := m.engine.Current()
	if !ok {
		return ""
	}
	current, total := m.engine.Position()
	score, answered := m.engine.Score()

	var b strings.Builder
	header := fmt.Sprintf("Q%d/%d | %s | Score: %d/%d", current, total, q.Category, score, answered)
	if m.engine.Exam() {
		header += " | " + formatRemaining(m.engine.Remaining())
	} else {
		header = fmt.Sprintf("%s | %s", q.Thematic, header)
	}
	b.WriteString(stylizeBold(header, m.noColor, accentColor))
	b.WriteString("\n\n")
	b.WriteString(q.Prompt)
	b.WriteString("\n\n")

	for i, choice := range q.ChoiceTexts() {
		b.WriteString(m.choiceRow(i, choice, q.CorrectIndex()))
		b.WriteString("\n")
	}

	if m.feedback != nil && !m.feedback.Deferred {
		b.WriteString("\n")
		if m.feedback.Correct {
			b.WriteString(stylizeBold("Correct", m.noColor, correctColor))
		} else {
			b.WriteString(stylizeBold("Incorrect", m.noColor, wrongColor))
			b.WriteString(stylize(" | Correct answer: "+m.feedback.CorrectText, m.noColor, mutedColor))
		}
		if m.feedback.Explication != "" {
			b.WriteString("\n")
			b.WriteString(stylize(m.feedback.Explication, m.noColor, mutedColor))
		}
		b.WriteString("\n")
	}
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(stylize(m.warning, m.noColor, wrongColor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.engine.Answered() {
		b.WriteString(stylize("enter next question | q quit", m.noColor, mutedColor))
	} else {
		b.WriteString(stylize("up/down or 1-9 select | enter submit | q quit", m.noColor, mutedColor))
	}
	return b.String()
}

func (m Model) choiceRow(i int, choice string, correctIndex int) string {
	cursor := "  "
	if i == m.choiceCursor {
		cursor = "> "
	}
	line := fmt.Sprintf("%s%d. %s", cursor, i+1, choice)
	if m.feedback != nil && !m.feedback.Deferred {
		switch {
		case i == correctIndex:
			return stylize(line, m.noColor, correctColor)
		case i == m.choiceCursor:
			return stylize(line, m.noColor, wrongColor)
		}
	}
	if i == m.choiceCursor {
		return stylizeBold(line, m.noColor, accentColor)
	}
	return line
}

func (m Model) viewSummary() string {
	summary, ok := m.engine.Summary()
	if !ok {
		return ""
	}
	var b strings.Builder
	title := "Thematic complete"
	if summary.Exam {
		title = "Exam complete"
	}
	if summary.Expired {
		title = "Time is up"
	}
	b.WriteString(stylizeBold(title, m.noColor, accentColor))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score: %d/%d\n", summary.Score, summary.Total))

	if summary.Exam {
		b.WriteString("\n")
		for i, result := range summary.Results {
			line := fmt.Sprintf("%d. question %d: ", i+1, result.QuestionID)
			if result.Correct {
				line += "correct"
				b.WriteString(stylize(line, m.noColor, correctColor))
			} else {
				line += "incorrect, answer: " + result.CorrectText
				b.WriteString(stylize(line, m.noColor, wrongColor))
			}
			b.WriteString("\n")
			if !result.Correct && result.Explication != "" {
				b.WriteString(stylize("   "+result.Explication, m.noColor, mutedColor))
				b.WriteString("\n")
			}
		}
		if summary.Expired && len(summary.Results) < summary.Total {
			unanswered := summary.Total - len(summary.Results)
			b.WriteString(stylize(fmt.Sprintf("%d questions unanswered\n", unanswered), m.noColor, mutedColor))
		}
	}

	b.WriteString("\n")
	b.WriteString(stylize("r reshuffle | t thematics | q quit", m.noColor, mutedColor))
	return b.String()
}

func formatRemaining(remaining time.Duration) string {
	remaining = remaining.Round(time.Second)
	minutes := int(remaining.Minutes())
	seconds := int(remaining.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d left", minutes, seconds)
}
