package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mmc/internal/question"
)

var (
	accentColor = lipgloss.Color("39")
	errorColor  = lipgloss.Color("203")
	mutedColor  = lipgloss.Color("245")
)

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

// View renders the list or form screen.
func (m Model) View() string {
	if m.screen == screenForm {
		return m.viewForm()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(stylizeBold("MMC Question Editor", m.noColor, accentColor))
	b.WriteString("\n")
	b.WriteString(stylize(fmt.Sprintf("%d questions | next id %d", m.store.Len(), m.store.NextID()), m.noColor, mutedColor))
	b.WriteString("\n\n")

	all := m.store.All()
	if len(all) == 0 {
		b.WriteString(stylize("Bank is empty. Press n to add the first question.", m.noColor, mutedColor))
		b.WriteString("\n")
	}
	for i, q := range all {
		cursor := "  "
		line := fmt.Sprintf("%d [%s] %s: %s", q.ID, q.Category, q.Thematic, truncate(q.Prompt, 60))
		if i == m.cursor {
			cursor = "> "
			line = stylizeBold(line, m.noColor, accentColor)
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(stylize(m.status, m.noColor, mutedColor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(stylize("n new | enter edit | d delete | q quit", m.noColor, mutedColor))
	return b.String()
}

func (m Model) viewForm() string {
	f := m.form
	var b strings.Builder
	title := "New question"
	if f.id != 0 {
		title = fmt.Sprintf("Edit question %d", f.id)
	}
	b.WriteString(stylizeBold(title, m.noColor, accentColor))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Category", focusCategory))
	b.WriteString(string(f.category))
	if f.focus == focusCategory {
		b.WriteString(stylize("  (left/right to toggle)", m.noColor, mutedColor))
	}
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Thematic", focusThematic))
	b.WriteString(f.thematic.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Question", focusPrompt))
	b.WriteString(f.prompt.View())
	b.WriteString("\n")

	if f.category == question.CategoryQCM {
		for i := range f.choices {
			b.WriteString(m.fieldLabel(fmt.Sprintf("Choice %d", i+1), focusChoices+i))
			b.WriteString(f.choices[i].View())
			b.WriteString("\n")
		}
	}

	b.WriteString(m.fieldLabel("Answer", f.answerSlot()))
	b.WriteString(f.answerLabel())
	if f.focus == f.answerSlot() {
		b.WriteString(stylize("  (left/right to change)", m.noColor, mutedColor))
	}
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Explication", f.explicationSlot()))
	b.WriteString(f.explication.View())
	b.WriteString("\n")

	for _, issue := range f.issues {
		b.WriteString(stylize(fmt.Sprintf("%s: %s", issue.Field, issue.Message), m.noColor, errorColor))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(stylize(m.status, m.noColor, errorColor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "tab/arrows move | ctrl+s save | esc back"
	if f.category == question.CategoryQCM {
		help = "tab/arrows move | ctrl+a add choice | ctrl+d drop choice | ctrl+s save | esc back"
	}
	b.WriteString(stylize(help, m.noColor, mutedColor))
	return b.String()
}

func (m Model) fieldLabel(label string, slot int) string {
	text := fmt.Sprintf("%-12s", label)
	if m.form.focus == slot {
		return stylizeBold("> "+text, m.noColor, accentColor)
	}
	return "  " + text
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
