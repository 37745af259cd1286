package question

import (
	"fmt"
	"strings"
)

// Issue captures one validation problem in a question bank.
type Issue struct {
	Field   string
	Message string
}

// FormatError reports one or more problems that make a bank unusable.
type FormatError struct {
	Issues []Issue
}

// Error returns a readable message for bank validation failures.
func (err *FormatError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &FormatError{Issues: collector.issues}
}

// NormalizeBank trims whitespace and validates every bank entry.
func NormalizeBank(bank Bank) (Bank, error) {
	collector := &issueCollector{}
	seenIDs := map[int]struct{}{}
	for i := range bank.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		q := normalizeQuestion(bank.Questions[i])
		validateQuestion(collector, prefix, q)
		if q.ID > 0 {
			if _, exists := seenIDs[q.ID]; exists {
				collector.add(prefix+".id", fmt.Sprintf("duplicate id %d", q.ID))
			} else {
				seenIDs[q.ID] = struct{}{}
			}
		}
		bank.Questions[i] = q
	}
	if err := collector.result(); err != nil {
		return Bank{}, err
	}
	return bank, nil
}

// ValidateQuestion checks a single entry, for editor-side validation.
func ValidateQuestion(q Question) error {
	collector := &issueCollector{}
	validateQuestion(collector, "question", normalizeQuestion(q))
	return collector.result()
}

func normalizeQuestion(q Question) Question {
	q.Thematic = strings.TrimSpace(q.Thematic)
	q.Prompt = strings.TrimSpace(q.Prompt)
	q.Explication = strings.TrimSpace(q.Explication)
	if q.Choices != nil {
		q.Choices = normalizeStringSlice(q.Choices)
	}
	if !q.Answer.IsBool() {
		q.Answer = ChoiceAnswer(strings.TrimSpace(q.Answer.Choice))
	}
	return q
}

func validateQuestion(collector *issueCollector, prefix string, q Question) {
	if q.ID <= 0 {
		collector.add(prefix+".id", "must be a positive integer")
	}
	if q.Thematic == "" {
		collector.add(prefix+".thematic", "is required")
	}
	if q.Prompt == "" {
		collector.add(prefix+".question", "is required")
	}

	switch q.Category {
	case CategoryTF:
		if len(q.Choices) > 0 {
			collector.add(prefix+".choices", "must be empty for TF questions")
		}
		if !q.Answer.IsBool() {
			collector.add(prefix+".answer", "must be a boolean for TF questions")
		}
	case CategoryQCM:
		validateQCM(collector, prefix, q)
	case "":
		collector.add(prefix+".category", "is required")
	default:
		collector.add(prefix+".category", fmt.Sprintf("unknown category %q (expected TF or QCM)", string(q.Category)))
	}
}

func validateQCM(collector *issueCollector, prefix string, q Question) {
	if len(q.Choices) < 2 {
		collector.add(prefix+".choices", "must include at least two entries")
		return
	}
	choiceSet := map[string]struct{}{}
	for i, choice := range q.Choices {
		if choice == "" {
			collector.add(fmt.Sprintf("%s.choices[%d]", prefix, i), "is required")
			continue
		}
		normalized := NormalizeAnswerText(choice)
		if _, exists := choiceSet[normalized]; exists {
			collector.add(fmt.Sprintf("%s.choices[%d]", prefix, i), fmt.Sprintf("duplicate choice %q", choice))
			continue
		}
		choiceSet[normalized] = struct{}{}
	}

	if q.Answer.IsBool() {
		collector.add(prefix+".answer", "must be a choice string for QCM questions")
		return
	}
	if q.Answer.Choice == "" {
		collector.add(prefix+".answer", "is required")
		return
	}
	if _, ok := choiceSet[NormalizeAnswerText(q.Answer.Choice)]; !ok {
		collector.add(prefix+".answer", fmt.Sprintf("unknown choice %q", q.Answer.Choice))
	}
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
