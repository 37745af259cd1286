package question

import "strings"

// NormalizeAnswerText trims whitespace and lowercases a choice for matching.
func NormalizeAnswerText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
