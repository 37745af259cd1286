package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ThemeSummary aggregates accuracy for one thematic.
type ThemeSummary struct {
	Thematic string
	Attempts int
	Correct  int
	LastSeen time.Time
}

// QuestionSummary aggregates accuracy for one question.
type QuestionSummary struct {
	QuestionID int
	Thematic   string
	Category   string
	Attempts   int
	Correct    int
}

// RunSummary aggregates one session run, exam or themed.
type RunSummary struct {
	RunID     string
	Exam      bool
	Attempts  int
	Correct   int
	StartedAt time.Time
}

// Accuracy returns correct over attempts in percent.
func (s ThemeSummary) Accuracy() float64 { return accuracy(s.Correct, s.Attempts) }

// Accuracy returns correct over attempts in percent.
func (s QuestionSummary) Accuracy() float64 { return accuracy(s.Correct, s.Attempts) }

// Accuracy returns correct over attempts in percent.
func (s RunSummary) Accuracy() float64 { return accuracy(s.Correct, s.Attempts) }

func accuracy(correct, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return float64(correct) * 100 / float64(attempts)
}

// ByTheme returns per-thematic accuracy, sorted by thematic.
func ByTheme(ctx context.Context, db *sql.DB) ([]ThemeSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT thematic,
		       count(*) AS attempts,
		       count(*) FILTER (WHERE correct) AS correct,
		       max(answered_at) AS last_seen
		FROM attempts
		GROUP BY thematic
		ORDER BY thematic`)
	if err != nil {
		return nil, fmt.Errorf("query theme stats: %w", err)
	}
	defer rows.Close()

	var summaries []ThemeSummary
	for rows.Next() {
		var summary ThemeSummary
		if err := rows.Scan(&summary.Thematic, &summary.Attempts, &summary.Correct, &summary.LastSeen); err != nil {
			return nil, fmt.Errorf("scan theme stats: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// ByQuestion returns per-question accuracy, sorted by question id.
func ByQuestion(ctx context.Context, db *sql.DB) ([]QuestionSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT question_id,
		       min(thematic) AS thematic,
		       min(category) AS category,
		       count(*) AS attempts,
		       count(*) FILTER (WHERE correct) AS correct
		FROM attempts
		GROUP BY question_id
		ORDER BY question_id`)
	if err != nil {
		return nil, fmt.Errorf("query question stats: %w", err)
	}
	defer rows.Close()

	var summaries []QuestionSummary
	for rows.Next() {
		var summary QuestionSummary
		if err := rows.Scan(&summary.QuestionID, &summary.Thematic, &summary.Category, &summary.Attempts, &summary.Correct); err != nil {
			return nil, fmt.Errorf("scan question stats: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Runs returns per-run accuracy, most recent first.
func Runs(ctx context.Context, db *sql.DB) ([]RunSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT run_id,
		       bool_or(exam) AS exam,
		       count(*) AS attempts,
		       count(*) FILTER (WHERE correct) AS correct,
		       min(answered_at) AS started_at
		FROM attempts
		GROUP BY run_id
		ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query run stats: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		if err := rows.Scan(&summary.RunID, &summary.Exam, &summary.Attempts, &summary.Correct, &summary.StartedAt); err != nil {
			return nil, fmt.Errorf("scan run stats: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
