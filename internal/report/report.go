package report

import (
	"context"
	"database/sql"
	"time"

	"mmc/internal/stats"
)

// Data bundles everything the progress report renders.
type Data struct {
	GeneratedAt time.Time
	Themes      []stats.ThemeSummary
	Questions   []stats.QuestionSummary
	Runs        []stats.RunSummary
}

// Collect gathers report data from the stats database.
func Collect(ctx context.Context, db *sql.DB) (Data, error) {
	themes, err := stats.ByTheme(ctx, db)
	if err != nil {
		return Data{}, err
	}
	questions, err := stats.ByQuestion(ctx, db)
	if err != nil {
		return Data{}, err
	}
	runs, err := stats.Runs(ctx, db)
	if err != nil {
		return Data{}, err
	}
	return Data{
		GeneratedAt: time.Now(),
		Themes:      themes,
		Questions:   questions,
		Runs:        runs,
	}, nil
}
