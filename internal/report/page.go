package report

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"mmc/internal/stats"
)

const pageStyle = `body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
h1 { border-bottom: 2px solid #2563eb; padding-bottom: 0.3rem; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
th, td { border: 1px solid #ddd; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f3f4f6; }
td.num { text-align: right; }
.empty { color: #888; font-style: italic; }`

// Page renders the full progress report document.
func Page(data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\"/>\n"+
				"<title>MMC Progress Report</title>\n<style>%s</style>\n</head>\n<body>\n"+
				"<h1>MMC Progress Report</h1>\n<p>Generated %s</p>\n",
			pageStyle, templ.EscapeString(formatTimestamp(data.GeneratedAt))); err != nil {
			return err
		}
		for _, section := range []templ.Component{
			themesTable(data.Themes),
			questionsTable(data.Questions),
			runsTable(data.Runs),
		} {
			if err := section.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func themesTable(themes []stats.ThemeSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h2>Thematics</h2>\n"); err != nil {
			return err
		}
		if len(themes) == 0 {
			_, err := io.WriteString(w, "<p class=\"empty\">No attempts recorded yet.</p>\n")
			return err
		}
		if _, err := io.WriteString(w,
			"<table>\n<tr><th>Thematic</th><th>Attempts</th><th>Correct</th><th>Accuracy</th><th>Last seen</th></tr>\n"); err != nil {
			return err
		}
		for _, theme := range themes {
			if _, err := fmt.Fprintf(w,
				"<tr><td>%s</td><td class=\"num\">%d</td><td class=\"num\">%d</td><td class=\"num\">%s</td><td>%s</td></tr>\n",
				templ.EscapeString(theme.Thematic), theme.Attempts, theme.Correct,
				formatAccuracy(theme.Accuracy()), templ.EscapeString(formatTimestamp(theme.LastSeen))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
}

func questionsTable(questions []stats.QuestionSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h2>Questions</h2>\n"); err != nil {
			return err
		}
		if len(questions) == 0 {
			_, err := io.WriteString(w, "<p class=\"empty\">No attempts recorded yet.</p>\n")
			return err
		}
		if _, err := io.WriteString(w,
			"<table>\n<tr><th>ID</th><th>Thematic</th><th>Category</th><th>Attempts</th><th>Correct</th><th>Accuracy</th></tr>\n"); err != nil {
			return err
		}
		for _, q := range questions {
			if _, err := fmt.Fprintf(w,
				"<tr><td class=\"num\">%d</td><td>%s</td><td>%s</td><td class=\"num\">%d</td><td class=\"num\">%d</td><td class=\"num\">%s</td></tr>\n",
				q.QuestionID, templ.EscapeString(q.Thematic), templ.EscapeString(q.Category),
				q.Attempts, q.Correct, formatAccuracy(q.Accuracy())); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
}

func runsTable(runs []stats.RunSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h2>Sessions</h2>\n"); err != nil {
			return err
		}
		if len(runs) == 0 {
			_, err := io.WriteString(w, "<p class=\"empty\">No sessions recorded yet.</p>\n")
			return err
		}
		if _, err := io.WriteString(w,
			"<table>\n<tr><th>Started</th><th>Mode</th><th>Score</th><th>Accuracy</th></tr>\n"); err != nil {
			return err
		}
		for _, run := range runs {
			mode := "practice"
			if run.Exam {
				mode = "exam"
			}
			if _, err := fmt.Fprintf(w,
				"<tr><td>%s</td><td>%s</td><td class=\"num\">%d/%d</td><td class=\"num\">%s</td></tr>\n",
				templ.EscapeString(formatTimestamp(run.StartedAt)), mode,
				run.Correct, run.Attempts, formatAccuracy(run.Accuracy())); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
}
