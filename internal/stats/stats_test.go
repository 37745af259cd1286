package stats

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"mmc/internal/progress"
	"mmc/internal/testutil"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open("")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testAttempts() []progress.Attempt {
	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	return []progress.Attempt{
		{RunID: "run-1", QuestionID: 1, Thematic: "Buckling", Category: "TF", Correct: true, AnsweredAt: base},
		{RunID: "run-1", QuestionID: 2, Thematic: "Buckling", Category: "QCM", Correct: false, AnsweredAt: base.Add(time.Minute)},
		{RunID: "run-2", QuestionID: 3, Thematic: "Plasticity", Category: "TF", Correct: true, Exam: true, AnsweredAt: base.Add(time.Hour)},
		{RunID: "run-2", QuestionID: 1, Thematic: "Buckling", Category: "TF", Correct: true, Exam: true, AnsweredAt: base.Add(time.Hour + time.Minute)},
	}
}

// TestIngestIdempotent verifies re-ingesting the same history inserts
// nothing new.
func TestIngestIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)
	inserted, err := Ingest(ctx, db, testAttempts())
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if inserted != 4 {
		t.Fatalf("expected 4 inserts, got %d", inserted)
	}
	inserted, err = Ingest(ctx, db, testAttempts())
	if err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected idempotent re-ingest, got %d inserts", inserted)
	}
}

// TestByTheme verifies per-thematic aggregation.
func TestByTheme(t *testing.T) {
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)
	if _, err := Ingest(ctx, db, testAttempts()); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	themes, err := ByTheme(ctx, db)
	if err != nil {
		t.Fatalf("by theme: %v", err)
	}
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(themes))
	}
	buckling := themes[0]
	if buckling.Thematic != "Buckling" || buckling.Attempts != 3 || buckling.Correct != 2 {
		t.Fatalf("unexpected buckling summary: %+v", buckling)
	}
	if buckling.Accuracy() < 66 || buckling.Accuracy() > 67 {
		t.Fatalf("unexpected accuracy: %f", buckling.Accuracy())
	}
}

// TestByQuestionAndRuns verifies the remaining aggregations.
func TestByQuestionAndRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)
	if _, err := Ingest(ctx, db, testAttempts()); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	questions, err := ByQuestion(ctx, db)
	if err != nil {
		t.Fatalf("by question: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	if questions[0].QuestionID != 1 || questions[0].Attempts != 2 || questions[0].Correct != 2 {
		t.Fatalf("unexpected question summary: %+v", questions[0])
	}

	runs, err := Runs(ctx, db)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "run-2" || !runs[0].Exam {
		t.Fatalf("expected most recent exam run first, got %+v", runs[0])
	}
}

// TestIngestHistoryFile verifies the JSONL file path into the database.
func TestIngestHistoryFile(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "attempts.jsonl")
	history := progress.NewHistory(historyPath)
	for _, attempt := range testAttempts() {
		if err := history.Append(attempt); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)
	inserted, err := IngestHistory(ctx, db, historyPath)
	if err != nil {
		t.Fatalf("ingest history: %v", err)
	}
	if inserted != 4 {
		t.Fatalf("expected 4 inserts, got %d", inserted)
	}
}
