package stats

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"mmc/internal/progress"
)

// AttemptKey returns a deterministic fingerprint for one attempt so
// re-ingesting the same history is a no-op.
func AttemptKey(attempt progress.Attempt) (string, error) {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(payload)
	return hex.EncodeToString(hash[:]), nil
}

// Ingest loads attempt history records into the attempts table,
// skipping records already present.
func Ingest(ctx context.Context, db *sql.DB, attempts []progress.Attempt) (int, error) {
	if ctx == nil {
		return 0, errors.New("stats: context is nil")
	}
	if db == nil {
		return 0, errors.New("stats: db is nil")
	}
	inserted := 0
	for _, attempt := range attempts {
		key, err := AttemptKey(attempt)
		if err != nil {
			return inserted, fmt.Errorf("fingerprint attempt: %w", err)
		}
		result, err := db.ExecContext(
			ctx,
			`INSERT INTO attempts (attempt_key, run_id, question_id, thematic, category, correct, exam, answered_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (attempt_key) DO NOTHING`,
			key,
			attempt.RunID,
			attempt.QuestionID,
			attempt.Thematic,
			attempt.Category,
			attempt.Correct,
			attempt.Exam,
			attempt.AnsweredAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert attempt: %w", err)
		}
		if rows, err := result.RowsAffected(); err == nil {
			inserted += int(rows)
		}
	}
	return inserted, nil
}

// IngestHistory reads a JSONL history file into the database.
func IngestHistory(ctx context.Context, db *sql.DB, historyPath string) (int, error) {
	attempts, err := progress.ReadHistory(historyPath)
	if err != nil {
		return 0, err
	}
	return Ingest(ctx, db, attempts)
}
