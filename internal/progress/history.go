package progress

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Attempt is one answered question in the append-only history log, one
// JSON object per line. The log feeds the stats ingestion.
type Attempt struct {
	RunID      string    `json:"run_id"`
	QuestionID int       `json:"question_id"`
	Thematic   string    `json:"thematic"`
	Category   string    `json:"category"`
	Correct    bool      `json:"correct"`
	Exam       bool      `json:"exam"`
	AnsweredAt time.Time `json:"answered_at"`
}

// History appends attempts to a JSONL file.
type History struct {
	path string
}

// NewHistory creates a history appender for the given path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Append writes one attempt record. Failures are reported to the caller
// and must not abort the active session.
func (h *History) Append(attempt Attempt) error {
	if h.path == "" {
		return fmt.Errorf("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	encodeErr := json.NewEncoder(file).Encode(attempt)
	closeErr := file.Close()
	if encodeErr != nil {
		return encodeErr
	}
	return closeErr
}

// ReadHistory loads all attempts from a JSONL file. A missing file yields
// an empty history.
func ReadHistory(path string) ([]Attempt, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var attempts []Attempt
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var attempt Attempt
		if err := json.Unmarshal(raw, &attempt); err != nil {
			return nil, fmt.Errorf("parse history line %d: %w", line, err)
		}
		attempts = append(attempts, attempt)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}
