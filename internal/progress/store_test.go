package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadMissingFile verifies a first run starts with an empty map.
func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "progress_data.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(store.Snapshot()) != 0 {
		t.Fatalf("expected empty store, got %+v", store.Snapshot())
	}
}

// TestRecordAttemptCounts verifies N mixed attempts produce attempts == N
// and correct == number of correct answers.
func TestRecordAttemptCounts(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "progress_data.json"))
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	outcomes := []bool{true, false, true, true, false}
	for i, correct := range outcomes {
		if err := store.RecordAttempt(42, correct, now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("record attempt %d: %v", i, err)
		}
	}
	record, ok := store.Get(42)
	if !ok {
		t.Fatal("expected record for question 42")
	}
	if record.Attempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", record.Attempts)
	}
	if record.Correct != 3 {
		t.Fatalf("expected 3 correct, got %d", record.Correct)
	}
	if !record.LastSeen.Equal(now.Add(4 * time.Minute)) {
		t.Fatalf("unexpected last seen: %v", record.LastSeen)
	}
}

// TestRecordAttemptPersists verifies counters survive a reload.
func TestRecordAttemptPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress_data.json")
	store := New(path)
	now := time.Now().UTC()
	if err := store.RecordAttempt(1, true, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.RecordAttempt(2, false, now); err != nil {
		t.Fatalf("record: %v", err)
	}

	reloaded := New(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	entries := reloaded.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].QuestionID != 1 || entries[0].Record.Correct != 1 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].QuestionID != 2 || entries[1].Record.Correct != 0 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

// TestRecordAttemptKeepsMemoryOnWriteFailure verifies a failed write does
// not roll back in-memory counters.
func TestRecordAttemptKeepsMemoryOnWriteFailure(t *testing.T) {
	// Point the store at a path whose parent is a regular file so the
	// save must fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := writeFile(blocker); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	store := New(filepath.Join(blocker, "progress_data.json"))
	if err := store.RecordAttempt(7, true, time.Now()); err == nil {
		t.Fatal("expected write failure")
	}
	record, ok := store.Get(7)
	if !ok || record.Attempts != 1 || record.Correct != 1 {
		t.Fatalf("in-memory state lost: %+v ok=%v", record, ok)
	}
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0o644)
}
