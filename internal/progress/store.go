package progress

import (
	"sort"
	"sync"
	"time"
)

// Record holds the per-question counters persisted across sessions.
type Record struct {
	Attempts int       `json:"attempts"`
	Correct  int       `json:"correct"`
	LastSeen time.Time `json:"last_seen,omitzero"`
}

// Entry pairs a record with its question id for sorted listings.
type Entry struct {
	QuestionID int
	Record     Record
}

// Store owns the progress map and its backing file. The session engine is
// the exclusive writer.
type Store struct {
	mu      sync.RWMutex
	path    string
	records map[int]Record
}

// New creates an empty store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path, records: map[int]Record{}}
}

// Get returns the record for a question id, if present.
func (s *Store) Get(id int) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	return record, ok
}

// Snapshot returns all records sorted by question id.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.records))
	for id, record := range s.records {
		entries = append(entries, Entry{QuestionID: id, Record: record})
	}
	s.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].QuestionID < entries[j].QuestionID
	})
	return entries
}

// RecordAttempt increments counters and persists the map. The in-memory
// update always sticks; a persistence failure is returned so the caller
// can report it without losing the session.
func (s *Store) RecordAttempt(id int, correct bool, now time.Time) error {
	s.mu.Lock()
	record := s.records[id]
	record.Attempts++
	if correct {
		record.Correct++
	}
	record.LastSeen = now
	s.records[id] = record
	s.mu.Unlock()
	return s.Save()
}

// Accuracy returns correct answers over attempts for a set of records.
func Accuracy(entries []Entry) (attempts, correct int) {
	for _, entry := range entries {
		attempts += entry.Record.Attempts
		correct += entry.Record.Correct
	}
	return attempts, correct
}
