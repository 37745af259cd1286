package question

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store owns the loaded question bank and its backing file. The editor is
// the only writer; the trainer reads through the same store so saved
// questions are visible without a restart.
type Store struct {
	path      string
	questions []Question
	index     map[int]int
}

// OpenStore loads a bank file into a store. A missing file yields an empty
// store so the editor can start a bank from scratch.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("question bank path is required")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return newStore(path, Bank{}), nil
	}
	bank, err := LoadBank(path)
	if err != nil {
		return nil, err
	}
	return newStore(path, bank), nil
}

// NewStore wraps an already validated bank.
func NewStore(path string, bank Bank) *Store {
	return newStore(path, bank)
}

func newStore(path string, bank Bank) *Store {
	store := &Store{path: path, index: map[int]int{}}
	for _, q := range bank.Questions {
		store.index[q.ID] = len(store.questions)
		store.questions = append(store.questions, q)
	}
	return store
}

// Len returns the number of questions in the bank.
func (s *Store) Len() int {
	return len(s.questions)
}

// All returns the questions in bank order.
func (s *Store) All() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Get returns a question by id.
func (s *Store) Get(id int) (Question, bool) {
	pos, ok := s.index[id]
	if !ok {
		return Question{}, false
	}
	return s.questions[pos], true
}

// Themes returns the sorted unique thematic labels.
func (s *Store) Themes() []string {
	seen := map[string]struct{}{}
	var themes []string
	for _, q := range s.questions {
		if _, ok := seen[q.Thematic]; ok {
			continue
		}
		seen[q.Thematic] = struct{}{}
		themes = append(themes, q.Thematic)
	}
	sort.Strings(themes)
	return themes
}

// ByTheme returns the questions of one thematic in bank order.
func (s *Store) ByTheme(theme string) []Question {
	var out []Question
	for _, q := range s.questions {
		if q.Thematic == theme {
			out = append(out, q)
		}
	}
	return out
}

// ByCategory returns the questions of one category in bank order.
func (s *Store) ByCategory(category Category) []Question {
	var out []Question
	for _, q := range s.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// NextID returns the next free id, max existing id plus one.
func (s *Store) NextID() int {
	next := 1
	for _, q := range s.questions {
		if q.ID >= next {
			next = q.ID + 1
		}
	}
	return next
}

// Insert adds a new question, rejecting ids already in the bank.
func (s *Store) Insert(q Question) error {
	if err := ValidateQuestion(q); err != nil {
		return err
	}
	if _, exists := s.index[q.ID]; exists {
		return fmt.Errorf("question id %d already exists", q.ID)
	}
	s.index[q.ID] = len(s.questions)
	s.questions = append(s.questions, q)
	return nil
}

// Update replaces an existing question in place.
func (s *Store) Update(q Question) error {
	if err := ValidateQuestion(q); err != nil {
		return err
	}
	pos, exists := s.index[q.ID]
	if !exists {
		return fmt.Errorf("question id %d not found", q.ID)
	}
	s.questions[pos] = q
	return nil
}

// Upsert inserts or updates by id.
func (s *Store) Upsert(q Question) error {
	if _, exists := s.index[q.ID]; exists {
		return s.Update(q)
	}
	return s.Insert(q)
}

// Delete removes a question by id.
func (s *Store) Delete(id int) error {
	pos, exists := s.index[id]
	if !exists {
		return fmt.Errorf("question id %d not found", id)
	}
	s.questions = append(s.questions[:pos], s.questions[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.questions); i++ {
		s.index[s.questions[i].ID] = i
	}
	return nil
}

// Save persists the bank as pretty JSON using an atomic rename.
func (s *Store) Save() error {
	payload, err := json.MarshalIndent(Bank{Questions: s.questions}, "", "  ")
	if err != nil {
		return err
	}
	payload = append(payload, '\n')
	tmpPath := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if syncErr != nil {
		_ = os.Remove(tmpPath)
		return syncErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
