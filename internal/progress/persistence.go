package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Load reads the progress map from its JSON file if it exists. A missing
// file is a first run and leaves the store empty.
func (s *Store) Load() error {
	if s.path == "" {
		return fmt.Errorf("progress path is required")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse progress file: %w", err)
	}
	parsed := map[int]Record{}
	for key, record := range records {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("parse progress file: invalid question id %q", key)
		}
		parsed[id] = record
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = parsed
	return nil
}

// Save persists the progress map to its JSON file using an atomic rename.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("progress path is required")
	}
	s.mu.RLock()
	records := make(map[string]Record, len(s.records))
	for id, record := range s.records {
		records[strconv.Itoa(id)] = record
	}
	s.mu.RUnlock()
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
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
