// Package scores persists the lifetime best and lowest WPM.
package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/protype/internal/model"
)

// DefaultLowFloor is the WPM a round must exceed to count as a low score.
const DefaultLowFloor = 5

// Store keeps the stats record in memory and mirrors it to a JSON file.
type Store struct {
	path   string
	record model.StatsRecord
}

// Open loads the record at path. Missing or unreadable files yield zeros.
func Open(path string) *Store {
	return &Store{path: path, record: Load(path)}
}

// Load reads the record at path, falling back to zeros on any failure.
func Load(path string) model.StatsRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.StatsRecord{}
	}
	var rec model.StatsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.StatsRecord{}
	}
	if rec.HighScore < 0 || rec.LowScore < 0 {
		return model.StatsRecord{}
	}
	return rec
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Record returns the current in-memory record.
func (s *Store) Record() model.StatsRecord {
	return s.record
}

// Apply folds a finished round into the record and reports a new high score.
// It does not persist; call Save afterwards.
func (s *Store) Apply(wpm, lowFloor int) bool {
	var newHigh bool
	s.record, newHigh = Update(s.record, wpm, lowFloor)
	return newHigh
}

// Update returns rec with wpm applied. The low score only moves for rounds
// strictly faster than lowFloor.
func Update(rec model.StatsRecord, wpm, lowFloor int) (model.StatsRecord, bool) {
	newHigh := wpm > rec.HighScore
	if newHigh {
		rec.HighScore = wpm
	}
	if wpm > lowFloor && (rec.LowScore == 0 || wpm < rec.LowScore) {
		rec.LowScore = wpm
	}
	return rec, newHigh
}

// Save rewrites the whole file with the current record.
func (s *Store) Save() error {
	data, err := json.Marshal(s.record)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create stats dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "stats-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp stats: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close stats: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	return nil
}

// Clear removes the file and resets the record. The record is kept when
// the file cannot be removed.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stats: %w", err)
	}
	s.record = model.StatsRecord{}
	return nil
}
