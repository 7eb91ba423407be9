package scores

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/protype/internal/model"
)

func TestLoadFallsBackToZeros(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{name: "corrupt", body: "{not json"},
		{name: "float", body: `{"high_score": 24.5, "low_score": 3}`},
		{name: "negative", body: `{"high_score": -1, "low_score": 0}`},
		{name: "string", body: `{"high_score": "fast"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if got := Load(path); got != (model.StatsRecord{}) {
				t.Fatalf("expected zeros, got %+v", got)
			}
		})
	}
	if got := Load(filepath.Join(dir, "missing.json")); got != (model.StatsRecord{}) {
		t.Fatalf("expected zeros for missing file, got %+v", got)
	}
}

func TestLoadPartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte(`{"high_score": 61}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := Load(path); got.HighScore != 61 || got.LowScore != 0 {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name    string
		in      model.StatsRecord
		wpm     int
		want    model.StatsRecord
		newHigh bool
	}{
		{name: "first round", in: model.StatsRecord{}, wpm: 24, want: model.StatsRecord{HighScore: 24, LowScore: 24}, newHigh: true},
		{name: "slower round", in: model.StatsRecord{HighScore: 40, LowScore: 30}, wpm: 20, want: model.StatsRecord{HighScore: 40, LowScore: 20}},
		{name: "middle round", in: model.StatsRecord{HighScore: 40, LowScore: 20}, wpm: 30, want: model.StatsRecord{HighScore: 40, LowScore: 20}},
		{name: "at floor", in: model.StatsRecord{HighScore: 40, LowScore: 20}, wpm: 5, want: model.StatsRecord{HighScore: 40, LowScore: 20}},
		{name: "below floor first", in: model.StatsRecord{}, wpm: 3, want: model.StatsRecord{HighScore: 3, LowScore: 0}, newHigh: true},
		{name: "equal high", in: model.StatsRecord{HighScore: 40, LowScore: 20}, wpm: 40, want: model.StatsRecord{HighScore: 40, LowScore: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, newHigh := Update(tt.in, tt.wpm, DefaultLowFloor)
			if got != tt.want || newHigh != tt.newHigh {
				t.Fatalf("got %+v newHigh=%v, want %+v newHigh=%v", got, newHigh, tt.want, tt.newHigh)
			}
		})
	}
}

func TestUpdateTracksExtremes(t *testing.T) {
	rounds := []int{31, 2, 58, 12, 5, 44, 6}
	var rec model.StatsRecord
	for _, wpm := range rounds {
		rec, _ = Update(rec, wpm, DefaultLowFloor)
	}
	if rec.HighScore != 58 {
		t.Fatalf("expected high 58, got %d", rec.HighScore)
	}
	if rec.LowScore != 6 {
		t.Fatalf("expected low 6, got %d", rec.LowScore)
	}
}

func TestSaveAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "typing_stats.json")
	st := Open(path)
	if st.Record() != (model.StatsRecord{}) {
		t.Fatalf("expected zero record on fresh store")
	}
	if !st.Apply(24, DefaultLowFloor) {
		t.Fatalf("expected new high score")
	}
	if err := st.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Open(path).Record(); got != (model.StatsRecord{HighScore: 24, LowScore: 24}) {
		t.Fatalf("unexpected reloaded record %+v", got)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if st.Record() != (model.StatsRecord{}) {
		t.Fatalf("expected zeros after clear, got %+v", st.Record())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected stats file removed, stat err=%v", err)
	}
	if err := st.Clear(); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
}

func TestClearKeepsRecordWhenRemoveFails(t *testing.T) {
	// A non-empty directory at the stats path cannot be removed.
	path := filepath.Join(t.TempDir(), "typing_stats.json")
	if err := os.MkdirAll(filepath.Join(path, "child"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	s := Open(path)
	s.Apply(30, DefaultLowFloor)

	if err := s.Clear(); err == nil {
		t.Fatalf("expected remove error")
	}
	want := model.StatsRecord{HighScore: 30, LowScore: 30}
	if got := s.Record(); got != want {
		t.Fatalf("record changed on failed clear: got %+v, want %+v", got, want)
	}
}
