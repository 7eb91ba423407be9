package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing config, got %v", err)
	}
	if cfg.Practice.Sentences != nil || cfg.Practice.LowFloor != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigPracticeKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[practice]
sentences = "/tmp/quotes.yaml"
history = false
low-floor = 10
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Sentences == nil || *cfg.Practice.Sentences != "/tmp/quotes.yaml" {
		t.Fatalf("unexpected sentences: %v", cfg.Practice.Sentences)
	}
	if cfg.Practice.History == nil || *cfg.Practice.History {
		t.Fatalf("expected history=false")
	}
	if cfg.Practice.LowFloor == nil || *cfg.Practice.LowFloor != 10 {
		t.Fatalf("unexpected low-floor: %v", cfg.Practice.LowFloor)
	}
	if cfg.Practice.StatsFile != nil {
		t.Fatalf("expected stats-file unset")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nwords = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "protype", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultStatsPath(); got != filepath.Join("/data", "protype", "typing_stats.json") {
		t.Fatalf("unexpected stats path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "protype", "protype.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
