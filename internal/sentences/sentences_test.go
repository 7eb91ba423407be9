package sentences

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadPlainText(t *testing.T) {
	path := writeFile(t, "quotes.txt", "  first   line \n\nsecond line\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != "first line" || got[1] != "second line" {
		t.Fatalf("unexpected sentences: %q", got)
	}
}

func TestLoadYAML(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "list.yaml", body: "- one sentence\n- two sentence\n"},
		{name: "pack.yml", body: "sentences:\n  - one sentence\n  - two sentence\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.name, tt.body))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(got) != 2 || got[1] != "two sentence" {
				t.Fatalf("unexpected sentences: %q", got)
			}
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	if _, err := Load(writeFile(t, "empty.txt", "\n  \n")); err == nil {
		t.Fatalf("expected error for empty list")
	}
	if _, err := Load(writeFile(t, "empty.yaml", "sentences: []\n")); err == nil {
		t.Fatalf("expected error for empty yaml list")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultsAreClean(t *testing.T) {
	if got := Clean(Defaults); len(got) != len(Defaults) {
		t.Fatalf("defaults changed under Clean: %q", got)
	}
}
