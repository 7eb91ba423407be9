package generator

import (
	"math/rand"
	"testing"
)

func TestPickIsDeterministicForSource(t *testing.T) {
	list := []string{"a", "b", "c", "d"}
	first := NewWithSource(rand.NewSource(42))
	second := NewWithSource(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		if a, b := first.Pick(list), second.Pick(list); a != b {
			t.Fatalf("pick %d diverged: %q vs %q", i, a, b)
		}
	}
}

func TestPickCoversList(t *testing.T) {
	list := []string{"a", "b", "c"}
	g := NewWithSource(rand.NewSource(1))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[g.Pick(list)] = true
	}
	if len(seen) != len(list) {
		t.Fatalf("expected all sentences to be picked, saw %v", seen)
	}
}

func TestPickEmpty(t *testing.T) {
	if got := New().Pick(nil); got != "" {
		t.Fatalf("expected empty pick, got %q", got)
	}
}
