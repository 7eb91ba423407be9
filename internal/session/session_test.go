package session

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixedPicker struct {
	next []string
}

func (p *fixedPicker) Pick(sentences []string) string {
	if len(p.next) == 0 {
		return sentences[0]
	}
	s := p.next[0]
	p.next = p.next[1:]
	return s
}

const simplicity = "Simplicity is the ultimate sophistication in modern design."

func newTestSession(targets ...string) (*Session, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New([]string{simplicity}, &fixedPicker{next: targets}, clock), clock
}

func TestWPM(t *testing.T) {
	tests := []struct {
		name    string
		chars   int
		elapsed time.Duration
		want    int
	}{
		{name: "full sentence in thirty seconds", chars: 59, elapsed: 30 * time.Second, want: 24},
		{name: "one minute", chars: 250, elapsed: time.Minute, want: 50},
		{name: "zero elapsed uses floor", chars: 1, elapsed: 0, want: 120},
		{name: "negative elapsed uses floor", chars: 1, elapsed: -time.Second, want: 120},
		{name: "half rounds to even", chars: 25, elapsed: 2 * time.Minute, want: 2},
		{name: "no chars", chars: 0, elapsed: time.Second, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WPM(tt.chars, tt.elapsed); got != tt.want {
				t.Fatalf("WPM(%d, %v) = %d, want %d", tt.chars, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Signal
	}{
		{input: "Simp", want: SignalValid},
		{input: "Simplicity is", want: SignalValid},
		{input: "simp", want: SignalInvalid},
		{input: "Simplicity  is", want: SignalInvalid},
		{input: simplicity, want: SignalComplete},
		{input: simplicity + "!", want: SignalInvalid},
	}
	for _, tt := range tests {
		if got := Classify(simplicity, tt.input); got != tt.want {
			t.Fatalf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFirstKeystrokeSetsStartOnce(t *testing.T) {
	s, clock := newTestSession(simplicity)
	start := clock.Now()
	s.OnFirstKeystroke()
	clock.Advance(5 * time.Second)
	s.OnFirstKeystroke()

	round := s.Round()
	if !round.Running {
		t.Fatalf("expected running round")
	}
	if !round.StartedAt.Equal(start) {
		t.Fatalf("start moved: got %v want %v", round.StartedAt, start)
	}
}

func TestOnKeystrokeEmptyInputIgnored(t *testing.T) {
	s, _ := newTestSession(simplicity)
	fb := s.OnKeystroke("  \n")
	if fb.Signal != SignalNone || fb.WPM != 0 {
		t.Fatalf("expected no-op feedback, got %+v", fb)
	}
	if s.Round().Running {
		t.Fatalf("empty input must not start the round")
	}
}

func TestOnKeystrokeCompletesRound(t *testing.T) {
	s, clock := newTestSession(simplicity)
	s.OnFirstKeystroke()
	clock.Advance(30 * time.Second)

	fb := s.OnKeystroke(simplicity + "\n")
	if fb.Signal != SignalComplete {
		t.Fatalf("expected complete, got %v", fb.Signal)
	}
	if fb.WPM != 24 || fb.Chars != 59 {
		t.Fatalf("expected 24 WPM over 59 chars, got %+v", fb)
	}
	if s.Round().Running {
		t.Fatalf("completion must stop the round")
	}
}

func TestOnKeystrokeWithoutKeyDownStartsTimer(t *testing.T) {
	s, _ := newTestSession(simplicity)
	fb := s.OnKeystroke("Simp")
	if fb.Signal != SignalValid {
		t.Fatalf("expected valid, got %v", fb.Signal)
	}
	if fb.Elapsed != 0 || fb.WPM != WPM(4, MinElapsed) {
		t.Fatalf("expected floor-based WPM, got %+v", fb)
	}
	if !s.Round().Running {
		t.Fatalf("expected running round")
	}
}

func TestBeginRoundResets(t *testing.T) {
	s, _ := newTestSession("first", "second")
	if got := s.Round().Target; got != "first" {
		t.Fatalf("expected first target, got %q", got)
	}
	s.OnFirstKeystroke()
	s.BeginRound()
	round := s.Round()
	if round.Target != "second" || round.Running || !round.StartedAt.IsZero() {
		t.Fatalf("unexpected round after reset: %+v", round)
	}
}
