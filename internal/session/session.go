// Package session tracks the state of the current typing round.
package session

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// MinElapsed is the elapsed-time floor used for WPM so a round never divides by zero.
const MinElapsed = 100 * time.Millisecond

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// Picker chooses the next target from a sentence list.
type Picker interface {
	Pick(sentences []string) string
}

// Signal classifies typed input against the target.
type Signal int

const (
	// SignalNone means the input was empty and nothing was computed.
	SignalNone Signal = iota
	// SignalValid means the input is a prefix of the target.
	SignalValid
	// SignalInvalid means the input diverged from the target.
	SignalInvalid
	// SignalComplete means the input equals the target.
	SignalComplete
)

func (s Signal) String() string {
	switch s {
	case SignalValid:
		return "valid"
	case SignalInvalid:
		return "invalid"
	case SignalComplete:
		return "complete"
	default:
		return "none"
	}
}

// Feedback is the result of checking one keystroke.
type Feedback struct {
	Signal  Signal
	WPM     int
	Chars   int
	Elapsed time.Duration
}

// Round is one attempt at typing a target.
type Round struct {
	Target    string
	StartedAt time.Time
	Running   bool
}

// Session owns the current round.
type Session struct {
	clock     Clock
	picker    Picker
	sentences []string
	round     Round
}

// New creates a session and begins its first round.
func New(sentences []string, picker Picker, clock Clock) *Session {
	if clock == nil {
		clock = SystemClock()
	}
	s := &Session{
		clock:     clock,
		picker:    picker,
		sentences: sentences,
	}
	s.BeginRound()
	return s
}

// Round returns a copy of the current round.
func (s *Session) Round() Round {
	return s.round
}

// Now reads the session clock.
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

// BeginRound picks a new target and clears the timer.
func (s *Session) BeginRound() {
	s.round = Round{Target: s.picker.Pick(s.sentences)}
}

// OnFirstKeystroke starts the timer unless the round is already running.
func (s *Session) OnFirstKeystroke() {
	if s.round.Running {
		return
	}
	s.round.StartedAt = s.clock.Now()
	s.round.Running = true
}

// OnKeystroke checks input against the target and computes live WPM.
// Surrounding whitespace is ignored. A complete match stops the round.
func (s *Session) OnKeystroke(input string) Feedback {
	input = strings.TrimSpace(input)
	if input == "" {
		return Feedback{Signal: SignalNone}
	}
	if s.round.StartedAt.IsZero() {
		s.OnFirstKeystroke()
	}
	elapsed := s.clock.Now().Sub(s.round.StartedAt)
	chars := utf8.RuneCountInString(input)
	fb := Feedback{
		Signal:  Classify(s.round.Target, input),
		WPM:     WPM(chars, elapsed),
		Chars:   chars,
		Elapsed: elapsed,
	}
	if fb.Signal == SignalComplete {
		s.round.Running = false
	}
	return fb
}

// Classify compares input with target.
func Classify(target, input string) Signal {
	switch {
	case input == target:
		return SignalComplete
	case strings.HasPrefix(target, input):
		return SignalValid
	default:
		return SignalInvalid
	}
}

// WPM returns (chars/5) per minute, rounded half to even. Elapsed times
// below MinElapsed are raised to it.
func WPM(chars int, elapsed time.Duration) int {
	if chars <= 0 {
		return 0
	}
	if elapsed < MinElapsed {
		elapsed = MinElapsed
	}
	words := float64(chars) / 5.0
	return int(math.RoundToEven(words / elapsed.Minutes()))
}
