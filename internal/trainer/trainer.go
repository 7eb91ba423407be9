// Package trainer ties the round state to score persistence. Front ends
// translate their input events into KeyDown/KeyUp calls and render the
// returned Outcome.
package trainer

import (
	"context"
	"log"

	"github.com/verte-zerg/protype/internal/model"
	"github.com/verte-zerg/protype/internal/scores"
	"github.com/verte-zerg/protype/internal/session"
)

// Recorder stores finished rounds.
type Recorder interface {
	InsertRound(ctx context.Context, round model.RoundResult) (int64, error)
	Clear(ctx context.Context) error
}

// Outcome describes the effect of one keystroke check.
type Outcome struct {
	session.Feedback
	Completed bool
	NewHigh   bool
	Record    model.StatsRecord
	// Target is the sentence to type next; it changes after completion.
	Target string
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithRecorder appends every finished round to r.
func WithRecorder(r Recorder) Option {
	return func(t *Trainer) {
		t.recorder = r
	}
}

// WithLowFloor sets the WPM a round must exceed to update the low score.
func WithLowFloor(floor int) Option {
	return func(t *Trainer) {
		t.lowFloor = floor
	}
}

// Trainer runs rounds and keeps lifetime scores up to date.
type Trainer struct {
	session  *session.Session
	scores   *scores.Store
	recorder Recorder
	lowFloor int
}

// New builds a Trainer around an existing session and score store.
func New(sess *session.Session, sc *scores.Store, opts ...Option) *Trainer {
	t := &Trainer{
		session:  sess,
		scores:   sc,
		lowFloor: scores.DefaultLowFloor,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Target returns the sentence of the current round.
func (t *Trainer) Target() string {
	return t.session.Round().Target
}

// Running reports whether the current round's timer has started.
func (t *Trainer) Running() bool {
	return t.session.Round().Running
}

// Record returns the lifetime scores.
func (t *Trainer) Record() model.StatsRecord {
	return t.scores.Record()
}

// KeyDown starts the round timer on the first key press.
func (t *Trainer) KeyDown() {
	t.session.OnFirstKeystroke()
}

// KeyUp checks the full input after a key release and finishes the round
// on an exact match.
func (t *Trainer) KeyUp(input string) Outcome {
	fb := t.session.OnKeystroke(input)
	out := Outcome{Feedback: fb, Record: t.scores.Record(), Target: t.Target()}
	if fb.Signal != session.SignalComplete {
		return out
	}
	started := t.session.Round().StartedAt
	target := t.Target()

	out.Completed = true
	out.NewHigh = t.scores.Apply(fb.WPM, t.lowFloor)
	out.Record = t.scores.Record()
	if err := t.scores.Save(); err != nil {
		log.Printf("failed to save stats: %v", err)
	}
	t.record(model.RoundResult{
		StartedAt:  started,
		EndedAt:    started.Add(fb.Elapsed),
		Target:     target,
		Chars:      fb.Chars,
		DurationMs: fb.Elapsed.Milliseconds(),
		WPM:        fb.WPM,
		NewHigh:    out.NewHigh,
	})

	t.session.BeginRound()
	out.Target = t.Target()
	return out
}

// Reset discards the current round and starts a new one.
func (t *Trainer) Reset() {
	t.session.BeginRound()
}

// ClearStats zeroes the lifetime scores, removes the stats file, and
// drops recorded history. Callers confirm with the user first.
func (t *Trainer) ClearStats() error {
	if err := t.scores.Clear(); err != nil {
		return err
	}
	if t.recorder != nil {
		if err := t.recorder.Clear(context.Background()); err != nil {
			log.Printf("failed to clear history: %v", err)
		}
	}
	return nil
}

func (t *Trainer) record(round model.RoundResult) {
	if t.recorder == nil {
		return
	}
	if _, err := t.recorder.InsertRound(context.Background(), round); err != nil {
		log.Printf("failed to record round: %v", err)
	}
}
