package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/claude/repwatch/internal/exercise"
	"github.com/claude/repwatch/internal/geom"
	"github.com/claude/repwatch/internal/pose"
)

// MinConfidence gates rep counting: a frame only feeds the smoother and the
// state machine when all three sampled joints score strictly above it.
const MinConfidence = 0.5

// Session is a completed counting run handed to the Recorder on exercise
// switch or reset. Zero-rep runs are never handed over.
type Session struct {
	RecordedAt time.Time
	Exercise   string
	Reps       int
}

// Recorder receives terminal rep counts at session boundaries.
type Recorder interface {
	Record(ctx context.Context, s Session) error
}

// Output is the per-frame projection for display clients. The tracker owns
// the fast mutable state internally; callers only ever see this snapshot.
type Output struct {
	Exercise  string `json:"exercise"`
	Angle     int    `json:"angle"`
	Stage     Stage  `json:"stage"`
	Reps      int    `json:"reps"`
	FormAlert string `json:"form_alert,omitempty"`
}

// Tracker runs the counting pipeline for the active exercise: angle from the
// profile's three joints, smoothing, the debounced counter, and the form
// rules. It is single-writer: one ProcessFrame call at a time, and exercise
// switches serialized with frame processing by the caller.
type Tracker struct {
	profile  *exercise.Profile
	smoother *Smoother
	counter  *Counter
	recorder Recorder
	log      *slog.Logger
	last     Output
}

// NewTracker creates a tracker for the given exercise. The recorder may be
// nil when session persistence is not wanted.
func NewTracker(exerciseID string, recorder Recorder, log *slog.Logger) (*Tracker, error) {
	p, ok := exercise.Get(exerciseID)
	if !ok {
		return nil, fmt.Errorf("unknown exercise %q", exerciseID)
	}
	t := &Tracker{recorder: recorder, log: log}
	t.activate(p)
	return t, nil
}

// activate swaps in a profile with fresh smoother and counter state.
func (t *Tracker) activate(p *exercise.Profile) {
	t.profile = p
	t.smoother = NewSmoother(AngleHistorySize)
	t.counter = NewCounter(p.UpThreshold, p.DownThreshold, p.HoldFrames)
	t.last = Output{Exercise: p.ID}
}

// Exercise returns the active exercise identifier.
func (t *Tracker) Exercise() string {
	return t.profile.ID
}

// State returns the most recent frame projection.
func (t *Tracker) State() Output {
	return t.last
}

// ProcessFrame runs one frame through the pipeline and returns the updated
// projection. Form rules always run on the raw joint set; counting only
// advances when the three sampled joints pass the visibility gate. A gated
// frame drops accumulated debounce credit and leaves the smoother untouched.
func (t *Tracker) ProcessFrame(joints []pose.Joint) Output {
	alert := exercise.Violation(joints, t.profile.Rules)

	a, aok := pose.At(joints, t.profile.Joints[0])
	b, bok := pose.At(joints, t.profile.Joints[1])
	c, cok := pose.At(joints, t.profile.Joints[2])

	visible := aok && bok && cok &&
		a.Confidence > MinConfidence &&
		b.Confidence > MinConfidence &&
		c.Confidence > MinConfidence

	smoothed := t.smoother.Average()
	if visible {
		raw := geom.Angle(
			geom.Point{X: a.X, Y: a.Y},
			geom.Point{X: b.X, Y: b.Y},
			geom.Point{X: c.X, Y: c.Y},
		)
		smoothed = t.smoother.Push(raw)
		t.counter.Advance(smoothed)
	} else {
		t.counter.DropHold()
	}

	t.last = Output{
		Exercise:  t.profile.ID,
		Angle:     int(math.Round(smoothed)),
		Stage:     t.counter.Stage(),
		Reps:      t.counter.Reps(),
		FormAlert: alert,
	}
	return t.last
}

// SelectExercise switches the active profile. Selecting the active exercise
// is a no-op. An unknown identifier is rejected before any state changes.
// Otherwise the outgoing count is flushed to the recorder and the smoother
// and counter start fresh, as one step serialized with frame processing.
func (t *Tracker) SelectExercise(ctx context.Context, id string) error {
	if id == t.profile.ID {
		return nil
	}
	p, ok := exercise.Get(id)
	if !ok {
		return fmt.Errorf("unknown exercise %q", id)
	}
	t.flush(ctx)
	t.activate(p)
	return nil
}

// Reset flushes the current count and returns the pipeline to its initial
// state for the same exercise.
func (t *Tracker) Reset(ctx context.Context) {
	t.flush(ctx)
	t.smoother.Clear()
	t.counter.Reset()
	t.last = Output{Exercise: t.profile.ID}
}

// flush hands the accumulated count to the recorder if it is nonzero. A
// recorder failure is logged, not propagated: the reset still happens and
// counting must not stall on storage.
func (t *Tracker) flush(ctx context.Context) {
	reps := t.counter.Reps()
	if reps == 0 || t.recorder == nil {
		return
	}
	s := Session{RecordedAt: time.Now().UTC(), Exercise: t.profile.ID, Reps: reps}
	if err := t.recorder.Record(ctx, s); err != nil && t.log != nil {
		t.log.Warn("recording session failed", "exercise", s.Exercise, "reps", s.Reps, "error", err)
	}
}
