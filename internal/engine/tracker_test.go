package engine

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/claude/repwatch/internal/pose"
)

// captureRecorder collects sessions handed over at session boundaries.
type captureRecorder struct {
	sessions []Session
	err      error
}

func (r *captureRecorder) Record(ctx context.Context, s Session) error {
	r.sessions = append(r.sessions, s)
	return r.err
}

// curlJoints builds a full skeleton where the left elbow measures the given
// angle, with the remaining joints parked where no curl form rule triggers.
func curlJoints(angleDeg, conf float64) []pose.Joint {
	js := make([]pose.Joint, pose.LandmarkCount)
	for i := range js {
		js[i] = pose.Joint{X: 0.5, Y: 0.5, Confidence: 0.9}
	}
	rad := angleDeg * math.Pi / 180
	js[pose.LeftShoulder] = pose.Joint{X: 0.5, Y: 0.3, Confidence: conf}
	js[pose.LeftElbow] = pose.Joint{X: 0.5, Y: 0.5, Confidence: conf}
	js[pose.LeftWrist] = pose.Joint{
		X:          0.5 + 0.2*math.Sin(rad),
		Y:          0.5 - 0.2*math.Cos(rad),
		Confidence: conf,
	}
	js[pose.LeftHip] = pose.Joint{X: 0.5, Y: 0.8, Confidence: 0.9}
	return js
}

func newCurlTracker(t *testing.T, rec Recorder) *Tracker {
	t.Helper()
	tr, err := NewTracker("bicep_curl", rec, slog.Default())
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

// driveFrames feeds n identical frames and returns the last output.
func driveFrames(tr *Tracker, angleDeg, conf float64, n int) Output {
	var out Output
	for i := 0; i < n; i++ {
		out = tr.ProcessFrame(curlJoints(angleDeg, conf))
	}
	return out
}

// driveCycle pushes the tracker through one full extended-flexed-extended
// cycle, leaving it with exactly one more credited rep. The generous frame
// counts absorb the smoothing window's transition through the dead zone.
func driveCycle(tr *Tracker) Output {
	driveFrames(tr, 165, 0.9, 20)
	driveFrames(tr, 25, 0.9, 20)
	return driveFrames(tr, 165, 0.9, 20)
}

// TestNewTrackerUnknownExercise verifies construction rejects identifiers
// missing from the profile table.
func TestNewTrackerUnknownExercise(t *testing.T) {
	if _, err := NewTracker("handstand", nil, slog.Default()); err == nil {
		t.Fatal("expected error for unknown exercise")
	}
}

// TestTrackerCountsFullCycle verifies one rep is credited per
// extended-flexed-extended cycle, with stage labels following the angle.
func TestTrackerCountsFullCycle(t *testing.T) {
	tr := newCurlTracker(t, nil)

	out := driveFrames(tr, 165, 0.9, 20)
	if out.Stage != StageDown {
		t.Errorf("stage = %q, want %q", out.Stage, StageDown)
	}
	if out.Reps != 0 {
		t.Errorf("reps = %d, want 0", out.Reps)
	}
	if out.Angle != 165 {
		t.Errorf("angle = %d, want 165", out.Angle)
	}

	out = driveFrames(tr, 25, 0.9, 20)
	if out.Stage != StageUp {
		t.Errorf("stage = %q, want %q", out.Stage, StageUp)
	}
	if out.Reps != 0 {
		t.Errorf("reps = %d, want 0", out.Reps)
	}

	out = driveFrames(tr, 165, 0.9, 20)
	if out.Stage != StageDown {
		t.Errorf("stage = %q, want %q", out.Stage, StageDown)
	}
	if out.Reps != 1 {
		t.Errorf("reps = %d, want 1", out.Reps)
	}
}

// TestTrackerVisibilityGate verifies a low-confidence frame mid-debounce
// wipes the hold counter and bypasses the smoother, so confirmation needs a
// fresh consecutive run.
func TestTrackerVisibilityGate(t *testing.T) {
	tr := newCurlTracker(t, nil)

	// bicep_curl holds for 8 frames; stop one short of confirmation.
	out := driveFrames(tr, 165, 0.9, 7)
	if out.Stage != StageNone {
		t.Fatalf("stage after 7 frames = %q, want unset", out.Stage)
	}

	// Gated frame: stage and smoothed angle unchanged, hold dropped.
	out = driveFrames(tr, 165, 0.3, 1)
	if out.Stage != StageNone {
		t.Errorf("stage after gated frame = %q, want unset", out.Stage)
	}
	if out.Angle != 165 {
		t.Errorf("angle after gated frame = %d, want 165 (smoother untouched)", out.Angle)
	}

	// Seven more frames must not confirm; the eighth consecutive one does.
	out = driveFrames(tr, 165, 0.9, 7)
	if out.Stage != StageNone {
		t.Errorf("stage after 7 post-gate frames = %q, want unset", out.Stage)
	}
	out = driveFrames(tr, 165, 0.9, 1)
	if out.Stage != StageDown {
		t.Errorf("stage after 8 post-gate frames = %q, want %q", out.Stage, StageDown)
	}
}

// TestTrackerFormAlertFirstMatch verifies the first violated rule wins even
// when a later rule also matches, and that alerts fire independently of the
// visibility gate.
func TestTrackerFormAlertFirstMatch(t *testing.T) {
	tr := newCurlTracker(t, nil)

	js := curlJoints(90, 0.3) // gated for counting
	js[pose.LeftElbow].X = 0.7
	js[pose.LeftHip].X = 0.2 // torso_swing would also trigger

	out := tr.ProcessFrame(js)
	if out.FormAlert != "Keep your elbow pinned to your side" {
		t.Errorf("form alert = %q, want elbow message", out.FormAlert)
	}
}

// TestTrackerFormAlertMissingJoints verifies a rule whose joints are absent
// from the set simply does not trigger.
func TestTrackerFormAlertMissingJoints(t *testing.T) {
	tr := newCurlTracker(t, nil)

	// Truncate the set before the hip: torso_swing cannot evaluate.
	js := curlJoints(90, 0.9)[:pose.LeftHip]

	out := tr.ProcessFrame(js)
	if out.FormAlert != "" {
		t.Errorf("form alert = %q, want none", out.FormAlert)
	}
}

// TestTrackerSwitchFlushesSession verifies switching exercises emits exactly
// one session record and starts the new exercise from scratch.
func TestTrackerSwitchFlushesSession(t *testing.T) {
	rec := &captureRecorder{}
	tr := newCurlTracker(t, rec)

	driveCycle(tr)
	driveCycle(tr)
	driveCycle(tr)

	if err := tr.SelectExercise(context.Background(), "squat"); err != nil {
		t.Fatalf("SelectExercise: %v", err)
	}

	if len(rec.sessions) != 1 {
		t.Fatalf("recorded sessions = %d, want 1", len(rec.sessions))
	}
	s := rec.sessions[0]
	if s.Exercise != "bicep_curl" || s.Reps != 3 {
		t.Errorf("session = {%s %d}, want {bicep_curl 3}", s.Exercise, s.Reps)
	}

	state := tr.State()
	if state.Exercise != "squat" || state.Stage != StageNone || state.Reps != 0 || state.Angle != 0 {
		t.Errorf("post-switch state = %+v, want fresh squat state", state)
	}
}

// TestTrackerSelectActiveIsNoop verifies re-selecting the active exercise
// neither records nor resets.
func TestTrackerSelectActiveIsNoop(t *testing.T) {
	rec := &captureRecorder{}
	tr := newCurlTracker(t, rec)
	driveCycle(tr)

	if err := tr.SelectExercise(context.Background(), "bicep_curl"); err != nil {
		t.Fatalf("SelectExercise: %v", err)
	}
	if len(rec.sessions) != 0 {
		t.Errorf("recorded sessions = %d, want 0", len(rec.sessions))
	}
	if got := tr.State().Reps; got != 1 {
		t.Errorf("reps = %d, want 1 (state preserved)", got)
	}
}

// TestTrackerSelectUnknownRejectedBeforeMutation verifies an unknown
// identifier is rejected without flushing or resetting anything.
func TestTrackerSelectUnknownRejectedBeforeMutation(t *testing.T) {
	rec := &captureRecorder{}
	tr := newCurlTracker(t, rec)
	driveCycle(tr)

	if err := tr.SelectExercise(context.Background(), "handstand"); err == nil {
		t.Fatal("expected error for unknown exercise")
	}
	if len(rec.sessions) != 0 {
		t.Errorf("recorded sessions = %d, want 0", len(rec.sessions))
	}
	if got := tr.State().Reps; got != 1 {
		t.Errorf("reps = %d, want 1 (state preserved)", got)
	}
	if tr.Exercise() != "bicep_curl" {
		t.Errorf("exercise = %q, want bicep_curl", tr.Exercise())
	}
}

// TestTrackerResetFlushesOnce verifies Reset hands over the count and a
// second Reset with zero reps stays silent.
func TestTrackerResetFlushesOnce(t *testing.T) {
	rec := &captureRecorder{}
	tr := newCurlTracker(t, rec)
	driveCycle(tr)

	tr.Reset(context.Background())
	if len(rec.sessions) != 1 {
		t.Fatalf("recorded sessions = %d, want 1", len(rec.sessions))
	}
	if state := tr.State(); state.Reps != 0 || state.Stage != StageNone {
		t.Errorf("post-reset state = %+v, want zeroed", state)
	}

	tr.Reset(context.Background())
	if len(rec.sessions) != 1 {
		t.Errorf("recorded sessions after zero-rep reset = %d, want 1", len(rec.sessions))
	}
}
