package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/repwatch/internal/engine"
	"github.com/claude/repwatch/internal/exercise"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tracker, err := engine.NewTracker("bicep_curl", nil, slog.Default())
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return New(nil, tracker, "secret", slog.Default())
}

func doJSON(t *testing.T, s *Server, method, path, body, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if apiKey != "" {
		r.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	return rec
}

// TestProcessFrame verifies a frame post returns the per-frame projection.
func TestProcessFrame(t *testing.T) {
	s := newTestServer(t)

	body := `{"joints":[{"x":0.5,"y":0.5,"c":0.9}]}`
	rec := doJSON(t, s, http.MethodPost, "/api/v1/stream/frames", body, "secret")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out engine.Output
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if out.Exercise != "bicep_curl" {
		t.Errorf("exercise = %q, want bicep_curl", out.Exercise)
	}
	if out.Reps != 0 || out.Stage != engine.StageNone {
		t.Errorf("fresh tracker projection = %+v", out)
	}
}

// TestProcessFrameRequiresKey verifies frame posts are gated by the API key.
func TestProcessFrameRequiresKey(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/stream/frames", `{"joints":[]}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestProcessFrameBadJSON verifies malformed bodies are rejected with 400.
func TestProcessFrameBadJSON(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/stream/frames", `{"joints":`, "secret")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestSelectExercise verifies switching returns the fresh projection for
// the new exercise.
func TestSelectExercise(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/stream/exercise", `{"exercise":"squat"}`, "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out engine.Output
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if out.Exercise != "squat" || out.Reps != 0 {
		t.Errorf("projection = %+v, want fresh squat state", out)
	}
}

// TestSelectExerciseUnknown verifies an identifier missing from the table
// is rejected with 400.
func TestSelectExerciseUnknown(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/stream/exercise", `{"exercise":"handstand"}`, "secret")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestSelectExerciseEmpty verifies a missing identifier is rejected.
func TestSelectExerciseEmpty(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/stream/exercise", `{}`, "secret")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestStreamState verifies the read-only projection endpoint needs no key.
func TestStreamState(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/stream/state", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out engine.Output
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if out.Exercise != "bicep_curl" {
		t.Errorf("exercise = %q, want bicep_curl", out.Exercise)
	}
}

// TestReset verifies the reset endpoint zeroes the projection.
func TestReset(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/api/v1/stream/frames", `{"joints":[]}`, "secret")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/stream/reset", "", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out engine.Output
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if out.Reps != 0 || out.Stage != engine.StageNone {
		t.Errorf("post-reset projection = %+v, want zeroed", out)
	}
}

// TestListExercises verifies the catalog endpoint returns every profile.
func TestListExercises(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/exercises", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var profiles []exercise.Profile
	if err := json.NewDecoder(rec.Body).Decode(&profiles); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(profiles) != len(exercise.All()) {
		t.Errorf("profiles = %d, want %d", len(profiles), len(exercise.All()))
	}
}
