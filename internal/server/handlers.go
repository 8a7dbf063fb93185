package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/repwatch/internal/exercise"
	"github.com/claude/repwatch/internal/pose"
)

// frameRequest is one frame of joint samples from the pose collaborator.
type frameRequest struct {
	Joints []pose.Joint `json:"joints"`
}

// selectRequest names the exercise to activate.
type selectRequest struct {
	Exercise string `json:"exercise"`
}

func (s *Server) handleProcessFrame(w http.ResponseWriter, r *http.Request) {
	var req frameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	s.mu.Lock()
	out := s.tracker.ProcessFrame(req.Joints)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSelectExercise(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise is required"})
		return
	}

	s.mu.Lock()
	err := s.tracker.SelectExercise(r.Context(), req.Exercise)
	state := s.tracker.State()
	s.mu.Unlock()

	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tracker.Reset(r.Context())
	state := s.tracker.State()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleStreamState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.tracker.State()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, exercise.All())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
