// Package models holds row types shared between storage and transport.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRow is a row for the rep_sessions table: one completed counting run
// for one exercise.
type SessionRow struct {
	ID         uuid.UUID `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	Exercise   string    `json:"exercise"`
	Reps       int       `json:"reps"`
}

// ExerciseStats aggregates recorded sessions for one exercise.
type ExerciseStats struct {
	Exercise      string    `json:"exercise"`
	Sessions      int       `json:"sessions"`
	TotalReps     int       `json:"total_reps"`
	BestReps      int       `json:"best_reps"`
	LastRecording time.Time `json:"last_recording"`
}
