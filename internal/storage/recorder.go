package storage

import (
	"context"

	"github.com/claude/repwatch/internal/engine"
	"github.com/claude/repwatch/internal/models"
	"github.com/google/uuid"
)

// SessionRecorder adapts the DB to the engine's Recorder seam, assigning
// each terminal count a fresh row ID.
type SessionRecorder struct {
	db *DB
}

// NewSessionRecorder returns a recorder that persists sessions in the DB.
func NewSessionRecorder(db *DB) *SessionRecorder {
	return &SessionRecorder{db: db}
}

// Record implements engine.Recorder.
func (r *SessionRecorder) Record(ctx context.Context, s engine.Session) error {
	_, err := r.db.InsertSession(ctx, models.SessionRow{
		ID:         uuid.New(),
		RecordedAt: s.RecordedAt,
		Exercise:   s.Exercise,
		Reps:       s.Reps,
	})
	return err
}
