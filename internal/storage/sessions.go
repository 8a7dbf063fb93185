package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/repwatch/internal/models"
)

// InsertSession inserts a session row. Returns true if inserted, false if
// the ID already exists.
func (db *DB) InsertSession(ctx context.Context, row models.SessionRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO rep_sessions (id, recorded_at, exercise, reps)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.RecordedAt, row.Exercise, row.Reps)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySessions retrieves sessions in a time range, newest first, optionally
// filtered by exercise identifier.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, exercise string) ([]models.SessionRow, error) {
	query := `SELECT id, recorded_at, exercise, reps
		 FROM rep_sessions
		 WHERE recorded_at >= $1 AND recorded_at < $2`
	args := []any{start, end}
	if exercise != "" {
		query += ` AND exercise = $3`
		args = append(args, exercise)
	}
	query += ` ORDER BY recorded_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.ID, &s.RecordedAt, &s.Exercise, &s.Reps); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SessionStats aggregates sessions per exercise over a time range.
func (db *DB) SessionStats(ctx context.Context, start, end time.Time) ([]models.ExerciseStats, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise, COUNT(*), COALESCE(SUM(reps), 0), COALESCE(MAX(reps), 0), MAX(recorded_at)
		 FROM rep_sessions
		 WHERE recorded_at >= $1 AND recorded_at < $2
		 GROUP BY exercise
		 ORDER BY exercise`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying session stats: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseStats
	for rows.Next() {
		var s models.ExerciseStats
		if err := rows.Scan(&s.Exercise, &s.Sessions, &s.TotalReps, &s.BestReps, &s.LastRecording); err != nil {
			return nil, fmt.Errorf("scanning session stats: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
