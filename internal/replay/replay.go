// Package replay feeds recorded joint-stream files through the counting
// engine and records the resulting sessions, so footage processed offline
// ends up in the same history as live counting.
package replay

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/repwatch/internal/engine"
	"github.com/claude/repwatch/internal/pose"
)

// Stats tracks replay progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	FramesProcessed  int
	SessionsRecorded int
	RepsCounted      int
}

// Replayer reads .jsonl joint streams from a directory and replays them.
type Replayer struct {
	recorder        engine.Recorder
	state           *StateDB
	log             *slog.Logger
	defaultExercise string
	dryRun          bool
	stats           Stats
}

// New creates a Replayer. The recorder may be nil for a dry run; the state
// DB may be nil to disable already-replayed tracking.
func New(recorder engine.Recorder, state *StateDB, defaultExercise string, dryRun bool, log *slog.Logger) *Replayer {
	return &Replayer{
		recorder:        recorder,
		state:           state,
		log:             log,
		defaultExercise: defaultExercise,
		dryRun:          dryRun,
	}
}

// Replay processes all .jsonl files under dir in name order.
func (rp *Replayer) Replay(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &rp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := rp.replayFile(ctx, path); err != nil {
			rp.stats.FilesErrored++
			rp.log.Error("replay failed", "file", path, "error", err)
			continue
		}
	}

	return &rp.stats, nil
}

// replayFile runs one recorded stream through a fresh tracker. Exercise
// marker frames switch the active profile mid-stream; the final reset
// flushes the last session.
func (rp *Replayer) replayFile(ctx context.Context, path string) error {
	size, hash, err := fileIdentity(path)
	if err != nil {
		return err
	}

	if rp.state != nil {
		done, err := rp.state.IsReplayed(filepath.Base(path), size, hash)
		if err != nil {
			return fmt.Errorf("checking replay state: %w", err)
		}
		if done {
			rp.stats.FilesSkipped++
			rp.log.Info("skipping already-replayed file", "file", path)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	frames, err := pose.ReadFrames(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	counting := &countingRecorder{next: rp.recorder, stats: &rp.stats}
	tracker, err := engine.NewTracker(rp.defaultExercise, counting, rp.log)
	if err != nil {
		return err
	}

	for _, fr := range frames {
		if fr.Exercise != "" {
			if err := tracker.SelectExercise(ctx, fr.Exercise); err != nil {
				rp.log.Warn("skipping exercise marker", "file", path, "exercise", fr.Exercise, "error", err)
			}
		}
		if len(fr.Joints) > 0 {
			tracker.ProcessFrame(fr.Joints)
			rp.stats.FramesProcessed++
		}
	}
	tracker.Reset(ctx)

	rp.stats.FilesProcessed++
	if rp.state != nil && !rp.dryRun {
		if err := rp.state.MarkReplayed(filepath.Base(path), size, hash); err != nil {
			return fmt.Errorf("marking replayed: %w", err)
		}
	}
	return nil
}

func fileIdentity(path string) (int64, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, "", err
	}
	hash, err := HashFile(path)
	if err != nil {
		return 0, "", err
	}
	return info.Size(), hash, nil
}

// countingRecorder tallies sessions and forwards them to the real recorder
// when one is configured.
type countingRecorder struct {
	next  engine.Recorder
	stats *Stats
}

func (r *countingRecorder) Record(ctx context.Context, s engine.Session) error {
	r.stats.SessionsRecorded++
	r.stats.RepsCounted += s.Reps
	if r.next == nil {
		return nil
	}
	return r.next.Record(ctx, s)
}
