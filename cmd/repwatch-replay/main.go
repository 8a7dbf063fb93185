package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/repwatch/internal/config"
	"github.com/claude/repwatch/internal/engine"
	"github.com/claude/repwatch/internal/replay"
	"github.com/claude/repwatch/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	streamPath := flag.String("path", "", "path to directory of recorded .jsonl joint streams (required)")
	stateDir := flag.String("state-dir", "", "directory for the replay state db (default: <path>/.state)")
	exerciseID := flag.String("exercise", "", "exercise active at the start of each stream (default: engine.default_exercise)")
	dryRun := flag.Bool("dry-run", false, "report counts without recording sessions")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *streamPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: repwatch-replay -config config.yaml -path /path/to/streams [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*streamPath)
	if err != nil || !info.IsDir() {
		log.Error("stream path is not a directory", "path", *streamPath)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	startExercise := cfg.Engine.DefaultExercise
	if *exerciseID != "" {
		startExercise = *exerciseID
	}

	ctx := context.Background()

	// Dry runs never touch the database.
	var recorder engine.Recorder
	if !*dryRun {
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		recorder = storage.NewSessionRecorder(db)
	}

	dir := *stateDir
	if dir == "" {
		dir = filepath.Join(*streamPath, ".state")
	}
	state, err := replay.OpenStateDB(dir)
	if err != nil {
		log.Error("failed to open state db", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	rp := replay.New(recorder, state, startExercise, *dryRun, log)
	stats, err := rp.Replay(ctx, *streamPath)
	if err != nil {
		log.Error("replay failed", "error", err)
		os.Exit(1)
	}

	mode := "recorded"
	if *dryRun {
		mode = "dry-run"
	}
	log.Info("replay complete",
		"mode", mode,
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"frames", stats.FramesProcessed,
		"sessions", stats.SessionsRecorded,
		"reps", stats.RepsCounted,
	)
}
