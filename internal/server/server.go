// Package server exposes the counting pipeline and session history over
// HTTP.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/claude/repwatch/internal/engine"
	"github.com/claude/repwatch/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers. The tracker is single-writer
// by contract, so every access to it goes through mu: HTTP concurrency ends
// at the transport boundary and frames are processed strictly one at a time.
type Server struct {
	db      *storage.DB
	tracker *engine.Tracker
	mu      sync.Mutex
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, tracker *engine.Tracker, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		tracker: tracker,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Live stream endpoints. Mutations require the API key; the read-only
	// projection does not.
	s.router.Route("/api/v1/stream", func(r chi.Router) {
		r.Get("/state", s.handleStreamState)

		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/frames", s.handleProcessFrame)
			r.Post("/exercise", s.handleSelectExercise)
			r.Post("/reset", s.handleReset)
		})
	})

	// Catalog and history endpoints
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/sessions", s.handleQuerySessions)
	s.router.Get("/api/v1/sessions/stats", s.handleSessionStats)
}
