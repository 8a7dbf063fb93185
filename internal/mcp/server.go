// Package mcp exposes session history and the exercise catalog to LLM
// clients over the Model Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/claude/repwatch/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepWatch", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepWatch exercise tracking server. Query recorded rep-counting sessions, per-exercise statistics, and the exercise catalog with counting thresholds and form rules."),
	)

	h := &handlers{db: db, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetSessionStats, Handler: h.getSessionStats},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}

// --- Resource definitions ---

var resExerciseCatalog = mcp.NewResource(
	"repwatch://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All registered exercises with joint indices, counting thresholds, debounce length, and form rules"),
	mcp.WithMIMEType("application/json"),
)

var resRecentSessions = mcp.NewResource(
	"repwatch://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Rep-counting sessions recorded in the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
