// Package server provides the HTTP server for the DeskFit rep counter.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/engine"
	"github.com/EricPostMaster/DeskFit/internal/server/api"
	"github.com/EricPostMaster/DeskFit/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Engine    *engine.Engine
	Events    *EventsHandler
}

// Server represents the HTTP server for the DeskFit application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register history and goal APIs if Store is configured
	if s.config.Store != nil {
		workoutHandler := api.NewWorkoutHandler(s.config.Store)
		s.mux.Handle("/api/workouts", workoutHandler)
		s.mux.Handle("/api/workouts/", workoutHandler)

		goalHandler := api.NewGoalHandler(s.config.Store)
		s.mux.Handle("/api/goals", goalHandler)
		s.mux.Handle("/api/goals/", goalHandler)
	}

	// Register session control and video endpoints if the Engine is configured
	if s.config.Engine != nil {
		sessionHandler := api.NewSessionHandler(s.config.Engine)
		s.mux.Handle("/api/session", sessionHandler)

		streamHandler := NewStreamHandler(s.config.Engine)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register the rep-event WebSocket if an event hub is configured
	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
