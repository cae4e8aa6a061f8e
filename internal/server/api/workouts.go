// Package api provides HTTP API handlers for the DeskFit rep counter.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/EricPostMaster/DeskFit/internal/store"
)

// WorkoutHandler handles HTTP requests for workout history.
type WorkoutHandler struct {
	store *store.Store
}

// NewWorkoutHandler creates a new WorkoutHandler with the given store.
func NewWorkoutHandler(s *store.Store) *WorkoutHandler {
	return &WorkoutHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *WorkoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/workouts or /api/workouts/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/workouts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/workouts
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/workouts/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type workoutResponse struct {
	ID        string `json:"id"`
	Exercise  string `json:"exercise"`
	Target    int    `json:"target"`
	Reps      int    `json:"reps"`
	Completed bool   `json:"completed"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
}

type listWorkoutsResponse struct {
	Workouts []workoutResponse `json:"workouts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toWorkoutResponse converts a store.Workout to a workoutResponse.
func toWorkoutResponse(w *store.Workout) workoutResponse {
	return workoutResponse{
		ID:        w.ID,
		Exercise:  w.Exercise,
		Target:    w.Target,
		Reps:      w.Reps,
		Completed: w.Completed,
		StartedAt: w.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		EndedAt:   w.EndedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/workouts and returns recent workouts, newest
// first. An optional ?limit=N query caps the result.
func (h *WorkoutHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	workouts, err := h.store.Workouts().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workouts")
		return
	}

	response := listWorkoutsResponse{Workouts: make([]workoutResponse, 0, len(workouts))}
	for _, workout := range workouts {
		response.Workouts = append(response.Workouts, toWorkoutResponse(workout))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/workouts/{id}.
func (h *WorkoutHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	workout, err := h.store.Workouts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get workout")
		return
	}

	writeJSON(w, http.StatusOK, toWorkoutResponse(workout))
}

// delete handles DELETE /api/workouts/{id}.
func (h *WorkoutHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Workouts().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete workout")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
