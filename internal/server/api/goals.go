package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EricPostMaster/DeskFit/internal/exercise"
	"github.com/EricPostMaster/DeskFit/internal/store"
)

// GoalHandler handles HTTP requests for daily exercise goals.
type GoalHandler struct {
	store *store.Store
}

// NewGoalHandler creates a new GoalHandler with the given store.
func NewGoalHandler(s *store.Store) *GoalHandler {
	return &GoalHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *GoalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/goals or /api/goals/{exercise}
	path := strings.TrimPrefix(r.URL.Path, "/api/goals")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/goals
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.set(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/goals/{exercise}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, path)
	case http.MethodDelete:
		h.delete(w, r, path)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type setGoalRequest struct {
	Exercise  string `json:"exercise"`
	DailyReps int    `json:"daily_reps"`
}

type goalResponse struct {
	ID        string `json:"id"`
	Exercise  string `json:"exercise"`
	DailyReps int    `json:"daily_reps"`
	RepsToday int    `json:"reps_today"`
}

type listGoalsResponse struct {
	Goals []goalResponse `json:"goals"`
}

// toGoalResponse converts a store.Goal plus today's progress.
func (h *GoalHandler) toGoalResponse(g *store.Goal) goalResponse {
	resp := goalResponse{
		ID:        g.ID,
		Exercise:  g.Exercise,
		DailyReps: g.DailyReps,
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if reps, err := h.store.Workouts().RepsSince(g.Exercise, midnight); err == nil {
		resp.RepsToday = reps
	}

	return resp
}

// list handles GET /api/goals and returns all goals with today's progress.
func (h *GoalHandler) list(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.Goals().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}

	response := listGoalsResponse{Goals: make([]goalResponse, 0, len(goals))}
	for _, g := range goals {
		response.Goals = append(response.Goals, h.toGoalResponse(g))
	}

	writeJSON(w, http.StatusOK, response)
}

// set handles POST /api/goals, creating or replacing the goal for an
// exercise.
func (h *GoalHandler) set(w http.ResponseWriter, r *http.Request) {
	var req setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := exercise.ParseKind(req.Exercise); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown exercise")
		return
	}
	if req.DailyReps <= 0 {
		writeError(w, http.StatusBadRequest, "daily_reps must be positive")
		return
	}

	g := &store.Goal{
		ID:        uuid.New().String(),
		Exercise:  req.Exercise,
		DailyReps: req.DailyReps,
	}
	if err := h.store.Goals().Set(g); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save goal")
		return
	}

	writeJSON(w, http.StatusCreated, h.toGoalResponse(g))
}

// get handles GET /api/goals/{exercise}.
func (h *GoalHandler) get(w http.ResponseWriter, r *http.Request, exerciseName string) {
	g, err := h.store.Goals().GetByExercise(exerciseName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get goal")
		return
	}

	writeJSON(w, http.StatusOK, h.toGoalResponse(g))
}

// delete handles DELETE /api/goals/{exercise}.
func (h *GoalHandler) delete(w http.ResponseWriter, r *http.Request, exerciseName string) {
	if err := h.store.Goals().Delete(exerciseName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
