package api

import (
	"encoding/json"
	"net/http"

	"github.com/EricPostMaster/DeskFit/internal/engine"
	"github.com/EricPostMaster/DeskFit/internal/exercise"
)

// SessionHandler controls the active rep-counting session.
type SessionHandler struct {
	engine *engine.Engine
}

// NewSessionHandler creates a new SessionHandler with the given engine.
func NewSessionHandler(e *engine.Engine) *SessionHandler {
	return &SessionHandler{engine: e}
}

type startSessionRequest struct {
	Exercise string `json:"exercise"`
	Target   int    `json:"target"`
}

// ServeHTTP implements the http.Handler interface.
// POST starts a session, GET returns its status, DELETE stops it.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.start(w, r)
	case http.MethodGet:
		h.status(w, r)
	case http.MethodDelete:
		h.stop(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// start handles POST /api/session.
func (h *SessionHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, err := exercise.ParseKind(req.Exercise)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown exercise")
		return
	}
	if req.Target <= 0 {
		writeError(w, http.StatusBadRequest, "target must be positive")
		return
	}

	status, err := h.engine.StartSession(kind, req.Target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	writeJSON(w, http.StatusCreated, status)
}

// status handles GET /api/session.
func (h *SessionHandler) status(w http.ResponseWriter, r *http.Request) {
	status, err := h.engine.Status()
	if err != nil {
		writeError(w, http.StatusNotFound, "No active session")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// stop handles DELETE /api/session.
func (h *SessionHandler) stop(w http.ResponseWriter, r *http.Request) {
	h.engine.StopSession()
	writeJSON(w, http.StatusNoContent, nil)
}
