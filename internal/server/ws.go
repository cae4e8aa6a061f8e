package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/EricPostMaster/DeskFit/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Event is one session update pushed to WebSocket clients.
type Event struct {
	Type      string               `json:"type"` // "started", "rep", "complete", "stopped"
	Session   engine.SessionStatus `json:"session"`
	Timestamp int64                `json:"timestamp"`
}

// EventsHandler pushes rep-count events to WebSocket clients as they
// happen. The engine's callbacks feed Broadcast.
type EventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates an event hub with no clients.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast sends one event to every connected client. Callbacks fire
// from both the pipeline goroutine and HTTP handlers, and gorilla
// connections allow only one writer at a time, so broadcasts take the
// write lock.
func (h *EventsHandler) Broadcast(eventType string, status engine.SessionStatus) {
	msg, err := json.Marshal(Event{
		Type:      eventType,
		Session:   status,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected clients.
func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
