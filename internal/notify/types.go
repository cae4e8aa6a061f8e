// Package notify delivers session events to external notifier plugins.
// A plugin is a directory with a plugin.json manifest and an executable
// that receives one JSON event on stdin and answers with JSON on stdout.
package notify

import "encoding/json"

// Manifest describes a notifier plugin's metadata and subscriptions.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Events       []string        `json:"events"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request represents one session event sent to a plugin.
type Request struct {
	Event    string          `json:"event"` // "started", "rep", "complete", "stopped"
	Exercise string          `json:"exercise"`
	Count    int             `json:"count"`
	Target   int             `json:"target"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Subscribed reports whether the plugin wants the given event. An empty
// subscription list means every event.
func (p *Plugin) Subscribed(event string) bool {
	if len(p.Manifest.Events) == 0 {
		return true
	}
	for _, e := range p.Manifest.Events {
		if e == event {
			return true
		}
	}
	return false
}
