// Package main provides a sound notifier plugin for macOS.
// It speaks rep counts and completion announcements via the `say` command.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request represents the event from the notify dispatcher.
type Request struct {
	Event    string          `json:"event"`
	Exercise string          `json:"exercise"`
	Count    int             `json:"count"`
	Target   int             `json:"target"`
	Config   json.RawMessage `json:"config"`
}

// Response represents the output to the notify dispatcher.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SoundConfig defines optional plugin configuration.
type SoundConfig struct {
	Voice string `json:"voice"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var cfg SoundConfig
	if len(req.Config) > 0 {
		json.Unmarshal(req.Config, &cfg)
	}

	phrase := phraseFor(&req)
	if phrase == "" {
		writeErrorResponse(fmt.Sprintf("unknown event: %s", req.Event))
		return
	}

	if err := speak(phrase, cfg.Voice); err != nil {
		writeErrorResponse(fmt.Sprintf("event %s failed: %v", req.Event, err))
		return
	}

	writeSuccessResponse()
}

// phraseFor picks the spoken phrase for an event.
func phraseFor(req *Request) string {
	switch req.Event {
	case "rep":
		// Speaking just the number keeps up with fast rep cadences.
		return fmt.Sprintf("%d", req.Count)
	case "complete":
		return fmt.Sprintf("Done! %d reps complete.", req.Count)
	case "started":
		return fmt.Sprintf("Starting %d reps.", req.Target)
	case "stopped":
		return "Session stopped."
	default:
		return ""
	}
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// speak runs the macOS `say` command with an optional voice.
func speak(phrase, voice string) error {
	args := []string{}
	if voice != "" {
		args = append(args, "-v", voice)
	}
	args = append(args, phrase)

	cmd := exec.Command("say", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
