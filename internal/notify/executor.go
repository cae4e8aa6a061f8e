package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimeout is returned when a notifier does not answer within the
// executor's per-execution budget.
var ErrTimeout = errors.New("notifier timed out")

// Executor runs notifier plugins as one-shot subprocesses. A hung
// notifier is killed when the budget runs out, so a broken plugin can
// delay event delivery but never wedge it.
type Executor struct {
	timeoutMs int
}

// NewExecutor creates an executor with the given per-execution budget
// in milliseconds.
func NewExecutor(timeoutMs int) *Executor {
	return &Executor{timeoutMs: timeoutMs}
}

// Execute delivers one event to a notifier: the request goes in as JSON
// on stdin, the notifier answers with a Response on stdout. The process
// runs with the plugin directory as its working directory so notifiers
// can ship sound files or other assets next to their executable.
func (e *Executor) Execute(plugin *Plugin, req *Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(e.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, plugin.Executable)
	cmd.Dir = plugin.Path
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w after %dms", ErrTimeout, e.timeoutMs)
	}
	if runErr != nil {
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("notifier %s: %w: %s", plugin.Manifest.Name, runErr, msg)
		}
		return nil, fmt.Errorf("notifier %s: %w", plugin.Manifest.Name, runErr)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("notifier %s: bad response %q: %w", plugin.Manifest.Name, stdout.String(), err)
	}
	return &resp, nil
}
