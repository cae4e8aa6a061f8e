package notify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeRecordingPlugin creates a plugin under root that appends each
// received event line to a log file next to its script.
func writeRecordingPlugin(t *testing.T, root, name string, events []string) string {
	t.Helper()

	pluginDir := filepath.Join(root, name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	script := `#!/bin/sh
cat >> events.log
echo '{"success":true}'
`
	if err := os.WriteFile(filepath.Join(pluginDir, name+".sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	manifest := Manifest{
		Name:       name,
		Version:    "1.0.0",
		Executable: name + ".sh",
		Events:     events,
	}
	manifestBytes, _ := json.Marshal(manifest)
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), manifestBytes, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	return filepath.Join(pluginDir, "events.log")
}

func TestDispatcher_RoutesBySubscription(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	repLog := writeRecordingPlugin(t, tmpDir, "rep-notifier", []string{"rep"})
	completeLog := writeRecordingPlugin(t, tmpDir, "complete-notifier", []string{"complete"})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	dispatcher := NewDispatcher(manager, NewExecutor(5000))

	dispatcher.Dispatch(&Request{Event: "rep", Exercise: "squat", Count: 1, Target: 10})

	// Only the rep subscriber saw the event.
	repData, err := os.ReadFile(repLog)
	if err != nil || len(repData) == 0 {
		t.Errorf("rep subscriber should have received the event: %v", err)
	}
	if _, err := os.Stat(completeLog); !os.IsNotExist(err) {
		t.Error("complete subscriber should not have received a rep event")
	}

	var received Request
	if err := json.Unmarshal(repData, &received); err != nil {
		t.Fatalf("failed to parse recorded event: %v", err)
	}
	if received.Exercise != "squat" || received.Count != 1 {
		t.Errorf("recorded event = %+v, want squat count 1", received)
	}
}

func TestDispatcher_SurvivesBrokenPlugin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()

	// A plugin that always crashes.
	pluginDir := filepath.Join(tmpDir, "broken-notifier")
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "broken.sh"), []byte("#!/bin/sh\nexit 1\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	manifestBytes, _ := json.Marshal(Manifest{Name: "broken-notifier", Executable: "broken.sh"})
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), manifestBytes, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	dispatcher := NewDispatcher(manager, NewExecutor(1000))

	// Must not panic or return anything; the failure is logged.
	dispatcher.Dispatch(&Request{Event: "rep", Exercise: "squat", Count: 1, Target: 10})
}
