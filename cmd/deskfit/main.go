package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/EricPostMaster/DeskFit/internal/engine"
	"github.com/EricPostMaster/DeskFit/internal/notify"
	"github.com/EricPostMaster/DeskFit/internal/server"
	"github.com/EricPostMaster/DeskFit/internal/store"
	"github.com/EricPostMaster/DeskFit/internal/tray"
)

const defaultAddr = ":8080"

func main() {
	fmt.Println("DeskFit - Desk Exercise Rep Counter")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".deskfit")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "deskfit.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Discover notifier plugins
	manager := notify.NewManager(filepath.Join(dataDir, "plugins"))
	if err := manager.Discover(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}
	dispatcher := notify.NewDispatcher(manager, notify.NewExecutor(5000))

	// Event hub for WebSocket clients
	events := server.NewEventsHandler()

	// Build the pipeline and wire session events to the tray, the
	// WebSocket hub and the notifier plugins
	eng, err := engine.New(engine.Config{
		Store:    st,
		CameraID: cameraID(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize pose estimation: %v", err)
	}

	if v, err := st.Settings().Get("overlay"); err == nil {
		eng.SetOverlay(v != "off")
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to read overlay setting: %v", err)
	}

	tr := tray.New()

	notifyAll := func(event string, status engine.SessionStatus) {
		events.Broadcast(event, status)
		dispatcher.Dispatch(&notify.Request{
			Event:    event,
			Exercise: string(status.Exercise),
			Count:    status.Count,
			Target:   status.Target,
		})
	}

	eng.OnStart = func(status engine.SessionStatus) {
		tr.SetProgress(string(status.Exercise), status.Count, status.Target)
		notifyAll("started", status)
	}
	eng.OnRep = func(status engine.SessionStatus) {
		tr.SetProgress(string(status.Exercise), status.Count, status.Target)
		notifyAll("rep", status)
	}
	eng.OnComplete = func(status engine.SessionStatus) {
		tr.SetProgress("", 0, 0)
		notifyAll("complete", status)
	}
	eng.OnStop = func(status engine.SessionStatus) {
		tr.SetProgress("", 0, 0)
		notifyAll("stopped", status)
	}

	if err := eng.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer eng.Stop()

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start the HTTP server
	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Engine:    eng,
		Events:    events,
	})

	addr := os.Getenv("DESKFIT_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main goroutine; quitting it shuts everything down
	tr.OnToggle(func(enabled bool) {
		eng.SetEnabled(enabled)
	})
	tr.OnDashboard(func() {
		openBrowser("http://localhost" + addr)
	})
	tr.OnQuit(func() {
		eng.Stop()
	})

	tr.Run()
}

// cameraID reads the capture device index from DESKFIT_CAMERA,
// defaulting to device 0.
func cameraID() int {
	raw := os.Getenv("DESKFIT_CAMERA")
	if raw == "" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		log.Printf("Ignoring invalid DESKFIT_CAMERA=%q", raw)
		return 0
	}
	return id
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.deskfit/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".deskfit", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the URL with the platform opener. Failures are
// logged, not fatal.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch {
	case fileExists("/usr/bin/open"):
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
