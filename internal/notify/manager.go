package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrPluginNotFound is returned by Get for names no discovered notifier
// carries.
var ErrPluginNotFound = errors.New("notifier plugin not found")

// Manager holds the set of discovered notifier plugins. Discover may be
// called again at any time to pick up newly installed notifiers.
type Manager struct {
	pluginDir string

	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewManager creates a manager rooted at pluginDir. Nothing is loaded
// until Discover runs.
func NewManager(pluginDir string) *Manager {
	return &Manager{
		pluginDir: pluginDir,
		plugins:   make(map[string]*Plugin),
	}
}

// Discover rebuilds the notifier set from the plugin directory. Every
// subdirectory holding a plugin.json manifest becomes one notifier;
// unreadable or malformed manifests are skipped so one broken install
// cannot take out the rest. A missing plugin directory is not an error,
// it just means no notifiers.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plugins = make(map[string]*Plugin)

	info, err := os.Stat(m.pluginDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat plugin dir: %w", err)
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(m.pluginDir)
	if err != nil {
		return fmt.Errorf("read plugin dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if p := loadPlugin(filepath.Join(m.pluginDir, entry.Name())); p != nil {
			m.plugins[p.Manifest.Name] = p
		}
	}

	return nil
}

// loadPlugin reads one notifier directory, returning nil when it holds
// no usable manifest.
func loadPlugin(dir string) *Plugin {
	raw, err := os.ReadFile(filepath.Join(dir, "plugin.json"))
	if err != nil {
		return nil
	}

	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil
	}
	if manifest.Name == "" {
		return nil
	}

	return &Plugin{
		Manifest:   manifest,
		Path:       dir,
		Executable: filepath.Join(dir, manifest.Executable),
	}
}

// Get returns the notifier with the given manifest name, or
// ErrPluginNotFound.
func (m *Manager) Get(name string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plugins[name]
	if !ok {
		return nil, ErrPluginNotFound
	}
	return p, nil
}

// List returns every discovered notifier.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		out = append(out, p)
	}
	return out
}

// PluginDir returns the directory Discover scans.
func (m *Manager) PluginDir() string {
	return m.pluginDir
}
