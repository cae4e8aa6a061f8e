package pose

import (
	"fmt"
	"os"
	"path/filepath"
)

// Provider describes one way to start the pose-estimation service. Providers
// are tried in order; the first whose script exists on disk wins.
type Provider struct {
	Name    string
	Script  string
	Variant string
}

// ResolveProvider walks the provider chain for the configured variant and
// returns the first usable entry. If the preferred variant is not installed
// anywhere, the alternate variant is tried before giving up. Only when the
// whole chain is exhausted does it report ErrModelUnavailable.
func ResolveProvider(config Config) (Provider, error) {
	variants := []string{config.Variant, alternateVariant(config.Variant)}

	for _, variant := range variants {
		for _, candidate := range scriptCandidates() {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			absPath, err := filepath.Abs(candidate)
			if err != nil {
				absPath = candidate
			}
			return Provider{
				Name:    fmt.Sprintf("movenet-%s", variant),
				Script:  absPath,
				Variant: variant,
			}, nil
		}
	}

	return Provider{}, fmt.Errorf("%w: movenet_service.py not found for variant %q or its alternate",
		ErrModelUnavailable, config.Variant)
}

// alternateVariant returns the fallback model variant.
func alternateVariant(variant string) string {
	if variant == "thunder" {
		return "lightning"
	}
	return "thunder"
}

// scriptCandidates lists the locations searched for the service script,
// most specific first.
func scriptCandidates() []string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	return []string{
		"scripts/movenet_service.py",
		"../scripts/movenet_service.py",
		filepath.Join(execDir, "scripts/movenet_service.py"),
		filepath.Join(os.Getenv("HOME"), ".deskfit/scripts/movenet_service.py"),
	}
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".deskfit/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}
