package exercise

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// DebounceWindow is the minimum time between two accepted rep events in a
// session. It suppresses double counts from a single motion straddling a
// frame boundary or jitter near a threshold.
const DebounceWindow = 800 * time.Millisecond

// Session tracks one exercise run: the active detector plus the counted
// reps. It is the single authority over the count: detectors report
// qualifying edges, the session applies the debounce window and the
// target cap, so the count is monotonic and never exceeds the target.
// A session is owned by one detection loop and is not safe for concurrent
// use.
type Session struct {
	ID        string
	Kind      Kind
	Target    int
	StartedAt time.Time

	detector Detector
	count    int
	lastRep  time.Time
}

// NewSession creates a session for the given exercise and rep target.
func NewSession(kind Kind, target int) (*Session, error) {
	if target <= 0 {
		return nil, fmt.Errorf("target must be positive, got %d", target)
	}

	detector, err := NewDetector(kind)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        uuid.New().String(),
		Kind:      kind,
		Target:    target,
		StartedAt: time.Now(),
		detector:  detector,
	}, nil
}

// Observe runs one smoothed pose sample through calibration and the
// detector, then applies debounce and clamping. Returns the number of
// reps accepted this frame (0 or 1 in practice; a second simultaneous
// edge always lands inside the debounce window).
func (s *Session) Observe(p *pose.Pose, t time.Time) int {
	if c, ok := s.detector.(Calibrator); ok {
		c.Calibrate(p)
	}

	edges := s.detector.Observe(p, t)

	accepted := 0
	for i := 0; i < edges; i++ {
		if s.count >= s.Target {
			break
		}
		if !s.lastRep.IsZero() && t.Sub(s.lastRep) < DebounceWindow {
			break
		}
		s.count++
		s.lastRep = t
		accepted++
	}
	return accepted
}

// Count returns the accepted rep count.
func (s *Session) Count() int {
	return s.count
}

// Complete reports whether the target has been reached.
func (s *Session) Complete() bool {
	return s.count >= s.Target
}

// Detector returns the active detector, e.g. for overlay state queries.
func (s *Session) Detector() Detector {
	return s.detector
}

// Engaged reports the detector's current target-pose state, false if the
// detector does not report state.
func (s *Session) Engaged() bool {
	if r, ok := s.detector.(StateReporter); ok {
		return r.Engaged()
	}
	return false
}

// Reset clears the count and all detector state so the session restarts
// clean.
func (s *Session) Reset() {
	s.count = 0
	s.lastRep = time.Time{}
	s.detector.Reset()
}
