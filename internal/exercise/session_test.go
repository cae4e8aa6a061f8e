package exercise

import (
	"testing"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// stubDetector reports a scripted number of edges per Observe call,
// letting session tests exercise debounce and clamping without real
// pose geometry.
type stubDetector struct {
	edges   []int
	calls   int
	engaged bool
	resets  int
}

func (s *stubDetector) Observe(p *pose.Pose, t time.Time) int {
	if s.calls >= len(s.edges) {
		return 0
	}
	e := s.edges[s.calls]
	s.calls++
	return e
}

func (s *stubDetector) Engaged() bool { return s.engaged }
func (s *stubDetector) Reset()        { s.resets++ }

// newStubSession builds a session around a stub detector, bypassing the
// factory.
func newStubSession(target int, stub *stubDetector) *Session {
	return &Session{
		ID:        "test",
		Kind:      Squat,
		Target:    target,
		StartedAt: time.Now(),
		detector:  stub,
	}
}

func TestNewSession_ValidatesTarget(t *testing.T) {
	if _, err := NewSession(Squat, 0); err == nil {
		t.Error("expected error for zero target")
	}
	if _, err := NewSession(Squat, -3); err == nil {
		t.Error("expected error for negative target")
	}

	s, err := NewSession(BicepCurl, 10)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.ID == "" {
		t.Error("session should get an ID")
	}
	if s.Kind != BicepCurl || s.Target != 10 {
		t.Errorf("session = %s/%d, want bicep_curl/10", s.Kind, s.Target)
	}
}

func TestNewSession_UnknownKind(t *testing.T) {
	if _, err := NewSession(Kind("handstand"), 5); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSession_CountIsCappedAtTarget(t *testing.T) {
	stub := &stubDetector{edges: []int{1, 1, 1, 1, 1}}
	s := newStubSession(3, stub)

	// Edges arrive every 2 seconds, well past the debounce window.
	for i := 0; i < 5; i++ {
		s.Observe(nil, at(i*2000))
	}

	if s.Count() != 3 {
		t.Errorf("count = %d, want 3 (capped)", s.Count())
	}
	if !s.Complete() {
		t.Error("session should be complete at the cap")
	}
}

func TestSession_DebounceRejectsCloseEdges(t *testing.T) {
	stub := &stubDetector{edges: []int{1, 1}}
	s := newStubSession(10, stub)

	s.Observe(nil, at(0))
	// 500ms later: inside the 800ms window, the edge is dropped.
	if accepted := s.Observe(nil, at(500)); accepted != 0 {
		t.Errorf("edge at +500ms accepted %d reps", accepted)
	}
	if s.Count() != 1 {
		t.Errorf("count = %d, want 1", s.Count())
	}
}

func TestSession_DebounceAcceptsSpacedEdges(t *testing.T) {
	stub := &stubDetector{edges: []int{1, 1}}
	s := newStubSession(10, stub)

	s.Observe(nil, at(0))
	if accepted := s.Observe(nil, at(900)); accepted != 1 {
		t.Errorf("edge at +900ms accepted %d reps, want 1", accepted)
	}
	if s.Count() != 2 {
		t.Errorf("count = %d, want 2", s.Count())
	}
}

func TestSession_SimultaneousEdgesCollapse(t *testing.T) {
	// Both arms releasing in one frame report two edges; the debounce
	// window accepts only one.
	stub := &stubDetector{edges: []int{2}}
	s := newStubSession(10, stub)

	if accepted := s.Observe(nil, at(0)); accepted != 1 {
		t.Errorf("double edge accepted %d reps, want 1", accepted)
	}
}

func TestSession_EngagedPassthrough(t *testing.T) {
	stub := &stubDetector{engaged: true}
	s := newStubSession(5, stub)

	if !s.Engaged() {
		t.Error("session should report the detector's engaged state")
	}
}

func TestSession_Reset(t *testing.T) {
	stub := &stubDetector{edges: []int{1, 1}}
	s := newStubSession(5, stub)

	s.Observe(nil, at(0))
	s.Reset()

	if s.Count() != 0 {
		t.Errorf("count after reset = %d, want 0", s.Count())
	}
	if stub.resets != 1 {
		t.Errorf("detector resets = %d, want 1", stub.resets)
	}

	// The debounce clock restarts too: the next edge counts immediately.
	if accepted := s.Observe(nil, at(100)); accepted != 1 {
		t.Errorf("first edge after reset accepted %d reps, want 1", accepted)
	}
}

func TestSession_FeedsCalibrator(t *testing.T) {
	s, err := NewSession(Squat, 5)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	standing := squatPose(300)
	for i := 0; i < 5; i++ {
		s.Observe(standing, at(i*100))
	}

	sd, ok := s.Detector().(*SquatDetector)
	if !ok {
		t.Fatal("squat session should use the squat detector")
	}
	if !sd.Calibration().Captured() {
		t.Error("session should feed stable frames to the calibration store")
	}
}
