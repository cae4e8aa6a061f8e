package exercise

import (
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// BicepCurlDetector counts curls independently per arm. A curl starts
// from tension at the bottom, so the rep is credited on the falling edge:
// the wrist rising above the elbow enters the curl, and only the return
// below the elbow completes the concentric+eccentric cycle.
type BicepCurlDetector struct {
	left  edgeState
	right edgeState

	leftCurled  bool
	rightCurled bool
}

// NewBicepCurlDetector creates a bicep curl detector.
func NewBicepCurlDetector() *BicepCurlDetector {
	return &BicepCurlDetector{}
}

// Observe evaluates one smoothed pose sample. Each arm is evaluated on
// its own; a frame may report up to two edges when both arms release
// together.
func (d *BicepCurlDetector) Observe(p *pose.Pose, t time.Time) int {
	if p == nil {
		return 0
	}

	edges := 0
	if fired, curled, ok := observeCurlArm(p, pose.LeftWrist, pose.LeftElbow, &d.left); ok {
		d.leftCurled = curled
		if fired {
			edges++
		}
	}
	if fired, curled, ok := observeCurlArm(p, pose.RightWrist, pose.RightElbow, &d.right); ok {
		d.rightCurled = curled
		if fired {
			edges++
		}
	}
	return edges
}

// observeCurlArm evaluates one arm. ok is false when the arm's landmarks
// are missing this frame, leaving its state untouched.
func observeCurlArm(p *pose.Pose, wrist, elbow pose.Landmark, edge *edgeState) (fired, curled, ok bool) {
	if !p.Has(wrist, elbow) {
		return false, false, false
	}

	w, _ := p.Get(wrist)
	e, _ := p.Get(elbow)

	curled = w.Y < e.Y
	return edge.falling(curled), curled, true
}

// Engaged reports whether either arm is currently curled.
func (d *BicepCurlDetector) Engaged() bool {
	return d.leftCurled || d.rightCurled
}

// Reset clears both arms for a new session.
func (d *BicepCurlDetector) Reset() {
	d.left.reset()
	d.right.reset()
	d.leftCurled = false
	d.rightCurled = false
}
