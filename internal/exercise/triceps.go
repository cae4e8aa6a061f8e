package exercise

import (
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// TricepsExtensionDetector counts overhead triceps extensions
// independently per arm. The elbow must be held above eye level for the
// arm to be considered at all; within that gate the rep counts on the
// flexed-to-extended transition of the wrist relative to the elbow.
// Dropping the elbow below eye level abandons the arm's current cycle.
type TricepsExtensionDetector struct {
	left  edgeState
	right edgeState

	leftExtended  bool
	rightExtended bool
}

// NewTricepsExtensionDetector creates a triceps extension detector.
func NewTricepsExtensionDetector() *TricepsExtensionDetector {
	return &TricepsExtensionDetector{}
}

// Observe evaluates one smoothed pose sample.
func (d *TricepsExtensionDetector) Observe(p *pose.Pose, t time.Time) int {
	if p == nil {
		return 0
	}

	edges := 0
	if observeTricepsArm(p, pose.LeftWrist, pose.LeftElbow, pose.LeftEye, &d.left, &d.leftExtended) {
		edges++
	}
	if observeTricepsArm(p, pose.RightWrist, pose.RightElbow, pose.RightEye, &d.right, &d.rightExtended) {
		edges++
	}
	return edges
}

// observeTricepsArm evaluates one arm and reports whether it fired an
// edge this frame.
func observeTricepsArm(p *pose.Pose, wrist, elbow, eye pose.Landmark, edge *edgeState, extended *bool) bool {
	if !p.Has(wrist, elbow) {
		return false
	}

	eyeKP, ok := p.Get(eye)
	if !ok {
		// Fall back to the nose for eye level if that side's eye is
		// occluded.
		eyeKP, ok = p.Get(pose.Nose)
		if !ok {
			return false
		}
	}

	w, _ := p.Get(wrist)
	e, _ := p.Get(elbow)

	// Gate: the elbow must be held above eye level. Leaving the gate
	// invalidates the in-progress cycle.
	if e.Y >= eyeKP.Y {
		edge.reset()
		*extended = false
		return false
	}

	*extended = w.Y < e.Y
	return edge.rising(*extended)
}

// Engaged reports whether either arm is currently extended overhead.
func (d *TricepsExtensionDetector) Engaged() bool {
	return d.leftExtended || d.rightExtended
}

// Reset clears both arms for a new session.
func (d *TricepsExtensionDetector) Reset() {
	d.left.reset()
	d.right.reset()
	d.leftExtended = false
	d.rightExtended = false
}
