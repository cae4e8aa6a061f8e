package exercise

import (
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// OverheadDetector counts exercises whose rep peaks with both wrists
// raised above their respective shoulders: shoulder press, lateral raise,
// jumping jack and low-to-high chest fly. The natural rest position is
// arms-down, so the rep counts on the rising edge into the target pose.
type OverheadDetector struct {
	edge    edgeState
	engaged bool
}

// NewOverheadDetector creates the detector shared by the wrists-over-
// shoulders exercise family.
func NewOverheadDetector() *OverheadDetector {
	return &OverheadDetector{}
}

// Observe evaluates one smoothed pose sample.
func (d *OverheadDetector) Observe(p *pose.Pose, t time.Time) int {
	if p == nil || !p.Has(pose.LeftWrist, pose.RightWrist, pose.LeftShoulder, pose.RightShoulder) {
		return 0
	}

	lw, _ := p.Get(pose.LeftWrist)
	rw, _ := p.Get(pose.RightWrist)
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)

	// Smaller y is higher on screen.
	raised := lw.Y < ls.Y && rw.Y < rs.Y
	d.engaged = raised

	if d.edge.rising(raised) {
		return 1
	}
	return 0
}

// Engaged reports whether both wrists are currently above the shoulders.
func (d *OverheadDetector) Engaged() bool {
	return d.engaged
}

// Reset clears the detector for a new session.
func (d *OverheadDetector) Reset() {
	d.edge.reset()
	d.engaged = false
}
