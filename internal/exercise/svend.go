package exercise

import (
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// svendExtendFactor scales the shoulder-to-elbow length into the
// wrist-to-shoulder distance that counts as pressed out.
const svendExtendFactor = 1.5

// SvendPressDetector counts Svend chest presses. The press is bilateral
// with a latch: reaching the extended position with either arm arms the
// rep, and it is credited only when both wrists have retracted back
// within the threshold. The distinct enter/exit conditions are the
// hysteresis that keeps partial presses from double counting.
type SvendPressDetector struct {
	// ExtendFactor scales each arm's shoulder-to-elbow length into its
	// extension threshold.
	ExtendFactor float64

	extendedLatched bool
}

// NewSvendPressDetector creates a Svend chest press detector.
func NewSvendPressDetector() *SvendPressDetector {
	return &SvendPressDetector{ExtendFactor: svendExtendFactor}
}

// Observe evaluates one smoothed pose sample.
func (d *SvendPressDetector) Observe(p *pose.Pose, t time.Time) int {
	if p == nil || !p.Has(pose.LeftWrist, pose.RightWrist, pose.LeftShoulder, pose.RightShoulder,
		pose.LeftElbow, pose.RightElbow) {
		return 0
	}

	lw, _ := p.Get(pose.LeftWrist)
	rw, _ := p.Get(pose.RightWrist)
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)
	le, _ := p.Get(pose.LeftElbow)
	re, _ := p.Get(pose.RightElbow)

	// Each arm's threshold scales with its own upper-arm length.
	leftOut := pose.Distance(lw, ls) > d.ExtendFactor*pose.Distance(ls, le)
	rightOut := pose.Distance(rw, rs) > d.ExtendFactor*pose.Distance(rs, re)

	if leftOut || rightOut {
		d.extendedLatched = true
		return 0
	}
	// Both arms retracted.
	if d.extendedLatched {
		d.extendedLatched = false
		return 1
	}
	return 0
}

// Engaged reports whether the press is currently extended and awaiting
// retraction.
func (d *SvendPressDetector) Engaged() bool {
	return d.extendedLatched
}

// Reset clears the latch for a new session.
func (d *SvendPressDetector) Reset() {
	d.extendedLatched = false
}
