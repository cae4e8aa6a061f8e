package exercise

import (
	"math"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// kneeRaiseAllowance is the fraction of torso length a knee may sit below
// its hip and still count as raised, absorbing estimator noise around hip
// height.
const kneeRaiseAllowance = 0.08

// KneeRaiseDetector counts standing knee raises. The target pose is
// exactly one knee lifted to hip height (XOR of the two legs, so a jump
// with both knees up does not count). The edge is evaluated on the whole
// pose, not per leg: alternating legs produce one edge per raise.
type KneeRaiseDetector struct {
	// Allowance is the torso-length fraction granted below the hip line.
	Allowance float64

	edge    edgeState
	engaged bool
}

// NewKneeRaiseDetector creates a knee raise detector.
func NewKneeRaiseDetector() *KneeRaiseDetector {
	return &KneeRaiseDetector{Allowance: kneeRaiseAllowance}
}

// Observe evaluates one smoothed pose sample.
func (d *KneeRaiseDetector) Observe(p *pose.Pose, t time.Time) int {
	if p == nil || !p.Has(pose.LeftKnee, pose.RightKnee, pose.LeftHip, pose.RightHip,
		pose.LeftShoulder, pose.RightShoulder) {
		return 0
	}

	lk, _ := p.Get(pose.LeftKnee)
	rk, _ := p.Get(pose.RightKnee)
	lh, _ := p.Get(pose.LeftHip)
	rh, _ := p.Get(pose.RightHip)
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)

	torso := math.Abs(pose.MidY(ls, rs) - pose.MidY(lh, rh))
	allowance := d.Allowance * torso

	leftRaised := lk.Y < lh.Y+allowance
	rightRaised := rk.Y < rh.Y+allowance

	raised := leftRaised != rightRaised // exactly one knee up
	d.engaged = raised

	if d.edge.rising(raised) {
		return 1
	}
	return 0
}

// Engaged reports whether exactly one knee is currently raised.
func (d *KneeRaiseDetector) Engaged() bool {
	return d.engaged
}

// Reset clears the detector for a new session.
func (d *KneeRaiseDetector) Reset() {
	d.edge.reset()
	d.engaged = false
}
