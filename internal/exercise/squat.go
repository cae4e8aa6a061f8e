package exercise

import (
	"math"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// Squat depth tuning. The waist sits halfway down the torso from the
// shoulders; a rep requires the hips to sink a further fraction of the
// torso length below it.
const (
	squatWaistFactor = 0.5
	squatDepthFactor = 0.2
)

// SquatDetector counts squats against a calibrated standing baseline. The
// rep counts on the rising edge of "hips below depth threshold". Until the
// calibration captures, the current frame's shoulder height and torso
// length serve as a provisional baseline.
type SquatDetector struct {
	// DepthFactor is the fraction of torso length the hips must drop
	// below the waist line for a rep.
	DepthFactor float64

	calibration *Calibration
	edge        edgeState
	engaged     bool

	// Threshold snapshot from the last evaluated frame, for the overlay.
	lastThresholdY float64
}

// NewSquatDetector creates a squat detector with an empty calibration.
func NewSquatDetector() *SquatDetector {
	return &SquatDetector{
		DepthFactor: squatDepthFactor,
		calibration: NewCalibration(),
	}
}

// Calibrate feeds one frame's shoulder/hip measurements to the baseline
// capture. Called by the session before Observe on every frame.
func (d *SquatDetector) Calibrate(p *pose.Pose) {
	if p == nil || !p.Has(pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip) {
		return
	}
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)
	lh, _ := p.Get(pose.LeftHip)
	rh, _ := p.Get(pose.RightHip)

	d.calibration.Observe(pose.MidY(ls, rs), pose.MidY(lh, rh))
}

// Observe evaluates one smoothed pose sample.
func (d *SquatDetector) Observe(p *pose.Pose, t time.Time) int {
	if p == nil || !p.Has(pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip) {
		return 0
	}

	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)
	lh, _ := p.Get(pose.LeftHip)
	rh, _ := p.Get(pose.RightHip)

	avgShoulderY := pose.MidY(ls, rs)
	avgHipY := pose.MidY(lh, rh)
	currentTorso := math.Abs(avgShoulderY - avgHipY)

	baseShoulderY, baseTorso := d.calibration.Baseline(avgShoulderY, currentTorso)

	waistY := baseShoulderY + squatWaistFactor*baseTorso
	thresholdY := waistY + d.DepthFactor*baseTorso
	d.lastThresholdY = thresholdY

	deep := avgHipY >= thresholdY
	d.engaged = deep

	if d.edge.rising(deep) {
		return 1
	}
	return 0
}

// Engaged reports whether the hips are currently below the depth
// threshold.
func (d *SquatDetector) Engaged() bool {
	return d.engaged
}

// Calibration exposes the baseline store, mainly for the overlay and
// tests.
func (d *SquatDetector) Calibration() *Calibration {
	return d.calibration
}

// ThresholdY returns the depth threshold from the last evaluated frame,
// in intrinsic image coordinates. Zero until the first evaluation.
func (d *SquatDetector) ThresholdY() float64 {
	return d.lastThresholdY
}

// Reset clears detector and calibration state for a new session.
func (d *SquatDetector) Reset() {
	d.edge.reset()
	d.engaged = false
	d.lastThresholdY = 0
	d.calibration.Reset()
}
