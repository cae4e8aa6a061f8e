package exercise

import (
	"math"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// Band pull-apart tuning. The wide and narrow conditions use different
// geometry on purpose: hysteresis keeps threshold flicker from re-arming
// the latch before the arms have genuinely returned.
const (
	bandWideFactor   = 1.9 // wrist separation vs shoulder width
	bandHeightFactor = 0.5 // wrist height tolerance vs torso length
	bandNarrowFactor = 2.0 // wrist-to-shoulder distance vs half shoulder width
)

// BandPullApartDetector counts band pull-aparts. The rep is a full cycle:
// reach the wide position (wrists pulled far apart at shoulder height),
// then bring both wrists back close to their shoulders. The wide state is
// latched so oscillation around either threshold cannot double count.
type BandPullApartDetector struct {
	// WideFactor scales shoulder width into the minimum wrist
	// separation for the wide position.
	WideFactor float64
	// NarrowFactor scales half the shoulder width into the maximum
	// wrist-to-shoulder distance for the return position.
	NarrowFactor float64

	wideLatched bool
}

// NewBandPullApartDetector creates a band pull-apart detector.
func NewBandPullApartDetector() *BandPullApartDetector {
	return &BandPullApartDetector{
		WideFactor:   bandWideFactor,
		NarrowFactor: bandNarrowFactor,
	}
}

// Observe evaluates one smoothed pose sample.
func (d *BandPullApartDetector) Observe(p *pose.Pose, t time.Time) int {
	if p == nil || !p.Has(pose.LeftWrist, pose.RightWrist, pose.LeftShoulder, pose.RightShoulder,
		pose.LeftHip, pose.RightHip) {
		return 0
	}

	lw, _ := p.Get(pose.LeftWrist)
	rw, _ := p.Get(pose.RightWrist)
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)
	lh, _ := p.Get(pose.LeftHip)
	rh, _ := p.Get(pose.RightHip)

	shoulderWidth := math.Abs(ls.X - rs.X)
	torso := math.Abs(pose.MidY(ls, rs) - pose.MidY(lh, rh))

	// Wide: wrists pulled far apart, both held near shoulder height.
	separation := math.Abs(lw.X - rw.X)
	atShoulderHeight := math.Abs(lw.Y-ls.Y) <= bandHeightFactor*torso &&
		math.Abs(rw.Y-rs.Y) <= bandHeightFactor*torso
	wide := separation > d.WideFactor*shoulderWidth && atShoulderHeight

	// Narrow: each wrist back within reach of its own shoulder.
	narrowRadius := d.NarrowFactor * shoulderWidth / 2
	narrow := pose.Distance(lw, ls) < narrowRadius && pose.Distance(rw, rs) < narrowRadius

	if wide {
		d.wideLatched = true
		return 0
	}
	if d.wideLatched && narrow {
		d.wideLatched = false
		return 1
	}
	return 0
}

// Engaged reports whether the wide position has been reached and not yet
// released.
func (d *BandPullApartDetector) Engaged() bool {
	return d.wideLatched
}

// Reset clears the latch for a new session.
func (d *BandPullApartDetector) Reset() {
	d.wideLatched = false
}
