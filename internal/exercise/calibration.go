package exercise

import "math"

// Calibration default tuning. The upright ratio and stability bound are
// empirically tuned values carried over as-is; they are fields so they can
// be adjusted without re-deriving them.
const (
	calibrationWindow     = 10
	calibrationMinSamples = 4
	uprightRatioDefault   = 0.92
	maxStdDevDefault      = 6.0 // pixels
)

// Calibration captures a per-session "standing tall" baseline so squat
// depth can be judged against the individual's proportions instead of a
// fixed pixel threshold. It keeps a bounded FIFO of recent torso lengths
// and freezes the baseline once when the user is near their tallest
// recently observed height and the measurements are stable. At most one
// capture happens per session; after that the baseline is immutable.
type Calibration struct {
	// UprightRatio is the minimum current/window-max torso ratio for the
	// user to count as standing upright.
	UprightRatio float64
	// MaxStdDev is the maximum torso-length standard deviation, in
	// pixels, for the window to count as stable.
	MaxStdDev float64

	shoulderY   float64
	torsoLength float64
	captured    bool
	recent      []float64
}

// NewCalibration creates an empty calibration store.
func NewCalibration() *Calibration {
	return &Calibration{
		UprightRatio: uprightRatioDefault,
		MaxStdDev:    maxStdDevDefault,
		recent:       make([]float64, 0, calibrationWindow),
	}
}

// Observe feeds one frame's averaged shoulder and hip heights. Once
// enough stable samples accumulate and the user appears fully upright,
// the baseline freezes; further observations are no-ops.
func (c *Calibration) Observe(avgShoulderY, avgHipY float64) {
	torso := math.Abs(avgShoulderY - avgHipY)

	if len(c.recent) >= calibrationWindow {
		copy(c.recent, c.recent[1:])
		c.recent = c.recent[:calibrationWindow-1]
	}
	c.recent = append(c.recent, torso)

	if c.captured || len(c.recent) < calibrationMinSamples {
		return
	}

	windowMax := c.recent[0]
	for _, v := range c.recent[1:] {
		if v > windowMax {
			windowMax = v
		}
	}
	if windowMax <= 0 {
		return
	}

	if torso/windowMax >= c.UprightRatio && stddev(c.recent) <= c.MaxStdDev {
		c.shoulderY = avgShoulderY
		c.torsoLength = torso
		c.captured = true
	}
}

// Baseline returns the captured shoulder height and torso length. Until
// capture happens it falls back to the caller's current-frame values, so
// counting degrades gracefully instead of blocking.
func (c *Calibration) Baseline(currentShoulderY, currentTorso float64) (shoulderY, torso float64) {
	if c.captured {
		return c.shoulderY, c.torsoLength
	}
	return currentShoulderY, currentTorso
}

// Captured reports whether the baseline has been frozen.
func (c *Calibration) Captured() bool {
	return c.captured
}

// Reset clears all state for a fresh session.
func (c *Calibration) Reset() {
	c.shoulderY = 0
	c.torsoLength = 0
	c.captured = false
	c.recent = c.recent[:0]
}

// stddev computes the population standard deviation of the samples.
func stddev(samples []float64) float64 {
	n := float64(len(samples))
	if n == 0 {
		return 0
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range samples {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / n)
}
