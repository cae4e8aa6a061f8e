// Package filter provides adaptive low-pass filtering for noisy keypoint
// streams. The filter is from the One-Euro family: near-static input is
// smoothed aggressively to remove estimator jitter, fast-moving input is
// passed through with little lag.
package filter

import "math"

// Default filter parameters. MinCutoff and Beta follow the usual One-Euro
// starting values for pixel-space signals; DerivCutoff smooths the
// derivative estimate itself.
const (
	DefaultMinCutoff   = 1.0   // Hz
	DefaultBeta        = 0.007 // cutoff increase per unit of speed
	DefaultDerivCutoff = 1.0   // Hz
)

// minDelta is the floor on the time step, guarding the sampling-rate
// division against duplicate timestamps.
const minDelta = 1e-6 // seconds

// OneEuro filters a single scalar signal, one (landmark, axis) stream.
type OneEuro struct {
	minCutoff   float64
	beta        float64
	derivCutoff float64

	initialized bool
	prevValue   float64
	prevDeriv   float64
	prevTime    float64
}

// NewOneEuro creates a filter with the given tuning. minCutoff sets the
// smoothing floor for slow signals, beta how quickly the cutoff opens up
// with speed, derivCutoff the fixed cutoff applied to the derivative.
func NewOneEuro(minCutoff, beta, derivCutoff float64) *OneEuro {
	return &OneEuro{
		minCutoff:   minCutoff,
		beta:        beta,
		derivCutoff: derivCutoff,
	}
}

// Filter smooths one sample taken at time t (seconds). The first sample
// for a stream is returned unfiltered and initializes state.
func (f *OneEuro) Filter(value, t float64) float64 {
	if !f.initialized {
		f.initialized = true
		f.prevValue = value
		f.prevDeriv = 0
		f.prevTime = t
		return value
	}

	dt := t - f.prevTime
	if dt < minDelta {
		dt = minDelta
	}
	rate := 1 / dt

	// Smooth the derivative with its fixed cutoff.
	rawDeriv := (value - f.prevValue) * rate
	alphaD := smoothingFactor(f.derivCutoff, rate)
	deriv := f.prevDeriv + alphaD*(rawDeriv-f.prevDeriv)

	// Speed-adaptive cutoff: faster motion, less filtering.
	cutoff := f.minCutoff + f.beta*math.Abs(deriv)
	alpha := smoothingFactor(cutoff, rate)
	smoothed := f.prevValue + alpha*(value-f.prevValue)

	f.prevValue = smoothed
	f.prevDeriv = deriv
	f.prevTime = t

	return smoothed
}

// Reset clears the filter state; the next sample passes through raw.
func (f *OneEuro) Reset() {
	f.initialized = false
	f.prevValue = 0
	f.prevDeriv = 0
	f.prevTime = 0
}

// smoothingFactor derives the blend coefficient for a cutoff frequency at
// the current sampling rate: alpha = 1 / (1 + tau/dt), tau = 1/(2*pi*fc).
func smoothingFactor(cutoff, rate float64) float64 {
	tau := 1 / (2 * math.Pi * cutoff)
	return 1 / (1 + tau*rate)
}
