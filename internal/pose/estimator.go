package pose

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrModelUnavailable is returned when no estimator provider could be
// started. It is a startup failure; callers should not retry per frame.
var ErrModelUnavailable = errors.New("pose model unavailable")

// ErrEstimatorClosed is returned by Estimate after Close. An idle
// shutdown is not a closure; the estimator restarts on the next frame.
var ErrEstimatorClosed = errors.New("pose estimator closed")

// Estimator defines the interface for pose estimation implementations.
type Estimator interface {
	// Estimate analyzes a video frame and returns the detected body pose.
	// Returns nil (and no error) if no person is detected.
	Estimate(frame *gocv.Mat) (*Pose, error)

	// Close releases any resources held by the estimator.
	Close() error
}

// Config holds configuration options for pose estimation.
type Config struct {
	// MinConfidence is the per-keypoint confidence floor (0.0-1.0).
	// Keypoints below it are dropped from the returned pose.
	MinConfidence float64

	// Variant selects the model variant ("lightning" favors speed,
	// "thunder" favors accuracy).
	Variant string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0.3,
		Variant:       "lightning",
	}
}
