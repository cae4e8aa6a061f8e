// Package exercise turns streams of smoothed pose samples into counted
// repetitions. Each supported exercise has a small state machine that
// watches a geometric target-pose predicate and reports edges; the session
// applies debouncing and the target cap.
package exercise

import (
	"fmt"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// Kind identifies a supported exercise.
type Kind string

// Supported exercises.
const (
	Squat             Kind = "squat"
	JumpingJack       Kind = "jumping_jack"
	ShoulderPress     Kind = "shoulder_press"
	LateralRaise      Kind = "lateral_raise"
	KneeRaise         Kind = "knee_raise"
	BicepCurl         Kind = "bicep_curl"
	TricepsExtension  Kind = "triceps_extension"
	BandPullApart     Kind = "band_pull_apart"
	LowToHighChestFly Kind = "low_to_high_chest_fly"
	SvendChestPress   Kind = "svend_chest_press"
)

// Kinds lists every supported exercise.
var Kinds = []Kind{
	Squat, JumpingJack, ShoulderPress, LateralRaise, KneeRaise,
	BicepCurl, TricepsExtension, BandPullApart, LowToHighChestFly,
	SvendChestPress,
}

// ParseKind validates an exercise name supplied by a caller.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown exercise kind %q", s)
}

// Detector is the per-exercise state machine. Observe consumes one
// smoothed pose sample and returns the number of qualifying rep edges in
// that frame (0 for most frames; bilateral-arm exercises may report 2).
// Detectors are edge-triggered: they fire only on a transition of the
// target-pose predicate, never while it holds steady. A pose missing a
// required landmark leaves the state untouched and reports no edges.
type Detector interface {
	Reset()
	Observe(p *pose.Pose, t time.Time) int
}

// StateReporter is implemented by detectors that can describe whether the
// target pose is currently satisfied. The overlay uses it for color
// coding; it has no effect on counting.
type StateReporter interface {
	Engaged() bool
}

// Calibrator is implemented by detectors that need per-session baseline
// measurements. The session feeds it every frame before detection.
type Calibrator interface {
	Calibrate(p *pose.Pose)
}

// NewDetector creates the detector for an exercise kind.
func NewDetector(kind Kind) (Detector, error) {
	switch kind {
	case ShoulderPress, LateralRaise, JumpingJack, LowToHighChestFly:
		return NewOverheadDetector(), nil
	case Squat:
		return NewSquatDetector(), nil
	case KneeRaise:
		return NewKneeRaiseDetector(), nil
	case BicepCurl:
		return NewBicepCurlDetector(), nil
	case TricepsExtension:
		return NewTricepsExtensionDetector(), nil
	case BandPullApart:
		return NewBandPullApartDetector(), nil
	case SvendChestPress:
		return NewSvendPressDetector(), nil
	default:
		return nil, fmt.Errorf("unknown exercise kind %q", kind)
	}
}

// edgeState tracks one boolean predicate across frames so transitions can
// be detected. primed is false until the predicate has been evaluated
// once; the first observation never fires an edge.
type edgeState struct {
	primed bool
	prev   bool
}

// rising updates the state and reports a false-to-true transition.
func (e *edgeState) rising(cond bool) bool {
	fired := e.primed && cond && !e.prev
	e.prev = cond
	e.primed = true
	return fired
}

// falling updates the state and reports a true-to-false transition.
func (e *edgeState) falling(cond bool) bool {
	fired := e.primed && !cond && e.prev
	e.prev = cond
	e.primed = true
	return fired
}

func (e *edgeState) reset() {
	e.primed = false
	e.prev = false
}
