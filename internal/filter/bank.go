package filter

import (
	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// axis selects the coordinate a filter instance tracks.
type axis uint8

const (
	axisX axis = iota
	axisY
)

// streamKey identifies one filter instance: a (landmark, axis) pair.
type streamKey struct {
	name pose.Landmark
	ax   axis
}

// Bank holds one OneEuro instance per (landmark, axis) stream for a single
// tracking session. Filter instances are long-lived across frames; a
// landmark that drops out of a frame keeps its state for when it
// reappears. The bank is owned by one session and is not safe for
// concurrent use.
type Bank struct {
	minCutoff   float64
	beta        float64
	derivCutoff float64
	filters     map[streamKey]*OneEuro
}

// NewBank creates a filter bank with the default One-Euro tuning.
func NewBank() *Bank {
	return NewBankWithParams(DefaultMinCutoff, DefaultBeta, DefaultDerivCutoff)
}

// NewBankWithParams creates a filter bank with custom tuning.
func NewBankWithParams(minCutoff, beta, derivCutoff float64) *Bank {
	return &Bank{
		minCutoff:   minCutoff,
		beta:        beta,
		derivCutoff: derivCutoff,
		filters:     make(map[streamKey]*OneEuro),
	}
}

// Smooth runs every keypoint of the pose through its filters and returns a
// new pose with smoothed coordinates. t is the frame timestamp in seconds.
// The input pose is not modified.
func (b *Bank) Smooth(p *pose.Pose, t float64) *pose.Pose {
	if p == nil {
		return nil
	}

	out := pose.NewPose(p.Width, p.Height)
	for name, kp := range p.Keypoints {
		out.Set(pose.Keypoint{
			Name:       name,
			X:          b.filter(name, axisX).Filter(kp.X, t),
			Y:          b.filter(name, axisY).Filter(kp.Y, t),
			Confidence: kp.Confidence,
		})
	}
	return out
}

// Reset drops all filter state. Called when tracking is disabled so a new
// session starts clean.
func (b *Bank) Reset() {
	b.filters = make(map[streamKey]*OneEuro)
}

func (b *Bank) filter(name pose.Landmark, ax axis) *OneEuro {
	key := streamKey{name: name, ax: ax}
	f, ok := b.filters[key]
	if !ok {
		f = NewOneEuro(b.minCutoff, b.beta, b.derivCutoff)
		b.filters[key] = f
	}
	return f
}
