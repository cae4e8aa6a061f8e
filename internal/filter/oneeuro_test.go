package filter

import (
	"math"
	"testing"

	"github.com/EricPostMaster/DeskFit/internal/pose"
)

const sampleInterval = 1.0 / 30 // 30 fps

func TestOneEuro_FirstSamplePassthrough(t *testing.T) {
	f := NewOneEuro(DefaultMinCutoff, DefaultBeta, DefaultDerivCutoff)

	if got := f.Filter(123.4, 0); got != 123.4 {
		t.Errorf("first sample = %f, want raw value 123.4", got)
	}
}

func TestOneEuro_ConvergesToConstant(t *testing.T) {
	f := NewOneEuro(DefaultMinCutoff, DefaultBeta, DefaultDerivCutoff)

	// Initialize away from the target, then hold the input constant.
	f.Filter(0, 0)

	const target = 100.0
	var out float64
	prevDiff := target
	for i := 1; i <= 30; i++ {
		out = f.Filter(target, float64(i)*sampleInterval)

		// Convergence must be monotonic for a constant input.
		diff := math.Abs(target - out)
		if diff > prevDiff {
			t.Fatalf("sample %d: |error| grew from %f to %f", i, prevDiff, diff)
		}
		prevDiff = diff
	}

	if math.Abs(target-out) > target*0.01 {
		t.Errorf("after 30 constant samples output = %f, want within 1%% of %f", out, target)
	}
}

func TestOneEuro_AdaptiveResponsiveness(t *testing.T) {
	// A step is tracked faster when the signal was already moving than
	// when it was static: the large smoothed derivative raises the
	// cutoff, which raises the blend coefficient.

	// Static history: hold at 0.
	static := NewOneEuro(DefaultMinCutoff, DefaultBeta, DefaultDerivCutoff)
	ts := 0.0
	for i := 0; i < 20; i++ {
		static.Filter(0, ts)
		ts += sampleInterval
	}
	staticBefore := static.prevValue
	staticOut := static.Filter(staticBefore+100, ts)
	staticClosed := (staticOut - staticBefore) / 100

	// Moving history: steep ramp, large derivative going into the step.
	moving := NewOneEuro(DefaultMinCutoff, DefaultBeta, DefaultDerivCutoff)
	ts = 0.0
	for i := 0; i < 20; i++ {
		moving.Filter(float64(i)*20, ts)
		ts += sampleInterval
	}
	movingBefore := moving.prevValue
	movingOut := moving.Filter(movingBefore+100, ts)
	movingClosed := (movingOut - movingBefore) / 100

	if movingClosed <= staticClosed {
		t.Errorf("moving filter closed %.3f of the step, static closed %.3f; adaptive cutoff should favor the moving signal",
			movingClosed, staticClosed)
	}
}

func TestOneEuro_TimestampFloor(t *testing.T) {
	f := NewOneEuro(DefaultMinCutoff, DefaultBeta, DefaultDerivCutoff)

	f.Filter(10, 1.0)
	// Duplicate timestamp: must not divide by zero or produce NaN.
	out := f.Filter(20, 1.0)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		t.Errorf("duplicate timestamp produced %f", out)
	}
}

func TestOneEuro_Reset(t *testing.T) {
	f := NewOneEuro(DefaultMinCutoff, DefaultBeta, DefaultDerivCutoff)

	f.Filter(50, 0)
	f.Filter(60, sampleInterval)
	f.Reset()

	// After reset the next sample passes through raw again.
	if got := f.Filter(999, 1); got != 999 {
		t.Errorf("post-reset sample = %f, want raw 999", got)
	}
}

func TestBank_SmoothKeepsMissingLandmarkState(t *testing.T) {
	b := NewBank()

	full := pose.NewPose(640, 480)
	full.Set(pose.Keypoint{Name: pose.LeftWrist, X: 100, Y: 100, Confidence: 0.9})
	full.Set(pose.Keypoint{Name: pose.RightWrist, X: 200, Y: 100, Confidence: 0.9})

	b.Smooth(full, 0)

	// Frame with the right wrist missing: its filter state persists.
	partial := pose.NewPose(640, 480)
	partial.Set(pose.Keypoint{Name: pose.LeftWrist, X: 110, Y: 100, Confidence: 0.9})
	out := b.Smooth(partial, sampleInterval)

	if out.Has(pose.RightWrist) {
		t.Error("missing landmark must not appear in smoothed pose")
	}

	// Right wrist reappears far away: not a first sample, so it is
	// smoothed toward the stored state rather than passed through raw.
	back := pose.NewPose(640, 480)
	back.Set(pose.Keypoint{Name: pose.RightWrist, X: 260, Y: 100, Confidence: 0.9})
	out = b.Smooth(back, 2*sampleInterval)

	rw, _ := out.Get(pose.RightWrist)
	if rw.X == 260 {
		t.Error("reappearing landmark should be filtered against persisted state")
	}
}

func TestBank_Reset(t *testing.T) {
	b := NewBank()

	p := pose.NewPose(640, 480)
	p.Set(pose.Keypoint{Name: pose.Nose, X: 100, Y: 50, Confidence: 0.9})
	b.Smooth(p, 0)
	b.Reset()

	// After reset the first sample passes through raw.
	q := pose.NewPose(640, 480)
	q.Set(pose.Keypoint{Name: pose.Nose, X: 500, Y: 300, Confidence: 0.9})
	out := b.Smooth(q, sampleInterval)

	nose, _ := out.Get(pose.Nose)
	if nose.X != 500 || nose.Y != 300 {
		t.Errorf("post-reset sample = (%f, %f), want raw (500, 300)", nose.X, nose.Y)
	}
}

func TestBank_NilPose(t *testing.T) {
	b := NewBank()
	if out := b.Smooth(nil, 0); out != nil {
		t.Error("smoothing a nil pose should return nil")
	}
}
