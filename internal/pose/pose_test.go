package pose

import (
	"errors"
	"math"
	"testing"
)

func TestPose_SetGetHas(t *testing.T) {
	p := NewPose(640, 480)

	if p.Has(LeftWrist) {
		t.Error("empty pose should not have left_wrist")
	}

	p.Set(Keypoint{Name: LeftWrist, X: 100, Y: 200, Confidence: 0.8})

	kp, ok := p.Get(LeftWrist)
	if !ok {
		t.Fatal("expected left_wrist to be present")
	}
	if kp.X != 100 || kp.Y != 200 {
		t.Errorf("keypoint = (%f, %f), want (100, 200)", kp.X, kp.Y)
	}

	if p.Has(LeftWrist, RightWrist) {
		t.Error("Has should require every listed landmark")
	}

	p.Set(Keypoint{Name: RightWrist, X: 300, Y: 200, Confidence: 0.8})
	if !p.Has(LeftWrist, RightWrist) {
		t.Error("expected both wrists present")
	}
}

func TestDistance(t *testing.T) {
	a := Keypoint{X: 0, Y: 0}
	b := Keypoint{X: 3, Y: 4}

	if d := Distance(a, b); d != 5 {
		t.Errorf("Distance = %f, want 5", d)
	}
	if d := Distance(a, a); d != 0 {
		t.Errorf("Distance to self = %f, want 0", d)
	}
}

func TestMidY(t *testing.T) {
	a := Keypoint{Y: 100}
	b := Keypoint{Y: 200}

	if mid := MidY(a, b); mid != 150 {
		t.Errorf("MidY = %f, want 150", mid)
	}
}

func TestToPose_ConfidenceFloor(t *testing.T) {
	keypoints := []jsonKeypoint{
		{Name: "left_wrist", X: 10, Y: 20, Confidence: 0.9},
		{Name: "right_wrist", X: 30, Y: 40, Confidence: 0.1},
	}

	p := toPose(keypoints, 640, 480, 0.3)

	if !p.Has(LeftWrist) {
		t.Error("confident keypoint should be kept")
	}
	if p.Has(RightWrist) {
		t.Error("keypoint below the confidence floor should be dropped")
	}
	if p.Width != 640 || p.Height != 480 {
		t.Errorf("intrinsic size = %dx%d, want 640x480", p.Width, p.Height)
	}
}

func TestMockEstimator_Script(t *testing.T) {
	m := NewMockEstimator()

	standing := StandingPose()
	raised := ArmsRaisedPose()
	m.SetPoses([]*Pose{standing, nil, raised})

	p, err := m.Estimate(nil)
	if err != nil || p != standing {
		t.Fatalf("first Estimate = %v, %v, want standing pose", p, err)
	}

	p, _ = m.Estimate(nil)
	if p != nil {
		t.Fatal("second Estimate should return nil (no person)")
	}

	// Script exhausted: final pose repeats.
	for i := 0; i < 3; i++ {
		p, _ = m.Estimate(nil)
		if p != raised {
			t.Fatalf("Estimate %d after script end = %v, want final pose", i, p)
		}
	}
}

func TestMockEstimator_Error(t *testing.T) {
	m := NewMockEstimator()
	wantErr := errors.New("boom")
	m.SetError(wantErr)

	if _, err := m.Estimate(nil); !errors.Is(err, wantErr) {
		t.Errorf("Estimate error = %v, want %v", err, wantErr)
	}
}

func TestPresetPoses(t *testing.T) {
	standing := StandingPose()
	if len(standing.Keypoints) != NumLandmarks {
		t.Errorf("standing pose has %d landmarks, want %d", len(standing.Keypoints), NumLandmarks)
	}

	// Arms raised: wrists above shoulders in image space (smaller y).
	raised := ArmsRaisedPose()
	lw, _ := raised.Get(LeftWrist)
	ls, _ := raised.Get(LeftShoulder)
	if lw.Y >= ls.Y {
		t.Errorf("raised wrist y = %f, should be above shoulder y = %f", lw.Y, ls.Y)
	}

	// Squat bottom: hips near knee height.
	squat := SquatBottomPose()
	lh, _ := squat.Get(LeftHip)
	lk, _ := squat.Get(LeftKnee)
	if math.Abs(lh.Y-lk.Y) > 30 {
		t.Errorf("squat hips should be near knee height, hip=%f knee=%f", lh.Y, lk.Y)
	}
}

func TestResolveProvider_Unavailable(t *testing.T) {
	// Point HOME somewhere empty so no installed script can be found.
	t.Setenv("HOME", t.TempDir())

	_, err := ResolveProvider(DefaultConfig())
	if err == nil {
		t.Skip("a movenet_service.py is installed locally; cannot test the failure path")
	}
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("error = %v, want ErrModelUnavailable", err)
	}
}

func TestAlternateVariant(t *testing.T) {
	if got := alternateVariant("lightning"); got != "thunder" {
		t.Errorf("alternateVariant(lightning) = %q, want thunder", got)
	}
	if got := alternateVariant("thunder"); got != "lightning" {
		t.Errorf("alternateVariant(thunder) = %q, want lightning", got)
	}
}
