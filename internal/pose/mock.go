package pose

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockEstimator is a test implementation of the Estimator interface.
// It plays back a scripted sequence of poses, one per Estimate call,
// and keeps returning the final pose once the script is exhausted.
type MockEstimator struct {
	poses []*Pose
	index int
	err   error
	mu    sync.Mutex
}

// NewMockEstimator creates a new MockEstimator instance.
func NewMockEstimator() *MockEstimator {
	return &MockEstimator{}
}

// SetPose sets a single pose returned by every Estimate call.
func (m *MockEstimator) SetPose(p *Pose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poses = []*Pose{p}
	m.index = 0
}

// SetPoses sets the pose script. Entries may be nil to simulate frames
// where no person was detected.
func (m *MockEstimator) SetPoses(poses []*Pose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poses = poses
	m.index = 0
}

// SetError sets the error that will be returned by Estimate.
func (m *MockEstimator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Estimate returns the next scripted pose or the configured error.
func (m *MockEstimator) Estimate(frame *gocv.Mat) (*Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.poses) == 0 {
		return nil, nil
	}

	p := m.poses[m.index]
	if m.index < len(m.poses)-1 {
		m.index++
	}
	return p, nil
}

// Close is a no-op for the mock estimator.
func (m *MockEstimator) Close() error {
	return nil
}

// buildPose assembles a pose from landmark coordinates at full confidence.
func buildPose(points map[Landmark][2]float64) *Pose {
	p := NewPose(640, 480)
	for name, xy := range points {
		p.Set(Keypoint{Name: name, X: xy[0], Y: xy[1], Confidence: 0.9})
	}
	return p
}

// StandingPose returns a preset pose of a person standing upright with
// arms at their sides, centered in a 640x480 frame.
func StandingPose() *Pose {
	return buildPose(map[Landmark][2]float64{
		Nose:          {320, 100},
		LeftEye:       {310, 95},
		RightEye:      {330, 95},
		LeftEar:       {300, 98},
		RightEar:      {340, 98},
		LeftShoulder:  {270, 150},
		RightShoulder: {370, 150},
		LeftElbow:     {255, 210},
		RightElbow:    {385, 210},
		LeftWrist:     {250, 270},
		RightWrist:    {390, 270},
		LeftHip:       {285, 300},
		RightHip:      {355, 300},
		LeftKnee:      {283, 380},
		RightKnee:     {357, 380},
		LeftAnkle:     {281, 455},
		RightAnkle:    {359, 455},
	})
}

// ArmsRaisedPose returns a preset pose with both wrists raised above the
// shoulders, as at the top of a shoulder press.
func ArmsRaisedPose() *Pose {
	p := StandingPose()
	p.Set(Keypoint{Name: LeftElbow, X: 260, Y: 120, Confidence: 0.9})
	p.Set(Keypoint{Name: RightElbow, X: 380, Y: 120, Confidence: 0.9})
	p.Set(Keypoint{Name: LeftWrist, X: 265, Y: 70, Confidence: 0.9})
	p.Set(Keypoint{Name: RightWrist, X: 375, Y: 70, Confidence: 0.9})
	return p
}

// SquatBottomPose returns a preset pose at the bottom of a squat: hips
// dropped toward knee height, shoulders lowered accordingly.
func SquatBottomPose() *Pose {
	p := StandingPose()
	p.Set(Keypoint{Name: LeftShoulder, X: 270, Y: 250, Confidence: 0.9})
	p.Set(Keypoint{Name: RightShoulder, X: 370, Y: 250, Confidence: 0.9})
	p.Set(Keypoint{Name: LeftHip, X: 285, Y: 385, Confidence: 0.9})
	p.Set(Keypoint{Name: RightHip, X: 355, Y: 385, Confidence: 0.9})
	p.Set(Keypoint{Name: LeftKnee, X: 283, Y: 400, Confidence: 0.9})
	p.Set(Keypoint{Name: RightKnee, X: 357, Y: 400, Confidence: 0.9})
	return p
}
