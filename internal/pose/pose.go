// Package pose provides body pose estimation interfaces and types for
// exercise repetition counting.
package pose

import "math"

// Landmark identifies a named 2D body landmark. The set follows the
// 17-point COCO convention used by MoveNet-style estimators.
type Landmark string

// Body landmarks produced by the estimator.
const (
	Nose          Landmark = "nose"
	LeftEye       Landmark = "left_eye"
	RightEye      Landmark = "right_eye"
	LeftEar       Landmark = "left_ear"
	RightEar      Landmark = "right_ear"
	LeftShoulder  Landmark = "left_shoulder"
	RightShoulder Landmark = "right_shoulder"
	LeftElbow     Landmark = "left_elbow"
	RightElbow    Landmark = "right_elbow"
	LeftWrist     Landmark = "left_wrist"
	RightWrist    Landmark = "right_wrist"
	LeftHip       Landmark = "left_hip"
	RightHip      Landmark = "right_hip"
	LeftKnee      Landmark = "left_knee"
	RightKnee     Landmark = "right_knee"
	LeftAnkle     Landmark = "left_ankle"
	RightAnkle    Landmark = "right_ankle"
)

// NumLandmarks is the size of the full landmark set.
const NumLandmarks = 17

// Landmarks lists every landmark in estimator output order.
var Landmarks = [NumLandmarks]Landmark{
	Nose, LeftEye, RightEye, LeftEar, RightEar,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
	LeftKnee, RightKnee, LeftAnkle, RightAnkle,
}

// Keypoint is a single landmark estimate. Coordinates are in the
// estimator's intrinsic image space: pixels, origin top-left, y growing
// downward.
type Keypoint struct {
	Name       Landmark `json:"name"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Confidence float64  `json:"confidence"`
}

// Pose holds the landmarks detected in one video frame, keyed by name.
// Landmarks below the estimator's confidence floor are omitted.
type Pose struct {
	Keypoints map[Landmark]Keypoint `json:"keypoints"`
	Width     int                   `json:"width"`
	Height    int                   `json:"height"`
}

// NewPose creates an empty pose with the given intrinsic frame size.
func NewPose(width, height int) *Pose {
	return &Pose{
		Keypoints: make(map[Landmark]Keypoint, NumLandmarks),
		Width:     width,
		Height:    height,
	}
}

// Set adds or replaces a keypoint.
func (p *Pose) Set(kp Keypoint) {
	p.Keypoints[kp.Name] = kp
}

// Get returns the keypoint for the given landmark, if present.
func (p *Pose) Get(name Landmark) (Keypoint, bool) {
	kp, ok := p.Keypoints[name]
	return kp, ok
}

// Has reports whether every listed landmark is present.
func (p *Pose) Has(names ...Landmark) bool {
	for _, name := range names {
		if _, ok := p.Keypoints[name]; !ok {
			return false
		}
	}
	return true
}

// Distance returns the Euclidean distance between two keypoints.
func Distance(a, b Keypoint) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// MidY returns the average y of two keypoints. Shoulder and hip midlines
// are the usual inputs.
func MidY(a, b Keypoint) float64 {
	return (a.Y + b.Y) / 2
}
