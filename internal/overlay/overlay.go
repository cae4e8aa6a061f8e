// Package overlay derives visual guide geometry from smoothed poses and
// detector state: reference lines, thresholds and color-coded landmark
// markers. It is purely observational and never influences counting. The
// primitives are plain values so they can be rasterized onto a video
// frame or serialized to a remote view.
package overlay

import (
	"image/color"
	"math"

	"github.com/EricPostMaster/DeskFit/internal/exercise"
	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// Marker radius in intrinsic pixels before display scaling.
const markerRadius = 6.0

// Overlay colors. Guides are drawn in amber, landmarks in white until
// the target pose is reached, then green.
var (
	ColorGuide   = color.RGBA{R: 255, G: 191, B: 0, A: 255}
	ColorIdle    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorEngaged = color.RGBA{R: 64, G: 220, B: 64, A: 255}
)

// Size is a frame dimension in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Transform maps intrinsic pose coordinates into display coordinates.
// X and Y scale independently; PixelRatio folds in device pixel density.
type Transform struct {
	ScaleX float64
	ScaleY float64
}

// NewTransform builds the intrinsic-to-display mapping. pixelRatio is
// the device pixel density (1 for a plain video frame).
func NewTransform(intrinsic, display Size, pixelRatio float64) Transform {
	if intrinsic.Width <= 0 || intrinsic.Height <= 0 {
		return Transform{ScaleX: 1, ScaleY: 1}
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return Transform{
		ScaleX: display.Width * pixelRatio / intrinsic.Width,
		ScaleY: display.Height * pixelRatio / intrinsic.Height,
	}
}

// Apply maps one intrinsic point to display coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x * t.ScaleX, y * t.ScaleY
}

// Line is a guide or threshold segment in display coordinates.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  color.RGBA
}

// Circle is a landmark marker or a threshold ring in display
// coordinates. Filled markers have Fill set; threshold rings do not.
type Circle struct {
	X, Y   float64
	Radius float64
	Color  color.RGBA
	Fill   bool
}

// Frame is the complete set of primitives for one video frame.
type Frame struct {
	Lines   []Line
	Circles []Circle
}

// Build derives the overlay for one frame. p is the smoothed pose (nil
// when no person is visible), det the session's active detector. The
// result is empty when there is nothing to draw.
func Build(p *pose.Pose, kind exercise.Kind, det exercise.Detector, t Transform) Frame {
	var f Frame
	if p == nil {
		return f
	}

	engaged := false
	if r, ok := det.(exercise.StateReporter); ok {
		engaged = r.Engaged()
	}

	switch kind {
	case exercise.ShoulderPress, exercise.LateralRaise, exercise.JumpingJack, exercise.LowToHighChestFly:
		buildOverhead(&f, p, t, engaged)
	case exercise.Squat:
		sd, ok := det.(*exercise.SquatDetector)
		if ok {
			buildSquat(&f, p, t, sd, engaged)
		}
	case exercise.KneeRaise:
		buildKneeRaise(&f, p, t, engaged)
	case exercise.BicepCurl, exercise.TricepsExtension:
		buildArmLevels(&f, p, t, engaged)
	case exercise.BandPullApart:
		buildBand(&f, p, t, engaged)
	case exercise.SvendChestPress:
		buildSvend(&f, p, t, engaged)
	}
	return f
}

// stateColor picks the landmark color for the current detector state.
func stateColor(engaged bool) color.RGBA {
	if engaged {
		return ColorEngaged
	}
	return ColorIdle
}

// marker appends a filled landmark marker if the landmark is present.
func marker(f *Frame, p *pose.Pose, name pose.Landmark, t Transform, c color.RGBA) {
	kp, ok := p.Get(name)
	if !ok {
		return
	}
	x, y := t.Apply(kp.X, kp.Y)
	f.Circles = append(f.Circles, Circle{X: x, Y: y, Radius: markerRadius * t.ScaleX, Color: c, Fill: true})
}

// guideAcross appends a horizontal guide line spanning the frame width
// at the given intrinsic height.
func guideAcross(f *Frame, p *pose.Pose, t Transform, intrinsicY float64, c color.RGBA) {
	_, y := t.Apply(0, intrinsicY)
	x2, _ := t.Apply(float64(p.Width), 0)
	f.Lines = append(f.Lines, Line{X1: 0, Y1: y, X2: x2, Y2: y, Color: c})
}

// buildOverhead draws each shoulder's height as the guide the wrists
// must clear.
func buildOverhead(f *Frame, p *pose.Pose, t Transform, engaged bool) {
	if !p.Has(pose.LeftShoulder, pose.RightShoulder) {
		return
	}
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)

	guideAcross(f, p, t, pose.MidY(ls, rs), ColorGuide)

	c := stateColor(engaged)
	marker(f, p, pose.LeftWrist, t, c)
	marker(f, p, pose.RightWrist, t, c)
}

// buildSquat draws the calibrated depth threshold and the hip markers
// that must sink below it.
func buildSquat(f *Frame, p *pose.Pose, t Transform, det *exercise.SquatDetector, engaged bool) {
	if thresholdY := det.ThresholdY(); thresholdY > 0 {
		guideAcross(f, p, t, thresholdY, ColorGuide)
	}

	c := stateColor(engaged)
	marker(f, p, pose.LeftHip, t, c)
	marker(f, p, pose.RightHip, t, c)
}

// buildKneeRaise draws the hip line each knee must reach.
func buildKneeRaise(f *Frame, p *pose.Pose, t Transform, engaged bool) {
	if !p.Has(pose.LeftHip, pose.RightHip) {
		return
	}
	lh, _ := p.Get(pose.LeftHip)
	rh, _ := p.Get(pose.RightHip)

	guideAcross(f, p, t, pose.MidY(lh, rh), ColorGuide)

	c := stateColor(engaged)
	marker(f, p, pose.LeftKnee, t, c)
	marker(f, p, pose.RightKnee, t, c)
}

// buildArmLevels draws each elbow's height as the per-arm reference the
// wrist crosses, for curls and triceps extensions.
func buildArmLevels(f *Frame, p *pose.Pose, t Transform, engaged bool) {
	c := stateColor(engaged)
	for _, arm := range [][2]pose.Landmark{
		{pose.LeftElbow, pose.LeftWrist},
		{pose.RightElbow, pose.RightWrist},
	} {
		elbow, ok := p.Get(arm[0])
		if !ok {
			continue
		}
		x, y := t.Apply(elbow.X, elbow.Y)
		half := 40 * t.ScaleX
		f.Lines = append(f.Lines, Line{X1: x - half, Y1: y, X2: x + half, Y2: y, Color: ColorGuide})
		marker(f, p, arm[1], t, c)
	}
}

// buildBand draws each shoulder's return radius and the wrist markers.
func buildBand(f *Frame, p *pose.Pose, t Transform, engaged bool) {
	if !p.Has(pose.LeftShoulder, pose.RightShoulder) {
		return
	}
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)

	shoulderWidth := math.Abs(ls.X - rs.X)
	radius := shoulderWidth // 2.0x half shoulder width

	for _, s := range []pose.Keypoint{ls, rs} {
		x, y := t.Apply(s.X, s.Y)
		f.Circles = append(f.Circles, Circle{X: x, Y: y, Radius: radius * t.ScaleX, Color: ColorGuide})
	}

	c := stateColor(engaged)
	marker(f, p, pose.LeftWrist, t, c)
	marker(f, p, pose.RightWrist, t, c)
}

// buildSvend draws each arm's extension threshold as a ring around the
// shoulder, scaled by that arm's upper-arm length.
func buildSvend(f *Frame, p *pose.Pose, t Transform, engaged bool) {
	if !p.Has(pose.LeftShoulder, pose.RightShoulder, pose.LeftElbow, pose.RightElbow) {
		return
	}
	ls, _ := p.Get(pose.LeftShoulder)
	rs, _ := p.Get(pose.RightShoulder)
	le, _ := p.Get(pose.LeftElbow)
	re, _ := p.Get(pose.RightElbow)

	for _, arm := range []struct {
		shoulder pose.Keypoint
		elbow    pose.Keypoint
	}{{ls, le}, {rs, re}} {
		radius := 1.5 * pose.Distance(arm.shoulder, arm.elbow)
		x, y := t.Apply(arm.shoulder.X, arm.shoulder.Y)
		f.Circles = append(f.Circles, Circle{X: x, Y: y, Radius: radius * t.ScaleX, Color: ColorGuide})
	}

	c := stateColor(engaged)
	marker(f, p, pose.LeftWrist, t, c)
	marker(f, p, pose.RightWrist, t, c)
}
