package overlay

import (
	"image"

	"gocv.io/x/gocv"
)

const lineThickness = 2

// Rasterize draws the overlay frame onto a video frame in place. The
// mat and the primitives must share a coordinate space: pass an
// identity transform to Build when drawing on the intrinsic frame.
func Rasterize(img *gocv.Mat, f Frame) {
	if img == nil || img.Empty() {
		return
	}

	for _, l := range f.Lines {
		gocv.Line(img,
			image.Pt(int(l.X1), int(l.Y1)),
			image.Pt(int(l.X2), int(l.Y2)),
			l.Color, lineThickness)
	}

	for _, c := range f.Circles {
		thickness := lineThickness
		if c.Fill {
			thickness = -1
		}
		gocv.Circle(img, image.Pt(int(c.X), int(c.Y)), int(c.Radius), c.Color, thickness)
	}
}
