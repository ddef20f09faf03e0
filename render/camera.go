package render

import (
	"math"

	"github.com/gogpu/glyph3d"
)

// Camera is a pinhole camera.
type Camera struct {
	Position glyph3d.Vec3
	Forward  glyph3d.Vec3
	Right    glyph3d.Vec3
	Up       glyph3d.Vec3

	// tanHalf is the tangent of half the vertical field of view.
	tanHalf float64
}

// NewCamera returns a camera at eye looking at target. fov is the
// vertical field of view in degrees.
func NewCamera(eye, target, up glyph3d.Vec3, fov float64) Camera {
	fwd := target.Sub(eye).Normalize()
	right := up.Cross(fwd).Normalize()
	if right.IsZero() {
		// up is parallel to the view direction.
		right = glyph3d.V3(0, 0, 1).Cross(fwd).Normalize()
		if right.IsZero() {
			right = glyph3d.V3(1, 0, 0)
		}
	}
	return Camera{
		Position: eye,
		Forward:  fwd,
		Right:    right,
		Up:       fwd.Cross(right),
		tanHalf:  math.Tan(fov * math.Pi / 360),
	}
}

// FitCamera returns a camera in front of box (on the -z side) that
// frames all of it.
func FitCamera(box glyph3d.Box3, fov float64) Camera {
	if box.IsEmpty() {
		return NewCamera(glyph3d.V3(0, 0, -5), glyph3d.Vec3{}, glyph3d.V3(0, 1, 0), fov)
	}
	center := box.Min.Add(box.Max).Mul(0.5)
	radius := box.Max.Sub(box.Min).Length() / 2
	dist := radius / math.Sin(fov*math.Pi/360)
	eye := center.Sub(glyph3d.V3(0, 0, dist))
	return NewCamera(eye, center, glyph3d.V3(0, 1, 0), fov)
}

// Ray returns the primary ray through image position (u, v), where both
// range over [-1, 1] vertically and u is scaled by aspect horizontally.
// (0, 0) is the image center, v grows upward.
func (c Camera) Ray(u, v, aspect float64) glyph3d.Ray {
	d := c.Forward.
		Add(c.Right.Mul(u * aspect * c.tanHalf)).
		Add(c.Up.Mul(v * c.tanHalf))
	return glyph3d.Ray{Origin: c.Position, Direction: d.Normalize()}
}
