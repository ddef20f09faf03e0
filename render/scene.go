package render

import (
	"image/color"
	"math"

	"github.com/gogpu/glyph3d"
)

// Light is a directional light.
type Light struct {
	// Direction points from the scene toward the light.
	Direction glyph3d.Vec3

	// Ambient is the fraction of light that reaches surfaces facing away
	// or in shadow, in [0, 1].
	Ambient float64
}

// DefaultLight lights the scene from the upper left, behind the camera.
func DefaultLight() Light {
	return Light{Direction: glyph3d.V3(-1, 1, -2).Normalize(), Ambient: 0.2}
}

// Scene is what Render draws.
type Scene struct {
	// Objects are traced as if they were one union.
	Objects []glyph3d.Object

	Light Light

	// Color is the surface color of every object. The zero value is
	// drawn as white.
	Color color.RGBA

	// Background fills pixels whose ray hits nothing.
	Background color.RGBA
}

// hit traces r against every object and returns the nearest intersection.
func (s *Scene) hit(r glyph3d.Ray) (glyph3d.Intersection, bool) {
	var (
		best  glyph3d.Intersection
		found bool
	)
	for _, o := range s.Objects {
		hits := o.AllIntersections(r, 1)
		if len(hits) == 0 {
			continue
		}
		if !found || hits[0].Depth < best.Depth {
			best, found = hits[0], true
		}
	}
	return best, found
}

// shade returns the color seen along r.
func (s *Scene) shade(r glyph3d.Ray, shadows bool) color.RGBA {
	h, ok := s.hit(r)
	if !ok {
		return s.Background
	}

	n := h.Normal
	if n.Dot(r.Direction) > 0 {
		n = n.Neg()
	}
	l := s.Light.Direction.Normalize()
	diffuse := math.Max(0, n.Dot(l))

	if diffuse > 0 && shadows {
		// Start the shadow ray slightly off the surface to avoid
		// re-hitting it.
		sr := glyph3d.Ray{Origin: h.Point.Add(n.Mul(shadowBias)), Direction: l}
		if _, blocked := s.hit(sr); blocked {
			diffuse = 0
		}
	}

	k := s.Light.Ambient + (1-s.Light.Ambient)*diffuse
	base := s.Color
	if base == (color.RGBA{}) {
		base = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{
		R: scale8(base.R, k),
		G: scale8(base.G, k),
		B: scale8(base.B, k),
		A: base.A,
	}
}

const shadowBias = 1e-6

func scale8(c uint8, k float64) uint8 {
	v := math.Round(float64(c) * k)
	return uint8(min(max(v, 0), 255))
}
