// Package glyph3d renders text as solid 3D objects in a ray tracer.
//
// # Overview
//
// A font glyph's outline, a set of closed quadratic Bezier contours, is
// used as a 2D cross-section and extruded along Z. Rays are intersected
// with the resulting solid analytically: the outline is never tessellated
// into polygons.
//
// # Quick Start
//
//	import "github.com/gogpu/glyph3d"
//
//	// A unit square, extruded to depth 2.
//	g := glyph3d.NewGlyph([]glyph3d.Contour{{
//	    glyph3d.On(0, 0), glyph3d.On(1, 0), glyph3d.On(1, 1), glyph3d.On(0, 1),
//	}})
//	s := glyph3d.NewSolid(g, 2)
//
//	hits := s.AllIntersections(glyph3d.Ray{
//	    Origin:    glyph3d.V3(0.5, 0.5, -5),
//	    Direction: glyph3d.V3(0, 0, 1),
//	}, 0)
//	// hits[0].Depth == 5 (front cap), hits[1].Depth == 7 (back cap)
//
// Real fonts are loaded with the font sub-package and whole strings are
// compiled into a single Union by the layout sub-package.
//
// # Architecture
//
// The package is organized into:
//   - Outline model: ContourPoint, Contour, Segment, Glyph
//   - Curve root solver: SolveSegment, SolveQuadratic
//   - Inside-outline classifier: Glyph.Inside, FillRule
//   - Ray-glyph intersector: Solid.AllIntersections, Solid.Inside
//   - Bounding volumes: Box2, Box3, Solid.ComputeBoundingBox
//   - Scene contract: Object, Union, Matrix, Transform
//
// # Coordinate System
//
// Glyph coordinates follow font conventions: X increases right and Y
// increases up. The front cap of an extruded glyph lies at z = 0 and the
// back cap at z = depth.
//
// # Inside Rule
//
// Inside/outside is decided by counting crossings of a horizontal probe
// (even-odd). Fonts with overlapping contours may therefore render with
// holes where the contours overlap; NonZero can be selected per glyph with
// WithFillRule.
//
// # Concurrency
//
// Glyphs are immutable and may be shared by any number of goroutines.
// Intersection and inside tests do not mutate objects. Transform methods
// do, and must not run concurrently with tracing of the same object.
package glyph3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
