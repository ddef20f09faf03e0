package glyph3d

import "math"

// MinIntersectionDistance is the smallest ray distance reported by
// AllIntersections. It keeps secondary rays from re-hitting the surface
// they start on.
const MinIntersectionDistance = 1e-6

// Ray is a half-line Origin + t*Direction, t >= 0.
// Direction need not be unit length; intersection distances are always
// expressed in multiples of Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point on the ray at parameter t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Interval is a closed range of ray distances.
type Interval struct {
	Min, Max float64
}

// Unbounded is the interval covering the whole line.
var Unbounded = Interval{Min: math.Inf(-1), Max: math.Inf(1)}

// Forward returns the default search window for intersections.
func Forward() Interval {
	return Interval{Min: MinIntersectionDistance, Max: math.Inf(1)}
}

// Contains reports whether t lies within the interval.
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Min && t <= iv.Max
}

// Surface identifies which part of an extruded glyph a ray hit.
type Surface uint8

const (
	// SurfaceFrontCap is the face at local z = 0.
	SurfaceFrontCap Surface = iota

	// SurfaceBackCap is the face at local z = depth.
	SurfaceBackCap

	// SurfaceWall is the swept side surface.
	SurfaceWall
)

// String returns a string representation of the surface.
func (s Surface) String() string {
	switch s {
	case SurfaceFrontCap:
		return "FrontCap"
	case SurfaceBackCap:
		return "BackCap"
	case SurfaceWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// Intersection is a single ray/surface hit.
type Intersection struct {
	// Depth is the ray parameter of the hit.
	Depth float64

	// Point is the world-space hit position.
	Point Vec3

	// Normal is the outward unit surface normal in world space.
	Normal Vec3

	// Surface is the part of the solid that was hit.
	Surface Surface

	// Multiplicity is 2 when the ray grazes a wall tangentially,
	// 1 otherwise.
	Multiplicity int

	// Object is the primitive that produced the hit.
	Object Object
}

// Entering reports whether the ray enters the solid at this hit.
func (h *Intersection) Entering(r Ray) bool {
	return h.Normal.Dot(r.Direction) < 0
}
