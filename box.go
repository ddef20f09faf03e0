package glyph3d

import "math"

// Box2 is an axis-aligned rectangle in the glyph plane.
type Box2 struct {
	Min, Max Vec2
}

// EmptyBox2 returns a box that contains nothing and grows on Extend.
func EmptyBox2() Box2 {
	return Box2{
		Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box2) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Extend returns the box grown to include p.
func (b Box2) Extend(p Vec2) Box2 {
	return Box2{
		Min: Vec2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Vec2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Contains reports whether p lies in the closed box.
func (b Box2) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Size returns the box extent.
func (b Box2) Size() Vec2 {
	if b.IsEmpty() {
		return Vec2{}
	}
	return b.Max.Sub(b.Min)
}

// Box3 is an axis-aligned box in 3D.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox3 returns a box that contains nothing and grows on Extend.
func EmptyBox3() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend returns the box grown to include p.
func (b Box3) Extend(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box3) Union(o Box3) Box3 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Contains reports whether p lies in the closed box.
func (b Box3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns the eight corner points of the box.
func (b Box3) Corners() [8]Vec3 {
	return [8]Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Transform returns the axis-aligned envelope of the transformed corners.
func (b Box3) Transform(m Matrix) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox3()
	for _, c := range b.Corners() {
		out = out.Extend(m.TransformPoint(c))
	}
	return out
}

// IntersectRay clips the ray against the box using the slab method and
// returns the overlapping parameter range. The result is false when the
// ray misses the box within iv.
func (b Box3) IntersectRay(r Ray, iv Interval) (Interval, bool) {
	if b.IsEmpty() {
		return Interval{}, false
	}
	tmin, tmax := iv.Min, iv.Max

	slab := func(o, d, lo, hi float64) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmin <= tmax
	}

	if !slab(r.Origin.X, r.Direction.X, b.Min.X, b.Max.X) ||
		!slab(r.Origin.Y, r.Direction.Y, b.Min.Y, b.Max.Y) ||
		!slab(r.Origin.Z, r.Direction.Z, b.Min.Z, b.Max.Z) {
		return Interval{}, false
	}
	return Interval{Min: tmin, Max: tmax}, true
}
