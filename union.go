package glyph3d

import (
	"cmp"
	"slices"
)

// Union is a compound object whose children are traced together.
// A compiled text string is one Union with a Solid per glyph.
type Union struct {
	children []Object
	box      Box3
}

// NewUnion returns a union of the given children.
func NewUnion(children ...Object) *Union {
	u := &Union{children: append([]Object(nil), children...)}
	u.ComputeBoundingBox()
	return u
}

// Add appends a child and grows the bounding box.
func (u *Union) Add(o Object) {
	u.children = append(u.children, o)
	u.box = u.box.Union(o.BoundingBox())
}

// Children returns the child objects. The result must not be modified.
func (u *Union) Children() []Object {
	return u.children
}

// Len returns the number of children.
func (u *Union) Len() int {
	return len(u.children)
}

// AllIntersections implements Object. Hits of all children are merged in
// distance order.
func (u *Union) AllIntersections(r Ray, maxCandidates int) []Intersection {
	if _, ok := u.box.IntersectRay(r, Forward()); !ok {
		return nil
	}

	var hits []Intersection
	for _, c := range u.children {
		hits = append(hits, c.AllIntersections(r, 0)...)
	}
	slices.SortStableFunc(hits, func(a, b Intersection) int { return cmp.Compare(a.Depth, b.Depth) })

	if maxCandidates > 0 && len(hits) > maxCandidates {
		hits = hits[:maxCandidates]
	}
	return hits
}

// Inside implements Object. A point is inside when any child contains it.
func (u *Union) Inside(p Vec3) bool {
	if !u.box.Contains(p) {
		return false
	}
	for _, c := range u.children {
		if c.Inside(p) {
			return true
		}
	}
	return false
}

// Normal implements Object by deferring to the child that produced hit.
func (u *Union) Normal(p Vec3, hit *Intersection) Vec3 {
	if hit != nil && hit.Object != nil && hit.Object != Object(u) {
		return hit.Object.Normal(p, hit)
	}
	if hit != nil {
		return hit.Normal
	}
	return Vec3{}
}

// BoundingBox implements Object.
func (u *Union) BoundingBox() Box3 {
	return u.box
}

// ComputeBoundingBox implements Object.
func (u *Union) ComputeBoundingBox() Box3 {
	box := EmptyBox3()
	for _, c := range u.children {
		box = box.Union(c.ComputeBoundingBox())
	}
	u.box = box
	return box
}

// Translate implements Object.
func (u *Union) Translate(v Vec3) {
	for _, c := range u.children {
		c.Translate(v)
	}
	u.ComputeBoundingBox()
}

// Rotate implements Object.
func (u *Union) Rotate(degrees Vec3) {
	for _, c := range u.children {
		c.Rotate(degrees)
	}
	u.ComputeBoundingBox()
}

// Scale implements Object.
func (u *Union) Scale(v Vec3) error {
	if v.X == 0 || v.Y == 0 || v.Z == 0 {
		return ErrSingularTransform
	}
	for _, c := range u.children {
		if err := c.Scale(v); err != nil {
			return err
		}
	}
	u.ComputeBoundingBox()
	return nil
}

// Transform implements Object.
func (u *Union) Transform(m Matrix) error {
	if _, ok := m.Invert(); !ok {
		return ErrSingularTransform
	}
	for _, c := range u.children {
		if err := c.Transform(m); err != nil {
			return err
		}
	}
	u.ComputeBoundingBox()
	return nil
}

// Copy implements Object. Children are copied; glyphs stay shared.
func (u *Union) Copy() Object {
	c := &Union{children: make([]Object, len(u.children)), box: u.box}
	for i, child := range u.children {
		c.children[i] = child.Copy()
	}
	return c
}
