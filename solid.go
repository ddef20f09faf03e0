package glyph3d

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
)

// parallelEps decides when a ray is parallel to the caps or to the
// extrusion axis, relative to the squared direction length.
const parallelEps = 1e-18

// vertexEps is the curve parameter below which a wall root sits on the
// segment's start vertex.
const vertexEps = 1e-9

// Solid is a glyph outline extruded along local Z: the front cap lies at
// z = 0, the back cap at z = depth, and the wall sweeps every contour
// segment between them.
//
// The glyph is borrowed, not owned; many solids may share one Glyph.
type Solid struct {
	glyph  *Glyph
	depth  float64
	trans  Transform
	box    Box3
	window Interval
}

// localHit is an intersection in object space before it is carried to
// world space.
type localHit struct {
	t       float64
	normal  Vec3
	surface Surface
	mult    int
}

// NewSolid extrudes g to the given depth. A negative depth is taken by
// absolute value.
func NewSolid(g *Glyph, depth float64, opts ...SolidOption) *Solid {
	o := defaultSolidOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Solid{
		glyph:  g,
		depth:  math.Abs(depth),
		trans:  o.transform,
		window: o.window,
	}
	s.ComputeBoundingBox()
	return s
}

// Glyph returns the extruded outline.
func (s *Solid) Glyph() *Glyph {
	return s.glyph
}

// Depth returns the extrusion depth.
func (s *Solid) Depth() float64 {
	return s.depth
}

// Transformation returns the object-to-world transform.
func (s *Solid) Transformation() Transform {
	return s.trans
}

// AllIntersections implements Object.
func (s *Solid) AllIntersections(r Ray, maxCandidates int) []Intersection {
	return s.Intersect(r, s.window, maxCandidates)
}

// Intersect returns the hits of r with distances in window, sorted by
// distance and truncated to maxCandidates when it is positive.
func (s *Solid) Intersect(r Ray, window Interval, maxCandidates int) []Intersection {
	if s.glyph == nil {
		return nil
	}
	if _, ok := s.box.IntersectRay(r, window); !ok {
		return nil
	}

	local := Ray{
		Origin:    s.trans.Inverse.TransformPoint(r.Origin),
		Direction: s.trans.Inverse.TransformDirection(r.Direction),
	}

	lh := s.localHits(local, window, make([]localHit, 0, 4))
	if len(lh) == 0 {
		return nil
	}
	slices.SortFunc(lh, func(a, b localHit) int { return cmp.Compare(a.t, b.t) })

	hits := make([]Intersection, len(lh))
	for i, h := range lh {
		hits[i] = Intersection{
			Depth:        h.t,
			Point:        r.At(h.t),
			Normal:       s.trans.Inverse.TransformNormal(h.normal).Normalize(),
			Surface:      h.surface,
			Multiplicity: h.mult,
			Object:       s,
		}
	}

	if err := CheckHits(r, hits); err != nil {
		Logger().Debug("glyph3d: unpaired hits",
			slog.Int("glyph", int(s.glyph.Index)),
			slog.Any("err", err))
	}

	if maxCandidates > 0 && len(hits) > maxCandidates {
		hits = hits[:maxCandidates]
	}
	return hits
}

// localHits appends the object-space hits of r to dst.
func (s *Solid) localHits(r Ray, window Interval, dst []localHit) []localHit {
	g := s.glyph
	p, d := r.Origin, r.Direction
	dd := d.LengthSq()
	if dd == 0 {
		return dst
	}

	// Caps.
	if d.Z*d.Z > parallelEps*dd {
		caps := [2]struct {
			z       float64
			nz      float64
			surface Surface
		}{
			{z: 0, nz: -1, surface: SurfaceFrontCap},
			{z: s.depth, nz: 1, surface: SurfaceBackCap},
		}
		for _, c := range caps {
			t := (c.z - p.Z) / d.Z
			if !window.Contains(t) {
				continue
			}
			xy := Vec2{X: p.X + t*d.X, Y: p.Y + t*d.Y}
			if g.Inside(xy) {
				dst = append(dst, localHit{t: t, normal: Vec3{Z: c.nz}, surface: c.surface, mult: 1})
			}
		}
	}

	// Wall. A ray along the extrusion axis can only meet the caps.
	d2 := d.XY()
	if d2.LengthSq() <= parallelEps*dd {
		return dst
	}
	o2 := p.XY()
	for i, segs := range g.segments {
		for j, seg := range segs {
			roots := SolveSegment(seg, o2, d2, window)
			for k, root := range roots.Slice() {
				if roots.Double && k > 0 {
					break
				}
				// The following segment owns the shared vertex.
				if root.S >= 1 {
					continue
				}
				z := p.Z + root.T*d.Z
				if z < 0 || z > s.depth {
					continue
				}
				n := g.wallNormal(i, j, root.S)
				mult := 1
				if roots.Double || (root.S <= vertexEps && g.touchesVertex(i, j, o2, d2)) {
					mult = 2
				}
				dst = append(dst, localHit{
					t:       root.T,
					normal:  Vec3{X: n.X, Y: n.Y},
					surface: SurfaceWall,
					mult:    mult,
				})
			}
		}
	}
	return dst
}

// touchesVertex reports whether the line o + t*d meets the start vertex of
// segment j of contour i without crossing the outline there. The sides
// are read from the control points, which fix the tangents at the vertex.
func (g *Glyph) touchesVertex(i, j int, o, d Vec2) bool {
	segs := g.segments[i]
	prev := segs[(j+len(segs)-1)%len(segs)]
	before := d.Cross(prev.Control.Sub(o))
	after := d.Cross(segs[j].Control.Sub(o))
	return before*after > 0
}

// Inside implements Object. The point must lie between the caps and its
// projection inside the outline.
func (s *Solid) Inside(p Vec3) bool {
	if s.glyph == nil {
		return false
	}
	lp := s.trans.Inverse.TransformPoint(p)
	if lp.Z < 0 || lp.Z > s.depth {
		return false
	}
	return s.glyph.Inside(lp.XY())
}

// Normal implements Object. With a hit from this solid the stored normal is
// returned; otherwise the normal of the nearest surface to p is computed.
func (s *Solid) Normal(p Vec3, hit *Intersection) Vec3 {
	if hit != nil && !hit.Normal.IsZero() {
		return hit.Normal
	}
	if s.glyph == nil {
		return Vec3{}
	}

	lp := s.trans.Inverse.TransformPoint(p)
	n := s.nearestNormal(lp)
	return s.trans.Inverse.TransformNormal(n).Normalize()
}

// nearestNormal returns the object-space normal of the surface closest to p.
func (s *Solid) nearestNormal(p Vec3) Vec3 {
	bestDist := math.Inf(1)
	var best Vec3

	if s.glyph.Inside(p.XY()) {
		if dz := math.Abs(p.Z); dz < bestDist {
			bestDist, best = dz, Vec3{Z: -1}
		}
		if dz := math.Abs(p.Z - s.depth); dz < bestDist {
			bestDist, best = dz, Vec3{Z: 1}
		}
	}

	// Coarse sampling is enough here; hits carry exact normals.
	const samples = 16
	p2 := p.XY()
	for i, segs := range s.glyph.segments {
		for j, seg := range segs {
			for k := 0; k <= samples; k++ {
				t := float64(k) / samples
				dist := seg.At(t).Sub(p2).Length()
				if dist < bestDist {
					n := s.glyph.wallNormal(i, j, t)
					bestDist, best = dist, Vec3{X: n.X, Y: n.Y}
				}
			}
		}
	}
	return best
}

// BoundingBox implements Object.
func (s *Solid) BoundingBox() Box3 {
	return s.box
}

// ComputeBoundingBox implements Object. The local box spans every contour
// point and z in [0, depth]; the world box is the envelope of its
// transformed corners.
func (s *Solid) ComputeBoundingBox() Box3 {
	if s.glyph == nil || s.glyph.bounds.IsEmpty() {
		s.box = EmptyBox3()
		return s.box
	}
	b := s.glyph.bounds
	local := Box3{
		Min: Vec3{X: b.Min.X, Y: b.Min.Y, Z: 0},
		Max: Vec3{X: b.Max.X, Y: b.Max.Y, Z: s.depth},
	}
	s.box = local.Transform(s.trans.Matrix)
	return s.box
}

// Translate implements Object.
func (s *Solid) Translate(v Vec3) {
	s.apply(Transform{Matrix: Translate(v), Inverse: Translate(v.Neg())})
}

// Rotate implements Object.
func (s *Solid) Rotate(degrees Vec3) {
	m := RotateEuler(degrees)
	// Rotations are orthonormal; the inverse is always available.
	t, _ := NewTransform(m)
	s.apply(t)
}

// Scale implements Object.
func (s *Solid) Scale(v Vec3) error {
	if v.X == 0 || v.Y == 0 || v.Z == 0 {
		return ErrSingularTransform
	}
	s.apply(Transform{
		Matrix:  Scale(v),
		Inverse: Scale(Vec3{X: 1 / v.X, Y: 1 / v.Y, Z: 1 / v.Z}),
	})
	return nil
}

// Transform implements Object.
func (s *Solid) Transform(m Matrix) error {
	t, ok := NewTransform(m)
	if !ok {
		return ErrSingularTransform
	}
	s.apply(t)
	return nil
}

func (s *Solid) apply(t Transform) {
	s.trans = s.trans.Compose(t)
	s.ComputeBoundingBox()
}

// Copy implements Object. The copy shares the glyph.
func (s *Solid) Copy() Object {
	c := *s
	return &c
}
