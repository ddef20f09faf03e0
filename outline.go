package glyph3d

import "log/slog"

// minContourPoints is the fewest points that can enclose an area.
// Shorter contours are kept but contribute no segments.
const minContourPoints = 3

// ContourPoint is a point of a TrueType-style contour.
// Off-curve points are quadratic control points.
type ContourPoint struct {
	X, Y    float64
	OnCurve bool
}

// On returns an on-curve point.
func On(x, y float64) ContourPoint {
	return ContourPoint{X: x, Y: y, OnCurve: true}
}

// Off returns an off-curve control point.
func Off(x, y float64) ContourPoint {
	return ContourPoint{X: x, Y: y}
}

// Vec returns the point coordinates.
func (p ContourPoint) Vec() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// Contour is a closed sequence of points; the last point connects back
// to the first.
type Contour []ContourPoint

// Segment is a quadratic Bezier piece of a normalized contour.
// Straight pieces use the chord midpoint as control and set Linear.
type Segment struct {
	Start, Control, End Vec2
	Linear              bool
}

// Line returns a straight segment from p to q.
func Line(p, q Vec2) Segment {
	return Segment{Start: p, Control: p.Lerp(q, 0.5), End: q, Linear: true}
}

// Quad returns a quadratic segment.
func Quad(p, c, q Vec2) Segment {
	return Segment{Start: p, Control: c, End: q}
}

// At evaluates the segment at parameter t in [0, 1].
func (s Segment) At(t float64) Vec2 {
	return bezierAt(s.Start, s.Control, s.End, t)
}

// Tangent returns the (unnormalized) derivative at parameter t.
func (s Segment) Tangent(t float64) Vec2 {
	d0 := s.Control.Sub(s.Start)
	d1 := s.End.Sub(s.Control)
	return d0.Lerp(d1, t).Mul(2)
}

// yExtremum returns the parameter of the y turning point when it lies
// strictly inside (0, 1).
func (s Segment) yExtremum() (float64, bool) {
	den := s.Start.Y - 2*s.Control.Y + s.End.Y
	if s.Linear || den == 0 {
		return 0, false
	}
	t := (s.Start.Y - s.Control.Y) / den
	if t <= 0 || t >= 1 {
		return 0, false
	}
	return t, true
}

// Glyph is the outline of one character, ready for intersection.
//
// A Glyph is immutable once built and safe for concurrent use. Solids
// reference it by pointer; it is never copied per instance.
type Glyph struct {
	contours []Contour
	segments [][]Segment

	// outward holds, per contour, the sign that turns Segment.Tangent's
	// clockwise perpendicular into the outward wall normal.
	outward []float64

	bounds   Box2
	fillRule FillRule

	// Index is the glyph index in its font, if any.
	Index uint16

	// Advance is the horizontal advance in the glyph's units.
	Advance float64
}

// NewGlyph builds a glyph from raw contours. Implied on-curve points
// between consecutive control points are materialized here once, so the
// intersection path only ever sees (start, control, end) triples.
func NewGlyph(contours []Contour, opts ...GlyphOption) *Glyph {
	o := defaultGlyphOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Glyph{
		contours: make([]Contour, len(contours)),
		segments: make([][]Segment, len(contours)),
		outward:  make([]float64, len(contours)),
		bounds:   EmptyBox2(),
		fillRule: o.fillRule,
		Index:    o.index,
		Advance:  o.advance,
	}

	for i, c := range contours {
		g.contours[i] = append(Contour(nil), c...)
		for _, p := range c {
			g.bounds = g.bounds.Extend(p.Vec())
		}
		if len(c) < minContourPoints {
			Logger().Debug("glyph3d: skipping malformed contour",
				slog.Int("contour", i),
				slog.Int("points", len(c)),
				slog.Int("glyph", int(o.index)))
			continue
		}
		g.segments[i] = normalizeContour(c)
	}

	for i := range g.segments {
		g.outward[i] = g.contourOrientation(i)
	}

	return g
}

// Contours returns the raw contours. The result must not be modified.
func (g *Glyph) Contours() []Contour {
	return g.contours
}

// Segments returns the normalized segments of contour i.
// The result must not be modified.
func (g *Glyph) Segments(i int) []Segment {
	return g.segments[i]
}

// SegmentCount returns the total number of segments.
func (g *Glyph) SegmentCount() int {
	n := 0
	for _, s := range g.segments {
		n += len(s)
	}
	return n
}

// IsEmpty returns true if the glyph has no drawable segments.
func (g *Glyph) IsEmpty() bool {
	return g.SegmentCount() == 0
}

// Bounds returns the box of every contour point, on and off curve.
// Control points may lie outside the curve, so this is a conservative bound.
func (g *Glyph) Bounds() Box2 {
	return g.bounds
}

// FillRule returns the inside rule used by the glyph.
func (g *Glyph) FillRule() FillRule {
	return g.fillRule
}

// normalizeContour converts a closed on/off-curve point list into
// quadratic segments.
func normalizeContour(c Contour) []Segment {
	n := len(c)

	// Insert the implied on-curve midpoint between each pair of
	// consecutive control points, including the wrap-around pair.
	ext := make([]ContourPoint, 0, 2*n)
	for i, cur := range c {
		prev := c[(i+n-1)%n]
		if !prev.OnCurve && !cur.OnCurve {
			ext = append(ext, On((prev.X+cur.X)/2, (prev.Y+cur.Y)/2))
		}
		ext = append(ext, cur)
	}

	m := len(ext)
	offs := -1
	for i, p := range ext {
		if p.OnCurve {
			offs = i
			break
		}
	}
	if offs < 0 {
		// Only reachable for a single control point repeated; nothing to draw.
		return nil
	}

	segs := make([]Segment, 0, m)
	for i := 0; i < m; {
		p0 := ext[(offs+i)%m]
		p1 := ext[(offs+i+1)%m]
		if p1.OnCurve {
			segs = append(segs, Line(p0.Vec(), p1.Vec()))
			i++
			continue
		}
		p2 := ext[(offs+i+2)%m]
		segs = append(segs, Quad(p0.Vec(), p1.Vec(), p2.Vec()))
		i += 2
	}
	return segs
}

// contourOrientation probes beside the longest segment of contour i to
// find which side of it is filled. Returns +1 when the filled side is on
// the left of the direction of travel, -1 otherwise, and 0 for contours
// without segments.
func (g *Glyph) contourOrientation(i int) float64 {
	segs := g.segments[i]
	if len(segs) == 0 {
		return 0
	}

	best := 0
	bestLen := -1.0
	for j, s := range segs {
		if l := s.End.Sub(s.Start).LengthSq() + s.Control.Sub(s.Start).LengthSq(); l > bestLen {
			best, bestLen = j, l
		}
	}

	s := segs[best]
	mid := s.At(0.5)
	left := s.Tangent(0.5).Perp().Normalize()
	if left.IsZero() {
		return 1
	}

	size := g.bounds.Size()
	eps := 1e-7 * max(size.X, size.Y, 1e-9)
	if g.Inside(mid.Add(left.Mul(eps))) {
		return 1
	}
	return -1
}

// wallNormal returns the outward unit normal of segment j of contour i
// at parameter t, in the glyph plane.
func (g *Glyph) wallNormal(i, j int, t float64) Vec2 {
	tan := g.segments[i][j].Tangent(t)
	if tan.IsZero() {
		// Degenerate control at an endpoint; fall back to the chord.
		seg := g.segments[i][j]
		tan = seg.End.Sub(seg.Start)
	}
	// Clockwise perpendicular points right of travel; when the fill is on
	// the left that is outward.
	right := Vec2{X: tan.Y, Y: -tan.X}.Normalize()
	if g.outward[i] < 0 {
		return right.Mul(-1)
	}
	return right
}
