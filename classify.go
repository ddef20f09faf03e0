package glyph3d

// FillRule selects how crossings of the horizontal probe decide inside.
type FillRule uint8

const (
	// EvenOdd treats a point as inside when the probe crosses the outline
	// an odd number of times. Overlapping contours cancel each other out.
	EvenOdd FillRule = iota

	// NonZero treats a point as inside when the signed crossing count is
	// non-zero.
	NonZero
)

// String returns a string representation of the fill rule.
func (r FillRule) String() string {
	switch r {
	case EvenOdd:
		return "EvenOdd"
	case NonZero:
		return "NonZero"
	default:
		return "Unknown"
	}
}

// probeDir is the direction of the classification probe.
var probeDir = Vec2{X: 1}

// Inside reports whether p lies in the filled region of the glyph.
func (g *Glyph) Inside(p Vec2) bool {
	return g.InsideWithin(p, Unbounded)
}

// InsideWithin is Inside with the probe limited to crossings at
// x-distances in window. Crossings at or behind p never count.
func (g *Glyph) InsideWithin(p Vec2, window Interval) bool {
	count, winding := g.crossings(p, window)
	if g.fillRule == NonZero {
		return winding != 0
	}
	return count&1 == 1
}

// Crossings returns the number of outline crossings of the probe from p
// along +x.
func (g *Glyph) Crossings(p Vec2) int {
	count, _ := g.crossings(p, Unbounded)
	return count
}

func (g *Glyph) crossings(p Vec2, window Interval) (count, winding int) {
	if g.bounds.IsEmpty() || p.Y < g.bounds.Min.Y || p.Y > g.bounds.Max.Y || p.X >= g.bounds.Max.X {
		return 0, 0
	}
	for _, segs := range g.segments {
		for _, seg := range segs {
			n, w := segmentCrossings(seg, p, window)
			count += n
			winding += w
		}
	}
	return count, winding
}

// segmentCrossings counts the crossings of the probe from p with seg.
//
// The segment is split at its y turning point so each piece is monotone
// in y. A piece crosses when its ends lie on different sides of the probe,
// with a point exactly on the probe counted as above. A crossing through a
// shared vertex is then seen by exactly one of the two pieces meeting there,
// and a tangent touch is seen by both or neither.
func segmentCrossings(seg Segment, p Vec2, window Interval) (count, winding int) {
	y0 := seg.Start.Y - p.Y
	y1 := seg.Control.Y - p.Y
	y2 := seg.End.Y - p.Y

	// Convex hull rejection.
	if (y0 < 0) == (y1 < 0) && (y1 < 0) == (y2 < 0) {
		return 0, 0
	}
	if seg.Start.X <= p.X && seg.Control.X <= p.X && seg.End.X <= p.X {
		return 0, 0
	}

	roots := SolveSegment(seg, p, probeDir, Unbounded)

	piece := func(s0, s1, ya, yb float64) {
		if (ya < 0) == (yb < 0) {
			return
		}
		t, ok := pieceRoot(&roots, s0, s1)
		if !ok {
			// Lost to rounding; the end nearest the probe is the crossing.
			s := s1
			if abs(ya) < abs(yb) {
				s = s0
			}
			t = seg.At(s).X - p.X
		}
		if t <= 0 || !window.Contains(t) {
			return
		}
		count++
		if yb > ya {
			winding++
		} else {
			winding--
		}
	}

	if te, ok := seg.yExtremum(); ok {
		ye := seg.At(te).Y - p.Y
		piece(0, te, y0, ye)
		piece(te, 1, ye, y2)
	} else {
		piece(0, 1, y0, y2)
	}
	return count, winding
}

// pieceRoot picks the root whose curve parameter falls in [s0, s1].
func pieceRoot(roots *LineRoots, s0, s1 float64) (float64, bool) {
	const slack = 1e-9
	for _, r := range roots.Slice() {
		if r.S >= s0-slack && r.S <= s1+slack {
			return r.T, true
		}
	}
	return 0, false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
