package glyph3d

import "math"

// Polynomial root solvers used for curve/line intersection.
//
// SolveQuadratic is based on algorithms from kurbo
// (https://github.com/linebender/kurbo) with adaptations for Go idioms.

// SolveQuadratic finds real roots of the quadratic equation ax^2 + bx + c = 0.
// Returns roots sorted in ascending order.
//
// The function is numerically robust:
// - If a is zero or nearly zero, treats as linear equation
// - If all coefficients are zero, returns a single 0.0
// - Handles edge cases with NaN and Inf gracefully
func SolveQuadratic(a, b, c float64) []float64 {
	// Scale coefficients to avoid overflow in discriminant calculation
	sc0 := c / a
	sc1 := b / a

	if !isFinite(sc0) || !isFinite(sc1) {
		return solveQuadraticLinear(b, c)
	}

	return solveQuadraticNormal(sc0, sc1)
}

// solveQuadraticNormal handles the normal quadratic case with valid scaled coefficients.
func solveQuadraticNormal(sc0, sc1 float64) []float64 {
	arg := sc1*sc1 - 4.0*sc0

	if !isFinite(arg) {
		return solveQuadraticOverflow(sc0, sc1)
	}

	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float64{-0.5 * sc1}
	}

	// Numerically stable formula, see
	// https://math.stackexchange.com/questions/866331
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	root2 := sc0 / root1

	if !isFinite(root2) {
		return []float64{root1}
	}

	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

// solveQuadraticOverflow handles discriminant overflow.
func solveQuadraticOverflow(sc0, sc1 float64) []float64 {
	root1 := -sc1
	root2 := sc0 / root1

	if !isFinite(root2) {
		return []float64{root1}
	}

	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

// solveQuadraticLinear handles the case when a is zero or very small.
func solveQuadraticLinear(b, c float64) []float64 {
	root := -c / b
	if isFinite(root) {
		return []float64{root}
	}

	if c == 0.0 && b == 0.0 {
		return []float64{0.0}
	}

	return nil
}

// Tolerances for the segment solver. Both are relative to the magnitude
// of the coefficients so that font units and em units behave alike.
const (
	// degenerateEps decides when the quadratic term vanishes.
	degenerateEps = 1e-9

	// doubleRootEps decides when the discriminant is treated as zero.
	doubleRootEps = 1e-12

	// unitEps is the slack allowed around [0, 1] before a root is rejected.
	unitEps = 1e-12
)

// LineRoot is one intersection of a line with a segment.
type LineRoot struct {
	// S is the curve parameter in [0, 1].
	S float64

	// T is the distance along the line in multiples of its direction.
	T float64
}

// LineRoots holds the roots found by SolveSegment, sorted by T.
type LineRoots struct {
	Roots [2]LineRoot
	N     int

	// Double is set when the line is tangent to the curve. Both
	// companions are then present in Roots with equal values.
	Double bool
}

// Slice returns the valid roots.
func (lr *LineRoots) Slice() []LineRoot {
	return lr.Roots[:lr.N]
}

func (lr *LineRoots) add(r LineRoot) {
	lr.Roots[lr.N] = r
	lr.N++
}

// SolveSegment intersects the line origin + t*dir with a quadratic segment.
//
// The segment is offset by origin and the signed distance of the curve
// from the line, cross(dir, seg(s) - origin), is solved for s. Roots with s
// outside [0, 1] or t outside window are discarded. When the quadratic
// coefficient vanishes the linear solution is used; a segment parallel to
// the line, or a zero direction, yields no roots.
func SolveSegment(seg Segment, origin, dir Vec2, window Interval) LineRoots {
	var out LineRoots

	dd := dir.LengthSq()
	if dd == 0 {
		return out
	}

	a := seg.Start.Sub(origin)
	b := seg.Control.Sub(origin)
	c := seg.End.Sub(origin)

	ca := dir.Cross(a)
	cb := dir.Cross(b)
	cc := dir.Cross(c)

	qa := ca - 2*cb + cc
	qb := 2 * (cb - ca)
	qc := ca

	scale := math.Abs(ca) + 2*math.Abs(cb) + math.Abs(cc)
	if scale == 0 {
		// Collinear with the line.
		return out
	}

	accept := func(s float64) (LineRoot, bool) {
		if s < -unitEps || s > 1+unitEps || math.IsNaN(s) {
			return LineRoot{}, false
		}
		s = clampUnit(s)
		p := bezierAt(a, b, c, s)
		t := dir.Dot(p) / dd
		if !window.Contains(t) {
			return LineRoot{}, false
		}
		return LineRoot{S: s, T: t}, true
	}

	if seg.Linear || math.Abs(qa) <= degenerateEps*scale {
		if math.Abs(qb) <= degenerateEps*scale {
			return out
		}
		if r, ok := accept(-qc / qb); ok {
			out.add(r)
		}
		return out
	}

	disc := qb*qb - 4*qa*qc
	if math.Abs(disc) <= doubleRootEps*(qb*qb+math.Abs(4*qa*qc)) {
		if r, ok := accept(-qb / (2 * qa)); ok {
			out.add(r)
			out.add(r)
			out.Double = true
		}
		return out
	}
	if disc < 0 {
		return out
	}

	for _, s := range SolveQuadratic(qa, qb, qc) {
		if out.N == len(out.Roots) {
			break
		}
		if r, ok := accept(s); ok {
			out.add(r)
		}
	}
	if out.N == 2 && out.Roots[0].T > out.Roots[1].T {
		out.Roots[0], out.Roots[1] = out.Roots[1], out.Roots[0]
	}
	return out
}

// bezierAt evaluates the quadratic Bezier a, b, c at s.
func bezierAt(a, b, c Vec2, s float64) Vec2 {
	u := 1 - s
	w0 := u * u
	w1 := 2 * u * s
	w2 := s * s
	return Vec2{
		X: w0*a.X + w1*b.X + w2*c.X,
		Y: w0*a.Y + w1*b.Y + w2*c.Y,
	}
}

func clampUnit(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
