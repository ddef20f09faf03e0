package glyph3d

import "math"

// Matrix represents a 3D affine transformation matrix.
// It uses a 3x4 matrix in row-major order:
//
//	| a  b  c  d |
//	| e  f  g  h |
//	| i  j  k  l |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c*z + d
//	y' = e*x + f*y + g*z + h
//	z' = i*x + j*y + k*z + l
type Matrix struct {
	A, B, C, D float64
	E, F, G, H float64
	I, J, K, L float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1,
		F: 1,
		K: 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Matrix {
	return Matrix{
		A: 1, D: v.X,
		F: 1, H: v.Y,
		K: 1, L: v.Z,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Matrix {
	return Matrix{
		A: v.X,
		F: v.Y,
		K: v.Z,
	}
}

// RotateX creates a rotation about the X axis (angle in radians).
func RotateX(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: 1,
		F: cos, G: -sin,
		J: sin, K: cos,
	}
}

// RotateY creates a rotation about the Y axis (angle in radians).
func RotateY(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, C: sin,
		F: 1,
		I: -sin, K: cos,
	}
}

// RotateZ creates a rotation about the Z axis (angle in radians).
func RotateZ(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		E: sin, F: cos,
		K: 1,
	}
}

// RotateEuler creates a rotation from per-axis angles in degrees,
// applied about X first, then Y, then Z.
func RotateEuler(degrees Vec3) Matrix {
	const rad = math.Pi / 180
	return RotateZ(degrees.Z * rad).
		Multiply(RotateY(degrees.Y * rad)).
		Multiply(RotateX(degrees.X * rad))
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.E + m.C*o.I,
		B: m.A*o.B + m.B*o.F + m.C*o.J,
		C: m.A*o.C + m.B*o.G + m.C*o.K,
		D: m.A*o.D + m.B*o.H + m.C*o.L + m.D,

		E: m.E*o.A + m.F*o.E + m.G*o.I,
		F: m.E*o.B + m.F*o.F + m.G*o.J,
		G: m.E*o.C + m.F*o.G + m.G*o.K,
		H: m.E*o.D + m.F*o.H + m.G*o.L + m.H,

		I: m.I*o.A + m.J*o.E + m.K*o.I,
		J: m.I*o.B + m.J*o.F + m.K*o.J,
		K: m.I*o.C + m.J*o.G + m.K*o.K,
		L: m.I*o.D + m.J*o.H + m.K*o.L + m.L,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.A*p.X + m.B*p.Y + m.C*p.Z + m.D,
		Y: m.E*p.X + m.F*p.Y + m.G*p.Z + m.H,
		Z: m.I*p.X + m.J*p.Y + m.K*p.Z + m.L,
	}
}

// TransformDirection applies the transformation to a direction (no translation).
func (m Matrix) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		X: m.A*v.X + m.B*v.Y + m.C*v.Z,
		Y: m.E*v.X + m.F*v.Y + m.G*v.Z,
		Z: m.I*v.X + m.J*v.Y + m.K*v.Z,
	}
}

// TransformNormal transforms a surface normal by the transpose of m.
// Call it on the inverse matrix to carry a normal from object to world space.
// The result is not normalized.
func (m Matrix) TransformNormal(n Vec3) Vec3 {
	return Vec3{
		X: m.A*n.X + m.E*n.Y + m.I*n.Z,
		Y: m.B*n.X + m.F*n.Y + m.J*n.Z,
		Z: m.C*n.X + m.G*n.Y + m.K*n.Z,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*(m.F*m.K-m.G*m.J) -
		m.B*(m.E*m.K-m.G*m.I) +
		m.C*(m.E*m.J-m.F*m.I)
}

// Invert returns the inverse matrix.
// Returns the identity matrix and false if the matrix is not invertible.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}

	invDet := 1.0 / det
	inv := Matrix{
		A: (m.F*m.K - m.G*m.J) * invDet,
		B: (m.C*m.J - m.B*m.K) * invDet,
		C: (m.B*m.G - m.C*m.F) * invDet,

		E: (m.G*m.I - m.E*m.K) * invDet,
		F: (m.A*m.K - m.C*m.I) * invDet,
		G: (m.C*m.E - m.A*m.G) * invDet,

		I: (m.E*m.J - m.F*m.I) * invDet,
		J: (m.B*m.I - m.A*m.J) * invDet,
		K: (m.A*m.F - m.B*m.E) * invDet,
	}

	// Translation: -inv3x3 * t
	inv.D = -(inv.A*m.D + inv.B*m.H + inv.C*m.L)
	inv.H = -(inv.E*m.D + inv.F*m.H + inv.G*m.L)
	inv.L = -(inv.I*m.D + inv.J*m.H + inv.K*m.L)

	return inv, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Transform pairs a matrix with its inverse. Objects keep both so that
// rays are carried into object space and results back out without
// inverting per ray.
type Transform struct {
	Matrix  Matrix
	Inverse Matrix
}

// NewTransform returns the transform for m.
// The second result is false when m is singular; the inverse is then identity.
func NewTransform(m Matrix) (Transform, bool) {
	inv, ok := m.Invert()
	return Transform{Matrix: m, Inverse: inv}, ok
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{Matrix: Identity(), Inverse: Identity()}
}

// Compose returns the transform that applies t first and then other.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Matrix:  other.Matrix.Multiply(t.Matrix),
		Inverse: t.Inverse.Multiply(other.Inverse),
	}
}
