package glyph3d

// Object is the contract every ray-traceable primitive satisfies.
//
// Transform methods must not be called while another goroutine traces
// rays against the same object; intersection and inside tests are safe
// for concurrent use.
type Object interface {
	// AllIntersections returns every hit of r in ascending distance order,
	// at most maxCandidates of them when maxCandidates is positive.
	AllIntersections(r Ray, maxCandidates int) []Intersection

	// Inside reports whether the world-space point p is inside the object.
	Inside(p Vec3) bool

	// Normal returns the outward unit normal at p. hit should be the
	// intersection that produced p; it may be nil.
	Normal(p Vec3, hit *Intersection) Vec3

	// BoundingBox returns the cached world-space bounding box.
	BoundingBox() Box3

	// ComputeBoundingBox recomputes and caches the world-space bounding box.
	ComputeBoundingBox() Box3

	// Translate moves the object by v.
	Translate(v Vec3)

	// Rotate rotates the object by per-axis angles in degrees (X, then Y, then Z).
	Rotate(degrees Vec3)

	// Scale scales the object. A zero component is rejected.
	Scale(v Vec3) error

	// Transform applies an arbitrary affine transform.
	Transform(m Matrix) error

	// Copy returns an independent copy. Shared outline data is not duplicated.
	Copy() Object
}

// CheckHits verifies that hits pair up into entry/exit pairs along r.
// Tangent hits count twice. It is a diagnostic; intersection routines
// never reject results on its account.
func CheckHits(r Ray, hits []Intersection) error {
	n := 0
	for i := range hits {
		n += max(hits[i].Multiplicity, 1)
	}
	if n%2 != 0 {
		return &OddHitCountError{Ray: r, Hits: n}
	}
	return nil
}
