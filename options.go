package glyph3d

// GlyphOption configures a Glyph during construction.
//
// Example:
//
//	g := glyph3d.NewGlyph(contours,
//	    glyph3d.WithFillRule(glyph3d.NonZero),
//	    glyph3d.WithAdvance(0.6))
type GlyphOption func(*glyphOptions)

// glyphOptions holds optional configuration for Glyph creation.
type glyphOptions struct {
	fillRule FillRule
	index    uint16
	advance  float64
}

// defaultGlyphOptions returns the default glyph options.
func defaultGlyphOptions() glyphOptions {
	return glyphOptions{
		fillRule: EvenOdd,
	}
}

// WithFillRule sets the inside rule for the glyph.
// The default is EvenOdd, which counts crossings and lets overlapping
// contours cancel out. NonZero follows contour direction instead.
func WithFillRule(r FillRule) GlyphOption {
	return func(o *glyphOptions) {
		o.fillRule = r
	}
}

// WithGlyphIndex records the glyph's index in its font.
func WithGlyphIndex(gid uint16) GlyphOption {
	return func(o *glyphOptions) {
		o.index = gid
	}
}

// WithAdvance records the horizontal advance of the glyph.
func WithAdvance(adv float64) GlyphOption {
	return func(o *glyphOptions) {
		o.advance = adv
	}
}

// SolidOption configures a Solid during construction.
type SolidOption func(*solidOptions)

// solidOptions holds optional configuration for Solid creation.
type solidOptions struct {
	transform Transform
	window    Interval
}

// defaultSolidOptions returns the default solid options.
func defaultSolidOptions() solidOptions {
	return solidOptions{
		transform: IdentityTransform(),
		window:    Forward(),
	}
}

// WithTransform sets the initial object-to-world transform.
func WithTransform(t Transform) SolidOption {
	return func(o *solidOptions) {
		o.transform = t
	}
}

// WithMinDistance sets the smallest ray distance AllIntersections reports.
// Values below zero let hits behind the ray origin through.
func WithMinDistance(d float64) SolidOption {
	return func(o *solidOptions) {
		o.window.Min = d
	}
}
