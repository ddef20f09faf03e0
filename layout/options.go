package layout

import "github.com/gogpu/glyph3d"

// Shaper selects how glyph positions are computed.
type Shaper uint8

const (
	// ShaperBuiltin advances each glyph by its horizontal advance width.
	ShaperBuiltin Shaper = iota

	// ShaperHarfbuzz shapes the string with HarfBuzz, applying kerning
	// and glyph positioning from the font.
	ShaperHarfbuzz
)

// String returns the shaper name.
func (s Shaper) String() string {
	switch s {
	case ShaperBuiltin:
		return "builtin"
	case ShaperHarfbuzz:
		return "harfbuzz"
	default:
		return "unknown"
	}
}

// Option configures Compile and Place.
type Option func(*config)

type config struct {
	shaper    Shaper
	solidOpts []glyph3d.SolidOption
	keepEmpty bool
}

func defaultConfig() config {
	return config{shaper: ShaperBuiltin}
}

// WithShaper selects the shaper. The default is ShaperBuiltin.
func WithShaper(s Shaper) Option {
	return func(c *config) {
		c.shaper = s
	}
}

// WithSolidOptions passes opts to every solid Compile creates.
func WithSolidOptions(opts ...glyph3d.SolidOption) Option {
	return func(c *config) {
		c.solidOpts = append(c.solidOpts, opts...)
	}
}

// WithEmptyGlyphs keeps solids for glyphs without outlines, such as the
// space character. They never produce hits.
func WithEmptyGlyphs(keep bool) Option {
	return func(c *config) {
		c.keepEmpty = keep
	}
}
