package layout

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/font"
)

// Place computes the glyph positions of text without building solids.
//
// Glyph i sits at the sum of the preceding advances plus i times offset.
// Characters without a glyph use .notdef.
func Place(f *font.Font, text string, offset glyph3d.Vec3, opts ...Option) ([]Placement, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return place(f, []rune(text), offset, cfg)
}

func place(f *font.Font, runes []rune, offset glyph3d.Vec3, cfg config) ([]Placement, error) {
	if len(runes) == 0 {
		return nil, nil
	}

	var (
		ps  []Placement
		err error
	)
	switch cfg.shaper {
	case ShaperHarfbuzz:
		ps, err = defaultHarfbuzz.shape(f, runes)
		if err != nil {
			return nil, fmt.Errorf("layout: shaping failed: %w", err)
		}
	default:
		ps = shapeBuiltin(f, runes)
	}

	var pen glyph3d.Vec3
	for i := range ps {
		ps[i].Origin = ps[i].Origin.Add(pen)
		pen = pen.Add(glyph3d.V3(ps[i].Advance, 0, 0)).Add(offset)
	}
	return ps, nil
}

// Compile builds one compound object from text: an extruded solid of
// the given depth per glyph, each translated to its placement.
//
// An empty string yields an empty union. Errors are returned only for
// font-level failures; a missing character falls back to .notdef.
func Compile(f *font.Font, text string, depth float64, offset glyph3d.Vec3, opts ...Option) (*glyph3d.Union, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ps, err := place(f, []rune(text), offset, cfg)
	if err != nil {
		return nil, err
	}

	u := glyph3d.NewUnion()
	for _, p := range ps {
		g, err := f.GlyphByIndex(p.GID)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		if g.IsEmpty() && !cfg.keepEmpty {
			continue
		}
		s := glyph3d.NewSolid(g, depth, cfg.solidOpts...)
		s.Translate(p.Origin)
		u.Add(s)
	}

	glyph3d.Logger().Debug("layout: compiled",
		slog.Int("runes", len([]rune(text))),
		slog.Int("solids", u.Len()),
		slog.String("shaper", cfg.shaper.String()))

	return u, nil
}
