package layout

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/cache"
	"github.com/gogpu/glyph3d/font"
)

// Placement is one positioned glyph of a laid out string.
type Placement struct {
	// Rune is the character the glyph was produced for.
	Rune rune

	// GID is the glyph index; 0 when the font has no glyph for Rune.
	GID uint16

	// Origin is the glyph's baseline origin in em units, including the
	// accumulated per-character offset.
	Origin glyph3d.Vec3

	// Advance is the horizontal pen advance after the glyph, in em units.
	Advance float64
}

// shapeBuiltin positions glyphs by their advance widths.
func shapeBuiltin(f *font.Font, runes []rune) []Placement {
	out := make([]Placement, len(runes))
	for i, r := range runes {
		gid, ok := f.GlyphIndex(r)
		if !ok {
			glyph3d.Logger().Debug("layout: no glyph, using .notdef", slog.String("rune", string(r)))
		}
		out[i] = Placement{Rune: r, GID: gid, Advance: f.AdvanceByIndex(gid)}
	}
	return out
}

// harfbuzz shapes text with go-text/typesetting. Parsed fonts are kept
// per font ID in a bounded store; font.Face and HarfbuzzShaper are not
// safe for concurrent use, so a face is made per call and shapers are
// pooled.
type harfbuzz struct {
	pool  sync.Pool
	fonts *cache.Store[uint64, *gtfont.Font]
}

// parsedFontCapacity is the per-shard number of parsed fonts kept.
const parsedFontCapacity = 4

func newHarfbuzz(capacity int) *harfbuzz {
	return &harfbuzz{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		// Font IDs are already hashes.
		fonts: cache.New[uint64, *gtfont.Font](capacity, func(id uint64) uint64 { return id }),
	}
}

var defaultHarfbuzz = newHarfbuzz(parsedFontCapacity)

func (h *harfbuzz) font(f *font.Font) (*gtfont.Font, error) {
	return h.fonts.Load(f.ID(), func() (*gtfont.Font, error) {
		face, err := gtfont.ParseTTF(bytes.NewReader(f.Data()))
		if err != nil {
			return nil, err
		}
		return face.Font, nil
	})
}

// shape returns one placement per output glyph. Ligatures may produce
// fewer placements than runes.
func (h *harfbuzz) shape(f *font.Font, runes []rune) ([]Placement, error) {
	gf, err := h.font(f)
	if err != nil {
		return nil, err
	}

	upem := float64(f.UnitsPerEm())
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(gf),
		// At one pixel per font unit the output is in font units.
		Size:     fixed.I(f.UnitsPerEm()),
		Script:   detectScript(runes),
		Language: language.NewLanguage("en"),
	}

	hb := h.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	h.pool.Put(hb)

	toEm := func(v fixed.Int26_6) float64 { return float64(v) / 64 / upem }

	out := make([]Placement, len(output.Glyphs))
	for i, g := range output.Glyphs {
		idx := g.TextIndex()
		var r rune
		if idx >= 0 && idx < len(runes) {
			r = runes[idx]
		}
		out[i] = Placement{
			Rune:    r,
			GID:     uint16(g.GlyphID), //nolint:gosec // TrueType glyph indices are 16 bit
			Origin:  glyph3d.V3(toEm(g.XOffset), toEm(g.YOffset), 0),
			Advance: toEm(g.Advance),
		}
	}
	return out, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
