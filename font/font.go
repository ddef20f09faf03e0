package font

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/cache"
)

// Font is a parsed font that hands out extrudable glyphs.
//
// Font is safe for concurrent use.
type Font struct {
	id   uint64
	data []byte
	name string

	upem      float64
	ascent    float64
	descent   float64
	lineGap   float64
	numGlyphs int

	// ttf is nil when the raw glyf reader cannot handle the font; every
	// lookup then goes through sf.
	ttf  *sfnt.Font
	cmap cmap.Subtable
	glyf *glyf.Outlines
	sf   *xsfnt.Font

	charset  charset
	fillRule glyph3d.FillRule
	store    *Store
}

// Parse parses TrueType or OpenType data. The data is copied.
func Parse(data []byte, opts ...Option) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cs, err := lookupCharset(cfg.charset)
	if err != nil {
		return nil, err
	}

	buf := bytes.Clone(data)
	sf, err := xsfnt.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	if sf.NumGlyphs() == 0 {
		return nil, ErrNoOutlines
	}

	f := &Font{
		id:        fontKey(buf, cfg.fillRule),
		data:      buf,
		sf:        sf,
		upem:      float64(sf.UnitsPerEm()),
		numGlyphs: sf.NumGlyphs(),
		charset:   cs,
		fillRule:  cfg.fillRule,
		store:     cfg.store,
	}
	if f.store == nil {
		f.store = NewStore(cfg.capacity)
	}

	if ttf, err := sfnt.Read(bytes.NewReader(buf)); err == nil {
		f.useTTF(ttf)
	} else {
		glyph3d.Logger().Debug("font: raw glyf reader unavailable, using fallback",
			slog.Any("err", err))
		f.useFallbackMetrics()
	}

	glyph3d.Logger().Info("font: loaded",
		slog.String("family", f.name),
		slog.Int("glyphs", f.numGlyphs),
		slog.Int("unitsPerEm", int(f.upem)),
		slog.Bool("glyf", f.glyf != nil))

	return f, nil
}

// Open reads and parses a font file.
func Open(path string, opts ...Option) (*Font, error) {
	// #nosec G304 -- font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read font file: %w", err)
	}
	return Parse(data, opts...)
}

// GoRegular returns the Go Regular font bundled with golang.org/x/image.
func GoRegular(opts ...Option) (*Font, error) {
	return Parse(goregular.TTF, opts...)
}

// fontKey identifies the glyphs decoded from data under fill rule r.
func fontKey(data []byte, r glyph3d.FillRule) uint64 {
	id := cache.FontID(data)
	if r != glyph3d.EvenOdd {
		id = cache.HashKey(cache.Key{Font: id, GID: uint16(r)})
	}
	return id
}

func (f *Font) useTTF(ttf *sfnt.Font) {
	f.ttf = ttf
	f.name = ttf.FamilyName
	if ttf.UnitsPerEm != 0 {
		f.upem = float64(ttf.UnitsPerEm)
	}
	f.ascent = float64(ttf.Ascent) / f.upem
	f.descent = float64(ttf.Descent) / f.upem
	f.lineGap = float64(ttf.LineGap) / f.upem

	if o, ok := ttf.Outlines.(*glyf.Outlines); ok {
		f.glyf = o
	}
	if sub, err := ttf.CMapTable.GetBest(); err == nil {
		f.cmap = sub
	}
}

func (f *Font) useFallbackMetrics() {
	var buf xsfnt.Buffer
	if name, err := f.sf.Name(&buf, xsfnt.NameIDFamily); err == nil {
		f.name = name
	}
	m, err := f.sf.Metrics(&buf, f.ppem(), xfont.HintingNone)
	if err != nil {
		return
	}
	scale := 1 / (64 * f.upem)
	f.ascent = float64(m.Ascent) * scale
	f.descent = -float64(m.Descent) * scale
	f.lineGap = float64(m.Height-m.Ascent-m.Descent) * scale
}

// ppem is the size at which x/image reports coordinates in font units.
func (f *Font) ppem() fixed.Int26_6 {
	return fixed.I(int(f.upem))
}

// Name returns the font family name.
func (f *Font) Name() string {
	return f.name
}

// Data returns the raw font data. The result must not be modified.
func (f *Font) Data() []byte {
	return f.data
}

// ID returns the identity under which the font's glyphs are stored.
func (f *Font) ID() uint64 {
	return f.id
}

// UnitsPerEm returns the design units per em.
func (f *Font) UnitsPerEm() int {
	return int(f.upem)
}

// Ascent returns the distance from the baseline to the top of the font,
// in em units.
func (f *Font) Ascent() float64 {
	return f.ascent
}

// Descent returns the (negative) distance from the baseline to the bottom
// of the font, in em units.
func (f *Font) Descent() float64 {
	return f.descent
}

// LineGap returns the extra line spacing in em units.
func (f *Font) LineGap() float64 {
	return f.lineGap
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.numGlyphs
}

// Charset returns the name of the charset used by Decode.
func (f *Font) Charset() string {
	return f.charset.name
}

// Decode converts raw text bytes to characters using the font's charset.
func (f *Font) Decode(text []byte) string {
	return f.charset.decode(text)
}

// Store returns the glyph store backing the font.
func (f *Font) Store() *Store {
	return f.store
}

// GlyphIndex returns the glyph index for r. The second result is false
// when the font has no glyph for r.
func (f *Font) GlyphIndex(r rune) (uint16, bool) {
	if f.cmap != nil {
		gid := f.cmap.Lookup(r)
		return uint16(gid), gid != 0
	}
	var buf xsfnt.Buffer
	x, err := f.sf.GlyphIndex(&buf, r)
	if err != nil || x == 0 {
		return 0, false
	}
	return uint16(x), true
}

// Glyph returns the outline of r.
// A missing character yields a *GlyphError wrapping ErrGlyphNotFound.
func (f *Font) Glyph(r rune) (*glyph3d.Glyph, error) {
	gid, ok := f.GlyphIndex(r)
	if !ok {
		return nil, &GlyphError{Rune: r, Err: ErrGlyphNotFound}
	}
	g, err := f.load(gid)
	if err != nil {
		return nil, &GlyphError{Rune: r, GID: gid, Err: err}
	}
	return g, nil
}

// GlyphByIndex returns the outline of glyph gid. Index 0 is the .notdef
// glyph every font carries.
func (f *Font) GlyphByIndex(gid uint16) (*glyph3d.Glyph, error) {
	g, err := f.load(gid)
	if err != nil {
		return nil, &GlyphError{GID: gid, Err: err}
	}
	return g, nil
}

func (f *Font) load(gid uint16) (*glyph3d.Glyph, error) {
	if int(gid) >= f.numGlyphs {
		return nil, ErrGlyphNotFound
	}
	return f.store.Load(cache.Key{Font: f.id, GID: gid}, func() (*glyph3d.Glyph, error) {
		return f.decode(gid)
	})
}

func (f *Font) decode(gid uint16) (*glyph3d.Glyph, error) {
	contours, err := f.contours(gid)
	if err != nil {
		return nil, err
	}
	glyph3d.Logger().Debug("font: decoded glyph",
		slog.Int("gid", int(gid)),
		slog.Int("contours", len(contours)))

	return glyph3d.NewGlyph(contours,
		glyph3d.WithGlyphIndex(gid),
		glyph3d.WithAdvance(f.advance(gid)),
		glyph3d.WithFillRule(f.fillRule)), nil
}

// Advance returns the horizontal advance of r in em units. Characters
// without a glyph use the advance of .notdef.
func (f *Font) Advance(r rune) float64 {
	gid, _ := f.GlyphIndex(r)
	return f.advance(gid)
}

// AdvanceByIndex returns the horizontal advance of glyph gid in em units.
func (f *Font) AdvanceByIndex(gid uint16) float64 {
	return f.advance(gid)
}

func (f *Font) advance(gid uint16) float64 {
	if f.ttf != nil {
		return float64(f.ttf.GlyphWidth(glyph.ID(gid))) / f.upem
	}
	var buf xsfnt.Buffer
	adv, err := f.sf.GlyphAdvance(&buf, xsfnt.GlyphIndex(gid), f.ppem(), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / (64 * f.upem)
}
