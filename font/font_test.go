package font

import (
	"errors"
	"math"
	"sync"
	"testing"

	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt/glyf"

	"github.com/gogpu/glyph3d"
)

func goRegular(t testing.TB, opts ...Option) *Font {
	t.Helper()
	f, err := GoRegular(opts...)
	if err != nil {
		t.Fatalf("GoRegular() error = %v", err)
	}
	return f
}

func center(b glyph3d.Box2) glyph3d.Vec2 {
	return b.Min.Lerp(b.Max, 0.5)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		opts    []Option
		wantErr error
	}{
		{"nil data", nil, nil, ErrEmptyFontData},
		{"empty data", []byte{}, nil, ErrEmptyFontData},
		{"unknown charset", []byte{0, 1, 0, 0}, []Option{WithCharset("ebcdic")}, ErrUnknownCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Parse([]byte("not a font at all")); err == nil {
		t.Error("Parse(garbage) succeeded")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/font.ttf"); err == nil {
		t.Error("Open of missing file succeeded")
	}
}

func TestGoRegular_Metrics(t *testing.T) {
	f := goRegular(t)

	if f.UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %d, want 2048", f.UnitsPerEm())
	}
	if f.Name() == "" {
		t.Error("Name() is empty")
	}
	if a := f.Ascent(); a <= 0.5 || a > 1.5 {
		t.Errorf("Ascent() = %v, want roughly 1 em", a)
	}
	if d := f.Descent(); d >= 0 {
		t.Errorf("Descent() = %v, want negative", d)
	}
	if f.NumGlyphs() == 0 {
		t.Error("NumGlyphs() = 0")
	}
	if f.Charset() != "utf-8" {
		t.Errorf("Charset() = %q, want utf-8", f.Charset())
	}
}

func TestFont_Glyph(t *testing.T) {
	f := goRegular(t)

	tests := []struct {
		r          rune
		centerIn   bool
		wantEmpty  bool
		minContour int
	}{
		{'I', true, false, 1},
		{'O', false, false, 2},
		{'o', false, false, 2},
		{' ', false, true, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			g, err := f.Glyph(tt.r)
			if err != nil {
				t.Fatalf("Glyph(%q) error = %v", tt.r, err)
			}
			if g.IsEmpty() != tt.wantEmpty {
				t.Fatalf("IsEmpty() = %v, want %v", g.IsEmpty(), tt.wantEmpty)
			}
			if g.Advance <= 0 || g.Advance >= 1 {
				t.Errorf("Advance = %v, want within (0, 1) em", g.Advance)
			}
			gid, _ := f.GlyphIndex(tt.r)
			if g.Index != gid {
				t.Errorf("Index = %d, want %d", g.Index, gid)
			}
			if tt.wantEmpty {
				return
			}
			if n := len(g.Contours()); n < tt.minContour {
				t.Errorf("%d contours, want at least %d", n, tt.minContour)
			}
			if b := g.Bounds(); b.Max.Y > 1.2 || b.Min.Y < -0.1 {
				t.Errorf("Bounds() = %v, not in em units", b)
			}
			if got := g.Inside(center(g.Bounds())); got != tt.centerIn {
				t.Errorf("Inside(center) = %v, want %v", got, tt.centerIn)
			}
		})
	}
}

func TestFont_GlyphShared(t *testing.T) {
	f := goRegular(t)

	a1, err := f.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := f.Glyph('A')
	if a1 != a2 {
		t.Error("repeated Glyph('A') decoded the outline twice")
	}

	gid, _ := f.GlyphIndex('A')
	a3, _ := f.GlyphByIndex(gid)
	if a3 != a1 {
		t.Error("GlyphByIndex did not share the stored glyph")
	}

	st := f.Store().Stats()
	if st.Misses != 1 || st.Hits != 2 {
		t.Errorf("store stats = %+v, want 1 miss and 2 hits", st)
	}
}

func TestFont_SharedStore(t *testing.T) {
	store := NewStore(0)
	f1 := goRegular(t, WithStore(store))
	f2 := goRegular(t, WithStore(store))
	f3 := goRegular(t, WithStore(store), WithFillRule(glyph3d.NonZero))

	g1, _ := f1.Glyph('B')
	g2, _ := f2.Glyph('B')
	g3, _ := f3.Glyph('B')

	if g1 != g2 {
		t.Error("fonts with the same data did not share glyphs")
	}
	if g3 == g1 || g3.FillRule() != glyph3d.NonZero {
		t.Error("fill rule not part of the glyph identity")
	}
}

func TestFont_GlyphErrors(t *testing.T) {
	f := goRegular(t)

	_, err := f.Glyph('\ue000')
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Fatalf("Glyph(U+E000) error = %v, want ErrGlyphNotFound", err)
	}
	var ge *GlyphError
	if !errors.As(err, &ge) || ge.Rune != '\ue000' {
		t.Errorf("error = %#v, want *GlyphError for U+E000", err)
	}

	_, err = f.GlyphByIndex(math.MaxUint16)
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("GlyphByIndex(max) error = %v, want ErrGlyphNotFound", err)
	}

	notdef, err := f.GlyphByIndex(0)
	if err != nil {
		t.Fatalf("GlyphByIndex(0) error = %v", err)
	}
	if notdef.Index != 0 {
		t.Errorf(".notdef Index = %d", notdef.Index)
	}
}

func TestFont_CompositeGlyph(t *testing.T) {
	f := goRegular(t)

	e, err := f.Glyph('E')
	if err != nil {
		t.Fatal(err)
	}
	eAcute, err := f.Glyph('É')
	if err != nil {
		t.Fatalf("Glyph('É') error = %v", err)
	}
	if eAcute.IsEmpty() {
		t.Fatal("accented glyph is empty")
	}
	if eAcute.Bounds().Max.Y <= e.Bounds().Max.Y {
		t.Errorf("accent does not rise above E: %v vs %v", eAcute.Bounds(), e.Bounds())
	}
	if len(eAcute.Contours()) <= len(e.Contours()) {
		t.Errorf("É has %d contours, E has %d", len(eAcute.Contours()), len(e.Contours()))
	}
}

func TestFont_FallbackAgrees(t *testing.T) {
	f := goRegular(t)

	for _, r := range "AgO8%" {
		g, err := f.Glyph(r)
		if err != nil {
			t.Fatal(err)
		}
		contours, err := f.segmentContours(g.Index)
		if err != nil {
			t.Fatalf("segmentContours(%q) error = %v", r, err)
		}
		alt := glyph3d.NewGlyph(contours)

		gb, ab := g.Bounds(), alt.Bounds()
		if !gb.Min.Approx(ab.Min, 1e-9) || !gb.Max.Approx(ab.Max, 1e-9) {
			t.Errorf("%q: bounds %v, fallback %v", r, gb, ab)
		}

		// Sample a grid off the outline and compare classification.
		size := gb.Size()
		for i := 1; i < 8; i++ {
			for j := 1; j < 8; j++ {
				p := glyph3d.V2(gb.Min.X+size.X*(float64(i)+0.37)/8, gb.Min.Y+size.Y*(float64(j)+0.21)/8)
				if g.Inside(p) != alt.Inside(p) {
					t.Errorf("%q: decoders disagree at %v", r, p)
				}
			}
		}
	}
}

func TestSimpleContours(t *testing.T) {
	f := goRegular(t)
	if f.glyf == nil {
		t.Fatal("Go Regular not read through the glyf table")
	}

	for _, r := range "IO8" {
		gid, _ := f.GlyphIndex(r)
		sg, ok := f.glyf.Glyphs[gid].Data.(glyf.SimpleGlyph)
		if !ok {
			t.Fatalf("%q is not a simple glyph", r)
		}
		got, err := f.simpleContours(sg)
		if err != nil {
			t.Fatalf("simpleContours(%q) error = %v", r, err)
		}
		want, err := f.segmentContours(gid)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Fatalf("%q: %d contours, fallback has %d", r, len(got), len(want))
		}

		gb, wb := glyph3d.NewGlyph(got).Bounds(), glyph3d.NewGlyph(want).Bounds()
		if !gb.Min.Approx(wb.Min, 1e-9) || !gb.Max.Approx(wb.Max, 1e-9) {
			t.Errorf("%q: bounds %v, fallback %v", r, gb, wb)
		}
	}
}

func TestFont_Advance(t *testing.T) {
	f := goRegular(t)

	if f.Advance('W') <= f.Advance('i') {
		t.Errorf("Advance('W') = %v not wider than Advance('i') = %v", f.Advance('W'), f.Advance('i'))
	}
	gid, _ := f.GlyphIndex('m')
	if f.AdvanceByIndex(gid) != f.Advance('m') {
		t.Error("AdvanceByIndex disagrees with Advance")
	}
	if f.Advance('\ue000') != f.AdvanceByIndex(0) {
		t.Error("missing character does not use the .notdef advance")
	}
}

func TestFont_ConcurrentGlyph(t *testing.T) {
	f := goRegular(t)
	const n = 32

	var wg sync.WaitGroup
	got := make([]*glyph3d.Glyph, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := f.Glyph('R')
			if err != nil {
				t.Error(err)
				return
			}
			got[i] = g
		}()
	}
	wg.Wait()

	for i := range got {
		if got[i] != got[0] {
			t.Fatal("concurrent lookups returned different glyphs")
		}
	}
}

func TestSegmentsToContours(t *testing.T) {
	seg := func(op xsfnt.SegmentOp, pts ...fixed.Point26_6) xsfnt.Segment {
		s := xsfnt.Segment{Op: op}
		copy(s.Args[:], pts)
		return s
	}
	// x/image reports Y down; one unit is 64 in 26.6.
	segs := xsfnt.Segments{
		seg(xsfnt.SegmentOpMoveTo, fixed.P(0, 0)),
		seg(xsfnt.SegmentOpLineTo, fixed.P(4, 0)),
		seg(xsfnt.SegmentOpQuadTo, fixed.P(4, -4), fixed.P(0, -4)),
		seg(xsfnt.SegmentOpLineTo, fixed.P(0, 0)),
		seg(xsfnt.SegmentOpMoveTo, fixed.P(10, 0)),
		seg(xsfnt.SegmentOpCubeTo, fixed.P(11, 0), fixed.P(12, 0), fixed.P(13, 0)),
		seg(xsfnt.SegmentOpLineTo, fixed.P(13, -1)),
	}

	got := segmentsToContours(segs, 1.0/64)
	if len(got) != 2 {
		t.Fatalf("got %d contours, want 2", len(got))
	}

	want0 := glyph3d.Contour{
		glyph3d.On(0, 0), glyph3d.On(4, 0), glyph3d.Off(4, 4), glyph3d.On(0, 4),
	}
	if len(got[0]) != len(want0) {
		t.Fatalf("contour 0 = %v, want %v", got[0], want0)
	}
	for i := range want0 {
		if got[0][i] != want0[i] {
			t.Errorf("contour 0 point %d = %v, want %v", i, got[0][i], want0[i])
		}
	}

	want1 := glyph3d.Contour{
		glyph3d.On(10, 0),
		glyph3d.Off(10.75, 0), glyph3d.On(11.5, 0), glyph3d.Off(12.25, 0), glyph3d.On(13, 0),
		glyph3d.On(13, 1),
	}
	if len(got[1]) != len(want1) {
		t.Fatalf("contour 1 = %v, want %v", got[1], want1)
	}
	for i := range want1 {
		p, w := got[1][i], want1[i]
		if p.OnCurve != w.OnCurve || !p.Vec().Approx(w.Vec(), 1e-12) {
			t.Errorf("contour 1 point %d = %v, want %v", i, p, w)
		}
	}
}

func TestCubicToQuads_Midpoint(t *testing.T) {
	p0, p1, p2, p3 := glyph3d.V2(0, 0), glyph3d.V2(0, 1), glyph3d.V2(1, 1), glyph3d.V2(1, 0)
	pts := cubicToQuads(p0, p1, p2, p3)

	// The cubic's own midpoint is (0.5, 0.75) and must be kept exactly.
	if !pts[1].OnCurve || !pts[1].Vec().Approx(glyph3d.V2(0.5, 0.75), 1e-12) {
		t.Errorf("midpoint = %v, want on-curve (0.5, 0.75)", pts[1])
	}
	if pts[3] != glyph3d.On(1, 0) {
		t.Errorf("end = %v, want %v", pts[3], p3)
	}
}

func BenchmarkFont_GlyphCached(b *testing.B) {
	f := goRegular(b)
	_, _ = f.Glyph('g')
	b.ReportAllocs()
	for b.Loop() {
		_, _ = f.Glyph('g')
	}
}
