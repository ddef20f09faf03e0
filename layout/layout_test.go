package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/font"
)

func goRegular(t testing.TB) *font.Font {
	t.Helper()
	f, err := font.GoRegular()
	if err != nil {
		t.Fatalf("GoRegular() error = %v", err)
	}
	return f
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNilFont(t *testing.T) {
	if _, err := Compile(nil, "A", 1, glyph3d.Vec3{}); !errors.Is(err, ErrNilFont) {
		t.Errorf("Compile(nil) error = %v, want ErrNilFont", err)
	}
	if _, err := Place(nil, "A", glyph3d.Vec3{}); !errors.Is(err, ErrNilFont) {
		t.Errorf("Place(nil) error = %v, want ErrNilFont", err)
	}
}

func TestPlace_Builtin(t *testing.T) {
	f := goRegular(t)

	tests := []struct {
		name   string
		offset glyph3d.Vec3
	}{
		{"no offset", glyph3d.Vec3{}},
		{"spacing", glyph3d.V3(0.1, 0, 0)},
		{"staircase", glyph3d.V3(0.1, 0.2, 0.3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := Place(f, "ABC", tt.offset)
			if err != nil {
				t.Fatal(err)
			}
			if len(ps) != 3 {
				t.Fatalf("got %d placements, want 3", len(ps))
			}

			var x float64
			for i, p := range ps {
				if p.Rune != rune("ABC"[i]) {
					t.Errorf("placement %d rune = %q", i, p.Rune)
				}
				gid, _ := f.GlyphIndex(p.Rune)
				if p.GID != gid {
					t.Errorf("placement %d GID = %d, want %d", i, p.GID, gid)
				}
				want := glyph3d.V3(x, 0, 0).Add(tt.offset.Mul(float64(i)))
				if !p.Origin.Approx(want, 1e-12) {
					t.Errorf("placement %d origin = %v, want %v", i, p.Origin, want)
				}
				if p.Advance != f.Advance(p.Rune) {
					t.Errorf("placement %d advance = %v, want %v", i, p.Advance, f.Advance(p.Rune))
				}
				x += p.Advance
			}
		})
	}
}

func TestPlace_MissingCharacter(t *testing.T) {
	f := goRegular(t)

	ps, err := Place(f, "ab", glyph3d.Vec3{})
	if err != nil {
		t.Fatal(err)
	}
	if ps[1].GID != 0 {
		t.Errorf("missing character GID = %d, want 0", ps[1].GID)
	}
	if ps[1].Advance != f.AdvanceByIndex(0) {
		t.Errorf("missing character advance = %v, want .notdef advance", ps[1].Advance)
	}

	if _, err := Compile(f, "ab", 0.2, glyph3d.Vec3{}); err != nil {
		t.Errorf("Compile with missing character: %v", err)
	}
}

func TestPlace_Empty(t *testing.T) {
	ps, err := Place(goRegular(t), "", glyph3d.Vec3{})
	if err != nil || ps != nil {
		t.Errorf("Place(\"\") = %v, %v, want nil, nil", ps, err)
	}
}

func TestPlace_Harfbuzz(t *testing.T) {
	f := goRegular(t)

	builtin, err := Place(f, "Hello", glyph3d.Vec3{})
	if err != nil {
		t.Fatal(err)
	}
	shaped, err := Place(f, "Hello", glyph3d.Vec3{}, WithShaper(ShaperHarfbuzz))
	if err != nil {
		t.Fatalf("Place(harfbuzz) error = %v", err)
	}
	if len(shaped) != len(builtin) {
		t.Fatalf("harfbuzz produced %d glyphs, want %d", len(shaped), len(builtin))
	}

	for i := range shaped {
		if shaped[i].GID != builtin[i].GID {
			t.Errorf("glyph %d GID = %d, builtin %d", i, shaped[i].GID, builtin[i].GID)
		}
		if shaped[i].Rune != builtin[i].Rune {
			t.Errorf("glyph %d rune = %q, builtin %q", i, shaped[i].Rune, builtin[i].Rune)
		}
		if i > 0 && shaped[i].Origin.X <= shaped[i-1].Origin.X {
			t.Errorf("glyph %d not right of glyph %d", i, i-1)
		}
		if !almostEqual(shaped[i].Advance, builtin[i].Advance, 0.05) {
			t.Errorf("glyph %d advance = %v, builtin %v", i, shaped[i].Advance, builtin[i].Advance)
		}
	}
}

func TestPlace_HarfbuzzKerning(t *testing.T) {
	f := goRegular(t)

	width := func(ps []Placement) float64 {
		last := ps[len(ps)-1]
		return last.Origin.X + last.Advance
	}
	builtin, _ := Place(f, "AV", glyph3d.Vec3{})
	shaped, err := Place(f, "AV", glyph3d.Vec3{}, WithShaper(ShaperHarfbuzz))
	if err != nil {
		t.Fatal(err)
	}
	if width(shaped) > width(builtin)+1e-9 {
		t.Errorf("shaped width %v exceeds unkerned width %v", width(shaped), width(builtin))
	}
}

func TestCompile(t *testing.T) {
	f := goRegular(t)

	tests := []struct {
		name       string
		text       string
		opts       []Option
		wantSolids int
	}{
		{"empty", "", nil, 0},
		{"word", "Hi", nil, 2},
		{"space skipped", "A A", nil, 2},
		{"space kept", "A A", []Option{WithEmptyGlyphs(true)}, 3},
		{"harfbuzz", "Hi", []Option{WithShaper(ShaperHarfbuzz)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Compile(f, tt.text, 0.5, glyph3d.Vec3{}, tt.opts...)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if u.Len() != tt.wantSolids {
				t.Errorf("Compile(%q) has %d solids, want %d", tt.text, u.Len(), tt.wantSolids)
			}
		})
	}
}

func TestCompile_SharesGlyphs(t *testing.T) {
	f := goRegular(t)
	u, err := Compile(f, "lll", 1, glyph3d.Vec3{})
	if err != nil {
		t.Fatal(err)
	}
	kids := u.Children()
	g := kids[0].(*glyph3d.Solid).Glyph()
	for i, k := range kids[1:] {
		if k.(*glyph3d.Solid).Glyph() != g {
			t.Errorf("solid %d has its own glyph copy", i+1)
		}
	}
}

func TestCompile_Geometry(t *testing.T) {
	f := goRegular(t)
	const depth = 0.25
	offset := glyph3d.V3(0, 0, 1)

	u, err := Compile(f, "II", depth, offset)
	if err != nil {
		t.Fatal(err)
	}
	i, _ := f.Glyph('I')
	b := i.Bounds()
	adv := f.Advance('I')

	box := u.BoundingBox()
	if !almostEqual(box.Min.X, b.Min.X, 1e-9) || !almostEqual(box.Max.X, adv+b.Max.X, 1e-9) {
		t.Errorf("box x = [%v, %v], want [%v, %v]", box.Min.X, box.Max.X, b.Min.X, adv+b.Max.X)
	}
	if box.Min.Z != 0 || !almostEqual(box.Max.Z, 1+depth, 1e-12) {
		t.Errorf("box z = [%v, %v], want [0, %v]", box.Min.Z, box.Max.Z, 1+depth)
	}

	// The second I is one unit deeper, so a ray along x at the first I's
	// depth passes through it only.
	y := (b.Min.Y + b.Max.Y) / 2
	r := glyph3d.Ray{Origin: glyph3d.V3(-1, y, depth/2), Direction: glyph3d.V3(1, 0, 0)}
	hits := u.AllIntersections(r, 0)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if !hits[0].Entering(r) || hits[1].Entering(r) {
		t.Error("hits do not enter then leave")
	}

	// Looking down z through the second I hits only its caps.
	x := adv + (b.Min.X+b.Max.X)/2
	r = glyph3d.Ray{Origin: glyph3d.V3(x, y, -1), Direction: glyph3d.V3(0, 0, 1)}
	hits = u.AllIntersections(r, 0)
	if len(hits) != 2 {
		t.Fatalf("got %d hits through second glyph, want 2", len(hits))
	}
	if !almostEqual(hits[0].Depth, 2, 1e-9) || !almostEqual(hits[1].Depth, 2+depth, 1e-9) {
		t.Errorf("cap depths = %v, %v, want 2 and %v", hits[0].Depth, hits[1].Depth, 2+depth)
	}
}

func TestShaper_String(t *testing.T) {
	for s, want := range map[Shaper]string{
		ShaperBuiltin:  "builtin",
		ShaperHarfbuzz: "harfbuzz",
		Shaper(9):      "unknown",
	} {
		if s.String() != want {
			t.Errorf("Shaper(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	f := goRegular(b)
	for b.Loop() {
		_, _ = Compile(f, "The quick brown fox", 0.2, glyph3d.Vec3{})
	}
}

func TestHarfbuzz_FontStore(t *testing.T) {
	h := newHarfbuzz(1)
	f := goRegular(t)
	runes := []rune("Hi")

	for range 3 {
		if _, err := h.shape(f, runes); err != nil {
			t.Fatalf("shape() error = %v", err)
		}
	}
	st := h.fonts.Stats()
	if st.Misses != 1 || st.Hits != 2 {
		t.Errorf("stats = %+v, want 1 miss and 2 hits", st)
	}

	nz, err := font.GoRegular(font.WithFillRule(glyph3d.NonZero))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.shape(nz, runes); err != nil {
		t.Fatal(err)
	}
	if h.fonts.Capacity() != 1 || h.fonts.Len() > 2 {
		t.Errorf("store holds %d fonts at capacity %d", h.fonts.Len(), h.fonts.Capacity())
	}
}
