package glyph3d

import "testing"

// unitSquare is the counter-clockwise square (0,0)-(1,0)-(1,1)-(0,1).
func unitSquare(opts ...GlyphOption) *Glyph {
	return NewGlyph([]Contour{{On(0, 0), On(1, 0), On(1, 1), On(0, 1)}}, opts...)
}

// roundel approximates the unit circle with four quadratic arcs.
func roundel() *Glyph {
	return NewGlyph([]Contour{{
		On(1, 0), Off(1, 1), On(0, 1), Off(-1, 1),
		On(-1, 0), Off(-1, -1), On(0, -1), Off(1, -1),
	}})
}

// ring is a 3x3 square with a 1x1 square hole; both contours run the same way.
func ring(opts ...GlyphOption) *Glyph {
	return NewGlyph([]Contour{
		{On(0, 0), On(3, 0), On(3, 3), On(0, 3)},
		{On(1, 1), On(2, 1), On(2, 2), On(1, 2)},
	}, opts...)
}

func TestNormalizeContour_LinesOnly(t *testing.T) {
	g := unitSquare()
	segs := g.Segments(0)
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(segs))
	}
	want := []Vec2{V2(0, 0), V2(1, 0), V2(1, 1), V2(0, 1)}
	for i, s := range segs {
		if !s.Linear {
			t.Errorf("segment %d not linear", i)
		}
		if s.Start != want[i] || s.End != want[(i+1)%4] {
			t.Errorf("segment %d = %v->%v, want %v->%v", i, s.Start, s.End, want[i], want[(i+1)%4])
		}
		if !s.Control.Approx(s.Start.Lerp(s.End, 0.5), 1e-15) {
			t.Errorf("segment %d control %v is not the chord midpoint", i, s.Control)
		}
	}
}

func TestNormalizeContour_ImpliedOnCurve(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		want    []Segment
	}{
		{
			name:    "two consecutive controls",
			contour: Contour{On(0, 0), Off(1, 1), Off(3, 1), On(4, 0)},
			want: []Segment{
				Quad(V2(0, 0), V2(1, 1), V2(2, 1)),
				Quad(V2(2, 1), V2(3, 1), V2(4, 0)),
				Line(V2(4, 0), V2(0, 0)),
			},
		},
		{
			name:    "starts off curve",
			contour: Contour{Off(1, 1), On(2, 0), On(0, 0)},
			want: []Segment{
				Line(V2(2, 0), V2(0, 0)),
				Quad(V2(0, 0), V2(1, 1), V2(2, 0)),
			},
		},
		{
			name:    "trailing controls",
			contour: Contour{On(0, 0), Off(1, 0), Off(0, 1)},
			want: []Segment{
				Quad(V2(0, 0), V2(1, 0), V2(0.5, 0.5)),
				Quad(V2(0.5, 0.5), V2(0, 1), V2(0, 0)),
			},
		},
		{
			name:    "all off curve",
			contour: Contour{Off(1, 1), Off(-1, 1), Off(-1, -1), Off(1, -1)},
			want: []Segment{
				Quad(V2(1, 0), V2(1, 1), V2(0, 1)),
				Quad(V2(0, 1), V2(-1, 1), V2(-1, 0)),
				Quad(V2(-1, 0), V2(-1, -1), V2(0, -1)),
				Quad(V2(0, -1), V2(1, -1), V2(1, 0)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeContour(tt.contour)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeContour_Closed(t *testing.T) {
	segs := roundel().Segments(0)
	for i, s := range segs {
		next := segs[(i+1)%len(segs)]
		if s.End != next.Start {
			t.Errorf("segment %d ends at %v, next starts at %v", i, s.End, next.Start)
		}
	}
}

func TestNewGlyph_MalformedContour(t *testing.T) {
	g := NewGlyph([]Contour{
		{On(5, 5), On(6, 6)},
		{On(0, 0), On(1, 0), On(1, 1), On(0, 1)},
	})

	if n := len(g.Segments(0)); n != 0 {
		t.Errorf("malformed contour has %d segments, want 0", n)
	}
	if n := g.SegmentCount(); n != 4 {
		t.Errorf("SegmentCount() = %d, want 4", n)
	}
	if len(g.Contours()) != 2 {
		t.Errorf("Contours() dropped the malformed contour")
	}
	if !g.Inside(V2(0.5, 0.5)) {
		t.Error("malformed contour disturbed classification")
	}
}

func TestNewGlyph_Empty(t *testing.T) {
	g := NewGlyph(nil)
	if !g.IsEmpty() {
		t.Error("IsEmpty() = false for glyph without contours")
	}
	if !g.Bounds().IsEmpty() {
		t.Errorf("Bounds() = %v, want empty", g.Bounds())
	}
	if g.Inside(V2(0, 0)) {
		t.Error("empty glyph contains a point")
	}
}

func TestGlyph_BoundsIncludeControlPoints(t *testing.T) {
	g := NewGlyph([]Contour{{On(0, 0), Off(1, 2), On(2, 0)}})
	b := g.Bounds()
	if b.Min != V2(0, 0) || b.Max != V2(2, 2) {
		t.Errorf("Bounds() = %v, want (0,0)-(2,2)", b)
	}
}

func TestGlyph_Options(t *testing.T) {
	g := unitSquare(WithGlyphIndex(42), WithAdvance(0.6), WithFillRule(NonZero))
	if g.Index != 42 {
		t.Errorf("Index = %d, want 42", g.Index)
	}
	if g.Advance != 0.6 {
		t.Errorf("Advance = %v, want 0.6", g.Advance)
	}
	if g.FillRule() != NonZero {
		t.Errorf("FillRule() = %v, want NonZero", g.FillRule())
	}
	if unitSquare().FillRule() != EvenOdd {
		t.Error("default fill rule is not EvenOdd")
	}
}

func TestGlyph_WallNormalOutward(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
	}{
		{"counter-clockwise", Contour{On(0, 0), On(1, 0), On(1, 1), On(0, 1)}},
		{"clockwise", Contour{On(0, 0), On(0, 1), On(1, 1), On(1, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGlyph([]Contour{tt.contour})
			for j, seg := range g.Segments(0) {
				n := g.wallNormal(0, j, 0.5)
				probe := seg.At(0.5).Add(n.Mul(0.01))
				if g.Inside(probe) {
					t.Errorf("segment %d normal %v points inward", j, n)
				}
			}
		})
	}
}

func TestSegment_Tangent(t *testing.T) {
	s := Quad(V2(0, 0), V2(1, 2), V2(2, 0))
	if got := s.Tangent(0); got != V2(2, 4) {
		t.Errorf("Tangent(0) = %v, want (2,4)", got)
	}
	if got := s.Tangent(0.5); !got.Approx(V2(2, 0), 1e-12) {
		t.Errorf("Tangent(0.5) = %v, want (2,0)", got)
	}
	if te, ok := s.yExtremum(); !ok || te != 0.5 {
		t.Errorf("yExtremum() = %v, %v, want 0.5, true", te, ok)
	}
	if _, ok := Line(V2(0, 0), V2(1, 1)).yExtremum(); ok {
		t.Error("line reported a y extremum")
	}
}
