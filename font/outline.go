package font

import (
	"log/slog"

	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt/glyf"

	"github.com/gogpu/glyph3d"
)

// contours returns the raw contours of glyph gid in em units.
func (f *Font) contours(gid uint16) ([]glyph3d.Contour, error) {
	if f.glyf != nil && int(gid) < len(f.glyf.Glyphs) {
		g := f.glyf.Glyphs[gid]
		if g == nil {
			// No outline, e.g. the space character.
			return nil, nil
		}
		switch d := g.Data.(type) {
		case glyf.SimpleGlyph:
			return f.simpleContours(d)
		case glyf.CompositeGlyph:
			glyph3d.Logger().Warn("font: composite glyph, decoding through fallback",
				slog.Int("gid", int(gid)))
		}
	}
	return f.segmentContours(gid)
}

// simpleContours converts a glyf simple glyph point for point.
func (f *Font) simpleContours(g glyf.SimpleGlyph) ([]glyph3d.Contour, error) {
	info, err := g.Unpack()
	if err != nil {
		return nil, err
	}

	scale := 1 / f.upem
	out := make([]glyph3d.Contour, 0, len(info.Contours))
	for _, cc := range info.Contours {
		c := make(glyph3d.Contour, len(cc))
		for i, p := range cc {
			c[i] = glyph3d.ContourPoint{
				X:       float64(p.X) * scale,
				Y:       float64(p.Y) * scale,
				OnCurve: p.OnCurve,
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// segmentContours decodes glyph gid with x/image, which resolves
// composite glyphs and reads CFF outlines.
func (f *Font) segmentContours(gid uint16) ([]glyph3d.Contour, error) {
	var buf xsfnt.Buffer
	segs, err := f.sf.LoadGlyph(&buf, xsfnt.GlyphIndex(gid), f.ppem(), nil)
	if err != nil {
		return nil, err
	}
	return segmentsToContours(segs, 1/(64*f.upem)), nil
}

// segmentsToContours converts x/image path segments to contours, scaling
// by scale and flipping Y up.
func segmentsToContours(segs xsfnt.Segments, scale float64) []glyph3d.Contour {
	pt := func(p fixed.Point26_6) glyph3d.Vec2 {
		return glyph3d.V2(float64(p.X)*scale, -float64(p.Y)*scale)
	}

	var (
		out []glyph3d.Contour
		cur glyph3d.Contour
		pen glyph3d.Vec2
	)
	flush := func() {
		if c := closeContour(cur); len(c) > 0 {
			out = append(out, c)
		}
		cur = nil
	}

	for _, s := range segs {
		switch s.Op {
		case xsfnt.SegmentOpMoveTo:
			flush()
			pen = pt(s.Args[0])
			cur = append(cur, glyph3d.On(pen.X, pen.Y))
		case xsfnt.SegmentOpLineTo:
			pen = pt(s.Args[0])
			cur = append(cur, glyph3d.On(pen.X, pen.Y))
		case xsfnt.SegmentOpQuadTo:
			c, p := pt(s.Args[0]), pt(s.Args[1])
			cur = append(cur, glyph3d.Off(c.X, c.Y), glyph3d.On(p.X, p.Y))
			pen = p
		case xsfnt.SegmentOpCubeTo:
			p3 := pt(s.Args[2])
			cur = append(cur, cubicToQuads(pen, pt(s.Args[0]), pt(s.Args[1]), p3)...)
			pen = p3
		}
	}
	flush()
	return out
}

// closeContour drops an explicit closing point that repeats the start.
func closeContour(c glyph3d.Contour) glyph3d.Contour {
	if n := len(c); n > 1 && c[0] == c[n-1] {
		return c[:n-1]
	}
	return c
}

// cubicToQuads approximates the cubic p0..p3 by two quadratics, split at
// the curve midpoint. The start point is not included in the result.
func cubicToQuads(p0, p1, p2, p3 glyph3d.Vec2) []glyph3d.ContourPoint {
	mid := func(a, b glyph3d.Vec2) glyph3d.Vec2 { return a.Lerp(b, 0.5) }

	m01, m12, m23 := mid(p0, p1), mid(p1, p2), mid(p2, p3)
	m012, m123 := mid(m01, m12), mid(m12, m23)
	m := mid(m012, m123)

	c1 := quadControl(p0, m01, m012, m)
	c2 := quadControl(m, m123, m23, p3)
	return []glyph3d.ContourPoint{
		glyph3d.Off(c1.X, c1.Y),
		glyph3d.On(m.X, m.Y),
		glyph3d.Off(c2.X, c2.Y),
		glyph3d.On(p3.X, p3.Y),
	}
}

// quadControl returns the control point of the quadratic closest to the
// cubic a, b, c, d with the same end points.
func quadControl(a, b, c, d glyph3d.Vec2) glyph3d.Vec2 {
	return b.Add(c).Mul(3).Sub(a).Sub(d).Mul(0.25)
}
