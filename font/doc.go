// Package font decodes TrueType and OpenType fonts into glyph3d outlines.
//
// Simple TrueType glyphs are read point for point with seehuhn.de/go/sfnt,
// keeping the on/off-curve flags exactly as stored in the glyf table.
// Composite glyphs and CFF fonts go through golang.org/x/image/font/sfnt;
// cubic CFF curves are approximated by quadratics.
//
// Coordinates are in em units: font units divided by unitsPerEm, with Y
// up. Decoded glyphs are immutable and kept in a shared glyph store, so
// asking for the same character twice returns the same *glyph3d.Glyph.
//
// Usage:
//
//	f, err := font.Open("DejaVuSans.ttf", font.WithCharset("iso-8859-1"))
//	if err != nil {
//	    return err
//	}
//	g, err := f.Glyph('A')
package font
