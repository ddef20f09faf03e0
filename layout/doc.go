// Package layout turns a text string into a single compound object of
// extruded glyphs.
//
// Each character becomes one glyph3d.Solid sharing its glyph with every
// other occurrence of the same character. Solids are placed left to right
// on the baseline by the glyph advance plus a per-character offset, and
// merged into one glyph3d.Union:
//
//	f, _ := font.GoRegular()
//	u, err := layout.Compile(f, "Hello", 0.25, glyph3d.Vec3{})
//
// Positions are in em units. Right-to-left and vertical text are not
// supported.
package layout
