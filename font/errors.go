package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrNoOutlines is returned for fonts without glyph outlines.
	ErrNoOutlines = errors.New("font: font has no outlines")

	// ErrGlyphNotFound is returned when a character has no glyph or a
	// glyph index is out of range.
	ErrGlyphNotFound = errors.New("font: glyph not found")

	// ErrUnknownCharset is returned by WithCharset for unsupported names.
	ErrUnknownCharset = errors.New("font: unknown charset")
)

// GlyphError reports a failure to produce the glyph for a character or
// glyph index.
type GlyphError struct {
	Rune rune
	GID  uint16
	Err  error
}

func (e *GlyphError) Error() string {
	if e.Rune != 0 {
		return fmt.Sprintf("font: glyph %d (%q): %v", e.GID, e.Rune, e.Err)
	}
	return fmt.Sprintf("font: glyph %d: %v", e.GID, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
