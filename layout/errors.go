package layout

import "errors"

// ErrNilFont is returned when Compile or Place is called without a font.
var ErrNilFont = errors.New("layout: nil font")
