package glyph3d

import (
	"errors"
	"fmt"
)

// Sentinel errors for the glyph3d package.
var (
	// ErrSingularTransform is returned when a transform cannot be inverted.
	ErrSingularTransform = errors.New("glyph3d: singular transform")
)

// OddHitCountError reports a ray whose accepted hits do not pair up into
// entry/exit pairs. It is only produced by CheckHits.
type OddHitCountError struct {
	Ray  Ray
	Hits int
}

func (e *OddHitCountError) Error() string {
	return fmt.Sprintf("glyph3d: odd hit count %d", e.Hits)
}
