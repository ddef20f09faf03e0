package render

import "errors"

// Sentinel errors for the render package.
var (
	// ErrInvalidSize is returned when the image width or height is not
	// positive.
	ErrInvalidSize = errors.New("render: invalid image size")

	// ErrNilScene is returned when Render is called without a scene.
	ErrNilScene = errors.New("render: nil scene")
)
