package parallel

import "errors"

// ErrClosed is returned by Run on a closed pool.
var ErrClosed = errors.New("parallel: pool closed")
