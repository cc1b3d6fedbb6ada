package sketch

import "errors"

// Sentinel errors for image placement.
var (
	// ErrDecode indicates image data that no registered decoder accepts.
	ErrDecode = errors.New("sketch: image decode failed")

	// ErrEmptyImage indicates a decoded image with no pixels.
	ErrEmptyImage = errors.New("sketch: empty image")

	// ErrClosed indicates an operation on a closed board.
	ErrClosed = errors.New("sketch: board closed")
)
