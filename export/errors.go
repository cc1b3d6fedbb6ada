package export

import "errors"

// Sentinel errors for export.
var (
	// ErrEncode indicates the surface could not be encoded.
	ErrEncode = errors.New("export: encode failed")

	// ErrEmptySurface indicates a surface with no pixels.
	ErrEmptySurface = errors.New("export: empty surface")

	// ErrFileName indicates a name that is not a bare file name.
	ErrFileName = errors.New("export: invalid file name")
)
