package geom

import "errors"

// ErrInvalidColor is returned by ParseColor for strings it cannot interpret.
var ErrInvalidColor = errors.New("geom: invalid color")
