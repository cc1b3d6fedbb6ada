package raster

import "errors"

// Sentinel errors for rasterizer construction.
var (
	// ErrInvalidSize indicates a non-positive surface dimension.
	ErrInvalidSize = errors.New("raster: invalid surface size")

	// ErrFont indicates that the label font could not be loaded.
	ErrFont = errors.New("raster: font load failed")
)
