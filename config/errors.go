package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrInvalid indicates a value outside its allowed range.
	ErrInvalid = errors.New("config: invalid value")

	// ErrUnknownKey indicates a key in the file that maps to no setting.
	ErrUnknownKey = errors.New("config: unknown key")
)
