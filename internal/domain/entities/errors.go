package entities

import "errors"

// Request validation errors.
var (
	ErrMissingLocation  = errors.New("location is required")
	ErrMissingNeedTypes = errors.New("at least one need type is required")
)
