package repository

import "errors"

// Sentinel kinds for match store errors.
var (
	ErrNotFound       = errors.New("match not found")
	ErrMissingBrandID = errors.New("missing brand id")
	ErrMissingCreator = errors.New("missing creator id")
)
