package service

import "errors"

// Sentinel kinds for invocation-contract violations. These reject the whole
// call before any scoring happens; everything else degrades locally.
var (
	ErrMissingBrandID = errors.New("missing brand id")
	ErrInvalidLimit   = errors.New("invalid rank limit")
)
