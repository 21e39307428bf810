package parser

import "errors"

// Sentinel kinds for per-line parse failures.
var (
	ErrMissingField = errors.New("missing name or value field")
	ErrInvalidValue = errors.New("invalid numeric value")
)
