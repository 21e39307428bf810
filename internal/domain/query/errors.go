package query

import "errors"

// Sentinel kinds for view state parsing.
var (
	ErrUnknownColumn    = errors.New("unknown sort column")
	ErrUnknownDirection = errors.New("unknown sort direction")
)
