package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotLoaded = errors.New("no dataset loaded")
	ErrNoSource  = errors.New("no dataset source configured")
)
