package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrEmpty      = errors.New("no dataset published")
	ErrNilDataset = errors.New("nil dataset")
)
