// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is a single ranked row of the dataset.
type Record struct {
	ID    uuid.UUID // stable identity assigned at parse time
	Line  int       // 1-based source line the record came from
	Name  string    // display identity, usually "LastName, FirstName"
	Value float64   // ranked attribute; always finite
	Rank  int       // 1-based competition rank; 0 until ranked
}

// Dataset is an immutable, ranked set of records produced by one load.
// Callers must treat Records as read-only.
type Dataset struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time
	Records  []Record
	Skipped  int // malformed lines dropped while parsing
}

// Len returns the number of records in the dataset. A nil dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
