// Package query filters and orders a ranked dataset for display.
package query

import (
	"fmt"
	"strings"
)

// Column identifies the field a view is sorted by.
type Column string

// Sortable columns.
const (
	ColumnName  Column = "name"
	ColumnValue Column = "value"
	ColumnRank  Column = "rank"
)

// Direction is the sort order of a view.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseColumn maps user input to a Column. Empty input selects the value
// column; "salary" is accepted as an alias for it.
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value", "salary":
		return ColumnValue, nil
	case "name":
		return ColumnName, nil
	case "rank":
		return ColumnRank, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
	}
}

// ParseDirection maps user input to a Direction. Empty input means the
// column's default direction.
func ParseDirection(s string, col Column) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return col.DefaultDirection(), nil
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// DefaultDirection is the order a column starts in when first selected:
// descending for numbers, ascending for names.
func (c Column) DefaultDirection() Direction {
	if c == ColumnName {
		return Asc
	}
	return Desc
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// ViewState is the caller-held state of one view over the dataset.
type ViewState struct {
	Search    string
	Column    Column
	Direction Direction
	Page      int
}

// DefaultView is the view shown right after a load.
func DefaultView() ViewState {
	return ViewState{Column: ColumnValue, Direction: Desc, Page: 1}
}

// WithSearch returns the view for a new search term, back on page 1.
func (v ViewState) WithSearch(term string) ViewState {
	v.Search = term
	v.Page = 1
	return v
}

// WithSort returns the view after selecting col as the sort column.
// Selecting the current column flips the direction; a new column starts in
// its default direction. The page resets to 1.
func (v ViewState) WithSort(col Column) ViewState {
	if v.Column == col {
		v.Direction = v.Direction.Reverse()
	} else {
		v.Column = col
		v.Direction = col.DefaultDirection()
	}
	v.Page = 1
	return v
}

// NextPage moves forward one page unless already at or past totalPages.
func (v ViewState) NextPage(totalPages int) ViewState {
	if v.Page < totalPages {
		v.Page++
	}
	return v
}

// PrevPage moves back one page unless already on page 1.
func (v ViewState) PrevPage() ViewState {
	if v.Page > 1 {
		v.Page--
	}
	return v
}
