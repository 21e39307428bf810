package query

import (
	"cmp"
	"sort"
	"strings"

	"github.com/okian/rankview/internal/domain/model"
)

// Run filters records by search and returns them ordered by col and dir.
// The input slice is never modified.
func Run(records []model.Record, search string, col Column, dir Direction) []model.Record {
	view := Filter(records, search)
	Sort(view, col, dir)
	return view
}

// Filter returns a new slice with the records whose name matches search.
// A blank search returns a copy of every record.
func Filter(records []model.Record, search string) []model.Record {
	term := normalizeTerm(search)
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if term == "" || matches(r.Name, term) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether name matches the raw search text.
func Matches(name, search string) bool {
	term := normalizeTerm(search)
	return term == "" || matches(name, term)
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matches applies the search predicate to a normalized term. Besides a plain
// substring match it lets "ann smith" find "Smith, Ann": the term must then
// contain both the last name and the first given name.
func matches(name, term string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, term) {
		return true
	}

	last, rest, ok := strings.Cut(lower, ",")
	if !ok {
		return false
	}
	last = strings.TrimSpace(last)
	first := ""
	if fields := strings.Fields(rest); len(fields) > 0 {
		first = fields[0]
	}
	return strings.Contains(term, last) && strings.Contains(term, first)
}

// Sort orders records in place by col, descending when dir is Desc.
// Ties keep their relative order.
func Sort(records []model.Record, col Column, dir Direction) {
	sort.SliceStable(records, func(i, j int) bool {
		c := Compare(records[i], records[j], col)
		if dir == Desc {
			c = -c
		}
		return c < 0
	})
}

// Compare three-way compares a and b on col. Names compare
// case-insensitively; value and rank compare numerically.
func Compare(a, b model.Record, col Column) int {
	switch col {
	case ColumnName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case ColumnRank:
		return cmp.Compare(a.Rank, b.Rank)
	default:
		return cmp.Compare(a.Value, b.Value)
	}
}
