// Package ranking assigns competition ranks to a record set.
package ranking

import (
	"sort"

	"github.com/okian/rankview/internal/domain/model"
)

// Assign sets Rank on every record in place using competition ranking on
// descending Value: tied values share a rank and the next distinct value
// skips ahead by the size of the tie group (1, 1, 3, 4, 4, 6...).
//
// The working order is a slice of indices into records, so two records that
// share both name and value are still ranked independently.
func Assign(records []model.Record) {
	if len(records) == 0 {
		return
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return records[order[a]].Value > records[order[b]].Value
	})

	currentRank := 0
	tieGroupSize := 0
	for pos, idx := range order {
		if pos == 0 || records[idx].Value != records[order[pos-1]].Value {
			currentRank += tieGroupSize + 1
			tieGroupSize = 0
		} else {
			tieGroupSize++
		}
		records[idx].Rank = currentRank
	}
}
