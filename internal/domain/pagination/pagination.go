// Package pagination slices an ordered view into fixed-size pages.
package pagination

import "github.com/okian/rankview/internal/domain/model"

// Page is one window of an ordered view.
type Page struct {
	Items      []model.Record
	Page       int // requested page, echoed back unchanged
	TotalPages int // 0 when the view is empty
}

// TotalPages returns ceil(count/pageSize). A pageSize below 1 puts
// everything on one page.
func TotalPages(count, pageSize int) int {
	if count <= 0 {
		return 0
	}
	if pageSize < 1 {
		return 1
	}
	return (count-1)/pageSize + 1
}

// Paginate returns page number page (1-based) of records. It does not clamp:
// a page outside [1, TotalPages] yields an empty Items slice, not an error.
// Items aliases records.
func Paginate(records []model.Record, pageSize, page int) Page {
	total := TotalPages(len(records), pageSize)
	out := Page{Items: []model.Record{}, Page: page, TotalPages: total}
	if page < 1 || page > total {
		return out
	}
	if pageSize < 1 {
		pageSize = len(records)
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(records))
	out.Items = records[start:end:end]
	return out
}
