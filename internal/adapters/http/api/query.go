package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/rankview/internal/app"
	"github.com/okian/rankview/internal/domain/query"
	"github.com/okian/rankview/internal/domain/types"
)

// QueryDependencies defines the interface for view queries.
type QueryDependencies interface {
	QueryPage(ctx context.Context, view query.ViewState, pageSize int) (types.Result, error)
}

// QueryHandler handles view queries.
type QueryHandler struct {
	deps        QueryDependencies
	maxPageSize int
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(deps QueryDependencies, maxPageSize int) *QueryHandler {
	return &QueryHandler{deps: deps, maxPageSize: maxPageSize}
}

// HandleQuery handles GET /api/query?q=&sort=&dir=&page=&size= requests.
// Missing parameters select the default view; size 0 or absent uses the
// service page size.
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	const op = "api.query"

	view, size, err := h.parseView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.QueryPage(r.Context(), view, size)
	switch {
	case errors.Is(err, service.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "not_loaded", WrapKind(op, ErrUnavailable, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *QueryHandler) parseView(r *http.Request) (query.ViewState, int, error) {
	q := r.URL.Query()

	col, err := query.ParseColumn(q.Get("sort"))
	if err != nil {
		return query.ViewState{}, 0, err
	}
	dir, err := query.ParseDirection(q.Get("dir"), col)
	if err != nil {
		return query.ViewState{}, 0, err
	}

	page := 1
	if s := strings.TrimSpace(q.Get("page")); s != "" {
		page, err = strconv.Atoi(s)
		if err != nil || page < 1 {
			return query.ViewState{}, 0, fmt.Errorf("invalid page %q", s)
		}
	}

	size := 0
	if s := strings.TrimSpace(q.Get("size")); s != "" {
		size, err = strconv.Atoi(s)
		if err != nil || size < 1 {
			return query.ViewState{}, 0, fmt.Errorf("invalid size %q", s)
		}
		if size > h.maxPageSize {
			return query.ViewState{}, 0, fmt.Errorf("size %d exceeds maximum %d", size, h.maxPageSize)
		}
	}

	return query.ViewState{
		Search:    q.Get("q"),
		Column:    col,
		Direction: dir,
		Page:      page,
	}, size, nil
}
