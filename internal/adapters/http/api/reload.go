package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/rankview/internal/app"
	"github.com/okian/rankview/internal/adapters/source"
)

// ReloadDependencies defines the interface for dataset reloads.
type ReloadDependencies interface {
	Load(ctx context.Context) (service.LoadReport, error)
}

// ReloadHandler handles dataset reloads.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /api/reload. On failure the previous dataset
// keeps serving queries.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload"

	report, err := h.deps.Load(r.Context())
	switch {
	case errors.Is(err, source.ErrUnavailable), errors.Is(err, service.ErrNoSource):
		writeError(w, http.StatusServiceUnavailable, "source_unavailable", WrapKind(op, ErrUnavailable, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
