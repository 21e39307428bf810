// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/rankview/internal/app"
	"github.com/okian/rankview/internal/domain/query"
	"github.com/okian/rankview/internal/domain/types"
)

const defaultMaxPageSize = 500

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	QueryPage(ctx context.Context, view query.ViewState, pageSize int) (types.Result, error)
	Load(ctx context.Context) (service.LoadReport, error)
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	queryHandler  *QueryHandler
	reloadHandler *ReloadHandler
}

// Option applies a configuration option to the Server.
type Option func(*options)

type options struct {
	maxPageSize int
}

// WithMaxPageSize caps the size query parameter.
func WithMaxPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPageSize = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := options{maxPageSize: defaultMaxPageSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps),
		queryHandler:  NewQueryHandler(deps, o.maxPageSize),
		reloadHandler: NewReloadHandler(deps),
	}
}

// Register attaches all API routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/query", MetricsMiddleware(s.queryHandler.HandleQuery, "query"))
		r.Post("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
		r.NotFound(handleNotFound)
		r.MethodNotAllowed(handleMethodNotAllowed)
	})
}

// handleNotFound answers unknown /api paths with a JSON error.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", NewKind("api.route", ErrNotFound))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind("api."+r.Method, ErrMethod))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
