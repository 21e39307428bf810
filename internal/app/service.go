// Package service loads ranked datasets and answers view queries against the
// current one. It implements the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rankview/internal/adapters/repository"
	"github.com/okian/rankview/internal/adapters/source"
	"github.com/okian/rankview/internal/domain/model"
	"github.com/okian/rankview/internal/domain/pagination"
	"github.com/okian/rankview/internal/domain/parser"
	"github.com/okian/rankview/internal/domain/query"
	"github.com/okian/rankview/internal/domain/ranking"
	"github.com/okian/rankview/internal/domain/stats"
	"github.com/okian/rankview/internal/domain/types"
	"github.com/okian/rankview/pkg/logger"
	"github.com/okian/rankview/pkg/metrics"
)

const defaultPageSize = 25

// LoadReport describes one successful load.
type LoadReport struct {
	DatasetID uuid.UUID     `json:"dataset_id" yaml:"dataset_id"`
	Source    string        `json:"source" yaml:"source"`
	Records   int           `json:"records" yaml:"records"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	LoadedAt  time.Time     `json:"loaded_at" yaml:"loaded_at"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Service owns the dataset lifecycle.
type Service struct {
	loadMu sync.Mutex // serializes Load

	source   source.Source
	store    repository.Store
	pageSize int
	now      func() time.Time

	reloadMu      sync.Mutex
	reloadRunning bool
	stopCh        chan struct{}
	wg            sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where datasets are read from.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore replaces the default in-memory snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithPageSize sets the default number of rows per page.
func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pageSize: defaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore()
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// PageSize returns the default page size.
func (s *Service) PageSize() int { return s.pageSize }

// Load fetches, parses and ranks the dataset and publishes it. When the
// fetch fails the previously published dataset stays current.
func (s *Service) Load(ctx context.Context) (LoadReport, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.source == nil {
		return LoadReport{}, ErrNoSource
	}

	start := s.now()
	text, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.RecordDatasetLoad(false, 0)
		metrics.RecordError("app", "source_unavailable")
		s.logger.Error(ctx, "dataset fetch failed",
			logger.String("source", s.source.Describe()),
			logger.Error(err),
		)
		return LoadReport{}, fmt.Errorf("load %s: %w", s.source.Describe(), err)
	}

	parsed := parser.Parse(text)
	for _, sk := range parsed.Skipped {
		s.logger.Warn(ctx, "skipping malformed line",
			logger.Int("line", sk.Line),
			logger.String("text", sk.Text),
			logger.Error(sk.Err),
		)
	}
	ranking.Assign(parsed.Records)

	ds := &model.Dataset{
		ID:       uuid.New(),
		Source:   s.source.Describe(),
		LoadedAt: s.now(),
		Records:  parsed.Records,
		Skipped:  len(parsed.Skipped),
	}
	if _, err := s.store.Publish(ctx, ds); err != nil {
		metrics.RecordDatasetLoad(false, 0)
		return LoadReport{}, fmt.Errorf("publish dataset: %w", err)
	}

	elapsed := s.now().Sub(start)
	metrics.RecordDatasetLoad(true, float64(elapsed.Microseconds())/1000)

	report := LoadReport{
		DatasetID: ds.ID,
		Source:    ds.Source,
		Records:   ds.Len(),
		Skipped:   ds.Skipped,
		LoadedAt:  ds.LoadedAt,
		Duration:  elapsed,
	}
	s.logger.Info(ctx, "dataset loaded",
		logger.String("dataset_id", ds.ID.String()),
		logger.String("source", ds.Source),
		logger.Int("records", report.Records),
		logger.Int("skipped", report.Skipped),
		logger.Duration("duration", elapsed),
	)
	return report, nil
}

// Query answers view with the default page size.
func (s *Service) Query(ctx context.Context, view query.ViewState) (types.Result, error) {
	return s.QueryPage(ctx, view, s.pageSize)
}

// QueryPage runs filter, sort, paginate and summarize over the current
// dataset. A pageSize below one falls back to the default. An empty Column
// or Direction falls back to the default view's.
func (s *Service) QueryPage(ctx context.Context, view query.ViewState, pageSize int) (types.Result, error) {
	ds, err := s.current(ctx)
	if err != nil {
		return types.Result{}, err
	}
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	if view.Column == "" {
		view.Column = query.DefaultView().Column
	}
	if view.Direction == "" {
		view.Direction = view.Column.DefaultDirection()
	}

	start := time.Now()
	matched := query.Run(ds.Records, view.Search, view.Column, view.Direction)
	page := pagination.Paginate(matched, pageSize, view.Page)
	summary := stats.Compute(matched)

	rows := make([]types.Row, len(page.Items))
	for i, r := range page.Items {
		rows[i] = types.NewRow(r)
	}
	metrics.RecordQuery(float64(time.Since(start).Microseconds())/1000, len(matched))

	s.logger.Debug(ctx, "query served",
		logger.String("search", view.Search),
		logger.String("column", string(view.Column)),
		logger.String("direction", string(view.Direction)),
		logger.Int("page", view.Page),
		logger.Int("matched", len(matched)),
	)

	return types.Result{
		Rows:         rows,
		TotalMatched: len(matched),
		TotalOverall: ds.Len(),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		Statistics:   types.NewStatistics(summary),
	}, nil
}

func (s *Service) current(ctx context.Context) (*model.Dataset, error) {
	ds, err := s.store.Current(ctx)
	if errors.Is(err, repository.ErrEmpty) {
		return nil, ErrNotLoaded
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// StartReloader reloads the dataset every interval until ctx is done or
// Stop is called. A failed reload is logged and the previous dataset kept.
// Calling it again while running is a no-op.
func (s *Service) StartReloader(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	if s.reloadRunning {
		return
	}
	s.reloadRunning = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
				// Load logs its own failures.
				_, _ = s.Load(ctx)
			}
		}
	}()
	s.logger.Info(ctx, "dataset reloader started", logger.Duration("interval", interval))
}

// Stop halts the reloader, if running, and waits for it to exit.
func (s *Service) Stop() {
	s.reloadMu.Lock()
	if s.reloadRunning {
		close(s.stopCh)
		s.reloadRunning = false
	}
	s.reloadMu.Unlock()
	s.wg.Wait()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	s.reloadMu.Lock()
	reloading := s.reloadRunning
	s.reloadMu.Unlock()

	out := map[string]interface{}{
		"loaded":    false,
		"page_size": s.pageSize,
		"reloading": reloading,
		"version":   s.store.Version(ctx),
	}
	if s.source != nil {
		out["source"] = s.source.Describe()
	}

	ds, err := s.store.Current(ctx)
	if err != nil {
		return out
	}
	out["loaded"] = true
	out["dataset_id"] = ds.ID.String()
	out["records"] = ds.Len()
	out["skipped"] = ds.Skipped
	out["loaded_at"] = ds.LoadedAt.UTC().Format(time.RFC3339)
	return out
}
