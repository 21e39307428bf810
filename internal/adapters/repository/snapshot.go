package repository

import (
	"context"
	"sync/atomic"

	"github.com/okian/rankview/internal/domain/model"
	"github.com/okian/rankview/pkg/metrics"
)

// SnapshotStore keeps the current dataset behind an atomic pointer.
// Datasets are never mutated after Publish, so readers share them without
// locking and a reload is a single pointer swap.
type SnapshotStore struct {
	current        atomic.Pointer[model.Dataset]
	version        atomic.Uint64
	metricsEnabled bool
}

var _ Store = (*SnapshotStore)(nil)

// NewSnapshotStore constructs an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{metricsEnabled: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish swaps in ds.
func (s *SnapshotStore) Publish(_ context.Context, ds *model.Dataset) (*model.Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	prev := s.current.Swap(ds)
	s.version.Add(1)

	if s.metricsEnabled {
		metrics.UpdateDataset(ds.Len(), ds.Skipped, float64(ds.LoadedAt.Unix()))
	}
	return prev, nil
}

// Current returns the latest published dataset.
func (s *SnapshotStore) Current(_ context.Context) (*model.Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, ErrEmpty
	}
	return ds, nil
}

// Version returns the number of publishes so far.
func (s *SnapshotStore) Version(_ context.Context) uint64 {
	return s.version.Load()
}
