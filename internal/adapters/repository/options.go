package repository

import "github.com/okian/rankview/internal/domain/model"

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithMetricsEnabled toggles dataset gauges on publish.
func WithMetricsEnabled(enabled bool) Option {
	return func(s *SnapshotStore) {
		s.metricsEnabled = enabled
	}
}

// WithInitial publishes ds at construction time.
func WithInitial(ds *model.Dataset) Option {
	return func(s *SnapshotStore) {
		if ds != nil {
			s.current.Store(ds)
			s.version.Add(1)
		}
	}
}
