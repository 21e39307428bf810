// Package repository holds the published dataset snapshot.
package repository

import (
	"context"

	"github.com/okian/rankview/internal/domain/model"
)

// Store publishes ranked datasets and hands out the current one.
type Store interface {
	// Publish replaces the current dataset and returns the one it replaced,
	// or nil on the first publish.
	Publish(ctx context.Context, ds *model.Dataset) (*model.Dataset, error)

	// Current returns the latest dataset, or ErrEmpty before the first publish.
	Current(ctx context.Context) (*model.Dataset, error)

	// Version counts successful publishes.
	Version(ctx context.Context) uint64
}
