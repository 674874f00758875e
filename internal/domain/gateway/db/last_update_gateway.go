package db

import (
	"context"
	"time"
)

type LastUpdateGateway interface {
	// Upsert overwrites the single last update row.
	Upsert(ctx context.Context, updated time.Time) error
	// Find returns nil when no cycle has completed yet.
	Find(ctx context.Context) (*time.Time, error)
}
