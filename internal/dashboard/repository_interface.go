package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	Aggregate(ctx context.Context, w Window, reactivatedSince time.Time) (*Metrics, error)
}
