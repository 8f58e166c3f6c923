package ratelimit

import (
	"context"
	"time"
)

// Limiter admits at most limit calls per key within any trailing window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
