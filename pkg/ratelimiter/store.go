package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// Take refills the bucket for key and removes n tokens if it holds that
	// many. remaining is the count left, or negative by the shortfall when
	// the take was refused. resetAt is when the next refill happens.
	Take(ctx context.Context, key string, n int, cfg Config) (remaining int, resetAt time.Time, err error)
	// Reset forgets the bucket for key.
	Reset(ctx context.Context, key string) error
}
