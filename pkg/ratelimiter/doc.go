// Package ratelimiter throttles requests with a token bucket.
//
// A Bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that finds the
// bucket short is denied without draining it further. State lives in a
// Store: MemoryStore for a single process, RedisStore to share limits
// between replicas.
//
//	b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//	    Capacity:       100,
//	    RefillRate:     10,
//	    RefillInterval: time.Second,
//	})
//	router.With(ratelimiter.Middleware(b, keyFunc)).Post("/log", handler)
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset, answers 429 with Retry-After when the bucket is empty,
// and lets requests through when the store fails.
package ratelimiter
