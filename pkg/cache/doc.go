// Package cache provides a bounded, expiring in-memory cache.
//
// Entries live for a fixed TTL counted from their last write. Because every
// entry shares the TTL, write order is also expiry order: the cache keeps
// entries in a list by write time, prunes expired ones from the old end on
// every call, and when full drops the oldest write first. Reads do not
// extend an entry's life.
//
//	seen := cache.New[string, struct{}](
//	    cache.WithCapacity(4096),
//	    cache.WithTTL(30*time.Second),
//	)
//	if seen.Add(fingerprint, struct{}{}) {
//	    // first sighting inside the window
//	}
//
// All methods are safe for concurrent use. Add is an atomic check-and-set.
package cache
