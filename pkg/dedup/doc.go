// Package dedup keeps the set of failures that have already been reported.
//
// Entries are keyed by a content fingerprint (see package fingerprint) and
// live for a window, after which the same failure may be reported again.
// Claim is an atomic check-and-mark: exactly one caller per key and window
// gets true.
//
// Two stores are provided:
//
//   - MemoryStore, backed by a bounded expiring cache, for a single process.
//   - RedisStore, backed by SET NX PX, for fleets of processes that should
//     report a shared failure once.
//
// # Usage
//
//	store := dedup.NewMemoryStore(dedup.WithWindow(time.Minute))
//	first, err := store.Claim(ctx, rec.Fingerprint())
//	if err != nil {
//	    // the store is unavailable; decide whether to report anyway
//	}
//	if !first {
//	    return // already reported
//	}
package dedup
