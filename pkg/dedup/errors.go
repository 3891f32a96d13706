package dedup

import "errors"

var (
	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("dedup store unavailable")
	// ErrEmptyKey is returned when claiming an empty fingerprint.
	ErrEmptyKey = errors.New("dedup key is empty")
)
