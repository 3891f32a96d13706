package collector

import "errors"

var (
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrMissingRecord    = errors.New("payload has no error record")
	ErrUnknownSegment   = errors.New("unknown segment")
	ErrUnknownClient    = errors.New("unknown client category")
	ErrInvalidIncrement = errors.New("increment must be a positive finite number")
)
