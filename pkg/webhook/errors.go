package webhook

import "errors"

var (
	ErrInvalidURL       = errors.New("invalid webhook URL")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
	ErrCircuitOpen      = errors.New("webhook circuit breaker is open")
	ErrTimeout          = errors.New("webhook request timeout")
	ErrTemporaryFailure = errors.New("temporary webhook failure")
	ErrUnexpectedStatus = errors.New("webhook returned unexpected status")
)

// IsCircuitOpen checks if an error indicates the circuit breaker is open.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}
