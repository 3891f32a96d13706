// Package webhook delivers JSON payloads to HTTP endpoints.
//
// It is the transport behind error sinks: one POST per call, a per-request
// timeout, and an optional circuit breaker that stops traffic to an endpoint
// that keeps failing. There are no retries. Callers that report failures must
// not amplify an outage of their own collector.
//
// # Basic Usage
//
//	sender := webhook.NewSender()
//
//	err := sender.Send(ctx, "https://logs.example.com/log", map[string]any{
//	    "error": rec,
//	}, webhook.WithTimeout(3*time.Second))
//
// Every request carries Content-Type: application/json (overridable with
// WithContentType) and a unique X-Delivery-ID header.
//
// # Circuit Breaking
//
// Reuse one Breaker per endpoint; a BreakerSet hands them out by URL:
//
//	breakers := webhook.NewBreakerSet(webhook.BreakerSettings{FailureThreshold: 5})
//	err := sender.Send(ctx, url, payload, webhook.WithCircuitBreaker(breakers.Get(url)))
//
// A 4xx answer other than 408 or 429 blames the request, not the endpoint,
// and does not count as a breaker failure. While half-open the breaker lets
// MaxProbes requests through at a time.
//
// # Error Handling
//
// Errors wrap one of the sentinel values (ErrInvalidURL, ErrInvalidPayload,
// ErrCircuitOpen, ErrTimeout, ErrTemporaryFailure, ErrUnexpectedStatus) and
// can be checked with errors.Is.
package webhook
