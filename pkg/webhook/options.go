package webhook

import (
	"net/http"
	"time"
)

// DeliveryResult describes one finished attempt.
type DeliveryResult struct {
	ID         string
	URL        string
	StatusCode int
	Duration   time.Duration
	Error      error
}

// Success reports whether the endpoint answered 2xx.
func (r DeliveryResult) Success() bool {
	return r.Error == nil && r.StatusCode/100 == 2
}

// DeliveryHook observes finished attempts.
type DeliveryHook func(DeliveryResult)

type sendConfig struct {
	timeout    time.Duration
	header     http.Header
	client     *http.Client
	breaker    *Breaker
	onDelivery DeliveryHook
}

// SendOption configures a single Send.
type SendOption func(*sendConfig)

// WithTimeout bounds the request. Non-positive keeps DefaultTimeout.
func WithTimeout(d time.Duration) SendOption {
	return func(c *sendConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithContentType replaces application/json.
func WithContentType(ct string) SendOption {
	return WithHeader("Content-Type", ct)
}

// WithHeader sets a request header. Empty keys or values are ignored.
func WithHeader(key, value string) SendOption {
	return func(c *sendConfig) {
		if key != "" && value != "" {
			c.header.Set(key, value)
		}
	}
}

// WithHeaders sets several request headers.
func WithHeaders(h map[string]string) SendOption {
	return func(c *sendConfig) {
		for k, v := range h {
			WithHeader(k, v)(c)
		}
	}
}

// WithHTTPClient uses client for this call instead of the sender's.
func WithHTTPClient(client *http.Client) SendOption {
	return func(c *sendConfig) {
		if client != nil {
			c.client = client
		}
	}
}

// WithCircuitBreaker guards the call with b.
func WithCircuitBreaker(b *Breaker) SendOption {
	return func(c *sendConfig) { c.breaker = b }
}

// WithOnDelivery registers hook for the attempt's result. It is not called
// when the request is refused before sending.
func WithOnDelivery(hook DeliveryHook) SendOption {
	return func(c *sendConfig) { c.onDelivery = hook }
}
