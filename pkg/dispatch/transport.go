package dispatch

import (
	"context"
	"time"

	"github.com/dmitrymomot/errorlog/pkg/webhook"
)

// Delivery is one POST to a sink.
type Delivery struct {
	Sink    string
	URL     string
	Payload any
	// Timeout bounds the request; zero means the transport default.
	Timeout time.Duration
}

// Transport posts deliveries as JSON.
type Transport interface {
	Post(ctx context.Context, d Delivery) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, d Delivery) error

func (f TransportFunc) Post(ctx context.Context, d Delivery) error { return f(ctx, d) }

// HTTPTransport posts through a webhook.Sender, one circuit breaker per
// endpoint, without retries.
type HTTPTransport struct {
	sender   *webhook.Sender
	breakers *webhook.BreakerSet
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// WithSender replaces the webhook sender.
func WithSender(s *webhook.Sender) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if s != nil {
			t.sender = s
		}
	}
}

// WithBreakers replaces the per-endpoint breakers. Nil disables circuit
// breaking.
func WithBreakers(b *webhook.BreakerSet) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.breakers = b
	}
}

// NewHTTPTransport creates the default transport with webhook's default
// breaker settings.
func NewHTTPTransport(opts ...HTTPTransportOption) *HTTPTransport {
	t := &HTTPTransport{
		sender:   webhook.NewSender(),
		breakers: webhook.NewBreakerSet(webhook.BreakerSettings{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Post sends d.Payload to d.URL.
func (t *HTTPTransport) Post(ctx context.Context, d Delivery) error {
	opts := []webhook.SendOption{webhook.WithTimeout(d.Timeout)}
	if t.breakers != nil {
		opts = append(opts, webhook.WithCircuitBreaker(t.breakers.Get(d.URL)))
	}
	return t.sender.Send(ctx, d.URL, d.Payload, opts...)
}
