package errorlog

import (
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/errorlog/pkg/dedup"
	"github.com/dmitrymomot/errorlog/pkg/dispatch"
	"github.com/dmitrymomot/errorlog/pkg/metrics"
	"github.com/dmitrymomot/errorlog/pkg/record"
)

type options struct {
	logger      *slog.Logger
	store       dedup.Store
	redis       redis.UniversalClient
	builderOpts []record.BuilderOption
	dispatch    []dispatch.DispatcherOption
}

// Option configures a Reporter.
type Option func(*options)

// WithLogger sets the logger for the reporter's own diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStore sets the dedup store, overriding WithRedis.
func WithStore(s dedup.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithRedis shares the dedup set between processes through client.
func WithRedis(client redis.UniversalClient) Option {
	return func(o *options) {
		o.redis = client
	}
}

// WithTransport replaces the HTTP transport used for sinks.
func WithTransport(t dispatch.Transport) Option {
	return func(o *options) {
		o.dispatch = append(o.dispatch, dispatch.WithTransport(t))
	}
}

// WithConsole sets where server-side reports are printed. Defaults to stdout.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.dispatch = append(o.dispatch, dispatch.WithConsole(w))
	}
}

// WithErrorConsole sets the error-level console used by the client fallback.
func WithErrorConsole(w io.Writer) Option {
	return func(o *options) {
		o.dispatch = append(o.dispatch, dispatch.WithErrorConsole(w))
	}
}

// WithEmitter sets the client-side diagnostics emitter.
func WithEmitter(e dispatch.Emitter) Option {
	return func(o *options) {
		o.dispatch = append(o.dispatch, dispatch.WithEmitter(e))
	}
}

// WithMetrics counts reports, deliveries and duplicates on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.dispatch = append(o.dispatch, dispatch.WithCounter(m))
		}
	}
}

// WithAPIFailureFunc replaces the API failure classifier.
func WithAPIFailureFunc(fn record.APIFailureFunc) Option {
	return func(o *options) {
		o.builderOpts = append(o.builderOpts, record.WithAPIFailureFunc(fn))
	}
}
