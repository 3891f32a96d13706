package collector

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/errorlog"
	"github.com/dmitrymomot/errorlog/pkg/clientip"
	"github.com/dmitrymomot/errorlog/pkg/environment"
	"github.com/dmitrymomot/errorlog/pkg/httpserver"
	"github.com/dmitrymomot/errorlog/pkg/ratelimiter"
)

// RouterOptions configures Router. Every field is optional.
type RouterOptions struct {
	// Reporter receives the collector's own panics.
	Reporter *errorlog.Reporter
	// Gatherer is exposed on /metrics; nil hides the endpoint.
	Gatherer prometheus.Gatherer
	// Checks back the /health readiness probe.
	Checks []httpserver.Check
	// Environment is attached to request contexts for logging.
	Environment environment.Environment
	// ClientIP resolves the sender address; nil uses clientip.New().
	ClientIP *clientip.Resolver
	// RateLimit throttles /log and /stats per client address; nil disables.
	RateLimit *ratelimiter.Bucket
	// RateLimitOptions configure the throttling middleware.
	RateLimitOptions []ratelimiter.MiddlewareOption
}

// Router mounts the collector endpoints.
func Router(c *Collector, opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	resolver := opts.ClientIP
	if resolver == nil {
		resolver = clientip.New()
	}

	r.Use(middleware.RequestID)
	r.Use(resolver.Middleware)
	if opts.Environment != "" {
		r.Use(environment.Middleware(opts.Environment))
	}
	r.Use(opts.Reporter.Middleware)

	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(ratelimiter.Middleware(opts.RateLimit, clientKey, opts.RateLimitOptions...))
		}
		r.Post("/log", c.HandleLog)
		r.Post("/stats", c.HandleStats)
	})
	r.Get("/health", httpserver.Health(opts.Checks...))
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func clientKey(r *http.Request) string {
	return clientip.FromContext(r.Context())
}
