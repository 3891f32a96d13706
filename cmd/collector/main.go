// Command collector receives errorlog sink deliveries: log records are
// written to stdout as JSON lines, stats increments are exposed on /metrics.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/errorlog"
	"github.com/dmitrymomot/errorlog/pkg/clientip"
	"github.com/dmitrymomot/errorlog/pkg/collector"
	"github.com/dmitrymomot/errorlog/pkg/config"
	"github.com/dmitrymomot/errorlog/pkg/environment"
	"github.com/dmitrymomot/errorlog/pkg/httpserver"
	"github.com/dmitrymomot/errorlog/pkg/logger"
	"github.com/dmitrymomot/errorlog/pkg/metrics"
	"github.com/dmitrymomot/errorlog/pkg/ratelimiter"
	"github.com/dmitrymomot/errorlog/pkg/redis"
)

type appConfig struct {
	Errorlog  errorlog.Config
	Server    httpserver.Config
	Redis     redis.Config
	Collector collector.Config
	Log       logger.Config
}

func main() {
	if err := config.LoadEnv(envFiles()...); err != nil {
		slog.Error("failed to load .env", logger.Error(err))
		os.Exit(1)
	}

	var cfg appConfig
	config.MustLoad(&cfg)

	overrides, err := cfg.Log.Options()
	if err != nil {
		slog.Error("invalid log configuration", logger.Error(err))
		os.Exit(1)
	}
	log := logger.New(append([]logger.Option{
		logger.WithEnvironment(cfg.Errorlog.Environment, cfg.Collector.ServiceName),
		logger.WithOutput(os.Stdout),
		logger.WithContextExtractors(environment.LoggerExtractor()),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	}, overrides...)...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("collector stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.MustNew(registry, cfg.Collector.MetricsNamespace)

	opts := []errorlog.Option{
		errorlog.WithLogger(log),
		errorlog.WithMetrics(m),
	}
	var (
		checks  []httpserver.Check
		limiter ratelimiter.Store
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		opts = append(opts, errorlog.WithRedis(client))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		limiter = ratelimiter.NewRedisStore(client)
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limiter = mem
	}
	reporter := errorlog.New(cfg.Errorlog, opts...)

	var bucket *ratelimiter.Bucket
	if rl, ok := cfg.Collector.RateLimit(); ok {
		var err error
		if bucket, err = ratelimiter.NewBucket(limiter, rl); err != nil {
			return err
		}
	}

	c := collector.New(m,
		collector.WithLogger(log.With(logger.Component("collector"))),
		collector.WithSegments(cfg.Errorlog.Segments()),
		collector.WithMaxBodyBytes(cfg.Collector.MaxBodyBytes),
	)
	router := collector.Router(c, collector.RouterOptions{
		Reporter:    reporter,
		Gatherer:    registry,
		Checks:      checks,
		Environment: cfg.Errorlog.Environment,
		ClientIP:    clientip.New(cfg.Collector.TrustedHeaders...),
		RateLimit:   bucket,
		RateLimitOptions: []ratelimiter.MiddlewareOption{
			ratelimiter.WithLogger(log),
			ratelimiter.WithOnLimited(func(r *http.Request, key string) {
				log.WarnContext(r.Context(), "client throttled", slog.String("client_ip", key))
			}),
		},
	})

	srv := httpserver.NewFromConfig(cfg.Server,
		httpserver.WithLogger(log),
		httpserver.WithDrain(reporter.Flush),
	)
	return srv.Run(ctx, router)
}

func envFiles() []string {
	if _, err := os.Stat(".env"); err == nil {
		return []string{".env"}
	}
	return nil
}
