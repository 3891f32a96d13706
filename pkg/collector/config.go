package collector

import (
	"time"

	"github.com/dmitrymomot/errorlog/pkg/ratelimiter"
)

// Config is the environment-loadable collector configuration.
type Config struct {
	MaxBodyBytes     int64  `env:"COLLECTOR_MAX_BODY_BYTES" envDefault:"65536"`
	MetricsNamespace string `env:"COLLECTOR_METRICS_NAMESPACE" envDefault:"errorlog"`
	ServiceName      string `env:"COLLECTOR_SERVICE_NAME" envDefault:"errorlog-collector"`

	// TrustedHeaders carry the client address, in priority order.
	TrustedHeaders []string `env:"COLLECTOR_TRUSTED_HEADERS" envDefault:"CF-Connecting-IP,X-Forwarded-For,X-Real-IP"`

	// RateLimitBurst is the per-client token bucket size. Zero disables
	// throttling.
	RateLimitBurst    int           `env:"COLLECTOR_RATE_LIMIT_BURST" envDefault:"120"`
	RateLimitRefill   int           `env:"COLLECTOR_RATE_LIMIT_REFILL" envDefault:"2"`
	RateLimitInterval time.Duration `env:"COLLECTOR_RATE_LIMIT_INTERVAL" envDefault:"1s"`
}

// RateLimit returns the bucket configuration and whether throttling is on.
func (c Config) RateLimit() (ratelimiter.Config, bool) {
	return ratelimiter.Config{
		Capacity:       c.RateLimitBurst,
		RefillRate:     c.RateLimitRefill,
		RefillInterval: c.RateLimitInterval,
	}, c.RateLimitBurst > 0
}
