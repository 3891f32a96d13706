package errorlog

import (
	"time"

	"github.com/dmitrymomot/errorlog/pkg/config"
	"github.com/dmitrymomot/errorlog/pkg/dispatch"
	"github.com/dmitrymomot/errorlog/pkg/environment"
)

// Config is the reporter configuration, loadable with pkg/config.
type Config struct {
	Runtime     environment.Runtime     `env:"ERRORLOG_RUNTIME" envDefault:"server"`
	Environment environment.Environment `env:"APP_ENV" envDefault:"development"`

	// LogURL receives whole records. Empty disables the log sink.
	LogURL string `env:"ERRORLOG_LOG_URL"`
	// StatsURL receives per-segment user-agent counts. Empty disables it.
	StatsURL string `env:"ERRORLOG_STATS_URL"`

	// APISegment and ErrorSegment name the stats buckets for API and other
	// failures. Deployments that share a stats collector with other apps
	// prefix them per app, e.g. ERRORLOG_API_SEGMENT=mweb2XAPIError and
	// ERRORLOG_ERROR_SEGMENT=mweb2XError for the mobile web client.
	APISegment   string `env:"ERRORLOG_API_SEGMENT" envDefault:"apiError"`
	ErrorSegment string `env:"ERRORLOG_ERROR_SEGMENT" envDefault:"error"`

	DedupWindow   time.Duration `env:"ERRORLOG_DEDUP_WINDOW" envDefault:"30s"`
	DedupCapacity int           `env:"ERRORLOG_DEDUP_CAPACITY" envDefault:"4096"`
	DedupPrefix   string        `env:"ERRORLOG_DEDUP_PREFIX" envDefault:"errorlog:seen:"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Sinks returns both configured sinks.
func (c Config) Sinks() dispatch.Sinks {
	return dispatch.Sinks{Log: c.LogURL, Hivemind: c.StatsURL}
}

// Segments returns the metrics segment names.
func (c Config) Segments() dispatch.Segments {
	return dispatch.Segments{API: c.APISegment, Generic: c.ErrorSegment}
}
