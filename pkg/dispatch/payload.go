package dispatch

import (
	"time"

	"github.com/dmitrymomot/errorlog/pkg/record"
)

// Sink names used in deliveries, logs and metrics.
const (
	SinkLog     = "log"
	SinkMetrics = "metrics"
)

// MetricsTimeout bounds a metrics sink delivery.
const MetricsTimeout = 3000 * time.Millisecond

// Segments names the two metrics buckets.
type Segments struct {
	API     string
	Generic string
}

// DefaultSegments are used when the dispatcher is given none. Real
// deployments usually set app-specific names such as mweb2XAPIError and
// mweb2XError.
var DefaultSegments = Segments{API: "apiError", Generic: "error"}

// For picks the segment for a record.
func (s Segments) For(apiFailure bool) string {
	if apiFailure {
		return s.API
	}
	return s.Generic
}

func (s Segments) withDefaults() Segments {
	if s.API == "" {
		s.API = DefaultSegments.API
	}
	if s.Generic == "" {
		s.Generic = DefaultSegments.Generic
	}
	return s
}

// LogPayload is the body sent to the log sink.
func LogPayload(rec record.LogRecord) map[string]record.LogRecord {
	return map[string]record.LogRecord{"error": rec}
}

// MetricsPayload is the body sent to the metrics sink.
func MetricsPayload(segment, category string) map[string]map[string]int {
	return map[string]map[string]int{segment: {category: 1}}
}
