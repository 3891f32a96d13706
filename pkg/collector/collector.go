package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/errorlog/pkg/clientip"
	"github.com/dmitrymomot/errorlog/pkg/dispatch"
	"github.com/dmitrymomot/errorlog/pkg/logger"
	"github.com/dmitrymomot/errorlog/pkg/metrics"
	"github.com/dmitrymomot/errorlog/pkg/record"
	"github.com/dmitrymomot/errorlog/pkg/useragent"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 64 << 10

// Collector handles sink payloads.
type Collector struct {
	metrics  *metrics.Metrics
	logger   *slog.Logger
	segments []string
	maxBody  int64
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger records are written to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSegments sets the accepted segment names. Empty names keep the
// defaults.
func WithSegments(s dispatch.Segments) Option {
	return func(c *Collector) {
		if s.API != "" {
			c.segments[0] = s.API
		}
		if s.Generic != "" {
			c.segments[1] = s.Generic
		}
	}
}

// WithMaxBodyBytes caps request bodies. Non-positive values are ignored.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Collector) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New creates a Collector counting on m, which may be nil.
func New(m *metrics.Metrics, opts ...Option) *Collector {
	c := &Collector{
		metrics:  m,
		logger:   logger.Discard(),
		segments: []string{dispatch.DefaultSegments.API, dispatch.DefaultSegments.Generic},
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleLog accepts a log sink payload.
func (c *Collector) HandleLog(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Error *record.LogRecord `json:"error"`
	}
	if err := c.decode(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if payload.Error == nil {
		writeError(w, http.StatusBadRequest, ErrMissingRecord)
		return
	}

	rec := payload.Error
	c.metrics.LogCollected(rec.Env, rec.IsAPIFailure)

	attrs := []slog.Attr{
		slog.String("env", rec.Env),
		slog.String("user_agent", rec.UserAgent),
		slog.Bool("api_failure", rec.IsAPIFailure),
		slog.String("request_url", rec.RequestURL),
		logger.Fingerprint(rec.Fingerprint()),
		logger.RequestID(middleware.GetReqID(r.Context())),
		slog.String("client_ip", clientip.FromContext(r.Context())),
	}
	if loc := rec.Location(); !loc.IsZero() {
		attrs = append(attrs, logger.Group("source",
			slog.String("url", loc.URL),
			slog.String("line", loc.Line),
			slog.String("column", loc.Column),
		))
	}
	if rec.Stack != "" {
		attrs = append(attrs, slog.String("stack", rec.Stack))
	}
	if rec.ReduxInfo != nil {
		attrs = append(attrs, slog.Any("state", rec.ReduxInfo))
	}
	if rec.PossibleDuplicate != nil {
		attrs = append(attrs, slog.Bool("possible_duplicate", *rec.PossibleDuplicate))
	}
	c.logger.LogAttrs(r.Context(), slog.LevelError, rec.Message, attrs...)

	w.WriteHeader(http.StatusNoContent)
}

// HandleStats accepts a metrics sink payload.
func (c *Collector) HandleStats(w http.ResponseWriter, r *http.Request) {
	var payload map[string]map[string]float64
	if err := c.decode(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(payload) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: empty", ErrInvalidPayload))
		return
	}

	// Validate everything before counting anything.
	for segment, clients := range payload {
		if !slices.Contains(c.segments, segment) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrUnknownSegment, segment))
			return
		}
		for client, n := range clients {
			if !slices.Contains(useragent.Categories(), useragent.Category(client)) {
				writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrUnknownClient, client))
				return
			}
			if n <= 0 || math.IsInf(n, 0) || math.IsNaN(n) {
				writeError(w, http.StatusBadRequest, ErrInvalidIncrement)
				return
			}
		}
	}

	for segment, clients := range payload {
		for client, n := range clients {
			c.metrics.Collected(segment, client, n)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Collector) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, c.maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidPayload)
		}
		return errors.Join(ErrInvalidPayload, err)
	}
	return nil
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
