package errorlog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/errorlog/pkg/dedup"
	"github.com/dmitrymomot/errorlog/pkg/dispatch"
	"github.com/dmitrymomot/errorlog/pkg/environment"
	"github.com/dmitrymomot/errorlog/pkg/logger"
	"github.com/dmitrymomot/errorlog/pkg/record"
)

// Reporter builds and dispatches failure reports. A nil *Reporter is valid
// and reports nothing.
type Reporter struct {
	cfg        Config
	builder    *record.Builder
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// New creates a Reporter. A zero Runtime means the server runtime.
func New(cfg Config, opts ...Option) *Reporter {
	if cfg.Runtime == "" {
		cfg.Runtime = environment.Server
	}

	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		dedupOpts := []dedup.Option{
			dedup.WithWindow(cfg.DedupWindow),
			dedup.WithCapacity(cfg.DedupCapacity),
			dedup.WithPrefix(cfg.DedupPrefix),
		}
		if o.redis != nil {
			store = dedup.NewRedisStore(o.redis, dedupOpts...)
		} else {
			store = dedup.NewMemoryStore(dedupOpts...)
		}
	}

	dispatchOpts := append([]dispatch.DispatcherOption{
		dispatch.WithStore(store),
		dispatch.WithSegments(cfg.Segments()),
		dispatch.WithLogger(o.logger),
	}, o.dispatch...)

	return &Reporter{
		cfg:        cfg,
		builder:    record.NewBuilder(cfg.Runtime.Tag(), o.builderOpts...),
		dispatcher: dispatch.New(cfg.Runtime, cfg.Environment, dispatchOpts...),
		logger:     o.logger.With(logger.Component("errorlog")),
	}
}

// Report builds a record from details and dispatches it to sinks. Details
// without an error or rejection are ignored. Report returns once the record
// is printed; sink deliveries continue in the background.
func (r *Reporter) Report(ctx context.Context, details record.Details, sinks dispatch.Sinks, opts ...dispatch.Option) {
	if r == nil || details.IsEmpty() {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "recovered panic while reporting", slog.Any("panic", p))
		}
	}()

	rec := r.builder.Build(details)
	r.dispatcher.Dispatch(ctx, rec, details, sinks, dispatch.NewOptions(opts...))
}

// ReportServerError reports err raised while serving req, to the metrics
// sink only. The request URL and User-Agent header become the context.
func (r *Reporter) ReportServerError(ctx context.Context, err error, req *http.Request) {
	if r == nil || err == nil {
		return
	}
	details := record.Details{Error: err}
	if req != nil {
		details.UserAgent = req.UserAgent()
		if req.URL != nil {
			details.RequestURL = req.URL.String()
		}
	}
	r.Report(ctx, details, dispatch.Sinks{Hivemind: r.cfg.StatsURL})
}

// Flush waits for in-flight sink deliveries, up to ctx.
func (r *Reporter) Flush(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.dispatcher.Flush(ctx)
}

// Config returns the configuration the reporter was built with.
func (r *Reporter) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.cfg
}

// PrettyPrint writes rec as indented JSON with stack newlines restored.
// rec may be a record.LogRecord, a production log line ([]byte, string or
// json.RawMessage), or any value that marshals to a record.
func PrettyPrint(w io.Writer, rec any) error {
	var lr record.LogRecord
	switch v := rec.(type) {
	case record.LogRecord:
		lr = v
	case *record.LogRecord:
		if v != nil {
			lr = *v
		}
	case []byte:
		if err := decodeRecord(v, &lr); err != nil {
			return err
		}
	case json.RawMessage:
		if err := decodeRecord(v, &lr); err != nil {
			return err
		}
	case string:
		if err := decodeRecord([]byte(v), &lr); err != nil {
			return err
		}
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		if err := decodeRecord(b, &lr); err != nil {
			return err
		}
	}

	out, err := dispatch.FormatPretty(lr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// decodeRecord accepts a bare record or a log sink payload {"error": record}.
func decodeRecord(b []byte, lr *record.LogRecord) error {
	var envelope struct {
		Error *record.LogRecord `json:"error"`
	}
	if err := json.Unmarshal(b, &envelope); err == nil && envelope.Error != nil {
		*lr = *envelope.Error
		return nil
	}
	if err := json.Unmarshal(b, lr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
