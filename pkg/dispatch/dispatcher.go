package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrymomot/errorlog/pkg/dedup"
	"github.com/dmitrymomot/errorlog/pkg/environment"
	"github.com/dmitrymomot/errorlog/pkg/logger"
	"github.com/dmitrymomot/errorlog/pkg/record"
	"github.com/dmitrymomot/errorlog/pkg/useragent"
)

// Counter receives pipeline events. *metrics.Metrics implements it.
type Counter interface {
	ReportSent(segment, client string)
	Delivery(sink string, err error)
	Duplicate()
}

type nopCounter struct{}

func (nopCounter) ReportSent(string, string) {}
func (nopCounter) Delivery(string, error)    {}
func (nopCounter) Duplicate()                {}

// Dispatcher delivers records. It is safe for concurrent use.
type Dispatcher struct {
	runtime environment.Runtime
	env     environment.Environment

	store      dedup.Store
	transport  Transport
	emitter    Emitter
	counter    Counter
	segments   Segments
	logger     *slog.Logger
	logTimeout time.Duration

	consoleMu    sync.Mutex
	console      io.Writer
	errorConsole io.Writer

	wg sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithStore sets the dedup store. Defaults to a dedup.MemoryStore.
func WithStore(s dedup.Store) DispatcherOption {
	return func(d *Dispatcher) {
		if s != nil {
			d.store = s
		}
	}
}

// WithTransport sets the sink transport. Defaults to NewHTTPTransport().
func WithTransport(t Transport) DispatcherOption {
	return func(d *Dispatcher) {
		if t != nil {
			d.transport = t
		}
	}
}

// WithEmitter sets the client-side diagnostics emitter. Defaults to a
// WriterEmitter on stderr. Nil disables emitting.
func WithEmitter(e Emitter) DispatcherOption {
	return func(d *Dispatcher) {
		d.emitter = e
	}
}

// WithConsole sets the writer for printed records. Defaults to stdout.
func WithConsole(w io.Writer) DispatcherOption {
	return func(d *Dispatcher) {
		if w != nil {
			d.console = w
		}
	}
}

// WithErrorConsole sets the error-level writer used by the client fallback.
// Defaults to stderr. Nil makes the fallback use the console instead.
func WithErrorConsole(w io.Writer) DispatcherOption {
	return func(d *Dispatcher) {
		d.errorConsole = w
	}
}

// WithCounter sets the event counter.
func WithCounter(c Counter) DispatcherOption {
	return func(d *Dispatcher) {
		if c != nil {
			d.counter = c
		}
	}
}

// WithSegments sets the metrics segment names. Empty names keep defaults.
func WithSegments(s Segments) DispatcherOption {
	return func(d *Dispatcher) {
		d.segments = s.withDefaults()
	}
}

// WithLogger sets the logger for the dispatcher's own diagnostics.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithLogTimeout bounds log sink deliveries. Zero keeps the transport default.
func WithLogTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout >= 0 {
			d.logTimeout = timeout
		}
	}
}

// New creates a Dispatcher for the given runtime and build mode.
func New(runtime environment.Runtime, env environment.Environment, opts ...DispatcherOption) *Dispatcher {
	if runtime == "" {
		runtime = environment.Server
	}
	d := &Dispatcher{
		runtime:      runtime,
		env:          env,
		store:        dedup.NewMemoryStore(),
		transport:    NewHTTPTransport(),
		emitter:      NewWriterEmitter(os.Stderr),
		counter:      nopCounter{},
		segments:     DefaultSegments,
		logger:       logger.Discard(),
		console:      os.Stdout,
		errorConsole: os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(logger.Component("dispatch"))
	return d
}

// Runtime returns the runtime the dispatcher serves.
func (d *Dispatcher) Runtime() environment.Runtime { return d.runtime }

// Dispatch outputs and delivers rec. details is the failure rec was built
// from; it is handed to the Emitter. Dispatch does not wait for deliveries
// and never panics.
func (d *Dispatcher) Dispatch(ctx context.Context, rec record.LogRecord, details record.Details, sinks Sinks, opts Options) {
	defer d.recoverPanic(ctx, "dispatch")

	ctx = context.WithoutCancel(ctx)

	// Only a client rethrow marks the failure; every other mode just
	// respects an existing mark.
	rethrow := d.runtime == environment.Client && opts.ShouldRethrow
	fresh, err := d.check(ctx, rec.Fingerprint(), rethrow)
	if !fresh {
		return
	}

	switch {
	case rethrow && err != nil:
		d.printFallback(rec)
	case rethrow:
		d.emitLater(ctx, details.Failure(), rec)
	case d.runtime != environment.Client:
		d.print(ctx, rec)
	}

	if sinks.Log != "" {
		d.deliver(ctx, Delivery{
			Sink:    SinkLog,
			URL:     sinks.Log,
			Payload: LogPayload(rec),
			Timeout: d.logTimeout,
		})
	}

	if sinks.Hivemind != "" {
		segment := d.segments.For(rec.IsAPIFailure)
		category := useragent.Classify(rec.UserAgent).String()
		d.counter.ReportSent(segment, category)
		d.deliver(ctx, Delivery{
			Sink:    SinkMetrics,
			URL:     sinks.Hivemind,
			Payload: MetricsPayload(segment, category),
			Timeout: MetricsTimeout,
		})
	}
}

// Flush waits until in-flight deliveries and emits finish or ctx is done.
// It must not race with Dispatch calls.
func (d *Dispatcher) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// check reports whether fp may be reported. With mark set it claims fp,
// otherwise it only looks it up. A store error counts as not reported and is
// returned so the caller can fall back.
func (d *Dispatcher) check(ctx context.Context, fp string, mark bool) (bool, error) {
	var (
		seen bool
		err  error
	)
	if mark {
		var claimed bool
		claimed, err = d.store.Claim(ctx, fp)
		seen = !claimed
	} else {
		seen, err = d.store.Seen(ctx, fp)
	}

	if err != nil {
		d.logger.WarnContext(ctx, "dedup store unavailable", logger.Fingerprint(fp), logger.Error(err))
		return true, err
	}
	if seen {
		d.counter.Duplicate()
		d.logger.DebugContext(ctx, "duplicate report dropped", logger.Fingerprint(fp))
		return false, nil
	}
	return true, nil
}

func (d *Dispatcher) print(ctx context.Context, rec record.LogRecord) {
	out, err := Format(rec, d.env)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to format record", logger.Error(err))
		return
	}
	d.write(d.console, string(out))
}

// printFallback is used on the client when the failure could not be marked
// as reported.
func (d *Dispatcher) printFallback(rec record.LogRecord) {
	if d.errorConsole != nil {
		d.write(d.errorConsole, rec.Message)
		return
	}
	d.write(d.console, rec.Message+"\n"+rec.Stack)
}

func (d *Dispatcher) write(w io.Writer, line string) {
	d.consoleMu.Lock()
	defer d.consoleMu.Unlock()
	_, _ = fmt.Fprintln(w, line)
}

func (d *Dispatcher) emitLater(ctx context.Context, failure any, rec record.LogRecord) {
	if d.emitter == nil {
		return
	}
	d.wg.Add(1)
	time.AfterFunc(0, func() {
		defer d.wg.Done()
		defer d.recoverPanic(ctx, "emit")
		d.emitter.Emit(failure, rec)
	})
}

func (d *Dispatcher) deliver(ctx context.Context, del Delivery) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.recoverPanic(ctx, "deliver")

		start := time.Now()
		err := d.transport.Post(ctx, del)
		d.counter.Delivery(del.Sink, err)
		if err != nil {
			d.logger.DebugContext(ctx, "sink delivery failed",
				logger.Sink(del.Sink),
				logger.Endpoint(del.URL),
				logger.Duration(time.Since(start)),
				logger.Error(err),
			)
		}
	}()
}

func (d *Dispatcher) recoverPanic(ctx context.Context, stage string) {
	if r := recover(); r != nil {
		d.logger.ErrorContext(ctx, "recovered panic", slog.String("stage", stage), slog.Any("panic", r))
	}
}
