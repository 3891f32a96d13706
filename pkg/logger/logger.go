package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/errorlog/pkg/environment"
)

type options struct {
	level      slog.Leveler
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option configures New.
type Option func(*options)

// WithLevel sets the minimum level. A *slog.LevelVar allows changing it at
// runtime.
func WithLevel(l slog.Leveler) Option {
	return func(o *options) {
		if l != nil {
			o.level = l
		}
	}
}

// WithFormat selects the handler. It panics on an unknown format; use
// ParseFormat for untrusted input.
func WithFormat(f Format) Option {
	if !f.valid() {
		panic(fmt.Errorf("%w: %q", ErrUnknownFormat, f))
	}
	return func(o *options) { o.format = f }
}

// WithOutput sets the destination. Nil is ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr attaches attrs to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) { o.attrs = append(o.attrs, attrs...) }
}

// WithContextExtractors adds per-record attributes taken from the context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

// WithContextValue logs ctx.Value(key) as name whenever it is set.
func WithContextValue(name string, key any) Option {
	if name == "" || key == nil {
		return func(*options) {}
	}
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(key)
		return slog.Any(name, v), v != nil
	})
}

// WithEnvironment sets level and format for env (debug text in development,
// info JSON elsewhere) and tags records with service and app_env.
func WithEnvironment(env environment.Environment, service string) Option {
	return func(o *options) {
		if env == "" {
			env = environment.Development
		}
		o.level, o.format = slog.LevelInfo, FormatJSON
		if env == environment.Development {
			o.level, o.format = slog.LevelDebug, FormatText
		}
		if service != "" {
			o.attrs = append(o.attrs, slog.String("service", service))
		}
		o.attrs = append(o.attrs, slog.String("app_env", string(env)))
	}
}

// New builds a logger writing JSON at info level to stderr unless options
// say otherwise.
func New(opts ...Option) *slog.Logger {
	o := &options{level: slog.LevelInfo, format: FormatJSON, output: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	ho := &slog.HandlerOptions{Level: o.level}
	var h slog.Handler = slog.NewJSONHandler(o.output, ho)
	if o.format == FormatText {
		h = slog.NewTextHandler(o.output, ho)
	}
	return slog.New(NewContextHandler(h, o.extractors...).WithAttrs(o.attrs))
}

// SetAsDefault installs l as the slog default.
func SetAsDefault(l *slog.Logger) { slog.SetDefault(l) }

// Discard returns a logger that drops every record. Components accepting an
// optional logger default to it.
func Discard() *slog.Logger { return slog.New(slog.DiscardHandler) }
