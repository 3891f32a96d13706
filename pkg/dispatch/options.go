package dispatch

// Sinks holds the sink endpoints. An empty URL disables that sink.
type Sinks struct {
	// Log receives the whole record.
	Log string
	// Hivemind receives per-segment user-agent increments.
	Hivemind string
}

// IsZero reports whether no sink is configured.
func (s Sinks) IsZero() bool {
	return s.Log == "" && s.Hivemind == ""
}

// Options tunes a single Dispatch call.
type Options struct {
	// ShouldRethrow hands client-side failures to the Emitter.
	ShouldRethrow bool
}

// Option modifies Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{ShouldRethrow: true}
}

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithoutRethrow disables platform diagnostics for the call.
func WithoutRethrow() Option {
	return WithRethrow(false)
}

// WithRethrow sets ShouldRethrow.
func WithRethrow(enabled bool) Option {
	return func(o *Options) {
		o.ShouldRethrow = enabled
	}
}
