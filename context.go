package errorlog

import "context"

type reporterKey struct{}

// WithReporter attaches r to ctx.
func WithReporter(ctx context.Context, r *Reporter) context.Context {
	return context.WithValue(ctx, reporterKey{}, r)
}

// FromContext returns the reporter attached to ctx, or nil. Reporter methods
// are no-ops on nil, so the result can be used without a check.
func FromContext(ctx context.Context) *Reporter {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(reporterKey{}).(*Reporter)
	return r
}
