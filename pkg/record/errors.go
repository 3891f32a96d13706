package record

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// stackTracer is implemented by errors and rejection reasons that carry raw
// stack text.
type stackTracer interface {
	Stack() string
}

type withStack struct {
	err   error
	stack string
}

func (w *withStack) Error() string { return w.err.Error() }
func (w *withStack) Unwrap() error { return w.err }
func (w *withStack) Stack() string { return w.stack }

// WithStack attaches raw stack text to err. It returns nil if err is nil.
func WithStack(err error, stack string) error {
	if err == nil {
		return nil
	}
	return &withStack{err: err, stack: stack}
}

// WithCallerStack attaches the current goroutine's stack to err.
// It returns nil if err is nil.
func WithCallerStack(err error) error {
	if err == nil {
		return nil
	}
	return &withStack{err: err, stack: string(debug.Stack())}
}

// StackOf returns the stack text carried by v, searching the error chain when
// v is an error.
func StackOf(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case error:
		var st stackTracer
		if errors.As(x, &st) {
			s := st.Stack()
			return s, s != ""
		}
		return "", false
	case stackTracer:
		s := x.Stack()
		return s, s != ""
	}
	return "", false
}

// ResponseError is a failed API response. Failures wrapping a ResponseError
// are flagged as API failures and counted under the API segment.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

// NewResponseError creates a ResponseError for a request that completed with
// a non-success status.
func NewResponseError(method, url string, statusCode int) *ResponseError {
	return &ResponseError{Method: method, URL: url, StatusCode: statusCode}
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("api response error: %s %s: status %d", e.Method, e.URL, e.StatusCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResponseError) Unwrap() error { return e.Err }

// APIFailureFunc decides whether a failure is a typed API response error.
type APIFailureFunc func(d Details) bool

// IsAPIFailure reports whether the error, or the rejection reason when it is
// an error, wraps a *ResponseError.
func IsAPIFailure(d Details) bool {
	var re *ResponseError
	if d.Error != nil {
		return errors.As(d.Error, &re)
	}
	if d.Rejection != nil {
		if err, ok := d.Rejection.Reason.(error); ok {
			return errors.As(err, &re)
		}
	}
	return false
}
