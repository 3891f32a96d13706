package errorlog

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/errorlog/pkg/record"
)

// Middleware stores the reporter in each request context and recovers
// handler panics: the panic is reported with ReportServerError and the client
// gets a 500. http.ErrAbortHandler is re-raised untouched.
func (r *Reporter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(p)
			}

			r.ReportServerError(req.Context(), panicError(p), req)

			if req.Header.Get("Connection") != "Upgrade" {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, req.WithContext(WithReporter(req.Context(), r)))
	})
}

// panicError turns a recovered value into an error carrying the goroutine
// stack.
func panicError(p any) error {
	err, ok := p.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", p)
	}
	return record.WithStack(err, string(debug.Stack()))
}
