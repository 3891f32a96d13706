package dispatch

import (
	"fmt"
	"io"

	"github.com/dmitrymomot/errorlog/pkg/record"
)

// Emitter surfaces a client-side failure to platform tooling after it has
// been reported, e.g. a browser console through a WASM bridge or a
// crash reporter. It is called on its own goroutine.
type Emitter interface {
	Emit(failure any, rec record.LogRecord)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(failure any, rec record.LogRecord)

func (f EmitterFunc) Emit(failure any, rec record.LogRecord) { f(failure, rec) }

// WriterEmitter writes the failure and its stack to W.
type WriterEmitter struct {
	W io.Writer
}

// NewWriterEmitter creates an emitter writing to w.
func NewWriterEmitter(w io.Writer) *WriterEmitter {
	return &WriterEmitter{W: w}
}

func (e *WriterEmitter) Emit(failure any, rec record.LogRecord) {
	if e.W == nil {
		return
	}
	switch f := failure.(type) {
	case error:
		_, _ = fmt.Fprintf(e.W, "uncaught %v\n", f)
	case *record.Rejection:
		_, _ = fmt.Fprintf(e.W, "uncaught (in promise) %s\n", rec.Message)
	default:
		_, _ = fmt.Fprintf(e.W, "uncaught %s\n", rec.Message)
	}
	if rec.Stack != "" {
		_, _ = fmt.Fprintln(e.W, rec.Stack)
	}
}
