package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/errorlog/pkg/dispatch"
	"github.com/dmitrymomot/errorlog/pkg/record"
)

// recordingTransport keeps every delivery and fails those whose URL is in fail.
type recordingTransport struct {
	mu         sync.Mutex
	deliveries []dispatch.Delivery
	fail       map[string]error
}

func (t *recordingTransport) Post(_ context.Context, d dispatch.Delivery) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deliveries = append(t.deliveries, d)
	return t.fail[d.URL]
}

func (t *recordingTransport) bySink() map[string]dispatch.Delivery {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]dispatch.Delivery, len(t.deliveries))
	for _, d := range t.deliveries {
		out[d.Sink] = d
	}
	return out
}

func (t *recordingTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.deliveries)
}

type recordingEmitter struct {
	mu       sync.Mutex
	failures []any
}

func (e *recordingEmitter) Emit(failure any, _ record.LogRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures = append(e.failures, failure)
}

func (e *recordingEmitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.failures)
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var errStoreDown = errors.New("store down")

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) Claim(context.Context, string) (bool, error) { return false, errStoreDown }
func (brokenStore) Seen(context.Context, string) (bool, error)  { return false, errStoreDown }

const stack = "Error: boom\n    at handler (http://app.example.com/main.js:10:5)"

func sampleRecord() (record.LogRecord, record.Details) {
	details := record.Details{
		Error:     record.WithStack(errors.New("boom"), stack),
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Safari/604.1",
	}
	return record.NewBuilder("SERVER").Build(details), details
}
