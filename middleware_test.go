package errorlog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errorlog"
	"github.com/dmitrymomot/errorlog/pkg/record"
)

func TestMiddleware_RecoversAndReports(t *testing.T) {
	t.Parallel()

	r, tr, console := newReporter(t, prodEnv)

	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/panic", func(w http.ResponseWriter, _ *http.Request) {
		panic("handler exploded")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPad; CPU OS 17_0) CriOS/120.0")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	flush(t, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, tr.deliveries, 1)
	assert.Equal(t, map[string]map[string]int{"error": {"ios-chrome": 1}}, tr.deliveries[0].Payload)
	assert.Contains(t, console.String(), `"message":"Error: panic: handler exploded"`)
	assert.Contains(t, console.String(), `middleware_test.go`)
}

func TestMiddleware_ErrorPanicKeepsError(t *testing.T) {
	t.Parallel()

	r, tr, console := newReporter(t, prodEnv)
	sentinel := errors.New("typed failure")

	h := r.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(sentinel)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	flush(t, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, tr.deliveries, 1)
	assert.Contains(t, console.String(), `"message":"Error: typed failure"`)
}

func TestMiddleware_AbortHandlerPropagates(t *testing.T) {
	t.Parallel()

	r, tr, _ := newReporter(t, prodEnv)
	h := r.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Empty(t, tr.urls())
}

func TestMiddleware_PutsReporterInContext(t *testing.T) {
	t.Parallel()

	r, tr, _ := newReporter(t, prodEnv)
	h := r.Middleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rep := errorlog.FromContext(req.Context())
		assert.Same(t, r, rep)
		rep.Report(req.Context(), record.Details{Error: errors.New("handled")}, rep.Config().Sinks())
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	flush(t, r)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, tr.urls(), 2)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	r, _, _ := newReporter(t, nil)
	ctx := errorlog.WithReporter(context.Background(), r)
	assert.Same(t, r, errorlog.FromContext(ctx))
}
