package record

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/errorlog/pkg/fingerprint"
	"github.com/dmitrymomot/errorlog/pkg/safejson"
	"github.com/dmitrymomot/errorlog/pkg/stacktrace"
)

// Placeholders for missing context fields.
const (
	DefaultUserAgent  = "UNKNOWN UA"
	DefaultMessage    = "NO MESSAGE"
	DefaultRequestURL = "NO REQUEST URL"
)

// MaxStackLength caps the stack text, in characters. Collectors accept about
// 4096 bytes per log line and an overflowing line is no longer valid JSON.
const MaxStackLength = 2048

// maxStateBytes caps the serialized application state snapshot.
const maxStateBytes = 1024

// LogRecord is the normalized form of a failure.
// Location and stack fields are omitted when unknown.
type LogRecord struct {
	Env               string `json:"env"`
	UserAgent         string `json:"userAgent"`
	IsAPIFailure      bool   `json:"isAPIFailure"`
	Message           string `json:"message"`
	RequestURL        string `json:"requestUrl"`
	ReduxInfo         any    `json:"reduxInfo"`
	URL               string `json:"url,omitempty"`
	Line              string `json:"line,omitempty"`
	Column            string `json:"column,omitempty"`
	Stack             string `json:"stack,omitempty"`
	PossibleDuplicate *bool  `json:"possibleDuplicate,omitempty"`
}

// Fingerprint identifies the failure by content, for deduplication.
func (r LogRecord) Fingerprint() string {
	return fingerprint.Of(r.Message, r.Stack)
}

// Location returns the parsed source location, possibly zero.
func (r LogRecord) Location() stacktrace.Location {
	return stacktrace.Location{URL: r.URL, Line: r.Line, Column: r.Column}
}

// Builder turns Details into LogRecords.
type Builder struct {
	env          string
	isAPIFailure APIFailureFunc
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithAPIFailureFunc replaces the API failure classifier.
// Nil values are ignored.
func WithAPIFailureFunc(fn APIFailureFunc) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.isAPIFailure = fn
		}
	}
}

// NewBuilder creates a Builder that stamps records with env.
func NewBuilder(env string, opts ...BuilderOption) *Builder {
	b := &Builder{
		env:          env,
		isAPIFailure: IsAPIFailure,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build normalizes d. It never fails; empty details produce a record made of
// placeholders.
func (b *Builder) Build(d Details) LogRecord {
	var (
		message string
		stack   string
	)

	switch {
	case d.Error != nil:
		message = "Error: " + errorMessage(d.Error)
		stack, _ = StackOf(d.Error)
	case d.Rejection != nil:
		message = "Rejection: " + reasonString(d.Rejection.Reason)
		stack, _ = StackOf(d.Rejection.Reason)
	}

	rec := LogRecord{
		Env:               b.env,
		UserAgent:         withDefault(d.UserAgent, DefaultUserAgent),
		IsAPIFailure:      b.apiFailure(d),
		Message:           withDefault(message, DefaultMessage),
		RequestURL:        withDefault(d.RequestURL, DefaultRequestURL),
		ReduxInfo:         stateSnapshot(d.State),
		PossibleDuplicate: d.PossibleDuplicate,
	}

	if stack != "" {
		loc := stacktrace.Parse(stack)
		rec.URL, rec.Line, rec.Column = loc.URL, loc.Line, loc.Column
		rec.Stack = truncate(stack, MaxStackLength)
	}

	return rec
}

func (b *Builder) apiFailure(d Details) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return b.isAPIFailure(d)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func errorMessage(err error) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("%T", err)
		}
	}()
	return err.Error()
}

// reasonString converts a rejection reason to text. Values without a
// meaningful string form of their own are rendered as JSON instead of Go's
// default struct formatting.
func reasonString(reason any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = safejson.Stringify(reason)
		}
	}()

	switch r := reason.(type) {
	case nil:
		return "null"
	case error:
		return r.Error()
	case fmt.Stringer:
		return r.String()
	}

	switch reflect.ValueOf(reason).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(reason)
	}

	return safejson.Stringify(reason)
}

// stateSnapshot returns the state as raw JSON when it serializes cleanly
// within budget, and as bounded text otherwise.
func stateSnapshot(state any) any {
	if state == nil {
		return nil
	}
	if b, err := marshalState(state); err == nil && len(b) <= maxStateBytes {
		return json.RawMessage(b)
	}
	return safejson.StringifyWithLimits(state, safejson.Limits{MaxBytes: maxStateBytes})
}

func marshalState(state any) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("marshal state: %v", r)
		}
	}()
	return json.Marshal(state)
}
