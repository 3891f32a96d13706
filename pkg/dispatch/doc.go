// Package dispatch turns a built record.LogRecord into side effects: console
// output, platform diagnostics and best-effort deliveries to the log and
// metrics sinks.
//
// A Dispatcher is created once per process with the runtime it serves and the
// build mode, both explicit:
//
//	d := dispatch.New(environment.Server, environment.Production,
//	    dispatch.WithStore(dedup.NewRedisStore(rdb)),
//	    dispatch.WithLogger(log),
//	)
//	d.Dispatch(ctx, rec, details, dispatch.Sinks{Log: logURL}, dispatch.DefaultOptions())
//
// # Behavior
//
// Every call first looks up the record's fingerprint in the dedup store. A
// fingerprint already marked within the store's window makes the call a
// complete no-op. Only the client runtime with ShouldRethrow marks it, with an
// atomic Claim; server reports and client reports without rethrow never do,
// so distinct failures that share a message are each printed and counted. A
// store error counts as "not seen".
//
// On the server runtime the record is printed synchronously on the console
// writer: single-line JSON in production (FormatJSON), indented JSON with
// escaped newlines rendered as line breaks otherwise (FormatPretty).
//
// On the client runtime with ShouldRethrow set, the Emitter receives the
// original failure on a later turn via time.AfterFunc, never synchronously.
// When the dedup store failed, the message is printed on the error console
// instead, or on the console together with the raw stack if no error console
// is configured. Without ShouldRethrow the client prints nothing.
//
// Then, on both runtimes, each configured sink gets one POST in its own
// goroutine. Deliveries run on a context detached from the caller's
// cancellation and their errors are only logged at debug level:
//
//	log sink:     {"error": <LogRecord>}                 transport default timeout
//	metrics sink: {"<segment>": {"<ua category>": 1}}    3000 ms timeout
//
// Flush waits for in-flight deliveries and emits. Dispatch never panics.
package dispatch
