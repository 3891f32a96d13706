// Package errorlog reports application failures to a log collector and a
// metrics collector, printing them along the way.
//
// A Reporter is built once from Config and reused:
//
//	var cfg errorlog.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	reporter := errorlog.New(cfg, errorlog.WithLogger(log))
//	defer reporter.Flush(context.Background())
//
// A failure is either an error or a rejection carrying any reason:
//
//	reporter.Report(ctx, record.Details{
//	    Error:      record.WithCallerStack(err),
//	    UserAgent:  r.UserAgent(),
//	    RequestURL: r.URL.String(),
//	}, cfg.Sinks())
//
//	reporter.Report(ctx, record.Details{Rejection: record.Reject(reason)}, cfg.Sinks(),
//	    dispatch.WithoutRethrow())
//
// Report never blocks on the network, never returns an error and never
// panics. Details without an error or rejection are ignored. The same failure
// (same message and stack) is reported once per dedup window, however many
// paths report it.
//
// # HTTP
//
// Middleware recovers handler panics, reports them with ReportServerError and
// answers 500. It also stores the Reporter in the request context, so
// handlers can reach it with FromContext:
//
//	r := chi.NewRouter()
//	r.Use(reporter.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    if err := do(); err != nil {
//	        errorlog.FromContext(r.Context()).ReportServerError(r.Context(), err, r)
//	    }
//	}
//
// # Output
//
// On the server runtime each report is printed to stdout: one JSON line in
// production, indented JSON otherwise. PrettyPrint renders a stored
// production line for reading; cmd/pperror does the same from the shell.
package errorlog
