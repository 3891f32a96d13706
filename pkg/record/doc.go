// Package record normalizes a failure and its request context into a
// LogRecord: a bounded, serializable document that can be printed on one log
// line or posted to a log collector.
//
// A failure is either a Go error or a Rejection (an asynchronous operation
// that was rejected with an arbitrary reason). Stack text travels with errors
// through the error chain; attach it with WithStack or capture the current
// goroutine with WithCallerStack.
//
// # Usage
//
//	b := record.NewBuilder("SERVER")
//	rec := b.Build(record.Details{
//	    Error:      record.WithCallerStack(err),
//	    UserAgent:  r.UserAgent(),
//	    RequestURL: r.URL.String(),
//	})
//
// Missing context fields are replaced with placeholders (DefaultUserAgent,
// DefaultMessage, DefaultRequestURL). Stack text is cut to MaxStackLength
// characters so that a record always fits a single log line.
package record
