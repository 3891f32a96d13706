// Package logger builds the *slog.Logger used for the pipeline's own
// diagnostics and for services such as the collector.
//
// It is deliberately separate from report output: reports are printed on a
// console writer owned by the dispatcher, while this logger records what the
// pipeline itself did (a sink delivery failed, a dedup store was unreachable,
// a duplicate was dropped).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "collector"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "sink delivery failed",
//	    logger.Sink("log"),
//	    logger.Endpoint(url),
//	    logger.Error(err),
//	)
//
// New wraps the text or JSON handler in a ContextHandler, which runs every
// registered ContextExtractor on each record. Attribute helpers in attr.go keep
// key names consistent; Error and Errors return an empty attribute for nil
// errors so callers need no nil check.
//
// Discard returns a logger that drops everything; it is the default for
// components that accept an optional logger.
package logger
