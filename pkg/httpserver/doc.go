// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until the context is cancelled or the process receives
// SIGINT/SIGTERM, then stops accepting connections, waits for in-flight
// requests and finally runs the drain functions registered with WithDrain,
// all within the shutdown timeout. Services that report errors in the
// background register their flush there so nothing queued is lost on exit:
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithDrain(reporter.Flush),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
//
// Health returns a handler for liveness and readiness probes. Without checks
// it always answers 200; with checks it answers 503 as soon as one fails.
// The body is JSON: {"status":"ok","checks":{"redis":"ok"}}.
//
// Start failures wrap ErrStart and shutdown failures wrap ErrShutdown.
package httpserver
