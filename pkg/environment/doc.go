// Package environment describes where the error pipeline runs.
//
// Two independent values select behavior:
//
//   - Environment is the build mode (development, staging, production). It
//     controls how reports are printed: single-line JSON in production,
//     indented JSON otherwise.
//   - Runtime is the execution side (client or server). It controls whether
//     reports are printed at all and whether platform diagnostics are emitted.
//
// Both types implement encoding.TextUnmarshaler, so they can be loaded
// directly by pkg/config:
//
//	type Config struct {
//	    Env     environment.Environment `env:"APP_ENV" envDefault:"development"`
//	    Runtime environment.Runtime     `env:"ERRORLOG_RUNTIME" envDefault:"server"`
//	}
//
// The environment can also be attached to a request context with Middleware
// and read back with FromContext, and LoggerExtractor exposes it to slog
// through pkg/logger context extractors:
//
//	handler := environment.Middleware(environment.Production)(mux)
//
//	if environment.IsProduction(ctx) {
//	    // production-specific behaviour
//	}
package environment
