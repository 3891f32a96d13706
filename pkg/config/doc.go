// Package config loads configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - Load parses the process environment into a struct once per type and
//     caches the result; the default .env file is read on first use.
//   - LoadEnv reads additional .env files before loading.
//   - Parse skips the cache and reads from an explicit map, which keeps tests
//     independent of the process environment.
//   - MustLoad panics on failure, for configuration the process cannot start
//     without.
//
// # Usage
//
//	type Config struct {
//	    Runtime environment.Runtime `env:"ERRORLOG_RUNTIME" envDefault:"server"`
//	    LogURL  string              `env:"ERRORLOG_LOG_URL"`
//	    Window  time.Duration       `env:"ERRORLOG_DEDUP_WINDOW" envDefault:"30s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Fields whose types implement encoding.TextUnmarshaler are validated while
// parsing, so an unknown runtime fails Load instead of surfacing later.
//
// # Errors
//
// Parsing failures wrap ErrParsingConfig; LoadEnv failures wrap
// ErrLoadingEnvFile. Use errors.Is to check.
package config
