// Package observability defines the tracing, metrics, and logging
// abstractions used throughout tally. Calculators and the interactive
// REPL emit spans around evaluation sessions, count successful
// calculations through [Counter], and log through the [Logger]
// interface; none of them depend on a concrete backend.
//
// The slogobs subpackage provides a standard-library slog
// implementation of [Provider]. [NewCounter] returns a plain in-memory
// counter for callers that need calculation counting without a full
// provider.
package observability
