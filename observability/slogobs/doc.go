// Package slogobs implements [observability.Provider] on top of the
// standard library's log/slog, with a custom handler that supports
// compact, pretty, and JSON output formats. Format and level default
// from the TALLY_LOG_FORMAT and TALLY_LOG_LEVEL environment variables
// (falling back to LOG_FORMAT and LOG_LEVEL) and can be overridden
// with functional options.
package slogobs
