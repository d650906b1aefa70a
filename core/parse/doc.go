// Package parse provides lenient conversion of raw text input into
// typed values. Calculator input arrives either as whitespace-delimited
// tokens typed interactively or as JSON calculation requests from
// embedding programs, and both sources are routinely sloppy: stray
// whitespace around numbers, single-quoted keys or trailing commas in
// JSON. The package converts primitives directly and, for structured
// types, retries failed unmarshals after automatic JSON repair before
// giving up with a clear error.
//
// The main entry point is the generic [StringAs] function, which
// handles both primitive types (string, bool, int, float) and complex
// types (structs, maps, slices) in a single, uniform API.
package parse
