// Package repl implements the interactive command-line protocol of the
// calculator: startup prompts for the calculator's name, operation
// count, and operator symbols, followed by a numbered menu loop for
// listing operations, printing input help, running evaluation sessions,
// and exiting.
//
// The REPL reads from and writes to injected streams, so the whole
// protocol is scriptable in tests. Input recovery follows the classic
// console convention: a rejected token discards the rest of its input
// line before re-prompting.
package repl
