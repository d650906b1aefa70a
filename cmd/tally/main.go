// Command tally runs the interactive calculator on the terminal.
//
// Logging is configured from the environment (TALLY_LOG_LEVEL,
// TALLY_LOG_FORMAT) and written to stderr, so it never interleaves
// with the interactive prompts on stdout. A .env file in the working
// directory is loaded automatically.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/tally/observability/slogobs"
	"github.com/leofalp/tally/repl"
)

func main() {
	r := repl.New(os.Stdin, os.Stdout,
		repl.WithObservability(slogobs.New()),
	)

	if err := r.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
