package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/leofalp/tally/calc"
	"github.com/leofalp/tally/core/operation"
	"github.com/leofalp/tally/core/overview"
	"github.com/leofalp/tally/core/parse"
	"github.com/leofalp/tally/observability"
)

// MaxOperations is the largest operation count a user may request at
// startup; it is also the capacity of the calculator the REPL builds.
const MaxOperations = calc.DefaultCapacity

// ErrInputClosed is returned by [REPL.Run] when the input stream ends
// before the user chooses to exit.
var ErrInputClosed = errors.New("tally: input closed before exit")

// REPL drives one interactive calculator session over a pair of
// injected streams.
type REPL struct {
	in      *lineTokens
	out     io.Writer
	obs     observability.Provider
	counter observability.Counter
}

// Option configures a REPL under construction.
type Option func(*REPL)

// WithObservability wires a provider for logs and spans around the
// session; it is handed down to the calculator the REPL builds.
func WithObservability(provider observability.Provider) Option {
	return func(r *REPL) {
		r.obs = provider
	}
}

// WithCounter injects the successful-calculation counter handed down to
// the calculator the REPL builds.
func WithCounter(counter observability.Counter) Option {
	return func(r *REPL) {
		r.counter = counter
	}
}

// New returns a REPL reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		in:  newLineTokens(in),
		out: out,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the whole interactive protocol: startup prompts, then
// the menu loop until the user exits. It returns nil on a normal exit
// and [ErrInputClosed] if the input stream ends first.
func (r *REPL) Run(ctx context.Context) error {
	ov := overview.OverviewFromContext(&ctx)
	ov.StartExecution()

	calculator, err := r.setup(ctx)
	if err != nil {
		return err
	}

	if r.obs != nil {
		r.obs.Info(ctx, "Calculator ready",
			observability.String(observability.AttrCalcName, calculator.Name()),
			observability.Int(observability.AttrCalcOperations, len(calculator.Operations())),
			observability.Int(observability.AttrCalcCapacity, calculator.Capacity()),
		)
	}

	return r.menuLoop(ctx, calculator)
}

// setup runs the startup prompts and builds the calculator.
func (r *REPL) setup(ctx context.Context) (*calc.Calculator, error) {
	name, err := r.promptName()
	if err != nil {
		return nil, err
	}

	count, err := r.promptCount()
	if err != nil {
		return nil, err
	}

	symbols, err := r.promptSymbols(count)
	if err != nil {
		return nil, err
	}

	ops := make([]*operation.Operation, 0, len(symbols))
	for _, symbol := range symbols {
		op, err := operation.New(symbol)
		if err != nil {
			// Symbols were validated at the prompt; a miss here is a bug.
			return nil, err
		}
		ops = append(ops, op)
	}

	opts := []calc.Option{calc.WithCapacity(MaxOperations)}
	if r.counter != nil {
		opts = append(opts, calc.WithCounter(r.counter))
	}
	if r.obs != nil {
		opts = append(opts, calc.WithObservability(r.obs))
	}
	return calc.New(name, ops, opts...)
}

// promptName reads the calculator's name, re-prompting while the line
// is empty.
func (r *REPL) promptName() (string, error) {
	for {
		fmt.Fprint(r.out, "Enter calculator's name: ")
		line, err := r.in.readLine()
		if err != nil {
			return "", inputErr(err)
		}
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
	}
}

// promptCount reads the operation count, re-prompting on non-numeric
// or out-of-range input and discarding the rest of the offending line.
func (r *REPL) promptCount() (int, error) {
	for {
		fmt.Fprint(r.out, "Enter number of operations: ")
		token, err := r.in.Next()
		if err != nil {
			return 0, inputErr(err)
		}

		count, err := parse.StringAs[int](token)
		switch {
		case err != nil || count < 0:
			fmt.Fprintln(r.out, "Couldn't convert to number!")
		case count > MaxOperations:
			fmt.Fprintf(r.out, "Exceeded operator capacity of %d!\n", MaxOperations)
		default:
			// Tokens after the count stay queued: the symbol batch may
			// share its line.
			return count, nil
		}
		r.in.flushLine() // discard trailing garbage on the rejected line
	}
}

// promptSymbols prints the operator legend and reads count symbols.
// Any invalid symbol rejects the whole batch, discards the rest of the
// line, and re-prompts from the start.
func (r *REPL) promptSymbols(count int) ([]string, error) {
	fmt.Fprintln(r.out, "Enter operations: ")
	for _, symbol := range operation.Symbols() {
		op, err := operation.New(symbol)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(r.out, "%s - %s\n", symbol, strings.ToLower(op.Name()))
	}

	for {
		symbols := make([]string, 0, count)
		valid := true
		for i := 0; i < count; i++ {
			token, err := r.in.Next()
			if err != nil {
				return nil, inputErr(err)
			}
			if !operation.Supported(token) {
				fmt.Fprintln(r.out, "Invalid operator!")
				valid = false
				break
			}
			symbols = append(symbols, token)
		}
		r.in.flushLine()
		if valid {
			return symbols, nil
		}
	}
}

// menuLoop runs the numbered menu until the user exits.
func (r *REPL) menuLoop(ctx context.Context, calculator *calc.Calculator) error {
	for {
		fmt.Fprintln(r.out, "1. List supported operations")
		fmt.Fprintln(r.out, "2. List input format")
		fmt.Fprintln(r.out, "3. Start calculation")
		fmt.Fprintln(r.out, "4. Exit")

		choice, err := r.in.Next()
		if err != nil {
			return inputErr(err)
		}

		switch choice {
		case "1":
			r.listOperations(calculator)
		case "2":
			r.listInputFormat()
		case "3":
			r.runSession(ctx, calculator)
		case "4":
			fmt.Fprintf(r.out, "Calculations completed: %d\n", calculator.SuccessCount())
			if ov := overview.OverviewFromContext(&ctx); ov != nil {
				ov.EndExecution()
				if r.obs != nil {
					summary := ov.Summary()
					r.obs.Info(ctx, "Run finished",
						observability.String(observability.AttrCalcName, calculator.Name()),
						observability.Int(observability.AttrEvalSuccesses, summary.Successes),
						observability.Int(observability.AttrEvalFailures, summary.Failures),
						observability.Int(observability.AttrEvalApplications, summary.OperatorApplications),
						observability.Float64(observability.AttrDuration, summary.ExecutionDurationSeconds),
					)
				}
			}
			return nil
		default:
			fmt.Fprintln(r.out, "Invalid option, try again.")
			r.in.flushLine()
		}
	}
}

// listOperations prints the calculator's operations in registration order.
func (r *REPL) listOperations(calculator *calc.Calculator) {
	for _, info := range calculator.Operations() {
		fmt.Fprintf(r.out, "%s - %s\n", info.Symbol, info.Name)
	}
}

// listInputFormat prints the expression input help.
func (r *REPL) listInputFormat() {
	fmt.Fprintln(r.out, "<num1> <symbol> <num2> <symbol> <num3> ... <numN> =")
	fmt.Fprintln(r.out, "Please make sure to include spaces between each number and operator.")
}

// runSession evaluates one token stream. Errors are reported and the
// rest of the offending line is discarded; the menu continues either way.
func (r *REPL) runSession(ctx context.Context, calculator *calc.Calculator) {
	sessionID := uuid.NewString()
	if r.obs != nil {
		r.obs.Debug(ctx, "Evaluation session started",
			observability.String(observability.AttrEvalSessionID, sessionID),
			observability.String(observability.AttrCalcName, calculator.Name()),
		)
	}

	result, err := calculator.Evaluate(ctx, r.in)
	if err != nil {
		fmt.Fprintf(r.out, "Invalid calculation: %v\n", err)
		r.in.flushLine()
		if r.obs != nil {
			r.obs.Warn(ctx, "Evaluation session failed",
				observability.String(observability.AttrEvalSessionID, sessionID),
				observability.Error(err),
			)
		}
		return
	}

	fmt.Fprintln(r.out, strconv.FormatFloat(result, 'g', -1, 64))
	if r.obs != nil {
		r.obs.Info(ctx, "Evaluation session finished",
			observability.String(observability.AttrEvalSessionID, sessionID),
			observability.Float64(observability.AttrEvalResult, result),
		)
	}
}

// inputErr translates stream exhaustion into ErrInputClosed.
func inputErr(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrInputClosed
	}
	return err
}
