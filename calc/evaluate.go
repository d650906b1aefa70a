package calc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/leofalp/tally/core/overview"
	"github.com/leofalp/tally/core/parse"
	"github.com/leofalp/tally/observability"
)

// Evaluate folds a token stream left-to-right: an initial number, then
// alternating operator symbols and operands, until the terminator "=".
// There is no precedence or grouping; with operations {Add, Multiply},
// "3 + 4 * 2 =" evaluates to 14, not 11.
//
// Operators are resolved against the calculator's set in registration
// order; a symbol outside the set fails with [ErrUnknownOperator].
// Domain violations propagate from the operation as errors wrapping
// [operation.ErrDomain]. On success the injected counter is
// incremented and the final accumulator returned.
func (c *Calculator) Evaluate(ctx context.Context, src TokenSource) (float64, error) {
	var span observability.Span
	if c.obs != nil {
		ctx, span = c.obs.StartSpan(ctx, observability.SpanEvaluate,
			observability.String(observability.AttrCalcName, c.name),
		)
		defer span.End()
		// Expose the span downstream so nested work can enrich it.
		ctx = observability.ContextWithSpan(ctx, span)
	}

	ov := overview.OverviewFromContext(&ctx)

	start := time.Now()
	result, steps, err := c.fold(src, ov)
	duration := time.Since(start)

	if err != nil {
		if ov != nil {
			ov.AddFailure()
		}
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		}
		if c.obs != nil {
			c.obs.Warn(ctx, "Evaluation failed",
				observability.String(observability.AttrCalcName, c.name),
				observability.Error(err),
			)
		}
		return 0, err
	}

	c.counter.Add(ctx, 1, observability.String(observability.AttrCalcName, c.name))
	if ov != nil {
		ov.AddSuccess(result)
	}
	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrEvalSteps, steps),
			observability.Float64(observability.AttrEvalResult, result),
		)
		span.SetStatus(observability.StatusOK, "")
	}
	if c.obs != nil {
		c.obs.Histogram(observability.MetricCalcEvalDuration).Record(ctx, duration.Seconds())
		c.obs.Debug(ctx, "Evaluation finished",
			observability.String(observability.AttrCalcName, c.name),
			observability.Int(observability.AttrEvalSteps, steps),
			observability.Float64(observability.AttrEvalResult, result),
			observability.Duration(observability.AttrDuration, duration),
		)
	}

	return result, nil
}

// EvaluateString evaluates a whitespace-separated expression string,
// e.g. "3 + 4 * 2 =". The terminator is required, as in any other
// token stream.
func (c *Calculator) EvaluateString(ctx context.Context, expr string) (float64, error) {
	return c.Evaluate(ctx, NewSliceSource(strings.Fields(expr)...))
}

// fold runs the left-to-right accumulator loop and reports how many
// operations were applied. Each applied operator is recorded in ov
// when one is carried by the evaluation context.
func (c *Calculator) fold(src TokenSource, ov *overview.Overview) (float64, int, error) {
	token, err := next(src)
	if err != nil {
		return 0, 0, err
	}
	acc, err := parse.StringAs[float64](token)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadToken, token)
	}

	steps := 0
	for {
		symbol, err := next(src)
		if err != nil {
			return 0, steps, err
		}
		if symbol == Terminator {
			return acc, steps, nil
		}

		operandToken, err := next(src)
		if err != nil {
			return 0, steps, err
		}
		operand, err := parse.StringAs[float64](operandToken)
		if err != nil {
			return 0, steps, fmt.Errorf("%w: %q", ErrBadToken, operandToken)
		}

		op, ok := c.Lookup(symbol)
		if !ok {
			return 0, steps, fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
		}

		acc, err = op.Apply(acc, operand)
		if err != nil {
			return 0, steps, err
		}
		if ov != nil {
			ov.RecordOperator(symbol)
		}
		steps++
	}
}

// next reads one token, translating stream exhaustion into
// ErrUnexpectedEnd: a well-formed session always reaches the
// terminator before its input runs out.
func next(src TokenSource) (string, error) {
	token, err := src.Next()
	if errors.Is(err, io.EOF) {
		return "", ErrUnexpectedEnd
	}
	if err != nil {
		return "", fmt.Errorf("tally: reading token: %w", err)
	}
	return token, nil
}
