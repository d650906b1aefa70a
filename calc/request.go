package calc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leofalp/tally/core/overview"
	"github.com/leofalp/tally/core/parse"
	"github.com/leofalp/tally/observability"
)

// Request is the JSON form of one calculation for [Calculator.Call]:
// an initial accumulator value and the ordered operator/operand steps
// to fold into it.
type Request struct {
	Initial float64 `json:"initial"`
	Steps   []Step  `json:"steps"`
}

// Step is one operator application within a [Request].
type Step struct {
	Op      string  `json:"op"`
	Operand float64 `json:"operand"`
}

// Result carries the final accumulator value produced by [Calculator.Call].
type Result struct {
	Result float64 `json:"result"`
}

// Call evaluates a JSON-encoded [Request] and returns a JSON-encoded
// [Result]. It is the programmatic counterpart of [Calculator.Evaluate]
// for embedding programs: the input is parsed leniently (malformed JSON
// is repaired and retried), the steps are folded left-to-right with the
// same operator-lookup and domain semantics, and a completed call
// counts as one successful calculation.
func (c *Calculator) Call(ctx context.Context, inputJSON string) (string, error) {
	var span observability.Span
	if c.obs != nil {
		ctx, span = c.obs.StartSpan(ctx, observability.SpanCall,
			observability.String(observability.AttrCalcName, c.name),
			observability.String(observability.AttrEvalInput, inputJSON),
		)
		defer span.End()
		// Expose the span downstream so nested work can enrich it.
		ctx = observability.ContextWithSpan(ctx, span)
	}

	ov := overview.OverviewFromContext(&ctx)

	req, err := parse.StringAs[Request](inputJSON)
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		if ov != nil {
			ov.AddFailure()
		}
		return "", fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	acc := req.Initial
	for _, step := range req.Steps {
		op, ok := c.Lookup(step.Op)
		if !ok {
			err := fmt.Errorf("%w: %q", ErrUnknownOperator, step.Op)
			if span != nil {
				span.RecordError(err)
			}
			if ov != nil {
				ov.AddFailure()
			}
			return "", err
		}
		acc, err = op.Apply(acc, step.Operand)
		if err != nil {
			if span != nil {
				span.RecordError(err)
			}
			if ov != nil {
				ov.AddFailure()
			}
			return "", err
		}
		if ov != nil {
			ov.RecordOperator(step.Op)
		}
	}

	output, err := json.Marshal(Result{Result: acc})
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return "", err
	}

	c.counter.Add(ctx, 1, observability.String(observability.AttrCalcName, c.name))
	if ov != nil {
		ov.AddSuccess(acc)
	}
	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrEvalSteps, len(req.Steps)),
			observability.Float64(observability.AttrEvalResult, acc),
		)
		span.SetStatus(observability.StatusOK, "")
	}

	return string(output), nil
}
