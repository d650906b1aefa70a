package calc

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/leofalp/tally/core/operation"
	"github.com/leofalp/tally/core/overview"
	"github.com/leofalp/tally/observability"
)

// spanCheckCounter records whether the evaluation span was reachable
// from the context it was invoked with.
type spanCheckCounter struct {
	sawSpan bool
	value   int64
}

func (c *spanCheckCounter) Add(ctx context.Context, value int64, _ ...observability.Attribute) {
	if observability.SpanFromContext(ctx) != nil {
		c.sawSpan = true
	}
	c.value += value
}

func (c *spanCheckCounter) Value() int64 {
	return c.value
}

func basicCalculator(t *testing.T, ops ...*operation.Operation) *Calculator {
	t.Helper()
	return mustNew(t, "mycalc", ops)
}

// TestEvaluate_LeftToRight verifies the strict left-to-right fold:
// (3+4)*2 = 14, never 3+(4*2) = 11.
func TestEvaluate_LeftToRight(t *testing.T) {
	c := basicCalculator(t, operation.Add(), operation.Multiply())

	got, err := c.EvaluateString(context.Background(), "3 + 4 * 2 =")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 14 {
		t.Errorf("expected 14, got %v", got)
	}
}

func TestEvaluate_Table(t *testing.T) {
	c := basicCalculator(t,
		operation.Add(), operation.Subtract(), operation.Multiply(),
		operation.Divide(), operation.Power(), operation.Root(),
	)

	tests := []struct {
		expr     string
		expected float64
	}{
		{"5 =", 5},
		{"2 ** 10 =", 1024},
		{"27 V 3 =", 3},
		{"10 - 4 - 3 =", 3},
		{"100 / 4 / 5 =", 5},
		{"2 + 2 ** 2 =", 16},
		{"-8 V 3 + 2 =", 0},
		{"1.5 * 2 =", 3},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := c.EvaluateString(context.Background(), tc.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestEvaluate_UnknownOperatorFails(t *testing.T) {
	c := basicCalculator(t, operation.Add())

	// The operator is valid globally but absent from this calculator's
	// set: evaluation must fail, not fold a silent zero.
	_, err := c.EvaluateString(context.Background(), "3 * 2 =")
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestEvaluate_DomainErrorPropagates(t *testing.T) {
	c := basicCalculator(t, operation.Divide())

	_, err := c.EvaluateString(context.Background(), "5 / 0 =")
	if !errors.Is(err, operation.ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
}

func TestEvaluate_MalformedTokens(t *testing.T) {
	c := basicCalculator(t, operation.Add())
	ctx := context.Background()

	if _, err := c.EvaluateString(ctx, "three + 4 ="); !errors.Is(err, ErrBadToken) {
		t.Errorf("bad initial token: expected ErrBadToken, got %v", err)
	}
	if _, err := c.EvaluateString(ctx, "3 + four ="); !errors.Is(err, ErrBadToken) {
		t.Errorf("bad operand token: expected ErrBadToken, got %v", err)
	}
}

func TestEvaluate_StreamEndsBeforeTerminator(t *testing.T) {
	c := basicCalculator(t, operation.Add())
	ctx := context.Background()

	for _, expr := range []string{"", "3", "3 +", "3 + 4"} {
		if _, err := c.EvaluateString(ctx, expr); !errors.Is(err, ErrUnexpectedEnd) {
			t.Errorf("%q: expected ErrUnexpectedEnd, got %v", expr, err)
		}
	}
}

func TestEvaluate_SuccessCounter(t *testing.T) {
	c := basicCalculator(t, operation.Add())
	ctx := context.Background()

	if c.SuccessCount() != 0 {
		t.Fatalf("expected initial count 0, got %d", c.SuccessCount())
	}

	for i := 0; i < 3; i++ {
		if _, err := c.EvaluateString(ctx, "1 + 1 ="); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if c.SuccessCount() != 3 {
		t.Errorf("expected 3 after three evaluations, got %d", c.SuccessCount())
	}

	// Failed evaluations do not count.
	if _, err := c.EvaluateString(ctx, "1 * 1 ="); err == nil {
		t.Fatal("expected error")
	}
	if c.SuccessCount() != 3 {
		t.Errorf("failed evaluation changed the count: %d", c.SuccessCount())
	}
}

// TestEvaluate_SpanReachableFromContext verifies the evaluation span is
// stored in the context handed to downstream work.
func TestEvaluate_SpanReachableFromContext(t *testing.T) {
	counter := &spanCheckCounter{}
	c := mustNew(t, "mycalc", []*operation.Operation{operation.Add()},
		WithObservability(noopProvider{}), WithCounter(counter))

	if _, err := c.EvaluateString(context.Background(), "1 + 1 ="); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !counter.sawSpan {
		t.Error("expected the evaluation span to be reachable via SpanFromContext")
	}
}

// TestEvaluate_RecordsOverview verifies evaluation statistics flow into
// a context-carried Overview.
func TestEvaluate_RecordsOverview(t *testing.T) {
	c := basicCalculator(t, operation.Add(), operation.Multiply())

	ov := &overview.Overview{}
	ctx := ov.ToContext(context.Background())

	if _, err := c.EvaluateString(ctx, "3 + 4 * 2 ="); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.EvaluateString(ctx, "3 / 2 ="); err == nil {
		t.Fatal("expected error for an operator outside the set")
	}

	if ov.Successes != 1 || ov.Failures != 1 {
		t.Errorf("expected 1 success and 1 failure, got %d/%d", ov.Successes, ov.Failures)
	}
	if ov.OperatorStats["+"] != 1 || ov.OperatorStats["*"] != 1 {
		t.Errorf("unexpected operator stats: %v", ov.OperatorStats)
	}
	if ov.LastResult == nil || *ov.LastResult != 14 {
		t.Errorf("expected last result 14, got %v", ov.LastResult)
	}
}

// TestEvaluate_ScanSource verifies evaluation over a streaming reader
// stops consuming at the terminator.
func TestEvaluate_ScanSource(t *testing.T) {
	c := basicCalculator(t, operation.Add())

	src := NewScanSource(strings.NewReader("3 + 4 = leftover"))
	got, err := c.Evaluate(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Errorf("expected 7, got %v", got)
	}

	token, err := src.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "leftover" {
		t.Errorf("evaluator consumed past the terminator, next token %q", token)
	}
}

func TestSliceSource_Exhaustion(t *testing.T) {
	src := NewSliceSource("a", "b")
	for _, want := range []string{"a", "b"} {
		got, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
	if _, err := src.Next(); err == nil {
		t.Error("expected EOF after exhaustion")
	}
}
