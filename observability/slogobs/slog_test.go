package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/tally/observability"
)

func newTestObserver() (*Observer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	obs := New(
		WithFormat(FormatCompact),
		WithLevel(slog.LevelDebug),
		WithOutput(buf),
	)
	return obs, buf
}

func TestObserver_Logging(t *testing.T) {
	obs, buf := newTestObserver()
	ctx := context.Background()

	obs.Info(ctx, "calculator ready", observability.String("calc.name", "mycalc"))

	out := buf.String()
	if !strings.Contains(out, "calculator ready") {
		t.Errorf("expected message, got %q", out)
	}
	if !strings.Contains(out, "mycalc") {
		t.Errorf("expected attribute value, got %q", out)
	}
}

func TestObserver_SpanLifecycle(t *testing.T) {
	obs, buf := newTestObserver()
	ctx := context.Background()

	_, span := obs.StartSpan(ctx, "calc.evaluate", observability.String("calc.name", "mycalc"))
	span.AddEvent("calc.operation.applied", observability.String("op.symbol", "+"))
	span.SetAttributes(observability.Float64("eval.result", 14))
	span.SetStatus(observability.StatusOK, "")
	span.End()

	out := buf.String()
	for _, want := range []string{"span.start", "calc.operation.applied", "span.end", "duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in span output, got %q", want, out)
		}
	}
}

func TestObserver_SpanRecordError(t *testing.T) {
	obs, buf := newTestObserver()

	_, span := obs.StartSpan(context.Background(), "calc.evaluate")
	span.RecordError(errors.New("division by zero"))
	span.End()

	if !strings.Contains(buf.String(), "division by zero") {
		t.Errorf("expected recorded error in output, got %q", buf.String())
	}
}

func TestObserver_CounterAccumulatesAndReads(t *testing.T) {
	obs, _ := newTestObserver()
	ctx := context.Background()

	counter := obs.Counter("tally.calc.success.count")
	if counter.Value() != 0 {
		t.Errorf("fresh counter should read 0, got %d", counter.Value())
	}

	counter.Add(ctx, 1)
	counter.Add(ctx, 2)

	// Same name returns the same instance.
	again := obs.Counter("tally.calc.success.count")
	if again.Value() != 3 {
		t.Errorf("expected 3, got %d", again.Value())
	}

	other := obs.Counter("other")
	if other.Value() != 0 {
		t.Errorf("distinct name should be a distinct counter, got %d", other.Value())
	}
}

func TestObserver_Histogram(t *testing.T) {
	obs, buf := newTestObserver()

	obs.Histogram("tally.calc.eval.duration").Record(context.Background(), 1.5)

	if !strings.Contains(buf.String(), "tally.calc.eval.duration") {
		t.Errorf("expected histogram record in output, got %q", buf.String())
	}
}

func TestObserver_WithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	obs := New(WithLogger(logger))

	obs.Error(context.Background(), "boom")

	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected output through provided logger, got %q", buf.String())
	}
}
