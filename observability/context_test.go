package observability

import (
	"context"
	"testing"
)

type stubSpan struct{ Span }

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("expected nil span, got %v", span)
	}
	if span := SpanFromContext(nil); span != nil { //nolint:staticcheck // nil context tolerated by design
		t.Errorf("expected nil span for nil context, got %v", span)
	}
}

func TestContextWithSpan_RoundTrip(t *testing.T) {
	span := &stubSpan{}
	ctx := ContextWithSpan(context.Background(), span)

	if got := SpanFromContext(ctx); got != span {
		t.Errorf("expected the attached span back, got %v", got)
	}
}
