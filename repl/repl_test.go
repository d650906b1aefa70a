package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/tally/observability"
)

func runScript(t *testing.T, input string, opts ...Option) (string, error) {
	t.Helper()
	out := &strings.Builder{}
	r := New(strings.NewReader(input), out, opts...)
	err := r.Run(context.Background())
	return out.String(), err
}

func TestRun_FullSession(t *testing.T) {
	input := strings.Join([]string{
		"mycalc",
		"2",
		"+ *",
		"1",
		"3",
		"3 + 4 * 2 =",
		"4",
	}, "\n") + "\n"

	out, err := runScript(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Enter calculator's name: ",
		"Enter number of operations: ",
		"+ - add", // operator legend
		"+ - Add", // option 1 listing
		"* - Multiply",
		"14", // left-to-right: (3+4)*2
		"Calculations completed: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRun_CountReprompts(t *testing.T) {
	input := strings.Join([]string{
		"mycalc",
		"abc",
		"17",
		"1",
		"+",
		"4",
	}, "\n") + "\n"

	out, err := runScript(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Couldn't convert to number!") {
		t.Errorf("expected non-numeric rejection:\n%s", out)
	}
	if !strings.Contains(out, "Exceeded operator capacity of 16!") {
		t.Errorf("expected capacity rejection:\n%s", out)
	}
	if got := strings.Count(out, "Enter number of operations: "); got != 3 {
		t.Errorf("expected 3 count prompts, got %d:\n%s", got, out)
	}
}

// TestRun_SymbolsShareCountLine verifies tokens typed after the count on
// the same line are consumed as the symbol batch, not discarded.
func TestRun_SymbolsShareCountLine(t *testing.T) {
	input := strings.Join([]string{
		"mycalc",
		"2 + *",
		"1",
		"4",
	}, "\n") + "\n"

	out, err := runScript(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Invalid operator!") {
		t.Errorf("shared-line symbols were rejected:\n%s", out)
	}
	for _, want := range []string{"+ - Add", "* - Multiply"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in listing:\n%s", want, out)
		}
	}
}

func TestRun_SymbolBatchReprompt(t *testing.T) {
	input := strings.Join([]string{
		"mycalc",
		"2",
		"+ %",
		"+ -",
		"1",
		"4",
	}, "\n") + "\n"

	out, err := runScript(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Invalid operator!") {
		t.Errorf("expected batch rejection:\n%s", out)
	}
	// The accepted batch is the second one.
	if !strings.Contains(out, "- - Subtract") {
		t.Errorf("expected listing of the re-entered batch:\n%s", out)
	}
}

func TestRun_InvalidMenuOption(t *testing.T) {
	input := strings.Join([]string{
		"mycalc",
		"1",
		"+",
		"9 trailing garbage",
		"4",
	}, "\n") + "\n"

	out, err := runScript(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Invalid option, try again.") {
		t.Errorf("expected invalid option message:\n%s", out)
	}
	// "trailing garbage" must have been discarded, not treated as menu input.
	if got := strings.Count(out, "Invalid option, try again."); got != 1 {
		t.Errorf("expected exactly one rejection, got %d:\n%s", got, out)
	}
}

func TestRun_EvaluationErrorIsRecoverable(t *testing.T) {
	input := strings.Join([]string{
		"mycalc",
		"1",
		"+",
		"3",
		"3 * 2 =",
		"3",
		"3 + 2 =",
		"4",
	}, "\n") + "\n"

	out, err := runScript(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Invalid calculation:") {
		t.Errorf("expected evaluation failure report:\n%s", out)
	}
	if !strings.Contains(out, "5") {
		t.Errorf("expected the follow-up session to succeed:\n%s", out)
	}
	if !strings.Contains(out, "Calculations completed: 1") {
		t.Errorf("only the successful session should count:\n%s", out)
	}
}

func TestRun_EmptyNameReprompts(t *testing.T) {
	input := strings.Join([]string{
		"",
		"mycalc",
		"0",
		"4",
	}, "\n") + "\n"

	out, err := runScript(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(out, "Enter calculator's name: "); got != 2 {
		t.Errorf("expected 2 name prompts, got %d:\n%s", got, out)
	}
}

func TestRun_InputClosed(t *testing.T) {
	_, err := runScript(t, "mycalc\n1\n+\n")
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}

func TestRun_SharedCounterInjection(t *testing.T) {
	counter := observability.NewCounter("tally.calc.success.count")
	input := strings.Join([]string{
		"mycalc",
		"1",
		"+",
		"3",
		"1 + 1 =",
		"4",
	}, "\n") + "\n"

	_, err := runScript(t, input, WithCounter(counter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter.Value() != 1 {
		t.Errorf("expected injected counter to read 1, got %d", counter.Value())
	}
}
