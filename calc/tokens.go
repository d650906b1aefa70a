package calc

import (
	"bufio"
	"io"
)

// TokenSource yields whitespace-delimited tokens for evaluation.
// Implementations return [io.EOF] once the underlying input is
// exhausted.
type TokenSource interface {
	Next() (string, error)
}

// scanSource adapts a bufio.Scanner in word-splitting mode into a
// TokenSource. The evaluator stops consuming at the terminator token,
// so a scanSource can safely share an input stream with other readers
// of the same scanner.
type scanSource struct {
	scanner *bufio.Scanner
}

// NewScanSource returns a TokenSource reading whitespace-separated
// tokens from r.
func NewScanSource(r io.Reader) TokenSource {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &scanSource{scanner: scanner}
}

// NewScannerSource returns a TokenSource over an existing word-mode
// scanner, for callers that interleave token reading with their own
// scanning of the same input.
func NewScannerSource(scanner *bufio.Scanner) TokenSource {
	return &scanSource{scanner: scanner}
}

func (s *scanSource) Next() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// SliceSource is a TokenSource over a fixed token slice, mainly useful
// in tests and for programmatic evaluation.
type SliceSource struct {
	tokens []string
	pos    int
}

// NewSliceSource returns a TokenSource yielding the given tokens in order.
func NewSliceSource(tokens ...string) *SliceSource {
	return &SliceSource{tokens: tokens}
}

func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	token := s.tokens[s.pos]
	s.pos++
	return token, nil
}
