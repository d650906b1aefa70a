package repl

import (
	"bufio"
	"io"
	"strings"
)

// lineTokens reads input line by line and hands out whitespace-
// separated tokens from the current line. Discarding the remainder of
// a line after a rejected token ([lineTokens.flushLine]) mirrors the
// clear-and-ignore recovery of classic console input loops.
//
// It implements [calc.TokenSource], so evaluation sessions can consume
// tokens from the same stream as the menu prompts.
type lineTokens struct {
	scanner *bufio.Scanner
	pending []string
}

func newLineTokens(in io.Reader) *lineTokens {
	return &lineTokens{scanner: bufio.NewScanner(in)}
}

// readLine returns the next raw input line, bypassing any pending
// tokens. It is only used before tokenized reading starts.
func (l *lineTokens) readLine() (string, error) {
	if l.scanner.Scan() {
		return l.scanner.Text(), nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Next returns the next token, reading further lines as needed.
// Blank lines are skipped.
func (l *lineTokens) Next() (string, error) {
	for len(l.pending) == 0 {
		line, err := l.readLine()
		if err != nil {
			return "", err
		}
		l.pending = strings.Fields(line)
	}
	token := l.pending[0]
	l.pending = l.pending[1:]
	return token, nil
}

// flushLine discards any tokens remaining on the current line.
func (l *lineTokens) flushLine() {
	l.pending = nil
}
