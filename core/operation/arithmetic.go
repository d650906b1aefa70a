package operation

import (
	"fmt"
	"math"
)

// Canonical symbols for the built-in operation variants.
const (
	SymbolAdd      = "+"
	SymbolSubtract = "-"
	SymbolMultiply = "*"
	SymbolDivide   = "/"
	SymbolPower    = "**"
	SymbolRoot     = "V"
)

// Add returns a fresh addition operation ("+").
func Add() *Operation {
	return newOperation("Add", SymbolAdd, func(a, b float64) (float64, error) {
		return a + b, nil
	})
}

// Subtract returns a fresh subtraction operation ("-").
func Subtract() *Operation {
	return newOperation("Subtract", SymbolSubtract, func(a, b float64) (float64, error) {
		return a - b, nil
	})
}

// Multiply returns a fresh multiplication operation ("*").
func Multiply() *Operation {
	return newOperation("Multiply", SymbolMultiply, func(a, b float64) (float64, error) {
		return a * b, nil
	})
}

// Divide returns a fresh division operation ("/"). Division by zero is
// a domain error, never a silent Inf or NaN.
func Divide() *Operation {
	return newOperation("Divide", SymbolDivide, func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, fmt.Errorf("%w: cannot divide %v by zero", ErrDomain, a)
		}
		return a / b, nil
	})
}

// Power returns a fresh exponentiation operation ("**"). Raising zero
// to the zeroth power is a domain error.
func Power() *Operation {
	return newOperation("Power", SymbolPower, func(a, b float64) (float64, error) {
		if a == 0 && b == 0 {
			return 0, fmt.Errorf("%w: cannot raise 0 to the power of 0", ErrDomain)
		}
		return math.Pow(a, b), nil
	})
}

// Root returns a fresh root operation ("V"), computing the b-th root of
// a. For negative radicands only odd integer degrees have a real root;
// that case is computed sign-adjusted, so Root applied to (-8, 3)
// yields -2 rather than the NaN naive float64 exponentiation produces.
// Everything else outside the real-valued domain (negative or zero
// degree edge cases, fractional or even degrees of negatives) is a
// domain error.
func Root() *Operation {
	return newOperation("Root", SymbolRoot, func(a, b float64) (float64, error) {
		switch {
		case b == 0:
			return 0, fmt.Errorf("%w: root degree cannot be zero", ErrDomain)
		case a == 0 && b < 0:
			return 0, fmt.Errorf("%w: cannot take negative root of zero", ErrDomain)
		case a < 0 && b < 0:
			return 0, fmt.Errorf("%w: cannot take negative root of negative number", ErrDomain)
		case a < 0 && b != math.Trunc(b):
			return 0, fmt.Errorf("%w: cannot take fractional root of negative number", ErrDomain)
		case a < 0 && math.Mod(b, 2) == 0:
			return 0, fmt.Errorf("%w: negative number has no real root of even degree", ErrDomain)
		case a < 0:
			// Odd integer degree: real root of the magnitude, sign restored.
			return -math.Pow(-a, 1/b), nil
		default:
			return math.Pow(a, 1/b), nil
		}
	})
}

// factories maps each supported symbol to its variant constructor, in
// the canonical order presented to users.
var factories = []struct {
	symbol string
	build  func() *Operation
}{
	{SymbolAdd, Add},
	{SymbolSubtract, Subtract},
	{SymbolMultiply, Multiply},
	{SymbolDivide, Divide},
	{SymbolPower, Power},
	{SymbolRoot, Root},
}

// New is the symbol factory: it returns a fresh instance of the variant
// registered for symbol, or [ErrUnknownSymbol] for anything outside the
// supported set. Every call produces an independently owned instance.
func New(symbol string) (*Operation, error) {
	for _, f := range factories {
		if f.symbol == symbol {
			return f.build(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
}

// Supported reports whether symbol names a built-in variant.
func Supported(symbol string) bool {
	for _, f := range factories {
		if f.symbol == symbol {
			return true
		}
	}
	return false
}

// Symbols returns the supported symbols in canonical order.
func Symbols() []string {
	symbols := make([]string, len(factories))
	for i, f := range factories {
		symbols[i] = f.symbol
	}
	return symbols
}
