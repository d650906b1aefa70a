// Package operation defines the arithmetic operations a calculator can
// carry: a named, symbol-keyed binary rule over float64 operands.
//
// The six built-in variants (addition, subtraction, multiplication,
// division, power, root) are created through their constructors
// ([Add], [Subtract], [Multiply], [Divide], [Power], [Root]) or looked
// up by symbol through the [New] factory. Every constructor call
// returns a fresh, independently owned instance; operations carry no
// shared state.
//
// Domain violations (division by zero, 0**0, roots of negative numbers
// outside the real-valued convention) are reported as errors wrapping
// [ErrDomain] rather than silently producing NaN or Inf.
package operation
