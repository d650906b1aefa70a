// Package calc provides the Calculator: a named, capacity-bounded,
// ordered collection of arithmetic operations plus the ability to
// evaluate flat token streams against them.
//
// Evaluation is a strict left-to-right fold with no operator precedence
// or grouping: an initial number followed by alternating operator
// symbols and operands, terminated by "=". Operations are looked up by
// symbol in registration order. Use [New] to construct a Calculator and
// [Calculator.Evaluate] or [Calculator.Call] to run calculations; the
// successful-calculation count lives in an injected
// [observability.Counter], which an application shares across
// calculator instances when it wants one process-wide total.
package calc
