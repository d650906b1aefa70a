package operation

import (
	"errors"
	"fmt"
)

// Validation and domain errors. Callers should match with [errors.Is];
// domain failures carry additional detail wrapped around [ErrDomain].
var (
	// ErrInvalidName is returned when an operation name is set to the empty string.
	ErrInvalidName = errors.New("tally: invalid operation name")

	// ErrInvalidSymbol is returned when an operation symbol is set to the empty string.
	ErrInvalidSymbol = errors.New("tally: invalid operation symbol")

	// ErrUnknownSymbol is returned by [New] for symbols outside the supported set.
	ErrUnknownSymbol = errors.New("tally: unknown operation symbol")

	// ErrDomain is the base error for operand values outside an operation's
	// mathematical domain (division by zero, 0**0, invalid roots).
	ErrDomain = errors.New("tally: operand outside operation domain")
)

// ApplyFunc is the pure evaluation rule of an operation. It must depend
// only on its two operands and report domain violations as errors
// wrapping [ErrDomain].
type ApplyFunc func(a, b float64) (float64, error)

// Operation binds a display name and a symbol token to a pure binary
// arithmetic rule. The zero value is not usable; obtain instances from
// the variant constructors or from [New].
type Operation struct {
	name   string
	symbol string
	apply  ApplyFunc
}

// Info is the read-only report of an operation's identity, as listed by
// a calculator in registration order.
type Info struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// newOperation builds a validated operation. All variant constructors
// funnel through here so the non-empty invariants hold from birth.
func newOperation(name, symbol string, apply ApplyFunc) *Operation {
	op := &Operation{name: name, symbol: symbol, apply: apply}
	// Built-in names and symbols are compile-time constants; a violation
	// here is a programming error, not user input.
	if err := op.validate(); err != nil {
		panic(err)
	}
	return op
}

// validate re-checks the non-emptiness invariants on name and symbol.
func (o *Operation) validate() error {
	if o.name == "" {
		return ErrInvalidName
	}
	if o.symbol == "" {
		return ErrInvalidSymbol
	}
	return nil
}

// Name returns the operation's display name, e.g. "Add".
func (o *Operation) Name() string {
	return o.name
}

// Symbol returns the operation's token, e.g. "+".
func (o *Operation) Symbol() string {
	return o.symbol
}

// Info returns the operation's identity as an [Info] value.
func (o *Operation) Info() Info {
	return Info{Symbol: o.symbol, Name: o.name}
}

// SetName renames the operation. The empty string is rejected with
// [ErrInvalidName] and the operation is left unchanged.
func (o *Operation) SetName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	o.name = name
	return nil
}

// SetSymbol re-keys the operation. The empty string is rejected with
// [ErrInvalidSymbol] and the operation is left unchanged.
func (o *Operation) SetSymbol(symbol string) error {
	if symbol == "" {
		return ErrInvalidSymbol
	}
	o.symbol = symbol
	return nil
}

// Apply evaluates the operation over the two operands. Domain
// violations are returned as errors wrapping [ErrDomain]; Apply never
// silently yields NaN or Inf for them.
func (o *Operation) Apply(a, b float64) (float64, error) {
	return o.apply(a, b)
}

// Clone returns a new, independently owned copy of the operation.
// Mutating the clone's name or symbol never affects the original.
func (o *Operation) Clone() *Operation {
	clone := *o
	return &clone
}

// String implements fmt.Stringer in the "symbol - name" form used by
// calculator listings.
func (o *Operation) String() string {
	return fmt.Sprintf("%s - %s", o.symbol, o.name)
}
