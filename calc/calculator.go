package calc

import (
	"errors"
	"fmt"

	"github.com/leofalp/tally/core/operation"
	"github.com/leofalp/tally/observability"
)

// DefaultCapacity is the operation capacity of a Calculator constructed
// without [WithCapacity].
const DefaultCapacity = 16

// Terminator is the reserved token that ends an evaluation session.
const Terminator = "="

var (
	// ErrInvalidConfig is returned by [New] for an empty calculator name or
	// a non-positive capacity.
	ErrInvalidConfig = errors.New("tally: invalid calculator configuration")

	// ErrCapacityExceeded is returned when an operation would not fit within
	// the calculator's capacity. The existing operation set is left unchanged.
	ErrCapacityExceeded = errors.New("tally: operation capacity exceeded")

	// ErrUnknownOperator is returned when an evaluation encounters a symbol
	// outside the calculator's operation set. Evaluation fails rather than
	// folding a silent zero into the result.
	ErrUnknownOperator = errors.New("tally: unknown operator")

	// ErrBadToken is returned when a token expected to be a number cannot
	// be parsed as one.
	ErrBadToken = errors.New("tally: malformed numeric token")

	// ErrUnexpectedEnd is returned when a token stream is exhausted before
	// the terminator.
	ErrUnexpectedEnd = errors.New("tally: token stream ended before terminator")
)

// Calculator is a named, ordered, capacity-bounded set of operations.
// It exclusively owns its operations: construction, [Calculator.AddOperation],
// and [Calculator.Clone] all deep-copy, so no operation instance is ever
// shared between calculators.
//
// Two operations with the same symbol may coexist; lookups scan in
// registration order and the first match wins.
type Calculator struct {
	name     string
	capacity int
	ops      []*operation.Operation

	// counter tracks successful calculations. It is injected so the
	// surrounding application decides its scope; cloned calculators
	// share it.
	counter observability.Counter

	// obs, when set, receives spans and logs around evaluations.
	obs observability.Provider
}

// Option configures a Calculator under construction.
type Option func(*Calculator)

// WithCapacity overrides the default operation capacity.
func WithCapacity(capacity int) Option {
	return func(c *Calculator) {
		c.capacity = capacity
	}
}

// WithCounter injects the successful-calculation counter. Pass the same
// counter to several calculators to count their calculations together.
func WithCounter(counter observability.Counter) Option {
	return func(c *Calculator) {
		c.counter = counter
	}
}

// WithObservability wires a provider for spans, metrics, and structured
// logs around evaluations. When no counter was injected explicitly, the
// success counter is taken from the provider under
// [observability.MetricCalcSuccessCount].
func WithObservability(provider observability.Provider) Option {
	return func(c *Calculator) {
		c.obs = provider
	}
}

// New constructs a Calculator carrying clones of the given operations,
// in order. The name must be non-empty and the capacity positive, or
// [ErrInvalidConfig] is returned; more initial operations than capacity
// is [ErrCapacityExceeded].
func New(name string, ops []*operation.Operation, opts ...Option) (*Calculator, error) {
	c := &Calculator{
		name:     name,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	}
	if c.capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidConfig)
	}
	if len(ops) > c.capacity {
		return nil, fmt.Errorf("%w: %d operations for capacity %d", ErrCapacityExceeded, len(ops), c.capacity)
	}

	c.ops = make([]*operation.Operation, 0, c.capacity)
	for _, op := range ops {
		if op == nil {
			return nil, fmt.Errorf("%w: nil operation", ErrInvalidConfig)
		}
		c.ops = append(c.ops, op.Clone())
	}

	if c.counter == nil {
		if c.obs != nil {
			c.counter = c.obs.Counter(observability.MetricCalcSuccessCount)
		} else {
			c.counter = observability.NewCounter(observability.MetricCalcSuccessCount)
		}
	}

	return c, nil
}

// Name returns the calculator's display name.
func (c *Calculator) Name() string {
	return c.name
}

// Capacity returns the maximum number of operations the calculator can carry.
func (c *Calculator) Capacity() int {
	return c.capacity
}

// Operations reports the carried operations in registration order.
// The returned slice is a fresh copy; mutating it does not affect the
// calculator.
func (c *Calculator) Operations() []operation.Info {
	infos := make([]operation.Info, len(c.ops))
	for i, op := range c.ops {
		infos[i] = op.Info()
	}
	return infos
}

// Lookup returns the first operation registered under symbol, scanning
// in registration order.
func (c *Calculator) Lookup(symbol string) (*operation.Operation, bool) {
	for _, op := range c.ops {
		if op.Symbol() == symbol {
			return op, true
		}
	}
	return nil, false
}

// AddOperation appends a clone of op to the operation set. At capacity
// it returns [ErrCapacityExceeded] and leaves the set unchanged.
func (c *Calculator) AddOperation(op *operation.Operation) error {
	if op == nil {
		return fmt.Errorf("%w: nil operation", ErrInvalidConfig)
	}
	if len(c.ops) == c.capacity {
		return fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, c.capacity)
	}
	c.ops = append(c.ops, op.Clone())
	return nil
}

// Clone returns an independent deep copy of the calculator: its
// operation list is cloned element by element, so mutating one
// calculator's set never affects the other. The success counter and
// observability provider are shared — they belong to the surrounding
// application, not to any single instance.
func (c *Calculator) Clone() *Calculator {
	clone := &Calculator{
		name:     c.name,
		capacity: c.capacity,
		ops:      make([]*operation.Operation, 0, c.capacity),
		counter:  c.counter,
		obs:      c.obs,
	}
	for _, op := range c.ops {
		clone.ops = append(clone.ops, op.Clone())
	}
	return clone
}

// SuccessCount returns the current value of the injected
// successful-calculation counter.
func (c *Calculator) SuccessCount() int64 {
	return c.counter.Value()
}
