// Package reach defines core types, options, and sentinel errors
// for the cost-bounded reachability search over an elevation grid.
package reach

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of every input-validation failure.
// All sentinels below wrap it, so errors.Is(err, ErrInvalidInput) identifies
// a request that was rejected before any search state was allocated.
var ErrInvalidInput = errors.New("reach: invalid input")

// Sentinel errors for Search.
var (
	// ErrNilGrid indicates that a nil Grid was passed to Search.
	ErrNilGrid = fmt.Errorf("%w: grid is nil", ErrInvalidInput)

	// ErrEmptyGrid indicates a grid with a non-positive width or height.
	ErrEmptyGrid = fmt.Errorf("%w: grid must have positive width and height", ErrInvalidInput)

	// ErrGridTooLarge indicates width*height does not fit in an int cell key.
	ErrGridTooLarge = fmt.Errorf("%w: grid dimensions overflow the cell key", ErrInvalidInput)

	// ErrStartOutOfBounds indicates the start cell lies outside the grid.
	ErrStartOutOfBounds = fmt.Errorf("%w: start cell out of bounds", ErrInvalidInput)

	// ErrBadMaxElevation indicates a NaN, infinite or negative elevation threshold.
	ErrBadMaxElevation = fmt.Errorf("%w: max elevation must be finite and non-negative", ErrInvalidInput)

	// ErrBadCostBudget indicates a NaN, infinite or negative cost budget.
	ErrBadCostBudget = fmt.Errorf("%w: cost budget must be finite and non-negative", ErrInvalidInput)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fmt.Errorf("%w: invalid option supplied", ErrInvalidInput)
)

// ErrAcceptLimit is returned when WithMaxAccepted is set and the search
// accepts more cells than allowed. It is not an input error: the inputs
// were valid, the caller's guard tripped.
var ErrAcceptLimit = errors.New("reach: accepted cell limit exceeded")

// Step costs between neighboring cells, in grid units.
// DiagonalStep is a fixed literal, not math.Sqrt2, so cumulative costs are
// reproducible bit-for-bit across implementations.
const (
	OrthogonalStep = 1.0
	DiagonalStep   = 1.41421356
)

// Status reports how a completed search ended.
type Status int

const (
	// StatusReachable means the start cell was passable and the search ran.
	// The mask may still hold only the origin if nothing else was affordable.
	StatusReachable Status = iota

	// StatusUnreachable means the start cell itself is impassable.
	// The mask is entirely zero.
	StatusUnreachable
)

// String returns a lowercase label for s.
func (s Status) String() string {
	switch s {
	case StatusReachable:
		return "reachable"
	case StatusUnreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Option configures Search behavior via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks to customize a search.
type Options struct {
	// Ctx is checked once per frontier pop. A cancelled context aborts
	// the search and no result is returned.
	Ctx context.Context

	// MarkOrigin sets the start cell's mask bit when the start is passable.
	MarkOrigin bool

	// OnAccept is called once for every node accepted into the reachable
	// set, the start node included, in acceptance order.
	OnAccept func(n Node)

	// MaxAccepted, if > 0, caps the number of accepted nodes.
	// A value of 0 disables the cap.
	MaxAccepted int

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - MarkOrigin = true
//   - a no-op OnAccept hook
//   - no accepted-cell cap.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		MarkOrigin:  true,
		OnAccept:    func(Node) {},
		MaxAccepted: 0,
	}
}

// WithContext sets a context for cancellation. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMarkOrigin controls whether the start cell's mask bit is set.
// With false the start cell stays out of the mask. It is still claimed, so
// no neighbor adds it later.
func WithMarkOrigin(mark bool) Option {
	return func(o *Options) {
		o.MarkOrigin = mark
	}
}

// WithOnAccept registers a callback that runs on every accepted node.
func WithOnAccept(fn func(n Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnAccept = fn
		}
	}
}

// WithMaxAccepted stops the search with ErrAcceptLimit once more than n
// nodes have been accepted.
//
//	n > 0:  cap at n
//	n == 0: no cap
//	n < 0:  ErrOptionViolation
func WithMaxAccepted(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxAccepted cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxAccepted = n
	}
}
