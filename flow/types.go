package flow

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Sentinel errors returned by the min-cost-flow solver.
var (
	// ErrNodeOutOfRange is returned when an arc or supply names a missing node.
	ErrNodeOutOfRange = errors.New("flow: node index out of range")

	// ErrUnbalanced is returned when supplies do not sum to zero.
	ErrUnbalanced = errors.New("flow: supplies do not balance")

	// ErrInfeasible is returned when supply cannot be routed within capacities.
	ErrInfeasible = errors.New("flow: no feasible flow")

	// ErrIterationLimit is returned when the augmentation budget is exhausted.
	ErrIterationLimit = errors.New("flow: augmentation limit exceeded")

	// ErrBadNodeCount is returned by NewGraph for n <= 0.
	ErrBadNodeCount = errors.New("flow: node count must be positive")
)

// ArcError is returned when an arc has a negative or non-finite capacity or cost.
type ArcError struct {
	From, To  int
	Cap, Cost float64
}

func (e ArcError) Error() string {
	return fmt.Sprintf("flow: invalid arc %d→%d: cap=%g cost=%g", e.From, e.To, e.Cap, e.Cost)
}

// Default tuning values.
const (
	// DefaultEpsilon treats residual capacities ≤ Epsilon as saturated.
	DefaultEpsilon = 1e-9

	// DefaultMaxAugmentations bounds the SSP main loop.
	DefaultMaxAugmentations = 10000
)

// Options configures MinCostFlow.
//   - Epsilon: residual capacities ≤ Epsilon are treated as zero (default 1e-9).
//   - MaxAugmentations: augmentation budget (default 10000); ≤ 0 disables the cap.
//   - Logger: if non-nil, logs each augmentation at debug level.
type Options struct {
	Epsilon          float64
	MaxAugmentations int
	Logger           *log.Logger
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{
		Epsilon:          DefaultEpsilon,
		MaxAugmentations: DefaultMaxAugmentations,
	}
}

// Result reports an optimal flow.
//   - Flow[a] is the flow on arc a (arc IDs from AddArc).
//   - Cost is Σ Flow[a]·cost(a).
//   - Augmentations is the number of shortest-path augmentations performed.
type Result struct {
	Flow          []float64
	Cost          float64
	Augmentations int
}
