package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for solver inputs and numerical conditions.
var (
	// ErrInvalidGrid indicates a non-positive step or rmax, or too few points.
	ErrInvalidGrid = errors.New("quantum: invalid radial grid")

	// ErrInvalidChannel indicates a channel with a negative angular momentum.
	ErrInvalidChannel = errors.New("quantum: invalid channel")

	// ErrZeroDiffuseness indicates potential parameters with a0 = 0.
	ErrZeroDiffuseness = errors.New("quantum: zero diffuseness in potential parameters")

	// ErrUnknownPotential indicates a dispatch request for an unregistered shape.
	ErrUnknownPotential = errors.New("quantum: unknown potential type")

	// ErrChannelIndex indicates a channel index outside the channel sequence.
	ErrChannelIndex = errors.New("quantum: channel index out of range")

	// ErrDuplicateCoupling indicates two specs for the same unordered pair.
	ErrDuplicateCoupling = errors.New("quantum: duplicate coupling spec")

	// ErrNonFinite indicates a NaN or Inf detected during strict integration.
	ErrNonFinite = errors.New("quantum: non-finite value in wavefunction")

	// ErrIllConditioned indicates a Numerov denominator near zero.
	ErrIllConditioned = errors.New("quantum: ill-conditioned integration step")
)

// StepError wraps a numerical error with the grid index and radius at which
// it was detected.
type StepError struct {
	Index   int
	R       float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("grid index %d (r=%.4f): %v", e.Index, e.R, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
