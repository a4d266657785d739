package coupled

import (
	"github.com/numlab/radwave/internal/potential"
	"github.com/numlab/radwave/internal/quantum"
)

// ElementFunc computes the off-diagonal potential matrix element coupling
// channels i and j at radius r. It is only called for pairs that have a
// registered [quantum.CouplingSpec].
type ElementFunc func(r float64, i, j int, spec quantum.CouplingSpec) float64

// ZeroElement ignores all couplings. Useful for isolating channels when
// debugging a coupled setup.
func ZeroElement(r float64, i, j int, spec quantum.CouplingSpec) float64 {
	return 0
}

// DeformedElement is the default coupling model:
//
//	V_ij(r) = strength · V(r) · beta
//
// reusing the diagonal potential shape for every pair. This is a
// simplified stand-in rather than a collective-model transition
// potential; deployments with real structure input should inject their
// own [ElementFunc].
func DeformedElement(model potential.Model, p potential.Params) ElementFunc {
	return func(r float64, i, j int, spec quantum.CouplingSpec) float64 {
		return spec.Strength * model(r, p) * spec.Beta
	}
}
