package potential

import (
	"fmt"
	"math"

	"github.com/numlab/radwave/internal/quantum"
)

// Params holds the Woods-Saxon parameter set. ImagDepth is only used by the
// complex form and stays zero for purely real potentials.
type Params struct {
	Depth       float64 // V0 in MeV
	Radius      float64 // R0 in fm
	Diffuseness float64 // a0 in fm
	ImagDepth   float64 // W0 in MeV
}

// Validate rejects parameter sets that would divide by zero during
// evaluation. Every potential call divides by the diffuseness, so a0 = 0
// must fail before integration starts.
func (p Params) Validate() error {
	if p.Diffuseness == 0 {
		return fmt.Errorf("%w: a0 = 0 with V0=%g, R0=%g", quantum.ErrZeroDiffuseness, p.Depth, p.Radius)
	}
	return nil
}

// WoodsSaxon evaluates -V0/(1+exp((r-R0)/a0)). At r = R0 this is exactly
// -V0/2.
func WoodsSaxon(r float64, p Params) float64 {
	return -p.Depth / (1.0 + math.Exp((r-p.Radius)/p.Diffuseness))
}

// WoodsSaxonComplex evaluates the optical form -(V0 + iW0)·g(r) with the
// shared Woods-Saxon shape g(r) = 1/(1+exp((r-R0)/a0)).
func WoodsSaxonComplex(r float64, p Params) complex128 {
	shape := 1.0 / (1.0 + math.Exp((r-p.Radius)/p.Diffuseness))
	return complex(-p.Depth*shape, -p.ImagDepth*shape)
}

// WoodsSaxonDeriv is the analytic radial derivative of [WoodsSaxon].
func WoodsSaxonDeriv(r float64, p Params) float64 {
	e := math.Exp((r - p.Radius) / p.Diffuseness)
	d := 1.0 + e
	return p.Depth * e / (p.Diffuseness * d * d)
}
