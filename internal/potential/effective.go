package potential

import "math"

// Effective evaluates the coefficient f(r) of the radial equation
// u''(r) = f(r)·u(r) for a single channel:
//
//	f(r) = massFactor·(V(r) + l(l+1)/(massFactor·r²) - E)
//
// The centrifugal term diverges at r = 0. F returns +Inf there as a
// documented sentinel; callers multiply f(0) only by u(0) = 0 and must
// treat that product as exactly zero rather than relying on IEEE Inf·0
// arithmetic.
type Effective struct {
	Model      Model
	Params     Params
	MassFactor float64
	L          int
	Energy     float64
}

// F evaluates the coefficient at radius r.
func (e Effective) F(r float64) float64 {
	if r == 0 {
		return math.Inf(1)
	}
	centrifugal := float64(e.L*(e.L+1)) / (e.MassFactor * r * r)
	return e.MassFactor * (e.Model(r, e.Params) + centrifugal - e.Energy)
}
