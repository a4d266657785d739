package numerov

import "math"

// SeedContext carries the physical inputs a start strategy may use to
// produce the first two wavefunction values.
type SeedContext struct {
	Step       float64
	Energy     float64
	MassFactor float64
	Depth      float64
	L          int
}

// StartStrategy supplies u(0) and u(h) for seeding the recursion. The
// choice is an explicit solve-time input, not an internal default.
type StartStrategy interface {
	Seed(sc SeedContext) (u0, u1 float64)
	Name() string
}

// BesselStart seeds with the power series of the l=1 Riccati-Bessel
// function, F₁(z) ≈ z²/3 - z⁴/30 with z = q·h and
// q = sqrt(massFactor·(E+V0)). The series form stays accurate where
// sin(z)/z - cos(z) loses all significant digits to cancellation.
type BesselStart struct{}

func (BesselStart) Name() string { return "bessel-l1" }

func (BesselStart) Seed(sc SeedContext) (float64, float64) {
	q := math.Sqrt(sc.MassFactor * (sc.Energy + sc.Depth))
	z := q * sc.Step
	z2 := z * z
	return 0, z2/3.0 - z2*z2/30.0
}

// PowerLawStart seeds with the naive small-r behavior u(r) = r^(l+1).
// Kept for comparison runs; not robust for large l or very small steps.
type PowerLawStart struct{}

func (PowerLawStart) Name() string { return "power-law" }

func (p PowerLawStart) Seed(sc SeedContext) (float64, float64) {
	return 0, math.Pow(sc.Step, float64(sc.L+1))
}
