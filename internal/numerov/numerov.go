package numerov

import (
	"math"

	"github.com/numlab/radwave/internal/potential"
	"github.com/numlab/radwave/internal/quantum"
)

// denomEps is the strict-mode threshold for the recursion denominator
// 1 - (h²/12)·f. Below it the step amplifies roundoff without bound.
const denomEps = 1e-12

// fTableMinChunk is the smallest per-worker slice worth parallelizing in
// the f-table precompute.
const fTableMinChunk = 512

// Problem is a single-channel solve request. Model defaults to Woods-Saxon
// and Start to [BesselStart] when nil.
type Problem struct {
	Energy     float64
	L          int
	Params     potential.Params
	Model      potential.Model
	MassFactor float64
	Grid       quantum.Grid
	Start      StartStrategy
	Strict     bool
}

// Validate rejects malformed inputs before any integration work starts.
func (p Problem) Validate() error {
	if err := p.Grid.Validate(); err != nil {
		return err
	}
	if err := p.Params.Validate(); err != nil {
		return err
	}
	return quantum.Channel{L: p.L, Energy: p.Energy}.Validate()
}

func (p Problem) model() potential.Model {
	if p.Model != nil {
		return p.Model
	}
	return potential.WoodsSaxon
}

func (p Problem) start() StartStrategy {
	if p.Start != nil {
		return p.Start
	}
	return BesselStart{}
}

// Effective returns the coefficient evaluator for this problem.
func (p Problem) Effective() potential.Effective {
	return potential.Effective{
		Model:      p.model(),
		Params:     p.Params,
		MassFactor: p.MassFactor,
		L:          p.L,
		Energy:     p.Energy,
	}
}

// FTable precomputes f_n = f(n·h) for n = 0..N+1; the extra point past
// rmax serves the f_{n+1} reference of the final step. The entry at n = 0
// is forced to exactly zero: the raw coefficient diverges there, but it
// only ever multiplies u(0) = 0, and the explicit branch keeps Inf·0 out
// of the recursion.
func FTable(p Problem) []float64 {
	eff := p.Effective()
	n := p.Grid.NumPoints()
	fs := make([]float64, n+1)

	quantum.ParallelFor(n, fTableMinChunk, func(start, end int) {
		if start == 0 {
			fs[0] = 0
			start = 1
		}
		for i := start; i < end; i++ {
			fs[i] = eff.F(p.Grid.R(i))
		}
	})
	fs[n] = eff.F(p.Grid.R(n))

	return fs
}

// Solve integrates the problem over its grid and returns u(r_n) for
// n = 0..N, seed values included.
//
// Without Strict, numerical degeneracies propagate as ordinary floating
// point values. With Strict, each step is checked and the first non-finite
// value or near-singular denominator fails with a [quantum.StepError]
// naming the grid index.
func Solve(p Problem) (quantum.Wavefunction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	fs := FTable(p)
	n := p.Grid.NumPoints()
	h := p.Grid.Step
	c := h * h / 12.0

	u := make(quantum.Wavefunction, n)
	u[0], u[1] = p.start().Seed(SeedContext{
		Step:       h,
		Energy:     p.Energy,
		MassFactor: p.MassFactor,
		Depth:      p.Params.Depth,
		L:          p.L,
	})

	for i := 1; i < n-1; i++ {
		den := 1.0 - c*fs[i+1]
		if p.Strict && math.Abs(den) < denomEps {
			return nil, &quantum.StepError{Index: i + 1, R: p.Grid.R(i + 1), Wrapped: quantum.ErrIllConditioned}
		}
		u[i+1] = (2.0*u[i] - u[i-1] + c*(10.0*fs[i]*u[i]+fs[i-1]*u[i-1])) / den
		if p.Strict && (math.IsNaN(u[i+1]) || math.IsInf(u[i+1], 0)) {
			return nil, &quantum.StepError{Index: i + 1, R: p.Grid.R(i + 1), Wrapped: quantum.ErrNonFinite}
		}
	}

	return u, nil
}
