package analysis

import (
	"math"

	"github.com/numlab/radwave/internal/numerov"
	"github.com/numlab/radwave/internal/quantum"
)

// Wronskian computes the discrete invariant
//
//	W_n = (h²/12)·(f_n - f_{n+1})·u_n·u_{n+1}
//
// for each interior index 1 ≤ n ≤ len(u)-2. Along a correct Numerov
// trajectory the series stays nearly constant; large variation signals
// numerical corruption or an f-table inconsistent with the wavefunction.
// Interpretation is left to the caller.
func Wronskian(u quantum.Wavefunction, fs []float64, h float64) []float64 {
	if len(u) < 3 {
		return nil
	}
	c := h * h / 12.0

	w := make([]float64, 0, len(u)-2)
	for n := 1; n <= len(u)-2; n++ {
		w = append(w, c*(fs[n]-fs[n+1])*u[n]*u[n+1])
	}
	return w
}

// WronskianCheck solves nothing itself: it rebuilds the f-table for p and
// evaluates the invariant along an existing solution u of that problem.
func WronskianCheck(p numerov.Problem, u quantum.Wavefunction) []float64 {
	return Wronskian(u, numerov.FTable(p), p.Grid.Step)
}

// Variation returns the spread max(w) - min(w) of a Wronskian series,
// the scalar most useful for thresholding.
func Variation(w []float64) float64 {
	if len(w) == 0 {
		return 0
	}
	lo, hi := w[0], w[0]
	for _, v := range w[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}
