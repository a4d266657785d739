package coupled

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/numlab/radwave/internal/numerov"
	"github.com/numlab/radwave/internal/potential"
	"github.com/numlab/radwave/internal/quantum"
)

// fMatrixMinChunk is the smallest per-worker slice worth parallelizing in
// the f-matrix precompute.
const fMatrixMinChunk = 128

// System is a coupled-channels solve request. All channels currently share
// one potential shape and parameter set; channel-specific shapes are an
// extension point. Model defaults to Woods-Saxon, Start to
// [numerov.BesselStart], and Element to [DeformedElement] when nil.
type System struct {
	Channels   []quantum.Channel
	Couplings  []quantum.CouplingSpec
	Params     potential.Params
	Model      potential.Model
	MassFactor float64
	Grid       quantum.Grid
	Start      numerov.StartStrategy
	Element    ElementFunc
	Strict     bool
}

// Solution holds one wavefunction per channel, aligned index-for-index
// with the input channel sequence.
type Solution []quantum.Wavefunction

// ExtractChannel returns the wavefunction of channel i.
func ExtractChannel(s Solution, i int) (quantum.Wavefunction, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("%w: %d of %d channels", quantum.ErrChannelIndex, i, len(s))
	}
	return s[i], nil
}

func (s System) model() potential.Model {
	if s.Model != nil {
		return s.Model
	}
	return potential.WoodsSaxon
}

func (s System) start() numerov.StartStrategy {
	if s.Start != nil {
		return s.Start
	}
	return numerov.BesselStart{}
}

func (s System) element() ElementFunc {
	if s.Element != nil {
		return s.Element
	}
	return DeformedElement(s.model(), s.Params)
}

// Validate rejects malformed inputs before integration. The coupling list
// is checked by building the lookup table, so duplicate or out-of-range
// specs surface here.
func (s System) Validate() error {
	if len(s.Channels) == 0 {
		return fmt.Errorf("%w: empty channel sequence", quantum.ErrInvalidChannel)
	}
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if err := s.Params.Validate(); err != nil {
		return err
	}
	for i, ch := range s.Channels {
		if err := ch.Validate(); err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
	}
	_, err := quantum.NewCouplingTable(s.Couplings, len(s.Channels))
	return err
}

// PotentialMatrix builds the n×n channel potential matrix at radius r.
// Diagonal entries hold the shared single-channel potential; off-diagonal
// entries come from the element function for coupled pairs and are zero
// otherwise.
func (s System) PotentialMatrix(r float64, table *quantum.CouplingTable) *mat.Dense {
	n := len(s.Channels)
	model := s.model()
	elem := s.element()

	v := mat.NewDense(n, n, nil)
	diag := model(r, s.Params)
	for i := 0; i < n; i++ {
		v.Set(i, i, diag)
		for j := i + 1; j < n; j++ {
			if spec, ok := table.Lookup(i, j); ok {
				vij := elem(r, i, j, spec)
				v.Set(i, j, vij)
				v.Set(j, i, vij)
			}
		}
	}
	return v
}

// FMatrix builds the coefficient matrix f_αβ(r). Diagonal entries use the
// single-channel effective formula with each channel's own (l, E);
// off-diagonal entries are massFactor·V_ij, with no energy term since
// coupling carries no δ_αβ factor. At r = 0 the raw diagonal diverges, and
// since every channel has u(0) = 0 the whole matrix contributes nothing to
// the first step, so the explicit branch returns the zero matrix.
func (s System) FMatrix(r float64, table *quantum.CouplingTable) *mat.Dense {
	n := len(s.Channels)
	if r == 0 {
		return mat.NewDense(n, n, nil)
	}

	f := s.PotentialMatrix(r, table)
	for i := 0; i < n; i++ {
		eff := potential.Effective{
			Model:      s.model(),
			Params:     s.Params,
			MassFactor: s.MassFactor,
			L:          s.Channels[i].L,
			Energy:     s.Channels[i].Energy,
		}
		f.Set(i, i, eff.F(r))
		for j := 0; j < n; j++ {
			if j != i {
				f.Set(i, j, s.MassFactor*f.At(i, j))
			}
		}
	}
	return f
}

// fTables precomputes the f-matrix at every grid point plus one point past
// rmax. Points are independent, so the pass is parallelized; the recursion
// itself stays sequential in n.
func (s System) fTables(table *quantum.CouplingTable) []*mat.Dense {
	n := s.Grid.NumPoints()
	fs := make([]*mat.Dense, n+1)

	quantum.ParallelFor(n+1, fMatrixMinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			fs[i] = s.FMatrix(s.Grid.R(i), table)
		}
	})

	return fs
}

// Solve integrates all channels simultaneously and returns one
// wavefunction per channel. Each channel is seeded independently from its
// own (l, E).
func (s System) Solve() (Solution, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	table, err := quantum.NewCouplingTable(s.Couplings, len(s.Channels))
	if err != nil {
		return nil, err
	}

	nch := len(s.Channels)
	n := s.Grid.NumPoints()
	h := s.Grid.Step
	c := h * h / 12.0

	fs := s.fTables(table)

	us := make(Solution, nch)
	start := s.start()
	for a, ch := range s.Channels {
		us[a] = make(quantum.Wavefunction, n)
		us[a][0], us[a][1] = start.Seed(numerov.SeedContext{
			Step:       h,
			Energy:     ch.Energy,
			MassFactor: s.MassFactor,
			Depth:      s.Params.Depth,
			L:          ch.L,
		})
	}

	for i := 1; i < n-1; i++ {
		for a := 0; a < nch; a++ {
			den := 1.0 - c*fs[i+1].At(a, a)
			if s.Strict && math.Abs(den) < 1e-12 {
				return nil, &quantum.StepError{Index: i + 1, R: s.Grid.R(i + 1), Wrapped: quantum.ErrIllConditioned}
			}

			sum := 0.0
			for b := 0; b < nch; b++ {
				sum += 10.0*fs[i].At(a, b)*us[b][i] + fs[i-1].At(a, b)*us[b][i-1]
			}

			us[a][i+1] = (2.0*us[a][i] - us[a][i-1] + c*sum) / den
			if s.Strict && (math.IsNaN(us[a][i+1]) || math.IsInf(us[a][i+1], 0)) {
				return nil, &quantum.StepError{Index: i + 1, R: s.Grid.R(i + 1), Wrapped: quantum.ErrNonFinite}
			}
		}
	}

	return us, nil
}
