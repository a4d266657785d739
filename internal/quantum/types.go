package quantum

import (
	"fmt"
	"math"
)

// HBarC is ħc in MeV·fm.
const HBarC = 197.7

// MassFactor returns 2μ/(ħc)² for a reduced mass mu given in MeV/c².
// It converts potentials and energies (MeV) into the fm⁻² coefficient
// form used by the Numerov recursion.
func MassFactor(mu float64) float64 {
	return 2.0 * mu / (HBarC * HBarC)
}

// Wavefunction is a discretized radial wavefunction, one value per grid
// point, starting at r = 0.
type Wavefunction []float64

func (w Wavefunction) Clone() Wavefunction {
	c := make(Wavefunction, len(w))
	copy(c, w)
	return c
}

// IsValid reports whether the wavefunction contains only finite values.
func (w Wavefunction) IsValid() bool {
	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (w Wavefunction) Norm() float64 {
	sum := 0.0
	for _, v := range w {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// MaxAbs returns the largest absolute value, used for peak normalization.
func (w Wavefunction) MaxAbs() float64 {
	m := 0.0
	for _, v := range w {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Grid is a uniform radial grid r_n = n·Step for n = 0..floor(RMax/Step).
type Grid struct {
	Step float64
	RMax float64
}

// NumPoints returns the number of grid points including r = 0.
func (g Grid) NumPoints() int {
	return int(math.Floor(g.RMax/g.Step)) + 1
}

// R returns the radius of grid index n.
func (g Grid) R(n int) float64 {
	return float64(n) * g.Step
}

func (g Grid) Validate() error {
	if g.Step <= 0 {
		return fmt.Errorf("%w: step %g must be positive", ErrInvalidGrid, g.Step)
	}
	if g.RMax <= 0 {
		return fmt.Errorf("%w: rmax %g must be positive", ErrInvalidGrid, g.RMax)
	}
	if g.RMax <= g.Step {
		return fmt.Errorf("%w: rmax %g must exceed step %g", ErrInvalidGrid, g.RMax, g.Step)
	}
	if g.NumPoints() < 3 {
		return fmt.Errorf("%w: grid needs at least 3 points, got %d", ErrInvalidGrid, g.NumPoints())
	}
	return nil
}

// Channel is one basis state of a coupled-channels expansion. Channels are
// identified by their index in the channel sequence passed to a solve.
type Channel struct {
	L      int
	Energy float64
	Label  string
}

func (c Channel) Validate() error {
	if c.L < 0 {
		return fmt.Errorf("%w: angular momentum %d must be non-negative", ErrInvalidChannel, c.L)
	}
	return nil
}

// CouplingSpec links two channel indices with a coupling strength and a
// deformation parameter beta. The pair is unordered: (From, To) and
// (To, From) describe the same coupling.
type CouplingSpec struct {
	From     int
	To       int
	Strength float64
	Beta     float64
}

type pairKey struct{ lo, hi int }

func canonical(i, j int) pairKey {
	if i > j {
		i, j = j, i
	}
	return pairKey{lo: i, hi: j}
}

// CouplingTable resolves the coupling between two channels by unordered
// pair. It replaces a linear scan over spec lists with a canonical-key map.
type CouplingTable struct {
	specs map[pairKey]CouplingSpec
}

// NewCouplingTable builds a table from a spec list. Self-couplings and
// duplicate unordered pairs are rejected; channel indices must fall in
// [0, numChannels).
func NewCouplingTable(specs []CouplingSpec, numChannels int) (*CouplingTable, error) {
	t := &CouplingTable{specs: make(map[pairKey]CouplingSpec, len(specs))}
	for _, s := range specs {
		if s.From < 0 || s.From >= numChannels || s.To < 0 || s.To >= numChannels {
			return nil, fmt.Errorf("%w: coupling (%d,%d) outside %d channels",
				ErrChannelIndex, s.From, s.To, numChannels)
		}
		if s.From == s.To {
			return nil, fmt.Errorf("%w: self-coupling on channel %d", ErrDuplicateCoupling, s.From)
		}
		key := canonical(s.From, s.To)
		if _, exists := t.specs[key]; exists {
			return nil, fmt.Errorf("%w: pair (%d,%d)", ErrDuplicateCoupling, key.lo, key.hi)
		}
		t.specs[key] = s
	}
	return t, nil
}

// Lookup returns the spec coupling channels i and j, matching either
// orientation.
func (t *CouplingTable) Lookup(i, j int) (CouplingSpec, bool) {
	if t == nil || t.specs == nil {
		return CouplingSpec{}, false
	}
	s, ok := t.specs[canonical(i, j)]
	return s, ok
}

// Len returns the number of distinct coupled pairs.
func (t *CouplingTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.specs)
}
