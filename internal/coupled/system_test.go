package coupled

import (
	"errors"
	"math"
	"testing"

	"github.com/numlab/radwave/internal/numerov"
	"github.com/numlab/radwave/internal/potential"
	"github.com/numlab/radwave/internal/quantum"
)

const testMu = 469.46

func twoChannelSystem(couplings []quantum.CouplingSpec) System {
	return System{
		Channels: []quantum.Channel{
			{L: 0, Energy: 10.0, Label: "ground"},
			{L: 2, Energy: 8.5, Label: "2+"},
		},
		Couplings:  couplings,
		Params:     potential.Params{Depth: 40.0, Radius: 2.0, Diffuseness: 0.6},
		MassFactor: quantum.MassFactor(testMu),
		Grid:       quantum.Grid{Step: 0.01, RMax: 20.0},
	}
}

func TestSolve_ZeroCouplingMatchesSingleChannel(t *testing.T) {
	s := twoChannelSystem(nil)

	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sol) != 2 {
		t.Fatalf("got %d channel outputs, want 2", len(sol))
	}

	// Without coupling every off-diagonal term is exactly zero, so each
	// channel must reproduce the independent single-channel run bit for bit.
	for a, ch := range s.Channels {
		single, err := numerov.Solve(numerov.Problem{
			Energy:     ch.Energy,
			L:          ch.L,
			Params:     s.Params,
			MassFactor: s.MassFactor,
			Grid:       s.Grid,
		})
		if err != nil {
			t.Fatalf("single-channel Solve(%d): %v", a, err)
		}
		if len(sol[a]) != len(single) {
			t.Fatalf("channel %d: length %d vs single %d", a, len(sol[a]), len(single))
		}
		for i := range single {
			if sol[a][i] != single[i] {
				t.Fatalf("channel %d diverges from single-channel run at index %d: %v vs %v",
					a, i, sol[a][i], single[i])
			}
		}
	}
}

func TestSolve_CouplingPerturbsBothChannels(t *testing.T) {
	coupled := twoChannelSystem([]quantum.CouplingSpec{
		{From: 0, To: 1, Strength: 0.5, Beta: 0.3},
	})
	free := twoChannelSystem(nil)

	solC, err := coupled.Solve()
	if err != nil {
		t.Fatalf("Solve(coupled): %v", err)
	}
	solF, err := free.Solve()
	if err != nil {
		t.Fatalf("Solve(free): %v", err)
	}

	for a := range solC {
		if !solC[a].IsValid() {
			t.Fatalf("channel %d produced non-finite values", a)
		}
		maxDiff := 0.0
		for i := range solC[a] {
			if d := math.Abs(solC[a][i] - solF[a][i]); d > maxDiff {
				maxDiff = d
			}
		}
		if maxDiff == 0 {
			t.Errorf("channel %d unaffected by coupling", a)
		}
	}
}

func TestPotentialMatrix(t *testing.T) {
	s := twoChannelSystem([]quantum.CouplingSpec{
		{From: 0, To: 1, Strength: 0.5, Beta: 0.3},
	})
	table, err := quantum.NewCouplingTable(s.Couplings, 2)
	if err != nil {
		t.Fatal(err)
	}

	r := 2.0
	v := s.PotentialMatrix(r, table)

	diag := potential.WoodsSaxon(r, s.Params)
	if v.At(0, 0) != diag || v.At(1, 1) != diag {
		t.Errorf("diagonal = (%v, %v), want %v", v.At(0, 0), v.At(1, 1), diag)
	}

	want := 0.5 * diag * 0.3
	if v.At(0, 1) != want {
		t.Errorf("V[0,1] = %v, want strength·V(r)·beta = %v", v.At(0, 1), want)
	}
	if v.At(0, 1) != v.At(1, 0) {
		t.Error("potential matrix not symmetric")
	}
}

func TestFMatrix(t *testing.T) {
	s := twoChannelSystem([]quantum.CouplingSpec{
		{From: 0, To: 1, Strength: 0.5, Beta: 0.3},
	})
	table, err := quantum.NewCouplingTable(s.Couplings, 2)
	if err != nil {
		t.Fatal(err)
	}

	r := 2.0
	f := s.FMatrix(r, table)

	// Diagonal follows the single-channel effective formula per channel.
	for a, ch := range s.Channels {
		eff := potential.Effective{
			Model:      potential.WoodsSaxon,
			Params:     s.Params,
			MassFactor: s.MassFactor,
			L:          ch.L,
			Energy:     ch.Energy,
		}
		if got := f.At(a, a); got != eff.F(r) {
			t.Errorf("f[%d,%d] = %v, want %v", a, a, got, eff.F(r))
		}
	}

	// Off-diagonal carries no energy term, just massFactor·V_ij.
	wantOff := s.MassFactor * 0.5 * potential.WoodsSaxon(r, s.Params) * 0.3
	if got := f.At(0, 1); math.Abs(got-wantOff) > 1e-15 {
		t.Errorf("f[0,1] = %v, want %v", got, wantOff)
	}
}

func TestFMatrix_OriginIsZero(t *testing.T) {
	s := twoChannelSystem(nil)
	table, _ := quantum.NewCouplingTable(nil, 2)

	f := s.FMatrix(0, table)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if f.At(i, j) != 0 {
				t.Errorf("f[%d,%d] at r=0 = %v, want exactly 0", i, j, f.At(i, j))
			}
		}
	}
}

func TestExtractChannel(t *testing.T) {
	s := twoChannelSystem(nil)
	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	for i := range sol {
		u, err := ExtractChannel(sol, i)
		if err != nil {
			t.Fatalf("ExtractChannel(%d): %v", i, err)
		}
		if &u[0] != &sol[i][0] {
			t.Errorf("ExtractChannel(%d) did not return the i-th entry", i)
		}
	}

	for _, bad := range []int{-1, 2, 100} {
		if _, err := ExtractChannel(sol, bad); !errors.Is(err, quantum.ErrChannelIndex) {
			t.Errorf("ExtractChannel(%d): got %v, want ErrChannelIndex", bad, err)
		}
	}
}

func TestSystem_ValidateRejections(t *testing.T) {
	s := twoChannelSystem(nil)
	s.Channels = nil
	if err := s.Validate(); !errors.Is(err, quantum.ErrInvalidChannel) {
		t.Errorf("empty channels: got %v, want ErrInvalidChannel", err)
	}

	s = twoChannelSystem([]quantum.CouplingSpec{
		{From: 0, To: 1, Strength: 1},
		{From: 1, To: 0, Strength: 2},
	})
	if err := s.Validate(); !errors.Is(err, quantum.ErrDuplicateCoupling) {
		t.Errorf("duplicate coupling: got %v, want ErrDuplicateCoupling", err)
	}

	s = twoChannelSystem([]quantum.CouplingSpec{{From: 0, To: 7}})
	if err := s.Validate(); !errors.Is(err, quantum.ErrChannelIndex) {
		t.Errorf("out-of-range coupling: got %v, want ErrChannelIndex", err)
	}

	s = twoChannelSystem(nil)
	s.Params.Diffuseness = 0
	if err := s.Validate(); !errors.Is(err, quantum.ErrZeroDiffuseness) {
		t.Errorf("zero diffuseness: got %v, want ErrZeroDiffuseness", err)
	}
}

func TestSolve_ZeroElementIsolatesChannels(t *testing.T) {
	s := twoChannelSystem([]quantum.CouplingSpec{
		{From: 0, To: 1, Strength: 0.5, Beta: 0.3},
	})
	s.Element = ZeroElement

	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	uncoupled := twoChannelSystem(nil)
	solU, err := uncoupled.Solve()
	if err != nil {
		t.Fatalf("Solve(uncoupled): %v", err)
	}

	for a := range sol {
		for i := range sol[a] {
			if sol[a][i] != solU[a][i] {
				t.Fatalf("ZeroElement channel %d differs at index %d", a, i)
			}
		}
	}
}

func BenchmarkSolve_TwoChannels(b *testing.B) {
	s := twoChannelSystem([]quantum.CouplingSpec{
		{From: 0, To: 1, Strength: 0.5, Beta: 0.3},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Solve(); err != nil {
			b.Fatal(err)
		}
	}
}
