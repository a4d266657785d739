package quantum

import (
	"errors"
	"math"
	"testing"
)

func TestWavefunction_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		wf    Wavefunction
		valid bool
	}{
		{"empty", Wavefunction{}, true},
		{"normal", Wavefunction{0.0, 0.1, 0.3}, true},
		{"with NaN", Wavefunction{0.0, math.NaN()}, false},
		{"with +Inf", Wavefunction{0.0, math.Inf(1)}, false},
		{"with -Inf", Wavefunction{0.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wf.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestWavefunction_Clone(t *testing.T) {
	u := Wavefunction{0, 1, 2}
	c := u.Clone()
	c[0] = 99
	if u[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestWavefunction_MaxAbs(t *testing.T) {
	u := Wavefunction{0.1, -3.5, 2.0}
	if got := u.MaxAbs(); got != 3.5 {
		t.Errorf("MaxAbs() = %v, want 3.5", got)
	}
}

func TestGrid_NumPoints(t *testing.T) {
	tests := []struct {
		step, rmax float64
		points     int
	}{
		{0.01, 20.0, 2001},
		{0.1, 10.0, 101},
		{0.5, 2.0, 5},
	}

	for _, tt := range tests {
		g := Grid{Step: tt.step, RMax: tt.rmax}
		if got := g.NumPoints(); got != tt.points {
			t.Errorf("Grid{%g, %g}.NumPoints() = %d, want %d", tt.step, tt.rmax, got, tt.points)
		}
	}
}

func TestGrid_Validate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		ok   bool
	}{
		{"valid", Grid{Step: 0.01, RMax: 20}, true},
		{"zero step", Grid{Step: 0, RMax: 20}, false},
		{"negative step", Grid{Step: -0.1, RMax: 20}, false},
		{"zero rmax", Grid{Step: 0.01, RMax: 0}, false},
		{"rmax below step", Grid{Step: 1.0, RMax: 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidGrid) {
					t.Errorf("Validate() = %v, want ErrInvalidGrid", err)
				}
			}
		})
	}
}

func TestMassFactor(t *testing.T) {
	// 2·469.46 / 197.7² for a nucleon-nucleus reduced mass.
	got := MassFactor(469.46)
	want := 2.0 * 469.46 / (197.7 * 197.7)
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("MassFactor(469.46) = %v, want %v", got, want)
	}
}

func TestCouplingTable_Lookup(t *testing.T) {
	specs := []CouplingSpec{
		{From: 0, To: 1, Strength: 0.5, Beta: 0.2},
		{From: 2, To: 1, Strength: 0.1, Beta: 0.3},
	}
	table, err := NewCouplingTable(specs, 3)
	if err != nil {
		t.Fatalf("NewCouplingTable: %v", err)
	}

	// Both orientations must resolve to the same spec.
	s1, ok := table.Lookup(0, 1)
	if !ok || s1.Strength != 0.5 {
		t.Errorf("Lookup(0,1) = %+v, %v", s1, ok)
	}
	s2, ok := table.Lookup(1, 0)
	if !ok || s2.Strength != 0.5 {
		t.Errorf("Lookup(1,0) = %+v, %v", s2, ok)
	}

	if _, ok := table.Lookup(0, 2); ok {
		t.Error("Lookup(0,2) found a spec for an uncoupled pair")
	}
}

func TestCouplingTable_Rejections(t *testing.T) {
	if _, err := NewCouplingTable([]CouplingSpec{{From: 0, To: 0}}, 2); !errors.Is(err, ErrDuplicateCoupling) {
		t.Errorf("self-coupling: got %v, want ErrDuplicateCoupling", err)
	}

	dup := []CouplingSpec{
		{From: 0, To: 1, Strength: 1},
		{From: 1, To: 0, Strength: 2},
	}
	if _, err := NewCouplingTable(dup, 2); !errors.Is(err, ErrDuplicateCoupling) {
		t.Errorf("duplicate pair: got %v, want ErrDuplicateCoupling", err)
	}

	if _, err := NewCouplingTable([]CouplingSpec{{From: 0, To: 5}}, 2); !errors.Is(err, ErrChannelIndex) {
		t.Errorf("out-of-range index: got %v, want ErrChannelIndex", err)
	}
}

func TestChannel_Validate(t *testing.T) {
	if err := (Channel{L: 0, Energy: 10}).Validate(); err != nil {
		t.Errorf("valid channel rejected: %v", err)
	}
	if err := (Channel{L: -1, Energy: 10}).Validate(); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("negative l: got %v, want ErrInvalidChannel", err)
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Index: 150, R: 1.5, Wrapped: ErrNonFinite}
	if !errors.Is(err, ErrNonFinite) {
		t.Error("StepError does not unwrap to ErrNonFinite")
	}
	expected := "grid index 150 (r=1.5000): quantum: non-finite value in wavefunction"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
