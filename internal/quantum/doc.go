// Package quantum provides core types for radial Schrödinger calculations.
//
// The package defines the shared vocabulary used by the integrators:
//
//   - [Wavefunction]: discretized radial wavefunction u(r_n)
//   - [Grid]: uniform radial grid r_n = n·h
//   - [Channel]: one basis state (l, E) of a coupled-channels expansion
//   - [CouplingTable]: symmetric lookup of off-diagonal channel couplings
//
// # Units
//
// Energies are in MeV, lengths in fm. The conversion between the two goes
// through the mass factor 2μ/(ħc)², see [MassFactor].
//
// # Thread Safety
//
// All types are plain values with no internal synchronization. A solve call
// never mutates its inputs, so sharing them across goroutines is safe.
package quantum
