// Package potential provides nuclear potential shapes and the effective
// potential coefficient used by the Numerov recursion.
//
// Potential models are pure functions of radius and a small parameter set
// (depth, radius, diffuseness, optional imaginary depth). The Woods-Saxon
// form is wired in by default:
//
//	V(r) = -V0 / (1 + exp((r-R0)/a0))
//
// [Effective] combines a model with the centrifugal barrier and the channel
// energy into the coefficient f(r) of u''(r) = f(r)·u(r).
package potential
