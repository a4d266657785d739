// Package coupled generalizes the Numerov recursion to coupled-channel
// systems u''_α(r) = Σ_β f_αβ(r)·u_β(r) with a matrix-valued coefficient.
//
// The scheme is semi-implicit: off-diagonal coupling enters only the
// numerator, while the denominator uses the diagonal f_{n+1}[α,α]. This
// avoids a linear solve on every step at some accuracy cost under strong
// coupling.
//
// Coupling matrix elements are supplied through an injected [ElementFunc]
// so that physically derived coupling models can replace the built-in
// deformed form without touching the recursion.
package coupled
