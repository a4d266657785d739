// Package numerov integrates the single-channel radial Schrödinger
// equation u''(r) = f(r)·u(r) with the Numerov three-term recursion:
//
//	u_{n+1} = [2u_n - u_{n-1} + (h²/12)(10·f_n·u_n + f_{n-1}·u_{n-1})] / (1 - (h²/12)·f_{n+1})
//
// The scheme has O(h⁶) local truncation error. Seeding near the origin is
// delegated to a [StartStrategy]; the default [BesselStart] avoids the
// underflow a direct sin/cos evaluation would hit for small q·h.
package numerov
