// Package analysis provides diagnostics that validate a Numerov
// integration after the fact: a discrete Wronskian-style invariant that
// flags numerical corruption, and a two-step convergence comparison that
// estimates truncation error. Both report numbers and leave pass/fail
// judgement to the caller.
package analysis
