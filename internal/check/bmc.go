// Package check implements the three SMT-backed safety checkers of
// spec.md §4.6 (component C8): Bounded Model Checking, k-Induction, and
// k-Induction combined with BMC, each operating over a numbered unrolling
// of a tsys.System through an smt.Facade.
package check

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
)

// unrolledPath builds I_0 ∧ T_{0,1} ∧ T_{1,2} ∧ ... ∧ T_{k-1,k}, the unrolled
// reachability formula for a trace of length k (spec.md §4.6's Φ).
func unrolledPath(sys tsys.System, k int) ir.Bool {
	phi := tsys.ZeroedInitial(sys.Initial)
	for i := 1; i <= k; i++ {
		phi = and2(phi, tsys.NumberedTransitions(sys.Transitions, i-1, i))
	}
	return phi
}

// conjoinedInvariants builds Inv_0 ∧ Inv_1 ∧ ... ∧ Inv_k (spec.md §4.6's Ψ).
func conjoinedInvariants(sys tsys.System, k int) ir.Bool {
	psi := ir.Bool(ir.TrueLit{})
	for i := 0; i <= k; i++ {
		numbered := tsys.NumberedInvariant(sys.Invariant, i)
		if _, ok := psi.(ir.TrueLit); ok {
			psi = numbered
			continue
		}
		psi = and2(psi, numbered)
	}
	return psi
}

func and2(a, b ir.Bool) ir.Bool {
	if _, ok := a.(ir.TrueLit); ok {
		return b
	}
	if _, ok := b.(ir.TrueLit); ok {
		return a
	}
	return ir.BinBool{Op: ir.OpAnd, Left: a, Right: b}
}

// BMC runs Bounded Model Checking up to maxBound (spec.md §4.6): for each
// k = 0..maxBound it queries Φ ∧ ¬Ψ; sat yields a Counterexample, unsat
// continues to the next bound, and a solver error yields Crash. Exhausting
// every bound without finding a violation yields NoResult — safety is only
// established within the bound.
func BMC(facade *smt.Facade, sys tsys.System, maxBound int) result.Result {
	facade.Reset()
	for k := 0; k <= maxBound; k++ {
		phi := unrolledPath(sys, k)
		psi := conjoinedInvariants(sys, k)
		query := and2(phi, ir.Not{Arg: psi})
		res := facade.Solve(query)
		switch res.Status {
		case smt.Sat:
			return result.Counterexample(formatModel(res.Model))
		case smt.Unsat:
			continue
		default:
			if res.Err != nil {
				return result.Crash(fmt.Sprintf("bmc: solver error at bound %d: %v", k, res.Err))
			}
			return result.NoResult(fmt.Sprintf("bmc: solver returned unknown at bound %d", k))
		}
	}
	return result.NoResult(fmt.Sprintf("bmc: no violation found within bound %d", maxBound))
}

func formatModel(model map[string]string) string {
	out := ""
	for name, val := range model {
		if name == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += name + "=" + val
	}
	return out
}
