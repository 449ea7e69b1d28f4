package check

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
)

// depthPath builds I_0 ∧ T_{0,1} ∧ ... ∧ T_{k-2,k-1}, the "does a path of
// length k-1 exist" antecedent shared by the depth check and the base
// case (spec.md §4.6).
func depthPath(sys tsys.System, k int) ir.Bool {
	phi := tsys.ZeroedInitial(sys.Initial)
	for i := 2; i <= k; i++ {
		phi = and2(phi, tsys.NumberedTransitions(sys.Transitions, i-2, i-1))
	}
	return phi
}

func invariantsUpTo(sys tsys.System, upto int) ir.Bool {
	psi := ir.Bool(ir.TrueLit{})
	for i := 0; i <= upto; i++ {
		numbered := tsys.NumberedInvariant(sys.Invariant, i)
		psi = and2NonTrivial(psi, numbered)
	}
	return psi
}

func and2NonTrivial(a, b ir.Bool) ir.Bool {
	if _, ok := a.(ir.TrueLit); ok {
		return b
	}
	return and2(a, b)
}

func stepChain(sys tsys.System, fromK, toK int) ir.Bool {
	chain := ir.Bool(ir.TrueLit{})
	for i := fromK; i <= toK; i++ {
		chain = and2NonTrivial(chain, tsys.NumberedTransitions(sys.Transitions, i-1, i))
	}
	return chain
}

// KInduction runs plain k-induction up to kBound (spec.md §4.6). For each
// k: a depth check confirms a path of that length exists (otherwise the
// program is shorter than k and unrollings beyond it are vacuous); a base
// case confirms the invariant holds along any such path; the inductive
// step checks whether k consecutive transitions plus the k invariant
// assumptions Inv_0..Inv_{k-1} entail Inv_k. The first k whose inductive step
// discharges yields Proof.
func KInduction(facade *smt.Facade, sys tsys.System, kBound int) result.Result {
	facade.Reset()
	for k := 1; k <= kBound; k++ {
		depth := depthPath(sys, k)
		depthRes := facade.Solve(depth)
		if depthRes.Status == smt.ErrorSt {
			return result.Crash(fmt.Sprintf("k-induction: solver error on depth check at k=%d: %v", k, depthRes.Err))
		}
		if depthRes.Status != smt.Sat {
			return result.NoResult(fmt.Sprintf("k-induction: no path of length %d exists; program shorter than k", k-1))
		}

		baseInvs := invariantsUpTo(sys, k-1)
		baseQuery := and2(depth, ir.Not{Arg: baseInvs})
		baseRes := facade.Solve(baseQuery)
		switch baseRes.Status {
		case smt.Sat:
			return result.Counterexample(formatModel(baseRes.Model))
		case smt.Unsat:
			// base case holds; continue to the inductive step.
		default:
			if baseRes.Err != nil {
				return result.Crash(fmt.Sprintf("k-induction: solver error on base case at k=%d: %v", k, baseRes.Err))
			}
			return result.NoResult(fmt.Sprintf("k-induction: base case unknown at k=%d", k))
		}

		chain := stepChain(sys, 1, k)
		antecedent := and2(chain, invariantsUpTo(sys, k-1))
		invK := tsys.NumberedInvariant(sys.Invariant, k)
		stepQuery := and2(antecedent, ir.Not{Arg: invK})
		stepRes := facade.Solve(stepQuery)
		switch stepRes.Status {
		case smt.Unsat:
			return result.Proof()
		case smt.Sat:
			continue // try a larger k
		default:
			if stepRes.Err != nil {
				return result.Crash(fmt.Sprintf("k-induction: solver error on inductive step at k=%d: %v", k, stepRes.Err))
			}
			return result.NoResult(fmt.Sprintf("k-induction: inductive step unknown at k=%d", k))
		}
	}
	return result.NoResult(fmt.Sprintf("k-induction: no inductive strengthening found within k=%d", kBound))
}

// KInductionBMC interleaves a bounded check, a depth check, and the
// inductive step at each k (spec.md §4.6): the bounded check
// I_0 ∧ T_{0,1} ∧ ... ∧ T_{k-1,k} ∧ ¬Inv_k can refute safety immediately
// with a counterexample; otherwise the inductive step, which drops I_0
// and instead assumes Inv_0..Inv_{k-1} over the same transitions, can
// discharge a proof early.
func KInductionBMC(facade *smt.Facade, sys tsys.System, kBound int) result.Result {
	facade.Reset()
	for k := 1; k <= kBound; k++ {
		accum := and2(tsys.ZeroedInitial(sys.Initial), stepChain(sys, 1, k))
		invK := tsys.NumberedInvariant(sys.Invariant, k)

		boundedRes := facade.Solve(and2(accum, ir.Not{Arg: invK}))
		switch boundedRes.Status {
		case smt.Sat:
			return result.Counterexample(formatModel(boundedRes.Model))
		case smt.Unsat:
			// no violation within this unrolling; proceed to the depth and
			// inductive checks before trying a larger k.
		default:
			if boundedRes.Err != nil {
				return result.Crash(fmt.Sprintf("k-induction+bmc: solver error on bounded check at k=%d: %v", k, boundedRes.Err))
			}
			return result.NoResult(fmt.Sprintf("k-induction+bmc: bounded check unknown at k=%d", k))
		}

		depth := depthPath(sys, k)
		depthRes := facade.Solve(depth)
		if depthRes.Status == smt.ErrorSt {
			return result.Crash(fmt.Sprintf("k-induction+bmc: solver error on depth check at k=%d: %v", k, depthRes.Err))
		}
		if depthRes.Status != smt.Sat {
			continue
		}

		antecedent := and2(stepChain(sys, 1, k), invariantsUpTo(sys, k-1))
		inductiveRes := facade.Solve(and2(antecedent, ir.Not{Arg: invK}))
		switch inductiveRes.Status {
		case smt.Unsat:
			return result.Proof()
		case smt.Sat:
			continue
		default:
			if inductiveRes.Err != nil {
				return result.Crash(fmt.Sprintf("k-induction+bmc: solver error on inductive step at k=%d: %v", k, inductiveRes.Err))
			}
			return result.NoResult(fmt.Sprintf("k-induction+bmc: inductive step unknown at k=%d", k))
		}
	}
	return result.NoResult(fmt.Sprintf("k-induction+bmc: inconclusive within k=%d", kBound))
}
