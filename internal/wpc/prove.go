package wpc

import (
	"context"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
)

// negateEntailment builds the discharge obligation A ∧ ¬B for e (spec.md
// §4.4): the entailment A ⇒ B is discharged exactly when this is unsat.
func negateEntailment(e Entailment) ir.Bool {
	return ir.BinBool{Op: ir.OpAnd, Left: e.Left, Right: ir.Not{Arg: e.Right}}
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

// Prove discharges every VC in vcs against facade in order, stopping at the
// first one that is not unsat. All discharged yields Proof; a refutable VC
// yields Counterexample; a solver error yields Crash.
func Prove(facade *smt.Facade, vcs []Entailment) result.Result {
	for _, vc := range vcs {
		res := facade.Solve(negateEntailment(vc))
		switch res.Status {
		case smt.Unsat:
			continue
		case smt.Sat:
			return result.Counterexample(formatModel(res.Model))
		default:
			if res.Err != nil {
				return result.Crash(res.Err.Error())
			}
			return result.NoResult("wpc: solver returned unknown discharging " + vc.Explanation)
		}
	}
	return result.Proof()
}

var _ result.Approach = ProofApproach{}

// ProofApproach adapts Prove into the result.Approach benchmark-harness
// contract (SPEC_FULL.md §4.13).
type ProofApproach struct {
	Facade *smt.Facade
	VCs    []Entailment
}

func (a ProofApproach) Name() string { return "wpc-proof" }

func (a ProofApproach) Run(context.Context) result.Result {
	return Prove(a.Facade, a.VCs)
}
