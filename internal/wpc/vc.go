package wpc

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// Entailment is one proof obligation `Left ⇒ Right`, carrying a
// human-readable explanation of where it came from (spec.md §4.4).
type Entailment struct {
	Left        ir.Bool
	Right       ir.Bool
	Explanation string
}

// Program bundles the pieces of an annotated program the VC generator
// needs; internal/program.Context supplies these once parsing/type-checking
// has produced them.
type Program struct {
	Scope *types.Scope
	Pre   ir.Bool
	Body  ir.Sequence
	Post  ir.Bool
}

// GenerateVCs walks an annotated program depth-first in source order and
// emits every proof obligation spec.md §4.4 names: the program entry
// entailment (precondition, optionally augmented), one entry/exit pair per
// loop, and one per assertion. augmentPre pins every scalar integer
// variable to zero in the entry entailment's left-hand side, per the
// explicit design choice spec.md §9 asks implementers to expose as a
// toggle.
func GenerateVCs(p Program, augmentPre bool) ([]Entailment, error) {
	t := NewTransformer()
	var vcs []Entailment

	if err := collectLoopAndAssertVCs(t, p.Body, p.Post, &vcs); err != nil {
		return nil, err
	}

	bodyWpc, err := t.Sequence(p.Body, p.Post)
	if err != nil {
		return nil, err
	}

	pre := p.Pre
	if augmentPre {
		pre = augmentWithZeroedScalars(pre, p.Scope)
	}
	entry := Entailment{
		Left:        pre,
		Right:       bodyWpc,
		Explanation: "program entry: pre ⇒ wpc(program, post)",
	}
	vcs = append([]Entailment{entry}, vcs...)
	return vcs, nil
}

// collectLoopAndAssertVCs recurses through seq, emitting the loop and
// assertion entailments. phiAfter is the postcondition holding immediately
// after seq finishes (the accumulated wpc of everything that follows seq in
// the enclosing program).
func collectLoopAndAssertVCs(t *Transformer, seq ir.Sequence, phiAfter ir.Bool, out *[]Entailment) error {
	if seq.IsExhausted() {
		return nil
	}
	head := seq.Head()
	tailPhi, err := t.Sequence(seq.Tail(), phiAfter)
	if err != nil {
		return err
	}

	switch s := head.(type) {
	case ir.Assert:
		*out = append(*out, Entailment{
			Left:        s.Cond,
			Right:       tailPhi,
			Explanation: fmt.Sprintf("assertion at %s: c ⇒ φpost", s.Pos),
		})

	case ir.If:
		if err := collectLoopAndAssertVCs(t, s.Then, tailPhi, out); err != nil {
			return err
		}
		if err := collectLoopAndAssertVCs(t, s.Else, tailPhi, out); err != nil {
			return err
		}

	case ir.While:
		if s.Invariant == nil {
			return fmt.Errorf("wpc: while at %s has no invariant", s.Pos)
		}
		if err := collectLoopAndAssertVCs(t, s.Body, s.Invariant, out); err != nil {
			return err
		}
		bodyWpc, err := t.Sequence(s.Body, s.Invariant)
		if err != nil {
			return err
		}
		*out = append(*out,
			Entailment{
				Left:        ir.BinBool{Op: ir.OpAnd, Left: s.Invariant, Right: s.Cond},
				Right:       bodyWpc,
				Explanation: fmt.Sprintf("loop entry at %s: I ∧ c ⇒ wpc(body, I)", s.Pos),
			},
			Entailment{
				Left:        ir.BinBool{Op: ir.OpAnd, Left: s.Invariant, Right: ir.Not{Arg: s.Cond}},
				Right:       tailPhi,
				Explanation: fmt.Sprintf("loop exit at %s: I ∧ ¬c ⇒ φpost", s.Pos),
			},
		)
	}

	return collectLoopAndAssertVCs(t, seq.Tail(), phiAfter, out)
}

// augmentWithZeroedScalars conjoins `x = 0` for every declared scalar
// integer variable onto pre, strengthening the program-entry VC.
func augmentWithZeroedScalars(pre ir.Bool, scope *types.Scope) ir.Bool {
	result := pre
	for _, name := range scope.ScalarIntNames() {
		zero := ir.Eq{Left: ir.ValAtAddr{Addr: ir.Variable{Name: name}}, Right: ir.NumOf(0)}
		result = ir.BinBool{Op: ir.OpAnd, Left: result, Right: zero}
	}
	return result
}
