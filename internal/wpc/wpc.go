// Package wpc implements the backward predicate transformer and VC
// generator of spec.md §4.4 (component C6): wpc : Statement × φ → φ, plus
// the depth-first walk that collects proof obligations from an annotated
// program.
package wpc

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/errors"
	"github.com/tudo-aqua/whilestar/internal/ir"
)

// freshCounter hands out names for the placeholder variables wpc(swap, .)
// and wpc(extern, .) introduce. One counter per Transformer run keeps names
// stable and collision-free within a single VC-generation pass.
type freshCounter struct{ n int }

func (f *freshCounter) next(prefix string) string {
	f.n++
	return fmt.Sprintf("%s_%d", prefix, f.n)
}

// Transformer carries the fresh-name counter threaded through one wpc pass.
type Transformer struct {
	fresh freshCounter
}

// NewTransformer returns a Transformer ready to backward-propagate
// postconditions through a program.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Statement backward-propagates φ through s, returning wpc(s, φ). It never
// fails for a syntactically valid statement except when s is an Assign,
// Swap, or Extern whose target is not a plain Variable — the proof system's
// explicit restriction (spec.md §4.4) — or when φ mentions VarAddress, which
// the proof system cannot substitute through.
func (t *Transformer) Statement(s ir.Statement, phi ir.Bool) (ir.Bool, error) {
	if err := rejectVarAddress(phi); err != nil {
		return nil, err
	}
	switch st := s.(type) {
	case ir.Assign:
		v, ok := st.Lhs.(ir.Variable)
		if !ok {
			err := errors.WPCUnsupportedLHS("assignment", st.Pos)
			return nil, err
		}
		return ir.ReplaceBool(phi, v.Name, st.Rhs), nil

	case ir.Swap:
		a, aok := st.A.(ir.Variable)
		b, bok := st.B.(ir.Variable)
		if !aok || !bok {
			return nil, errors.WPCUnsupportedLHS("swap", st.Pos)
		}
		// φ[y/x][x/y] via a fresh placeholder, to avoid the substitution
		// order capturing x's new value when renaming y into x's slot.
		tmp := t.fresh.next("swap_tmp")
		step1 := ir.ReplaceBool(phi, a.Name, ir.BoundVar{Name: tmp})
		step2 := ir.ReplaceBool(step1, b.Name, ir.ValAtAddr{Addr: a})
		step3 := ir.ReplaceBool(step2, tmp, ir.ValAtAddr{Addr: b})
		return step3, nil

	case ir.Extern:
		v, ok := st.Addr.(ir.Variable)
		if !ok {
			return nil, errors.WPCUnsupportedLHS("extern", st.Pos)
		}
		bound := ir.BoundVar{Name: t.fresh.next("wpc_extern")}
		body := ir.ReplaceBool(phi, v.Name, bound)
		guard := ir.BinBool{
			Op: ir.OpOr,
			Left: ir.BinBool{
				Op:    ir.OpOr,
				Left:  ir.Cmp{Op: ir.OpLt, Left: bound, Right: st.Lower},
				Right: ir.Cmp{Op: ir.OpGt, Left: bound, Right: st.Upper},
			},
			Right: body,
		}
		return ir.Forall{Bound: bound, Body: guard}, nil

	case ir.Assert:
		return st.Cond, nil

	case ir.If:
		then, err := t.Sequence(st.Then, phi)
		if err != nil {
			return nil, err
		}
		els, err := t.Sequence(st.Else, phi)
		if err != nil {
			return nil, err
		}
		return ir.BinBool{
			Op:   ir.OpAnd,
			Left: ir.BinBool{Op: ir.OpImply, Left: st.Cond, Right: then},
			Right: ir.BinBool{Op: ir.OpImply, Left: ir.Not{Arg: st.Cond}, Right: els},
		}, nil

	case ir.While:
		if st.Invariant == nil {
			return nil, fmt.Errorf("wpc: while at %s has no invariant", st.Pos)
		}
		return st.Invariant, nil

	case ir.Print:
		return phi, nil

	case ir.Fail:
		return ir.TrueLit{}, nil

	default:
		return nil, fmt.Errorf("wpc: unhandled statement %T", s)
	}
}

// Sequence backward-propagates φ through an entire Sequence, right to left
// (wpc(s1;s2, φ) = wpc(s1, wpc(s2, φ))).
func (t *Transformer) Sequence(seq ir.Sequence, phi ir.Bool) (ir.Bool, error) {
	if seq.IsExhausted() {
		return phi, nil
	}
	rest, err := t.Sequence(seq.Tail(), phi)
	if err != nil {
		return nil, err
	}
	return t.Statement(seq.Head(), rest)
}

// rejectVarAddress reports the proof system's fatal VC-generation error when
// φ mentions VarAddress — wpc cannot substitute through an address-of
// expression (spec.md §4.4).
func rejectVarAddress(phi ir.Bool) error {
	if containsVarAddress(phi) {
		err := errors.WPCVarAddressInPostcondition(phi.NodePos())
		return err
	}
	return nil
}

func containsVarAddress(n ir.Node) bool {
	switch v := n.(type) {
	case ir.VarAddress:
		return true
	case ir.BinArith:
		return containsVarAddress(v.Left) || containsVarAddress(v.Right)
	case ir.UnaryMinus:
		return containsVarAddress(v.Arg)
	case ir.ValAtAddr:
		return containsVarAddress(v.Addr)
	case ir.DeRef:
		return containsVarAddress(v.Ref)
	case ir.ArrayAccess:
		return containsVarAddress(v.Base) || containsVarAddress(v.Index)
	case ir.Not:
		return containsVarAddress(v.Arg)
	case ir.BinBool:
		return containsVarAddress(v.Left) || containsVarAddress(v.Right)
	case ir.Eq:
		return containsVarAddress(v.Left) || containsVarAddress(v.Right)
	case ir.Cmp:
		return containsVarAddress(v.Left) || containsVarAddress(v.Right)
	case ir.Forall:
		return containsVarAddress(v.Body)
	default:
		return false
	}
}
