package tsys

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
)

// NumberedTransitions renames unprimed state variables (loc, M) to suffix
// `from` and primed state variables (loc', M') to suffix `to`, producing
// T_{from,to} (spec.md §4.5 "Temporal renaming"). Renaming is purely
// syntactic and capture-avoiding with respect to Forall binders: a bound
// variable is never "loc"/"loc'"/the bare memory array, so it is always
// left untouched by construction.
func NumberedTransitions(t ir.Bool, from, to int) ir.Bool {
	return renameState(t, fmt.Sprint(from), fmt.Sprint(to))
}

// ZeroedInitial renames every state variable in a pure (unprimed) formula
// to suffix "0", producing I_0.
func ZeroedInitial(phi ir.Bool) ir.Bool {
	return renameState(phi, "0", "0")
}

// NumberedInvariant renames every state variable in a pure (unprimed)
// formula to suffix k, producing Inv_k.
func NumberedInvariant(phi ir.Bool, k int) ir.Bool {
	suffix := fmt.Sprint(k)
	return renameState(phi, suffix, suffix)
}

func renameState(b ir.Bool, unprimedSuffix, primedSuffix string) ir.Bool {
	switch v := b.(type) {
	case ir.TrueLit, ir.FalseLit:
		return v
	case ir.Not:
		return ir.Not{Pos: v.Pos, Arg: renameState(v.Arg, unprimedSuffix, primedSuffix)}
	case ir.BinBool:
		return ir.BinBool{Pos: v.Pos, Op: v.Op,
			Left:  renameState(v.Left, unprimedSuffix, primedSuffix),
			Right: renameState(v.Right, unprimedSuffix, primedSuffix)}
	case ir.Eq:
		return ir.Eq{Pos: v.Pos, Nesting: v.Nesting,
			Left:  renameArith(v.Left, unprimedSuffix, primedSuffix),
			Right: renameArith(v.Right, unprimedSuffix, primedSuffix)}
	case ir.Cmp:
		return ir.Cmp{Pos: v.Pos, Op: v.Op,
			Left:  renameArith(v.Left, unprimedSuffix, primedSuffix),
			Right: renameArith(v.Right, unprimedSuffix, primedSuffix)}
	case ir.Forall:
		return ir.Forall{Pos: v.Pos, Bound: v.Bound, Body: renameState(v.Body, unprimedSuffix, primedSuffix)}
	case ir.ArrEq:
		return ir.ArrEq{Pos: v.Pos,
			Left:  renameArr(v.Left, unprimedSuffix, primedSuffix),
			Right: renameArr(v.Right, unprimedSuffix, primedSuffix)}
	default:
		return v
	}
}

func renameArith(a ir.Arith, unprimedSuffix, primedSuffix string) ir.Arith {
	switch v := a.(type) {
	case ir.Num:
		return v
	case ir.BoundVar:
		switch v.Name {
		case "loc":
			return ir.BoundVar{Pos: v.Pos, Name: "loc_" + unprimedSuffix}
		case "loc'":
			return ir.BoundVar{Pos: v.Pos, Name: "loc_" + primedSuffix}
		default:
			return v
		}
	case ir.BinArith:
		return ir.BinArith{Pos: v.Pos, Op: v.Op,
			Left:  renameArith(v.Left, unprimedSuffix, primedSuffix),
			Right: renameArith(v.Right, unprimedSuffix, primedSuffix)}
	case ir.UnaryMinus:
		return ir.UnaryMinus{Pos: v.Pos, Arg: renameArith(v.Arg, unprimedSuffix, primedSuffix)}
	case ir.ArrayRead:
		return ir.ArrayRead{Pos: v.Pos,
			Array: renameArr(v.Array, unprimedSuffix, primedSuffix),
			Index: renameArith(v.Index, unprimedSuffix, primedSuffix)}
	default:
		return v
	}
}

func renameArr(r ir.Arr, unprimedSuffix, primedSuffix string) ir.Arr {
	switch v := r.(type) {
	case ir.AnyArray:
		if v.Suffix != "" {
			return v
		}
		return ir.AnyArray{Pos: v.Pos, Suffix: unprimedSuffix}
	case ir.AnyArrayPrimed:
		return ir.AnyArray{Pos: v.Pos, Suffix: primedSuffix}
	case ir.ArrayWrite:
		return ir.ArrayWrite{Pos: v.Pos,
			Array: renameArr(v.Array, unprimedSuffix, primedSuffix),
			Index: renameArith(v.Index, unprimedSuffix, primedSuffix),
			Elem:  renameArith(v.Elem, unprimedSuffix, primedSuffix)}
	default:
		return r
	}
}
