package ir

import "math/big"

// Equal reports structural equality between two nodes of the same closed
// sum, ignoring source positions. Used by the executor's symbolic path and
// by tests asserting the transition-system encoder is deterministic up to
// alpha-renaming (spec.md §8).
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case Variable:
		bv, ok := b.(Variable)
		return ok && av.Name == bv.Name
	case DeRef:
		bv, ok := b.(DeRef)
		return ok && Equal(av.Ref, bv.Ref)
	case ArrayAccess:
		bv, ok := b.(ArrayAccess)
		return ok && Equal(av.Base, bv.Base) && Equal(av.Index, bv.Index)

	case Num:
		bv, ok := b.(Num)
		return ok && bigEq(av.Val, bv.Val)
	case BinArith:
		bv, ok := b.(BinArith)
		return ok && av.Op == bv.Op && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case UnaryMinus:
		bv, ok := b.(UnaryMinus)
		return ok && Equal(av.Arg, bv.Arg)
	case ValAtAddr:
		bv, ok := b.(ValAtAddr)
		return ok && Equal(av.Addr, bv.Addr)
	case VarAddress:
		bv, ok := b.(VarAddress)
		return ok && av.Var.Name == bv.Var.Name
	case BoundVar:
		bv, ok := b.(BoundVar)
		return ok && av.Name == bv.Name
	case ArrayRead:
		bv, ok := b.(ArrayRead)
		return ok && Equal(av.Array, bv.Array) && Equal(av.Index, bv.Index)

	case TrueLit:
		_, ok := b.(TrueLit)
		return ok
	case FalseLit:
		_, ok := b.(FalseLit)
		return ok
	case Not:
		bv, ok := b.(Not)
		return ok && Equal(av.Arg, bv.Arg)
	case BinBool:
		bv, ok := b.(BinBool)
		return ok && av.Op == bv.Op && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case Eq:
		bv, ok := b.(Eq)
		return ok && av.Nesting == bv.Nesting && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case Cmp:
		bv, ok := b.(Cmp)
		return ok && av.Op == bv.Op && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case Forall:
		bv, ok := b.(Forall)
		// Bound names are assumed fresh per scope; compare after normalizing
		// the bound name so alpha-equivalent quantifiers compare equal.
		return ok && Equal(Replace(av.Body, av.Bound.Name, bv.Bound), bv.Body)

	case AnyArray:
		bv, ok := b.(AnyArray)
		return ok && av.Suffix == bv.Suffix
	case AnyArrayPrimed:
		_, ok := b.(AnyArrayPrimed)
		return ok
	case ArrayWrite:
		bv, ok := b.(ArrayWrite)
		return ok && Equal(av.Array, bv.Array) && Equal(av.Index, bv.Index) && Equal(av.Elem, bv.Elem)
	case ArrEq:
		bv, ok := b.(ArrEq)
		return ok && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)

	default:
		return false
	}
}

func bigEq(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
