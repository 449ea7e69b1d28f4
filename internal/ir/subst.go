package ir

// Replace performs structural substitution: every occurrence of the named
// program variable's value (represented as ValAtAddr(Variable{name})) is
// replaced by `repl`. Bound variables introduced by Forall are never
// substituted (spec.md §4.4) — the caller guarantees bound names are fresh
// with respect to program variables, so a Forall can simply recurse into
// its body.
//
// Replace also accepts a BoundVar as the substitution target (its Name
// matches), which is how wpc(extern ...) and quantifier instantiation work:
// a fresh bound variable stands in for a value during predicate
// construction and is later replaced wholesale.
func Replace(n Node, name string, repl Arith) Node {
	switch v := n.(type) {
	// Address expressions never contain values to substitute except via
	// nested ValAtAddr inside an Index; Variable/DeRef pass through as-is.
	case Variable:
		return v
	case DeRef:
		return DeRef{Pos: v.Pos, Ref: Replace(v.Ref, name, repl).(Address)}
	case ArrayAccess:
		return ArrayAccess{
			Pos:   v.Pos,
			Base:  Replace(v.Base, name, repl).(Address),
			Index: Replace(v.Index, name, repl).(Arith),
		}

	case Num:
		return v
	case BinArith:
		return BinArith{
			Pos:   v.Pos,
			Op:    v.Op,
			Left:  Replace(v.Left, name, repl).(Arith),
			Right: Replace(v.Right, name, repl).(Arith),
		}
	case UnaryMinus:
		return UnaryMinus{Pos: v.Pos, Arg: Replace(v.Arg, name, repl).(Arith)}
	case ValAtAddr:
		if variable, ok := v.Addr.(Variable); ok && variable.Name == name {
			return repl
		}
		return ValAtAddr{Pos: v.Pos, Addr: Replace(v.Addr, name, repl).(Address)}
	case VarAddress:
		return v
	case BoundVar:
		if v.Name == name {
			return repl
		}
		return v
	case ArrayRead:
		return ArrayRead{
			Pos:   v.Pos,
			Array: Replace(v.Array, name, repl).(Arr),
			Index: Replace(v.Index, name, repl).(Arith),
		}

	case TrueLit, FalseLit:
		return v
	case Not:
		return Not{Pos: v.Pos, Arg: Replace(v.Arg, name, repl).(Bool)}
	case BinBool:
		return BinBool{
			Pos:   v.Pos,
			Op:    v.Op,
			Left:  Replace(v.Left, name, repl).(Bool),
			Right: Replace(v.Right, name, repl).(Bool),
		}
	case Eq:
		return Eq{
			Pos:     v.Pos,
			Nesting: v.Nesting,
			Left:    Replace(v.Left, name, repl).(Arith),
			Right:   Replace(v.Right, name, repl).(Arith),
		}
	case Cmp:
		return Cmp{
			Pos:   v.Pos,
			Op:    v.Op,
			Left:  Replace(v.Left, name, repl).(Arith),
			Right: Replace(v.Right, name, repl).(Arith),
		}
	case Forall:
		return Forall{Pos: v.Pos, Bound: v.Bound, Body: Replace(v.Body, name, repl).(Bool)}

	case AnyArray, AnyArrayPrimed:
		return v
	case ArrayWrite:
		return ArrayWrite{
			Pos:   v.Pos,
			Array: Replace(v.Array, name, repl).(Arr),
			Index: Replace(v.Index, name, repl).(Arith),
			Elem:  Replace(v.Elem, name, repl).(Arith),
		}
	case ArrEq:
		return ArrEq{
			Pos:   v.Pos,
			Left:  Replace(v.Left, name, repl).(Arr),
			Right: Replace(v.Right, name, repl).(Arr),
		}

	default:
		return v
	}
}

// ReplaceBool is a typed convenience wrapper over Replace for the common
// case of substituting into a postcondition.
func ReplaceBool(phi Bool, name string, repl Arith) Bool {
	return Replace(phi, name, repl).(Bool)
}
