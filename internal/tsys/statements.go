package tsys

import (
	"github.com/tudo-aqua/whilestar/internal/ir"
)

// encodeAssign emits `loc=k ∧ loc'=k+1 ∧ M' = store(M, compile(addr), compile(expr))`.
func (e *encoder) encodeAssign(s ir.Assign, entry int) (int, error) {
	addr, err := compileAddr(e.scope, s.Lhs)
	if err != nil {
		return 0, err
	}
	val, err := compileExpr(e.scope, s.Rhs)
	if err != nil {
		return 0, err
	}
	next := e.nextLoc()
	e.appendTransition(and(
		at(entry), atP(next),
		ir.ArrEq{Left: arrP(), Right: ir.ArrayWrite{Array: arr(), Index: addr, Elem: val}},
	))
	return next, nil
}

// encodeSwap performs two nested stores, per spec.md §4.5.
func (e *encoder) encodeSwap(s ir.Swap, entry int) (int, error) {
	addrA, err := compileAddr(e.scope, s.A)
	if err != nil {
		return 0, err
	}
	addrB, err := compileAddr(e.scope, s.B)
	if err != nil {
		return 0, err
	}
	valA := ir.ArrayRead{Array: arr(), Index: addrA}
	valB := ir.ArrayRead{Array: arr(), Index: addrB}
	swapped := ir.ArrayWrite{
		Array: ir.ArrayWrite{Array: arr(), Index: addrA, Elem: valB},
		Index: addrB,
		Elem:  valA,
	}
	next := e.nextLoc()
	e.appendTransition(and(at(entry), atP(next), ir.ArrEq{Left: arrP(), Right: swapped}))
	return next, nil
}

// encodeExtern introduces a fresh bound variable `ext_k` constrained by
// `lower ≤ ext_k ≤ upper`, the same inclusive range the executor draws
// from (see DESIGN.md).
func (e *encoder) encodeExtern(s ir.Extern, entry int) (int, error) {
	addr, err := compileAddr(e.scope, s.Addr)
	if err != nil {
		return 0, err
	}
	lower, err := compileExpr(e.scope, s.Lower)
	if err != nil {
		return 0, err
	}
	upper, err := compileExpr(e.scope, s.Upper)
	if err != nil {
		return 0, err
	}
	ext := ir.BoundVar{Name: e.freshExtern()}
	next := e.nextLoc()
	body := and(
		at(entry), atP(next),
		ir.Cmp{Op: ir.OpLte, Left: lower, Right: ext},
		ir.Cmp{Op: ir.OpLte, Left: ext, Right: upper},
		ir.ArrEq{Left: arrP(), Right: ir.ArrayWrite{Array: arr(), Index: addr, Elem: ext}},
	)
	e.appendTransition(ir.Forall{Bound: ext, Body: body})
	return next, nil
}

// encodeAssert emits a cond-true transition to entry+1 and a cond-false
// transition to the error location (spec.md §4.5).
func (e *encoder) encodeAssert(s ir.Assert, entry int) (int, error) {
	cond, err := compileBool(e.scope, s.Cond)
	if err != nil {
		return 0, err
	}
	next := e.nextLoc()
	e.appendTransition(and(at(entry), cond, atP(next), memUnchanged()))
	e.appendTransition(and(at(entry), ir.Not{Arg: cond}, atP(ErrorLocation), memUnchanged()))
	return next, nil
}

// encodePrint, when Options.EncodePrint is set (as DefaultOptions does),
// emits a memory-unchanged self-advancing transition, since print cannot
// falsify safety (spec.md §4.5/§9); when it is unset, no transition leaves
// the print's location.
func (e *encoder) encodePrint(s ir.Print, entry int) (int, error) {
	next := e.nextLoc()
	if e.opts.EncodePrint {
		e.appendTransition(and(at(entry), atP(next), memUnchanged()))
	}
	return next, nil
}

// encodeIf: cond-true to then-entry, then-block's transitions, cond-false
// to else-entry, else-block's transitions; the then-block's last location
// is renamed to the else-block's last location to unify the join point
// (spec.md §4.5).
func (e *encoder) encodeIf(s ir.If, entry int) (int, error) {
	cond, err := compileBool(e.scope, s.Cond)
	if err != nil {
		return 0, err
	}
	thenEntry := e.nextLoc()
	e.appendTransition(and(at(entry), cond, atP(thenEntry), memUnchanged()))
	thenExit, err := e.encodeSequence(s.Then, thenEntry)
	if err != nil {
		return 0, err
	}

	elseEntry := e.nextLoc()
	e.appendTransition(and(at(entry), ir.Not{Arg: cond}, atP(elseEntry), memUnchanged()))
	elseExit, err := e.encodeSequence(s.Else, elseEntry)
	if err != nil {
		return 0, err
	}

	e.renameLocation(thenExit, elseExit)
	return elseExit, nil
}

// encodeWhile: cond-true to body entry (optionally conjoined with the
// invariant), the body's transitions with its tail renamed back to the
// loop header, cond-false from the header to the loop's exit label
// (spec.md §4.5).
func (e *encoder) encodeWhile(s ir.While, entry int) (int, error) {
	cond, err := compileBool(e.scope, s.Cond)
	if err != nil {
		return 0, err
	}
	bodyEntry := e.nextLoc()
	headGuard := and(at(entry), cond)
	if e.opts.AssumeInvariantAtLoopHead && s.Invariant != nil {
		inv, err := compileBool(e.scope, s.Invariant)
		if err != nil {
			return 0, err
		}
		headGuard = and(headGuard, inv)
	}
	e.appendTransition(and(headGuard, atP(bodyEntry), memUnchanged()))

	bodyExit, err := e.encodeSequence(s.Body, bodyEntry)
	if err != nil {
		return 0, err
	}
	e.renameLocation(bodyExit, entry)

	exit := e.nextLoc()
	e.appendTransition(and(at(entry), ir.Not{Arg: cond}, atP(exit), memUnchanged()))
	return exit, nil
}

// renameLocation rewrites every occurrence of `loc = from` and `loc' =
// from` across the encoder's accumulated transitions to `to`, unifying two
// locations after the fact (the if-join and while-backedge cases).
func (e *encoder) renameLocation(from, to int) {
	if from == to {
		return
	}
	for i, t := range e.transitions {
		e.transitions[i] = renameLocInBool(t, from, to)
	}
}

// renameLocInBool only ever rewrites Eq atoms of the exact shape the
// encoder's own at()/atP() helpers produce (`loc = k` / `loc' = k`); every
// other literal in the formula (memory values, extern bounds) is left
// untouched, since plain Num literals elsewhere could coincidentally equal
// `from` without denoting a location.
func renameLocInBool(b ir.Bool, from, to int) ir.Bool {
	switch v := b.(type) {
	case ir.TrueLit, ir.FalseLit:
		return v
	case ir.Not:
		return ir.Not{Arg: renameLocInBool(v.Arg, from, to)}
	case ir.BinBool:
		return ir.BinBool{Op: v.Op, Left: renameLocInBool(v.Left, from, to), Right: renameLocInBool(v.Right, from, to)}
	case ir.Eq:
		if bv, ok := v.Left.(ir.BoundVar); ok && (bv.Name == "loc" || bv.Name == "loc'") {
			if n, ok := v.Right.(ir.Num); ok && n.Val != nil && n.Val.IsInt64() && int(n.Val.Int64()) == from {
				return ir.Eq{Left: v.Left, Right: ir.NumOf(int64(to))}
			}
		}
		return v
	case ir.Cmp:
		return v
	case ir.Forall:
		return ir.Forall{Bound: v.Bound, Body: renameLocInBool(v.Body, from, to)}
	case ir.ArrEq:
		return v
	default:
		return v
	}
}
