package tsys

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// Encode translates an annotated program into its transition system.
// pre/post are the WPC-level (program-variable) pre/postconditions; they
// are rewritten to on-memory form and folded into Initial/Invariant
// respectively, per spec.md §4.5.
func Encode(scope *types.Scope, body ir.Sequence, pre, post ir.Bool, opts Options) (System, error) {
	e := &encoder{opts: opts, scope: scope}

	entry := 0
	exit, err := e.encodeSequence(body, entry)
	if err != nil {
		return System{}, err
	}

	initMem, err := initialMemory(scope)
	if err != nil {
		return System{}, err
	}
	preMem, err := compileBool(scope, pre)
	if err != nil {
		return System{}, err
	}
	initial := and(at(entry), initMem, preMem)

	postMem, err := compileBool(scope, post)
	if err != nil {
		return System{}, err
	}
	invariant := and(
		ir.Cmp{Op: ir.OpGte, Left: loc(), Right: ir.NumOf(ErrorLocation + 1)},
		or(ir.Not{Arg: ir.Eq{Left: loc(), Right: ir.NumOf(int64(exit))}}, postMem),
	)

	return System{
		Vars:           scope.Names(),
		Initial:        initial,
		Transitions:    or(e.transitions...),
		Invariant:      invariant,
		NextLocationID: e.locID + 1,
	}, nil
}

// initialMemory builds `M[a_x] = 0` for every scalar/pointer and
// `M[a_x] = a_x + 1 ∧ M[a_x+1..a_x+n] = 0` for every declared array
// (spec.md §4.5). Variables are compiled straight to their address
// constants a_x, so no separate `x = a_x` fact is emitted.
func initialMemory(scope *types.Scope) (ir.Bool, error) {
	facts := []ir.Bool{}
	for _, name := range scope.Names() {
		entry, _ := scope.Lookup(name)
		if _, isArray := entry.Type.(types.PointerType); isArray && entry.Size > 1 {
			base := entry.Address
			facts = append(facts, ir.Eq{
				Left:  ir.ArrayRead{Array: arr(), Index: ir.NumOf(int64(base))},
				Right: ir.NumOf(int64(base + 1)),
			})
			for cell := 1; cell < entry.Size; cell++ {
				facts = append(facts, ir.Eq{
					Left:  ir.ArrayRead{Array: arr(), Index: ir.NumOf(int64(base + cell))},
					Right: ir.NumOf(0),
				})
			}
			continue
		}
		facts = append(facts, ir.Eq{
			Left:  ir.ArrayRead{Array: arr(), Index: ir.NumOf(int64(entry.Address))},
			Right: ir.NumOf(0),
		})
	}
	return and(facts...), nil
}

// appendTransition accumulates one disjunct of the transition relation as
// the encoder walks the program.
func (e *encoder) appendTransition(t ir.Bool) { e.transitions = append(e.transitions, t) }

// encodeSequence encodes every statement in seq starting at location
// entry, returning the location at which control leaves the sequence.
func (e *encoder) encodeSequence(seq ir.Sequence, entry int) (int, error) {
	cur := entry
	for _, stmt := range seq.Statements() {
		next, err := e.encodeStatement(stmt, cur)
		if err != nil {
			return 0, err
		}
		cur = next
	}
	return cur, nil
}

// encodeStatement emits the transitions for stmt starting at location
// entry and returns the successor location normal control flow reaches.
func (e *encoder) encodeStatement(stmt ir.Statement, entry int) (int, error) {
	switch s := stmt.(type) {
	case ir.Assign:
		return e.encodeAssign(s, entry)
	case ir.Swap:
		return e.encodeSwap(s, entry)
	case ir.Extern:
		return e.encodeExtern(s, entry)
	case ir.Assert:
		return e.encodeAssert(s, entry)
	case ir.Fail:
		e.appendTransition(and(at(entry), atP(ErrorLocation), ir.ArrEq{Left: arrP(), Right: arr()}))
		next := e.nextLoc()
		return next, nil
	case ir.If:
		return e.encodeIf(s, entry)
	case ir.While:
		return e.encodeWhile(s, entry)
	case ir.Print:
		return e.encodePrint(s, entry)
	default:
		return 0, fmt.Errorf("tsys: unhandled statement %T", stmt)
	}
}

// memUnchanged encodes `M' = M`, the frame condition every simple
// transition needs for the user variables it doesn't touch (spec.md §4.5:
// "for each non-written user var x, x = x'" — since user variables live in
// M rather than as separate state, framing the whole array is equivalent
// and simpler to emit than per-variable equalities).
func memUnchanged() ir.Bool {
	return ir.ArrEq{Left: arrP(), Right: arr()}
}
