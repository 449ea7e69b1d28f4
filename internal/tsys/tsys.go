// Package tsys implements the symbolic transition-system encoder of
// spec.md §4.5 (component C7): control and data are flattened into a
// single labelled transition relation over (loc, M), with an incrementing
// location counter and the distinguished error location -1.
package tsys

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// ErrorLocation is the distinguished, always-violating program counter
// value (spec.md §4.5).
const ErrorLocation = -1

// System is the transition system spec.md §3 names: an ordered list of
// user variable names, the initial-state predicate, the transition
// relation, the safety invariant, and the next-free location counter at
// the time encoding finished.
type System struct {
	Vars            []string
	Initial         ir.Bool
	Transitions     ir.Bool
	Invariant       ir.Bool
	NextLocationID  int
}

// Options configures encoder behavior spec.md §9 calls out as toggles.
type Options struct {
	// AssumeInvariantAtLoopHead conjoins the user-supplied invariant onto
	// the while loop's cond-true transition, strengthening the encoding
	// (spec.md §4.2 "optionally conjoined with the user invariant").
	AssumeInvariantAtLoopHead bool
	// EncodePrint, when true, emits a memory-unchanged transition from each
	// print statement's location to the next one; when false, print emits
	// no transition (spec.md §9: encoding is the safer default when
	// invariants reference program-counter values).
	EncodePrint bool
}

// DefaultOptions matches the spec's stated default: print encoding on,
// invariant not assumed at the loop head (the weaker, more general
// encoding, which callers can strengthen explicitly).
func DefaultOptions() Options {
	return Options{AssumeInvariantAtLoopHead: false, EncodePrint: true}
}

type encoder struct {
	opts        Options
	scope       *types.Scope
	locID       int
	fresh       int
	transitions []ir.Bool
}

func (e *encoder) nextLoc() int {
	e.locID++
	return e.locID
}

func (e *encoder) freshExtern() string {
	e.fresh++
	return fmt.Sprintf("tsys_ext_%d", e.fresh)
}

// loc/locP build BoundVar leaves for the current/primed program counter;
// the location counter is otherwise an ordinary integer-sorted symbol so it
// can be renamed like any state variable (spec.md §4.5 "Temporal renaming").
func loc() ir.Arith  { return ir.BoundVar{Name: "loc"} }
func locP() ir.Arith { return ir.BoundVar{Name: "loc'"} }
func arr() ir.Arr    { return ir.AnyArray{} }
func arrP() ir.Arr   { return ir.AnyArrayPrimed{} }

func at(l int) ir.Bool  { return ir.Eq{Left: loc(), Right: ir.NumOf(int64(l))} }
func atP(l int) ir.Bool { return ir.Eq{Left: locP(), Right: ir.NumOf(int64(l))} }

func and(parts ...ir.Bool) ir.Bool {
	out := ir.Bool(ir.TrueLit{})
	for _, p := range parts {
		if _, ok := out.(ir.TrueLit); ok {
			out = p
			continue
		}
		out = ir.BinBool{Op: ir.OpAnd, Left: out, Right: p}
	}
	return out
}

func or(parts ...ir.Bool) ir.Bool {
	out := ir.Bool(ir.FalseLit{})
	for _, p := range parts {
		if _, ok := out.(ir.FalseLit); ok {
			out = p
			continue
		}
		out = ir.BinBool{Op: ir.OpOr, Left: out, Right: p}
	}
	return out
}

// compileAddr translates an Address into its on-memory integer expression:
// a plain variable becomes its fixed address constant, DeRef and
// ArrayAccess chase through M (spec.md §4.5).
func compileAddr(scope *types.Scope, addr ir.Address) (ir.Arith, error) {
	switch a := addr.(type) {
	case ir.Variable:
		entry, ok := scope.Lookup(a.Name)
		if !ok {
			return nil, fmt.Errorf("tsys: undeclared variable %q", a.Name)
		}
		return ir.NumOf(int64(entry.Address)), nil
	case ir.DeRef:
		inner, err := compileAddr(scope, a.Ref)
		if err != nil {
			return nil, err
		}
		return ir.ArrayRead{Array: arr(), Index: inner}, nil
	case ir.ArrayAccess:
		base, err := compileAddr(scope, a.Base)
		if err != nil {
			return nil, err
		}
		idx, err := compileExpr(scope, a.Index)
		if err != nil {
			return nil, err
		}
		baseCell := ir.ArrayRead{Array: arr(), Index: base}
		return ir.BinArith{Op: ir.OpAdd, Left: baseCell, Right: idx}, nil
	default:
		return nil, fmt.Errorf("tsys: unknown address %T", addr)
	}
}

// compileExpr rewrites Variable/DeRef/ArrayAccess reads occurring inside an
// arithmetic expression into their on-memory form M[...]. compileAddr
// already handles the address side; this walks the Arith sum for
// ValAtAddr/VarAddress/BinArith/UnaryMinus.
func compileExpr(scope *types.Scope, e ir.Arith) (ir.Arith, error) {
	switch v := e.(type) {
	case ir.Num:
		return v, nil
	case ir.BoundVar:
		return v, nil
	case ir.BinArith:
		l, err := compileExpr(scope, v.Left)
		if err != nil {
			return nil, err
		}
		r, err := compileExpr(scope, v.Right)
		if err != nil {
			return nil, err
		}
		return ir.BinArith{Op: v.Op, Left: l, Right: r}, nil
	case ir.UnaryMinus:
		inner, err := compileExpr(scope, v.Arg)
		if err != nil {
			return nil, err
		}
		return ir.UnaryMinus{Arg: inner}, nil
	case ir.ValAtAddr:
		addr, err := compileAddr(scope, v.Addr)
		if err != nil {
			return nil, err
		}
		return ir.ArrayRead{Array: arr(), Index: addr}, nil
	case ir.VarAddress:
		return compileAddr(scope, v.Var)
	default:
		return nil, fmt.Errorf("tsys: unsupported arithmetic expression %T", e)
	}
}

// compileBool rewrites a boolean expression's embedded address reads into
// on-memory form, recursing structurally.
func compileBool(scope *types.Scope, b ir.Bool) (ir.Bool, error) {
	switch v := b.(type) {
	case ir.TrueLit, ir.FalseLit:
		return v, nil
	case ir.Not:
		inner, err := compileBool(scope, v.Arg)
		if err != nil {
			return nil, err
		}
		return ir.Not{Arg: inner}, nil
	case ir.BinBool:
		l, err := compileBool(scope, v.Left)
		if err != nil {
			return nil, err
		}
		r, err := compileBool(scope, v.Right)
		if err != nil {
			return nil, err
		}
		return ir.BinBool{Op: v.Op, Left: l, Right: r}, nil
	case ir.Eq:
		l, err := compileExpr(scope, v.Left)
		if err != nil {
			return nil, err
		}
		r, err := compileExpr(scope, v.Right)
		if err != nil {
			return nil, err
		}
		return ir.Eq{Left: l, Right: r, Nesting: v.Nesting}, nil
	case ir.Cmp:
		l, err := compileExpr(scope, v.Left)
		if err != nil {
			return nil, err
		}
		r, err := compileExpr(scope, v.Right)
		if err != nil {
			return nil, err
		}
		return ir.Cmp{Op: v.Op, Left: l, Right: r}, nil
	case ir.Forall:
		inner, err := compileBool(scope, v.Body)
		if err != nil {
			return nil, err
		}
		return ir.Forall{Bound: v.Bound, Body: inner}, nil
	default:
		return nil, fmt.Errorf("tsys: unsupported boolean expression %T", b)
	}
}
