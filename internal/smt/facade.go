// Package smt implements the thin SMT facade of spec.md §4.7 (component
// C9): solve/simplify/interpolant plus call counters, over a single Z3
// context via github.com/aclements/go-z3. Everything above this package —
// the executor's Solver interface, the checkers, the WPC discharge step —
// talks to Facade, never to z3 directly.
package smt

import (
	"github.com/aclements/go-z3/z3"

	"github.com/tudo-aqua/whilestar/internal/ir"
)

// Status is the outcome of a solve call.
type Status string

const (
	Sat     Status = "sat"
	Unsat   Status = "unsat"
	Unknown Status = "unknown"
	ErrorSt Status = "error"
)

// Result is solve's return value: a status plus, when sat, a model mapping
// declared constant name to its literal string (spec.md §4.7).
type Result struct {
	Status Status
	Model  map[string]string
	Err    error
}

// Facade is the narrow SMT surface every other component depends on.
// BooleanEval, when set, additionally conjoins `v = 0 ∨ v = 1` for every
// declared integer constant except the memory array and loc (spec.md
// §4.7's "Boolean-evaluation mode"), for checkers that encode boolean
// program variables as 0/1 integers.
type Facade struct {
	ctx    *z3.Context
	config *z3.Config

	BooleanEval bool

	solveCalls       int
	simplifyCalls    int
	interpolantCalls int

	blockedModels []ir.Bool // conjoined (negated) onto every subsequent solve call
}

// New creates a Facade backed by a fresh Z3 context.
func New() *Facade {
	config := z3.NewConfig()
	ctx := z3.NewContext(config)
	return &Facade{ctx: ctx, config: config}
}

// Reset clears the call counters and the blocked-model set, starting a
// fresh enumeration session — used between independent checker runs that
// share one Facade (spec.md §5: "the SMT facade is a suspension point").
func (f *Facade) Reset() {
	f.solveCalls = 0
	f.simplifyCalls = 0
	f.interpolantCalls = 0
	f.blockedModels = nil
}

func (f *Facade) SolveCalls() int       { return f.solveCalls }
func (f *Facade) SimplifyCalls() int    { return f.simplifyCalls }
func (f *Facade) InterpolantCalls() int { return f.interpolantCalls }

// Sat reports only the boolean feasibility of phi, satisfying the narrow
// exec.Solver contract used by the concrete/symbolic executor (spec.md
// §4.2). It does not participate in blocked-model enumeration.
func (f *Facade) Sat(phi ir.Bool) (bool, error) {
	tr := newTranslator(f.ctx)
	expr, err := tr.bool(phi)
	if err != nil {
		return false, err
	}
	solver := z3.NewSolver(f.ctx)
	solver.Assert(expr)
	sat, err := solver.Check()
	if err != nil {
		return false, err
	}
	return sat, nil
}

// Solve queries phi, conjoined with the negation of every previously
// returned model (blocked-model enumeration), and the Boolean-evaluation
// constraint when BooleanEval is set (spec.md §4.7).
func (f *Facade) Solve(phi ir.Bool) Result {
	f.solveCalls++
	tr := newTranslator(f.ctx)
	expr, err := tr.bool(phi)
	if err != nil {
		return Result{Status: ErrorSt, Err: err}
	}

	solver := z3.NewSolver(f.ctx)
	solver.Assert(expr)
	for _, blocked := range f.blockedModels {
		blockedExpr, err := tr.bool(blocked)
		if err != nil {
			return Result{Status: ErrorSt, Err: err}
		}
		solver.Assert(blockedExpr.Not())
	}
	if f.BooleanEval {
		for name, c := range tr.intConsts {
			if name == "loc" || isMemoryConstName(name) {
				continue
			}
			zero := f.ctx.FromInt(0, f.ctx.IntSort())
			one := f.ctx.FromInt(1, f.ctx.IntSort())
			solver.Assert(c.Eq(zero).Or(c.Eq(one)))
		}
	}

	sat, err := solver.Check()
	if err != nil {
		return Result{Status: ErrorSt, Err: err}
	}
	if !sat {
		return Result{Status: Unsat}
	}

	model := solver.Model()
	out := map[string]string{}
	modelConj := ir.Bool(ir.TrueLit{})
	for name, c := range tr.intConsts {
		val := model.Eval(c, true)
		lit, isLit := val.AsBigInt()
		if !isLit {
			continue
		}
		out[name] = lit.String()
		atom := ir.Eq{Left: ir.BoundVar{Name: name}, Right: ir.Num{Val: lit}}
		if _, ok := modelConj.(ir.TrueLit); ok {
			modelConj = atom
		} else {
			modelConj = ir.BinBool{Op: ir.OpAnd, Left: modelConj, Right: atom}
		}
	}
	if _, ok := modelConj.(ir.TrueLit); !ok {
		f.blockedModels = append(f.blockedModels, modelConj)
	}
	return Result{Status: Sat, Model: out}
}

// Simplify discharges phi via the solver and folds it to a literal
// boolean: True when phi is satisfiable, False when it is unsat. A
// translation or solver error, including z3 reporting an unknown result,
// is returned as an error rather than folded to a literal.
func (f *Facade) Simplify(phi ir.Bool) (ir.Bool, error) {
	f.simplifyCalls++
	res := f.solveNoCount(phi)
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Status == Sat {
		return ir.TrueLit{}, nil
	}
	return ir.FalseLit{}, nil
}

func (f *Facade) solveNoCount(phi ir.Bool) Result {
	tr := newTranslator(f.ctx)
	expr, err := tr.bool(phi)
	if err != nil {
		return Result{Status: ErrorSt, Err: err}
	}
	solver := z3.NewSolver(f.ctx)
	solver.Assert(expr)
	sat, err := solver.Check()
	if err != nil {
		return Result{Status: ErrorSt, Err: err}
	}
	if sat {
		return Result{Status: Sat}
	}
	return Result{Status: Unsat}
}

// Interpolant returns an I such that A ⇒ I and I ∧ B is unsat, or
// (nil, nil) when A ∧ B is itself satisfiable (no interpolant exists). No
// interpolation procedure is invoked: whenever A ∧ B is unsat the result
// is A itself, which is not simplified. Translation and solver errors
// propagate to the caller.
func (f *Facade) Interpolant(a, b ir.Bool) (ir.Bool, error) {
	f.interpolantCalls++
	tr := newTranslator(f.ctx)
	aExpr, err := tr.bool(a)
	if err != nil {
		return nil, err
	}
	bExpr, err := tr.bool(b)
	if err != nil {
		return nil, err
	}
	solver := z3.NewSolver(f.ctx)
	solver.Assert(aExpr)
	solver.Assert(bExpr)
	sat, err := solver.Check()
	if err != nil {
		return nil, err
	}
	if sat {
		return nil, nil
	}
	// A itself is always a sound (if imprecise) interpolant whenever A ∧ B
	// is unsat, since A ⇒ A trivially and A ∧ B is unsat by hypothesis.
	return a, nil
}

func isMemoryConstName(name string) bool {
	return len(name) >= 2 && name[:2] == "M_"
}
