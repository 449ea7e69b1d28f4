package smt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/smt"
)

func num(v int64) ir.Arith { return ir.NumOf(v) }

func TestSatReportsFeasibility(t *testing.T) {
	f := smt.New()

	x := ir.BoundVar{Name: "x"}
	sat, err := f.Sat(ir.Cmp{Op: ir.OpGt, Left: x, Right: num(0)})
	assert.NoError(t, err)
	assert.True(t, sat)

	sat, err = f.Sat(ir.BinBool{Op: ir.OpAnd,
		Left:  ir.Cmp{Op: ir.OpGt, Left: x, Right: num(0)},
		Right: ir.Cmp{Op: ir.OpLt, Left: x, Right: num(0)},
	})
	assert.NoError(t, err)
	assert.False(t, sat)
}

func TestSolveReturnsModelOnSat(t *testing.T) {
	f := smt.New()
	x := ir.BoundVar{Name: "x"}
	res := f.Solve(ir.Eq{Left: x, Right: num(7)})
	assert.Equal(t, smt.Sat, res.Status)
	assert.Equal(t, "7", res.Model["x"])
}

func TestSolveUnsatOnContradiction(t *testing.T) {
	f := smt.New()
	x := ir.BoundVar{Name: "x"}
	res := f.Solve(ir.BinBool{Op: ir.OpAnd,
		Left:  ir.Eq{Left: x, Right: num(1)},
		Right: ir.Eq{Left: x, Right: num(2)},
	})
	assert.Equal(t, smt.Unsat, res.Status)
}

// Solve's blocked-model enumeration must not return the same model twice
// for a formula with more than one satisfying assignment.
func TestSolveBlockedModelEnumerationExcludesPriorModel(t *testing.T) {
	f := smt.New()
	x := ir.BoundVar{Name: "x"}
	phi := ir.BinBool{Op: ir.OpAnd,
		Left:  ir.Cmp{Op: ir.OpGte, Left: x, Right: num(0)},
		Right: ir.Cmp{Op: ir.OpLte, Left: x, Right: num(1)},
	}

	first := f.Solve(phi)
	assert.Equal(t, smt.Sat, first.Status)
	second := f.Solve(phi)
	assert.Equal(t, smt.Sat, second.Status)
	assert.NotEqual(t, first.Model["x"], second.Model["x"])

	third := f.Solve(phi)
	assert.Equal(t, smt.Unsat, third.Status, "only two values in [0,1] exist for x")
}

// SolveCalls only counts Solve, not Sat.
func TestSolveCallsCountsOnlySolve(t *testing.T) {
	f := smt.New()
	x := ir.BoundVar{Name: "x"}
	_, _ = f.Sat(ir.Eq{Left: x, Right: num(1)})
	assert.Equal(t, 0, f.SolveCalls())
	f.Solve(ir.Eq{Left: x, Right: num(1)})
	assert.Equal(t, 1, f.SolveCalls())
}

// Reset clears both the call counters and the blocked-model set.
func TestResetClearsCountersAndBlockedModels(t *testing.T) {
	f := smt.New()
	x := ir.BoundVar{Name: "x"}
	f.Solve(ir.Eq{Left: x, Right: num(1)})
	f.Reset()
	assert.Equal(t, 0, f.SolveCalls())

	res := f.Solve(ir.Eq{Left: x, Right: num(1)})
	assert.Equal(t, smt.Sat, res.Status, "blocked model from before Reset must not leak")
}

func TestSimplifyFoldsDecidableFormulas(t *testing.T) {
	f := smt.New()
	tru, err := f.Simplify(ir.Eq{Left: num(1), Right: num(1)})
	assert.NoError(t, err)
	assert.Equal(t, ir.TrueLit{}, tru)

	fls, err := f.Simplify(ir.Eq{Left: num(1), Right: num(2)})
	assert.NoError(t, err)
	assert.Equal(t, ir.FalseLit{}, fls)
}

// BooleanEval conjoins v==0 ∨ v==1 onto every non-loc, non-memory integer
// constant, so a boolean-typed variable cannot take a value outside {0,1}.
func TestBooleanEvalRestrictsDomainToZeroOne(t *testing.T) {
	f := smt.New()
	f.BooleanEval = true
	b := ir.BoundVar{Name: "flag"}
	res := f.Solve(ir.Cmp{Op: ir.OpGt, Left: b, Right: num(1)})
	assert.Equal(t, smt.Unsat, res.Status)
}
