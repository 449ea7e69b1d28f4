package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/check"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
	"github.com/tudo-aqua/whilestar/internal/types"
)

func scalarScope(t *testing.T, names ...string) *types.Scope {
	t.Helper()
	scope := types.NewScope()
	for _, n := range names {
		assert.NoError(t, scope.DeclareScalar(n, types.IntType{}))
	}
	return scope
}

func xVal() ir.Arith {
	return ir.ValAtAddr{Addr: ir.Variable{Name: "x"}}
}

// assert(x == 2) right after x := 1 always fails: BMC should report a
// counterexample at a small bound.
func TestBMCFindsCounterexample(t *testing.T) {
	scope := scalarScope(t, "x")
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)},
		ir.Assert{Cond: ir.Eq{Left: xVal(), Right: ir.NumOf(2)}},
	)
	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, ir.TrueLit{}, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.BMC(smt.New(), sys, 3)
	assert.Equal(t, result.KindCounterexample, res.Kind)
}

// assert(x == 1) right after x := 1 always holds: BMC within a bound that
// covers the program's length reports no violation.
func TestBMCFindsNoViolation(t *testing.T) {
	scope := scalarScope(t, "x")
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)},
		ir.Assert{Cond: ir.Eq{Left: xVal(), Right: ir.NumOf(1)}},
	)
	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, ir.TrueLit{}, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.BMC(smt.New(), sys, 3)
	assert.Equal(t, result.KindNoResult, res.Kind)
}
