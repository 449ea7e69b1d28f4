package exec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/exec"
	"github.com/tudo-aqua/whilestar/internal/ioout"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/memstore"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// run drives ex concretely to completion, starting from an all-zero
// memory sized to scope, and returns the terminal Configuration.
func run(t *testing.T, ex *exec.Executor, scope *types.Scope, body ir.Sequence) exec.Configuration {
	t.Helper()
	cfg := exec.Configuration{
		StatementsRemaining: body,
		Scope:               scope,
		Memory:              memstore.New(scope.Size()),
		PathConstraint:      ir.TrueLit{},
	}
	for !cfg.Terminal() {
		transitions, err := ex.Step(cfg)
		assert.NoError(t, err)
		assert.Len(t, transitions, 1, "concrete execution never forks")
		cfg = transitions[0].Destination
	}
	return cfg
}

func addr(scope *types.Scope, name string) int {
	e, _ := scope.Lookup(name)
	return e.Address
}

// x := 1; x := x + 41 must leave cell x holding 42, with no fault.
func TestExecutorAssignAccumulates(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("x", types.IntType{}))
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)},
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.BinArith{
			Op:   ir.OpAdd,
			Left: ir.ValAtAddr{Addr: ir.Variable{Name: "x"}},
			Right: ir.NumOf(41),
		}},
	)
	ex := &exec.Executor{Out: ioout.NewBuffer(nil)}
	final := run(t, ex, scope, body)

	assert.False(t, final.ErrorFlag)
	n, ok := exec.AsLiteral(final.Memory.Read(addr(scope, "x")))
	assert.True(t, ok)
	assert.Equal(t, int64(42), n.Int64())
}

// x := 3; y := 5; swap(x, y) must exchange the two cells.
func TestExecutorSwapExchangesCells(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("x", types.IntType{}))
	assert.NoError(t, scope.DeclareScalar("y", types.IntType{}))
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(3)},
		ir.Assign{Lhs: ir.Variable{Name: "y"}, Rhs: ir.NumOf(5)},
		ir.Swap{A: ir.Variable{Name: "x"}, B: ir.Variable{Name: "y"}},
	)
	ex := &exec.Executor{Out: ioout.NewBuffer(nil)}
	final := run(t, ex, scope, body)

	xv, _ := exec.AsLiteral(final.Memory.Read(addr(scope, "x")))
	yv, _ := exec.AsLiteral(final.Memory.Read(addr(scope, "y")))
	assert.Equal(t, int64(5), xv.Int64())
	assert.Equal(t, int64(3), yv.Int64())
}

// i := 0; while (i<3) invariant(i<=3) { i := i+1 } must unroll exactly
// three times and leave i == 3, with no invariant fault.
func TestExecutorWhileUnrollsToExit(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("i", types.IntType{}))
	iVal := ir.ValAtAddr{Addr: ir.Variable{Name: "i"}}
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "i"}, Rhs: ir.NumOf(0)},
		ir.While{
			Cond:      ir.Cmp{Op: ir.OpLt, Left: iVal, Right: ir.NumOf(3)},
			Invariant: ir.Cmp{Op: ir.OpLte, Left: iVal, Right: ir.NumOf(3)},
			Body: ir.NewSequence(ir.Assign{
				Lhs: ir.Variable{Name: "i"},
				Rhs: ir.BinArith{Op: ir.OpAdd, Left: iVal, Right: ir.NumOf(1)},
			}),
		},
	)
	ex := &exec.Executor{Out: ioout.NewBuffer(nil)}
	final := run(t, ex, scope, body)

	assert.False(t, final.ErrorFlag)
	n, _ := exec.AsLiteral(final.Memory.Read(addr(scope, "i")))
	assert.Equal(t, int64(3), n.Int64())
}

// A loop invariant that the loop body violates must fault with
// RuntimeAssertionFailed rather than silently continuing.
func TestExecutorWhileFaultsOnInvariantViolation(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("i", types.IntType{}))
	iVal := ir.ValAtAddr{Addr: ir.Variable{Name: "i"}}
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "i"}, Rhs: ir.NumOf(0)},
		ir.While{
			Cond:      ir.Cmp{Op: ir.OpLt, Left: iVal, Right: ir.NumOf(3)},
			Invariant: ir.Cmp{Op: ir.OpLt, Left: iVal, Right: ir.NumOf(1)}, // false once i reaches 1
			Body: ir.NewSequence(ir.Assign{
				Lhs: ir.Variable{Name: "i"},
				Rhs: ir.BinArith{Op: ir.OpAdd, Left: iVal, Right: ir.NumOf(1)},
			}),
		},
	)
	ex := &exec.Executor{Out: ioout.NewBuffer(nil)}
	final := run(t, ex, scope, body)

	assert.True(t, final.ErrorFlag)
}

// fail "boom" must terminate with ErrorFlag set.
func TestExecutorFailSetsErrorFlag(t *testing.T) {
	scope := types.NewScope()
	ex := &exec.Executor{Out: ioout.NewBuffer(nil)}
	final := run(t, ex, scope, ir.NewSequence(ir.Fail{Message: "boom"}))
	assert.True(t, final.ErrorFlag)
}

// extern x 0..5 drawing a fixed value of 4 must land exactly that value in
// x's cell.
func TestExecutorExternWritesDrawnValue(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("x", types.IntType{}))
	body := ir.NewSequence(ir.Extern{Addr: ir.Variable{Name: "x"}, Lower: ir.NumOf(0), Upper: ir.NumOf(5)})
	ex := &exec.Executor{Input: exec.NewFixedInputInts(4), Out: ioout.NewBuffer(nil)}
	final := run(t, ex, scope, body)

	assert.False(t, final.ErrorFlag)
	n, _ := exec.AsLiteral(final.Memory.Read(addr(scope, "x")))
	assert.Equal(t, int64(4), n.Int64())
}
