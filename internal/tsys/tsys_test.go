package tsys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/examples"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// Encode must report every scope-declared name as a system variable, in
// declaration order.
func TestEncodeReportsScopeVars(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("n", types.IntType{}))
	assert.NoError(t, scope.DeclareScalar("i", types.IntType{}))
	body := ir.NewSequence(ir.Assign{Lhs: ir.Variable{Name: "i"}, Rhs: ir.NumOf(0)})

	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, ir.TrueLit{}, tsys.DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, []string{"n", "i"}, sys.Vars)
	assert.Greater(t, sys.NextLocationID, 0)
}

// The encoded Initial predicate of the Gauss-sum seed (pre: n=i=0, sum=1)
// must be satisfiable: the encoder's on-memory rewriting of the
// precondition must not itself be contradictory.
func TestEncodeGaussSumInitialSatisfiable(t *testing.T) {
	ctx := examples.GaussSum()
	sys, err := tsys.Encode(ctx.Scope, ctx.Body, ctx.Pre, ctx.Post, tsys.DefaultOptions())
	assert.NoError(t, err)

	facade := smt.New()
	sat, err := facade.Sat(sys.Initial)
	assert.NoError(t, err)
	assert.True(t, sat, "initial predicate must be satisfiable")
}

// fail-path's single transition must be able to reach loc' ==
// tsys.ErrorLocation directly from the initial state: Initial ∧
// Transitions ∧ loc'==ErrorLocation must be jointly satisfiable.
func TestEncodeFailPathReachesErrorLocation(t *testing.T) {
	ctx := examples.FailPath()
	sys, err := tsys.Encode(ctx.Scope, ctx.Body, ir.TrueLit{}, ir.TrueLit{}, tsys.DefaultOptions())
	assert.NoError(t, err)

	atErrorLocPrimed := ir.Eq{
		Left:  ir.BoundVar{Name: "loc'"},
		Right: ir.NumOf(int64(tsys.ErrorLocation)),
	}
	phi := ir.BinBool{
		Op:   ir.OpAnd,
		Left: ir.BinBool{Op: ir.OpAnd, Left: sys.Initial, Right: sys.Transitions},
		Right: atErrorLocPrimed,
	}
	facade := smt.New()
	sat, err := facade.Sat(phi)
	assert.NoError(t, err)
	assert.True(t, sat, "fail-path must have a one-step transition into the error location")
}

// A program with no reachable fail (bounded-havoc-safe) must not be able
// to reach the error location in a single step.
func TestEncodeSafeHavocNeverReachesErrorLocation(t *testing.T) {
	ctx := examples.BoundedHavocSafe()
	sys, err := tsys.Encode(ctx.Scope, ctx.Body, ir.TrueLit{}, ir.TrueLit{}, tsys.DefaultOptions())
	assert.NoError(t, err)

	atErrorLocPrimed := ir.Eq{
		Left:  ir.BoundVar{Name: "loc'"},
		Right: ir.NumOf(int64(tsys.ErrorLocation)),
	}
	phi := ir.BinBool{
		Op:   ir.OpAnd,
		Left: ir.BinBool{Op: ir.OpAnd, Left: sys.Initial, Right: sys.Transitions},
		Right: atErrorLocPrimed,
	}
	facade := smt.New()
	sat, err := facade.Sat(phi)
	assert.NoError(t, err)
	assert.False(t, sat, "no havoc draw in [0,5] can violate assert(x<10)")
}
