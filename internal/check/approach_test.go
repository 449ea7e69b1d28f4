package check_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/check"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
)

// BMCApproach.Run must produce the same verdict as calling check.BMC
// directly, and RunApproach must assemble a BenchRow naming it correctly.
func TestBMCApproachMatchesDirectCall(t *testing.T) {
	scope := scalarScope(t, "x")
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)},
		ir.Assert{Cond: ir.Eq{Left: xVal(), Right: ir.NumOf(2)}},
	)
	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, ir.TrueLit{}, tsys.DefaultOptions())
	assert.NoError(t, err)

	approach := check.BMCApproach{Facade: smt.New(), System: sys, Bound: 3}
	assert.Equal(t, "bmc", approach.Name())

	direct := check.BMC(smt.New(), sys, 3)

	row := result.RunApproach(context.Background(), approach, "x-eq-2")
	assert.Equal(t, direct.Kind, row.Result.Kind)
	assert.Equal(t, "bmc", row.Approach)
	assert.Equal(t, "x-eq-2", row.Program)
	assert.Equal(t, result.KindCounterexample, row.Result.Kind)
	assert.GreaterOrEqual(t, row.DurationMS, int64(0))
}

func TestKInductionApproachProvesBoundedCounter(t *testing.T) {
	body, post := boundedCounter(t)
	scope := scalarScope(t, "i")
	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, post, tsys.DefaultOptions())
	assert.NoError(t, err)

	approach := check.KInductionApproach{Facade: smt.New(), System: sys, KBound: 5}
	assert.Equal(t, "k-induction", approach.Name())
	res := approach.Run(context.Background())
	assert.Equal(t, result.KindProof, res.Kind)
}
