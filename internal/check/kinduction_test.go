package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/check"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
)

func iVal() ir.Arith {
	return ir.ValAtAddr{Addr: ir.Variable{Name: "i"}}
}

// i := 0; while (i < 3) invariant(0 <= i <= 3) { i := i + 1 } always
// terminates with i == 3 — the postcondition the loop's own invariant
// entails at the exit location.
func boundedCounter(t *testing.T) (ir.Sequence, ir.Bool) {
	t.Helper()
	inv := ir.BinBool{
		Op:   ir.OpAnd,
		Left: ir.Cmp{Op: ir.OpGte, Left: iVal(), Right: ir.NumOf(0)},
		Right: ir.Cmp{Op: ir.OpLte, Left: iVal(), Right: ir.NumOf(3)},
	}
	loop := ir.While{
		Cond:      ir.Cmp{Op: ir.OpLt, Left: iVal(), Right: ir.NumOf(3)},
		Invariant: inv,
		Body: ir.NewSequence(ir.Assign{
			Lhs: ir.Variable{Name: "i"},
			Rhs: ir.BinArith{Op: ir.OpAdd, Left: iVal(), Right: ir.NumOf(1)},
		}),
	}
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "i"}, Rhs: ir.NumOf(0)},
		loop,
	)
	post := ir.Eq{Left: iVal(), Right: ir.NumOf(3)}
	return body, post
}

func TestKInductionProvesBoundedCounter(t *testing.T) {
	scope := scalarScope(t, "i")
	body, post := boundedCounter(t)
	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, post, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.KInduction(smt.New(), sys, 3)
	assert.Equal(t, result.KindProof, res.Kind)
}

func TestKInductionBMCProvesBoundedCounter(t *testing.T) {
	scope := scalarScope(t, "i")
	body, post := boundedCounter(t)
	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, post, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.KInductionBMC(smt.New(), sys, 3)
	assert.Equal(t, result.KindProof, res.Kind)
}

// A postcondition the loop invariant does not support should not be
// provable by k-induction within a small bound.
func TestKInductionDoesNotProveWrongPostcondition(t *testing.T) {
	scope := scalarScope(t, "i")
	body, _ := boundedCounter(t)
	wrongPost := ir.Eq{Left: iVal(), Right: ir.NumOf(4)}
	sys, err := tsys.Encode(scope, body, ir.TrueLit{}, wrongPost, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.KInduction(smt.New(), sys, 3)
	assert.NotEqual(t, result.KindProof, res.Kind)
}
