package examples_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/check"
	"github.com/tudo-aqua/whilestar/internal/dataflow"
	"github.com/tudo-aqua/whilestar/internal/examples"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
	"github.com/tudo-aqua/whilestar/internal/wpc"
)

// negate builds the VC's discharge obligation A ∧ ¬B, same as the CLI's
// proof runner: the entailment is proved exactly when this is unsat.
func negate(e wpc.Entailment) ir.Bool {
	return ir.BinBool{Op: ir.OpAnd, Left: e.Left, Right: ir.Not{Arg: e.Right}}
}

// Every VC the Gauss-sum seed emits must actually discharge, not merely
// exist: generating five entailments that turn out refutable would still
// be a broken proof.
func TestGaussSumVCsAllDischarge(t *testing.T) {
	ctx := examples.GaussSum()
	vcs, err := wpc.GenerateVCs(wpc.Program{Scope: ctx.Scope, Pre: ctx.Pre, Body: ctx.Body, Post: ctx.Post}, false)
	assert.NoError(t, err)
	assert.Len(t, vcs, 5)

	facade := smt.New()
	for i, vc := range vcs {
		res := facade.Solve(negate(vc))
		assert.Equal(t, smt.Unsat, res.Status, "VC %d/%d (%s) must be discharged", i+1, len(vcs), vc.Explanation)
	}
}

// The sorting network's three adjacent-ordering assertions must hold for
// every possible initial array content, with no loop invariant involved.
func TestSortOfThreeVCsAllDischarge(t *testing.T) {
	ctx := examples.SortOfThree()
	vcs, err := wpc.GenerateVCs(wpc.Program{Scope: ctx.Scope, Pre: ctx.Pre, Body: ctx.Body, Post: ctx.Post}, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, vcs)

	facade := smt.New()
	for i, vc := range vcs {
		res := facade.Solve(negate(vc))
		assert.Equal(t, smt.Unsat, res.Status, "VC %d/%d (%s) must be discharged", i+1, len(vcs), vc.Explanation)
	}
}

// fail-path's "if (true) { fail \"x\" } else {}" must yield a BMC
// counterexample at bound 1: the error location is one step away.
func TestFailPathBMCFindsCounterexample(t *testing.T) {
	ctx := examples.FailPath()
	sys, err := tsys.Encode(ctx.Scope, ctx.Body, ctx.Pre, ctx.Post, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.BMC(smt.New(), sys, 1)
	assert.Equal(t, result.KindCounterexample, res.Kind)
}

// The safe havoc variant (x drawn from [0,5], asserting x<10) must never
// violate its assertion: BMC within the program's own length finds none.
func TestBoundedHavocSafeBMCFindsNoViolation(t *testing.T) {
	ctx := examples.BoundedHavocSafe()
	sys, err := tsys.Encode(ctx.Scope, ctx.Body, ctx.Pre, ctx.Post, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.BMC(smt.New(), sys, 2)
	assert.Equal(t, result.KindNoResult, res.Kind)
}

// Widening the havoc range to [0,20] against the same assert(x<10) must
// yield a counterexample, since x=10..20 all violate it.
func TestBoundedHavocUnsafeBMCFindsCounterexample(t *testing.T) {
	ctx := examples.BoundedHavocUnsafe()
	sys, err := tsys.Encode(ctx.Scope, ctx.Body, ctx.Pre, ctx.Post, tsys.DefaultOptions())
	assert.NoError(t, err)

	res := check.BMC(smt.New(), sys, 2)
	assert.Equal(t, result.KindCounterexample, res.Kind)
}

// The live-variables seed's final assignment (y := z + k) reads z and k,
// not y itself or x, whose last definition is dead by that point.
func TestLiveVariablesScenarioLiveAtFinalAssignment(t *testing.T) {
	ctx := examples.LiveVariablesScenario()
	cfg := dataflow.Build(ctx.Body)
	facts := dataflow.LiveVariables(cfg)

	var finalAssign dataflow.NodeID = -1
	for _, n := range cfg.Nodes {
		if assign, ok := n.Stmt.(ir.Assign); ok {
			if v, ok := assign.Lhs.(ir.Variable); ok && v.Name == "y" {
				if _, isSum := assign.Rhs.(ir.BinArith); isSum {
					finalAssign = n.ID
				}
			}
		}
	}
	assert.NotEqual(t, dataflow.NodeID(-1), finalAssign, "must find the y := z + k assignment")

	assert.True(t, dataflow.LiveAt(facts, finalAssign, "z"), "z is read by the final assignment")
	assert.True(t, dataflow.LiveAt(facts, finalAssign, "k"), "k is read by the final assignment")
}

// fail "x"; x := 1 — the assignment after the unconditional fail must be
// unreachable.
func TestReachabilityScenarioFlagsStatementAfterFail(t *testing.T) {
	ctx := examples.ReachabilityScenario()
	cfg := dataflow.Build(ctx.Body)
	facts := dataflow.Reachability(cfg)

	var afterFail dataflow.NodeID = -1
	for _, n := range cfg.Nodes {
		if _, ok := n.Stmt.(ir.Assign); ok {
			afterFail = n.ID
		}
	}
	assert.NotEqual(t, dataflow.NodeID(-1), afterFail, "must find the x := 1 assignment")
	assert.False(t, dataflow.IsReachable(facts, afterFail), "statement after an unconditional fail is unreachable")
}
