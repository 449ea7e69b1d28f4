package wpc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/examples"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/wpc"
)

// Prove discharges the Gauss-sum seed's five VCs and reports Proof.
func TestProveDischargesGaussSum(t *testing.T) {
	ctx := examples.GaussSum()
	vcs, err := wpc.GenerateVCs(wpc.Program{Scope: ctx.Scope, Pre: ctx.Pre, Body: ctx.Body, Post: ctx.Post}, false)
	assert.NoError(t, err)

	res := wpc.Prove(smt.New(), vcs)
	assert.Equal(t, result.KindProof, res.Kind)
}

// A VC negation that is satisfiable must surface as a Counterexample, not
// a silent Proof.
func TestProveReportsCounterexampleForRefutableVC(t *testing.T) {
	bad := wpc.Entailment{
		Left:        ir.TrueLit{},
		Right:       ir.FalseLit{},
		Explanation: "vacuously false",
	}
	res := wpc.Prove(smt.New(), []wpc.Entailment{bad})
	assert.Equal(t, result.KindCounterexample, res.Kind)
}

// ProofApproach.Name/Run satisfy result.Approach and agree with Prove.
func TestProofApproachMatchesProve(t *testing.T) {
	ctx := examples.GaussSum()
	vcs, err := wpc.GenerateVCs(wpc.Program{Scope: ctx.Scope, Pre: ctx.Pre, Body: ctx.Body, Post: ctx.Post}, false)
	assert.NoError(t, err)

	approach := wpc.ProofApproach{Facade: smt.New(), VCs: vcs}
	assert.Equal(t, "wpc-proof", approach.Name())
	res := approach.Run(context.Background())
	assert.Equal(t, result.KindProof, res.Kind)
}
