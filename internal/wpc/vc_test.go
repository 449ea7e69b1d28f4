package wpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/examples"
	"github.com/tudo-aqua/whilestar/internal/wpc"
)

// The Gauss-sum seed scenario's literal WPC rules (spec.md §4.4) emit
// five entailments, not the four spec.md §6 phrasing suggests: the
// program-entry VC, the loop-entry and loop-exit VCs, and one VC per
// assertion — and the program contains two assertions (the loop body's
// `assert(i<=n)` and the post-loop `assert(n=i)`). Folding either
// assertion's own VC away would be unsound: `wpc(while...)` and
// `wpc(assert...)` both discard everything that follows them, so the
// trailing `assert(n=i) ⇒ post` entailment is the only place the real
// postcondition is ever checked.
func TestGaussSumEmitsFiveVCs(t *testing.T) {
	ctx := examples.GaussSum()
	vcs, err := wpc.GenerateVCs(wpc.Program{
		Scope: ctx.Scope,
		Pre:   ctx.Pre,
		Body:  ctx.Body,
		Post:  ctx.Post,
	}, false)
	assert.NoError(t, err)
	assert.Len(t, vcs, 5)
}
