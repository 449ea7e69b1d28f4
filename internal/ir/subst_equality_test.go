package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/ir"
)

func val(name string) ir.Arith { return ir.ValAtAddr{Addr: ir.Variable{Name: name}} }

// Replace rewrites every ValAtAddr(Variable{name}) occurrence, and leaves
// other variables and the Variable address form itself untouched.
func TestReplaceRewritesValueOccurrencesOnly(t *testing.T) {
	expr := ir.BinArith{Op: ir.OpAdd, Left: val("x"), Right: val("y")}
	got := ir.Replace(expr, "x", ir.NumOf(9))

	want := ir.BinArith{Op: ir.OpAdd, Left: ir.NumOf(9), Right: val("y")}
	assert.True(t, ir.Equal(want, got))
}

// Substituting through a BoundVar whose Name matches replaces it wholesale,
// the mechanism wpc(extern) and quantifier instantiation rely on.
func TestReplaceSubstitutesMatchingBoundVar(t *testing.T) {
	bound := ir.BoundVar{Name: "t"}
	got := ir.Replace(bound, "t", ir.NumOf(3))
	assert.Equal(t, ir.NumOf(3), got)

	untouched := ir.Replace(ir.BoundVar{Name: "s"}, "t", ir.NumOf(3))
	assert.Equal(t, ir.BoundVar{Name: "s"}, untouched)
}

// ReplaceBool must not descend into a Forall's own bound variable even
// when its name collides with the substitution target, matching the
// "bound names are fresh" invariant Replace documents.
func TestReplaceBoolLeavesOwnForallBoundAlone(t *testing.T) {
	phi := ir.Forall{
		Bound: ir.BoundVar{Name: "t"},
		Body:  ir.Eq{Left: ir.BoundVar{Name: "t"}, Right: ir.NumOf(0)},
	}
	got := ir.ReplaceBool(phi, "t", ir.NumOf(99))
	forall, ok := got.(ir.Forall)
	assert.True(t, ok)
	assert.Equal(t, "t", forall.Bound.Name, "the quantifier's own binder must survive substitution")
}

func TestEqualIgnoresPositionButComparesStructure(t *testing.T) {
	a := ir.BinArith{Pos: ir.Position{Line: 1}, Op: ir.OpAdd, Left: ir.NumOf(1), Right: ir.NumOf(2)}
	b := ir.BinArith{Pos: ir.Position{Line: 99}, Op: ir.OpAdd, Left: ir.NumOf(1), Right: ir.NumOf(2)}
	assert.True(t, ir.Equal(a, b))

	c := ir.BinArith{Op: ir.OpAdd, Left: ir.NumOf(1), Right: ir.NumOf(3)}
	assert.False(t, ir.Equal(a, c))
}

// Two structurally equivalent Foralls that differ only in their bound
// variable's name must compare equal (alpha-equivalence).
func TestEqualForallIsAlphaEquivalent(t *testing.T) {
	left := ir.Forall{
		Bound: ir.BoundVar{Name: "i"},
		Body:  ir.Cmp{Op: ir.OpGte, Left: ir.BoundVar{Name: "i"}, Right: ir.NumOf(0)},
	}
	right := ir.Forall{
		Bound: ir.BoundVar{Name: "j"},
		Body:  ir.Cmp{Op: ir.OpGte, Left: ir.BoundVar{Name: "j"}, Right: ir.NumOf(0)},
	}
	assert.True(t, ir.Equal(left, right))

	mismatched := ir.Forall{
		Bound: ir.BoundVar{Name: "j"},
		Body:  ir.Cmp{Op: ir.OpGte, Left: ir.BoundVar{Name: "j"}, Right: ir.NumOf(1)},
	}
	assert.False(t, ir.Equal(left, mismatched))
}
