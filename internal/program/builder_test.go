package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/program"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// Builder defaults Pre/Post to TrueLit (no assumption, no obligation) and
// assembles Stmt calls into a single Sequence in call order.
func TestBuilderDefaultsAndOrdering(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("x", types.IntType{}))

	ctx := program.NewBuilder("example", scope).
		Stmt(ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)}).
		Stmt(ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(2)}).
		Build()

	assert.Equal(t, "example", ctx.Name)
	assert.Equal(t, ir.TrueLit{}, ctx.Pre)
	assert.Equal(t, ir.TrueLit{}, ctx.Post)
	assert.Same(t, scope, ctx.Scope)
	assert.Equal(t, 2, ctx.Body.Len())
	first, ok := ctx.Body.Head().(ir.Assign)
	assert.True(t, ok)
	assert.Equal(t, ir.NumOf(1), first.Rhs)
}

func TestBuilderPreAndPostOverrideDefaults(t *testing.T) {
	scope := types.NewScope()
	pre := ir.Eq{Left: ir.NumOf(1), Right: ir.NumOf(1)}
	post := ir.FalseLit{}

	ctx := program.NewBuilder("p", scope).Pre(pre).Post(post).Build()
	assert.True(t, ir.Equal(pre, ctx.Pre))
	assert.Equal(t, ir.FalseLit{}, ctx.Post)
}
