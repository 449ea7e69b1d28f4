// Package program defines the top-level Context a whilestar program is
// handed around as once parsing has produced one: scope, annotated
// pre/postcondition, and body. Concrete parsing is explicitly out of
// scope (spec.md's Non-goals) — Parser documents the contract a future
// front end would implement, and Builder lets tests and the CLI's seed
// scenarios construct a Context directly from IR values.
package program

import (
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// Context is a fully elaborated program: its symbol table, its annotated
// pre/postcondition, and its statement body (spec.md §3's top-level
// program shape, "pre { body } post").
type Context struct {
	Name string
	Pre  ir.Bool
	Post ir.Bool
	Body ir.Sequence
	Scope *types.Scope
}

// Parser is the contract a concrete whilestar front end (source text to
// Context) would satisfy; this package never implements one, per the
// spec's explicit non-goal on parsing/scanning. It is declared so the
// CLI's dispatch and the checkers above it depend on an interface, not a
// concrete parser, the same "accept interfaces" shape the executor uses
// for its Solver/Output collaborators.
type Parser interface {
	// Parse reads whilestar source text from filename and returns the
	// elaborated Context, or a static error (errors.CompilerError) on a
	// malformed program.
	Parse(filename string, source []byte) (*Context, error)
}

// Builder assembles a Context programmatically — the seed scenarios in
// spec.md §6 and the CLI's --example mode (SPEC_FULL.md) construct
// programs this way, bypassing the (unimplemented) Parser entirely.
type Builder struct {
	scope *types.Scope
	pre   ir.Bool
	post  ir.Bool
	body  []ir.Statement
	name  string
}

// NewBuilder starts a Context builder named name, over scope.
func NewBuilder(name string, scope *types.Scope) *Builder {
	return &Builder{name: name, scope: scope, pre: ir.TrueLit{}, post: ir.TrueLit{}}
}

// Pre sets the program's precondition (default: TrueLit, no assumption).
func (b *Builder) Pre(pre ir.Bool) *Builder { b.pre = pre; return b }

// Post sets the program's postcondition (default: TrueLit, no obligation).
func (b *Builder) Post(post ir.Bool) *Builder { b.post = post; return b }

// Stmt appends one statement to the body, in order.
func (b *Builder) Stmt(s ir.Statement) *Builder {
	b.body = append(b.body, s)
	return b
}

// Build finalizes the Context.
func (b *Builder) Build() *Context {
	return &Context{
		Name:  b.name,
		Pre:   b.pre,
		Post:  b.post,
		Body:  ir.NewSequence(b.body...),
		Scope: b.scope,
	}
}
