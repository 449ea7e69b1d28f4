package exec

import (
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/memstore"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// Configuration is the 5-tuple (statements-remaining, scope, memory,
// error-flag, path-constraint) from spec.md §3. It is terminal when
// StatementsRemaining is exhausted or ErrorFlag is set.
type Configuration struct {
	StatementsRemaining ir.Sequence
	Scope               *types.Scope
	Memory              memstore.Memory
	ErrorFlag           bool
	PathConstraint      ir.Bool
}

// Terminal reports whether execution has finished along this path.
func (c Configuration) Terminal() bool {
	return c.StatementsRemaining.IsExhausted() || c.ErrorFlag
}

// WithError returns a copy of c marked as errored, with an empty statement
// tail (spec.md §4.2: "error-flag = true and empty tail").
func (c Configuration) WithError() Configuration {
	return Configuration{
		StatementsRemaining: ir.NewSequence(),
		Scope:               c.Scope,
		Memory:              c.Memory,
		ErrorFlag:           true,
		PathConstraint:      c.PathConstraint,
	}
}

// RefinePC returns a copy of c with the path constraint conjoined with extra.
func (c Configuration) RefinePC(extra ir.Bool) Configuration {
	return Configuration{
		StatementsRemaining: c.StatementsRemaining,
		Scope:               c.Scope,
		Memory:              c.Memory,
		ErrorFlag:           c.ErrorFlag,
		PathConstraint:      And(c.PathConstraint, extra),
	}
}

// And conjoins two boolean expressions, short-circuiting trivially true
// conjuncts so path constraints don't grow needlessly.
func And(a, b ir.Bool) ir.Bool {
	if _, ok := a.(ir.TrueLit); ok {
		return b
	}
	if _, ok := b.(ir.TrueLit); ok {
		return a
	}
	return ir.BinBool{Op: ir.OpAnd, Left: a, Right: b}
}

// Not negates a boolean expression.
func Not(a ir.Bool) ir.Bool {
	return ir.Not{Arg: a}
}
