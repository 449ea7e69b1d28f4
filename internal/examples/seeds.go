// Package examples builds the seed scenarios of spec.md §6 as
// program.Context values, since parsing whilestar source text is an
// explicit non-goal (spec.md §3): every scenario here is assembled
// directly from the IR via internal/program.Builder, the same way the
// CLI's --example flag and the test suite construct programs.
package examples

import (
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/program"
	"github.com/tudo-aqua/whilestar/internal/types"
)

func val(name string) ir.Arith { return ir.ValAtAddr{Addr: ir.Variable{Name: name}} }
func addr(name string) ir.Address { return ir.Variable{Name: name} }

// GaussSum is spec.md §6 scenario 1: extern n 0..100; i := 0; sum := 0;
// while (i<n) invariant(sum = i*(i+1)/2 and not(n<i)) { i:=i+1; sum:=sum+i;
// assert(i<=n) }; assert(n=i); postcondition sum = n*(n+1)/2.
//
// The literal WPC rules (spec.md §4.4) emit five entailments for this
// program, not the four spec.md §6 names: the program-entry VC, the
// loop-entry and loop-exit VCs, and one VC per assertion — and the
// program contains two assertions (`i<=n` inside the loop, `n=i` after it),
// for 2 + 1 (entry) + 2 (loop) = 5. See DESIGN.md's Open Questions for
// why the extra assertion VC is kept rather than folded away.
func GaussSum() *program.Context {
	scope := types.NewScope()
	scope.DeclareScalar("n", types.IntType{})
	scope.DeclareScalar("i", types.IntType{})
	scope.DeclareScalar("sum", types.IntType{})

	invariant := ir.BinBool{
		Op: ir.OpAnd,
		Left: ir.Eq{
			Left: val("sum"),
			Right: ir.BinArith{
				Op:   ir.OpDiv,
				Left: ir.BinArith{Op: ir.OpMul, Left: val("i"), Right: ir.BinArith{Op: ir.OpAdd, Left: val("i"), Right: ir.NumOf(1)}},
				Right: ir.NumOf(2),
			},
		},
		Right: ir.Not{Arg: ir.Cmp{Op: ir.OpLt, Left: val("n"), Right: val("i")}},
	}

	loop := ir.While{
		Cond:      ir.Cmp{Op: ir.OpLt, Left: val("i"), Right: val("n")},
		Invariant: invariant,
		Body: ir.NewSequence(
			ir.Assign{Lhs: addr("i"), Rhs: ir.BinArith{Op: ir.OpAdd, Left: val("i"), Right: ir.NumOf(1)}},
			ir.Assign{Lhs: addr("sum"), Rhs: ir.BinArith{Op: ir.OpAdd, Left: val("sum"), Right: val("i")}},
			ir.Assert{Cond: ir.Cmp{Op: ir.OpLte, Left: val("i"), Right: val("n")}},
		),
	}

	pre := ir.BinBool{
		Op:   ir.OpAnd,
		Left: ir.Eq{Left: val("n"), Right: ir.NumOf(0)},
		Right: ir.BinBool{
			Op:   ir.OpAnd,
			Left: ir.Eq{Left: val("i"), Right: ir.NumOf(0)},
			Right: ir.Eq{Left: val("sum"), Right: ir.NumOf(1)},
		},
	}
	post := ir.Eq{
		Left: val("sum"),
		Right: ir.BinArith{
			Op:   ir.OpDiv,
			Left: ir.BinArith{Op: ir.OpMul, Left: val("n"), Right: ir.BinArith{Op: ir.OpAdd, Left: val("n"), Right: ir.NumOf(1)}},
			Right: ir.NumOf(2),
		},
	}

	b := program.NewBuilder("gauss-sum", scope).Pre(pre).Post(post)
	b.Stmt(ir.Extern{Addr: addr("n"), Lower: ir.NumOf(0), Upper: ir.NumOf(100)})
	b.Stmt(ir.Assign{Lhs: addr("i"), Rhs: ir.NumOf(0)})
	b.Stmt(ir.Assign{Lhs: addr("sum"), Rhs: ir.NumOf(0)})
	b.Stmt(loop)
	b.Stmt(ir.Assert{Cond: ir.Eq{Left: val("n"), Right: val("i")}})
	return b.Build()
}

// arrayVal reads array element name[index].
func arrayVal(name string, index int64) ir.Arith {
	return ir.ValAtAddr{Addr: ir.ArrayAccess{Base: addr(name), Index: ir.NumOf(index)}}
}

func arrayAddr(name string, index int64) ir.Address {
	return ir.ArrayAccess{Base: addr(name), Index: ir.NumOf(index)}
}

// SortOfThree is spec.md §6 scenario 2: an array of 3 integers, sorted by
// a fixed compare-and-swap network (two comparisons, a third pass to fix
// the worst case), discharging three adjacent-ordering assertions. A
// sorting *network* rather than spec.md's "double loop" phrasing is a
// deliberate simplification recorded in DESIGN.md: it exercises the same
// array/swap/if constructs with no loop invariant to get wrong.
func SortOfThree() *program.Context {
	scope := types.NewScope()
	scope.DeclareArray("a", types.IntType{}, 3)

	compareSwap := func(i, j int64) ir.Statement {
		return ir.If{
			Cond: ir.Cmp{Op: ir.OpGt, Left: arrayVal("a", i), Right: arrayVal("a", j)},
			Then: ir.NewSequence(ir.Swap{A: arrayAddr("a", i), B: arrayAddr("a", j)}),
			Else: ir.NewSequence(),
		}
	}

	b := program.NewBuilder("sort-of-three", scope)
	b.Stmt(compareSwap(0, 1))
	b.Stmt(compareSwap(1, 2))
	b.Stmt(compareSwap(0, 1))
	b.Stmt(ir.Assert{Cond: ir.Cmp{Op: ir.OpLte, Left: arrayVal("a", 0), Right: arrayVal("a", 1)}})
	b.Stmt(ir.Assert{Cond: ir.Cmp{Op: ir.OpLte, Left: arrayVal("a", 1), Right: arrayVal("a", 2)}})
	b.Stmt(ir.Assert{Cond: ir.Cmp{Op: ir.OpLte, Left: arrayVal("a", 0), Right: arrayVal("a", 2)}})
	return b.Build()
}

// FailPath is spec.md §6 scenario 3: if (true) { fail "x"; } else { };
// — a BMC run at bound >= 1 must find a counterexample.
func FailPath() *program.Context {
	scope := types.NewScope()
	b := program.NewBuilder("fail-path", scope)
	b.Stmt(ir.If{
		Cond: ir.TrueLit{},
		Then: ir.NewSequence(ir.Fail{Message: "x"}),
		Else: ir.NewSequence(),
	})
	return b.Build()
}

// BoundedHavocSafe is spec.md §6 scenario 4's safe variant: extern x
// 0..5; assert(x<10) — every havoc value satisfies the assertion.
func BoundedHavocSafe() *program.Context {
	scope := types.NewScope()
	scope.DeclareScalar("x", types.IntType{})
	b := program.NewBuilder("bounded-havoc-safe", scope)
	b.Stmt(ir.Extern{Addr: addr("x"), Lower: ir.NumOf(0), Upper: ir.NumOf(5)})
	b.Stmt(ir.Assert{Cond: ir.Cmp{Op: ir.OpLt, Left: val("x"), Right: ir.NumOf(10)}})
	return b.Build()
}

// BoundedHavocUnsafe is scenario 4's unsafe variant: widening the havoc
// range to 0..20 against the same assertion must yield a counterexample
// with x >= 10.
func BoundedHavocUnsafe() *program.Context {
	scope := types.NewScope()
	scope.DeclareScalar("x", types.IntType{})
	b := program.NewBuilder("bounded-havoc-unsafe", scope)
	b.Stmt(ir.Extern{Addr: addr("x"), Lower: ir.NumOf(0), Upper: ir.NumOf(20)})
	b.Stmt(ir.Assert{Cond: ir.Cmp{Op: ir.OpLt, Left: val("x"), Right: ir.NumOf(10)}})
	return b.Build()
}

// LiveVariablesScenario is spec.md §6 scenario 5: x := 10; y := 20; z :=
// x + k; extern z 1..100; while (x>0) { x := x-1; }; y := z + k; — the
// live-at-entry set of the final assignment must include z and k, not y.
// k is modeled as a free (undeclared-initial) scalar, matching the
// program fragment's own implicit free variable.
func LiveVariablesScenario() *program.Context {
	scope := types.NewScope()
	scope.DeclareScalar("x", types.IntType{})
	scope.DeclareScalar("y", types.IntType{})
	scope.DeclareScalar("z", types.IntType{})
	scope.DeclareScalar("k", types.IntType{})

	b := program.NewBuilder("live-variables", scope)
	b.Stmt(ir.Assign{Lhs: addr("x"), Rhs: ir.NumOf(10)})
	b.Stmt(ir.Assign{Lhs: addr("y"), Rhs: ir.NumOf(20)})
	b.Stmt(ir.Assign{Lhs: addr("z"), Rhs: ir.BinArith{Op: ir.OpAdd, Left: val("x"), Right: val("k")}})
	b.Stmt(ir.Extern{Addr: addr("z"), Lower: ir.NumOf(1), Upper: ir.NumOf(100)})
	b.Stmt(ir.While{
		Cond:      ir.Cmp{Op: ir.OpGt, Left: val("x"), Right: ir.NumOf(0)},
		Invariant: ir.Cmp{Op: ir.OpGte, Left: val("x"), Right: ir.NumOf(0)},
		Body: ir.NewSequence(ir.Assign{
			Lhs: addr("x"),
			Rhs: ir.BinArith{Op: ir.OpSub, Left: val("x"), Right: ir.NumOf(1)},
		}),
	})
	b.Stmt(ir.Assign{Lhs: addr("y"), Rhs: ir.BinArith{Op: ir.OpAdd, Left: val("z"), Right: val("k")}})
	return b.Build()
}

// ReachabilityScenario is spec.md §6 scenario 6: fail "x"; x := 1; — the
// second statement must be reported unreachable.
func ReachabilityScenario() *program.Context {
	scope := types.NewScope()
	scope.DeclareScalar("x", types.IntType{})
	b := program.NewBuilder("reachability", scope)
	b.Stmt(ir.Fail{Message: "x"})
	b.Stmt(ir.Assign{Lhs: addr("x"), Rhs: ir.NumOf(1)})
	return b.Build()
}

// All lists every seed scenario by name, for the CLI's --example flag and
// the benchmark harness's default corpus.
func All() map[string]*program.Context {
	return map[string]*program.Context{
		"gauss-sum":            GaussSum(),
		"sort-of-three":        SortOfThree(),
		"fail-path":            FailPath(),
		"bounded-havoc-safe":   BoundedHavocSafe(),
		"bounded-havoc-unsafe": BoundedHavocUnsafe(),
		"live-variables":       LiveVariablesScenario(),
		"reachability":         ReachabilityScenario(),
	}
}
