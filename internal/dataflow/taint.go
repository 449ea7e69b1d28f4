package dataflow

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
)

func taintedFact(name string) string {
	return fmt.Sprintf("Tainted(%s)", name)
}

// Taint runs the forward, may analysis of spec.md §4.8: extern/havoc
// introduces a Tainted(v) fact at its target; assignment propagates
// taint from any variable read on the right-hand side to the
// left-hand-side variable (and kills it otherwise); swap exchanges the
// taint status of the two operands. print is a sink only — it consumes
// facts via TaintedArgs below but does not itself gen or kill any.
func Taint(cfg *CFG, declared []string) []NodeFacts {
	return Solve(cfg, Analysis{
		Dir:  Forward,
		Join: Union,
		Transfer: func(n *Node, in FactSet) (gen, kill FactSet) {
			gen, kill = NewFactSet(), NewFactSet()
			if n.Stmt == nil {
				return
			}
			switch s := n.Stmt.(type) {
			case ir.Extern:
				gen.Add(taintedFact(directName(s.Addr)))

			case ir.Assign:
				target := directName(s.Lhs)
				if anyTainted(in, stmtReads(s)) {
					gen.Add(taintedFact(target))
				} else {
					kill.Add(taintedFact(target))
				}

			case ir.Swap:
				aName, bName := directName(s.A), directName(s.B)
				aTainted := in.Has(taintedFact(aName))
				bTainted := in.Has(taintedFact(bName))
				if bTainted {
					gen.Add(taintedFact(aName))
				} else {
					kill.Add(taintedFact(aName))
				}
				if aTainted {
					gen.Add(taintedFact(bName))
				} else {
					kill.Add(taintedFact(bName))
				}
			}
			return
		},
	})
}

func anyTainted(in FactSet, reads map[string]struct{}) bool {
	for name := range reads {
		if in.Has(taintedFact(name)) {
			return true
		}
	}
	return false
}

// TaintedArgs reports which of a print statement's arguments read a
// tainted variable, given the facts holding on entry to its node — used
// by the CLI's --taint report to flag print statements that leak
// externally-controlled input (SPEC_FULL.md's taint-sink check).
func TaintedArgs(facts []NodeFacts, id NodeID, args []ir.Arith) []bool {
	in := facts[id].In
	out := make([]bool, len(args))
	for i, arg := range args {
		reads := map[string]struct{}{}
		arithReads(arg, reads)
		out[i] = anyTainted(in, reads)
	}
	return out
}
