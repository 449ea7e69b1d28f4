package dataflow

import "github.com/tudo-aqua/whilestar/internal/ir"

const reachableFact = "Reachable"

// Reachability runs the forward, may analysis of spec.md §4.8: a single
// Reachable fact holds at the entry and propagates along every edge,
// except that a Fail node kills it — nothing after an unconditional
// failure is reachable along that path.
func Reachability(cfg *CFG) []NodeFacts {
	return Solve(cfg, Analysis{
		Dir:      Forward,
		Join:     Union,
		Boundary: NewFactSet(reachableFact),
		Transfer: func(n *Node, in FactSet) (gen, kill FactSet) {
			gen, kill = NewFactSet(), NewFactSet()
			if _, ok := n.Stmt.(ir.Fail); ok {
				kill.Add(reachableFact)
				return
			}
			if in.Has(reachableFact) {
				gen.Add(reachableFact)
			}
			return
		},
	})
}

// IsReachable reports whether node id is reachable on entry.
func IsReachable(facts []NodeFacts, id NodeID) bool {
	return facts[id].In.Has(reachableFact)
}
