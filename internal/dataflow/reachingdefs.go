package dataflow

import "fmt"

// writeFact names a reaching-definition fact: "Write(v,node)" — variable v
// was last written at that CFG node (spec.md §4.8).
func writeFact(name string, id NodeID) string {
	return fmt.Sprintf("Write(%s,%d)", name, id)
}

// allDefSites maps each written variable to every node that writes it, so
// a node's Kill set can be "every other definition of the variables this
// node writes."
func allDefSites(cfg *CFG) map[string][]NodeID {
	out := map[string][]NodeID{}
	for _, n := range cfg.Nodes {
		if n.Stmt == nil {
			continue
		}
		for _, name := range stmtWrites(n.Stmt) {
			out[name] = append(out[name], n.ID)
		}
	}
	return out
}

// initFact names the "variable v holds its declaration-time initial
// value, not yet overwritten by any node" fact (spec.md §4.8's Init(v)).
func initFact(name string) string {
	return fmt.Sprintf("Init(%s)", name)
}

// ReachingDefinitions runs the forward, may analysis: Init(v) holds at
// entry for every declared variable, and Write(v,n) is generated at node
// n and kills every other definition (including Init(v)) of the same
// variable.
func ReachingDefinitions(cfg *CFG, declared []string) []NodeFacts {
	defs := allDefSites(cfg)
	boundary := NewFactSet()
	for _, name := range declared {
		boundary.Add(initFact(name))
	}

	return Solve(cfg, Analysis{
		Dir:      Forward,
		Join:     Union,
		Boundary: boundary,
		Transfer: func(n *Node, in FactSet) (gen, kill FactSet) {
			gen, kill = NewFactSet(), NewFactSet()
			if n.Stmt == nil {
				return
			}
			for _, name := range stmtWrites(n.Stmt) {
				kill.Add(initFact(name))
				for _, other := range defs[name] {
					kill.Add(writeFact(name, other))
				}
				gen.Add(writeFact(name, n.ID))
			}
			return
		},
	})
}
