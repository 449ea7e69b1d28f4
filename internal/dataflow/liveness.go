package dataflow

// LiveVariables runs the classic backward, may, use-before-def analysis
// (spec.md §4.8): a variable is live entering a node if some path from
// there reads it before it is overwritten. Gen is the node's reads; Kill
// is its writes, since an overwrite before any further read ends that
// variable's liveness along this path.
func LiveVariables(cfg *CFG) []NodeFacts {
	return Solve(cfg, Analysis{
		Dir:  Backward,
		Join: Union,
		Transfer: func(n *Node, out FactSet) (gen, kill FactSet) {
			gen, kill = NewFactSet(), NewFactSet()
			if n.Stmt == nil {
				return
			}
			for name := range stmtReads(n.Stmt) {
				gen.Add(name)
			}
			for _, name := range stmtWrites(n.Stmt) {
				kill.Add(name)
			}
			return
		},
	})
}

// LiveAt reports whether name is live entering node id (i.e. appears in
// its solved In set).
func LiveAt(facts []NodeFacts, id NodeID, name string) bool {
	return facts[id].In.Has(name)
}
