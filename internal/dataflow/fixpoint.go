package dataflow

// Direction controls which edges the fixpoint iterator follows when
// computing a node's Out (or In, for Backward) confluence value.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Join picks the combination semantics: May analyses (liveness, reaching
// defs, reachability, taint — spec.md §4.8's "may" analyses) union
// incoming facts; a Must analysis would intersect them. The framework
// supports both, though every concrete analysis in this package is May.
type Join int

const (
	Union Join = iota
	Intersect
)

// FactSet is a set of opaque dataflow facts, represented as a string set
// keyed by each fact's own String() so distinct analyses can share the
// same set implementation without a type parameter per analysis.
type FactSet map[string]struct{}

func NewFactSet(facts ...string) FactSet {
	s := make(FactSet, len(facts))
	for _, f := range facts {
		s[f] = struct{}{}
	}
	return s
}

func (s FactSet) Clone() FactSet {
	out := make(FactSet, len(s))
	for f := range s {
		out[f] = struct{}{}
	}
	return out
}

func (s FactSet) Add(f string)    { s[f] = struct{}{} }
func (s FactSet) Remove(f string) { delete(s, f) }
func (s FactSet) Has(f string) bool {
	_, ok := s[f]
	return ok
}

func (s FactSet) Equal(o FactSet) bool {
	if len(s) != len(o) {
		return false
	}
	for f := range s {
		if !o.Has(f) {
			return false
		}
	}
	return true
}

func union(a, b FactSet) FactSet {
	out := a.Clone()
	for f := range b {
		out.Add(f)
	}
	return out
}

func intersect(a, b FactSet) FactSet {
	out := NewFactSet()
	for f := range a {
		if b.Has(f) {
			out.Add(f)
		}
	}
	return out
}

func combine(j Join, a, b FactSet) FactSet {
	if j == Union {
		return union(a, b)
	}
	return intersect(a, b)
}

// Transfer computes a node's Gen/Kill effect: Out = (In \ Kill) ∪ Gen for
// Forward, In = (Out \ Kill) ∪ Gen for Backward.
type Transfer func(n *Node, in FactSet) (gen, kill FactSet)

// Analysis bundles everything the fixpoint iterator needs: direction,
// join semantics, the boundary (entry for Forward, exit for Backward)
// fact set, and the per-node transfer function.
type Analysis struct {
	Dir      Direction
	Join     Join
	Boundary FactSet
	Transfer Transfer
}

// NodeFacts is the solved In/Out pair at one node.
type NodeFacts struct {
	In, Out FactSet
}

// Solve runs the worklist algorithm to a fixpoint (spec.md §4.8: "iterate
// until no node's In/Out changes"). Returns In/Out per node, indexed the
// same as cfg.Nodes.
func Solve(cfg *CFG, a Analysis) []NodeFacts {
	n := len(cfg.Nodes)
	facts := make([]NodeFacts, n)
	for i := range facts {
		facts[i] = NodeFacts{In: NewFactSet(), Out: NewFactSet()}
	}

	boundaryID := cfg.Entry
	if a.Dir == Backward {
		boundaryID = cfg.Exit
	}
	if a.Boundary != nil {
		if a.Dir == Forward {
			facts[boundaryID].In = a.Boundary.Clone()
		} else {
			facts[boundaryID].Out = a.Boundary.Clone()
		}
	}

	worklist := make([]NodeID, n)
	for i := range worklist {
		worklist[i] = NodeID(i)
	}

	inQueue := make([]bool, n)
	for i := range inQueue {
		inQueue[i] = true
	}

	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]
		inQueue[id] = false
		node := cfg.Nodes[id]

		if a.Dir == Forward {
			in := confluence(a.Join, facts, node.Pred, func(f NodeFacts) FactSet { return f.Out })
			if id == boundaryID && a.Boundary != nil {
				in = combine(a.Join, in, a.Boundary)
			}
			gen, kill := a.Transfer(node, in)
			out := applyGenKill(in, gen, kill)
			facts[id].In = in
			if !out.Equal(facts[id].Out) {
				facts[id].Out = out
				for _, succ := range node.Succ {
					if !inQueue[succ] {
						worklist = append(worklist, succ)
						inQueue[succ] = true
					}
				}
			}
		} else {
			out := confluence(a.Join, facts, node.Succ, func(f NodeFacts) FactSet { return f.In })
			if id == boundaryID && a.Boundary != nil {
				out = combine(a.Join, out, a.Boundary)
			}
			gen, kill := a.Transfer(node, out)
			in := applyGenKill(out, gen, kill)
			facts[id].Out = out
			if !in.Equal(facts[id].In) {
				facts[id].In = in
				for _, pred := range node.Pred {
					if !inQueue[pred] {
						worklist = append(worklist, pred)
						inQueue[pred] = true
					}
				}
			}
		}
	}

	return facts
}

func confluence(j Join, facts []NodeFacts, ids []NodeID, pick func(NodeFacts) FactSet) FactSet {
	if len(ids) == 0 {
		return NewFactSet()
	}
	acc := pick(facts[ids[0]]).Clone()
	for _, id := range ids[1:] {
		acc = combine(j, acc, pick(facts[id]))
	}
	return acc
}

func applyGenKill(in, gen, kill FactSet) FactSet {
	out := in.Clone()
	for f := range kill {
		out.Remove(f)
	}
	for f := range gen {
		out.Add(f)
	}
	return out
}
