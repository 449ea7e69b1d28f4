// Package dataflow implements the monotone dataflow framework of spec.md
// §4.8 (component C10): a CFG built from an ir.Sequence, a generic
// fixpoint iterator parameterized by direction and join operator, and four
// concrete analyses (live variables, reaching definitions, reachability,
// taint) expressed as init/gen/kill descriptors over that framework.
package dataflow

import "github.com/tudo-aqua/whilestar/internal/ir"

// NodeID indexes a CFG node; nodes are numbered in the stable,
// depth-first, insertion order the builder visits statements in, so two
// builds of the same program always number nodes identically.
type NodeID int

// Node is one CFG node: either a single non-control-flow statement, a
// branch node (If's condition) / loop-head node (While's condition) that
// carries its If/While statement and fans control flow out to its
// successors, or a join/exit node with no statement.
type Node struct {
	ID   NodeID
	Stmt ir.Statement // the If/While itself for branch/loop-head nodes; nil for join/exit nodes
	Kind NodeKind

	Succ []NodeID
	Pred []NodeID
}

// NodeKind distinguishes plain statement nodes from the structural nodes
// the builder introduces for if/while fan-out and join points (spec.md
// §4.8: "if introduces a fan-out to Then and Else, rejoining after both;
// while introduces a fan-out to Body and the exit, with Body looping back
// to the condition").
type NodeKind int

const (
	KindStmt NodeKind = iota
	KindIfCond
	KindWhileCond
	KindJoin
	KindExit
)

// CFG is the control-flow graph for one program, plus its designated
// entry and exit nodes.
type CFG struct {
	Nodes      []*Node
	Entry, Exit NodeID
}

func (c *CFG) newNode(stmt ir.Statement, kind NodeKind) NodeID {
	id := NodeID(len(c.Nodes))
	c.Nodes = append(c.Nodes, &Node{ID: id, Stmt: stmt, Kind: kind})
	return id
}

func (c *CFG) link(from, to NodeID) {
	c.Nodes[from].Succ = append(c.Nodes[from].Succ, to)
	c.Nodes[to].Pred = append(c.Nodes[to].Pred, from)
}

// Build constructs a CFG for body, a single designated exit node (every
// control path — including fail and the tail of the program — flows into
// it) per spec.md §4.8.
func Build(body ir.Sequence) *CFG {
	cfg := &CFG{}
	exit := cfg.newNode(nil, KindExit)
	cfg.Exit = exit
	entry := cfg.buildSeq(body, exit)
	cfg.Entry = entry
	return cfg
}

// buildSeq wires body in order, with exitTo as the node execution falls
// through to after the last statement, and returns the entry node id.
func (c *CFG) buildSeq(body ir.Sequence, exitTo NodeID) NodeID {
	if body.IsExhausted() {
		return exitTo
	}
	rest := c.buildSeq(body.Tail(), exitTo)
	return c.buildStmt(body.Head(), rest)
}

// buildStmt wires a single statement with fallsThrough as the node control
// flows to afterward, and returns the id of stmt's own entry node.
func (c *CFG) buildStmt(stmt ir.Statement, fallsThrough NodeID) NodeID {
	switch s := stmt.(type) {
	case ir.If:
		join := c.newNode(nil, KindJoin)
		c.link(join, fallsThrough)
		thenEntry := c.buildSeq(s.Then, join)
		elseEntry := c.buildSeq(s.Else, join)
		cond := c.newNode(s, KindIfCond)
		c.link(cond, thenEntry)
		c.link(cond, elseEntry)
		return cond

	case ir.While:
		cond := c.newNode(s, KindWhileCond)
		bodyEntry := c.buildSeq(s.Body, cond)
		c.link(cond, bodyEntry)
		c.link(cond, fallsThrough)
		return cond

	case ir.Fail:
		node := c.newNode(s, KindStmt)
		c.link(node, c.Exit)
		return node

	default:
		node := c.newNode(s, KindStmt)
		c.link(node, fallsThrough)
		return node
	}
}
