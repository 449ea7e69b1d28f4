package dataflow_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/dataflow"
	"github.com/tudo-aqua/whilestar/internal/ir"
)

func writeFactFor(name string, id dataflow.NodeID) string {
	return fmt.Sprintf("Write(%s,%d)", name, id)
}

func v(name string) ir.Arith { return ir.ValAtAddr{Addr: ir.Variable{Name: name}} }

// x := 1; y := x; print "" (y) — x is dead after the second statement,
// y is live from its use in print back to its own definition.
func TestLiveVariables(t *testing.T) {
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)},
		ir.Assign{Lhs: ir.Variable{Name: "y"}, Rhs: v("x")},
		ir.Print{Message: "y", Args: []ir.Arith{v("y")}},
	)
	cfg := dataflow.Build(body)
	facts := dataflow.LiveVariables(cfg)

	assign1 := cfg.Entry
	assign2 := cfg.Nodes[assign1].Succ[0]
	printNode := cfg.Nodes[assign2].Succ[0]

	assert.False(t, dataflow.LiveAt(facts, assign1, "x"), "x has no live use before its own first definition")
	assert.True(t, dataflow.LiveAt(facts, assign2, "x"), "x is live entering the statement that reads it")
	assert.False(t, dataflow.LiveAt(facts, assign2, "y"), "y is not yet defined entering its own assignment")
	assert.True(t, dataflow.LiveAt(facts, printNode, "y"), "y is live entering the print that reads it")
}

// extern x 0 10; y := x — y becomes tainted because it reads the
// externally-controlled x.
func TestTaintPropagatesThroughAssign(t *testing.T) {
	body := ir.NewSequence(
		ir.Extern{Addr: ir.Variable{Name: "x"}, Lower: ir.NumOf(0), Upper: ir.NumOf(10)},
		ir.Assign{Lhs: ir.Variable{Name: "y"}, Rhs: v("x")},
		ir.Print{Message: "y", Args: []ir.Arith{v("y")}},
	)
	cfg := dataflow.Build(body)
	facts := dataflow.Taint(cfg, []string{"x", "y"})

	externNode := cfg.Entry
	assignNode := cfg.Nodes[externNode].Succ[0]
	printNode := cfg.Nodes[assignNode].Succ[0]

	tainted := dataflow.TaintedArgs(facts, printNode, []ir.Arith{v("y")})
	assert.Equal(t, []bool{true}, tainted)
}

// fail "boom" kills reachability for everything after it; the statement
// textually following a fail has no live predecessor at all, reachable
// or not.
func TestReachabilityKilledByFail(t *testing.T) {
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)},
		ir.Fail{Message: "boom"},
		ir.Assign{Lhs: ir.Variable{Name: "y"}, Rhs: ir.NumOf(2)},
	)
	cfg := dataflow.Build(body)
	facts := dataflow.Reachability(cfg)

	failNode := cfg.Nodes[cfg.Entry].Succ[0]
	assert.True(t, dataflow.IsReachable(facts, failNode))

	var afterFailNode dataflow.NodeID = -1
	for _, n := range cfg.Nodes {
		if assign, ok := n.Stmt.(ir.Assign); ok && assign.Lhs.(ir.Variable).Name == "y" {
			afterFailNode = n.ID
		}
	}
	assert.Len(t, cfg.Nodes[afterFailNode].Pred, 0, "fail severs the node after it from the rest of the graph")
	assert.False(t, dataflow.IsReachable(facts, afterFailNode), "statement after an unconditional fail is unreachable")
	assert.False(t, dataflow.IsReachable(facts, cfg.Exit), "exit is unreachable once every live path has failed")
}

// x := 1; x := 2 — the first write never reaches the node after the
// second, which overwrites it.
func TestReachingDefinitionsKillsPriorWrite(t *testing.T) {
	body := ir.NewSequence(
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(1)},
		ir.Assign{Lhs: ir.Variable{Name: "x"}, Rhs: ir.NumOf(2)},
	)
	cfg := dataflow.Build(body)
	facts := dataflow.ReachingDefinitions(cfg, []string{"x"})

	firstWrite := cfg.Entry
	secondWrite := cfg.Nodes[firstWrite].Succ[0]
	exitNode := cfg.Nodes[secondWrite].Succ[0]

	assert.True(t, facts[exitNode].In.Has(writeFactFor("x", secondWrite)))
	assert.False(t, facts[exitNode].In.Has(writeFactFor("x", firstWrite)))
}
