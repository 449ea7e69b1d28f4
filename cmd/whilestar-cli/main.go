// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/tudo-aqua/whilestar/internal/check"
	"github.com/tudo-aqua/whilestar/internal/dataflow"
	"github.com/tudo-aqua/whilestar/internal/errors"
	"github.com/tudo-aqua/whilestar/internal/exec"
	"github.com/tudo-aqua/whilestar/internal/examples"
	"github.com/tudo-aqua/whilestar/internal/ioout"
	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/memstore"
	"github.com/tudo-aqua/whilestar/internal/program"
	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
	"github.com/tudo-aqua/whilestar/internal/wpc"
)

func main() {
	var (
		verbose  = flag.Bool("verbose", false, "print a stack trace on internal errors")
		run      = flag.Bool("run", false, "concretely execute the example program")
		proof    = flag.Bool("proof", false, "generate and discharge the program's WPC verification conditions")
		bmc      = flag.Bool("bmc", false, "run bounded model checking")
		kind     = flag.Bool("kind", false, "run k-induction")
		kindBMC  = flag.Bool("kind-bmc", false, "run k-induction combined with BMC")
		kindInv  = flag.Bool("kind-inv", false, "conjoin the loop invariant onto the loop-head transition (tsys.Options.AssumeInvariantAtLoopHead)")
		reach    = flag.Bool("reachability", false, "run the reachability dataflow analysis")
		live     = flag.Bool("liveness", false, "run the live-variables dataflow analysis")
		reaching = flag.Bool("reachingdefinitions", false, "run the reaching-definitions dataflow analysis")
		taint    = flag.Bool("taint", false, "run the taint dataflow analysis")
		example  = flag.String("example", "gauss-sum", "seed scenario to load (see -list)")
		bound    = flag.Int("bound", 5, "bound/kBound for -bmc/-kind/-kind-bmc")
		input    = flag.String("input", "", "comma-separated concrete extern values, in draw order")
		list     = flag.Bool("list", false, "list the available -example scenarios and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *list {
		printExampleList()
		return
	}

	ctx, ok := examples.All()[*example]
	if !ok {
		color.Red("unknown -example %q", *example)
		if suggestion, found := errors.SuggestFlagName(*example, exampleNames()); found {
			color.Yellow("did you mean %q?", suggestion)
		}
		os.Exit(1)
	}

	ran := false
	defer func() {
		if r := recover(); r != nil {
			color.Red("internal error: %v", r)
			if *verbose {
				panic(r)
			}
			os.Exit(1)
		}
	}()

	if *run {
		ran = true
		runConcrete(ctx, *input)
	}
	if *proof {
		ran = true
		runProof(ctx)
	}
	opts := tsys.DefaultOptions()
	opts.AssumeInvariantAtLoopHead = *kindInv

	if *bmc {
		ran = true
		runCheck("bmc", ctx, opts, func(f *smt.Facade, sys tsys.System) result.Result {
			return check.BMC(f, sys, *bound)
		})
	}
	if *kind {
		ran = true
		runCheck("k-induction", ctx, opts, func(f *smt.Facade, sys tsys.System) result.Result {
			return check.KInduction(f, sys, *bound)
		})
	}
	if *kindBMC {
		ran = true
		runCheck("k-induction+bmc", ctx, opts, func(f *smt.Facade, sys tsys.System) result.Result {
			return check.KInductionBMC(f, sys, *bound)
		})
	}
	if *reach {
		ran = true
		runReachability(ctx)
	}
	if *live {
		ran = true
		runLiveness(ctx)
	}
	if *reaching {
		ran = true
		runReachingDefinitions(ctx)
	}
	if *taint {
		ran = true
		runTaint(ctx)
	}

	if !ran {
		flag.Usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "whilestar-cli: verification engine for the whilestar teaching language")
	fmt.Fprintln(os.Stderr, "usage: whilestar-cli [flags]")
	flag.PrintDefaults()
}

func exampleNames() []string {
	names := make([]string, 0, len(examples.All()))
	for name := range examples.All() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printExampleList() {
	for _, name := range exampleNames() {
		fmt.Println(name)
	}
}

// parseInput turns a "-input" flag value into a deterministic
// exec.InputSource, falling back to a seeded random source when empty.
func parseInput(raw string) exec.InputSource {
	if raw == "" {
		return exec.NewRandomInput(1)
	}
	var values []*big.Int
	cur := big.NewInt(0)
	neg := false
	started := false
	flush := func() {
		if started {
			v := new(big.Int).Set(cur)
			if neg {
				v.Neg(v)
			}
			values = append(values, v)
		}
		cur = big.NewInt(0)
		neg = false
		started = false
	}
	for _, r := range raw {
		switch {
		case r == ',':
			flush()
		case r == '-' && !started:
			neg = true
			started = true
		case r >= '0' && r <= '9':
			started = true
			cur.Mul(cur, big.NewInt(10))
			cur.Add(cur, big.NewInt(int64(r-'0')))
		}
	}
	flush()
	return exec.NewFixedInput(values...)
}

func runConcrete(ctx *program.Context, rawInput string) {
	out := ioout.NewBuffer(os.Stdout)
	ex := &exec.Executor{
		Symbolic: false,
		Input:    parseInput(rawInput),
		Out:      out,
	}
	cfg := exec.Configuration{
		StatementsRemaining: ctx.Body,
		Scope:               ctx.Scope,
		Memory:              memstore.New(ctx.Scope.Size()),
		PathConstraint:      ir.TrueLit{},
	}
	for !cfg.Terminal() {
		transitions, err := ex.Step(cfg)
		if err != nil {
			color.Red("execution error: %v", err)
			return
		}
		if len(transitions) == 0 {
			break
		}
		t := transitions[0]
		if t.Fault != nil {
			color.Red("runtime fault: %s", t.Fault.Message)
			return
		}
		cfg = t.Destination
	}
	color.Green("%s: run finished, %d lines printed", ctx.Name, out.Len())
}

func runProof(ctx *program.Context) {
	vcs, err := wpc.GenerateVCs(wpc.Program{Scope: ctx.Scope, Pre: ctx.Pre, Body: ctx.Body, Post: ctx.Post}, false)
	if err != nil {
		color.Red("wpc error: %v", err)
		return
	}
	facade := smt.New()
	allProved := true
	for i, vc := range vcs {
		negated := negate(vc)
		res := facade.Solve(negated)
		switch res.Status {
		case smt.Unsat:
			color.Green("VC %d/%d discharged: %s", i+1, len(vcs), vc.Explanation)
		case smt.Sat:
			allProved = false
			color.Red("VC %d/%d REFUTED (%s): counterexample %v", i+1, len(vcs), vc.Explanation, res.Model)
		default:
			allProved = false
			color.Yellow("VC %d/%d unknown: %s", i+1, len(vcs), vc.Explanation)
		}
	}
	if allProved {
		color.Green("%s: proof complete, %d VCs discharged", ctx.Name, len(vcs))
	} else {
		color.Red("%s: proof incomplete", ctx.Name)
	}
}

// negate builds the VC's discharge obligation A ∧ ¬B (spec.md §4.4): the
// entailment A ⇒ B is discharged exactly when this formula is unsat.
func negate(e wpc.Entailment) ir.Bool {
	return ir.BinBool{Op: ir.OpAnd, Left: e.Left, Right: ir.Not{Arg: e.Right}}
}

func runCheck(label string, ctx *program.Context, opts tsys.Options, run func(*smt.Facade, tsys.System) result.Result) {
	sys, err := tsys.Encode(ctx.Scope, ctx.Body, ctx.Pre, ctx.Post, opts)
	if err != nil {
		color.Red("encode error: %v", err)
		return
	}
	facade := smt.New()
	res := run(facade, sys)
	switch result.Classify(res) {
	case result.ClassSafe:
		color.Green("%s [%s]: %s", ctx.Name, label, res)
	case result.ClassUnsafe:
		color.Red("%s [%s]: %s", ctx.Name, label, res)
	default:
		color.Yellow("%s [%s]: %s", ctx.Name, label, res)
	}
}

func runReachability(ctx *program.Context) {
	cfg := dataflow.Build(ctx.Body)
	facts := dataflow.Reachability(cfg)
	unreachable := 0
	for _, n := range cfg.Nodes {
		if n.Stmt == nil {
			continue
		}
		if !dataflow.IsReachable(facts, n.ID) {
			unreachable++
			color.Yellow("unreachable: %s", n.Stmt.NodePos())
		}
	}
	color.Green("%s [reachability]: %d unreachable statement(s)", ctx.Name, unreachable)
}

func runLiveness(ctx *program.Context) {
	cfg := dataflow.Build(ctx.Body)
	facts := dataflow.LiveVariables(cfg)
	for _, n := range cfg.Nodes {
		if n.Stmt == nil {
			continue
		}
		fmt.Printf("%s: live-in = %v\n", n.Stmt.NodePos(), sortedKeys(facts[n.ID].In))
	}
}

func runReachingDefinitions(ctx *program.Context) {
	cfg := dataflow.Build(ctx.Body)
	facts := dataflow.ReachingDefinitions(cfg, ctx.Scope.Names())
	for _, n := range cfg.Nodes {
		if n.Stmt == nil {
			continue
		}
		fmt.Printf("%s: reaching-in = %v\n", n.Stmt.NodePos(), sortedKeys(facts[n.ID].In))
	}
}

func runTaint(ctx *program.Context) {
	cfg := dataflow.Build(ctx.Body)
	facts := dataflow.Taint(cfg, ctx.Scope.Names())
	tainted := 0
	for _, n := range cfg.Nodes {
		print, ok := n.Stmt.(ir.Print)
		if !ok {
			continue
		}
		flags := dataflow.TaintedArgs(facts, n.ID, print.Args)
		for i, isTainted := range flags {
			if isTainted {
				tainted++
				color.Yellow("%s: print argument %d is tainted by extern input", print.NodePos(), i)
			}
		}
	}
	color.Green("%s [taint]: %d tainted print argument(s)", ctx.Name, tainted)
}

func sortedKeys(s dataflow.FactSet) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
