package exec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/tudo-aqua/whilestar/internal/errors"
	"github.com/tudo-aqua/whilestar/internal/ir"
)

// Solver is the feasibility oracle the executor consults for symbolic
// assert/if/while (spec.md §4.2). internal/smt.Facade satisfies it; the
// executor only depends on this narrow interface to keep C5 decoupled from
// the concrete SMT backend (accept interfaces, per the teacher's general
// style of narrow collaborator contracts).
type Solver interface {
	// Sat reports whether the conjunction of constraint is satisfiable.
	Sat(constraint ir.Bool) (bool, error)
}

// Output is the print/println sink print statements write through;
// internal/ioout.Buffer satisfies it.
type Output interface {
	Print(s string)
}

// Executor drives the small-step semantics of spec.md §4.2 either
// concretely or symbolically.
type Executor struct {
	Symbolic bool
	Solver   Solver // required when Symbolic is true
	Input    InputSource
	Out      Output

	externSeq int
}

func (ex *Executor) freshExternName() string {
	ex.externSeq++
	return fmt.Sprintf("extern_%d", ex.externSeq)
}

// runtimeErr builds an errors.RuntimeError of the given kind, position and
// message, used for reporting and for the errored Configuration's fault.
func runtimeErr(kind errors.RuntimeErrorKind, pos ir.Position, message string) *errors.RuntimeError {
	return &errors.RuntimeError{Kind: kind, Position: pos, Message: message}
}

func evalKindToRuntime(k ErrorKind) errors.RuntimeErrorKind {
	switch k {
	case VarUndefined:
		return errors.RuntimeVarUndefined
	case InvalidAddress:
		return errors.RuntimeInvalidAddress
	case DivisionByZero:
		return errors.RuntimeDivisionByZero
	default:
		return errors.RuntimeInvalidAddress
	}
}

func (ex *Executor) faultTransition(cfg Configuration, evalErr *EvalError, rule string) Transition {
	fault := runtimeErr(evalKindToRuntime(evalErr.Kind), evalErr.Expr.NodePos(), evalErr.Error())
	dst := cfg.WithError()
	return Transition{Source: cfg, Destination: dst, Rule: rule, PathConstraint: cfg.PathConstraint, Fault: fault}
}

// Step executes the head statement of cfg.StatementsRemaining, returning
// every successor transition: exactly one for concrete execution, or
// (for if/while under symbolic execution) up to two forked transitions.
// Calling Step on a Terminal configuration returns an error; runtime
// faults of the program itself are reported via Transition.Fault.
func (ex *Executor) Step(cfg Configuration) ([]Transition, error) {
	if cfg.Terminal() {
		return nil, fmt.Errorf("exec: Step called on a terminal configuration")
	}
	stmt := cfg.StatementsRemaining.Head()
	rest := cfg.StatementsRemaining.Tail()

	switch s := stmt.(type) {
	case ir.Assign:
		return ex.stepAssign(cfg, rest, s)
	case ir.Swap:
		return ex.stepSwap(cfg, rest, s)
	case ir.Assert:
		return ex.stepAssert(cfg, rest, s)
	case ir.If:
		return ex.stepIf(cfg, rest, s)
	case ir.While:
		return ex.stepWhile(cfg, s)
	case ir.Print:
		return ex.stepPrint(cfg, rest, s)
	case ir.Extern:
		return ex.stepExtern(cfg, rest, s)
	case ir.Fail:
		return ex.stepFail(cfg, s)
	default:
		return nil, fmt.Errorf("exec: unknown statement %T", stmt)
	}
}

func (ex *Executor) stepAssign(cfg Configuration, rest ir.Sequence, s ir.Assign) ([]Transition, error) {
	addr, aerr := EvalAddress(cfg.Scope, cfg.Memory, s.Lhs)
	if aerr != nil {
		return []Transition{ex.faultTransition(cfg, aerr, "assign")}, nil
	}
	val, verr := EvalArith(cfg.Scope, cfg.Memory, ex.Symbolic, s.Rhs)
	if verr != nil {
		return []Transition{ex.faultTransition(cfg, verr, "assign")}, nil
	}
	dst := Configuration{
		StatementsRemaining: rest,
		Scope:               cfg.Scope,
		Memory:              cfg.Memory.Write(addr, val),
		PathConstraint:      cfg.PathConstraint,
	}
	return []Transition{{Source: cfg, Destination: dst, Rule: "assign", PathConstraint: cfg.PathConstraint}}, nil
}

func (ex *Executor) stepSwap(cfg Configuration, rest ir.Sequence, s ir.Swap) ([]Transition, error) {
	addrA, aerr := EvalAddress(cfg.Scope, cfg.Memory, s.A)
	if aerr != nil {
		return []Transition{ex.faultTransition(cfg, aerr, "swap")}, nil
	}
	addrB, berr := EvalAddress(cfg.Scope, cfg.Memory, s.B)
	if berr != nil {
		return []Transition{ex.faultTransition(cfg, berr, "swap")}, nil
	}
	if !cfg.Memory.InBounds(addrA) || !cfg.Memory.InBounds(addrB) {
		return []Transition{ex.faultTransition(cfg, fault(InvalidAddress, s), "swap")}, nil
	}
	valA, valB := cfg.Memory.Read(addrA), cfg.Memory.Read(addrB)
	mem := cfg.Memory.Write(addrA, valB).Write(addrB, valA)
	dst := Configuration{StatementsRemaining: rest, Scope: cfg.Scope, Memory: mem, PathConstraint: cfg.PathConstraint}
	return []Transition{{Source: cfg, Destination: dst, Rule: "swap", PathConstraint: cfg.PathConstraint}}, nil
}

func (ex *Executor) stepAssert(cfg Configuration, rest ir.Sequence, s ir.Assert) ([]Transition, error) {
	cond, cerr := EvalBool(cfg.Scope, cfg.Memory, ex.Symbolic, s.Cond)
	if cerr != nil {
		return []Transition{ex.faultTransition(cfg, cerr, "assert")}, nil
	}
	if !ex.Symbolic {
		lit, _ := AsBoolLiteral(cond)
		if lit {
			dst := Configuration{StatementsRemaining: rest, Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: cfg.PathConstraint}
			return []Transition{{Source: cfg, Destination: dst, Rule: "assert-true", PathConstraint: cfg.PathConstraint}}, nil
		}
		fault := runtimeErr(errors.RuntimeAssertionFailed, s.Pos, "assertion violated")
		dst := cfg.WithError()
		return []Transition{{Source: cfg, Destination: dst, Rule: "assert-false", PathConstraint: cfg.PathConstraint, Fault: fault}}, nil
	}

	negated := And(cfg.PathConstraint, Not(cond))
	sat, err := ex.Solver.Sat(negated)
	if err != nil {
		return nil, err
	}
	if !sat {
		dst := Configuration{StatementsRemaining: rest, Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: cfg.PathConstraint}
		return []Transition{{Source: cfg, Destination: dst, Rule: "assert-true", PathConstraint: cfg.PathConstraint}}, nil
	}
	fault := runtimeErr(errors.RuntimeAssertionFailed, s.Pos, "assertion violated along a feasible path")
	dst := cfg.WithError()
	return []Transition{{Source: cfg, Destination: dst, Rule: "assert-false", PathConstraint: cfg.PathConstraint, Fault: fault}}, nil
}

func (ex *Executor) stepIf(cfg Configuration, rest ir.Sequence, s ir.If) ([]Transition, error) {
	cond, cerr := EvalBool(cfg.Scope, cfg.Memory, ex.Symbolic, s.Cond)
	if cerr != nil {
		return []Transition{ex.faultTransition(cfg, cerr, "if")}, nil
	}
	if !ex.Symbolic {
		lit, _ := AsBoolLiteral(cond)
		branch := s.Else
		rule := "if-false"
		if lit {
			branch = s.Then
			rule = "if-true"
		}
		dst := Configuration{
			StatementsRemaining: branch.Concat(rest),
			Scope:               cfg.Scope,
			Memory:              cfg.Memory,
			PathConstraint:      cfg.PathConstraint,
		}
		return []Transition{{Source: cfg, Destination: dst, Rule: rule, PathConstraint: cfg.PathConstraint}}, nil
	}

	var out []Transition
	thenPC := And(cfg.PathConstraint, cond)
	if sat, err := ex.Solver.Sat(thenPC); err != nil {
		return nil, err
	} else if sat {
		dst := Configuration{StatementsRemaining: s.Then.Concat(rest), Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: thenPC}
		out = append(out, Transition{Source: cfg, Destination: dst, Rule: "if-true", PathConstraint: thenPC})
	}
	elsePC := And(cfg.PathConstraint, Not(cond))
	if sat, err := ex.Solver.Sat(elsePC); err != nil {
		return nil, err
	} else if sat {
		dst := Configuration{StatementsRemaining: s.Else.Concat(rest), Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: elsePC}
		out = append(out, Transition{Source: cfg, Destination: dst, Rule: "if-false", PathConstraint: elsePC})
	}
	return out, nil
}

// stepWhile implements the four transitions of spec.md §4.2. s is still the
// head of cfg.StatementsRemaining; the unroll rule re-prepends the body in
// front of the (unmodified) remaining statements, so the while node itself
// re-executes and re-checks its guard next step.
func (ex *Executor) stepWhile(cfg Configuration, s ir.While) ([]Transition, error) {
	remainingAfterLoop := cfg.StatementsRemaining.Tail()

	cond, cerr := EvalBool(cfg.Scope, cfg.Memory, ex.Symbolic, s.Cond)
	if cerr != nil {
		return []Transition{ex.faultTransition(cfg, cerr, "while")}, nil
	}

	var invHolds func(pc ir.Bool) (bool, error)
	if s.Invariant == nil {
		invHolds = func(ir.Bool) (bool, error) { return true, nil }
	} else {
		inv, ierr := EvalBool(cfg.Scope, cfg.Memory, ex.Symbolic, s.Invariant)
		if ierr != nil {
			return []Transition{ex.faultTransition(cfg, ierr, "while")}, nil
		}
		invHolds = func(pc ir.Bool) (bool, error) {
			if !ex.Symbolic {
				lit, _ := AsBoolLiteral(inv)
				return lit, nil
			}
			sat, err := ex.Solver.Sat(And(pc, Not(inv)))
			if err != nil {
				return false, err
			}
			return !sat, nil
		}
	}

	if !ex.Symbolic {
		condLit, _ := AsBoolLiteral(cond)
		invOK, err := invHolds(cfg.PathConstraint)
		if err != nil {
			return nil, err
		}
		if !invOK {
			fault := runtimeErr(errors.RuntimeAssertionFailed, s.Pos, "loop invariant violated")
			dst := cfg.WithError()
			return []Transition{{Source: cfg, Destination: dst, Rule: "while-inv-violated", PathConstraint: cfg.PathConstraint, Fault: fault}}, nil
		}
		if condLit {
			dst := Configuration{StatementsRemaining: s.Body.Concat(cfg.StatementsRemaining), Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: cfg.PathConstraint}
			return []Transition{{Source: cfg, Destination: dst, Rule: "while-unroll", PathConstraint: cfg.PathConstraint}}, nil
		}
		dst := Configuration{StatementsRemaining: remainingAfterLoop, Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: cfg.PathConstraint}
		return []Transition{{Source: cfg, Destination: dst, Rule: "while-exit", PathConstraint: cfg.PathConstraint}}, nil
	}

	var out []Transition
	truePC := And(cfg.PathConstraint, cond)
	if sat, err := ex.Solver.Sat(truePC); err != nil {
		return nil, err
	} else if sat {
		invOK, err := invHolds(truePC)
		if err != nil {
			return nil, err
		}
		if invOK {
			dst := Configuration{StatementsRemaining: s.Body.Concat(cfg.StatementsRemaining), Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: truePC}
			out = append(out, Transition{Source: cfg, Destination: dst, Rule: "while-unroll", PathConstraint: truePC})
		} else {
			fault := runtimeErr(errors.RuntimeAssertionFailed, s.Pos, "loop invariant violated along a feasible path")
			dst := cfg.WithError()
			out = append(out, Transition{Source: cfg, Destination: dst, Rule: "while-inv-violated", PathConstraint: truePC, Fault: fault})
		}
	}
	falsePC := And(cfg.PathConstraint, Not(cond))
	if sat, err := ex.Solver.Sat(falsePC); err != nil {
		return nil, err
	} else if sat {
		dst := Configuration{StatementsRemaining: remainingAfterLoop, Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: falsePC}
		out = append(out, Transition{Source: cfg, Destination: dst, Rule: "while-exit", PathConstraint: falsePC})
	}
	return out, nil
}

func (ex *Executor) stepPrint(cfg Configuration, rest ir.Sequence, s ir.Print) ([]Transition, error) {
	parts := make([]string, 0, len(s.Args))
	for _, arg := range s.Args {
		v, err := EvalArith(cfg.Scope, cfg.Memory, ex.Symbolic, arg)
		if err != nil {
			return []Transition{ex.faultTransition(cfg, err, "print")}, nil
		}
		if lit, ok := AsLiteral(v); ok {
			parts = append(parts, lit.String())
		} else {
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	line := s.Message
	if len(parts) > 0 {
		line = fmt.Sprintf("%s [%s]", s.Message, strings.Join(parts, ", "))
	}
	if ex.Out != nil {
		ex.Out.Print(line)
	}
	dst := Configuration{StatementsRemaining: rest, Scope: cfg.Scope, Memory: cfg.Memory, PathConstraint: cfg.PathConstraint}
	return []Transition{{Source: cfg, Output: &line, Destination: dst, Rule: "print", PathConstraint: cfg.PathConstraint}}, nil
}

func (ex *Executor) stepExtern(cfg Configuration, rest ir.Sequence, s ir.Extern) ([]Transition, error) {
	addr, aerr := EvalAddress(cfg.Scope, cfg.Memory, s.Addr)
	if aerr != nil {
		return []Transition{ex.faultTransition(cfg, aerr, "extern")}, nil
	}
	lowerV, lerr := EvalArith(cfg.Scope, cfg.Memory, false, s.Lower)
	upperV, uerr := EvalArith(cfg.Scope, cfg.Memory, false, s.Upper)
	if lerr != nil {
		return []Transition{ex.faultTransition(cfg, lerr, "extern")}, nil
	}
	if uerr != nil {
		return []Transition{ex.faultTransition(cfg, uerr, "extern")}, nil
	}
	lower, _ := AsLiteral(lowerV)
	upper, _ := AsLiteral(upperV)

	if !ex.Symbolic {
		v, err := ex.Input.Next(lower, upper)
		if err != nil {
			return nil, err
		}
		if v.Cmp(lower) < 0 || v.Cmp(upper) > 0 {
			fault := runtimeErr(errors.RuntimeHavocOutOfRange, s.Pos, fmt.Sprintf("havoc input %s out of range [%s,%s]", v, lower, upper))
			dst := cfg.WithError()
			return []Transition{{Source: cfg, Destination: dst, Rule: "extern", PathConstraint: cfg.PathConstraint, Fault: fault, ConsumedInput: v}}, nil
		}
		dst := Configuration{StatementsRemaining: rest, Scope: cfg.Scope, Memory: cfg.Memory.Write(addr, ir.Num{Val: v}), PathConstraint: cfg.PathConstraint}
		return []Transition{{Source: cfg, Destination: dst, Rule: "extern", PathConstraint: cfg.PathConstraint, ConsumedInput: v}}, nil
	}

	name := ex.freshExternName()
	fresh := ir.BoundVar{Name: name}
	upperExclusive := new(big.Int).Add(upper, big.NewInt(1))
	rangeConstraint := And(
		ir.Cmp{Op: ir.OpLte, Left: ir.Num{Val: lower}, Right: fresh},
		ir.Cmp{Op: ir.OpLt, Left: fresh, Right: ir.Num{Val: upperExclusive}},
	)
	dst := Configuration{
		StatementsRemaining: rest,
		Scope:               cfg.Scope,
		Memory:              cfg.Memory.Write(addr, fresh),
		PathConstraint:      And(cfg.PathConstraint, rangeConstraint),
	}
	return []Transition{{Source: cfg, Destination: dst, Rule: "extern", PathConstraint: dst.PathConstraint}}, nil
}

func (ex *Executor) stepFail(cfg Configuration, s ir.Fail) ([]Transition, error) {
	fault := runtimeErr(errors.RuntimeExplicitFail, s.Pos, s.Message)
	dst := cfg.WithError()
	return []Transition{{Source: cfg, Output: &s.Message, Destination: dst, Rule: "fail", PathConstraint: cfg.PathConstraint, Fault: fault}}, nil
}
