// Package exec implements the concrete/symbolic small-step executor
// (spec.md §4.1/§4.2, component C5): expression evaluation, statement
// execution, the execution tree, and the path-constraint bookkeeping both
// share.
package exec

import (
	"fmt"
	"math/big"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/memstore"
	"github.com/tudo-aqua/whilestar/internal/types"
)

// ErrorKind enumerates the evaluation faults spec.md §4.1 names.
type ErrorKind string

const (
	VarUndefined   ErrorKind = "VarUndefined"
	InvalidAddress ErrorKind = "InvalidAddress"
	DivisionByZero ErrorKind = "DivisionByZero"
	InternalError  ErrorKind = "InternalError" // Forall/AnyArray/ArrayRead/ArrayWrite reached by the executor
)

// EvalError is a structured error carrying the nested cause and the
// originating expression, per spec.md §4.1.
type EvalError struct {
	Kind   ErrorKind
	Expr   ir.Node
	Cause  *EvalError
}

func (e *EvalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Expr.NodePos(), e.Cause)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Expr.NodePos())
}

func fault(kind ErrorKind, expr ir.Node) *EvalError {
	return &EvalError{Kind: kind, Expr: expr}
}

func wrap(kind ErrorKind, expr ir.Node, cause *EvalError) *EvalError {
	return &EvalError{Kind: kind, Expr: expr, Cause: cause}
}

// AsLiteral reports whether e is (at top level) a concrete integer literal.
func AsLiteral(e ir.Arith) (*big.Int, bool) {
	n, ok := e.(ir.Num)
	if !ok {
		return nil, false
	}
	return n.Val, true
}

// AsBoolLiteral reports whether b is a concrete True/False literal.
func AsBoolLiteral(b ir.Bool) (bool, bool) {
	switch b.(type) {
	case ir.TrueLit:
		return true, true
	case ir.FalseLit:
		return false, true
	default:
		return false, false
	}
}

// EvalAddress evaluates an Address expression down to a concrete cell
// index. Address expressions only ever hold addresses, never values
// (spec.md §3): when an intermediate pointer value is not a concrete
// literal within bounds, evaluation fails with InvalidAddress.
func EvalAddress(scope *types.Scope, mem memstore.Memory, addr ir.Address) (int, *EvalError) {
	switch a := addr.(type) {
	case ir.Variable:
		entry, ok := scope.Lookup(a.Name)
		if !ok {
			return 0, fault(VarUndefined, a)
		}
		return entry.Address, nil

	case ir.DeRef:
		refAddr, err := EvalAddress(scope, mem, a.Ref)
		if err != nil {
			return 0, wrap(InvalidAddress, a, err)
		}
		if !mem.InBounds(refAddr) {
			return 0, fault(InvalidAddress, a)
		}
		val := mem.Read(refAddr)
		lit, ok := AsLiteral(val)
		if !ok {
			return 0, fault(InvalidAddress, a)
		}
		if !lit.IsInt64() {
			return 0, fault(InvalidAddress, a)
		}
		target := int(lit.Int64())
		if target < 0 || target >= mem.Size() {
			return 0, fault(InvalidAddress, a)
		}
		return target, nil

	case ir.ArrayAccess:
		baseAddr, err := EvalAddress(scope, mem, a.Base)
		if err != nil {
			return 0, wrap(InvalidAddress, a, err)
		}
		idxExpr, ierr := EvalArith(scope, mem, false, a.Index)
		if ierr != nil {
			return 0, wrap(InvalidAddress, a, ierr)
		}
		idxLit, ok := AsLiteral(idxExpr)
		if !ok || !idxLit.IsInt64() {
			return 0, fault(InvalidAddress, a)
		}
		target := baseAddr + int(idxLit.Int64())
		if target < 0 || target >= mem.Size() {
			return 0, fault(InvalidAddress, a)
		}
		return target, nil

	default:
		return 0, fault(InternalError, addr)
	}
}

// EvalArith evaluates an arithmetic expression. Under concrete execution
// (symbolic=false) every sub-result must reduce to a literal; under
// symbolic execution a non-literal operand simply produces a symbolic
// result expression without asserting any concrete bit value (spec.md
// §4.1).
func EvalArith(scope *types.Scope, mem memstore.Memory, symbolic bool, e ir.Arith) (ir.Arith, *EvalError) {
	switch a := e.(type) {
	case ir.Num:
		return a, nil

	case ir.BinArith:
		l, lerr := EvalArith(scope, mem, symbolic, a.Left)
		r, rerr := EvalArith(scope, mem, symbolic, a.Right)
		if lerr != nil {
			return nil, lerr
		}
		if rerr != nil {
			return nil, rerr
		}
		lLit, lok := AsLiteral(l)
		rLit, rok := AsLiteral(r)
		if !lok || !rok {
			if !symbolic {
				return nil, fault(InternalError, a)
			}
			return ir.BinArith{Pos: a.Pos, Op: a.Op, Left: l, Right: r}, nil
		}
		if (a.Op == ir.OpDiv || a.Op == ir.OpRem) && rLit.Sign() == 0 {
			return nil, fault(DivisionByZero, a)
		}
		return ir.Num{Val: applyBinOp(a.Op, lLit, rLit)}, nil

	case ir.UnaryMinus:
		v, err := EvalArith(scope, mem, symbolic, a.Arg)
		if err != nil {
			return nil, err
		}
		lit, ok := AsLiteral(v)
		if !ok {
			return ir.UnaryMinus{Pos: a.Pos, Arg: v}, nil
		}
		return ir.Num{Val: new(big.Int).Neg(lit)}, nil

	case ir.ValAtAddr:
		addr, err := EvalAddress(scope, mem, a.Addr)
		if err != nil {
			return nil, err
		}
		if !mem.InBounds(addr) {
			return nil, fault(InvalidAddress, a)
		}
		return mem.Read(addr), nil

	case ir.VarAddress:
		addr, err := EvalAddress(scope, mem, a.Var)
		if err != nil {
			return nil, err
		}
		return ir.Num{Val: big.NewInt(int64(addr))}, nil

	case ir.BoundVar, ir.ArrayRead:
		return nil, fault(InternalError, e)

	default:
		return nil, fault(InternalError, e)
	}
}

func applyBinOp(op ir.BinOp, l, r *big.Int) *big.Int {
	res := new(big.Int)
	switch op {
	case ir.OpAdd:
		res.Add(l, r)
	case ir.OpSub:
		res.Sub(l, r)
	case ir.OpMul:
		res.Mul(l, r)
	case ir.OpDiv:
		res.Quo(l, r) // truncating towards zero, per spec.md §4.1
	case ir.OpRem:
		res.Rem(l, r)
	}
	return res
}

// EvalBool evaluates a boolean expression. Connectives evaluate both sides
// unconditionally for error-reporting fidelity, surfacing the first error
// encountered (spec.md §4.1).
func EvalBool(scope *types.Scope, mem memstore.Memory, symbolic bool, b ir.Bool) (ir.Bool, *EvalError) {
	switch v := b.(type) {
	case ir.TrueLit, ir.FalseLit:
		return v, nil

	case ir.Not:
		inner, err := EvalBool(scope, mem, symbolic, v.Arg)
		if err != nil {
			return nil, err
		}
		if lit, ok := AsBoolLiteral(inner); ok {
			return boolLit(!lit), nil
		}
		return ir.Not{Pos: v.Pos, Arg: inner}, nil

	case ir.BinBool:
		l, lerr := EvalBool(scope, mem, symbolic, v.Left)
		r, rerr := EvalBool(scope, mem, symbolic, v.Right)
		if lerr != nil {
			return nil, lerr
		}
		if rerr != nil {
			return nil, rerr
		}
		lLit, lok := AsBoolLiteral(l)
		rLit, rok := AsBoolLiteral(r)
		if !lok || !rok {
			if !symbolic {
				return nil, fault(InternalError, v)
			}
			return ir.BinBool{Pos: v.Pos, Op: v.Op, Left: l, Right: r}, nil
		}
		return boolLit(applyLogicOp(v.Op, lLit, rLit)), nil

	case ir.Eq:
		l, lerr := EvalArith(scope, mem, symbolic, v.Left)
		r, rerr := EvalArith(scope, mem, symbolic, v.Right)
		if lerr != nil {
			return nil, lerr
		}
		if rerr != nil {
			return nil, rerr
		}
		lLit, lok := AsLiteral(l)
		rLit, rok := AsLiteral(r)
		if !lok || !rok {
			if !symbolic {
				return nil, fault(InternalError, v)
			}
			return ir.Eq{Pos: v.Pos, Nesting: v.Nesting, Left: l, Right: r}, nil
		}
		return boolLit(lLit.Cmp(rLit) == 0), nil

	case ir.Cmp:
		l, lerr := EvalArith(scope, mem, symbolic, v.Left)
		r, rerr := EvalArith(scope, mem, symbolic, v.Right)
		if lerr != nil {
			return nil, lerr
		}
		if rerr != nil {
			return nil, rerr
		}
		lLit, lok := AsLiteral(l)
		rLit, rok := AsLiteral(r)
		if !lok || !rok {
			if !symbolic {
				return nil, fault(InternalError, v)
			}
			return ir.Cmp{Pos: v.Pos, Op: v.Op, Left: l, Right: r}, nil
		}
		return boolLit(applyCmp(v.Op, lLit, rLit)), nil

	case ir.Forall:
		return nil, fault(InternalError, v)

	default:
		return nil, fault(InternalError, b)
	}
}

func boolLit(v bool) ir.Bool {
	if v {
		return ir.TrueLit{}
	}
	return ir.FalseLit{}
}

func applyLogicOp(op ir.LogicOp, l, r bool) bool {
	switch op {
	case ir.OpAnd:
		return l && r
	case ir.OpOr:
		return l || r
	case ir.OpImply:
		return !l || r
	case ir.OpEquiv:
		return l == r
	default:
		return false
	}
}

func applyCmp(op ir.CmpOp, l, r *big.Int) bool {
	c := l.Cmp(r)
	switch op {
	case ir.OpLt:
		return c < 0
	case ir.OpLte:
		return c <= 0
	case ir.OpGt:
		return c > 0
	case ir.OpGte:
		return c >= 0
	default:
		return false
	}
}
