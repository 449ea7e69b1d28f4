package smt

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"github.com/tudo-aqua/whilestar/internal/ir"
)

// translator holds the per-query symbol tables so repeated references to
// the same name (loc, M_0, a declared extern, ...) resolve to the same Z3
// constant within one formula (spec.md §4.7 translation rules).
type translator struct {
	ctx       *z3.Context
	intConsts map[string]z3.Int
	arrConsts map[string]z3.Array
	bound     map[string]z3.Int // Forall-bound variables currently in scope
}

func newTranslator(ctx *z3.Context) *translator {
	return &translator{
		ctx:       ctx,
		intConsts: map[string]z3.Int{},
		arrConsts: map[string]z3.Array{},
		bound:     map[string]z3.Int{},
	}
}

func (t *translator) intConst(name string) z3.Int {
	if c, ok := t.bound[name]; ok {
		return c
	}
	if c, ok := t.intConsts[name]; ok {
		return c
	}
	c := t.ctx.IntConst(name)
	t.intConsts[name] = c
	return c
}

func (t *translator) arrConst(name string) z3.Array {
	if c, ok := t.arrConsts[name]; ok {
		return c
	}
	c := t.ctx.ArrayConst(name, t.ctx.IntSort(), t.ctx.IntSort())
	t.arrConsts[name] = c
	return c
}

func arrName(a ir.Arr) (string, error) {
	switch v := a.(type) {
	case ir.AnyArray:
		if v.Suffix == "" {
			return "M", nil
		}
		return "M_" + v.Suffix, nil
	case ir.AnyArrayPrimed:
		return "M_prime", nil
	default:
		return "", fmt.Errorf("smt: %T is not a declarable array constant", a)
	}
}

// arith translates an arithmetic expression. ValAtAddr(Variable v)
// declares a constant `v : Int` (spec.md §4.7); by the time a formula
// reaches the facade it has already been through tsys's on-memory
// rewriting or the executor's direct evaluation, so ValAtAddr(Variable) is
// the only address form this layer still needs to handle.
func (t *translator) arith(a ir.Arith) (z3.Int, error) {
	switch v := a.(type) {
	case ir.Num:
		return t.ctx.FromBigInt(v.Val, t.ctx.IntSort()).(z3.Int), nil

	case ir.BoundVar:
		return t.intConst(v.Name), nil

	case ir.BinArith:
		l, err := t.arith(v.Left)
		if err != nil {
			return z3.Int{}, err
		}
		r, err := t.arith(v.Right)
		if err != nil {
			return z3.Int{}, err
		}
		switch v.Op {
		case ir.OpAdd:
			return l.Add(r), nil
		case ir.OpSub:
			return l.Sub(r), nil
		case ir.OpMul:
			return l.Mul(r), nil
		case ir.OpDiv:
			return l.Div(r), nil
		case ir.OpRem:
			return l.Rem(r), nil
		default:
			return z3.Int{}, fmt.Errorf("smt: unknown binary operator %v", v.Op)
		}

	case ir.UnaryMinus:
		inner, err := t.arith(v.Arg)
		if err != nil {
			return z3.Int{}, err
		}
		return inner.Neg(), nil

	case ir.ValAtAddr:
		variable, ok := v.Addr.(ir.Variable)
		if !ok {
			return z3.Int{}, fmt.Errorf("smt: ValAtAddr(%T) reached the facade untranslated", v.Addr)
		}
		return t.intConst(variable.Name), nil

	case ir.VarAddress:
		return z3.Int{}, fmt.Errorf("smt: VarAddress reached the facade untranslated")

	case ir.ArrayRead:
		name, err := arrName(v.Array)
		if err != nil {
			return z3.Int{}, err
		}
		idx, err := t.arith(v.Index)
		if err != nil {
			return z3.Int{}, err
		}
		return t.arrConst(name).Select(idx).(z3.Int), nil

	default:
		return z3.Int{}, fmt.Errorf("smt: unsupported arithmetic expression %T", a)
	}
}

// arr translates an array-valued expression (ArrayWrite/AnyArray/
// AnyArrayPrimed) to its Z3 array-sorted term.
func (t *translator) arr(a ir.Arr) (z3.Array, error) {
	switch v := a.(type) {
	case ir.AnyArray, ir.AnyArrayPrimed:
		name, err := arrName(v)
		if err != nil {
			return z3.Array{}, err
		}
		return t.arrConst(name), nil
	case ir.ArrayWrite:
		base, err := t.arr(v.Array)
		if err != nil {
			return z3.Array{}, err
		}
		idx, err := t.arith(v.Index)
		if err != nil {
			return z3.Array{}, err
		}
		elem, err := t.arith(v.Elem)
		if err != nil {
			return z3.Array{}, err
		}
		return base.Store(idx, elem), nil
	default:
		return z3.Array{}, fmt.Errorf("smt: unsupported array expression %T", a)
	}
}

// bool translates a boolean expression, per spec.md §4.7's translation
// rules: True/False/Not/And/Or/Imply/Equiv/Eq/Lt/Lte/Gt/Gte map to the
// corresponding Z3 theory operations; Forall to universal quantification.
func (t *translator) bool(b ir.Bool) (z3.Bool, error) {
	switch v := b.(type) {
	case ir.TrueLit:
		return t.ctx.FromBool(true), nil
	case ir.FalseLit:
		return t.ctx.FromBool(false), nil

	case ir.Not:
		inner, err := t.bool(v.Arg)
		if err != nil {
			return z3.Bool{}, err
		}
		return inner.Not(), nil

	case ir.BinBool:
		l, err := t.bool(v.Left)
		if err != nil {
			return z3.Bool{}, err
		}
		r, err := t.bool(v.Right)
		if err != nil {
			return z3.Bool{}, err
		}
		switch v.Op {
		case ir.OpAnd:
			return l.And(r), nil
		case ir.OpOr:
			return l.Or(r), nil
		case ir.OpImply:
			return l.Implies(r), nil
		case ir.OpEquiv:
			return l.Eq(r), nil
		default:
			return z3.Bool{}, fmt.Errorf("smt: unknown logic operator %v", v.Op)
		}

	case ir.Eq:
		l, err := t.arith(v.Left)
		if err != nil {
			return z3.Bool{}, err
		}
		r, err := t.arith(v.Right)
		if err != nil {
			return z3.Bool{}, err
		}
		return l.Eq(r), nil

	case ir.Cmp:
		l, err := t.arith(v.Left)
		if err != nil {
			return z3.Bool{}, err
		}
		r, err := t.arith(v.Right)
		if err != nil {
			return z3.Bool{}, err
		}
		switch v.Op {
		case ir.OpLt:
			return l.LT(r), nil
		case ir.OpLte:
			return l.LE(r), nil
		case ir.OpGt:
			return l.GT(r), nil
		case ir.OpGte:
			return l.GE(r), nil
		default:
			return z3.Bool{}, fmt.Errorf("smt: unknown comparison operator %v", v.Op)
		}

	case ir.Forall:
		bound := t.ctx.IntConst(v.Bound.Name)
		t.bound[v.Bound.Name] = bound
		body, err := t.bool(v.Body)
		delete(t.bound, v.Bound.Name)
		if err != nil {
			return z3.Bool{}, err
		}
		return t.ctx.ForAll([]z3.Value{bound}, body), nil

	case ir.ArrEq:
		l, err := t.arr(v.Left)
		if err != nil {
			return z3.Bool{}, err
		}
		r, err := t.arr(v.Right)
		if err != nil {
			return z3.Bool{}, err
		}
		return l.Eq(r), nil

	default:
		return z3.Bool{}, fmt.Errorf("smt: unsupported boolean expression %T", b)
	}
}
