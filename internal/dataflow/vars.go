package dataflow

import "github.com/tudo-aqua/whilestar/internal/ir"

// directName returns the variable name an Address directly denotes: for a
// bare Variable, its own name; for DeRef/ArrayAccess, the base variable
// the pointer/array itself is held in (the cell actually written or
// whose liveness matters is that base, per the on-memory model of
// spec.md §4.1 where a variable's cells are addressed relative to it).
func directName(a ir.Address) string {
	switch v := a.(type) {
	case ir.Variable:
		return v.Name
	case ir.DeRef:
		return directName(v.Ref)
	case ir.ArrayAccess:
		return directName(v.Base)
	default:
		return ""
	}
}

// addrReads collects every variable read while evaluating addr itself
// (e.g. DeRef's Ref, ArrayAccess's Index), not counting the final target.
// A bare Variable contributes no read: it names a static address, not a
// value the statement loads.
func addrReads(addr ir.Address, out map[string]struct{}) {
	switch v := addr.(type) {
	case ir.Variable:
	case ir.DeRef:
		addrReads(v.Ref, out)
	case ir.ArrayAccess:
		addrReads(v.Base, out)
		arithReads(v.Index, out)
	}
}

func arithReads(a ir.Arith, out map[string]struct{}) {
	switch v := a.(type) {
	case ir.Num, ir.BoundVar:
		// literals and quantifier/extern-bound names are not program
		// variables.
	case ir.BinArith:
		arithReads(v.Left, out)
		arithReads(v.Right, out)
	case ir.UnaryMinus:
		arithReads(v.Arg, out)
	case ir.ValAtAddr:
		addrReads(v.Addr, out)
	case ir.VarAddress:
		out[v.Var.Name] = struct{}{}
	}
}

func boolReads(b ir.Bool, out map[string]struct{}) {
	switch v := b.(type) {
	case ir.TrueLit, ir.FalseLit:
	case ir.Not:
		boolReads(v.Arg, out)
	case ir.BinBool:
		boolReads(v.Left, out)
		boolReads(v.Right, out)
	case ir.Eq:
		arithReads(v.Left, out)
		arithReads(v.Right, out)
	case ir.Cmp:
		arithReads(v.Left, out)
		arithReads(v.Right, out)
	case ir.Forall:
		boolReads(v.Body, out)
	}
}

// stmtReads returns the set of variable names a statement reads — every
// variable whose current value the statement's own execution depends on,
// excluding the statement's own write target(s).
func stmtReads(stmt ir.Statement) map[string]struct{} {
	out := map[string]struct{}{}
	switch s := stmt.(type) {
	case ir.Assign:
		addrReads(s.Lhs, out)
		arithReads(s.Rhs, out)
	case ir.Swap:
		addrReads(s.A, out)
		addrReads(s.B, out)
		out[directName(s.A)] = struct{}{}
		out[directName(s.B)] = struct{}{}
	case ir.If:
		boolReads(s.Cond, out)
	case ir.While:
		boolReads(s.Cond, out)
	case ir.Print:
		for _, arg := range s.Args {
			arithReads(arg, out)
		}
	case ir.Extern:
		addrReads(s.Addr, out)
		arithReads(s.Lower, out)
		arithReads(s.Upper, out)
	case ir.Assert:
		boolReads(s.Cond, out)
	case ir.Fail:
	}
	return out
}

// stmtWrites returns the variable name(s) a statement assigns to.
func stmtWrites(stmt ir.Statement) []string {
	switch s := stmt.(type) {
	case ir.Assign:
		return []string{directName(s.Lhs)}
	case ir.Swap:
		return []string{directName(s.A), directName(s.B)}
	case ir.Extern:
		return []string{directName(s.Addr)}
	default:
		return nil
	}
}
