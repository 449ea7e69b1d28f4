// Package types implements the source language's type system: a closed sum
// of Int, Bool, Unit and nested Pointer types, plus the scope (symbol table)
// that maps declared names to addresses and sizes in the memory model.
package types

import "fmt"

// Type is the closed sum Int | Bool | Unit | Pointer(Type).
type Type interface {
	String() string
	isType()
}

type IntType struct{}

func (IntType) String() string { return "int" }
func (IntType) isType()        {}

// BoolType is represented on the wire as the 0/1 sentinel integers, but the
// type system still tracks it distinctly for Eq/logical-operator checking.
type BoolType struct{}

func (BoolType) String() string { return "bool" }
func (BoolType) isType()        {}

type UnitType struct{}

func (UnitType) String() string { return "unit" }
func (UnitType) isType()        {}

// PointerType wraps an inner type; repeated wrapping models nested pointers
// (e.g. int** is PointerType{PointerType{IntType{}}}).
type PointerType struct {
	Inner Type
}

func (p PointerType) String() string { return fmt.Sprintf("%s*", p.Inner) }
func (p PointerType) isType()        {}

// Depth returns the pointer nesting depth (0 for a non-pointer type).
func Depth(t Type) int {
	d := 0
	for {
		p, ok := t.(PointerType)
		if !ok {
			return d
		}
		d++
		t = p.Inner
	}
}

// Compatible reports whether two types are structurally equal.
func Compatible(a, b Type) bool {
	switch av := a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case UnitType:
		_, ok := b.(UnitType)
		return ok
	case PointerType:
		bv, ok := b.(PointerType)
		if !ok {
			return false
		}
		return Compatible(av.Inner, bv.Inner)
	default:
		return false
	}
}

// Deref peels one Pointer layer, as required by the DeRef type rule.
func Deref(t Type) (Type, bool) {
	p, ok := t.(PointerType)
	if !ok {
		return nil, false
	}
	return p.Inner, true
}

// AddressOf adds one pointer layer, as required by the VarAddress type rule.
func AddressOf(t Type) Type {
	return PointerType{Inner: t}
}
