package ir

import "math/big"

// Arith is the closed sum of arithmetic expressions. Arithmetic is
// unbounded integer, backed by math/big per spec.md §4.1 ("unbounded
// integer"), the same big-integer approach the teacher uses for its own
// literal parsing.
type Arith interface {
	Node
	isArith()
}

// Num is an integer literal.
type Num struct {
	Pos Position
	Val *big.Int
}

func (Num) isArith()            {}
func (Num) isNode()             {}
func (n Num) NodePos() Position { return n.Pos }

// NumOf is a convenience constructor from an int64.
func NumOf(v int64) Num { return Num{Val: big.NewInt(v)} }

// BinOp tags the kind of a binary arithmetic operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	default:
		return "?"
	}
}

// BinArith is Add/Sub/Mul/Div/Rem(arith, arith).
type BinArith struct {
	Pos         Position
	Op          BinOp
	Left, Right Arith
}

func (BinArith) isArith()          {}
func (BinArith) isNode()           {}
func (b BinArith) NodePos() Position { return b.Pos }

// UnaryMinus negates an arithmetic expression.
type UnaryMinus struct {
	Pos Position
	Arg Arith
}

func (UnaryMinus) isArith()          {}
func (UnaryMinus) isNode()           {}
func (u UnaryMinus) NodePos() Position { return u.Pos }

// ValAtAddr reads the value stored at an address (the memory-model "load").
type ValAtAddr struct {
	Pos  Position
	Addr Address
}

func (ValAtAddr) isArith()          {}
func (ValAtAddr) isNode()           {}
func (v ValAtAddr) NodePos() Position { return v.Pos }

// VarAddress computes the address-of a variable (adds one pointer layer at
// the type level). Not supported in WPC postconditions (spec.md §4.4).
type VarAddress struct {
	Pos Position
	Var Variable
}

func (VarAddress) isArith()          {}
func (VarAddress) isNode()           {}
func (v VarAddress) NodePos() Position { return v.Pos }
