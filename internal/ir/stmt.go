package ir

// Statement is the closed sum of statements (spec.md §3/C3): assignment,
// swap, if-then-else, while-with-invariant, print, extern (havoc),
// assertion, fail, and sequence.
type Statement interface {
	Node
	isStatement()
}

// Assign is `lhs := rhs`.
type Assign struct {
	Pos      Position
	Lhs      Address
	Rhs      Arith
}

func (Assign) isStatement()         {}
func (Assign) isNode()              {}
func (a Assign) NodePos() Position { return a.Pos }

// Swap is `a and b`, swapping the values at two addresses atomically.
type Swap struct {
	Pos  Position
	A, B Address
}

func (Swap) isStatement()         {}
func (Swap) isNode()              {}
func (s Swap) NodePos() Position { return s.Pos }

// If is `if (cond) { Then } else { Else }`.
type If struct {
	Pos        Position
	Cond       Bool
	Then, Else Sequence
}

func (If) isStatement()         {}
func (If) isNode()              {}
func (i If) NodePos() Position { return i.Pos }

// While is `while (cond) invariant(inv) { Body }`. Invariant may be the nil
// Bool (absent); the reference implementation requires one whenever the
// loop is reached by the inductive checkers or the WPC proof system.
type While struct {
	Pos       Position
	Cond      Bool
	Invariant Bool
	Body      Sequence
}

func (While) isStatement()         {}
func (While) isNode()              {}
func (w While) NodePos() Position { return w.Pos }

// Print evaluates every operand and emits "message [v1, v2, ...]".
type Print struct {
	Pos     Position
	Message string
	Args    []Arith
}

func (Print) isStatement()         {}
func (Print) isNode()              {}
func (p Print) NodePos() Position { return p.Pos }

// Extern is `extern addr lower..upper` (havoc): draws/receives an integer
// in [Lower, Upper] inclusive (encoded as [Lower, Upper+1) per spec.md §4.2).
type Extern struct {
	Pos          Position
	Addr         Address
	Lower, Upper Arith
}

func (Extern) isStatement()         {}
func (Extern) isNode()              {}
func (e Extern) NodePos() Position { return e.Pos }

// Assert is `assert(cond)`.
type Assert struct {
	Pos  Position
	Cond Bool
}

func (Assert) isStatement()         {}
func (Assert) isNode()              {}
func (a Assert) NodePos() Position { return a.Pos }

// Fail is `fail "message"`: an unconditional fatal error.
type Fail struct {
	Pos     Position
	Message string
}

func (Fail) isStatement()         {}
func (Fail) isNode()              {}
func (f Fail) NodePos() Position { return f.Pos }

// Sequence is an ordered, immutable list of statements. head/tail/front/end
// /isExhausted are the required operations (spec.md §3); Sequence values
// are small and copied by value; Tail/Front reslice and Prepend/Concat
// copy into a new slice — no structure is ever mutated in place.
type Sequence struct {
	stmts []Statement
}

// NewSequence builds a Sequence from statements in program order.
func NewSequence(stmts ...Statement) Sequence {
	return Sequence{stmts: stmts}
}

func (s Sequence) isNode() {}

// NodePos returns the position of the first statement, or NoPos if empty.
func (s Sequence) NodePos() Position {
	if s.IsExhausted() {
		return NoPos
	}
	return s.stmts[0].NodePos()
}

// IsExhausted reports whether the sequence has no remaining statements.
func (s Sequence) IsExhausted() bool { return len(s.stmts) == 0 }

// Head returns the first statement. Panics if exhausted.
func (s Sequence) Head() Statement { return s.stmts[0] }

// Tail returns every statement after the first.
func (s Sequence) Tail() Sequence { return Sequence{stmts: s.stmts[1:]} }

// Front returns every statement except the last.
func (s Sequence) Front() Sequence { return Sequence{stmts: s.stmts[:len(s.stmts)-1]} }

// End returns the last statement. Panics if exhausted.
func (s Sequence) End() Statement { return s.stmts[len(s.stmts)-1] }

// Len returns the number of statements remaining.
func (s Sequence) Len() int { return len(s.stmts) }

// Statements exposes the underlying slice for read-only iteration.
func (s Sequence) Statements() []Statement {
	out := make([]Statement, len(s.stmts))
	copy(out, s.stmts)
	return out
}

// Prepend returns a new Sequence with stmt as the new head, without
// mutating s.
func (s Sequence) Prepend(stmt Statement) Sequence {
	out := make([]Statement, 0, len(s.stmts)+1)
	out = append(out, stmt)
	out = append(out, s.stmts...)
	return Sequence{stmts: out}
}

// Concat appends other after s, without mutating either.
func (s Sequence) Concat(other Sequence) Sequence {
	out := make([]Statement, 0, len(s.stmts)+len(other.stmts))
	out = append(out, s.stmts...)
	out = append(out, other.stmts...)
	return Sequence{stmts: out}
}
