package ir

// Bool is the closed sum of boolean expressions.
type Bool interface {
	Node
	isBool()
}

type TrueLit struct{ Pos Position }

func (TrueLit) isBool()          {}
func (TrueLit) isNode()          {}
func (t TrueLit) NodePos() Position { return t.Pos }

type FalseLit struct{ Pos Position }

func (FalseLit) isBool()          {}
func (FalseLit) isNode()          {}
func (f FalseLit) NodePos() Position { return f.Pos }

type Not struct {
	Pos Position
	Arg Bool
}

func (Not) isBool()          {}
func (Not) isNode()          {}
func (n Not) NodePos() Position { return n.Pos }

// LogicOp tags the kind of a binary boolean connective.
type LogicOp int

const (
	OpAnd LogicOp = iota
	OpOr
	OpImply
	OpEquiv
)

func (op LogicOp) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpImply:
		return "=>"
	case OpEquiv:
		return "<=>"
	default:
		return "?"
	}
}

// BinBool is And/Or/Imply/Equiv(b, b).
type BinBool struct {
	Pos         Position
	Op          LogicOp
	Left, Right Bool
}

func (BinBool) isBool()          {}
func (BinBool) isNode()          {}
func (b BinBool) NodePos() Position { return b.Pos }

// Eq compares two arithmetic expressions; Nesting is the pointer-depth
// count the type checker uses to enforce matching dereference depth
// (spec.md §3).
type Eq struct {
	Pos         Position
	Left, Right Arith
	Nesting     int
}

func (Eq) isBool()          {}
func (Eq) isNode()          {}
func (e Eq) NodePos() Position { return e.Pos }

// CmpOp tags a relational operator over arithmetic expressions.
type CmpOp int

const (
	OpLt CmpOp = iota
	OpLte
	OpGt
	OpGte
)

func (op CmpOp) String() string {
	switch op {
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	default:
		return "?"
	}
}

// Cmp is Lt/Lte/Gt/Gte(arith, arith).
type Cmp struct {
	Pos         Position
	Op          CmpOp
	Left, Right Arith
}

func (Cmp) isBool()          {}
func (Cmp) isNode()          {}
func (c Cmp) NodePos() Position { return c.Pos }

// BoundVar is a quantifier-bound variable. The engine guarantees freshness
// of bound names relative to program variables (spec.md §3).
type BoundVar struct {
	Pos  Position
	Name string
}

func (BoundVar) isArith()          {}
func (BoundVar) isNode()           {}
func (b BoundVar) NodePos() Position { return b.Pos }

// Forall is universal quantification over the integer sort.
type Forall struct {
	Pos   Position
	Bound BoundVar
	Body  Bool
}

func (Forall) isBool()          {}
func (Forall) isNode()          {}
func (f Forall) NodePos() Position { return f.Pos }
