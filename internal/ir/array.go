package ir

// Arr is the closed sum of array expressions. These are verification-only:
// they never evaluate under concrete or symbolic execution (spec.md §4.1)
// and exist purely so the transition-system encoder and WPC/SMT layers can
// talk about the memory array as a first-class value.
type Arr interface {
	Node
	isArr()
}

// AnyArray denotes the memory array state variable M. Suffix is empty for
// the plain, un-renamed formula; the transition-system encoder's temporal
// renaming (spec.md §4.5 "numberedTransitions"/"zeroedInitial"/
// "numberedInvariant") sets it to the frame index ("0", "1", ... or "k"),
// folding AnyArrayPrimed's M' into a numbered AnyArray at the same time.
type AnyArray struct {
	Pos    Position
	Suffix string
}

func (AnyArray) isArr()          {}
func (AnyArray) isNode()         {}
func (a AnyArray) NodePos() Position { return a.Pos }

// AnyArrayPrimed denotes the post-step memory array (M').
type AnyArrayPrimed struct{ Pos Position }

func (AnyArrayPrimed) isArr()          {}
func (AnyArrayPrimed) isNode()         {}
func (a AnyArrayPrimed) NodePos() Position { return a.Pos }

// ArrayRead is select(array, index).
type ArrayRead struct {
	Pos   Position
	Array Arr
	Index Arith
}

func (ArrayRead) isArith()         {} // usable wherever an integer value is expected
func (ArrayRead) isNode()          {}
func (a ArrayRead) NodePos() Position { return a.Pos }

// ArrayWrite is store(array, index, value); it denotes a new array value.
type ArrayWrite struct {
	Pos         Position
	Array       Arr
	Index, Elem Arith
}

func (ArrayWrite) isArr()          {}
func (ArrayWrite) isNode()         {}
func (a ArrayWrite) NodePos() Position { return a.Pos }

// ArrEq compares two array-valued expressions; the transition-system
// encoder uses it for "memory unchanged" framing (M' = M for variables a
// statement doesn't touch) and for ArrayWrite-chain equalities.
type ArrEq struct {
	Pos         Position
	Left, Right Arr
}

func (ArrEq) isBool()          {}
func (ArrEq) isNode()          {}
func (a ArrEq) NodePos() Position { return a.Pos }
