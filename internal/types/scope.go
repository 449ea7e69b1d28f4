package types

import "fmt"

// Entry is the scope mapping's value: a declared variable's type, its
// address in the memory model, and the number of cells it occupies.
type Entry struct {
	Type    Type
	Address int
	Size    int
}

// Scope is the symbol table: a mapping from variable name (unique per
// program) to {type, address, size}, plus the total allocated size.
//
// Invariants: addresses are non-overlapping; for a declared array of length
// N, Size = N+1 (one base-pointer cell followed by N data cells); scalars
// and pointers have Size = 1; addresses are assigned sequentially in
// declaration order starting at 0.
type Scope struct {
	order   []string
	entries map[string]Entry
	total   int
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{entries: make(map[string]Entry)}
}

// DeclareScalar adds a scalar or pointer variable (size 1) at the next free
// address. Returns an error if the name is already declared.
func (s *Scope) DeclareScalar(name string, t Type) error {
	return s.declare(name, t, 1)
}

// DeclareArray adds a fixed-size array of length n (size n+1: one base
// pointer cell plus n data cells, per the memory-model invariant).
func (s *Scope) DeclareArray(name string, elem Type, n int) error {
	if n < 0 || n > 255 {
		return fmt.Errorf("array %q: length %d out of bounds [0,255]", name, n)
	}
	return s.declare(name, PointerType{Inner: elem}, n+1)
}

func (s *Scope) declare(name string, t Type, size int) error {
	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("variable %q already declared", name)
	}
	s.entries[name] = Entry{Type: t, Address: s.total, Size: size}
	s.order = append(s.order, name)
	s.total += size
	return nil
}

// Lookup returns the entry for name and whether it is declared.
func (s *Scope) Lookup(name string) (Entry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Names returns declared variable names in declaration order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Size returns the total number of memory cells the scope occupies.
func (s *Scope) Size() int {
	return s.total
}

// ScalarIntNames returns the names of scalar (non-array, non-pointer)
// integer variables, in declaration order — used by the WPC precondition
// augmentation (spec.md §4.4, toggle described in SPEC_FULL.md).
func (s *Scope) ScalarIntNames() []string {
	var out []string
	for _, name := range s.order {
		e := s.entries[name]
		if _, ok := e.Type.(IntType); ok && e.Size == 1 {
			out = append(out, name)
		}
	}
	return out
}
