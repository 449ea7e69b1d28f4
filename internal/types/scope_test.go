package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/types"
)

// Scalars are assigned sequential addresses of size 1, in declaration
// order, starting at 0.
func TestScopeDeclareScalarAssignsSequentialAddresses(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("x", types.IntType{}))
	assert.NoError(t, scope.DeclareScalar("y", types.IntType{}))

	x, ok := scope.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 0, x.Address)
	assert.Equal(t, 1, x.Size)

	y, ok := scope.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, 1, y.Address)

	assert.Equal(t, 2, scope.Size())
	assert.Equal(t, []string{"x", "y"}, scope.Names())
}

// An array of length n occupies n+1 cells (one base-pointer cell plus n
// data cells), per the memory-model invariant documented on Scope.
func TestScopeDeclareArrayReservesBasePlusLength(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("n", types.IntType{}))
	assert.NoError(t, scope.DeclareArray("a", types.IntType{}, 3))

	a, ok := scope.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 1, a.Address) // after n's single cell
	assert.Equal(t, 4, a.Size)    // 1 base + 3 data cells
	assert.Equal(t, types.PointerType{Inner: types.IntType{}}, a.Type)
	assert.Equal(t, 5, scope.Size())
}

// Redeclaring a name is rejected, and a declaration that fails leaves no
// partial address allocated.
func TestScopeDeclareRejectsDuplicateName(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("x", types.IntType{}))
	err := scope.DeclareScalar("x", types.BoolType{})
	assert.Error(t, err)
	assert.Equal(t, 1, scope.Size())
}

// An array length outside [0,255] is rejected.
func TestScopeDeclareArrayRejectsOutOfBoundsLength(t *testing.T) {
	scope := types.NewScope()
	assert.Error(t, scope.DeclareArray("a", types.IntType{}, 256))
	assert.Error(t, scope.DeclareArray("b", types.IntType{}, -1))
}

// ScalarIntNames only reports scalar int variables, in declaration order,
// excluding bools, units and pointers/arrays.
func TestScopeScalarIntNamesExcludesNonScalarInts(t *testing.T) {
	scope := types.NewScope()
	assert.NoError(t, scope.DeclareScalar("i", types.IntType{}))
	assert.NoError(t, scope.DeclareScalar("done", types.BoolType{}))
	assert.NoError(t, scope.DeclareArray("a", types.IntType{}, 2))
	assert.NoError(t, scope.DeclareScalar("j", types.IntType{}))

	assert.Equal(t, []string{"i", "j"}, scope.ScalarIntNames())
}

func TestTypeCompatibleAndDeref(t *testing.T) {
	assert.True(t, types.Compatible(types.IntType{}, types.IntType{}))
	assert.False(t, types.Compatible(types.IntType{}, types.BoolType{}))

	ptr := types.AddressOf(types.IntType{})
	assert.Equal(t, 1, types.Depth(ptr))
	inner, ok := types.Deref(ptr)
	assert.True(t, ok)
	assert.Equal(t, types.IntType{}, inner)

	_, ok = types.Deref(types.IntType{})
	assert.False(t, ok)
}
