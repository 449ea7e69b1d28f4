package memstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/memstore"
)

func TestNewMemoryIsZeroFilled(t *testing.T) {
	m := memstore.New(3)
	assert.Equal(t, 3, m.Size())
	for addr := 0; addr < 3; addr++ {
		assert.Equal(t, ir.NumOf(0), m.Read(addr))
	}
}

func TestMemoryInBounds(t *testing.T) {
	m := memstore.New(2)
	assert.True(t, m.InBounds(0))
	assert.True(t, m.InBounds(1))
	assert.False(t, m.InBounds(2))
	assert.False(t, m.InBounds(-1))
}

// Write is persistent: the receiver's own cells are untouched, and the
// returned Memory reflects only the new value at addr.
func TestMemoryWriteIsPersistent(t *testing.T) {
	before := memstore.New(2)
	after := before.Write(1, ir.NumOf(42))

	assert.Equal(t, ir.NumOf(0), before.Read(1), "prior snapshot must not observe the write")
	assert.Equal(t, ir.NumOf(42), after.Read(1))
	assert.Equal(t, ir.NumOf(0), after.Read(0), "unrelated cells are copied unchanged")
}

// A chain of writes against the same base snapshot produces independent
// branches, the property the executor's symbolic fork relies on.
func TestMemoryWriteBranchesIndependently(t *testing.T) {
	base := memstore.New(1).Write(0, ir.NumOf(1))
	left := base.Write(0, ir.NumOf(2))
	right := base.Write(0, ir.NumOf(3))

	assert.Equal(t, ir.NumOf(1), base.Read(0))
	assert.Equal(t, ir.NumOf(2), left.Read(0))
	assert.Equal(t, ir.NumOf(3), right.Read(0))
}
