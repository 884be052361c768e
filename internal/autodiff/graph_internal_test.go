package autodiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nexus/internal/backend/cpu"
)

func TestTopoOrder_Cycle(t *testing.T) {
	g := New(cpu.New())
	x, err := g.Leaf(1.0)
	require.NoError(t, err)
	y, err := x.Mul(2)
	require.NoError(t, err)
	z, err := y.Add(1)
	require.NoError(t, err)

	// Operands normally point backwards in the arena; forge a back edge.
	g.records[y.id].operands[0] = z.id

	err = z.Backward()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestTransaction_Rollback(t *testing.T) {
	g := New(cpu.New())
	x, err := g.Leaf([]float64{1, 2, 3})
	require.NoError(t, err)

	_, err = x.Sub([]float64{1, 2})
	require.Error(t, err)
	assert.Len(t, g.records, 1)

	// Released slots are zeroed so they hold no stale arrays.
	spare := g.records[:cap(g.records)][1:4]
	for _, r := range spare {
		assert.Nil(t, r.data)
		assert.Empty(t, r.operands)
	}
}

func TestZeroGrad(t *testing.T) {
	g := New(cpu.New())
	x, err := g.Leaf(3.0)
	require.NoError(t, err)
	y, err := x.Mul(x)
	require.NoError(t, err)
	require.NoError(t, y.Backward())

	for i := range g.records {
		assert.NotNil(t, g.records[i].grad, "record %d", i)
	}
	g.ZeroGrad()
	for i := range g.records {
		assert.Nil(t, g.records[i].grad, "record %d", i)
	}
}
