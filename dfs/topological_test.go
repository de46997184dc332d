package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/almanac/core"
	"github.com/katalvlaran/almanac/dfs"
)

// TestTopo_NilGraph verifies that passing a nil graph returns ErrGraphNil.
func TestTopo_NilGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(nil)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

// TestTopo_EmptyGraph covers a graph with no vertices.
func TestTopo_EmptyGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(core.NewGraph())
	assert.NoError(t, err)
	assert.Empty(t, order)
}

// TestTopo_Chain verifies the almanac chain comes out source-first,
// even though the vertices are inserted and named out of order.
func TestTopo_Chain(t *testing.T) {
	g := core.NewGraph(core.WithSingleSuccessor())
	_, _ = g.AddEdge("water", "light")
	_, _ = g.AddEdge("seed", "soil")
	_, _ = g.AddEdge("soil", "fertilizer")
	_, _ = g.AddEdge("fertilizer", "water")
	_, _ = g.AddEdge("light", "location")

	order, err := dfs.TopologicalSort(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"seed", "soil", "fertilizer", "water", "light", "location"}, order)
}

// TestTopo_Cycle ensures a cycle returns ErrCycleDetected.
func TestTopo_Cycle(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B")
	_, _ = g.AddEdge("B", "C")
	_, _ = g.AddEdge("C", "A")

	order, err := dfs.TopologicalSort(g)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)
}

func TestTopo_Cancelled(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.TopologicalSort(g, dfs.WithCancelContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
