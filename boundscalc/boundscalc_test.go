package boundscalc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/boundscalc"
	"github.com/nanite-lod/clusterlod/mesh"
)

func TestLeafBoundsEnclosesVertices(t *testing.T) {
	positions := []float32{0, 0, 0, 2, 0, 0, 0, 2, 0}
	b := boundscalc.Leaf([]uint32{0, 1, 2}, positions, 3)
	require.Zero(t, b.Error)
	require.Greater(t, b.Radius, float32(0))
}

func TestMergeUsesMaxError(t *testing.T) {
	children := []mesh.Bounds{
		{Center: [3]float32{0, 0, 0}, Radius: 1, Error: 0.1},
		{Center: [3]float32{5, 0, 0}, Radius: 1, Error: 0.4},
		{Center: [3]float32{0, 5, 0}, Radius: 1, Error: 0.2},
	}
	merged := boundscalc.Merge(children)
	require.Equal(t, float32(0.4), merged.Error)

	for _, c := range children {
		require.True(t, merged.Encloses(c))
	}
}

func TestMergeSingleChildIsIdentity(t *testing.T) {
	only := []mesh.Bounds{{Center: [3]float32{1, 2, 3}, Radius: 4, Error: 0.5}}
	merged := boundscalc.Merge(only)
	require.Equal(t, only[0], merged)
}

func TestPropagateNeverDecreasesBelowScaledChild(t *testing.T) {
	merged := mesh.Bounds{Error: 1.0}
	result := boundscalc.Propagate(merged, 0.1, 0.5, 0.2)
	require.Equal(t, float32(0.5)+float32(0.02), result.Error)
}

func TestPropagateSimplifyErrorDominates(t *testing.T) {
	merged := mesh.Bounds{Error: 0.01}
	result := boundscalc.Propagate(merged, 2.0, 0.5, 0.1)
	require.InDelta(t, 2.0+0.2, result.Error, 1e-6)
}

func TestTerminalSetsInfiniteError(t *testing.T) {
	merged := mesh.Bounds{Center: [3]float32{1, 1, 1}, Radius: 2, Error: 0.3}
	term := boundscalc.Terminal(merged)
	require.True(t, term.Terminal())
	require.Equal(t, merged.Center, term.Center)
	require.Equal(t, merged.Radius, term.Radius)
}

func TestPreciseKeepsGroupErrorTighterRadius(t *testing.T) {
	group := mesh.Bounds{Center: [3]float32{0, 0, 0}, Radius: 100, Error: 0.7}
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	precise := boundscalc.Precise([]uint32{0, 1, 2}, positions, 3, group)
	require.Equal(t, group.Error, precise.Error)
	require.Less(t, precise.Radius, group.Radius)
}
