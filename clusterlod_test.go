package clusterlod_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	clusterlod "github.com/nanite-lod/clusterlod"
)

func TestBuildFacadeMatchesOrchestrator(t *testing.T) {
	n := 10
	verts := (n + 1) * (n + 1)
	positions := make([]float32, verts*3)
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			i := y*(n+1) + x
			positions[i*3+0] = float32(x)
			positions[i*3+1] = float32(y)
			positions[i*3+2] = 0
		}
	}
	var indices []uint32
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i0 := uint32(y*(n+1) + x)
			i1 := i0 + 1
			i2 := i0 + uint32(n+1)
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	m := &clusterlod.MeshInput{
		Indices:        indices,
		VertexCount:    verts,
		Positions:      positions,
		PositionStride: 3,
	}

	cfg := clusterlod.DefaultConfig(32)
	groupCount := 0
	stats, err := clusterlod.Build(context.Background(), cfg, m, func(clusterlod.GroupOut, []clusterlod.ClusterOut) int {
		groupCount++
		return groupCount
	})
	require.NoError(t, err)
	require.Equal(t, groupCount, stats.GroupCount)
	require.NotZero(t, stats.ClusterCount)
}
