package orchestrator_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/mesh"
	"github.com/nanite-lod/clusterlod/orchestrator"
)

// gridMesh builds an n x n grid of quads (2*n*n triangles) on the XY plane.
func gridMesh(n int) *mesh.Mesh {
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

	return &mesh.Mesh{
		Indices:        indices,
		VertexCount:    verts,
		Positions:      positions,
		PositionStride: 3,
	}
}

type recordedGroup struct {
	id       int
	group    orchestrator.GroupOut
	clusters []orchestrator.ClusterOut
}

func TestBuildDegenerateMeshEmitsNothing(t *testing.T) {
	m := &mesh.Mesh{PositionStride: 3}
	cfg := mesh.DefaultConfig(64)

	var calls int
	stats, err := orchestrator.Build(context.Background(), cfg, m, func(orchestrator.GroupOut, []orchestrator.ClusterOut) int {
		calls++
		return calls
	})
	require.NoError(t, err)
	require.Zero(t, calls)
	require.Zero(t, stats.GroupCount)
}

func TestBuildEmitsGroupsAndRespectsInvariants(t *testing.T) {
	m := gridMesh(16) // 512 triangles
	cfg := mesh.DefaultConfig(32)
	cfg.SimplifyFallbackSloppy = true

	var groups []recordedGroup
	nextID := 0
	emit := func(g orchestrator.GroupOut, clusters []orchestrator.ClusterOut) int {
		id := nextID
		nextID++
		stored := make([]orchestrator.ClusterOut, len(clusters))
		copy(stored, clusters)
		groups = append(groups, recordedGroup{id: id, group: g, clusters: stored})
		return id
	}

	stats, err := orchestrator.Build(context.Background(), cfg, m, emit)
	require.NoError(t, err)
	require.NotZero(t, stats.GroupCount)
	require.NotEmpty(t, groups)

	byID := make(map[int]recordedGroup, len(groups))
	for _, g := range groups {
		byID[g.id] = g
	}

	for _, g := range groups {
		for _, c := range g.clusters {
			require.Zero(t, len(c.Indices)%3)
			for _, idx := range c.Indices {
				require.Less(t, int(idx), m.VertexCount)
			}
			if c.Refined != -1 {
				parent, ok := byID[c.Refined]
				require.True(t, ok)
				require.LessOrEqual(t, parent.group.Simplified.Error, g.group.Simplified.Error)
				require.True(t, g.group.Simplified.Encloses(parent.group.Simplified))
			}
		}
	}
}

func TestBuildTerminalGroupsHaveInfiniteError(t *testing.T) {
	m := gridMesh(8)
	cfg := mesh.DefaultConfig(32)

	var sawTerminal bool
	emit := func(g orchestrator.GroupOut, clusters []orchestrator.ClusterOut) int {
		if g.Simplified.Terminal() {
			sawTerminal = true
			require.True(t, math.IsInf(float64(g.Simplified.Error), 1))
		}
		return 0
	}

	_, err := orchestrator.Build(context.Background(), cfg, m, emit)
	require.NoError(t, err)
	require.True(t, sawTerminal, "the DAG root must be emitted as a terminal group")
}

func TestBuildImmediateStallWithRatioOne(t *testing.T) {
	m := gridMesh(6)
	cfg := mesh.DefaultConfig(32)
	cfg.SimplifyRatio = 1.0
	cfg.SimplifyThreshold = 1.0

	groupCount := 0
	emit := func(g orchestrator.GroupOut, clusters []orchestrator.ClusterOut) int {
		groupCount++
		require.True(t, g.Simplified.Terminal())
		return groupCount
	}

	_, err := orchestrator.Build(context.Background(), cfg, m, emit)
	require.NoError(t, err)
	require.NotZero(t, groupCount)
}

func TestBuildInvalidConfigReturnsError(t *testing.T) {
	m := gridMesh(2)
	cfg := mesh.DefaultConfig(32)
	cfg.MaxTriangles = 1000 // out of [4, 256]

	_, err := orchestrator.Build(context.Background(), cfg, m, func(orchestrator.GroupOut, []orchestrator.ClusterOut) int { return 0 })
	require.Error(t, err)
}
