package clusterizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/clusterizer"
	"github.com/nanite-lod/clusterlod/mesh"
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

func TestClusterizeEmpty(t *testing.T) {
	clusters := clusterizer.Clusterize(mesh.DefaultConfig(64), &mesh.Mesh{PositionStride: 3}, nil)
	require.Empty(t, clusters)
}

func TestClusterizeRespectsSizeBounds(t *testing.T) {
	m := gridMesh(20) // 800 triangles
	cfg := mesh.DefaultConfig(64)

	clusters := clusterizer.Clusterize(cfg, m, m.Indices)
	require.NotEmpty(t, clusters)

	seenTriangles := 0
	for _, c := range clusters {
		require.Zero(t, len(c.Indices)%3)
		triCount := len(c.Indices) / 3
		require.LessOrEqual(t, triCount, cfg.MaxTriangles)
		require.LessOrEqual(t, c.Vertices, cfg.MaxVertices)
		require.Equal(t, -1, c.Group)
		require.Equal(t, -1, c.Refined)
		for _, idx := range c.Indices {
			require.Less(t, int(idx), m.VertexCount)
		}
		seenTriangles += triCount
	}
	require.Equal(t, len(m.Indices)/3, seenTriangles)
}

func TestClusterizeSpatialModeAlsoRespectsBounds(t *testing.T) {
	m := gridMesh(12)
	cfg := mesh.DefaultConfigRT(32)

	clusters := clusterizer.Clusterize(cfg, m, m.Indices)
	require.NotEmpty(t, clusters)
	for _, c := range clusters {
		require.LessOrEqual(t, len(c.Indices)/3, cfg.MaxTriangles)
		require.LessOrEqual(t, c.Vertices, cfg.MaxVertices)
	}
}

func TestClusterizeSingleTriangle(t *testing.T) {
	m := &mesh.Mesh{
		Indices:        []uint32{0, 1, 2},
		VertexCount:    3,
		Positions:      []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		PositionStride: 3,
	}
	clusters := clusterizer.Clusterize(mesh.DefaultConfig(8), m, m.Indices)
	require.Len(t, clusters, 1)
	require.Equal(t, 3, clusters[0].Vertices)
}
