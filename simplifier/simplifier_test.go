package simplifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/mesh"
	"github.com/nanite-lod/clusterlod/simplifier"
)

// planeMesh builds an n x n grid of quads on the XY plane, flat enough
// that simplification to any target should reach it with small error.
func planeMesh(n int) *mesh.Mesh {
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

func TestSimplifyAlreadyAtTargetReturnsUnchangedWithZeroError(t *testing.T) {
	m := planeMesh(2)
	cfg := mesh.DefaultConfig(64)
	locks := make([]byte, m.VertexCount)

	triCount := len(m.Indices) / 3
	out, err := simplifier.Simplify(cfg, m, m.Indices, locks, triCount)
	require.Equal(t, m.Indices, out)
	require.Zero(t, err)
}

func TestSimplifyReducesTriangleCount(t *testing.T) {
	m := planeMesh(8) // 128 triangles, flat
	cfg := mesh.DefaultConfig(64)
	cfg.SimplifyFallbackSloppy = true
	locks := make([]byte, m.VertexCount)

	triCountBefore := len(m.Indices) / 3
	out, _ := simplifier.Simplify(cfg, m, m.Indices, locks, triCountBefore/2)
	require.Less(t, len(out)/3, triCountBefore)

	for _, idx := range out {
		require.Less(t, int(idx), m.VertexCount)
	}
}

func TestSimplifyRespectsLockedVertices(t *testing.T) {
	m := planeMesh(4)
	cfg := mesh.DefaultConfig(64)
	locks := make([]byte, m.VertexCount)
	// lock every vertex: no collapse should be possible.
	for i := range locks {
		locks[i] = 1
	}

	triCountBefore := len(m.Indices) / 3
	out, _ := simplifier.Simplify(cfg, m, m.Indices, locks, 1)
	require.Equal(t, triCountBefore, len(out)/3)
}

func TestSimplifySloppyFallbackProducesValidIndices(t *testing.T) {
	m := planeMesh(10)
	cfg := mesh.DefaultConfig(64)
	cfg.SimplifyFallbackSloppy = true
	cfg.SimplifyFallbackPermissive = true
	locks := make([]byte, m.VertexCount)
	// Lock everything so the full/permissive passes can make no
	// progress, forcing the sloppy fallback to run.
	for i := range locks {
		locks[i] = 1
	}

	triCountBefore := len(m.Indices) / 3
	out, _ := simplifier.Simplify(cfg, m, m.Indices, locks, triCountBefore/4)
	require.Zero(t, len(out)%3)
	for _, idx := range out {
		require.Less(t, int(idx), m.VertexCount)
	}
}

func TestSimplifyErrorEdgeLimitClampsError(t *testing.T) {
	m := planeMesh(6)
	cfg := mesh.DefaultConfig(64)
	cfg.SimplifyFallbackSloppy = true
	// unit-quad grid: every triangle has max(minEdge², maxEdge²/4) = 1, so
	// the clamp ceiling is 1 * 1000; the clamp can only lower the error
	cfg.SimplifyErrorEdgeLimit = 1000
	locks := make([]byte, m.VertexCount)

	triCountBefore := len(m.Indices) / 3
	_, err := simplifier.Simplify(cfg, m, m.Indices, locks, triCountBefore/3)
	require.GreaterOrEqual(t, err, float32(0))
	require.LessOrEqual(t, err, float32(1000))
}
