// Package genmesh procedurally generates a mesh.Mesh for clodbuild's
// demo/benchmark commands, grounded on the grid generator the original
// demo driver used to exercise the builder without needing a model file.
package genmesh

import (
	"math"

	"github.com/nanite-lod/clusterlod/mesh"
)

// Grid builds an n x n grid of quads (2*n*n triangles) spanning
// [0, n] x [0, n] on the XY plane, with a small sinusoidal Z
// displacement so simplification has genuine geometric error to
// report instead of operating on an exactly-planar mesh.
func Grid(n int) *mesh.Mesh {
	if n < 1 {
		n = 1
	}

	verts := (n + 1) * (n + 1)
	positions := make([]float32, verts*3)
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			i := y*(n+1) + x
			fx, fy := float32(x), float32(y)
			positions[i*3+0] = fx
			positions[i*3+1] = fy
			positions[i*3+2] = wave(fx, fy, float32(n))
		}
	}

	indices := make([]uint32, 0, n*n*6)
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

// wave returns a small height displacement, a cheap stand-in for a
// heightmap or sculpted surface detail without pulling in a noise
// library for a CLI demo command.
func wave(x, y, scale float32) float32 {
	if scale <= 0 {
		scale = 1
	}
	u := float64(x/scale) * 2 * math.Pi
	v := float64(y/scale) * 2 * math.Pi
	return float32(0.15 * float64(scale) * math.Sin(u) * math.Sin(v))
}
