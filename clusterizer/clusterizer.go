package clusterizer

import (
	"github.com/nanite-lod/clusterlod/cluster"
	"github.com/nanite-lod/clusterlod/internal/meshopt"
	"github.com/nanite-lod/clusterlod/mesh"
)

// Clusterize partitions indices into clusters according to cfg, using
// Spatial or Flex meshlet construction (cfg.ClusterSpatial). Every
// returned cluster has Group == -1 and Bounds left at its zero value —
// callers (the orchestrator, via boundscalc) are responsible for filling
// in bounds and Refined. Never fails: a degenerate or empty index buffer
// simply produces zero clusters, per spec.md §4.1.
func Clusterize(cfg mesh.Config, m *mesh.Mesh, indices []uint32) []cluster.Cluster {
	if len(indices) == 0 {
		return nil
	}

	var vertices []uint32
	var triangles []byte
	var meshlets []meshopt.Meshlet

	if cfg.ClusterSpatial {
		vertices, triangles, meshlets = meshopt.BuildMeshletsSpatial(
			indices, m.Positions, m.PositionStride, m.VertexCount,
			cfg.MaxVertices, cfg.MinTriangles, cfg.MaxTriangles, cfg.ClusterFillWeight)
	} else {
		vertices, triangles, meshlets = meshopt.BuildMeshletsFlex(
			indices, m.Positions, m.PositionStride,
			cfg.MaxVertices, cfg.MinTriangles, cfg.MaxTriangles, cfg.ClusterSplitFactor)
	}

	clusters := make([]cluster.Cluster, len(meshlets))
	for i, ml := range meshlets {
		if cfg.OptimizeClusters {
			meshopt.OptimizeMeshlet(vertices[ml.VertexOffset:], triangles[ml.TriangleOffset:], ml.TriangleCount, ml.VertexCount)
		}

		global := make([]uint32, ml.TriangleCount*3)
		for j := 0; j < ml.TriangleCount*3; j++ {
			local := triangles[ml.TriangleOffset+j]
			global[j] = vertices[ml.VertexOffset+int(local)]
		}

		clusters[i] = cluster.Cluster{
			Vertices: ml.VertexCount,
			Indices:  global,
			Group:    -1,
			Refined:  -1,
		}
	}

	return clusters
}
