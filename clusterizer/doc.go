// Package clusterizer splits a triangle index buffer into clusters of at
// most Config.MaxTriangles triangles and Config.MaxVertices unique
// vertices, per spec.md §4.1. Two modes are available, selected by
// Config.ClusterSpatial: Spatial clusterization favors uniform cluster
// radius (good for ray-tracing BVH quality); Flex clusterization favors
// connectivity. Config.ClusterSplitFactor is passed to the Flex builder
// but does not change which triangles it groups (see
// meshopt.BuildMeshletsFlex).
package clusterizer
