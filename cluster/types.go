package cluster

import "github.com/nanite-lod/clusterlod/mesh"

// Cluster is a small patch of triangles, owned exclusively by the
// orchestrator for the lifetime of a build.
type Cluster struct {
	// Vertices is the number of unique vertices this cluster's Indices reference.
	Vertices int

	// Indices addresses the original mesh's vertex buffer, not a local one.
	// len(Indices) is divisible by 3 and bounded by 3*MaxTriangles.
	Indices []uint32

	// Group is the id of the group this cluster belongs to (was merged
	// into for simplification), or -1 while still pending.
	Group int

	// Refined is the id of the more-refined group (more triangles, lower
	// error) this cluster was produced by re-clusterizing, or -1 for
	// original-geometry leaves.
	Refined int

	// Bounds is the current sphere+error bounds: precise geometry bounds
	// for original-geometry leaves, or, for a cluster produced by
	// re-clusterizing a group, that group's merged bounds (see spec.md
	// §4.2). Assigning a cluster to a group does not change it.
	Bounds mesh.Bounds
}

// Leaf reports whether c is an original-geometry leaf cluster.
func (c *Cluster) Leaf() bool { return c.Refined == -1 }

// Pending reports whether c has not yet been assigned to a group.
func (c *Cluster) Pending() bool { return c.Group == -1 }
