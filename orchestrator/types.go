package orchestrator

import "github.com/nanite-lod/clusterlod/mesh"

// ClusterOut is the descriptor for one cluster belonging to a group, as
// handed to OutputFunc. Refined is -1 for leaf clusters, otherwise the
// id of the finer group this cluster was split from.
type ClusterOut struct {
	Refined int
	Bounds  mesh.Bounds
	Indices []uint32
	Vertices int
}

// GroupOut is the descriptor for one emitted group, as handed to
// OutputFunc alongside the list of clusters assigned to it.
type GroupOut struct {
	Depth      int
	Simplified mesh.Bounds
}

// OutputFunc is called exactly once per emitted group, in the order
// groups are formed, and returns an integer group id the builder stores
// as Refined on the clusters produced by re-clusterizing this group's
// simplified geometry. Cluster descriptors are only valid during the call.
type OutputFunc func(group GroupOut, clusters []ClusterOut) int

// Stats summarizes one completed build, returned alongside the group
// count for reporting (e.g. by cmd/clodbuild).
type Stats struct {
	GroupCount       int
	ClusterCount     int
	MaxDepth         int
	TerminalGroups   int
	StalledPartitions int
}
