package partitioner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/cluster"
	"github.com/nanite-lod/clusterlod/mesh"
	"github.com/nanite-lod/clusterlod/partitioner"
)

func chainClusters(n int) ([]cluster.Cluster, []float32, []uint32) {
	// n clusters, each a single triangle, chained by sharing one vertex
	// with the next so they form one connected strip.
	positions := make([]float32, 0, (n+2)*3)
	clusters := make([]cluster.Cluster, n)
	vertex := uint32(0)
	for i := 0; i < n; i++ {
		a, b, c := vertex, vertex+1, vertex+2
		positions = append(positions, float32(i), 0, 0, float32(i)+1, 0, 0, float32(i), 1, 0)
		clusters[i] = cluster.Cluster{Vertices: 3, Indices: []uint32{a, b, c}, Group: -1, Refined: -1}
		vertex = c // next triangle shares vertex c
	}
	remap := make([]uint32, len(positions)/3)
	for i := range remap {
		remap[i] = uint32(i)
	}
	return clusters, positions, remap
}

func TestPartitionFastPath(t *testing.T) {
	clusters, _, remap := chainClusters(3)
	cfg := mesh.DefaultConfig(64)
	cfg.PartitionSize = 10

	pending := []int{0, 1, 2}
	parts := partitioner.Partition(cfg, remap, clusters, pending, nil, 3)
	require.Len(t, parts, 1)
	require.ElementsMatch(t, pending, parts[0])
}

func TestPartitionCoversEveryPendingCluster(t *testing.T) {
	clusters, positions, remap := chainClusters(30)
	cfg := mesh.DefaultConfig(64)
	cfg.PartitionSize = 4

	pending := make([]int, 30)
	for i := range pending {
		pending[i] = i
	}

	parts := partitioner.Partition(cfg, remap, clusters, pending, positions, 3)
	require.NotEmpty(t, parts)

	seen := make(map[int]bool)
	for _, p := range parts {
		for _, id := range p {
			require.False(t, seen[id], "cluster %d assigned twice", id)
			seen[id] = true
		}
	}
	require.Len(t, seen, 30)
}

func TestPartitionSpatialOptionDoesNotDropClusters(t *testing.T) {
	clusters, positions, remap := chainClusters(20)
	cfg := mesh.DefaultConfig(64)
	cfg.PartitionSize = 5
	cfg.PartitionSpatial = true

	pending := make([]int, 20)
	for i := range pending {
		pending[i] = i
	}

	parts := partitioner.Partition(cfg, remap, clusters, pending, positions, 3)
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	require.Equal(t, 20, total)
}

func TestPartitionSortReordersWithoutLoss(t *testing.T) {
	clusters, positions, remap := chainClusters(20)
	for i := range clusters {
		clusters[i].Bounds.Center = [3]float32{float32(i), 0, 0}
	}
	cfg := mesh.DefaultConfig(64)
	cfg.PartitionSize = 5
	cfg.PartitionSort = true

	pending := make([]int, 20)
	for i := range pending {
		pending[i] = i
	}

	parts := partitioner.Partition(cfg, remap, clusters, pending, positions, 3)
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	require.Equal(t, 20, total)
}
