package partitioner

import (
	"github.com/nanite-lod/clusterlod/cluster"
	"github.com/nanite-lod/clusterlod/internal/meshopt"
	"github.com/nanite-lod/clusterlod/mesh"
)

// Partition groups the pending cluster ids (indices into clusters) into
// partitions of around cfg.PartitionSize clusters each, per spec.md
// §4.3. remap is the position-canonicalization table computed once at
// build start; positions/posStride address the same mesh the clusters'
// indices reference.
//
// Every id in pending appears in exactly one returned partition.
func Partition(cfg mesh.Config, remap []uint32, clusters []cluster.Cluster, pending []int, positions []float32, posStride int) [][]int {
	if len(pending) == 0 {
		return nil
	}
	if len(pending) <= cfg.PartitionSize {
		return [][]int{append([]int(nil), pending...)}
	}

	var concat []uint32
	counts := make([]int, len(pending))
	for i, id := range pending {
		idx := clusters[id].Indices
		counts[i] = len(idx)
		for _, v := range idx {
			concat = append(concat, remap[v])
		}
	}

	var partPositions []float32
	if cfg.PartitionSpatial {
		partPositions = positions
	}

	ids, partitionCount := meshopt.PartitionClusters(concat, counts, partPositions, posStride, cfg.PartitionSize)

	partitions := make([][]int, partitionCount)
	for i, pid := range ids {
		partitions[pid] = append(partitions[pid], pending[i])
	}

	// drop any empty slot left by a partition id the partitioner never assigned
	compact := partitions[:0]
	for _, p := range partitions {
		if len(p) > 0 {
			compact = append(compact, p)
		}
	}
	partitions = compact

	if cfg.PartitionSort {
		partitions = sortPartitions(partitions, clusters)
	}

	return partitions
}

// sortPartitions reorders partitions spatially by a representative
// point (the center of the first cluster's bounds in each partition),
// improving output cache coherence of the emitted group sequence.
func sortPartitions(partitions [][]int, clusters []cluster.Cluster) [][]int {
	points := make([][3]float32, len(partitions))
	for i, p := range partitions {
		points[i] = clusters[p[0]].Bounds.Center
	}

	remap := meshopt.SpatialSortRemap(points)

	reordered := make([][]int, len(partitions))
	for oldPos, newPos := range remap {
		reordered[newPos] = partitions[oldPos]
	}
	return reordered
}
