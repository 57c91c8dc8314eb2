package orchestrator

import (
	"context"

	"github.com/nanite-lod/clusterlod/boundarylock"
	"github.com/nanite-lod/clusterlod/boundscalc"
	"github.com/nanite-lod/clusterlod/cluster"
	"github.com/nanite-lod/clusterlod/clusterizer"
	"github.com/nanite-lod/clusterlod/internal/meshopt"
	"github.com/nanite-lod/clusterlod/mesh"
	"github.com/nanite-lod/clusterlod/partitioner"
	"github.com/nanite-lod/clusterlod/simplifier"
	"github.com/nanite-lod/clusterlod/tracing"
)

// Build runs the full clusterization/simplification loop over m
// according to cfg, invoking emit once per formed group, and returns
// summary Stats. Returns an error only for a precondition violation in
// cfg or m; a degenerate (zero-triangle) mesh is not an error — it
// simply produces zero clusters and no callback invocations.
func Build(ctx context.Context, cfg mesh.Config, m *mesh.Mesh, emit OutputFunc) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	if err := m.Validate(); err != nil {
		return Stats{}, err
	}

	var stats Stats

	if len(m.Indices) == 0 {
		return stats, nil
	}

	remap := meshopt.GeneratePositionRemap(m.Positions, m.PositionStride, m.VertexCount)
	locks := make([]byte, m.VertexCount)

	if m.AttributeProtectMask != 0 {
		for i := 0; i < m.VertexCount; i++ {
			r := int(remap[i])
			if r == i {
				continue
			}
			ai, ar := m.Attribute(uint32(i)), m.Attribute(uint32(r))
			for bit := uint(0); bit < 32 && int(bit) < len(ai); bit++ {
				if m.AttributeProtectMask&(1<<bit) == 0 {
					continue
				}
				if ai[bit] != ar[bit] {
					locks[i] |= meshopt.LockProtect
					break
				}
			}
		}
	}

	clusters := clusterizer.Clusterize(cfg, m, m.Indices)
	for i := range clusters {
		clusters[i].Bounds = boundscalc.Leaf(clusters[i].Indices, m.Positions, m.PositionStride)
	}

	pending := make([]int, len(clusters))
	for i := range pending {
		pending[i] = i
	}

	const maxStallRetries = 2
	retriesLeft := make(map[int]int)

	depth := 0
	for len(pending) > 1 {
		depthCtx, depthSpan := tracing.StartDepth(ctx, depth, len(pending))

		partitions := partitioner.Partition(cfg, remap, clusters, pending, m.Positions, m.PositionStride)
		boundarylock.Lock(locks, remap, clusters, partitions, m.VertexLock)

		var nextPending []int

		for pi, part := range partitions {
			_, partSpan := tracing.StartPartition(depthCtx, depth, pi, len(part))

			merged := mergeIndices(clusters, part)
			targetTriangles := int(float32(len(merged)/3) * cfg.SimplifyRatio)

			childBounds := make([]mesh.Bounds, len(part))
			for i, id := range part {
				childBounds[i] = clusters[id].Bounds
			}
			mergedBounds := boundscalc.Merge(childBounds)

			simplified, errOut := simplifier.Simplify(cfg, m, merged, locks, targetTriangles)
			// a pass that removed no triangles is stuck whatever the threshold
			stuck := len(simplified) >= len(merged) || float32(len(simplified)) > float32(len(merged))*cfg.SimplifyThreshold

			clusterOuts := outputsFor(cfg, clusters, part, m.Positions, m.PositionStride)

			if stuck {
				stats.StalledPartitions++
				if cfg.RetryStuckPartitions && canRetry(retriesLeft, part, maxStallRetries) {
					// Legacy retry-queue behavior recovered from
					// original_source/demo/clusterlod.cpp: fold the stuck
					// clusters back into the next depth's pending set
					// instead of retiring them as terminal, so a
					// different partition grouping gets another chance.
					nextPending = append(nextPending, part...)
					tracing.RecordPartitionOutcome(partSpan, true, len(simplified)/3, errOut)
					partSpan.End()
					continue
				}

				groupBounds := boundscalc.Terminal(mergedBounds)
				gid := emit(GroupOut{Depth: depth, Simplified: groupBounds}, clusterOuts)
				for _, id := range part {
					clusters[id].Group = gid
				}
				stats.GroupCount++
				stats.TerminalGroups++
				tracing.RecordPartitionOutcome(partSpan, true, len(simplified)/3, errOut)
				partSpan.End()
				continue
			}

			groupBounds := boundscalc.Propagate(mergedBounds, errOut, cfg.SimplifyErrorMergePrevious, cfg.SimplifyErrorMergeAdditive)
			gid := emit(GroupOut{Depth: depth, Simplified: groupBounds}, clusterOuts)
			for _, id := range part {
				clusters[id].Group = gid
			}
			stats.GroupCount++

			newClusters := clusterizer.Clusterize(cfg, m, simplified)
			baseID := len(clusters)
			for i := range newClusters {
				newClusters[i].Refined = gid
				// The group-merged bounds, not a precise per-cluster
				// sphere, feed the next level's Merge: a tighter sphere
				// here would no longer be guaranteed to enclose it
				// (spec.md §4.2). OptimizeBounds only tightens the
				// sphere reported on the emitted ClusterOut, in outputsFor.
				newClusters[i].Bounds = groupBounds
			}
			clusters = append(clusters, newClusters...)
			for i := range newClusters {
				nextPending = append(nextPending, baseID+i)
			}

			tracing.RecordPartitionOutcome(partSpan, false, len(simplified)/3, errOut)
			partSpan.End()
		}

		pending = nextPending
		depth++
		depthSpan.End()
	}

	if len(pending) == 1 {
		id := pending[0]
		groupBounds := boundscalc.Terminal(clusters[id].Bounds)
		gid := emit(GroupOut{Depth: depth, Simplified: groupBounds}, outputsFor(cfg, clusters, pending, m.Positions, m.PositionStride))
		clusters[id].Group = gid
		stats.GroupCount++
		stats.TerminalGroups++
	}

	stats.ClusterCount = len(clusters)
	stats.MaxDepth = depth
	return stats, nil
}

// canRetry reports whether every cluster in part still has stall
// retries remaining, consuming one retry from each if so.
func canRetry(retriesLeft map[int]int, part []int, max int) bool {
	for _, id := range part {
		if _, ok := retriesLeft[id]; !ok {
			retriesLeft[id] = max
		}
		if retriesLeft[id] <= 0 {
			return false
		}
	}
	for _, id := range part {
		retriesLeft[id]--
	}
	return true
}

func mergeIndices(clusters []cluster.Cluster, part []int) []uint32 {
	var merged []uint32
	for _, id := range part {
		merged = append(merged, clusters[id].Indices...)
	}
	return merged
}

// outputsFor builds the ClusterOut descriptors for part. When
// cfg.OptimizeBounds is set, a derived cluster (Refined != -1) gets its
// precise per-cluster sphere recomputed here for the descriptor only,
// matching outputGroup in clusterlod.h: the cluster's own stored Bounds
// stays the coarser group-merged sphere so the next level's Merge still
// encloses it.
func outputsFor(cfg mesh.Config, clusters []cluster.Cluster, part []int, positions []float32, posStride int) []ClusterOut {
	out := make([]ClusterOut, len(part))
	for i, id := range part {
		c := clusters[id]
		bounds := c.Bounds
		if cfg.OptimizeBounds && c.Refined != -1 {
			bounds = boundscalc.Precise(c.Indices, positions, posStride, c.Bounds)
		}
		out[i] = ClusterOut{
			Refined:  c.Refined,
			Bounds:   bounds,
			Indices:  c.Indices,
			Vertices: c.Vertices,
		}
	}
	return out
}
