package meshopt

// PartitionClusters assigns each of the clusterCount clusters described
// by clusterIndices/clusterCounts (concatenated, remapped triangle
// indices, counts per cluster) to a partition id, targeting
// partitionSize clusters per partition. When positions is non-nil,
// partitioning also considers spatial proximity between cluster
// centroids in addition to shared-vertex connectivity (mirroring
// partition_spatial in spec.md §4.3); otherwise only connectivity is
// used.
//
// The algorithm builds a cluster-adjacency graph (two clusters are
// adjacent if they share a remapped vertex, weighted by how many they
// share) and greedily grows partitions from the lowest-numbered
// unassigned cluster, each step absorbing the adjacent frontier cluster
// with the most shared vertices, the same grow-over-adjacency idiom
// katalvlaran-lvlath's gridgraph.ConnectedComponents uses for contiguous
// region discovery, capped at partitionSize clusters (allowed to
// overshoot by up to 1/3, per spec.md §4.3).
func PartitionClusters(clusterIndices []uint32, clusterCounts []int, positions []float32, posStride int, partitionSize int) (partitionIDs []int, partitionCount int) {
	n := len(clusterCounts)
	if n == 0 {
		return nil, 0
	}

	// Slice clusterIndices per-cluster and build vertex -> cluster membership.
	offsets := make([]int, n+1)
	for i, c := range clusterCounts {
		offsets[i+1] = offsets[i] + c
	}

	vertexClusters := make(map[uint32][]int)
	for i := 0; i < n; i++ {
		for _, v := range clusterIndices[offsets[i]:offsets[i+1]] {
			vertexClusters[v] = append(vertexClusters[v], i)
		}
	}

	// Weighted adjacency: adjacency[i][j] = number of shared remapped vertices.
	adjacency := make([]map[int]int, n)
	for i := range adjacency {
		adjacency[i] = make(map[int]int)
	}
	for _, members := range vertexClusters {
		for _, a := range members {
			for _, b := range members {
				if a != b {
					adjacency[a][b]++
				}
			}
		}
	}

	var centroids [][3]float32
	if positions != nil {
		centroids = make([][3]float32, n)
		for i := 0; i < n; i++ {
			var c [3]float32
			cnt := clusterCounts[i]
			for _, v := range clusterIndices[offsets[i] : offsets[i]+cnt] {
				o := int(v) * posStride
				c[0] += positions[o]
				c[1] += positions[o+1]
				c[2] += positions[o+2]
			}
			if cnt > 0 {
				c[0] /= float32(cnt)
				c[1] /= float32(cnt)
				c[2] /= float32(cnt)
			}
			centroids[i] = c
		}
	}

	maxSize := partitionSize + partitionSize/3
	if maxSize < partitionSize+1 {
		maxSize = partitionSize + 1
	}

	assigned := make([]bool, n)
	ids := make([]int, n)
	part := 0

	for seed := 0; seed < n; seed++ {
		if assigned[seed] {
			continue
		}

		members := []int{seed}
		assigned[seed] = true
		frontier := make(map[int]struct{})
		for nb := range adjacency[seed] {
			if !assigned[nb] {
				frontier[nb] = struct{}{}
			}
		}

		for len(members) < maxSize && len(frontier) > 0 {
			best := -1
			bestScore := float32(-1e30)

			for cand := range frontier {
				score := float32(0)
				for _, m := range members {
					score += float32(adjacency[m][cand])
				}
				if centroids != nil {
					// small spatial tie-break: prefer candidates close to the
					// partition's running centroid when connectivity ties
					var rc [3]float32
					for _, m := range members {
						rc[0] += centroids[m][0]
						rc[1] += centroids[m][1]
						rc[2] += centroids[m][2]
					}
					n := float32(len(members))
					rc[0] /= n
					rc[1] /= n
					rc[2] /= n
					d := dist(rc, centroids[cand])
					score += 1.0 / (1.0 + d)
				}
				if score > bestScore {
					bestScore = score
					best = cand
				}
			}

			if best < 0 || len(members) >= partitionSize && bestScore <= 0 {
				break
			}

			delete(frontier, best)
			assigned[best] = true
			members = append(members, best)
			for nb := range adjacency[best] {
				if !assigned[nb] {
					frontier[nb] = struct{}{}
				}
			}
		}

		for _, m := range members {
			ids[m] = part
		}
		part++
	}

	return ids, part
}
