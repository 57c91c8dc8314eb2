package meshopt

import "github.com/nanite-lod/clusterlod/localindex"

// buildState accumulates the scratch buffers shared by every meshlet
// produced from one clusterization call: a flat local-vertex array and a
// flat per-triangle local-index array, addressed by Meshlet offsets —
// the same layout meshopt_Meshlet uses, so clusterizer can expand
// meshletVertices[meshletTriangles[...]] into global indices uniformly
// regardless of which builder produced them.
type buildState struct {
	vertices  []uint32
	triangles []byte
	meshlets  []Meshlet
}

// triAdjacency maps each vertex to the triangles (by triangle index,
// i.e. indices[3*t:3*t+3]) that reference it — shared-vertex adjacency,
// the same connectivity notion the Partitioner uses (spec.md §4.3).
func triAdjacency(indices []uint32, triCount int) map[uint32][]int {
	adj := make(map[uint32][]int, triCount*3)
	for t := 0; t < triCount; t++ {
		for k := 0; k < 3; k++ {
			v := indices[t*3+k]
			adj[v] = append(adj[v], t)
		}
	}
	return adj
}

// growMeshlet greedily grows one meshlet starting at seed triangle t0,
// consuming unassigned triangles in score order until MaxVertices or
// MaxTriangles is reached or no eligible candidate remains. score is
// recomputed against the growing cluster each time a candidate is
// considered, so it can express either connectivity-driven (Flex) or
// locality-driven (Spatial) preference.
func growMeshlet(indices []uint32, adj map[uint32][]int, assigned []bool, t0 int, maxVertices, maxTriangles int, score func(localVerts map[uint32]int, t int) float32) (localVerts []uint32, tris []int) {
	localVertIdx := make(map[uint32]int, maxVertices)
	var local []uint32

	addTriVerts := func(t int) int {
		added := 0
		for k := 0; k < 3; k++ {
			v := indices[t*3+k]
			if _, ok := localVertIdx[v]; !ok {
				localVertIdx[v] = len(local)
				local = append(local, v)
				added++
			}
		}
		return added
	}

	assigned[t0] = true
	addTriVerts(t0)
	tris = append(tris, t0)

	frontier := make(map[int]struct{})
	addFrontier := func(t int) {
		for k := 0; k < 3; k++ {
			for _, cand := range adj[indices[t*3+k]] {
				if !assigned[cand] {
					frontier[cand] = struct{}{}
				}
			}
		}
	}
	addFrontier(t0)

	for len(tris) < maxTriangles && len(frontier) > 0 {
		// pick the best-scoring eligible candidate
		best := -1
		bestScore := float32(-1e30)

		for t := range frontier {
			newVerts := 0
			for k := 0; k < 3; k++ {
				if _, ok := localVertIdx[indices[t*3+k]]; !ok {
					newVerts++
				}
			}
			if len(local)+newVerts > maxVertices {
				continue
			}
			s := score(localVertIdx, t)
			if s > bestScore {
				bestScore = s
				best = t
			}
		}

		if best < 0 {
			break // every remaining candidate would overflow MaxVertices
		}

		delete(frontier, best)
		assigned[best] = true
		addTriVerts(best)
		tris = append(tris, best)
		addFrontier(best)
	}

	return local, tris
}

// finalizeMeshlet appends one grown meshlet's triangles to the shared
// scratch buffers in local-index form and records its Meshlet descriptor.
// The local table is built with localindex.BuildLocal, the same
// direct-mapped-cache technique the original clodLocalIndices routine
// uses, rather than a bare map lookup.
func (bs *buildState) finalizeMeshlet(indices []uint32, tris []int) {
	global := make([]uint32, len(tris)*3)
	for i, t := range tris {
		global[i*3+0] = indices[t*3+0]
		global[i*3+1] = indices[t*3+1]
		global[i*3+2] = indices[t*3+2]
	}

	local, localTris := localindex.BuildLocal(global)

	vOff := len(bs.vertices)
	tOff := len(bs.triangles)
	bs.vertices = append(bs.vertices, local...)
	bs.triangles = append(bs.triangles, localTris...)

	bs.meshlets = append(bs.meshlets, Meshlet{
		VertexOffset:   vOff,
		TriangleOffset: tOff,
		VertexCount:    len(local),
		TriangleCount:  len(tris),
	})
}

// seedOrder returns triangle indices in a stable order favoring spatial
// locality: sorted by their centroid's Morton code. Using the same
// locality-aware seed order for both builders keeps clusters contiguous
// in the common case and only the growth heuristic differs between them.
func seedOrder(indices []uint32, positions []float32, stride, triCount int) []int {
	centroids := make([][3]float32, triCount)
	for t := 0; t < triCount; t++ {
		var c [3]float32
		for k := 0; k < 3; k++ {
			p := positions
			o := int(indices[t*3+k]) * stride
			c[0] += p[o]
			c[1] += p[o+1]
			c[2] += p[o+2]
		}
		centroids[t] = [3]float32{c[0] / 3, c[1] / 3, c[2] / 3}
	}
	remap := SpatialSortRemap(centroids)

	order := make([]int, triCount)
	for t, newIdx := range remap {
		order[newIdx] = t
	}
	return order
}

// BuildMeshletsFlex partitions indices into clusters using
// connectivity-aware growth: each meshlet greedily absorbs the adjacent
// unassigned triangle sharing the most vertices with the cluster so far,
// splitting off a new meshlet once growth stalls. splitFactor rescales
// each candidate's score, but for any splitFactor > -1 the score still
// rises with the shared-vertex count, so it does not change which
// candidate is picked: a meshlet always grows until MaxVertices or
// MaxTriangles is hit or no adjacent candidate fits, and splitFactor
// does not cause earlier splits.
func BuildMeshletsFlex(indices []uint32, positions []float32, posStride, maxVertices, minTriangles, maxTriangles int, splitFactor float32) (meshletVertices []uint32, meshletTriangles []byte, meshlets []Meshlet) {
	triCount := len(indices) / 3
	if triCount == 0 {
		return nil, nil, nil
	}

	adj := triAdjacency(indices, triCount)
	assigned := make([]bool, triCount)
	order := seedOrder(indices, positions, posStride, triCount)

	var bs buildState
	for _, seed := range order {
		if assigned[seed] {
			continue
		}

		score := func(localVerts map[uint32]int, t int) float32 {
			shared := 0
			for k := 0; k < 3; k++ {
				if _, ok := localVerts[indices[t*3+k]]; ok {
					shared++
				}
			}
			// favor high-overlap candidates; splitFactor widens the score
			// gap between high- and low-overlap ones without reordering them
			return float32(shared) - splitFactor*float32(3-shared)
		}

		_, tris := growMeshlet(indices, adj, assigned, seed, maxVertices, maxTriangles, score)
		_ = minTriangles // soft hint only: the backend this models doesn't guarantee a floor either
		bs.finalizeMeshlet(indices, tris)
	}

	return bs.vertices, bs.triangles, bs.meshlets
}

// BuildMeshletsSpatial partitions indices into clusters favoring uniform
// spatial radius: each meshlet grows by preferring the adjacent
// unassigned triangle closest to the cluster's running centroid.
// fillWeight trades off shape uniformity (0) against using up all
// MaxVertices before starting a new cluster (1).
func BuildMeshletsSpatial(indices []uint32, positions []float32, posStride, vertexCount, maxVertices, minTriangles, maxTriangles int, fillWeight float32) (meshletVertices []uint32, meshletTriangles []byte, meshlets []Meshlet) {
	triCount := len(indices) / 3
	if triCount == 0 {
		return nil, nil, nil
	}

	adj := triAdjacency(indices, triCount)
	assigned := make([]bool, triCount)
	order := seedOrder(indices, positions, posStride, triCount)

	centroid := func(t int) [3]float32 {
		var c [3]float32
		for k := 0; k < 3; k++ {
			o := int(indices[t*3+k]) * posStride
			c[0] += positions[o]
			c[1] += positions[o+1]
			c[2] += positions[o+2]
		}
		return [3]float32{c[0] / 3, c[1] / 3, c[2] / 3}
	}

	var bs buildState
	for _, seed := range order {
		if assigned[seed] {
			continue
		}

		running := centroid(seed)

		score := func(localVerts map[uint32]int, t int) float32 {
			c := centroid(t)
			dx, dy, dz := c[0]-running[0], c[1]-running[1], c[2]-running[2]
			d := dx*dx + dy*dy + dz*dz
			newVerts := 0
			for k := 0; k < 3; k++ {
				if _, ok := localVerts[indices[t*3+k]]; !ok {
					newVerts++
				}
			}
			// closer candidates score higher; fillWeight rewards reusing
			// existing vertices (smaller newVerts) more as it approaches 1
			return -d - fillWeight*float32(newVerts)
		}

		// running is the centroid of the cluster's vertices; it is
		// refreshed only when the cluster has gained vertices, which
		// localVerts ids (assigned in insertion order) reveal
		var sum [3]float32
		counted := 0
		_, tris := growMeshlet(indices, adj, assigned, seed, maxVertices, maxTriangles, func(lv map[uint32]int, t int) float32 {
			if len(lv) != counted {
				for v, li := range lv {
					if li >= counted {
						o := int(v) * posStride
						sum[0], sum[1], sum[2] = sum[0]+positions[o], sum[1]+positions[o+1], sum[2]+positions[o+2]
					}
				}
				counted = len(lv)
				running = [3]float32{sum[0] / float32(counted), sum[1] / float32(counted), sum[2] / float32(counted)}
			}
			return score(lv, t)
		})
		_ = minTriangles
		_ = vertexCount
		bs.finalizeMeshlet(indices, tris)
	}

	return bs.vertices, bs.triangles, bs.meshlets
}

// OptimizeMeshlet reorders a meshlet's local triangle list in place to
// improve post-transform vertex-cache locality: a greedy pass that picks
// the next triangle with the most vertices already used by earlier
// emitted triangles (ties go to the lowest triangle index), the same
// family of heuristic as classic Tipsify/vertex-cache optimizers.
func OptimizeMeshlet(vertices []uint32, triangles []byte, triangleCount, vertexCount int) {
	if triangleCount <= 1 {
		return
	}

	used := make([]int, vertexCount) // last-use "time" per local vertex, -1 = unused
	for i := range used {
		used[i] = -1
	}

	assigned := make([]bool, triangleCount)
	order := make([]int, 0, triangleCount)

	cur := 0
	for len(order) < triangleCount {
		best := -1
		bestScore := -1
		for t := 0; t < triangleCount; t++ {
			if assigned[t] {
				continue
			}
			score := 0
			for k := 0; k < 3; k++ {
				if used[triangles[t*3+k]] >= 0 {
					score++
				}
			}
			if score > bestScore {
				bestScore = score
				best = t
			}
		}
		if best < 0 {
			best = cur
			for assigned[best] {
				best++
			}
		}

		assigned[best] = true
		order = append(order, best)
		for k := 0; k < 3; k++ {
			used[triangles[best*3+k]] = len(order)
		}
		cur = best
	}

	reordered := make([]byte, triangleCount*3)
	for i, t := range order {
		copy(reordered[i*3:i*3+3], triangles[t*3:t*3+3])
	}
	copy(triangles[:triangleCount*3], reordered)
}
