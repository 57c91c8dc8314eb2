package simplifier

import (
	"math"

	"github.com/nanite-lod/clusterlod/internal/meshopt"
	"github.com/nanite-lod/clusterlod/mesh"
)

// Simplify reduces indices (a concatenated index buffer for one group)
// toward targetTriangles triangles, per spec.md §4.5. locks is the
// full-mesh lock byte array; cfg controls the escalation chain (full →
// permissive fallback → sloppy fallback) and the edge-length error
// floor. Returns a simplified index buffer addressing the same vertex
// buffer as indices, and an absolute error in mesh units. Never fails:
// if every fallback leaves the output above target, the caller treats
// the result as "stuck" by comparing triangle counts itself.
func Simplify(cfg mesh.Config, m *mesh.Mesh, indices []uint32, locks []byte, targetTriangles int) (simplified []uint32, errOut float32) {
	triCount := len(indices) / 3
	if triCount <= targetTriangles {
		out := make([]uint32, len(indices))
		copy(out, indices)
		return out, 0
	}

	permissive := cfg.SimplifyPermissive
	out, err := meshopt.SimplifyWithAttributes(
		indices, m.Positions, m.PositionStride,
		m.Attributes, m.AttributeStride, m.AttributeCount, m.AttributeWeights,
		locks, targetTriangles*3, permissive, cfg.SimplifyRegularize)

	if len(out)/3 > targetTriangles && cfg.SimplifyFallbackPermissive && !permissive {
		out, err = meshopt.SimplifyWithAttributes(
			indices, m.Positions, m.PositionStride,
			m.Attributes, m.AttributeStride, m.AttributeCount, m.AttributeWeights,
			locks, targetTriangles*3, true, cfg.SimplifyRegularize)
	}

	if len(out)/3 > targetTriangles && cfg.SimplifyFallbackSloppy {
		out, err = sloppyFallback(m, indices, locks, targetTriangles, cfg.SimplifyErrorFactorSloppy)
	}

	if cfg.SimplifyErrorEdgeLimit > 0 {
		err = clampToEdgeLimit(indices, m.Positions, m.PositionStride, err, cfg.SimplifyErrorEdgeLimit)
	}

	return out, err
}

// sloppyFallback runs the non-topology-preserving vertex-clustering
// simplifier as a last resort. Sloppy simplification works on a compact
// (densely-indexed) point stream, so this de-indexes the sparse input
// first and translates the clustered result back to original vertex
// ids afterward (spec.md §4.5 step 4).
func sloppyFallback(m *mesh.Mesh, indices []uint32, locks []byte, targetTriangles int, errorFactor float32) ([]uint32, float32) {
	localOf := make(map[uint32]int)
	var original []uint32
	for _, v := range indices {
		if _, ok := localOf[v]; !ok {
			localOf[v] = len(original)
			original = append(original, v)
		}
	}

	compactPositions := make([]float32, len(original)*3)
	compactLocks := make([]byte, len(original))
	for li, v := range original {
		p := m.Position(v)
		compactPositions[li*3+0] = p[0]
		compactPositions[li*3+1] = p[1]
		compactPositions[li*3+2] = p[2]
		if int(v) < len(locks) {
			compactLocks[li] = locks[v]
		}
	}

	localTriangles := make([]uint32, len(indices))
	for i, v := range indices {
		localTriangles[i] = uint32(localOf[v])
	}

	triCount := len(indices) / 3
	assign, relErr := meshopt.SimplifySloppy(compactPositions, 3, compactLocks, triCount, targetTriangles)
	if assign == nil {
		out := make([]uint32, len(indices))
		copy(out, indices)
		return out, 0
	}

	numBuckets := 0
	for _, b := range assign {
		if int(b)+1 > numBuckets {
			numBuckets = int(b) + 1
		}
	}
	bucketRep := make([]uint32, numBuckets)
	bucketSet := make([]bool, numBuckets)
	for li, b := range assign {
		if !bucketSet[b] {
			bucketRep[b] = original[li]
			bucketSet[b] = true
		}
	}

	out := make([]uint32, 0, len(localTriangles))
	for t := 0; t < triCount; t++ {
		a := assign[localTriangles[t*3+0]]
		b := assign[localTriangles[t*3+1]]
		c := assign[localTriangles[t*3+2]]
		if a == b || b == c || a == c {
			continue
		}
		out = append(out, bucketRep[a], bucketRep[b], bucketRep[c])
	}

	scale := meshopt.SimplifyScale(compactPositions, 3, len(original))
	return out, relErr * scale * errorFactor
}

// clampToEdgeLimit enforces the edge-length error ceiling of spec.md
// §4.5 step 5: for each triangle take max(minEdge, maxEdge/4), then the
// largest of those over every triangle in the group. An error larger
// than that floor cannot be distinguished from it in screen space and
// would cause premature LOD transitions, so err is clamped down to it.
func clampToEdgeLimit(indices []uint32, positions []float32, stride int, err, edgeLimitFactor float32) float32 {
	triCount := len(indices) / 3
	if triCount == 0 {
		return err
	}

	pos := func(v uint32) [3]float32 {
		o := int(v) * stride
		return [3]float32{positions[o], positions[o+1], positions[o+2]}
	}
	edgeSq := func(a, b [3]float32) float32 {
		dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
		return dx*dx + dy*dy + dz*dz
	}

	var maxEdgeSq float32
	for t := 0; t < triCount; t++ {
		a, b, c := pos(indices[t*3]), pos(indices[t*3+1]), pos(indices[t*3+2])
		eAB, eBC, eCA := edgeSq(a, b), edgeSq(b, c), edgeSq(c, a)

		triMin := eAB
		if eBC < triMin {
			triMin = eBC
		}
		if eCA < triMin {
			triMin = eCA
		}
		triMax := eAB
		if eBC > triMax {
			triMax = eBC
		}
		if eCA > triMax {
			triMax = eCA
		}

		triClamp := triMax / 4
		if triMin > triClamp {
			triClamp = triMin
		}
		if triClamp > maxEdgeSq {
			maxEdgeSq = triClamp
		}
	}

	limit := float32(math.Sqrt(float64(maxEdgeSq))) * edgeLimitFactor

	if err > limit {
		return limit
	}
	return err
}
