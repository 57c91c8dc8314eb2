package meshopt

import (
	"container/heap"
	"math"
)

// SimplifyWithAttributes reduces indices toward targetCount indices
// (targetCount/3 triangles) using attribute-aware quadric-error edge
// collapse, touching only the
// vertices indices references (the "Sparse" mode of spec.md §4.5).
// locks is the full-mesh lock byte array; a vertex with LockLocked set
// may never be the removed endpoint of a collapse. When attributes is
// non-nil, attribute distance is folded into collapse cost as an
// additional weighted penalty; collapses across attribute discontinuities
// are penalized in both modes, 64 times more heavily when permissive is
// false, except where a vertex carries LockProtect, which always forbids
// them.
//
// Grounded on the quadric-error-metric edge collapse in
// mirstar13-3d-graphics/mesh_simplification.go (Quadric, EdgeHeap),
// adapted to collapse onto an existing endpoint (never synthesizing a
// new vertex position, since output indices must stay valid mesh
// indices per spec.md §3 invariant 5) and extended with an attribute
// penalty term and hard/soft seam locking.
func SimplifyWithAttributes(
	indices []uint32,
	positions []float32, posStride int,
	attributes []float32, attrStride, attributeCount int,
	attributeWeights []float32,
	locks []byte,
	targetCount int,
	permissive, regularize bool,
) (simplified []uint32, errOut float32) {
	triCount := len(indices) / 3
	if triCount <= targetCount/3 {
		out := make([]uint32, len(indices))
		copy(out, indices)
		return out, 0
	}

	s := newQEM(indices, positions, posStride, attributes, attrStride, attributeCount, attributeWeights, locks, regularize)
	maxErr := s.collapseTo(targetCount/3, permissive)

	return s.rebuild(), maxErr
}

type qemVertex struct {
	q       quadric
	version int
	alive   bool
}

type qem struct {
	positions        []float32
	posStride        int
	attributes       []float32
	attrStride       int
	attributeCount   int
	attributeWeights []float32
	locks            []byte
	regularize       bool

	triangles []([3]uint32)
	triAlive  []bool

	vert      map[uint32]*qemVertex
	parent    map[uint32]uint32 // union-find: collapsed id -> surviving id
	vertTris  map[uint32]map[int]struct{}
	adjacency map[uint32]map[uint32]struct{}
}

func newQEM(indices []uint32, positions []float32, posStride int, attributes []float32, attrStride, attributeCount int, attributeWeights []float32, locks []byte, regularize bool) *qem {
	s := &qem{
		positions: positions, posStride: posStride,
		attributes: attributes, attrStride: attrStride, attributeCount: attributeCount,
		attributeWeights: attributeWeights, locks: locks, regularize: regularize,
		vert:      make(map[uint32]*qemVertex),
		parent:    make(map[uint32]uint32),
		vertTris:  make(map[uint32]map[int]struct{}),
		adjacency: make(map[uint32]map[uint32]struct{}),
	}

	triCount := len(indices) / 3
	s.triangles = make([][3]uint32, triCount)
	s.triAlive = make([]bool, triCount)

	pos := func(v uint32) [3]float32 {
		o := int(v) * posStride
		return [3]float32{positions[o], positions[o+1], positions[o+2]}
	}

	for t := 0; t < triCount; t++ {
		a, b, c := indices[t*3], indices[t*3+1], indices[t*3+2]
		s.triangles[t] = [3]uint32{a, b, c}
		s.triAlive[t] = true

		pq := planeQuadric(pos(a), pos(b), pos(c))
		for _, v := range [3]uint32{a, b, c} {
			if _, ok := s.vert[v]; !ok {
				s.vert[v] = &qemVertex{alive: true}
			}
			s.vert[v].q = s.vert[v].q.add(pq)
			if s.vertTris[v] == nil {
				s.vertTris[v] = make(map[int]struct{})
			}
			s.vertTris[v][t] = struct{}{}
		}
		for _, e := range [3][2]uint32{{a, b}, {b, c}, {c, a}} {
			s.link(e[0], e[1])
		}
	}

	return s
}

func (s *qem) link(a, b uint32) {
	if s.adjacency[a] == nil {
		s.adjacency[a] = make(map[uint32]struct{})
	}
	if s.adjacency[b] == nil {
		s.adjacency[b] = make(map[uint32]struct{})
	}
	s.adjacency[a][b] = struct{}{}
	s.adjacency[b][a] = struct{}{}
}

func (s *qem) find(v uint32) uint32 {
	for {
		p, ok := s.parent[v]
		if !ok {
			return v
		}
		// path compression
		if gp, ok2 := s.parent[p]; ok2 {
			s.parent[v] = gp
			v = gp
			continue
		}
		return p
	}
}

func (s *qem) pos(v uint32) [3]float32 {
	o := int(v) * s.posStride
	return [3]float32{s.positions[o], s.positions[o+1], s.positions[o+2]}
}

func (s *qem) attr(v uint32) []float32 {
	if s.attributes == nil || s.attributeCount == 0 {
		return nil
	}
	o := int(v) * s.attrStride
	return s.attributes[o : o+s.attributeCount]
}

func (s *qem) attrDist2(a, b uint32) float64 {
	aa, ab := s.attr(a), s.attr(b)
	if aa == nil || ab == nil {
		return 0
	}
	var sum float64
	for i := 0; i < s.attributeCount; i++ {
		w := float64(1)
		if s.attributeWeights != nil && i < len(s.attributeWeights) {
			w = float64(s.attributeWeights[i])
		}
		d := float64(aa[i] - ab[i])
		sum += w * d * d
	}
	return sum
}

func (s *qem) locked(v uint32) bool {
	return int(v) < len(s.locks) && s.locks[v]&LockLocked != 0
}

func (s *qem) protected(v uint32) bool {
	return int(v) < len(s.locks) && s.locks[v]&LockProtect != 0
}

// edgeCand is a lazily-invalidated candidate collapse in the priority
// queue: it is only still valid if both endpoints' versions match the
// recorded ones and they haven't already been resolved to the same root.
type edgeCand struct {
	a, b          uint32
	target        uint32
	cost          float64
	verA, verB    int
	index         int
}

type edgeHeap []*edgeCand

func (h edgeHeap) Len() int            { return len(h) }
func (h edgeHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h edgeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *edgeHeap) Push(x interface{}) { e := x.(*edgeCand); e.index = len(*h); *h = append(*h, e) }
func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// evalEdge computes the cost and preferred collapse direction for the
// (already root-resolved) pair a,b. Returns ok=false if the collapse is
// hard-forbidden (both endpoints locked, or a protected seam).
func (s *qem) evalEdge(a, b uint32, permissive bool) (cand edgeCand, ok bool) {
	if a == b {
		return cand, false
	}
	lockedA, lockedB := s.locked(a), s.locked(b)
	if lockedA && lockedB {
		return cand, false
	}

	seamDist := s.attrDist2(a, b)
	seam := seamDist > 1e-12
	if seam && (s.protected(a) || s.protected(b)) {
		return cand, false // permanently locked seam, regardless of permissive
	}

	qa, qb := s.vert[a].q, s.vert[b].q
	combined := qa.add(qb)

	// candidate target is always an existing endpoint (never a synthesized
	// point), so indices stay valid mesh vertex references
	costAt := func(p [3]float32) float64 { return combined.errorAt(p) }

	var target uint32
	var cost float64
	switch {
	case lockedA:
		target, cost = a, costAt(s.pos(a))
	case lockedB:
		target, cost = b, costAt(s.pos(b))
	default:
		ca, cb := costAt(s.pos(a)), costAt(s.pos(b))
		if ca <= cb {
			target, cost = a, ca
		} else {
			target, cost = b, cb
		}
	}

	if seam {
		penalty := seamDist
		if !permissive {
			penalty *= 64 // strongly discourage, but don't hard-forbid unprotected seams
		}
		cost += penalty
	}

	if s.regularize {
		cost += s.shapePenalty(a, b)
	}

	return edgeCand{a: a, b: b, target: target, cost: cost, verA: s.vert[a].version, verB: s.vert[b].version}, true
}

// shapePenalty discourages collapses that would leave behind long thin
// triangles, biasing toward uniform triangle density when Regularize is set.
func (s *qem) shapePenalty(a, b uint32) float64 {
	d := dist(s.pos(a), s.pos(b))
	return 0.05 * float64(d) * float64(d)
}

// collapseTo greedily collapses edges until triCount reaches target or no
// valid collapse remains, returning the largest cost actually applied
// (used, after sqrt, as the absolute simplification error).
func (s *qem) collapseTo(targetTriCount int, permissive bool) float32 {
	h := &edgeHeap{}
	heap.Init(h)

	seen := make(map[[2]uint32]bool)
	pushEdge := func(a, b uint32) {
		a, b = s.find(a), s.find(b)
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		key := [2]uint32{a, b}
		if seen[key] {
			return
		}
		seen[key] = true
		if cand, ok := s.evalEdge(a, b, permissive); ok {
			c := cand
			heap.Push(h, &c)
		}
	}

	for a, nbrs := range s.adjacency {
		for b := range nbrs {
			pushEdge(a, b)
		}
	}

	alive := s.countAlive()
	var maxCost float64

	for alive > targetTriCount && h.Len() > 0 {
		cand := heap.Pop(h).(*edgeCand)

		a, b := s.find(cand.a), s.find(cand.b)
		if a == b {
			continue
		}
		av, bv := s.vert[a], s.vert[b]
		if av.version != cand.verA || bv.version != cand.verB {
			delete(seen, edgeKey(a, b))
			pushEdge(a, b) // state changed since this candidate was queued; re-evaluate
			continue
		}

		removed, target := a, cand.target
		if target == a {
			removed = b
		}

		before := s.countTriRefs(removed, target)
		maxCost = math.Max(maxCost, cand.cost)

		s.applyCollapse(removed, target)
		alive -= before

		for nb := range s.adjacency[target] {
			delete(seen, edgeKey(target, nb))
			pushEdge(target, nb)
		}
	}

	return float32(math.Sqrt(maxCost))
}

func edgeKey(a, b uint32) [2]uint32 {
	if a > b {
		a, b = b, a
	}
	return [2]uint32{a, b}
}

func (s *qem) countAlive() int {
	n := 0
	for _, alive := range s.triAlive {
		if alive {
			n++
		}
	}
	return n
}

// countTriRefs returns the number of currently-alive triangles that would
// be removed (degenerate) if v is collapsed away onto target: those that
// reference both v and target.
func (s *qem) countTriRefs(v, target uint32) int {
	n := 0
	for t := range s.vertTris[v] {
		tri := s.triangles[t]
		if s.triAlive[t] && (tri[0] == target || tri[1] == target || tri[2] == target) {
			n++
		}
	}
	return n
}

// applyCollapse merges removed into target: updates the union-find map,
// accumulates quadrics, kills degenerate triangles, and relinks the
// surviving triangles' vertex references.
func (s *qem) applyCollapse(removed, target uint32) {
	s.parent[removed] = target
	s.vert[target].q = s.vert[target].q.add(s.vert[removed].q)
	s.vert[target].version++
	s.vert[removed].alive = false
	s.vert[removed].version++

	for t := range s.vertTris[removed] {
		if !s.triAlive[t] {
			continue
		}
		tri := &s.triangles[t]
		for k := 0; k < 3; k++ {
			if tri[k] == removed {
				tri[k] = target
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			s.triAlive[t] = false
			continue
		}
		if s.vertTris[target] == nil {
			s.vertTris[target] = make(map[int]struct{})
		}
		s.vertTris[target][t] = struct{}{}
		for k := 0; k < 3; k++ {
			if tri[k] != target {
				s.link(target, tri[k])
			}
		}
	}
}

// rebuild flattens the surviving triangles (resolved through the
// union-find map) into an output index buffer.
func (s *qem) rebuild() []uint32 {
	out := make([]uint32, 0, len(s.triangles)*3)
	for t, alive := range s.triAlive {
		if !alive {
			continue
		}
		tri := s.triangles[t]
		a, b, c := s.find(tri[0]), s.find(tri[1]), s.find(tri[2])
		if a == b || b == c || a == c {
			continue
		}
		out = append(out, a, b, c)
	}
	return out
}

// SimplifyScale returns the bounding-box diagonal of the given position
// subset, used to convert the (relative) sloppy-simplifier error into
// absolute mesh units, mirroring meshopt_simplifyScale.
func SimplifyScale(positions []float32, stride, count int) float32 {
	if count == 0 {
		return 0
	}
	min := [3]float32{positions[0], positions[1], positions[2]}
	max := min
	for i := 0; i < count; i++ {
		o := i * stride
		for k := 0; k < 3; k++ {
			if positions[o+k] < min[k] {
				min[k] = positions[o+k]
			}
			if positions[o+k] > max[k] {
				max[k] = positions[o+k]
			}
		}
	}
	return dist(min, max)
}

// SimplifySloppy performs non-topology-preserving decimation of a compact
// (already de-indexed) point set toward targetTriCount triangles using
// uniform grid vertex clustering: points are bucketed into a grid sized
// to approximately hit the target density. locked points (per locks) are
// never merged into a bucket with other points; they occupy their own
// singleton bucket. Returns, for each point in input order, the id of the
// bucket it was assigned to (buckets numbered in first-seen order); the
// caller rebuilds triangles from these ids and drops the degenerate ones.
// The second result is the achieved error as a fraction of the point
// set's bounding diagonal (max distance from any point to its bucket's
// centroid, divided by the diagonal) — callers convert this to absolute mesh units by
// multiplying by SimplifyScale themselves, mirroring how
// meshopt_simplifySloppy reports error in object-relative units.
func SimplifySloppy(positions []float32, stride int, locks []byte, triCount int, targetTriCount int) (indices []uint32, errOut float32) {
	n := len(positions) / stride
	if n == 0 || triCount <= targetTriCount {
		return nil, 0
	}

	min := [3]float32{positions[0], positions[1], positions[2]}
	max := min
	for i := 0; i < n; i++ {
		o := i * stride
		for k := 0; k < 3; k++ {
			if positions[o+k] < min[k] {
				min[k] = positions[o+k]
			}
			if positions[o+k] > max[k] {
				max[k] = positions[o+k]
			}
		}
	}
	diag := dist(min, max)
	if diag <= 0 {
		diag = 1
	}

	// coarsen the grid until we reach (approximately) the target triangle
	// count, or give up after a bounded number of refinements
	cellsPerAxis := 8
	var finalIdx []uint32
	var finalErr float32

	for attempt := 0; attempt < 12; attempt++ {
		bucketOf := make(map[[3]int]int)
		var centroids [][3]float32
		var counts []int
		assign := make([]int, n)

		cell := diag / float32(cellsPerAxis)
		if cell <= 0 {
			cell = 1
		}

		for i := 0; i < n; i++ {
			o := i * stride
			p := [3]float32{positions[o], positions[o+1], positions[o+2]}

			var key [3]int
			locked := int(i) < len(locks) && locks[i]&LockLocked != 0
			if locked {
				key = [3]int{1<<30 + i, 0, 0} // singleton bucket, never merged
			} else {
				key = [3]int{int(p[0] / cell), int(p[1] / cell), int(p[2] / cell)}
			}

			b, ok := bucketOf[key]
			if !ok {
				b = len(centroids)
				bucketOf[key] = b
				centroids = append(centroids, [3]float32{})
				counts = append(counts, 0)
			}
			centroids[b][0] += p[0]
			centroids[b][1] += p[1]
			centroids[b][2] += p[2]
			counts[b]++
			assign[i] = b
		}

		for b := range centroids {
			centroids[b][0] /= float32(counts[b])
			centroids[b][1] /= float32(counts[b])
			centroids[b][2] /= float32(counts[b])
		}

		finalIdx = make([]uint32, n)
		var maxErr float32
		for i := 0; i < n; i++ {
			finalIdx[i] = uint32(assign[i])
			o := i * stride
			p := [3]float32{positions[o], positions[o+1], positions[o+2]}
			d := dist(p, centroids[assign[i]])
			if d > maxErr {
				maxErr = d
			}
		}
		finalErr = maxErr / diag

		if len(centroids)*2 <= targetTriCount || cellsPerAxis <= 1 {
			break
		}
		cellsPerAxis /= 2
		if cellsPerAxis < 1 {
			cellsPerAxis = 1
		}
	}

	return finalIdx, finalErr
}
