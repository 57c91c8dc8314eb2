package localindex

// cacheSize is the direct-mapped cache's entry count; clusters are
// capped at 256 unique vertices (see mesh.Config.MaxVertices), so a
// 1024-entry cache keyed on the low 10 bits of the global index gives
// ample headroom before collisions force the linear-scan fallback.
const cacheSize = 1024

// Table incrementally builds a local vertex table for one cluster's
// global index stream, handing back a stable small-integer id for each
// distinct global vertex it sees.
type Table struct {
	cache    [cacheSize]int32 // -1 = empty; otherwise an index into vertices
	vertices []uint32
}

// New returns an empty Table.
func New() *Table {
	t := &Table{}
	for i := range t.cache {
		t.cache[i] = -1
	}
	return t
}

// Lookup returns the local id for global, assigning a new one (and
// growing Vertices) the first time global is seen. The cache slot for
// global's low bits is checked first; on a miss or collision it falls
// back to a linear scan of the vertices seen so far, which is always
// correct regardless of how the cache collides.
func (t *Table) Lookup(global uint32) int {
	key := global & (cacheSize - 1)
	if c := t.cache[key]; c >= 0 && t.vertices[c] == global {
		return int(c)
	}

	for i, v := range t.vertices {
		if v == global {
			t.cache[key] = int32(i)
			return i
		}
	}

	idx := len(t.vertices)
	t.vertices = append(t.vertices, global)
	t.cache[key] = int32(idx)
	return idx
}

// Vertices returns the local-id-ordered list of distinct global vertex
// ids seen so far.
func (t *Table) Vertices() []uint32 {
	return t.vertices
}

// BuildLocal converts a flat global triangle-corner index stream (one
// cluster's worth of triangles, len(global) % 3 == 0) into the compact
// local form: vertices holds each distinct referenced vertex once, and
// triangles re-addresses global through byte-sized local ids such that
// vertices[triangles[i]] == global[i] for every i. Panics if more than
// 256 distinct vertices are referenced, since triangles is byte-indexed.
func BuildLocal(global []uint32) (vertices []uint32, triangles []byte) {
	t := New()
	triangles = make([]byte, len(global))
	for i, v := range global {
		local := t.Lookup(v)
		if local > 255 {
			panic("localindex: more than 256 distinct vertices in cluster")
		}
		triangles[i] = byte(local)
	}
	return t.Vertices(), triangles
}
