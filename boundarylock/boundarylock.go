package boundarylock

import (
	"github.com/nanite-lod/clusterlod/cluster"
	"github.com/nanite-lod/clusterlod/internal/meshopt"
)

// Lock marks every vertex shared between two partitions as locked
// against collapse, per spec.md §4.4. locks is the persistent
// per-vertex lock array (size vertex_count); remap is the position
// canonicalization table computed once at build start. vertexLock is
// the caller-supplied extra per-vertex lock bits to merge in, or nil.
//
// Bits 0 (locked-for-collapse) and 7 (seen-by-prior-partition) are
// owned entirely by this step and cleared on entry; all other bits,
// notably meshopt.LockProtect, are left untouched.
func Lock(locks []byte, remap []uint32, clusters []cluster.Cluster, partitions [][]int, vertexLock []byte) {
	for v := range locks {
		locks[v] &^= meshopt.LockLocked | meshopt.LockSeen
	}

	for _, partition := range partitions {
		// Pass one: a canonical vertex already seen by an earlier
		// partition in this same loop becomes locked, since it is shared
		// across the partition boundary.
		for _, cid := range partition {
			for _, idx := range clusters[cid].Indices {
				r := remap[idx]
				if locks[r]&meshopt.LockSeen != 0 {
					locks[r] |= meshopt.LockLocked
				}
			}
		}
		// Pass two: plant the seen-flag for this partition, so later
		// partitions in this loop see it.
		for _, cid := range partition {
			for _, idx := range clusters[cid].Indices {
				r := remap[idx]
				locks[r] |= meshopt.LockSeen
			}
		}
	}

	// Propagate the canonical-vertex Locked bit to every physical vertex
	// sharing that position, and merge in any caller-supplied lock bits,
	// so that two vertices at the same position always agree on
	// locked-for-collapse state.
	for v := range locks {
		r := remap[v]
		if locks[r]&meshopt.LockLocked != 0 {
			locks[v] |= meshopt.LockLocked
		}
		if vertexLock != nil {
			locks[v] |= vertexLock[v]
		}
	}
}
