package boundarylock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/boundarylock"
	"github.com/nanite-lod/clusterlod/cluster"
	"github.com/nanite-lod/clusterlod/internal/meshopt"
)

func TestLockSharedVertexBetweenPartitions(t *testing.T) {
	// Two clusters sharing vertex 2, placed in different partitions.
	clusters := []cluster.Cluster{
		{Indices: []uint32{0, 1, 2}},
		{Indices: []uint32{2, 3, 4}},
	}
	remap := []uint32{0, 1, 2, 3, 4}
	locks := make([]byte, 5)

	partitions := [][]int{{0}, {1}}
	boundarylock.Lock(locks, remap, clusters, partitions, nil)

	require.NotZero(t, locks[2]&meshopt.LockLocked, "shared vertex must be locked")
	require.Zero(t, locks[0]&meshopt.LockLocked)
	require.Zero(t, locks[4]&meshopt.LockLocked)
}

func TestLockSameVertexWithinSinglePartitionStaysUnlocked(t *testing.T) {
	clusters := []cluster.Cluster{
		{Indices: []uint32{0, 1, 2}},
		{Indices: []uint32{2, 3, 4}},
	}
	remap := []uint32{0, 1, 2, 3, 4}
	locks := make([]byte, 5)

	partitions := [][]int{{0, 1}}
	boundarylock.Lock(locks, remap, clusters, partitions, nil)

	for v := range locks {
		require.Zero(t, locks[v]&meshopt.LockLocked, "no cross-partition boundary exists")
	}
}

func TestLockPropagatesAcrossCanonicalPosition(t *testing.T) {
	// Vertex 5 shares a position (canonical id 2) with vertex 2.
	clusters := []cluster.Cluster{
		{Indices: []uint32{0, 1, 2}},
		{Indices: []uint32{2, 3, 4}},
	}
	remap := []uint32{0, 1, 2, 3, 4, 2}
	locks := make([]byte, 6)

	partitions := [][]int{{0}, {1}}
	boundarylock.Lock(locks, remap, clusters, partitions, nil)

	require.NotZero(t, locks[5]&meshopt.LockLocked, "copy at same position must inherit the lock")
}

func TestLockPreservesProtectBit(t *testing.T) {
	clusters := []cluster.Cluster{{Indices: []uint32{0, 1, 2}}}
	remap := []uint32{0, 1, 2}
	locks := []byte{meshopt.LockProtect, 0, 0}

	boundarylock.Lock(locks, remap, clusters, [][]int{{0}}, nil)
	require.NotZero(t, locks[0]&meshopt.LockProtect)
}

func TestLockMergesExternalVertexLock(t *testing.T) {
	clusters := []cluster.Cluster{{Indices: []uint32{0, 1, 2}}}
	remap := []uint32{0, 1, 2}
	locks := make([]byte, 3)
	extra := []byte{0x20, 0, 0}

	boundarylock.Lock(locks, remap, clusters, [][]int{{0}}, extra)
	require.NotZero(t, locks[0]&0x20)
}
