// Package partitioner groups pending clusters into target-sized
// partitions by shared-position adjacency, per spec.md §4.3. Clusters
// in the same partition are merged and simplified together by the
// orchestrator; partitions are the unit of independent simplification.
package partitioner
