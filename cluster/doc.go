// Package cluster defines Cluster, the internal build-time unit shared
// by every stage of the pipeline (clusterizer, boundscalc, partitioner,
// boundarylock, simplifier, orchestrator): a small triangle patch that
// is either an original-geometry leaf or was produced by re-clusterizing
// a simplified group's geometry. See spec.md §3 for the full invariants.
package cluster
