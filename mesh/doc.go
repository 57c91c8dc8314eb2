// Package mesh defines the input data model for the cluster-LOD builder:
// the Mesh a build starts from, the Bounds type shared by every cluster
// and group, and Config, the single struct that tunes every stage of the
// pipeline (clusterization, partitioning, simplification).
//
// Two presets are provided, DefaultConfig for rasterization-oriented
// hierarchies and DefaultConfigRT for ray-tracing-oriented ones; both
// can be further tuned with Option values.
package mesh
