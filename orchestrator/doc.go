// Package orchestrator drives the full build loop of spec.md §4.6:
// clusterize the input mesh, then repeatedly partition, boundary-lock,
// merge, simplify, and re-clusterize the pending cluster set until a
// single root cluster remains, emitting a group per partition along the
// way through the caller-supplied OutputFunc.
package orchestrator
