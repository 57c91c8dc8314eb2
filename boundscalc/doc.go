// Package boundscalc computes per-cluster bounding spheres and merges
// them into the conservative, monotone group bounds the orchestrator
// propagates through the DAG, per spec.md §4.2. It owns no state: every
// function is a pure transform over the spheres and errors it is given.
package boundscalc
