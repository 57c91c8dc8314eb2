// Package clusterlod builds a hierarchical cluster DAG (a Nanite-style
// level-of-detail hierarchy) from an indexed triangle mesh: clusterize,
// partition, boundary-lock, simplify, re-clusterize, repeat, with
// monotone bounds and error propagated up the DAG at every level.
//
// Everything under internal/meshopt, clusterizer/, boundscalc/,
// partitioner/, boundarylock/, simplifier/, and orchestrator/ is
// reachable through this package's Build function; Config, MeshInput,
// and the output types are aliases of the mesh and orchestrator types.
// See mesh.DefaultConfig / mesh.DefaultConfigRT for the two
// tuning presets, and orchestrator.OutputFunc for the emission contract.
package clusterlod

import (
	"context"

	"github.com/nanite-lod/clusterlod/mesh"
	"github.com/nanite-lod/clusterlod/orchestrator"
)

// Re-exported so callers need only import this package for the common
// path; the per-stage packages remain directly importable for callers
// who want to drive or test one stage in isolation (internal/meshopt,
// being internal, is importable only from within this module).
type (
	Config     = mesh.Config
	MeshInput  = mesh.Mesh
	Bounds     = mesh.Bounds
	Option     = mesh.Option
	ClusterOut = orchestrator.ClusterOut
	GroupOut   = orchestrator.GroupOut
	OutputFunc = orchestrator.OutputFunc
	BuildStats = orchestrator.Stats
)

// DefaultConfig returns a rasterization-oriented Config; see mesh.DefaultConfig.
func DefaultConfig(maxTriangles int, opts ...Option) Config {
	return mesh.DefaultConfig(maxTriangles, opts...)
}

// DefaultConfigRT returns a ray-tracing-oriented Config; see mesh.DefaultConfigRT.
func DefaultConfigRT(maxTriangles int, opts ...Option) Config {
	return mesh.DefaultConfigRT(maxTriangles, opts...)
}

// Build runs the full cluster-DAG build over m according to cfg,
// invoking emit once per formed group. See orchestrator.Build.
func Build(ctx context.Context, cfg Config, m *MeshInput, emit OutputFunc) (BuildStats, error) {
	return orchestrator.Build(ctx, cfg, m, emit)
}
