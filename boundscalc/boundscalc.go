package boundscalc

import (
	"github.com/nanite-lod/clusterlod/internal/meshopt"
	"github.com/nanite-lod/clusterlod/mesh"
)

// Leaf computes the bounds of an original-geometry leaf cluster: an
// approximate minimum bounding sphere over the vertices indices
// references, with error 0.
func Leaf(indices []uint32, positions []float32, stride int) mesh.Bounds {
	s := meshopt.ComputeClusterBounds(indices, positions, stride)
	return mesh.Bounds{Center: s.Center, Radius: s.Radius, Error: 0}
}

// Merge computes the group-merged bounds for a set of child clusters: a
// conservative enclosing sphere over their individual bounds, and an
// error equal to the maximum of their errors (never the average or the
// sum — the merged bounds must not lower-bound any child's error).
func Merge(children []mesh.Bounds) mesh.Bounds {
	if len(children) == 0 {
		return mesh.Bounds{}
	}

	spheres := make([]meshopt.Sphere, len(children))
	maxErr := float32(0)
	for i, c := range children {
		spheres[i] = meshopt.Sphere{Center: c.Center, Radius: c.Radius}
		if c.Error > maxErr {
			maxErr = c.Error
		}
	}

	merged := meshopt.MergeSphereBounds(spheres)
	return mesh.Bounds{Center: merged.Center, Radius: merged.Radius, Error: maxErr}
}

// Propagate folds a group's own simplification error into its
// already-child-merged bounds, per the monotone accumulation formula:
//
//	error <- max(merged.Error * mergePrevious, simplifyError) + simplifyError * mergeAdditive
//
// This guarantees the group's error never falls below the worst child's
// error (scaled by mergePrevious) nor below the error this level's
// simplification pass itself introduced.
func Propagate(merged mesh.Bounds, simplifyError, mergePrevious, mergeAdditive float32) mesh.Bounds {
	base := merged.Error * mergePrevious
	if simplifyError > base {
		base = simplifyError
	}
	merged.Error = base + simplifyError*mergeAdditive
	return merged
}

// Terminal marks bounds as belonging to a terminal group: one that is
// the DAG root, or whose simplification stalled and will never be
// refined-from. Its sphere is kept, its error replaced with the
// sentinel +∞.
func Terminal(merged mesh.Bounds) mesh.Bounds {
	merged.Error = mesh.InfiniteError
	return merged
}

// Precise recomputes a tighter per-cluster sphere for a derived cluster
// from its actual geometry, keeping the group-level error: used when
// Config.OptimizeBounds is set and the cluster came from a refined
// group (spec.md §4.2). The sphere is computed from the cluster's own
// vertices only and is not clipped to groupBounds, so it can extend
// outside groupBounds even though those vertices lie inside it.
func Precise(indices []uint32, positions []float32, stride int, groupBounds mesh.Bounds) mesh.Bounds {
	s := meshopt.ComputeClusterBounds(indices, positions, stride)
	return mesh.Bounds{Center: s.Center, Radius: s.Radius, Error: groupBounds.Error}
}
