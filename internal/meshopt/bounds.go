package meshopt

import "math"

// Sphere is a plain bounding sphere (no error term — error is layered on
// top by boundscalc, which owns the monotonicity rules).
type Sphere struct {
	Center [3]float32
	Radius float32
}

// ComputeClusterBounds computes an approximate minimum bounding sphere
// for the unique vertices referenced by indices, using Ritter's
// algorithm: find an extremal pair, seed a sphere from it, then grow the
// sphere to include every remaining point. This is the same two-pass
// extremal-point approach used for AABB/OBB construction in
// mirstar13-3d-graphics/obb.go, adapted to spheres.
func ComputeClusterBounds(indices []uint32, positions []float32, stride int) Sphere {
	if len(indices) == 0 {
		return Sphere{}
	}

	unique := uniqueVertices(indices)
	pts := make([][3]float32, len(unique))
	for i, v := range unique {
		o := int(v) * stride
		pts[i] = [3]float32{positions[o], positions[o+1], positions[o+2]}
	}

	return ritterSphere(pts)
}

// ritterSphere computes an approximate minimum bounding sphere over pts.
func ritterSphere(pts [][3]float32) Sphere {
	if len(pts) == 0 {
		return Sphere{}
	}
	if len(pts) == 1 {
		return Sphere{Center: pts[0], Radius: 0}
	}

	// Pick an arbitrary point, find the farthest point from it (x),
	// then the farthest point from x (y); x,y approximate the diameter.
	x := pts[0]
	y := farthest(pts, x)
	x = farthest(pts, y)

	center := [3]float32{
		(x[0] + y[0]) / 2,
		(x[1] + y[1]) / 2,
		(x[2] + y[2]) / 2,
	}
	radius := dist(x, y) / 2

	for _, p := range pts {
		d := dist(p, center)
		if d > radius {
			// grow the sphere to just touch p, keeping the old far side fixed
			newRadius := (radius + d) / 2
			k := (newRadius - radius) / d
			center = [3]float32{
				center[0] + (p[0]-center[0])*k,
				center[1] + (p[1]-center[1])*k,
				center[2] + (p[2]-center[2])*k,
			}
			radius = newRadius
		}
	}

	return Sphere{Center: center, Radius: radius}
}

func farthest(pts [][3]float32, from [3]float32) [3]float32 {
	best := pts[0]
	bestD := float32(-1)
	for _, p := range pts {
		d := dist(p, from)
		if d > bestD {
			bestD = d
			best = p
		}
	}
	return best
}

func dist(a, b [3]float32) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

func uniqueVertices(indices []uint32) []uint32 {
	seen := make(map[uint32]struct{}, len(indices))
	out := make([]uint32, 0, len(indices))
	for _, v := range indices {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// MergeSphereBounds computes a conservative enclosing sphere for a set of
// child spheres: for every input sphere s, distance(center, s.Center) +
// s.Radius <= radius. This is the same Ritter-style grow loop as
// ComputeClusterBounds, operating on sphere centers with each point's
// own radius added to the running distance instead of treated as zero.
func MergeSphereBounds(spheres []Sphere) Sphere {
	if len(spheres) == 0 {
		return Sphere{}
	}
	if len(spheres) == 1 {
		return spheres[0]
	}

	// seed with the sphere with the largest radius to reduce re-growth passes
	seed := 0
	for i, s := range spheres {
		if s.Radius > spheres[seed].Radius {
			seed = i
		}
	}
	center := spheres[seed].Center
	radius := spheres[seed].Radius
	for _, s := range spheres {
		d := dist(s.Center, center)
		need := d + s.Radius
		if need > radius {
			// grow conservatively: move center toward s by the amount needed,
			// keep opposite extent fixed
			if d < 1e-9 {
				radius = need
				continue
			}
			newRadius := (radius + need) / 2
			k := (newRadius - radius) / d
			center = [3]float32{
				center[0] + (s.Center[0]-center[0])*k,
				center[1] + (s.Center[1]-center[1])*k,
				center[2] + (s.Center[2]-center[2])*k,
			}
			radius = newRadius
		}
	}

	// final conservative pass: guarantee containment given floating point drift
	for _, s := range spheres {
		d := dist(s.Center, center)
		need := d + s.Radius
		if need > radius {
			radius = need
		}
	}

	return Sphere{Center: center, Radius: radius}
}
