package meshopt

import "math"

// quadric is a quadric error metric (the upper triangle of a symmetric
// 4x4 matrix), the same fundamental-error-metric representation used by
// mirstar13-3d-graphics/mesh_simplification.go's Quadric type, adapted
// to accumulate incrementally per vertex rather than per decimation pass.
type quadric struct {
	a11, a12, a13, a14 float64
	a22, a23, a24      float64
	a33, a34           float64
	a44                float64
}

// planeQuadric builds the quadric for the plane through p0,p1,p2.
func planeQuadric(p0, p1, p2 [3]float32) quadric {
	ux, uy, uz := p1[0]-p0[0], p1[1]-p0[1], p1[2]-p0[2]
	vx, vy, vz := p2[0]-p0[0], p2[1]-p0[1], p2[2]-p0[2]

	// normal = u x v
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx

	length := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
	if length < 1e-12 {
		return quadric{}
	}
	a, b, c := nx/length, ny/length, nz/length
	d := -(a*p0[0] + b*p0[1] + c*p0[2])

	fa, fb, fc, fd := float64(a), float64(b), float64(c), float64(d)
	return quadric{
		a11: fa * fa, a12: fa * fb, a13: fa * fc, a14: fa * fd,
		a22: fb * fb, a23: fb * fc, a24: fb * fd,
		a33: fc * fc, a34: fc * fd,
		a44: fd * fd,
	}
}

func (q quadric) add(o quadric) quadric {
	return quadric{
		a11: q.a11 + o.a11, a12: q.a12 + o.a12, a13: q.a13 + o.a13, a14: q.a14 + o.a14,
		a22: q.a22 + o.a22, a23: q.a23 + o.a23, a24: q.a24 + o.a24,
		a33: q.a33 + o.a33, a34: q.a34 + o.a34,
		a44: q.a44 + o.a44,
	}
}

// errorAt evaluates the quadric at point p: p^T A p.
func (q quadric) errorAt(p [3]float32) float64 {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	return x*x*q.a11 + 2*x*y*q.a12 + 2*x*z*q.a13 + 2*x*q.a14 +
		y*y*q.a22 + 2*y*z*q.a23 + 2*y*q.a24 +
		z*z*q.a33 + 2*z*q.a34 +
		q.a44
}
