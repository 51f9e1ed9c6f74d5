package geom

import (
	"math"

	"github.com/itohio/wallflux/pkg/vec3"
)

// epsilon is the determinant/parallel-ray threshold used by Intersect,
// matching the original wallLoad tracer's tolerance.
const epsilon = 1e-6

// Triangle is a three-vertex facet. Vertices must not be collinear;
// a degenerate triangle simply reports every ray as a miss (the
// |det| < epsilon branch in Intersect), it is not rejected at
// construction.
type Triangle struct {
	P1, P2, P3 vec3.Vec3
}

// New constructs a Triangle from three vertices.
func New(p1, p2, p3 vec3.Vec3) Triangle {
	return Triangle{P1: p1, P2: p2, P3: p3}
}

// Intersect implements the Möller-Trumbore ray/triangle intersection
// algorithm. Back-face culling is not performed: a ray hits the
// triangle from either side. When the algorithm reaches the final
// distance test and rejects the candidate (t <= epsilon), the hit
// point is still computed and returned for diagnostic symmetry with
// a genuine hit, only the Hit flag differs.
func (t Triangle) Intersect(origin, direction vec3.Vec3) HitResult {
	e1 := t.P2.Sub(t.P1)
	e2 := t.P3.Sub(t.P1)

	p := direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return miss()
	}
	inv := 1.0 / det

	tv := origin.Sub(t.P1)
	u := tv.Dot(p) * inv
	if u < 0 || u > 1 {
		return miss()
	}

	q := tv.Cross(e1)
	v := direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return miss()
	}

	tt := e2.Dot(q) * inv
	point := origin.Add(direction.Scale(tt))
	if tt <= epsilon {
		return HitResult{Hit: false, Point: point, Element: -1}
	}
	return HitResult{Hit: true, Point: point, Element: -1}
}

// Area is the triangle's area via Heron's formula.
func (t Triangle) Area() float64 {
	a := t.P1.Distance(t.P2)
	b := t.P2.Distance(t.P3)
	c := t.P3.Distance(t.P1)
	s := (a + b + c) / 2
	radicand := s * (s - a) * (s - b) * (s - c)
	if radicand < 0 {
		radicand = 0
	}
	return math.Sqrt(radicand)
}

// Normal returns the unit vector of (p2-p1) x (p3-p1).
func (t Triangle) Normal() vec3.Vec3 {
	return t.P2.Sub(t.P1).Cross(t.P3.Sub(t.P1)).Normalized()
}

// Center returns the triangle's centroid.
func (t Triangle) Center() vec3.Vec3 {
	return t.P1.Add(t.P2).Add(t.P3).Scale(1.0 / 3.0)
}
