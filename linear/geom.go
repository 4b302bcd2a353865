// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// AABox is an axis-aligned bounding box.
type AABox struct {
	Min V3
	Max V3
}

// EmptyAABox returns a box that contains no points.
// Extending it always adopts the given point.
func EmptyAABox() AABox {
	return AABox{
		Min: V3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: V3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// BoundAABox returns the smallest box containing all points.
func BoundAABox(points []V3) AABox {
	b := EmptyAABox()
	for i := range points {
		b.Extend(points[i])
	}
	return b
}

// BoundAABoxIndexed returns the smallest box containing the
// points referenced by indices.
func BoundAABoxIndexed(indices []uint32, points []V3) AABox {
	b := EmptyAABox()
	for _, i := range indices {
		b.Extend(points[i])
	}
	return b
}

// Extend grows b to contain point.
func (b *AABox) Extend(point V3) {
	b.Min = MinV3(b.Min, point)
	b.Max = MaxV3(b.Max, point)
}

// Center returns the center of b.
func (b *AABox) Center() V3 {
	return ScaleV3(0.5, AddV3(b.Min, b.Max))
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center V3
	Radius float32
}

// Inscribed returns the largest sphere contained by b.
func Inscribed(b AABox) Sphere {
	d := SubV3(b.Max, b.Min)
	r := math32.Min(d[0], math32.Min(d[1], d[2])) / 2
	return Sphere{b.Center(), r}
}

// Encompassing returns the smallest sphere containing b.
func Encompassing(b AABox) Sphere {
	d := SubV3(b.Max, b.Min)
	return Sphere{b.Center(), LenV3(d) / 2}
}

// Frustum is a view frustum used for visibility culling.
// It holds the left/right/bottom/top planes and the plane that
// separates geometry in front of the camera. The projection is
// reversed, so the latter comes from the far-plane row of the
// clip-space inequalities.
// Plane normals point inward; a point p is inside a plane when
// dot(plane, (p, 1)) >= 0.
type Frustum struct {
	sides [4]V4
	front V4
}

// NewFrustum extracts frustum planes from a view-projection
// matrix.
func NewFrustum(viewProj *M4) Frustum {
	r0 := viewProj.row(0)
	r1 := viewProj.row(1)
	r2 := viewProj.row(2)
	r3 := viewProj.row(3)
	var f Frustum
	f.sides[0] = AddV4(r3, r0)                // Left: w + x >= 0.
	f.sides[1] = AddV4(r3, ScaleV4(-1, r0))   // Right: w - x >= 0.
	f.sides[2] = AddV4(r3, r1)                // Bottom: w + y >= 0.
	f.sides[3] = AddV4(r3, ScaleV4(-1, r1))   // Top: w - y >= 0.
	f.front = AddV4(r3, ScaleV4(-1, r2))      // Front: w - z >= 0.
	for i := range f.sides {
		f.sides[i] = normPlane(f.sides[i])
	}
	f.front = normPlane(f.front)
	return f
}

func normPlane(p V4) V4 {
	n := LenV3(V3{p[0], p[1], p[2]})
	return ScaleV4(1/n, p)
}

// planeDist returns the signed distance from point to plane.
func planeDist(plane V4, point V3) float32 {
	return plane[0]*point[0] + plane[1]*point[1] + plane[2]*point[2] + plane[3]
}

// farthestAlongNormal returns the corner of b farthest along
// the plane normal.
func farthestAlongNormal(plane V4, b *AABox) (p V3) {
	for i := range p {
		if plane[i] >= 0 {
			p[i] = b.Max[i]
		} else {
			p[i] = b.Min[i]
		}
	}
	return
}

// IntersectsAABox reports whether b intersects the frustum.
// The test is conservative: it may report true for boxes that
// are slightly outside.
func (f *Frustum) IntersectsAABox(b *AABox) bool {
	for i := range f.sides {
		if planeDist(f.sides[i], farthestAlongNormal(f.sides[i], b)) < 0 {
			return false
		}
	}
	return planeDist(f.front, farthestAlongNormal(f.front, b)) >= 0
}

// IntersectsSphere reports whether s intersects the frustum.
func (f *Frustum) IntersectsSphere(s *Sphere) bool {
	for i := range f.sides {
		if planeDist(f.sides[i], s.Center) < -s.Radius {
			return false
		}
	}
	return planeDist(f.front, s.Center) >= -s.Radius
}
