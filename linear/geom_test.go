// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestAABox(t *testing.T) {
	b := BoundAABox([]V3{{1, -2, 0}, {-3, 4, 5}, {0, 0, 1}})
	assert.Equal(t, V3{-3, -2, 0}, b.Min)
	assert.Equal(t, V3{1, 4, 5}, b.Max)
	assert.Equal(t, V3{-1, 1, 2.5}, b.Center())

	b.Extend(V3{10, 0, 0})
	assert.Equal(t, float32(10), b.Max[0])

	e := EmptyAABox()
	e.Extend(V3{1, 2, 3})
	assert.Equal(t, V3{1, 2, 3}, e.Min)
	assert.Equal(t, V3{1, 2, 3}, e.Max)
}

func TestAABoxIndexed(t *testing.T) {
	points := []V3{{0, 0, 0}, {9, 9, 9}, {-1, 2, -3}}
	b := BoundAABoxIndexed([]uint32{0, 2}, points)
	assert.Equal(t, V3{-1, 0, -3}, b.Min)
	assert.Equal(t, V3{0, 2, 0}, b.Max)
}

func TestSphere(t *testing.T) {
	b := AABox{Min: V3{-1, -2, -3}, Max: V3{1, 2, 3}}
	in := Inscribed(b)
	assert.Equal(t, V3{}, in.Center)
	assert.Equal(t, float32(1), in.Radius)
	en := Encompassing(b)
	assert.Equal(t, V3{}, en.Center)
	assert.InDelta(t, math32.Sqrt(14), en.Radius, 1e-5)
}

// cullFrustum builds a frustum for a camera at the origin
// looking down +z with a 90 degree field of view.
func cullFrustum() Frustum {
	var view, proj, vp M4
	view.I()
	proj.InfPerspective(math32.Pi/2, 1, 0.1)
	vp.Mul(&proj, &view)
	return NewFrustum(&vp)
}

func TestFrustumSphere(t *testing.T) {
	f := cullFrustum()
	for _, x := range []struct {
		s    Sphere
		want bool
	}{
		{Sphere{V3{0, 0, 5}, 1}, true},
		{Sphere{V3{0, 0, -5}, 1}, false},
		{Sphere{V3{20, 0, 1}, 1}, false},
		// Touching the left plane from outside.
		{Sphere{V3{-6, 0, 5}, 1}, true},
		// Behind the camera, closer than znear.
		{Sphere{V3{0, 0, 0.05}, 0.01}, false},
	} {
		assert.Equal(t, x.want, f.IntersectsSphere(&x.s), "sphere %v", x.s)
	}
}

func TestFrustumAABox(t *testing.T) {
	f := cullFrustum()
	for _, x := range []struct {
		b    AABox
		want bool
	}{
		{AABox{V3{-1, -1, 4}, V3{1, 1, 6}}, true},
		{AABox{V3{-1, -1, -6}, V3{1, 1, -4}}, false},
		{AABox{V3{10, -1, 0.5}, V3{12, 1, 1.5}}, false},
		// Straddling the left plane.
		{AABox{V3{-7, -1, 4}, V3{-4, 1, 6}}, true},
		// Large box containing the whole frustum origin region.
		{AABox{V3{-100, -100, -100}, V3{100, 100, 100}}, true},
	} {
		assert.Equal(t, x.want, f.IntersectsAABox(&x.b), "box %v", x.b)
	}
}
