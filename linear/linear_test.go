// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"testing"

	"github.com/chewxy/math32"
)

func absEq(a, b float32) bool { return math32.Abs(a-b) <= 1e-5 }

// mulV4 returns m ⋅ v.
func mulV4(m *M4, v V4) (u V4) {
	for i := range m {
		for j := range u {
			u[j] += m[i][j] * v[i]
		}
	}
	return
}

func TestV3(t *testing.T) {
	v := V3{1, 2, 3}
	w := V3{4, -5, 6}
	if u := AddV3(v, w); u != (V3{5, -3, 9}) {
		t.Fatalf("AddV3:\nhave %v\nwant [5 -3 9]", u)
	}
	if u := SubV3(v, w); u != (V3{-3, 7, -3}) {
		t.Fatalf("SubV3:\nhave %v\nwant [-3 7 -3]", u)
	}
	if d := DotV3(v, w); d != 12 {
		t.Fatalf("DotV3:\nhave %v\nwant 12", d)
	}
	if u := Cross(V3{1, 0, 0}, V3{0, 1, 0}); u != (V3{0, 0, 1}) {
		t.Fatalf("Cross:\nhave %v\nwant [0 0 1]", u)
	}
	if n := LenV3(V3{3, 4, 0}); !absEq(n, 5) {
		t.Fatalf("LenV3:\nhave %v\nwant 5", n)
	}
	if u := NormV3(V3{0, 0, 9}); !absEq(LenV3(u), 1) || u[2] != 1 {
		t.Fatalf("NormV3:\nhave %v\nwant [0 0 1]", u)
	}
	if u := MinV3(v, w); u != (V3{1, -5, 3}) {
		t.Fatalf("MinV3:\nhave %v\nwant [1 -5 3]", u)
	}
	if u := MaxV3(v, w); u != (V3{4, 2, 6}) {
		t.Fatalf("MaxV3:\nhave %v\nwant [4 2 6]", u)
	}
}

func TestM4Identity(t *testing.T) {
	var m M4
	m.I()
	v := V4{1, -2, 3, 1}
	if u := mulV4(&m, v); u != v {
		t.Fatalf("M4.I: mulV4:\nhave %v\nwant %v", u, v)
	}
}

func TestM4Mul(t *testing.T) {
	var a, b, m M4
	a.Translate(1, 2, 3)
	b.Translate(-4, 0, 5)
	m.Mul(&a, &b)
	want := V4{-3, 2, 8, 1}
	if u := mulV4(&m, V4{0, 0, 0, 1}); u != want {
		t.Fatalf("M4.Mul:\nhave %v\nwant %v", u, want)
	}
}

func TestM4Transpose(t *testing.T) {
	n := M4{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16}}
	var m M4
	m.Transpose(&n)
	for i := range m {
		for j := range m {
			if m[i][j] != n[j][i] {
				t.Fatalf("M4.Transpose: [%d][%d]:\nhave %v\nwant %v", i, j, m[i][j], n[j][i])
			}
		}
	}
}

func TestLookAt(t *testing.T) {
	var m M4
	m.LookAt(V3{0, 0, -5}, V3{}, V3{0, 1, 0})
	// The origin lies 5 units in front of the camera.
	if u := mulV4(&m, V4{0, 0, 0, 1}); u != (V4{0, 0, 5, 1}) {
		t.Fatalf("M4.LookAt:\nhave %v\nwant [0 0 5 1]", u)
	}
	// The eye maps to the camera-space origin.
	if u := mulV4(&m, V4{0, 0, -5, 1}); u != (V4{0, 0, 0, 1}) {
		t.Fatalf("M4.LookAt:\nhave %v\nwant [0 0 0 1]", u)
	}
}

func TestInfPerspective(t *testing.T) {
	var m M4
	m.InfPerspective(math32.Pi/2, 1, 0.1)
	// Depth is reversed: znear maps to 1...
	u := mulV4(&m, V4{0, 0, 0.1, 1})
	if z := u[2] / u[3]; !absEq(z, 1) {
		t.Fatalf("M4.InfPerspective: depth at znear:\nhave %v\nwant 1", z)
	}
	// ...and approaches 0 with distance.
	u = mulV4(&m, V4{0, 0, 1000, 1})
	if z := u[2] / u[3]; z < 0 || z > 1e-3 {
		t.Fatalf("M4.InfPerspective: depth at distance:\nhave %v\nwant ~0", z)
	}
	// A point on the yfov/2 boundary projects to |y/w| == 1.
	u = mulV4(&m, V4{0, 4, 4, 1})
	if y := u[1] / u[3]; !absEq(y, 1) {
		t.Fatalf("M4.InfPerspective: boundary:\nhave %v\nwant 1", y)
	}
}
