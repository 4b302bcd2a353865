// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	*m = M4{}
	for i := range m {
		for j := range m {
			for k := range m {
				m[i][j] += l[k][j] * r[i][k]
			}
		}
	}
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Translate makes m a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// LookAt makes m a left-handed view matrix for a camera placed
// at eye and looking at center, with the given up direction.
func (m *M4) LookAt(eye, center, up V3) {
	f := NormV3(SubV3(center, eye))
	s := NormV3(Cross(up, f))
	u := Cross(f, s)
	m[0] = V4{s[0], u[0], f[0], 0}
	m[1] = V4{s[1], u[1], f[1], 0}
	m[2] = V4{s[2], u[2], f[2], 0}
	m[3] = V4{-DotV3(s, eye), -DotV3(u, eye), -DotV3(f, eye), 1}
}

// InfPerspective makes m a left-handed, infinite perspective
// projection matrix with reversed depth: geometry at znear maps
// to depth 1 and depth approaches 0 with distance.
// Consumers must clear depth to 0 and use a greater-than depth
// test.
// yfov is given in radians. aspect is width over height.
func (m *M4) InfPerspective(yfov, aspect, znear float32) {
	g := 1 / math32.Tan(yfov/2)
	*m = M4{}
	m[0][0] = g / aspect
	m[1][1] = g
	m[2][3] = 1
	m[3][2] = znear
}

// row returns the ith row of m as a V4.
func (m *M4) row(i int) V4 {
	return V4{m[0][i], m[1][i], m[2][i], m[3][i]}
}
