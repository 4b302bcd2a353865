// Copyright 2025 Gustavo C. Viegas. All rights reserved.

// Package engine implements a real-time renderer on top of the
// driver interfaces.
// Geometry and material data handed to the engine is staged
// through a fixed-capacity upload ring buffer and copied into
// device-local memory by a dedicated copy queue; the graphics
// queue waits on the copy queue's fence before consuming it.
package engine

import (
	"rd12/linear"
)

// Vertex is the vertex layout consumed by the graphics
// pipeline. Positions and normals are fetched from separate
// input slots, so each attribute stream is uploaded as its
// own buffer.
type Vertex struct {
	Position linear.V3
	Normal   linear.V3
}

// Placement alignment of vertex and index data within the
// upload ring, in bytes.
const dataAlignment = 4

// alignUp rounds n up to the given alignment, which must be
// a power of two.
func alignUp(n, alignment int64) int64 {
	return (n + alignment - 1) &^ (alignment - 1)
}
