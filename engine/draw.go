// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"rd12/driver"
	"rd12/internal/bitvec"
)

// DrawIndexed draws a set of index buffers over shared
// position and normal streams, one draw call per index
// buffer. materialIndices assigns each index buffer the
// material table entry its draw uses. mask, if non-nil,
// selects which index buffers to draw; unset bits skip the
// corresponding buffer (culled geometry). It must be called
// between StartFrame and FinalizeFrame.
func (r *Renderer) DrawIndexed(positions, normals *VertexBuffer, indexBufs []*IndexBuffer, materialIndices []int, mask *bitvec.V) {
	if positions == nil || normals == nil {
		panic("engine: DrawIndexed: nil vertex stream")
	}
	if len(materialIndices) != len(indexBufs) {
		panic("engine: DrawIndexed: material index count mismatch")
	}
	list := r.graph.list
	list.SetVertexBufs(0, []driver.VertexBufView{positions.view, normals.view})
	for i, ib := range indexBufs {
		if mask != nil && !mask.IsSet(i) {
			continue
		}
		list.SetRootConst(rootMatIdx, uint32(materialIndices[i]))
		list.SetIndexBuf(&ib.view)
		list.DrawIndexed(ib.count, 1, 0, 0, 0)
	}
}
