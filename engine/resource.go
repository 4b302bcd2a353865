// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"unsafe"

	"rd12/driver"
	"rd12/internal/logutil"
	"rd12/linear"
)

// descPool wraps a driver descriptor pool with a bump
// counter. Descriptors are granted in creation order and
// never reclaimed individually.
type descPool struct {
	pool driver.DescPool
	size int
}

func (p *descPool) allocSRV(tex driver.Texture) driver.DescHandle {
	if p.size >= p.pool.Cap() {
		panic("engine: descPool: out of descriptors")
	}
	i := p.size
	p.size++
	p.pool.SetSRV(i, tex)
	return p.pool.Handle(i)
}

// VertexBuffer is a device-local buffer holding one vertex
// attribute stream.
type VertexBuffer struct {
	buf   driver.Buffer
	view  driver.VertexBufView
	count int
}

// Len returns the number of elements in the buffer.
func (b *VertexBuffer) Len() int { return b.count }

// Destroy releases the buffer.
// It must not be called while the buffer may be in use by
// the GPU.
func (b *VertexBuffer) Destroy() { b.buf.Destroy() }

// IndexBuffer is a device-local buffer holding 32-bit
// indices.
type IndexBuffer struct {
	buf   driver.Buffer
	view  driver.IndexBufView
	count int
}

// Len returns the number of indices in the buffer.
func (b *IndexBuffer) Len() int { return b.count }

// Destroy releases the buffer.
func (b *IndexBuffer) Destroy() { b.buf.Destroy() }

// ConstantBuffer is a device-local buffer holding shader
// constants.
type ConstantBuffer struct {
	buf  driver.Buffer
	size int64
}

// Destroy releases the buffer.
func (b *ConstantBuffer) Destroy() { b.buf.Destroy() }

// bytesOf returns the raw bytes of a slice of plain structs.
func bytesOf[T any](elems []T) []byte {
	var zero T
	n := len(elems) * int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&elems[0])), n)
}

// newDeviceBuffer stages data in the upload ring, creates a
// device-local buffer of the same size, records the ring to
// buffer copy on the copy queue and the transition to state
// on the graphics queue.
// The transition is recorded on the graphics list so it is
// ordered after the copy by the fence wait that
// ExecuteCopyCommands inserts.
func (r *Renderer) newDeviceBuffer(data []byte, alignment int64, state driver.ResState) driver.Buffer {
	off := r.copyToUploadBuffer(data, alignment)
	size := int64(len(data))
	buf, err := r.dev.NewBuffer(size, false)
	if err != nil {
		logutil.Fatalf("engine: cannot create buffer: %v", err)
	}
	r.copier.list.CopyBuffer(&driver.BufferCopy{
		From:    r.upload.buf,
		FromOff: off,
		To:      buf,
		Size:    size,
	})
	r.graph.list.Transition([]driver.Transition{{
		Res:    buf,
		Before: driver.StCopyDst,
		After:  state,
	}})
	return buf
}

// CreateVertexBuffer creates a device-local vertex buffer
// from a stream of vertex elements.
// The data is staged through the upload ring; it is safe to
// discard elems once the call returns, but the buffer must
// not be drawn from before the pending copies execute.
func CreateVertexBuffer[T any](r *Renderer, elems []T) *VertexBuffer {
	if len(elems) == 0 {
		panic("engine: CreateVertexBuffer: no elements")
	}
	var zero T
	stride := int(unsafe.Sizeof(zero))
	data := bytesOf(elems)
	buf := r.newDeviceBuffer(data, dataAlignment, driver.StVertexConst)
	return &VertexBuffer{
		buf: buf,
		view: driver.VertexBufView{
			Buf:    buf,
			Size:   int64(len(data)),
			Stride: stride,
		},
		count: len(elems),
	}
}

// CreateIndexBuffer creates a device-local index buffer.
// At least one triangle's worth of indices is required.
func (r *Renderer) CreateIndexBuffer(indices []uint32) *IndexBuffer {
	if len(indices) < 3 {
		panic("engine: CreateIndexBuffer: fewer than 3 indices")
	}
	data := bytesOf(indices)
	buf := r.newDeviceBuffer(data, dataAlignment, driver.StIndex)
	return &IndexBuffer{
		buf: buf,
		view: driver.IndexBufView{
			Buf:    buf,
			Size:   int64(len(data)),
			Format: driver.Index32,
		},
		count: len(indices),
	}
}

// CreateConstantBuffer creates a device-local constant
// buffer of the given size, rounded up to the constant
// buffer placement alignment. data, if non-nil, supplies the
// initial contents and must not exceed size.
func (r *Renderer) CreateConstantBuffer(size int64, data []byte) *ConstantBuffer {
	if size <= 0 {
		panic("engine: CreateConstantBuffer: size must be positive")
	}
	if int64(len(data)) > size {
		panic("engine: CreateConstantBuffer: data exceeds size")
	}
	size = alignUp(size, driver.ConstBufAlignment)
	if data != nil {
		padded := make([]byte, size)
		copy(padded, data)
		buf := r.newDeviceBuffer(padded, driver.ConstBufAlignment, driver.StVertexConst)
		return &ConstantBuffer{buf: buf, size: size}
	}
	buf, err := r.dev.NewBuffer(size, false)
	if err != nil {
		logutil.Fatalf("engine: cannot create buffer: %v", err)
	}
	return &ConstantBuffer{buf: buf, size: size}
}

// Material describes the shading constants of a single
// material. Its layout matches the shader-side material
// table.
type Material struct {
	BaseColor linear.V4
	Metalness float32
	Roughness float32
	_         [2]float32
}

// SetMaterials uploads the material table that draw calls
// index into through their material indices.
// It replaces any previously set table; replaced tables are
// kept alive until Stop, since frames referencing them may
// still be in flight.
func (r *Renderer) SetMaterials(materials []Material) {
	if len(materials) == 0 {
		panic("engine: SetMaterials: no materials")
	}
	data := bytesOf(materials)
	cb := r.CreateConstantBuffer(int64(len(data)), data)
	if r.materials != nil {
		r.retired = append(r.retired, r.materials)
	}
	r.materials = cb.buf
}
