// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package driver

// Destroyer is the interface that wraps the Destroy method.
// Unless stated otherwise, a driver type that embeds this
// interface must be explicitly destroyed when no longer
// needed, and is invalid thereafter.
type Destroyer interface {
	Destroy()
}

// Buffer is the interface that defines a linear allocation
// of GPU memory.
type Buffer interface {
	Resource

	// Visible returns whether the buffer is host visible.
	Visible() bool

	// Bytes returns a slice of length Cap referring to the
	// underlying buffer memory. It panics if the buffer is
	// not host visible.
	// Host-visible buffers are persistently mapped; data
	// written through the returned slice becomes visible to
	// the GPU without an explicit flush.
	Bytes() []byte

	// Cap returns the capacity of the buffer in bytes.
	Cap() int64
}

// Texture is the interface that defines a multidimensional
// allocation of GPU memory.
type Texture interface {
	Resource

	// Desc returns the descriptor the texture was created
	// with.
	Desc() TexDesc
}

// TexDesc describes the properties of a texture.
type TexDesc struct {
	Format PixelFmt
	Width  int
	Height int
	Layers int
	Levels int
	// Sample count. Must be a power of two.
	Samples int
	// RenderTarget indicates that the texture can be bound
	// as a render target through an RTV.
	RenderTarget bool
	// DepthStencil indicates that the texture can be bound
	// as a depth/stencil target through a DSV.
	DepthStencil bool
}

// PixelFmt is the type of texture formats.
type PixelFmt int

// Pixel formats.
const (
	FInvalid PixelFmt = iota
	FRGBA8Unorm
	FRGBA8SRGB
	FBGRA8Unorm
	FRGBA16Float
	FD24UnormS8Uint
	FD32Float
)

// Size returns the size of the pixel format in bytes.
func (f PixelFmt) Size() int {
	switch f {
	case FRGBA8Unorm, FRGBA8SRGB, FBGRA8Unorm, FD24UnormS8Uint, FD32Float:
		return 4
	case FRGBA16Float:
		return 8
	}
	return 0
}

// DescType is the type of descriptors a DescPool holds.
type DescType int

// Descriptor types.
const (
	// Render target views.
	DRTV DescType = iota
	// Depth/stencil views.
	DDSV
	// Shader resource views.
	DSRV
	// Samplers.
	DSampler
)

// DescPool is the interface that defines a pool of
// descriptors of a single type. Descriptors are written
// into slots by index and referred to through DescHandles.
type DescPool interface {
	Destroyer

	// Type returns the descriptor type of the pool.
	Type() DescType

	// Cap returns the capacity of the pool.
	Cap() int

	// Handle returns a handle to the i-th descriptor.
	// It panics if i is out of bounds.
	Handle(i int) DescHandle

	// SetRTV writes a render target view for tex into the
	// i-th slot. The pool's type must be DRTV.
	SetRTV(i int, tex Texture)

	// SetDSV writes a depth/stencil view for tex into the
	// i-th slot. The pool's type must be DDSV.
	SetDSV(i int, tex Texture)

	// SetSRV writes a shader resource view for tex into
	// the i-th slot. The pool's type must be DSRV.
	SetSRV(i int, tex Texture)
}

// DescHandle identifies a single descriptor within a pool.
type DescHandle struct {
	Pool  DescPool
	Index int
}

// RootParamType is the type of a root signature parameter.
type RootParamType int

// Root parameter types.
const (
	// An inline constant buffer view.
	RootCBV RootParamType = iota
	// One or more 32-bit constants.
	RootConst
	// A table of descriptors within a bound pool.
	RootTable
)

// Stage is a bitmask of shader stages.
type Stage int

// Shader stages.
const (
	SVertex Stage = 1 << iota
	SFragment
)

// RootParam describes a single root signature parameter.
type RootParam struct {
	Type RootParamType
	// Shader register of the parameter.
	Reg int
	// Number of 32-bit values (RootConst) or descriptors
	// (RootTable). Ignored for RootCBV.
	Len int
	// Stages that can access the parameter.
	Stages Stage
}

// RootSignature is the interface that defines the layout of
// resources accessible to a pipeline.
type RootSignature interface {
	Destroyer
}

// VertexFmt is the type of vertex input formats.
type VertexFmt int

// Vertex formats.
const (
	VFloat VertexFmt = iota
	VFloat2
	VFloat3
	VFloat4
)

// Size returns the size of the vertex format in bytes.
func (f VertexFmt) Size() int {
	switch f {
	case VFloat:
		return 4
	case VFloat2:
		return 8
	case VFloat3:
		return 12
	case VFloat4:
		return 16
	}
	return 0
}

// VertexIn describes a single vertex input attribute.
type VertexIn struct {
	Format VertexFmt
	// Input slot the attribute is fetched from.
	Slot int
	// Semantic name of the attribute.
	Name string
}

// CullMode is the type of face culling modes.
type CullMode int

// Cull modes.
const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// RasterState describes the rasterizer state of a graphics
// pipeline.
type RasterState struct {
	// Winding order of front-facing primitives.
	Clockwise bool
	Cull      CullMode
	DepthClip bool
}

// CmpFunc is the type of comparison functions.
type CmpFunc int

// Comparison functions.
const (
	CNever CmpFunc = iota
	CLess
	CEqual
	CLessEqual
	CGreater
	CNotEqual
	CGreaterEqual
	CAlways
)

// DSState describes the depth/stencil state of a graphics
// pipeline.
type DSState struct {
	DepthTest   bool
	DepthWrite  bool
	DepthCmp    CmpFunc
	StencilTest bool
}

// GraphState describes a complete graphics pipeline state.
type GraphState struct {
	RootSig RootSignature
	// Precompiled shader bytecode.
	VS []byte
	PS []byte
	// Vertex input layout.
	Input    []VertexIn
	Topology Topology
	Raster   RasterState
	DS       DSState
	// Formats of the render target and depth/stencil
	// attachments.
	ColorFmt PixelFmt
	DepthFmt PixelFmt
	Samples  int
}

// Pipeline is the interface that defines a pipeline state
// object.
type Pipeline interface {
	Destroyer
}
