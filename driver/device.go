// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package driver

// Device is the main interface to an underlying driver
// implementation. It is used to create every other driver
// type. A Device is obtained from a call to Driver.Open.
type Device interface {
	// Driver returns the Driver that owns the Device.
	Driver() Driver

	// NewQueue creates a new command queue of the given
	// type, with its own monotonically increasing fence.
	// Queues of different types execute independently of
	// one another; ordering across queues must be
	// established explicitly through Queue.SyncQueue.
	NewQueue(t QueueType) (Queue, error)

	// NewBuffer creates a new buffer.
	// If upload is true, the buffer is placed in
	// host-visible memory and persistently mapped for
	// CPU writes; otherwise it resides in device-local
	// memory and is only reachable through copy commands.
	NewBuffer(size int64, upload bool) (Buffer, error)

	// NewTexture creates a new texture in device-local
	// memory.
	NewTexture(desc *TexDesc) (Texture, error)

	// NewDescPool creates a new descriptor pool of the
	// given type holding capacity descriptors.
	NewDescPool(t DescType, capacity int) (DescPool, error)

	// NewRootSignature creates a new root signature
	// describing the resources bound to the pipeline.
	NewRootSignature(params []RootParam) (RootSignature, error)

	// NewPipeline creates a new graphics pipeline state.
	// The shader fields of state must contain precompiled
	// bytecode; no compilation happens here.
	NewPipeline(state *GraphState) (Pipeline, error)

	// NewSwapchain creates a new swapchain that presents
	// through the given queue, which must be of type
	// QGraphics.
	NewSwapchain(q Queue, desc *SwapchainDesc) (Swapchain, error)

	// Limits returns the implementation limits.
	// They are immutable for the lifetime of the Device.
	Limits() Limits
}

// QueueType is the type of a command queue, which restricts
// the kinds of commands its command lists may record.
type QueueType int

// Queue types.
const (
	// Supports all types of commands.
	QGraphics QueueType = iota
	// Supports compute and copy commands only.
	QCompute
	// Supports copy commands only.
	QCopy
)

// Data placement alignments, in bytes.
// These match the strictest requirements across supported
// backends, so the engine can rely on them without querying.
const (
	// Placement alignment of constant buffer data.
	ConstBufAlignment = 256
	// Placement alignment of texture data.
	TexPlaceAlignment = 512
	// Alignment of texture row pitch.
	TexRowAlignment = 256
)

// Limits describes implementation limits.
// These may vary across drivers and devices.
type Limits struct {
	// Maximum width and height of 2D textures.
	MaxTexture2D int
	// Maximum number of simultaneous render targets.
	MaxRenderTargets int
	// Maximum number of vertex input slots.
	MaxVertexIn int
	// Maximum number of descriptors in a single pool.
	MaxDescriptors int
}
