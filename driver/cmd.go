// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package driver

// Queue is the interface that defines a GPU command queue.
// Command lists are recorded through CmdList and submitted
// for asynchronous execution through Execute. Every queue
// owns a single fence whose value increases monotonically;
// it is the only means of observing execution progress.
type Queue interface {
	Destroyer

	// Type returns the type of the queue.
	Type() QueueType

	// NewCmdAllocator creates a new command allocator.
	// An allocator backs the storage of recorded commands
	// and must not be reset while any command list recorded
	// against it is still executing.
	NewCmdAllocator() (CmdAllocator, error)

	// NewCmdList creates a new command list recording into
	// alloc, optionally with an initial pipeline state.
	// The list is created in the recording state.
	NewCmdList(alloc CmdAllocator, initial Pipeline) (CmdList, error)

	// Execute submits closed command lists for execution.
	// Submission failures indicate device loss or misuse
	// and are unrecoverable; implementations terminate the
	// process with a diagnostic in that case.
	Execute(lists ...CmdList)

	// InsertFence inserts a signal of the queue's fence
	// after all previously submitted work and returns the
	// fence together with the value it will reach once
	// that work completes.
	InsertFence() (Fence, uint64)

	// SyncQueue makes the queue wait, on the GPU timeline,
	// until fence reaches value. Work submitted to the
	// queue after this call does not begin execution
	// before then. The calling thread does not block.
	SyncQueue(fence Fence, value uint64)

	// SyncThread blocks the calling thread until the
	// queue's own fence reaches value.
	SyncThread(value uint64)

	// Fence returns the queue's fence.
	Fence() Fence

	// Finish blocks until the queue is drained.
	Finish()
}

// Fence is a monotonically increasing 64-bit counter
// associated with a queue. A value is reached once the GPU
// has finished all work enqueued before the corresponding
// fence insertion point.
type Fence interface {
	// Completed returns the last reached value.
	Completed() uint64
}

// CmdAllocator is the interface that defines the backing
// storage of recorded commands.
type CmdAllocator interface {
	Destroyer

	// Reset reclaims the allocator's memory.
	// It must not be called while a command list recorded
	// against the allocator is still executing.
	Reset() error
}

// CmdList is the interface that defines a command list.
// A list records commands against an allocator, is closed,
// submitted through Queue.Execute, and may then be reset
// against an allocator for reuse.
type CmdList interface {
	Destroyer

	// Reset returns the list to the recording state,
	// recording into alloc from now on, optionally with an
	// initial pipeline state.
	// The list must not be in the recording state already.
	Reset(alloc CmdAllocator, initial Pipeline) error

	// Close ends recording and prepares the list for
	// execution.
	Close() error

	// IsRecording returns whether the list is recording.
	IsRecording() bool

	// Transition inserts resource state transitions.
	Transition(ts []Transition)

	// CopyBuffer copies data between buffer regions.
	// Queues of any type may record it.
	CopyBuffer(param *BufferCopy)

	// CopyBufToTex copies buffer data into a texture
	// subresource. Queues of any type may record it.
	CopyBufToTex(param *BufTexCopy)

	// SetPipeline sets the pipeline state.
	SetPipeline(pl Pipeline)

	// SetRootSignature sets the root signature that
	// subsequent SetRoot* calls refer to.
	SetRootSignature(rs RootSignature)

	// SetRootCBV binds a buffer as the constant buffer of
	// the given root parameter.
	SetRootCBV(param int, buf Buffer)

	// SetRootConst sets a 32-bit root constant of the
	// given root parameter.
	SetRootConst(param int, value uint32)

	// SetDescPool sets the descriptor pool that root
	// table parameters index into.
	SetDescPool(pool DescPool)

	// SetRootTable binds a descriptor range starting at
	// start within the bound pool to the given root
	// parameter.
	SetRootTable(param, start int)

	// SetViewport sets the viewport.
	SetViewport(vp Viewport)

	// SetScissor sets the scissor rectangle.
	SetScissor(sciss Scissor)

	// SetRenderTargets sets the render target and the
	// depth/stencil target.
	SetRenderTargets(rtv, dsv DescHandle)

	// ClearRenderTarget clears a render target view.
	ClearRenderTarget(rtv DescHandle, color [4]float32)

	// ClearDepthStencil clears a depth/stencil view.
	ClearDepthStencil(dsv DescHandle, depth float32, stencil uint8)

	// SetTopology sets the primitive topology.
	SetTopology(top Topology)

	// SetVertexBufs sets one or more vertex buffer views
	// starting at the given input slot.
	SetVertexBufs(start int, views []VertexBufView)

	// SetIndexBuf sets the index buffer view.
	SetIndexBuf(view *IndexBufView)

	// DrawIndexed draws indexed primitives.
	DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int)
}

// ResState is the state a resource must be in for a given
// class of GPU accesses.
type ResState int

// Resource states.
const (
	StCommon ResState = iota
	StVertexConst
	StIndex
	StRenderTarget
	StDepthWrite
	StShaderRes
	StCopySrc
	StCopyDst
	StGenericRead
	StPresent
)

// Resource is the common interface of state-transitionable
// resources (Buffer and Texture).
type Resource interface {
	Destroyer
}

// Transition represents a resource state transition.
// It is a GPU-side barrier, not a CPU synchronization
// primitive.
type Transition struct {
	Res    Resource
	Before ResState
	After  ResState
}

// BufferCopy describes the parameters of a copy command
// that copies data from one buffer to another.
type BufferCopy struct {
	From    Buffer
	FromOff int64
	To      Buffer
	ToOff   int64
	Size    int64
}

// BufTexCopy describes the parameters of a copy command
// that copies buffer data into a texture subresource.
// BufOff must be aligned to TexPlaceAlignment and RowPitch
// to TexRowAlignment.
type BufTexCopy struct {
	Buf      Buffer
	BufOff   int64
	RowPitch int64
	Tex      Texture
	Level    int
	Width    int
	Height   int
	Depth    int
}

// VertexBufView locates vertex data within a buffer.
type VertexBufView struct {
	Buf    Buffer
	Off    int64
	Size   int64
	Stride int
}

// IndexFmt describes the format of index buffer data.
type IndexFmt int

// Index formats.
const (
	Index16 IndexFmt = 2
	Index32 IndexFmt = 4
)

// IndexBufView locates index data within a buffer.
type IndexBufView struct {
	Buf    Buffer
	Off    int64
	Size   int64
	Format IndexFmt
}

// Viewport defines the bounds of a viewport.
type Viewport struct {
	X, Y, Width, Height, Znear, Zfar float32
}

// Scissor defines a scissor rectangle.
type Scissor struct {
	X, Y, Width, Height int
}

// Topology is the type of primitive topologies,
// which determines how vertex data is assembled.
type Topology int

// Primitive topologies.
const (
	TPoint Topology = iota
	TLine
	TTriangle
)
