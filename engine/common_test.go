// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"rd12/driver"
	"rd12/internal/logutil"
)

func TestMain(m *testing.M) {
	logutil.Replace(zap.NewNop())
	os.Exit(m.Run())
}

// testConfig returns a small configuration suitable for
// driving the renderer against recDevice.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 360
	cfg.FrameCount = 2
	cfg.BufferCount = 2
	cfg.UploadBufferSize = 1024
	cfg.VSyncInterval = 0
	cfg.MaxTextures = 8
	cfg.VSPath = "testdata/draw.vs.cso"
	cfg.PSPath = "testdata/draw.ps.cso"
	return cfg
}

func newTestRenderer(t *testing.T, cfg Config) (*Renderer, *recDevice) {
	t.Helper()
	dev := &recDevice{}
	r, err := New(dev, cfg)
	if err != nil {
		t.Fatalf("New failed:\nhave %v\nwant nil", err)
	}
	return r, dev
}

// recDevice implements driver.Device, recording every
// command for inspection. Fence completion is driven
// manually by tests.
type recDevice struct {
	queues []*recQueue
}

func (d *recDevice) Driver() driver.Driver { return nil }

func (d *recDevice) NewQueue(t driver.QueueType) (driver.Queue, error) {
	q := &recQueue{typ: t}
	d.queues = append(d.queues, q)
	return q, nil
}

func (d *recDevice) NewBuffer(size int64, upload bool) (driver.Buffer, error) {
	return &recBuffer{data: make([]byte, size), visible: upload}, nil
}

func (d *recDevice) NewTexture(desc *driver.TexDesc) (driver.Texture, error) {
	return &recTexture{desc: *desc}, nil
}

func (d *recDevice) NewDescPool(t driver.DescType, capacity int) (driver.DescPool, error) {
	return &recDescPool{typ: t, slots: make([]driver.Texture, capacity)}, nil
}

func (d *recDevice) NewRootSignature(params []driver.RootParam) (driver.RootSignature, error) {
	return &recRootSig{params: params}, nil
}

func (d *recDevice) NewPipeline(state *driver.GraphState) (driver.Pipeline, error) {
	return &recPipeline{state: *state}, nil
}

func (d *recDevice) NewSwapchain(q driver.Queue, desc *driver.SwapchainDesc) (driver.Swapchain, error) {
	sc := &recSwapchain{desc: *desc}
	for i := 0; i < desc.Buffers; i++ {
		sc.bufs = append(sc.bufs, &recTexture{desc: driver.TexDesc{
			Format:       desc.Format,
			Width:        desc.Width,
			Height:       desc.Height,
			Layers:       1,
			Levels:       1,
			Samples:      1,
			RenderTarget: true,
		}})
	}
	return sc, nil
}

func (d *recDevice) Limits() driver.Limits {
	return driver.Limits{
		MaxTexture2D:     16384,
		MaxRenderTargets: 8,
		MaxVertexIn:      16,
		MaxDescriptors:   1 << 20,
	}
}

// queue returns the first created queue of the given type.
func (d *recDevice) queue(t driver.QueueType) *recQueue {
	for _, q := range d.queues {
		if q.typ == t {
			return q
		}
	}
	return nil
}

type fenceWait struct {
	fence driver.Fence
	val   uint64
}

type recQueue struct {
	typ   driver.QueueType
	fence recFence
	// Next fence value to hand out on InsertFence.
	next uint64
	// Op snapshots of every executed list, in order.
	batches     [][]string
	queueWaits  []fenceWait
	threadWaits []uint64
	finished    int
	destroys    int
}

func (q *recQueue) Destroy()               { q.destroys++ }
func (q *recQueue) Type() driver.QueueType { return q.typ }

func (q *recQueue) NewCmdAllocator() (driver.CmdAllocator, error) {
	return &recAlloc{}, nil
}

func (q *recQueue) NewCmdList(alloc driver.CmdAllocator, initial driver.Pipeline) (driver.CmdList, error) {
	return &recList{recording: true}, nil
}

func (q *recQueue) Execute(lists ...driver.CmdList) {
	for _, l := range lists {
		rl := l.(*recList)
		ops := make([]string, len(rl.ops))
		copy(ops, rl.ops)
		q.batches = append(q.batches, ops)
	}
}

func (q *recQueue) InsertFence() (driver.Fence, uint64) {
	q.next++
	return &q.fence, q.next
}

func (q *recQueue) SyncQueue(fence driver.Fence, val uint64) {
	q.queueWaits = append(q.queueWaits, fenceWait{fence, val})
}

func (q *recQueue) SyncThread(val uint64) {
	q.threadWaits = append(q.threadWaits, val)
	if val > q.fence.completed {
		q.fence.completed = val
	}
}

func (q *recQueue) Fence() driver.Fence { return &q.fence }

func (q *recQueue) Finish() {
	q.finished++
	q.fence.completed = q.next
}

type recFence struct{ completed uint64 }

func (f *recFence) Completed() uint64 { return f.completed }

type recAlloc struct{ resets int }

func (a *recAlloc) Destroy()     {}
func (a *recAlloc) Reset() error { a.resets++; return nil }

type recList struct {
	recording bool
	ops       []string
	// Typed records for assertions.
	transitions []driver.Transition
	copies      []driver.BufferCopy
	texCopies   []driver.BufTexCopy
	idxViews    []driver.IndexBufView
	vtxViews    [][]driver.VertexBufView
	consts      []uint32
	draws       []int
	depthClears []float32
}

func (l *recList) Destroy() {}

func (l *recList) Reset(alloc driver.CmdAllocator, initial driver.Pipeline) error {
	l.recording = true
	l.ops = nil
	if initial != nil {
		l.ops = append(l.ops, "set pipeline")
	}
	return nil
}

func (l *recList) Close() error {
	l.recording = false
	return nil
}

func (l *recList) IsRecording() bool { return l.recording }

func (l *recList) Transition(ts []driver.Transition) {
	l.ops = append(l.ops, "transition")
	l.transitions = append(l.transitions, ts...)
}

func (l *recList) CopyBuffer(param *driver.BufferCopy) {
	l.ops = append(l.ops, "copy buffer")
	l.copies = append(l.copies, *param)
}

func (l *recList) CopyBufToTex(param *driver.BufTexCopy) {
	l.ops = append(l.ops, "copy buf to tex")
	l.texCopies = append(l.texCopies, *param)
}

func (l *recList) SetPipeline(pl driver.Pipeline) { l.ops = append(l.ops, "set pipeline") }

func (l *recList) SetRootSignature(rs driver.RootSignature) {
	l.ops = append(l.ops, "set root signature")
}

func (l *recList) SetRootCBV(param int, buf driver.Buffer) { l.ops = append(l.ops, "set root cbv") }

func (l *recList) SetRootConst(param int, value uint32) {
	l.ops = append(l.ops, "set root const")
	l.consts = append(l.consts, value)
}

func (l *recList) SetDescPool(pool driver.DescPool) { l.ops = append(l.ops, "set desc pool") }

func (l *recList) SetRootTable(param, start int) { l.ops = append(l.ops, "set root table") }

func (l *recList) SetViewport(vp driver.Viewport) { l.ops = append(l.ops, "set viewport") }

func (l *recList) SetScissor(sciss driver.Scissor) { l.ops = append(l.ops, "set scissor") }

func (l *recList) SetRenderTargets(rtv, dsv driver.DescHandle) {
	l.ops = append(l.ops, "set render targets")
}

func (l *recList) ClearRenderTarget(rtv driver.DescHandle, color [4]float32) {
	l.ops = append(l.ops, "clear render target")
}

func (l *recList) ClearDepthStencil(dsv driver.DescHandle, depth float32, stencil uint8) {
	l.ops = append(l.ops, "clear depth stencil")
	l.depthClears = append(l.depthClears, depth)
}

func (l *recList) SetTopology(top driver.Topology) { l.ops = append(l.ops, "set topology") }

func (l *recList) SetVertexBufs(start int, views []driver.VertexBufView) {
	l.ops = append(l.ops, "set vertex bufs")
	l.vtxViews = append(l.vtxViews, views)
}

func (l *recList) SetIndexBuf(view *driver.IndexBufView) {
	l.ops = append(l.ops, "set index buf")
	l.idxViews = append(l.idxViews, *view)
}

func (l *recList) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) {
	l.ops = append(l.ops, "draw indexed")
	l.draws = append(l.draws, idxCount)
}

type recBuffer struct {
	data    []byte
	visible bool
}

func (b *recBuffer) Destroy()      {}
func (b *recBuffer) Visible() bool { return b.visible }
func (b *recBuffer) Cap() int64    { return int64(len(b.data)) }

func (b *recBuffer) Bytes() []byte {
	if !b.visible {
		panic("recBuffer: not host visible")
	}
	return b.data
}

type recTexture struct{ desc driver.TexDesc }

func (t *recTexture) Destroy()             {}
func (t *recTexture) Desc() driver.TexDesc { return t.desc }

type recDescPool struct {
	typ   driver.DescType
	slots []driver.Texture
}

func (p *recDescPool) Destroy()              {}
func (p *recDescPool) Type() driver.DescType { return p.typ }
func (p *recDescPool) Cap() int              { return len(p.slots) }

func (p *recDescPool) Handle(i int) driver.DescHandle {
	if i < 0 || i >= len(p.slots) {
		panic("recDescPool: handle out of bounds")
	}
	return driver.DescHandle{Pool: p, Index: i}
}

func (p *recDescPool) SetRTV(i int, tex driver.Texture) { p.slots[i] = tex }
func (p *recDescPool) SetDSV(i int, tex driver.Texture) { p.slots[i] = tex }
func (p *recDescPool) SetSRV(i int, tex driver.Texture) { p.slots[i] = tex }

type recRootSig struct{ params []driver.RootParam }

func (r *recRootSig) Destroy() {}

type recPipeline struct{ state driver.GraphState }

func (p *recPipeline) Destroy() {}

type recSwapchain struct {
	desc     driver.SwapchainDesc
	bufs     []driver.Texture
	idx      int
	waits    int
	presents int
	syncs    []int
}

func (s *recSwapchain) Destroy() {}

func (s *recSwapchain) Buffer(i int) driver.Texture { return s.bufs[i] }

func (s *recSwapchain) Index() int { return s.idx }

func (s *recSwapchain) Present(syncInterval int) error {
	s.presents++
	s.syncs = append(s.syncs, syncInterval)
	s.idx = (s.idx + 1) % len(s.bufs)
	return nil
}

func (s *recSwapchain) Wait() { s.waits++ }
