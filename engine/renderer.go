// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"os"
	"unsafe"

	"rd12/driver"
	"rd12/internal/logutil"
	"rd12/linear"
)

// Root signature parameters.
const (
	// Per-frame transform constants (vertex stage).
	rootXform = iota
	// Material index of the current draw (fragment stage).
	rootMatIdx
	// Material table constants (fragment stage).
	rootMaterials
	// Texture descriptor table (fragment stage).
	rootTextures
)

const depthFmt = driver.FD32Float

// frameResources is the per-in-flight-frame resource set.
// It rotates with the frame index so a frame never writes
// resources a previous, still executing frame reads.
type frameResources struct {
	depth driver.Texture
	// Host-visible per-frame transform constants.
	xform driver.Buffer
}

// Renderer drives the frame pipeline.
// A single thread records all commands; the graphics and
// copy queues execute asynchronously and are ordered through
// fences only.
type Renderer struct {
	dev    driver.Device
	cfg    Config
	graph  *cmdContext
	copier *cmdContext
	sc     driver.Swapchain
	// Index of the back buffer the next frame renders into.
	backBufIdx int
	// Index of the frame resource set in use, in [0, FrameCount).
	frameIdx int
	frames   []frameResources

	rtvPool driver.DescPool
	dsvPool driver.DescPool
	srvPool descPool

	rootSig driver.RootSignature
	pso     driver.Pipeline
	vport   driver.Viewport
	sciss   driver.Scissor

	upload    uploadRing
	materials driver.Buffer
	// Replaced resources awaiting destruction on Stop.
	retired []driver.Buffer
}

// New creates a Renderer on dev.
// The shader bytecode named by cfg must exist; a missing or
// unreadable blob is a configuration error and terminates
// the process.
func New(dev driver.Device, cfg Config) (*Renderer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	r := &Renderer{dev: dev, cfg: cfg}

	gq, err := dev.NewQueue(driver.QGraphics)
	if err != nil {
		return nil, err
	}
	// newCmdContext destroys the queue itself on failure.
	r.graph, err = newCmdContext(gq, cfg.FrameCount, nil)
	if err != nil {
		return nil, err
	}
	cq, err := dev.NewQueue(driver.QCopy)
	if err != nil {
		r.Stop()
		return nil, err
	}
	r.copier, err = newCmdContext(cq, 2, nil)
	if err != nil {
		r.Stop()
		return nil, err
	}

	r.sc, err = dev.NewSwapchain(gq, &driver.SwapchainDesc{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     driver.FBGRA8Unorm,
		Buffers:    cfg.BufferCount,
		MaxLatency: cfg.FrameCount,
	})
	if err != nil {
		r.Stop()
		return nil, err
	}
	r.backBufIdx = r.sc.Index()

	if err := r.createDescPools(); err != nil {
		r.Stop()
		return nil, err
	}
	if err := r.createFrameResources(); err != nil {
		r.Stop()
		return nil, err
	}
	r.upload, err = newUploadRing(dev, cfg.UploadBufferSize)
	if err != nil {
		r.Stop()
		return nil, err
	}
	if err := r.configurePipeline(); err != nil {
		r.Stop()
		return nil, err
	}
	// Resets from now on restore the pipeline; the first
	// recording binds it explicitly.
	r.graph.list.SetPipeline(r.pso)

	r.vport = driver.Viewport{
		Width:  float32(cfg.Width),
		Height: float32(cfg.Height),
		Znear:  0,
		Zfar:   1,
	}
	r.sciss = driver.Scissor{Width: cfg.Width, Height: cfg.Height}
	return r, nil
}

func (r *Renderer) createDescPools() (err error) {
	r.rtvPool, err = r.dev.NewDescPool(driver.DRTV, r.cfg.BufferCount)
	if err != nil {
		return
	}
	for i := 0; i < r.cfg.BufferCount; i++ {
		r.rtvPool.SetRTV(i, r.sc.Buffer(i))
	}
	r.dsvPool, err = r.dev.NewDescPool(driver.DDSV, r.cfg.FrameCount)
	if err != nil {
		return
	}
	var srvs driver.DescPool
	srvs, err = r.dev.NewDescPool(driver.DSRV, r.cfg.MaxTextures)
	if err != nil {
		return
	}
	r.srvPool = descPool{pool: srvs}
	return
}

func (r *Renderer) createFrameResources() error {
	r.frames = make([]frameResources, r.cfg.FrameCount)
	for i := range r.frames {
		depth, err := r.dev.NewTexture(&driver.TexDesc{
			Format:       depthFmt,
			Width:        r.cfg.Width,
			Height:       r.cfg.Height,
			Layers:       1,
			Levels:       1,
			Samples:      1,
			DepthStencil: true,
		})
		if err != nil {
			return err
		}
		r.dsvPool.SetDSV(i, depth)
		xform, err := r.dev.NewBuffer(driver.ConstBufAlignment, true)
		if err != nil {
			depth.Destroy()
			return err
		}
		r.frames[i] = frameResources{depth: depth, xform: xform}
	}
	return nil
}

// configurePipeline creates the root signature and the
// graphics pipeline state from precompiled shader bytecode.
func (r *Renderer) configurePipeline() error {
	var err error
	r.rootSig, err = r.dev.NewRootSignature([]driver.RootParam{
		{Type: driver.RootCBV, Reg: 0, Stages: driver.SVertex},
		{Type: driver.RootConst, Reg: 0, Len: 1, Stages: driver.SFragment},
		{Type: driver.RootCBV, Reg: 1, Stages: driver.SFragment},
		{Type: driver.RootTable, Reg: 0, Len: r.cfg.MaxTextures, Stages: driver.SFragment},
	})
	if err != nil {
		return err
	}
	vs, err := os.ReadFile(r.cfg.VSPath)
	if err != nil {
		logutil.Fatalf("engine: cannot read vertex shader: %v", err)
	}
	ps, err := os.ReadFile(r.cfg.PSPath)
	if err != nil {
		logutil.Fatalf("engine: cannot read pixel shader: %v", err)
	}
	r.pso, err = r.dev.NewPipeline(&driver.GraphState{
		RootSig: r.rootSig,
		VS:      vs,
		PS:      ps,
		Input: []driver.VertexIn{
			{Format: driver.VFloat3, Slot: 0, Name: "POSITION"},
			{Format: driver.VFloat3, Slot: 1, Name: "NORMAL"},
		},
		Topology: driver.TTriangle,
		Raster: driver.RasterState{
			Clockwise: true,
			Cull:      driver.CullBack,
			DepthClip: true,
		},
		// Depth is reversed: cleared to 0, greater passes.
		DS: driver.DSState{
			DepthTest:  true,
			DepthWrite: true,
			DepthCmp:   driver.CGreater,
		},
		ColorFmt: driver.FBGRA8Unorm,
		DepthFmt: depthFmt,
		Samples:  1,
	})
	return err
}

// StartFrame begins recording a frame: it transitions the
// back buffer into the render-target state, binds the frame
// state, and clears the targets.
func (r *Renderer) StartFrame() {
	list := r.graph.list
	list.Transition([]driver.Transition{{
		Res:    r.sc.Buffer(r.backBufIdx),
		Before: driver.StPresent,
		After:  driver.StRenderTarget,
	}})
	list.SetRootSignature(r.rootSig)
	list.SetRootCBV(rootXform, r.frames[r.frameIdx].xform)
	if r.materials != nil {
		list.SetRootCBV(rootMaterials, r.materials)
	}
	list.SetDescPool(r.srvPool.pool)
	list.SetRootTable(rootTextures, 0)
	list.SetViewport(r.vport)
	list.SetScissor(r.sciss)
	rtv := r.rtvPool.Handle(r.backBufIdx)
	dsv := r.dsvPool.Handle(r.frameIdx)
	list.SetRenderTargets(rtv, dsv)
	list.ClearRenderTarget(rtv, [4]float32{0, 0, 0, 1})
	list.ClearDepthStencil(dsv, 0, 0)
	list.SetTopology(driver.TTriangle)
}

// FinalizeFrame transitions the back buffer into the present
// state, submits the frame and presents it, then prepares
// recording of the next frame.
// The swapchain readiness wait comes last so it overlaps the
// end-of-frame work above instead of stalling the next
// frame's setup.
func (r *Renderer) FinalizeFrame() {
	r.graph.list.Transition([]driver.Transition{{
		Res:    r.sc.Buffer(r.backBufIdx),
		Before: driver.StRenderTarget,
		After:  driver.StPresent,
	}})
	r.graph.executeCmdList()
	if err := r.sc.Present(r.cfg.VSyncInterval); err != nil {
		logutil.Fatalf("engine: cannot present: %v", err)
	}
	r.backBufIdx = r.sc.Index()
	r.frameIdx = (r.frameIdx + 1) % r.cfg.FrameCount
	r.graph.resetCmdAllocator()
	r.graph.resetCmdList(r.pso)
	r.sc.Wait()
}

// SetViewProjMatrix sets the view-projection transform of
// the frame being recorded.
// It writes the current frame's transform constants in
// place; frame resource rotation keeps the write from racing
// frames still in flight.
func (r *Renderer) SetViewProjMatrix(m *linear.M4) {
	data := unsafe.Slice((*byte)(unsafe.Pointer(m)), unsafe.Sizeof(*m))
	copy(r.frames[r.frameIdx].xform.Bytes(), data)
}

// Stop drains both queues and destroys every renderer-owned
// resource. The Renderer must not be used afterwards.
func (r *Renderer) Stop() {
	if r.graph != nil {
		r.graph.finish()
	}
	if r.copier != nil {
		r.copier.finish()
	}
	if r.materials != nil {
		r.materials.Destroy()
	}
	for _, b := range r.retired {
		b.Destroy()
	}
	r.retired = nil
	if r.upload.buf != nil {
		r.upload.buf.Destroy()
	}
	for _, f := range r.frames {
		if f.depth != nil {
			f.depth.Destroy()
		}
		if f.xform != nil {
			f.xform.Destroy()
		}
	}
	r.frames = nil
	if r.pso != nil {
		r.pso.Destroy()
	}
	if r.rootSig != nil {
		r.rootSig.Destroy()
	}
	if r.srvPool.pool != nil {
		r.srvPool.pool.Destroy()
	}
	if r.dsvPool != nil {
		r.dsvPool.Destroy()
	}
	if r.rtvPool != nil {
		r.rtvPool.Destroy()
	}
	if r.sc != nil {
		r.sc.Destroy()
	}
	if r.graph != nil {
		r.graph.destroy()
		r.graph = nil
	}
	if r.copier != nil {
		r.copier.destroy()
		r.copier = nil
	}
}
