// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"

	"rd12/driver"
	"rd12/internal/logutil"
)

// uploadSegNone marks the absence of an in-flight segment.
// It compares greater than any reservation end, so overlap
// checks against it never trigger.
const uploadSegNone = math.MaxInt64

// uploadRing is a fixed-capacity staging arena backed by a
// persistently mapped host-visible buffer.
// It has a single writer (the thread driving the renderer)
// and asynchronous readers (the copy engine). The region
// [currSegStart, offset) holds data written since the last
// flush and not yet submitted; [prevSegStart, currSegStart)
// holds data submitted to the copy queue whose GPU-side copy
// may still be executing. Both regions are taken mod
// capacity.
type uploadRing struct {
	buf          driver.Buffer
	capacity     int64
	offset       int64
	currSegStart int64
	prevSegStart int64
}

func newUploadRing(dev driver.Device, capacity int64) (uploadRing, error) {
	buf, err := dev.NewBuffer(capacity, true)
	if err != nil {
		return uploadRing{}, err
	}
	return uploadRing{
		buf:          buf,
		capacity:     capacity,
		prevSegStart: uploadSegNone,
	}, nil
}

// overlapKind classifies whether a prospective reservation
// would overwrite ring data the GPU has not consumed yet.
type overlapKind int

const (
	overlapNone overlapKind = iota
	// The range crosses the current, unflushed segment.
	// All pending copies must execute and complete before
	// the write can proceed.
	overlapCurr
	// The range crosses the previous segment, whose copy
	// submission may still be executing.
	overlapPrev
)

// classifyOverlap reports whether the aligned reservation
// range ending at end overlaps unconsumed ring data, given
// the ring state at entry. wrapped indicates that the range
// was relocated to the buffer's start.
// overlapCurr dominates overlapPrev: overwriting unflushed
// data implies draining everything.
func classifyOverlap(offset, currSeg, prevSeg, end int64, wrapped bool) overlapKind {
	if (offset < currSeg && (currSeg <= end || wrapped)) || (currSeg <= end && wrapped) {
		return overlapCurr
	}
	if (offset <= prevSeg && prevSeg < end) || (prevSeg < end && wrapped) {
		return overlapPrev
	}
	return overlapNone
}

// reserveUploadChunk grants [off, off+size) of the upload
// ring for writing, aligning off to alignment and flushing
// pending copy commands first if the range would alias data
// the GPU has not consumed.
// The granted range is stable only until the next
// reservation or flush; callers must finish their write and
// record the corresponding copy command before requesting
// another chunk.
// It panics if size exceeds the ring capacity: that is a
// configuration error, not a runtime condition.
func (r *Renderer) reserveUploadChunk(size, alignment int64) int64 {
	if size <= 0 {
		panic("engine: reserveUploadChunk: size must be positive")
	}
	u := &r.upload
	aligned := alignUp(u.offset, alignment)
	wrapped := false
	if u.capacity-aligned < size {
		if u.capacity < size {
			panic("engine: reserveUploadChunk: size exceeds upload buffer capacity")
		}
		aligned = 0
		wrapped = true
	}
	end := aligned + size
	kind := classifyOverlap(u.offset, u.currSegStart, u.prevSegStart, end, wrapped)
	// The flush captures offset as the new currSegStart,
	// so it must be advanced to the aligned start first.
	u.offset = aligned
	switch kind {
	case overlapCurr:
		r.ExecuteCopyCommands(true)
	case overlapPrev:
		r.ExecuteCopyCommands(false)
	}
	u.offset = end
	return aligned
}

// copyToUploadBuffer reserves a chunk and copies data into
// it, returning the ring offset of the copy.
func (r *Renderer) copyToUploadBuffer(data []byte, alignment int64) int64 {
	off := r.reserveUploadChunk(int64(len(data)), alignment)
	copy(r.upload.buf.Bytes()[off:], data)
	return off
}

// ExecuteCopyCommands submits all pending copy commands and
// makes the graphics queue wait, on the GPU timeline, for
// their completion. The calling thread does not block unless
// immediate is set, in which case it stalls until the copy
// queue's fence is reached; that path serializes CPU and GPU
// and signals an undersized upload buffer, so it is logged.
func (r *Renderer) ExecuteCopyCommands(immediate bool) {
	fence, val := r.copier.executeCmdList()
	r.graph.queue.SyncQueue(fence, val)
	if immediate {
		logutil.Warnf("engine: immediate copy execution; consider a larger upload buffer")
		r.copier.queue.SyncThread(val)
	}
	r.copier.resetCmdAllocator()
	r.copier.resetCmdList(nil)
	u := &r.upload
	if immediate {
		// Fully drained; no segment remains in flight.
		u.prevSegStart = uploadSegNone
	} else {
		u.prevSegStart = u.currSegStart
	}
	u.currSegStart = u.offset
}
