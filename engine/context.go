// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"rd12/driver"
	"rd12/internal/logutil"
)

// cmdContext couples a queue with a rotating set of command
// allocators and a single command list.
// The list records into one allocator at a time; rotation
// reclaims the least recently submitted allocator, waiting
// on the queue's fence only if that submission has not yet
// retired.
type cmdContext struct {
	queue  driver.Queue
	allocs []driver.CmdAllocator
	list   driver.CmdList
	// Fence value of the last submission recorded against
	// each allocator. Zero means retired.
	pending []uint64
	cur     int
}

// newCmdContext creates nalloc command allocators and a
// command list for queue. The list is left in the recording
// state against the first allocator, optionally with an
// initial pipeline state.
// The context takes ownership of queue: on failure it is
// destroyed along with whatever was created, so the caller
// must not destroy it again.
func newCmdContext(queue driver.Queue, nalloc int, initial driver.Pipeline) (*cmdContext, error) {
	c := &cmdContext{
		queue:   queue,
		allocs:  make([]driver.CmdAllocator, nalloc),
		pending: make([]uint64, nalloc),
	}
	for i := range c.allocs {
		alloc, err := queue.NewCmdAllocator()
		if err != nil {
			c.destroy()
			return nil, err
		}
		c.allocs[i] = alloc
	}
	list, err := queue.NewCmdList(c.allocs[0], initial)
	if err != nil {
		c.destroy()
		return nil, err
	}
	c.list = list
	return c, nil
}

// executeCmdList closes and submits the command list and
// inserts a fence after it. It returns the queue's fence and
// the value identifying this submission.
// The list must be reset before further recording.
func (c *cmdContext) executeCmdList() (driver.Fence, uint64) {
	if err := c.list.Close(); err != nil {
		logutil.Fatalf("engine: cannot close command list: %v", err)
	}
	c.queue.Execute(c.list)
	fence, val := c.queue.InsertFence()
	c.pending[c.cur] = val
	return fence, val
}

// resetCmdAllocator rotates to the next allocator and
// reclaims its memory.
// If the allocator's last submission has not retired yet,
// the calling thread blocks until it does. With two or more
// allocators this wait is amortized: it only triggers when
// the CPU runs a full rotation ahead of the GPU.
func (c *cmdContext) resetCmdAllocator() {
	c.cur = (c.cur + 1) % len(c.allocs)
	if v := c.pending[c.cur]; v > c.queue.Fence().Completed() {
		c.queue.SyncThread(v)
	}
	c.pending[c.cur] = 0
	if err := c.allocs[c.cur].Reset(); err != nil {
		logutil.Fatalf("engine: cannot reset command allocator: %v", err)
	}
}

// resetCmdList returns the command list to the recording
// state against the current allocator.
func (c *cmdContext) resetCmdList(initial driver.Pipeline) {
	if err := c.list.Reset(c.allocs[c.cur], initial); err != nil {
		logutil.Fatalf("engine: cannot reset command list: %v", err)
	}
}

// finish blocks until the queue is drained.
func (c *cmdContext) finish() { c.queue.Finish() }

func (c *cmdContext) destroy() {
	if c.list != nil {
		c.list.Destroy()
	}
	for _, alloc := range c.allocs {
		if alloc != nil {
			alloc.Destroy()
		}
	}
	if c.queue != nil {
		c.queue.Destroy()
	}
	*c = cmdContext{}
}
