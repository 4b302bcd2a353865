// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package driver

import "errors"

// ErrCannotPresent means that presentation is not supported
// by a given queue or device.
var ErrCannotPresent = errors.New("driver: cannot present")

// ErrSwapchain means that a swapchain is out of date and
// must be recreated.
var ErrSwapchain = errors.New("driver: invalid swapchain")

// SwapchainDesc describes the properties of a swapchain.
type SwapchainDesc struct {
	Width  int
	Height int
	Format PixelFmt
	// Number of back buffers.
	Buffers int
	// Maximum number of frames the CPU may record ahead of
	// presentation. Wait blocks when the limit is reached.
	MaxLatency int
}

// Swapchain is the interface that defines a presentable
// set of back buffers.
type Swapchain interface {
	Destroyer

	// Buffer returns the i-th back buffer.
	// Back buffers are created in the StPresent state and
	// must be returned to it before presentation.
	Buffer(i int) Texture

	// Index returns the index of the back buffer that the
	// next frame renders into.
	Index() int

	// Present presents the current back buffer and advances
	// Index. syncInterval is the number of vertical blanks
	// to synchronize with; zero presents immediately.
	Present(syncInterval int) error

	// Wait blocks until the number of frames in flight
	// drops below MaxLatency.
	Wait()
}
