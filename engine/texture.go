// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"rd12/driver"
	"rd12/internal/logutil"
)

// Texture is a device-local sampled texture with a
// descriptor in the renderer's texture table.
type Texture struct {
	tex driver.Texture
	srv driver.DescHandle
}

// Index returns the texture's slot in the descriptor table,
// for shaders that index the table dynamically.
func (t *Texture) Index() int { return t.srv.Index }

// Destroy releases the texture. Its descriptor slot is not
// reclaimed.
func (t *Texture) Destroy() { t.tex.Destroy() }

// texFootprint returns the staging footprint of a texture
// subresource: the row pitch, aligned as copy commands
// require, and the total staging size.
func texFootprint(width, height int, format driver.PixelFmt) (rowPitch, size int64) {
	rowPitch = alignUp(int64(width*format.Size()), driver.TexRowAlignment)
	size = rowPitch * int64(height)
	return
}

// CreateTexture2D creates a device-local 2D texture and
// uploads pixels as its base level. pixels must hold exactly
// width*height tightly packed elements of format; rows are
// re-pitched into the upload ring as the copy engine
// requires. Additional mip levels are allocated but left
// unwritten.
func (r *Renderer) CreateTexture2D(pixels []byte, width, height int, format driver.PixelFmt, levels int) *Texture {
	texel := format.Size()
	switch {
	case texel == 0:
		panic("engine: CreateTexture2D: invalid format")
	case width < 1 || height < 1:
		panic("engine: CreateTexture2D: invalid dimensions")
	case levels < 1:
		panic("engine: CreateTexture2D: invalid level count")
	case len(pixels) != width*height*texel:
		panic("engine: CreateTexture2D: pixel data size mismatch")
	}
	rowPitch, size := texFootprint(width, height, format)
	if rowPitch%driver.TexRowAlignment != 0 {
		panic("engine: CreateTexture2D: misaligned row pitch")
	}

	off := r.reserveUploadChunk(size, driver.TexPlaceAlignment)
	dst := r.upload.buf.Bytes()[off:]
	srcPitch := width * texel
	for y := 0; y < height; y++ {
		copy(dst[int64(y)*rowPitch:], pixels[y*srcPitch:(y+1)*srcPitch])
	}

	tex, err := r.dev.NewTexture(&driver.TexDesc{
		Format:  format,
		Width:   width,
		Height:  height,
		Layers:  1,
		Levels:  levels,
		Samples: 1,
	})
	if err != nil {
		logutil.Fatalf("engine: cannot create texture: %v", err)
	}
	r.copier.list.CopyBufToTex(&driver.BufTexCopy{
		Buf:      r.upload.buf,
		BufOff:   off,
		RowPitch: rowPitch,
		Tex:      tex,
		Level:    0,
		Width:    width,
		Height:   height,
		Depth:    1,
	})
	r.graph.list.Transition([]driver.Transition{{
		Res:    tex,
		Before: driver.StCopyDst,
		After:  driver.StShaderRes,
	}})
	return &Texture{tex: tex, srv: r.srvPool.allocSRV(tex)}
}
