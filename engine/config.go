// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"rd12/internal/logutil"
)

// Config describes the renderer configuration.
// The zero value is not usable; start from DefaultConfig or
// LoadConfig.
type Config struct {
	// Dimensions of the render area, in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Number of frames the CPU may record ahead of the GPU.
	// Per-frame resources (depth buffer, transforms) and
	// graphics command allocators are sized to this.
	FrameCount int `toml:"frame_count"`
	// Number of swapchain back buffers.
	BufferCount int `toml:"buffer_count"`
	// Capacity of the upload ring buffer, in bytes.
	// A single resource larger than this cannot be created.
	UploadBufferSize int64 `toml:"upload_buffer_size"`
	// Vertical blanks to synchronize presentation with.
	// Zero presents immediately.
	VSyncInterval int `toml:"vsync_interval"`
	// Substring selecting the driver to open. The empty
	// string selects any registered driver.
	Driver string `toml:"driver"`
	// Capacity of the texture descriptor pool.
	MaxTextures int `toml:"max_textures"`
	// Paths to precompiled shader bytecode.
	VSPath string `toml:"vs_path"`
	PSPath string `toml:"ps_path"`

	Log logutil.Config `toml:"log"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		FrameCount:       3,
		BufferCount:      3,
		UploadBufferSize: 64 << 20,
		VSyncInterval:    1,
		MaxTextures:      256,
		VSPath:           "shader/draw.vs.cso",
		PSPath:           "shader/draw.ps.cso",
		Log:              logutil.Config{Level: "info"},
	}
}

// LoadConfig reads a TOML configuration file.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("engine: config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("engine: config: invalid dimensions %dx%d", c.Width, c.Height)
	case c.FrameCount < 2 || c.FrameCount > 4:
		return fmt.Errorf("engine: config: frame_count %d not in [2, 4]", c.FrameCount)
	case c.BufferCount < 2 || c.BufferCount > 4:
		return fmt.Errorf("engine: config: buffer_count %d not in [2, 4]", c.BufferCount)
	case c.UploadBufferSize < 1:
		return fmt.Errorf("engine: config: upload_buffer_size %d not positive", c.UploadBufferSize)
	case c.VSyncInterval < 0 || c.VSyncInterval > 4:
		return fmt.Errorf("engine: config: vsync_interval %d not in [0, 4]", c.VSyncInterval)
	case c.MaxTextures < 1:
		return fmt.Errorf("engine: config: max_textures %d not positive", c.MaxTextures)
	case c.VSPath == "" || c.PSPath == "":
		return fmt.Errorf("engine: config: missing shader path")
	}
	return nil
}
