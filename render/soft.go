// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
)

// Software texture errors.
var (
	// ErrTextureDestroyed is returned when updating a destroyed texture.
	ErrTextureDestroyed = errors.New("render: texture has been destroyed")

	// ErrBadPixelLength is returned when pixel data does not match the
	// texture dimensions (4 bytes per pixel, tightly packed).
	ErrBadPixelLength = errors.New("render: pixel data length mismatch")
)

// SoftTexture is a CPU-resident texture for headless presentation.
// It satisfies the bridge's update and destroy hooks the same way a
// host GPU texture does, so the rest of the pipeline cannot tell the
// difference.
type SoftTexture struct {
	img       *image.RGBA
	width     int
	height    int
	destroyed bool
}

// Width returns the texture width in pixels.
func (t *SoftTexture) Width() uint32 { return uint32(t.width) }

// Height returns the texture height in pixels.
func (t *SoftTexture) Height() uint32 { return uint32(t.height) }

// RGBA returns the backing pixel buffer.
func (t *SoftTexture) RGBA() *image.RGBA { return t.img }

// UpdateData replaces the texture contents in place.
func (t *SoftTexture) UpdateData(data []byte) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if len(data) != t.width*t.height*4 {
		return fmt.Errorf("%w: got %d, want %d", ErrBadPixelLength, len(data), t.width*t.height*4)
	}
	copy(t.img.Pix, data)
	return nil
}

// Destroy releases the texture. Safe to call more than once.
func (t *SoftTexture) Destroy() {
	t.destroyed = true
	t.img = nil
}

// Destroyed reports whether Destroy has been called.
func (t *SoftTexture) Destroyed() bool { return t.destroyed }

// SoftwareCreator creates SoftTextures. It is the headless counterpart
// of the host GPU context's texture creator.
type SoftwareCreator struct{}

// NewTextureFromRGBA creates a texture from tightly packed RGBA pixels.
func (SoftwareCreator) NewTextureFromRGBA(width, height int, data []byte) (any, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid texture size %dx%d", width, height)
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadPixelLength, len(data), width*height*4)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, data)
	return &SoftTexture{img: img, width: width, height: height}, nil
}

// Verify interface conformance.
var _ TextureCreator = SoftwareCreator{}
