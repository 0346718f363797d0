// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
)

// ImageSwapchain is a CPU-backed swapchain that presents into an
// *image.RGBA. It double-buffers: Acquire hands out the back buffer and
// Present swaps it to the front.
//
// It is the default headless backend, used when no host window system
// registered a swapchain, and by tests that need a real presentation
// path without a GPU.
//
// Example:
//
//	sc := surface.NewImageSwapchain(800, 600)
//	defer sc.Close()
//
//	t, err := sc.Acquire()
//	// draw into t.(*surface.ImageTarget).RGBA() ...
//	t.Present()
//	frame := sc.Front()
type ImageSwapchain struct {
	width  int
	height int
	front  *image.RGBA
	back   *image.RGBA

	// acquired tracks the outstanding target; one at a time.
	acquired bool
	closed   bool
}

// NewImageSwapchain creates a headless swapchain with the given
// dimensions, clamped to at least one pixel.
func NewImageSwapchain(width, height int) *ImageSwapchain {
	s := &ImageSwapchain{}
	s.Configure(width, height)
	return s
}

// Configure reallocates both buffers at the new size. Pending targets
// from before the call present into the discarded buffer and are
// effectively dropped, which mirrors how a real swapchain invalidates
// in-flight frames on reconfiguration.
func (s *ImageSwapchain) Configure(width, height int) {
	width, height = clampSize(width, height)
	s.width = width
	s.height = height
	s.front = image.NewRGBA(image.Rect(0, 0, width, height))
	s.back = image.NewRGBA(image.Rect(0, 0, width, height))
	s.acquired = false
}

// Acquire returns the back buffer as a presentable target.
// Only one target may be outstanding; acquiring a second before the
// first presents reports the surface as outdated.
func (s *ImageSwapchain) Acquire() (Target, error) {
	if s.closed {
		return nil, ErrLost
	}
	if s.acquired {
		return nil, ErrOutdated
	}
	s.acquired = true
	return &ImageTarget{chain: s, img: s.back}, nil
}

// Front returns the most recently presented buffer.
func (s *ImageSwapchain) Front() *image.RGBA {
	return s.front
}

// Width returns the configured width.
func (s *ImageSwapchain) Width() int { return s.width }

// Height returns the configured height.
func (s *ImageSwapchain) Height() int { return s.height }

// Close releases the buffers. Further acquisitions report ErrLost.
func (s *ImageSwapchain) Close() error {
	s.closed = true
	s.front = nil
	s.back = nil
	return nil
}

// ImageTarget is one presentable frame of an ImageSwapchain.
type ImageTarget struct {
	chain     *ImageSwapchain
	img       *image.RGBA
	presented bool
}

// Size returns the target dimensions in pixels.
func (t *ImageTarget) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// RGBA returns the pixel buffer to record into.
func (t *ImageTarget) RGBA() *image.RGBA {
	return t.img
}

// Present swaps the target to the front buffer. Presenting twice is a
// no-op.
func (t *ImageTarget) Present() error {
	if t.presented || t.chain.closed {
		return nil
	}
	t.presented = true

	// Stale target from before a Configure: its buffer is no longer
	// one of the chain's buffers, so the frame is silently dropped.
	if t.img == t.chain.back {
		t.chain.front, t.chain.back = t.chain.back, t.chain.front
		t.chain.acquired = false
	}
	return nil
}

// Verify interface conformance.
var (
	_ Swapchain = (*ImageSwapchain)(nil)
	_ Target    = (*ImageTarget)(nil)
)
