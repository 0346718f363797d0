// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/present/internal/logx"
	"github.com/gogpu/present/surface"
)

// Recorder errors.
var (
	// ErrNilDrawer is returned when recording without a texture drawer.
	ErrNilDrawer = errors.New("render: nil texture drawer")

	// ErrTargetNotSoftware is returned when the software recorder is
	// given a target that does not expose a pixel buffer.
	ErrTargetNotSoftware = errors.New("render: target has no pixel buffer")
)

// Recorder records one frame's display list onto an acquired target.
// The bridge resolves texture identifiers to backend texture handles.
type Recorder interface {
	Record(target surface.Target, list DisplayList, bridge *Bridge) error
}

// GPURecorder records through the host GPU context's texture drawer.
//
// The drawer comes from the host per frame (e.g. a gogpu draw context);
// set DC before each Record call. Textures that are not GPU textures,
// or identifiers with no table entry, are skipped with a warning: a
// missing texture is a degraded frame, not a failed one.
type GPURecorder struct {
	// DC is the host drawer for the current frame.
	DC gpucontext.TextureDrawer
}

// Record draws each display-list entry at its position.
func (r *GPURecorder) Record(_ surface.Target, list DisplayList, bridge *Bridge) error {
	if r.DC == nil {
		return ErrNilDrawer
	}
	for _, op := range list {
		raw, ok := bridge.Lookup(op.Texture)
		if !ok {
			logx.Logger().Warn("display list references unknown texture", "id", uint64(op.Texture))
			continue
		}
		tex, ok := raw.(gpucontext.Texture)
		if !ok {
			logx.Logger().Warn("texture is not a GPU texture", "id", uint64(op.Texture))
			continue
		}
		if err := r.DC.DrawTexture(tex, op.X, op.Y); err != nil {
			return fmt.Errorf("render: draw texture %d: %w", op.Texture, err)
		}
	}
	return nil
}

// pixelTarget is implemented by targets that expose their pixel buffer,
// such as surface.ImageTarget.
type pixelTarget interface {
	RGBA() *image.RGBA
}

// SoftwareRecorder composites software textures into an image-backed
// target. It pairs with SoftwareCreator for headless runs and tests.
type SoftwareRecorder struct{}

// Record blits each display-list entry into the target's pixel buffer
// with source-over compositing.
func (SoftwareRecorder) Record(target surface.Target, list DisplayList, bridge *Bridge) error {
	pt, ok := target.(pixelTarget)
	if !ok {
		return ErrTargetNotSoftware
	}
	dst := pt.RGBA()

	for _, op := range list {
		raw, ok := bridge.Lookup(op.Texture)
		if !ok {
			logx.Logger().Warn("display list references unknown texture", "id", uint64(op.Texture))
			continue
		}
		tex, ok := raw.(*SoftTexture)
		if !ok {
			logx.Logger().Warn("texture is not a software texture", "id", uint64(op.Texture))
			continue
		}
		src := tex.RGBA()
		r := src.Bounds().Add(image.Pt(int(op.X), int(op.Y)))
		xdraw.Draw(dst, r, src, image.Point{}, xdraw.Over)
	}
	return nil
}

// Verify interface conformance.
var (
	_ Recorder = (*GPURecorder)(nil)
	_ Recorder = SoftwareRecorder{}
)
