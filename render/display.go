// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// DrawOp places one textured rectangle. The UI layer emits these; the
// recorder resolves the identifier through the bridge at record time.
type DrawOp struct {
	// Texture is the table identifier of the texture to composite.
	Texture TextureID

	// X, Y is the destination position in surface pixels.
	X, Y float32
}

// DisplayList is the UI layer's per-frame output, independent of the
// GPU backend that records it.
type DisplayList []DrawOp

// TextureUpload carries pixel data for a texture the UI layer added or
// changed this frame. Pixels are tightly packed RGBA.
type TextureUpload struct {
	ID     TextureID
	Width  int
	Height int
	Pixels []byte
}

// TextureDelta is the set of textures the UI layer added and freed in
// one frame. The bridge applies Set before recording and releases
// Freed after the frame's commands are recorded, so in-flight draws
// never reference a destroyed texture.
type TextureDelta struct {
	Set   []TextureUpload
	Freed []TextureID
}

// IsEmpty reports whether the delta carries no work.
func (d TextureDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Freed) == 0
}
