// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
)

// Bridge errors.
var (
	// ErrNilCreator is returned when a texture operation needs a creator
	// and none was supplied.
	ErrNilCreator = errors.New("render: nil texture creator")

	// ErrEmptyContent is returned when updating the content texture with
	// no pixel data.
	ErrEmptyContent = errors.New("render: empty content")
)

// TextureID identifies a texture in the bridge's table. Identifiers are
// assigned once and stay valid while the underlying texture is replaced.
type TextureID uint64

// TextureCreator creates GPU textures from RGBA pixel data.
//
// The host supplies an implementation backed by its GPU context; the
// software creator in this package serves headless runs and tests. The
// returned handle is opaque to the bridge: drawing code asserts it to
// the interface of its own backend.
type TextureCreator interface {
	NewTextureFromRGBA(width, height int, data []byte) (any, error)
}

// textureUpdater is implemented by textures that can replace their
// pixel contents in place. Matches gpucontext.TextureUpdater.
type textureUpdater interface {
	UpdateData(data []byte) error
}

// textureDestroyer is implemented by textures that hold GPU resources.
type textureDestroyer interface {
	Destroy()
}

// texSized is implemented by textures that report their dimensions.
// Used to decide between in-place update and recreation.
type texSized interface {
	Width() uint32
	Height() uint32
}

// Content is one frame of externally produced pixels, tightly packed
// RGBA, premultiplied alpha.
type Content struct {
	Width  int
	Height int
	Pixels []byte
}

// TargetInfo describes the surface a content producer should draw for.
type TargetInfo struct {
	Width  int
	Height int
	Scale  float64
}

// Bridge synchronizes externally produced textures into a table the UI
// layer references by stable identifier.
//
// The content texture gets its identifier once, via Register, and keeps
// it for the life of the process; Update swaps the texture behind the
// identifier so display lists that reference it stay valid. UI-owned
// textures enter and leave the table through Apply and ReleaseUnused,
// mirroring the UI layer's per-frame texture delta.
//
// Bridge is not safe for concurrent use. The control loop owns it.
type Bridge struct {
	table   map[TextureID]any
	next    TextureID
	content TextureID
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{
		table: make(map[TextureID]any),
		next:  1,
	}
}

// Register allocates the stable identifier for the content texture.
// The first call assigns it; later calls return the same identifier.
func (b *Bridge) Register() TextureID {
	if b.content == 0 {
		b.content = b.next
		b.next++
	}
	return b.content
}

// ContentID returns the registered content identifier, or zero if
// Register has not been called.
func (b *Bridge) ContentID() TextureID {
	return b.content
}

// Alloc reserves a fresh identifier for a UI-owned texture. The
// texture itself arrives later through Apply.
func (b *Bridge) Alloc() TextureID {
	id := b.next
	b.next++
	return id
}

// Update replaces the texture behind the content identifier.
//
// Call it only when the producer actually drew a new frame: an update
// forces a repaint and burns upload bandwidth, so unchanged content
// must skip it. If the existing texture matches the new dimensions and
// supports in-place update, its pixels are replaced; otherwise a new
// texture is created and the old one destroyed.
func (b *Bridge) Update(creator TextureCreator, c Content) error {
	if creator == nil {
		return ErrNilCreator
	}
	if c.Width <= 0 || c.Height <= 0 || len(c.Pixels) == 0 {
		return ErrEmptyContent
	}
	id := b.Register()
	return b.replace(creator, id, c)
}

// Apply uploads the UI layer's added/changed textures for this frame.
// Failed uploads abort with the first error; textures uploaded before
// the failure stay in the table.
func (b *Bridge) Apply(creator TextureCreator, delta TextureDelta) error {
	for _, up := range delta.Set {
		if up.ID == 0 {
			continue
		}
		c := Content{Width: up.Width, Height: up.Height, Pixels: up.Pixels}
		if err := b.replace(creator, up.ID, c); err != nil {
			return fmt.Errorf("render: texture %d: %w", up.ID, err)
		}
	}
	return nil
}

// ReleaseUnused destroys and forgets textures the UI layer no longer
// references. The content identifier is never released this way.
func (b *Bridge) ReleaseUnused(ids []TextureID) {
	for _, id := range ids {
		if id == b.content {
			continue
		}
		if tex, ok := b.table[id]; ok {
			if d, ok := tex.(textureDestroyer); ok {
				d.Destroy()
			}
			delete(b.table, id)
		}
	}
}

// Lookup returns the texture behind an identifier.
func (b *Bridge) Lookup(id TextureID) (any, bool) {
	tex, ok := b.table[id]
	return tex, ok
}

// Len returns the number of live textures in the table.
func (b *Bridge) Len() int {
	return len(b.table)
}

// Close destroys every texture in the table. The bridge keeps its
// identifiers, so a later Update restores the content texture.
func (b *Bridge) Close() {
	for id, tex := range b.table {
		if d, ok := tex.(textureDestroyer); ok {
			d.Destroy()
		}
		delete(b.table, id)
	}
}

func (b *Bridge) replace(creator TextureCreator, id TextureID, c Content) error {
	if old, ok := b.table[id]; ok {
		if sized, ok := old.(texSized); ok {
			if u, ok := old.(textureUpdater); ok &&
				sized.Width() == uint32(c.Width) && sized.Height() == uint32(c.Height) {
				return u.UpdateData(c.Pixels)
			}
		}
	}

	tex, err := creator.NewTextureFromRGBA(c.Width, c.Height, c.Pixels)
	if err != nil {
		return fmt.Errorf("render: NewTextureFromRGBA failed: %w", err)
	}

	// Destroy after the replacement exists so the identifier never
	// points at a destroyed texture.
	if old, ok := b.table[id]; ok {
		if d, ok := old.(textureDestroyer); ok {
			d.Destroy()
		}
	}
	b.table[id] = tex
	return nil
}
