// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"testing"
)

func rgba(w, h int, r, g, b byte) Content {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xFF
	}
	return Content{Width: w, Height: h, Pixels: pix}
}

func TestBridgeRegisterStable(t *testing.T) {
	b := NewBridge()
	id := b.Register()
	if id == 0 {
		t.Fatal("Register() = 0, want nonzero identifier")
	}
	if again := b.Register(); again != id {
		t.Errorf("second Register() = %d, want %d", again, id)
	}
	if got := b.ContentID(); got != id {
		t.Errorf("ContentID() = %d, want %d", got, id)
	}
}

func TestBridgeAllocDistinct(t *testing.T) {
	b := NewBridge()
	content := b.Register()
	a := b.Alloc()
	c := b.Alloc()
	if a == content || c == content || a == c {
		t.Errorf("identifiers collide: content=%d a=%d c=%d", content, a, c)
	}
}

func TestBridgeUpdateValidation(t *testing.T) {
	b := NewBridge()
	if err := b.Update(nil, rgba(2, 2, 0, 0, 0)); !errors.Is(err, ErrNilCreator) {
		t.Errorf("Update(nil creator) = %v, want ErrNilCreator", err)
	}
	if err := b.Update(SoftwareCreator{}, Content{}); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Update(empty) = %v, want ErrEmptyContent", err)
	}
}

func TestBridgeUpdateInPlace(t *testing.T) {
	b := NewBridge()
	creator := SoftwareCreator{}

	if err := b.Update(creator, rgba(2, 2, 0xFF, 0, 0)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	first, _ := b.Lookup(b.ContentID())

	// Same dimensions: the texture is updated in place.
	if err := b.Update(creator, rgba(2, 2, 0, 0xFF, 0)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	second, _ := b.Lookup(b.ContentID())
	if first != second {
		t.Error("same-size update replaced the texture instead of updating in place")
	}
	tex := second.(*SoftTexture)
	if got := tex.RGBA().Pix[1]; got != 0xFF {
		t.Errorf("green channel = %d, want 0xFF", got)
	}
}

func TestBridgeUpdateRecreatesOnResize(t *testing.T) {
	b := NewBridge()
	creator := SoftwareCreator{}

	b.Update(creator, rgba(2, 2, 0xFF, 0, 0))
	first, _ := b.Lookup(b.ContentID())

	if err := b.Update(creator, rgba(4, 4, 0, 0xFF, 0)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	second, _ := b.Lookup(b.ContentID())
	if first == second {
		t.Error("resize update kept the old texture")
	}
	if !first.(*SoftTexture).Destroyed() {
		t.Error("old texture not destroyed after replacement")
	}
	if w := second.(*SoftTexture).Width(); w != 4 {
		t.Errorf("new texture width = %d, want 4", w)
	}
}

func TestBridgeApply(t *testing.T) {
	b := NewBridge()
	creator := SoftwareCreator{}
	id := b.Alloc()

	delta := TextureDelta{Set: []TextureUpload{{
		ID: id, Width: 2, Height: 2, Pixels: rgba(2, 2, 0, 0, 0xFF).Pixels,
	}}}
	if err := b.Apply(creator, delta); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := b.Lookup(id); !ok {
		t.Error("applied texture missing from table")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBridgeApplyBadUpload(t *testing.T) {
	b := NewBridge()
	delta := TextureDelta{Set: []TextureUpload{{
		ID: b.Alloc(), Width: 2, Height: 2, Pixels: []byte{0},
	}}}
	if err := b.Apply(SoftwareCreator{}, delta); !errors.Is(err, ErrBadPixelLength) {
		t.Errorf("Apply(short pixels) = %v, want ErrBadPixelLength", err)
	}
}

func TestBridgeReleaseUnused(t *testing.T) {
	b := NewBridge()
	creator := SoftwareCreator{}
	b.Update(creator, rgba(2, 2, 0xFF, 0, 0))

	id := b.Alloc()
	b.Apply(creator, TextureDelta{Set: []TextureUpload{{
		ID: id, Width: 2, Height: 2, Pixels: rgba(2, 2, 0, 0xFF, 0).Pixels,
	}}})

	ui, _ := b.Lookup(id)
	b.ReleaseUnused([]TextureID{id, b.ContentID(), 999})

	if _, ok := b.Lookup(id); ok {
		t.Error("released texture still in table")
	}
	if !ui.(*SoftTexture).Destroyed() {
		t.Error("released texture not destroyed")
	}
	// The content identifier is never released.
	if _, ok := b.Lookup(b.ContentID()); !ok {
		t.Error("content texture was released")
	}
}

func TestBridgeClose(t *testing.T) {
	b := NewBridge()
	creator := SoftwareCreator{}
	b.Update(creator, rgba(2, 2, 0xFF, 0, 0))
	id := b.ContentID()
	tex, _ := b.Lookup(id)

	b.Close()
	if b.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", b.Len())
	}
	if !tex.(*SoftTexture).Destroyed() {
		t.Error("texture not destroyed on Close")
	}

	// The identifier survives; Update restores the texture.
	if err := b.Update(creator, rgba(2, 2, 0, 0, 0xFF)); err != nil {
		t.Fatalf("Update after Close: %v", err)
	}
	if got := b.ContentID(); got != id {
		t.Errorf("ContentID() after Close = %d, want %d", got, id)
	}
}

func TestTextureDeltaIsEmpty(t *testing.T) {
	if !(TextureDelta{}).IsEmpty() {
		t.Error("zero delta should be empty")
	}
	if (TextureDelta{Freed: []TextureID{1}}).IsEmpty() {
		t.Error("delta with freed entries should not be empty")
	}
}
