// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/present/internal/logx"
)

// ErrBadIcon is returned when icon data cannot be decoded or has an
// unsupported pixel layout.
var ErrBadIcon = errors.New("present: bad icon data")

// Icon is a decoded window icon in 8-bit RGBA layout.
type Icon struct {
	Width  int
	Height int
	// Pixels holds Width*Height*4 bytes, row-major RGBA.
	Pixels []byte
}

// LoadIcon decodes a PNG window icon.
//
// The decoded image is converted to 8-bit RGBA when needed. A nil
// return with a nil error never occurs; callers that want to degrade
// gracefully should log the error and run without an icon, a missing
// icon is never fatal.
func LoadIcon(data []byte) (*Icon, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadIcon, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrBadIcon)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		logx.Logger().Debug("icon converted to RGBA", "from", fmt.Sprintf("%T", img))
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	}
	return &Icon{
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// Scaled returns the icon resampled to the given size. The original
// is returned unchanged when it already matches.
func (ic *Icon) Scaled(width, height int) *Icon {
	if width <= 0 || height <= 0 || (width == ic.Width && height == ic.Height) {
		return ic
	}
	src := &image.RGBA{
		Pix:    ic.Pixels,
		Stride: ic.Width * 4,
		Rect:   image.Rect(0, 0, ic.Width, ic.Height),
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return &Icon{Width: width, Height: height, Pixels: dst.Pix}
}
