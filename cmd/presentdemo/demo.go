package main

import (
	"log"
	"math"

	"github.com/gogpu/present"
	"github.com/gogpu/present/render"
	"github.com/gogpu/present/theme"
)

// waveContent produces an animated plasma pattern, standing in for a
// real application's rendered content.
type waveContent struct {
	phase float64
	buf   []byte
}

func newWaveContent() *waveContent {
	return &waveContent{}
}

func (c *waveContent) DrawInto(info render.TargetInfo) (render.Content, bool) {
	w, h := info.Width, info.Height
	if w <= 0 || h <= 0 {
		return render.Content{}, false
	}
	if len(c.buf) != w*h*4 {
		c.buf = make([]byte, w*h*4)
	}
	c.phase += 0.03

	for y := 0; y < h; y++ {
		fy := float64(y) / float64(h)
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(w)
			v := math.Sin(fx*8+c.phase) + math.Sin(fy*6-c.phase*0.7) +
				math.Sin((fx+fy)*5+c.phase*1.3)
			i := (y*w + x) * 4
			c.buf[i+0] = byte(96 + 80*math.Sin(v))
			c.buf[i+1] = byte(96 + 80*math.Sin(v+2.1))
			c.buf[i+2] = byte(96 + 80*math.Sin(v+4.2))
			c.buf[i+3] = 0xFF
		}
	}
	return render.Content{Width: w, Height: h, Pixels: c.buf}, true
}

// overlayUI draws the content texture full-frame with a theme-colored
// badge in the corner, and re-uploads the badge when the theme flips.
// With the welcome preference set it shows a second badge until the
// first key press.
type overlayUI struct {
	bridge *render.Bridge
	popup  *demoPopup

	badge     render.TextureID
	badgeMode theme.Mode
	welcome   bool
}

func newOverlayUI(welcome bool) *overlayUI {
	return &overlayUI{popup: &demoPopup{}, welcome: welcome}
}

func (u *overlayUI) Offer(ev present.Event) present.Consumption {
	switch ev.(type) {
	case present.KeyEvent:
		u.welcome = false
		return present.Consumption{Repaint: true}
	case present.ThemeEvent:
		return present.Consumption{Repaint: true}
	}
	return present.Consumption{}
}

func (u *overlayUI) Build(ctx *present.BuildContext) present.FrameOutput {
	out := present.FrameOutput{
		List: render.DisplayList{
			{Texture: ctx.ContentTexture, X: 0, Y: 0},
		},
	}

	if u.bridge != nil {
		if u.badge == 0 {
			u.badge = u.bridge.Alloc()
		}
		if u.badgeMode != ctx.Style.Mode {
			u.badgeMode = ctx.Style.Mode
			out.Textures.Set = append(out.Textures.Set, badgeUpload(u.badge, ctx.Style))
		}
		out.List = append(out.List, render.DrawOp{Texture: u.badge, X: 12, Y: 12})
		if u.welcome {
			out.List = append(out.List, render.DrawOp{
				Texture: u.badge,
				X:       float32(ctx.Width)/2 - badgeSize/2,
				Y:       float32(ctx.Height)/2 - badgeSize/2,
			})
		}
	}
	return out
}

const badgeSize = 24

func badgeUpload(id render.TextureID, style *theme.Style) render.TextureUpload {
	pix := make([]byte, badgeSize*badgeSize*4)
	c := style.Panel
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
	return render.TextureUpload{ID: id, Width: badgeSize, Height: badgeSize, Pixels: pix}
}

// demoApp is the bottom of the consumer chain. It logs file-open
// requests and counts simulation frames.
type demoApp struct {
	frames int
}

func (a *demoApp) HandleEvent(ev present.Event) {
	if e, ok := ev.(present.AppEvent); ok {
		log.Printf("open request: %v", e.Payload)
	}
}

func (a *demoApp) Frame() { a.frames++ }

// demoPopup is a stand-in modal: it opens on demand and swallows
// every event it is offered while open.
type demoPopup struct {
	open bool
}

func (p *demoPopup) Open() bool { return p.open }

func (p *demoPopup) Handle(ev present.Event) present.Consumption {
	if !p.open {
		return present.Consumption{}
	}
	if k, ok := ev.(present.KeyEvent); ok && k.Pressed {
		p.open = false
	}
	return present.Consumption{Claimed: true, Repaint: true}
}

var (
	_ present.ContentProducer = (*waveContent)(nil)
	_ present.UILayer         = (*overlayUI)(nil)
	_ present.Application     = (*demoApp)(nil)
	_ present.Popup           = (*demoPopup)(nil)
)
