// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"time"

	"github.com/gogpu/present/render"
	"github.com/gogpu/present/theme"
)

// UILayer is the immediate-mode UI collaborator. It consumes raw input
// events and produces, once per iteration, a display list together
// with a repaint hint and its texture delta.
type UILayer interface {
	// Offer hands the UI layer an input event. The returned Claimed
	// flag is honored only for claimable event kinds; Repaint is
	// always honored.
	Offer(ev Event) Consumption

	// Build runs the UI for one iteration and returns its output.
	Build(bc *BuildContext) FrameOutput
}

// BuildContext is what the loop hands the UI build step.
type BuildContext struct {
	// Now is the loop iteration timestamp.
	Now time.Time

	// Style is the active visual profile, owned by the theme manager.
	Style *theme.Style

	// ContentTexture is the stable identifier of the composited
	// content texture.
	ContentTexture render.TextureID

	// Width, Height and Scale describe the current surface.
	Width  int
	Height int
	Scale  float64
}

// FrameOutput is the UI layer's per-iteration product.
type FrameOutput struct {
	// List is what to draw this frame.
	List render.DisplayList

	// RepaintAfter hints when the UI wants to repaint; zero means
	// "now". The scheduler still gates on frame pacing.
	RepaintAfter time.Duration

	// Textures is the UI layer's texture delta for this frame.
	Textures render.TextureDelta
}

// ContentProducer is the content-rendering collaborator. The loop asks
// it once per produced frame whether new content exists.
type ContentProducer interface {
	// DrawInto renders content for the described target. The second
	// return is false when nothing changed, in which case the loop
	// skips the texture update and does not request a repaint.
	DrawInto(info render.TargetInfo) (render.Content, bool)
}

// Application is the bottom consumer of the dispatch chain and the
// owner of per-frame simulation state.
type Application interface {
	// HandleEvent receives every event no higher-priority consumer
	// claimed. Key releases always arrive here.
	HandleEvent(ev Event)

	// Frame advances application state; called once per produced frame.
	Frame()
}

// Popup is a modal key-combo capture surface. While open it inspects
// every event before anyone else and may claim any event kind.
type Popup interface {
	// Open reports whether the popup is currently capturing.
	Open() bool

	// Handle inspects an event and reports whether it was claimed.
	Handle(ev Event) Consumption
}

// Preferences supplies the loop's pacing target and the save-flag
// polled once per iteration. The store owns clearing the flag; the
// loop only invokes Save.
type Preferences interface {
	// FrameDuration is the target interval between produced frames.
	FrameDuration() time.Duration

	// NeedsSave reports whether the store wants a save this iteration.
	NeedsSave() bool

	// Save persists the preferences and clears the flag.
	Save() error
}
