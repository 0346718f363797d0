// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/present/theme"
)

// Event is the marker interface for window input events.
//
// The set of variants is closed: the loop matches exhaustively on the
// concrete types below, and new event kinds are added by extending this
// list and the dispatch chain together. Events are immutable once
// produced and are consumed within a single dispatch pass.
type Event interface {
	ImplementsEvent()
}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	// Code identifies the key.
	Code gpucontext.Key

	// Mods is the modifier state at the time of the event.
	Mods gpucontext.Modifiers

	// Pressed is true for key-down, false for key-up.
	Pressed bool
}

// ModifiersEvent reports a change in the modifier key state.
type ModifiersEvent struct {
	Mods gpucontext.Modifiers
}

// ResizeEvent reports a new window size in physical pixels.
type ResizeEvent struct {
	Width  int
	Height int
}

// ScaleEvent reports a display scale factor change together with the
// window size the host computed for the new scale.
type ScaleEvent struct {
	Factor float64
	Width  int
	Height int
}

// ThemeEvent reports a host light/dark preference change.
type ThemeEvent struct {
	Mode theme.Mode
}

// RedrawEvent asks the loop to run one presentation iteration.
type RedrawEvent struct{}

// AppEvent carries an application-defined payload through the host
// event queue. The loop forwards it to the application layer unchanged.
type AppEvent struct {
	Payload any
}

func (KeyEvent) ImplementsEvent()       {}
func (ModifiersEvent) ImplementsEvent() {}
func (ResizeEvent) ImplementsEvent()    {}
func (ScaleEvent) ImplementsEvent()     {}
func (ThemeEvent) ImplementsEvent()     {}
func (RedrawEvent) ImplementsEvent()    {}
func (AppEvent) ImplementsEvent()       {}

// Consumption is the result of one dispatch pass.
type Consumption struct {
	// Claimed is true when a consumer in the priority chain took the
	// event. At most one consumer claims a given event.
	Claimed bool

	// Repaint is true when handling the event requires a repaint off
	// the regular frame cadence.
	Repaint bool
}

// uiClaimable reports whether the UI layer may claim the event.
//
// Key releases and modifier changes are offered to the UI layer for its
// own bookkeeping but are never claimable: a consumer that disappears
// between key-down and key-up (a popup closing mid-press) must not
// leave the application with a key it believes is still held.
func uiClaimable(ev Event) bool {
	switch e := ev.(type) {
	case KeyEvent:
		return e.Pressed
	case ModifiersEvent:
		return false
	}
	return true
}
