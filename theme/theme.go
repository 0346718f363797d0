// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package theme owns the visual style profile: light/dark detection at
// startup, host theme-change handling, and the fixed style overrides
// layered on top of either base profile.
package theme

import (
	"fmt"
	"image/color"
)

// Mode is the host light/dark preference.
type Mode uint8

const (
	// ModeUnspecified means the host reported no preference.
	// Apply treats it as dark, matching the default profile.
	ModeUnspecified Mode = iota

	// ModeLight selects the light visual profile.
	ModeLight

	// ModeDark selects the dark visual profile.
	ModeDark
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeUnspecified:
		return "unspecified"
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Stroke describes a widget border stroke.
type Stroke struct {
	Width float64
	Color color.NRGBA
}

// WidgetVisuals holds the stroke for each widget interaction state.
type WidgetVisuals struct {
	Noninteractive Stroke
	Inactive       Stroke
	Hovered        Stroke
	Active         Stroke
	Open           Stroke
}

// Style is the complete visual profile handed to the UI build step.
type Style struct {
	Mode       Mode
	Background color.NRGBA
	Panel      color.NRGBA
	Text       color.NRGBA
	Widgets    WidgetVisuals

	// InteractWidth and InteractHeight are the minimum control
	// hit-target dimensions in points.
	InteractWidth  float64
	InteractHeight float64
}

// Light returns the light base profile.
func Light() Style {
	stroke := func(c color.NRGBA) Stroke { return Stroke{Width: 1, Color: c} }
	return Style{
		Mode:       ModeLight,
		Background: color.NRGBA{R: 0xf8, G: 0xf8, B: 0xf8, A: 0xff},
		Panel:      color.NRGBA{R: 0xeb, G: 0xeb, B: 0xeb, A: 0xff},
		Text:       color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff},
		Widgets: WidgetVisuals{
			Noninteractive: stroke(color.NRGBA{R: 0xbe, G: 0xbe, B: 0xbe, A: 0xff}),
			Inactive:       stroke(color.NRGBA{R: 0xb4, G: 0xb4, B: 0xb4, A: 0xff}),
			Hovered:        stroke(color.NRGBA{R: 0x69, G: 0x69, B: 0x69, A: 0xff}),
			Active:         stroke(color.NRGBA{R: 0x37, G: 0x37, B: 0x37, A: 0xff}),
			Open:           stroke(color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}),
		},
		InteractWidth:  40,
		InteractHeight: 18,
	}
}

// Dark returns the dark base profile.
func Dark() Style {
	stroke := func(c color.NRGBA) Stroke { return Stroke{Width: 1, Color: c} }
	return Style{
		Mode:       ModeDark,
		Background: color.NRGBA{R: 0x1b, G: 0x1b, B: 0x1b, A: 0xff},
		Panel:      color.NRGBA{R: 0x27, G: 0x27, B: 0x27, A: 0xff},
		Text:       color.NRGBA{R: 0xdc, G: 0xdc, B: 0xdc, A: 0xff},
		Widgets: WidgetVisuals{
			Noninteractive: stroke(color.NRGBA{R: 0x3c, G: 0x3c, B: 0x3c, A: 0xff}),
			Inactive:       stroke(color.NRGBA{R: 0x48, G: 0x48, B: 0x48, A: 0xff}),
			Hovered:        stroke(color.NRGBA{R: 0x96, G: 0x96, B: 0x96, A: 0xff}),
			Active:         stroke(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
			Open:           stroke(color.NRGBA{R: 0x5a, G: 0x5a, B: 0x5a, A: 0xff}),
		},
		InteractWidth:  40,
		InteractHeight: 18,
	}
}

// Detector reports the host's color scheme preference. Detectors are
// queried in registration order; the first that reports ok wins.
type Detector interface {
	// Name identifies the detector for logging.
	Name() string

	// Detect returns the preference and whether detection succeeded.
	Detect() (dark bool, ok bool)
}

// Manager owns the active style. No other component mutates style
// state: theme changes re-invoke Apply, and the UI build step reads
// the style by reference through Style.
//
// Manager is not safe for concurrent use; the control loop owns it.
type Manager struct {
	style     Style
	detectors []Detector
}

// NewManager creates a manager with the dark profile applied and the
// environment detector registered.
func NewManager() *Manager {
	m := &Manager{}
	m.RegisterDetector(envDetector{})
	m.Apply(ModeDark)
	return m
}

// RegisterDetector appends a preference detector.
func (m *Manager) RegisterDetector(d Detector) {
	m.detectors = append(m.detectors, d)
}

// DetectInitial queries the registered detectors for the startup
// preference and applies the result. When every detector fails, the
// dark profile stays in effect.
func (m *Manager) DetectInitial() Mode {
	mode := ModeDark
	for _, d := range m.detectors {
		if dark, ok := d.Detect(); ok {
			if !dark {
				mode = ModeLight
			}
			break
		}
	}
	m.Apply(mode)
	return mode
}

// Apply sets the base profile for the mode, then layers the fixed
// overrides identically regardless of mode: widget stroke emphasis is
// doubled and the control hit-target width scaled by 1.2.
func (m *Manager) Apply(mode Mode) {
	switch mode {
	case ModeLight:
		m.style = Light()
	default:
		m.style = Dark()
	}
	applyOverrides(&m.style)
}

// Style returns the active style by reference. The UI build step reads
// it; only Apply mutates it.
func (m *Manager) Style() *Style {
	return &m.style
}

// applyOverrides layers the fixed emphasis adjustments on a base
// profile. Kept separate from the profiles so both modes get the exact
// same treatment.
func applyOverrides(s *Style) {
	s.Widgets.Noninteractive.Width *= 2
	s.Widgets.Inactive.Width *= 2
	s.Widgets.Hovered.Width *= 2
	s.Widgets.Active.Width *= 2
	s.Widgets.Open.Width *= 2
	s.InteractWidth *= 1.2
}
