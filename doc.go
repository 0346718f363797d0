// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present runs the real-time presentation loop of a GPU
// windowed application.
//
// # Overview
//
// present sits between a windowing host and the application proper: it
// receives window events, routes them through a fixed consumer
// priority chain (modal popup, structural handling, UI layer,
// application), paces frame production against a configurable target
// interval, and composites the application's content texture with the
// UI layer's display list onto an acquired surface.
//
// # Quick Start
//
//	import "github.com/gogpu/present"
//
//	loop, err := present.New(present.Config{
//		UI:       ui,
//		App:      app,
//		Surfaces: surfaces,
//		Creator:  creator,
//		Recorder: recorder,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// per window event
//	loop.Dispatch(ev)
//
//	// per redraw request
//	if err := loop.RunIteration(time.Now()); err != nil {
//		// present.ErrShutdown: begin orderly exit
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Loop, Event variants, Scheduler, collaborator interfaces
//   - surface: swapchain lifecycle, acquisition error policy, backends
//   - render: texture bridge, display lists, recorders, device bootstrap
//   - theme: light/dark visual styles and mode detection
//   - prefs: persisted preferences with environment overrides
//
// # Threading
//
// The loop is single-threaded: one goroutine owns the window, the GPU
// device and all component state. None of the types in this module are
// safe for concurrent use unless documented otherwise.
package present
