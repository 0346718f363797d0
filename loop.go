// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gogpu/present/internal/logx"
	"github.com/gogpu/present/render"
	"github.com/gogpu/present/surface"
	"github.com/gogpu/present/theme"
)

// Loop errors.
var (
	// ErrShutdown is returned by RunIteration once the loop has
	// observed a fatal condition and the process should exit.
	ErrShutdown = errors.New("present: shutting down")

	// ErrNilUI is returned when constructing a loop without a UI layer.
	ErrNilUI = errors.New("present: nil UI layer")

	// ErrNilSurfaces is returned when constructing a loop without a
	// surface manager.
	ErrNilSurfaces = errors.New("present: nil surface manager")
)

// Config wires a Loop's collaborators.
//
// UI and Surfaces are required. Bridge, Themes and the scheduler are
// created when absent. The rest are optional: a nil Popup never
// captures, a nil Content never updates the composited texture, a nil
// App drops unclaimed events, and a nil Prefs leaves the default frame
// interval in place.
type Config struct {
	UI       UILayer
	App      Application
	Popup    Popup
	Surfaces *surface.Manager
	Bridge   *render.Bridge
	Themes   *theme.Manager
	Prefs    Preferences
	Content  ContentProducer

	// Creator creates textures for the bridge; required when Content
	// is set or the UI layer uploads textures.
	Creator render.TextureCreator

	// Recorder records display lists onto acquired targets.
	Recorder render.Recorder
}

// Loop is the top-level control loop: it receives every window event,
// determines consumption order among the candidate consumers, and runs
// one presentation iteration per redraw request.
//
// Loop is single-threaded by design: one thread owns the window, the
// GPU device and all component state, and each iteration runs its
// phases strictly in sequence.
type Loop struct {
	ui       UILayer
	app      Application
	popup    Popup
	surfaces *surface.Manager
	bridge   *render.Bridge
	themes   *theme.Manager
	prefs    Preferences
	content  ContentProducer
	creator  render.TextureCreator
	recorder render.Recorder

	scheduler *Scheduler
	contentID render.TextureID

	// pendingRepaint forces the next iteration to treat the UI repaint
	// hint as elapsed. Set by event handling, cleared after a frame.
	pendingRepaint bool

	shutdown bool
	log      *slog.Logger
}

// New creates a Loop from the config and registers the stable content
// texture identifier with the bridge.
func New(cfg Config) (*Loop, error) {
	if cfg.UI == nil {
		return nil, ErrNilUI
	}
	if cfg.Surfaces == nil {
		return nil, ErrNilSurfaces
	}

	bridge := cfg.Bridge
	if bridge == nil {
		bridge = render.NewBridge()
	}
	themes := cfg.Themes
	if themes == nil {
		themes = theme.NewManager()
	}

	interval := DefaultFrameInterval
	if cfg.Prefs != nil {
		interval = cfg.Prefs.FrameDuration()
	}

	l := &Loop{
		ui:        cfg.UI,
		app:       cfg.App,
		popup:     cfg.Popup,
		surfaces:  cfg.Surfaces,
		bridge:    bridge,
		themes:    themes,
		prefs:     cfg.Prefs,
		content:   cfg.Content,
		creator:   cfg.Creator,
		recorder:  cfg.Recorder,
		scheduler: NewScheduler(interval),
		log:       logx.Logger(),
	}
	l.contentID = bridge.Register()
	return l, nil
}

// Dispatch routes one window event through the consumer priority
// chain: modal popup, then structural handling, then the UI layer,
// then the application.
//
// Structural events (resize, scale change, theme change) always
// short-circuit before the UI layer regardless of its state: they
// invalidate GPU resources the UI layer does not own. They still pass
// the popup first, and resizing happens even when the popup claims the
// event, because an unconfigured surface is useless to everyone.
func (l *Loop) Dispatch(ev Event) Consumption {
	var out Consumption
	if l.popup != nil && l.popup.Open() {
		out = l.popup.Handle(ev)
	}

	switch e := ev.(type) {
	case ResizeEvent:
		l.surfaces.Reconfigure(e.Width, e.Height)
		out.Claimed = true
		out.Repaint = true
		l.pendingRepaint = true
		return out
	case ScaleEvent:
		l.surfaces.SetScaleFactor(e.Factor)
		l.surfaces.Reconfigure(e.Width, e.Height)
		out.Claimed = true
		out.Repaint = true
		l.pendingRepaint = true
		return out
	case ThemeEvent:
		l.themes.Apply(e.Mode)
		out.Claimed = true
		out.Repaint = true
		l.pendingRepaint = true
		return out
	}

	if out.Claimed {
		if out.Repaint {
			l.pendingRepaint = true
		}
		return out
	}

	// The UI layer sees every remaining event for its own bookkeeping,
	// but its claim is honored only for claimable kinds: key releases
	// and modifier changes must always reach the application so no key
	// is left logically held.
	r := l.ui.Offer(ev)
	if r.Repaint {
		l.pendingRepaint = true
	}
	if r.Claimed && uiClaimable(ev) {
		return Consumption{Claimed: true, Repaint: r.Repaint}
	}

	if l.app != nil {
		l.app.HandleEvent(ev)
	}

	// Keyboard state changes repaint the UI off-cadence so shortcut
	// hints and held-key indicators stay current.
	switch ev.(type) {
	case KeyEvent, ModifiersEvent:
		l.pendingRepaint = true
		out.Repaint = true
	}
	return out
}

// RunIteration executes one presentation iteration: preferences poll,
// content texture refresh, UI build, pacing decision, surface
// acquisition, command recording and presentation.
//
// A nil return means the iteration completed (with or without a
// presented frame). ErrShutdown means the loop observed a fatal
// surface condition; the caller should begin orderly process exit.
func (l *Loop) RunIteration(now time.Time) error {
	if l.shutdown {
		return ErrShutdown
	}

	if l.prefs != nil {
		l.scheduler.SetInterval(l.prefs.FrameDuration())
		if l.prefs.NeedsSave() {
			if err := l.prefs.Save(); err != nil {
				l.log.Warn("preferences save failed", "err", err)
			}
		}
	}

	sc := l.surfaces.Config()

	// Refresh the content texture before the UI build so this
	// iteration's display list sees this iteration's content.
	if l.content != nil {
		info := render.TargetInfo{Width: sc.Width, Height: sc.Height, Scale: sc.Scale}
		if c, drew := l.content.DrawInto(info); drew {
			if err := l.bridge.Update(l.creator, c); err != nil {
				l.log.Warn("content texture update failed", "err", err)
			} else {
				l.pendingRepaint = true
			}
		}
	}

	out := l.ui.Build(&BuildContext{
		Now:            now,
		Style:          l.themes.Style(),
		ContentTexture: l.contentID,
		Width:          sc.Width,
		Height:         sc.Height,
		Scale:          sc.Scale,
	})

	repaintAfter := out.RepaintAfter
	if l.pendingRepaint {
		repaintAfter = 0
	}
	if l.scheduler.OnIteration(now, repaintAfter) == DecisionSkip {
		return nil
	}

	if l.app != nil {
		l.app.Frame()
	}

	target, err := l.surfaces.Acquire()
	if err != nil {
		if errors.Is(err, surface.ErrFatal) {
			l.shutdown = true
			return ErrShutdown
		}
		// Transient: the manager already reconfigured or logged as
		// appropriate. No frame this iteration.
		return nil
	}

	if l.creator != nil {
		if err := l.bridge.Apply(l.creator, out.Textures); err != nil {
			l.log.Warn("texture delta apply failed", "err", err)
		}
	}

	if l.recorder != nil {
		if err := l.recorder.Record(target, out.List, l.bridge); err != nil {
			l.log.Warn("frame recording failed", "err", err)
		}
	}

	// Free after recording so this frame's commands never reference a
	// destroyed texture.
	l.bridge.ReleaseUnused(out.Textures.Freed)

	if err := target.Present(); err != nil {
		l.log.Warn("present failed", "err", err)
	}

	if l.scheduler.CountFrame(now) {
		l.log.Debug("frame rate", "fps", l.scheduler.FPS())
	}
	l.pendingRepaint = false
	return nil
}

// ShuttingDown reports whether a fatal condition was observed.
func (l *Loop) ShuttingDown() bool {
	return l.shutdown
}

// Scheduler exposes the frame scheduler, mainly for diagnostics.
func (l *Loop) Scheduler() *Scheduler {
	return l.scheduler
}

// ContentTexture returns the stable composited-content identifier.
func (l *Loop) ContentTexture() render.TextureID {
	return l.contentID
}

// Bridge returns the texture bridge.
func (l *Loop) Bridge() *render.Bridge {
	return l.bridge
}
