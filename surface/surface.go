// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/present/internal/logx"
)

// Acquisition outcomes reported by swapchain backends. Backends wrap
// these sentinels so the manager can classify failures; anything else
// is treated as a generic dropped frame.
var (
	// ErrOutdated means the surface parameters no longer match the
	// window state (typical after minimize/restore on some platforms).
	// The next resize event corrects it; no reconfiguration is needed.
	ErrOutdated = errors.New("surface: outdated")

	// ErrLost means the surface was lost and must be reconfigured
	// before the next acquisition can succeed.
	ErrLost = errors.New("surface: lost")

	// ErrOutOfMemory means the backend cannot allocate a presentable
	// target. This is the one unrecoverable acquisition outcome.
	ErrOutOfMemory = errors.New("surface: out of memory")
)

// ErrFatal wraps every acquisition error the manager considers
// terminal. Once returned, the manager refuses further acquisitions.
var ErrFatal = errors.New("surface: fatal")

// ErrNilSwapchain is returned when creating a manager without a swapchain.
var ErrNilSwapchain = errors.New("surface: nil swapchain")

// Swapchain is the backend-facing presentation contract. The manager
// owns exactly one swapchain and serializes all calls to it.
type Swapchain interface {
	// Configure sizes (or re-creates) the swapchain. It must succeed
	// even while the surface is currently invalid: configuration is
	// how an invalid surface becomes valid again.
	Configure(width, height int)

	// Acquire returns the next presentable target, or an error wrapping
	// one of the outcome sentinels above.
	Acquire() (Target, error)

	// Close releases the swapchain's resources.
	Close() error
}

// Target is one acquired, presentable frame.
type Target interface {
	// Size returns the target dimensions in pixels.
	Size() (width, height int)

	// Present hands the target to the windowing system for display.
	// The target must not be used afterwards.
	Present() error
}

// State is the manager's surface lifecycle state.
type State uint8

const (
	// StateConfigured means the surface is usable; resize and scale
	// events move it to a new Configured state.
	StateConfigured State = iota

	// StateFatal is terminal: an unrecoverable acquisition outcome was
	// observed and the process should begin orderly shutdown.
	StateFatal
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateFatal:
		return "fatal"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Config holds the manager's surface parameters.
type Config struct {
	// Width and Height are the configured dimensions in pixels.
	Width  int
	Height int

	// Scale is the display scale factor.
	Scale float64
}

// Manager owns the presentation surface: it configures the swapchain on
// resize and scale changes and classifies acquisition failures into
// retry, reconfigure, and fatal.
//
// Manager is not safe for concurrent use; the control loop thread owns
// it together with the swapchain.
type Manager struct {
	chain  Swapchain
	width  int
	height int
	scale  float64
	state  State
	log    *slog.Logger
}

// NewManager creates a manager over the given swapchain and configures
// it with the initial dimensions. Dimensions are clamped to at least
// one pixel; a non-positive scale defaults to 1.
func NewManager(chain Swapchain, cfg Config) (*Manager, error) {
	if chain == nil {
		return nil, ErrNilSwapchain
	}
	w, h := clampSize(cfg.Width, cfg.Height)
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}

	m := &Manager{
		chain:  chain,
		width:  w,
		height: h,
		scale:  scale,
		state:  StateConfigured,
		log:    logx.Logger(),
	}
	m.chain.Configure(w, h)
	return m, nil
}

// Acquire returns the next presentable target.
//
// Outcome policy:
//   - Outdated: silently skipped, no reconfiguration (the next resize
//     event corrects the mismatch).
//   - Lost: the swapchain is reconfigured with the last known size and
//     the frame skipped; the next acquisition retries.
//   - OutOfMemory: the manager enters the terminal Fatal state and the
//     returned error wraps ErrFatal.
//   - Anything else: logged as a warning and skipped.
//
// A nil error means the caller must present or drop the target; every
// non-nil error means no frame this iteration.
func (m *Manager) Acquire() (Target, error) {
	if m.state == StateFatal {
		return nil, fmt.Errorf("%w: surface is in fatal state", ErrFatal)
	}

	t, err := m.chain.Acquire()
	if err == nil {
		return t, nil
	}

	switch {
	case errors.Is(err, ErrOutdated):
		// Quiet by contract: this fires every frame while minimized on
		// some platforms and would flood the log.
		return nil, err
	case errors.Is(err, ErrLost):
		m.log.Debug("surface lost, reconfiguring", "width", m.width, "height", m.height)
		m.chain.Configure(m.width, m.height)
		return nil, err
	case errors.Is(err, ErrOutOfMemory):
		m.state = StateFatal
		m.log.Error("surface acquisition out of memory, shutting down")
		return nil, fmt.Errorf("%w: %w", ErrFatal, err)
	default:
		m.log.Warn("dropped frame", "err", err)
		return nil, err
	}
}

// Reconfigure applies a new surface size. It is idempotent: repeating
// the current dimensions is a no-op. Safe to call while the surface is
// invalid, because configuration is what restores validity.
func (m *Manager) Reconfigure(width, height int) {
	if m.state == StateFatal {
		return
	}
	w, h := clampSize(width, height)
	if w == m.width && h == m.height {
		return
	}
	m.width, m.height = w, h
	m.chain.Configure(w, h)
}

// SetScaleFactor applies a new display scale factor. Idempotent with
// respect to repeated identical input; non-positive factors are ignored.
func (m *Manager) SetScaleFactor(factor float64) {
	if factor <= 0 || factor == m.scale {
		return
	}
	m.scale = factor
}

// Config returns the current surface parameters.
func (m *Manager) Config() Config {
	return Config{Width: m.width, Height: m.height, Scale: m.scale}
}

// State returns the manager's lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Fatal reports whether the manager has observed an unrecoverable
// acquisition outcome.
func (m *Manager) Fatal() bool {
	return m.state == StateFatal
}

// Close releases the underlying swapchain.
func (m *Manager) Close() error {
	return m.chain.Close()
}

func clampSize(w, h int) (int, int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}
