// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"time"
)

// DefaultFrameInterval is used when no preferences store supplies one.
const DefaultFrameInterval = time.Second / 60

// Decision is the scheduler's verdict for one loop iteration.
type Decision uint8

const (
	// DecisionSkip means no frame is produced this iteration.
	DecisionSkip Decision = iota

	// DecisionProduce means exactly one frame is produced.
	DecisionProduce
)

// Scheduler paces frame production against a target interval and keeps
// a rolling one-second window for measured frame rate.
//
// The due time is monotonically non-decreasing. After a stall longer
// than one interval (window minimized, debugger attached) the due time
// resynchronizes to now+interval instead of accumulating a backlog, so
// worst-case production is one frame per iteration regardless of the
// stall length.
//
// Scheduler is not safe for concurrent use; the control loop owns it
// and mutates it once per iteration.
type Scheduler struct {
	interval time.Duration
	nextDue  time.Time

	// frame-rate window
	windowStart time.Time
	frames      int
	fps         int
}

// NewScheduler creates a scheduler with the given target interval.
// Non-positive intervals fall back to DefaultFrameInterval.
func NewScheduler(interval time.Duration) *Scheduler {
	s := &Scheduler{}
	s.SetInterval(interval)
	return s
}

// SetInterval updates the target interval. The current due time is
// kept: a shorter interval takes effect after the next produced frame.
func (s *Scheduler) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	s.interval = interval
}

// Interval returns the current target interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// OnIteration decides whether this iteration produces a frame.
//
// A frame is produced only when the UI layer's repaint hint has
// elapsed (repaintAfter <= 0) and the due time has been reached. On
// production the due time advances by one interval; if that leaves it
// behind now, it resynchronizes to now+interval (no catch-up burst).
func (s *Scheduler) OnIteration(now time.Time, repaintAfter time.Duration) Decision {
	if repaintAfter > 0 {
		return DecisionSkip
	}
	if !s.nextDue.IsZero() && now.Before(s.nextDue) {
		return DecisionSkip
	}

	if s.nextDue.IsZero() {
		s.nextDue = now.Add(s.interval)
	} else {
		s.nextDue = s.nextDue.Add(s.interval)
		if s.nextDue.Before(now) {
			// The loop stalled past at least one whole interval.
			s.nextDue = now.Add(s.interval)
		}
	}
	return DecisionProduce
}

// NextDue returns the next scheduled production time.
func (s *Scheduler) NextDue() time.Time {
	return s.nextDue
}

// CountFrame records one produced frame for the frame-rate window and
// reports whether a window just completed.
//
// The window boundary advances by whole seconds, carrying the
// fractional remainder, so a long stall does not perpetually reset the
// window before it completes.
func (s *Scheduler) CountFrame(now time.Time) bool {
	if s.windowStart.IsZero() {
		s.windowStart = now
	}
	s.frames++

	elapsed := now.Sub(s.windowStart)
	if elapsed < time.Second {
		return false
	}
	s.fps = s.frames
	s.frames = 0
	s.windowStart = s.windowStart.Add(elapsed.Truncate(time.Second))
	return true
}

// FPS returns the frame count of the last completed window.
func (s *Scheduler) FPS() int {
	return s.fps
}
