// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package logx holds the process-wide logger shared by all present
// packages. The public entry point is present.SetLogger; this package
// exists so sub-packages can log without importing the root package.
package logx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely,
// making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NewNop creates a logger that silently discards all output.
func NewNop() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that Set
// can be called concurrently with logging from the loop thread.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := NewNop()
	loggerPtr.Store(l)
}

// Set replaces the active logger. Pass nil to silence logging.
func Set(l *slog.Logger) {
	if l == nil {
		l = NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the active logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
