// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"log/slog"

	"github.com/gogpu/present/internal/logx"
)

// SetLogger sets the logger used by this package and its subpackages.
// By default all logging is disabled. Pass nil to disable logging
// again.
//
// Example:
//
//	present.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger. It never returns nil; when
// logging is disabled it returns a no-op logger.
func Logger() *slog.Logger {
	return logx.Logger()
}
