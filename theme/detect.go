// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package theme

import (
	"os"
	"strings"
)

// envDetector reads the PRESENT_COLOR_SCHEME environment variable.
// Accepted values: "light", "dark" (case-insensitive). Anything else
// counts as detection failure so lower-priority detectors can run.
type envDetector struct{}

func (envDetector) Name() string { return "env" }

func (envDetector) Detect() (dark bool, ok bool) {
	switch strings.ToLower(os.Getenv("PRESENT_COLOR_SCHEME")) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}
