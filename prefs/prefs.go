// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package prefs persists user preferences as a TOML file with
// environment variable overrides.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// ErrNoPath is returned by Save when the store was created without a
// backing file.
var ErrNoPath = errors.New("prefs: no backing file")

// envPrefix namespaces the override variables, e.g. PRESENT_FPS_LIMIT.
const envPrefix = "present"

// Config holds the persisted preference values.
type Config struct {
	// FPSLimit is the target frame rate. Zero or negative means the
	// built-in default.
	FPSLimit int `toml:"fps_limit" envconfig:"FPS_LIMIT"`

	// ShowWelcome shows the welcome screen at startup.
	ShowWelcome bool `toml:"show_welcome_at_startup" envconfig:"SHOW_WELCOME"`

	// Theme selects the visual mode: "light", "dark" or "" for
	// system detection.
	Theme string `toml:"theme" envconfig:"THEME"`
}

// DefaultConfig returns the values used when no file exists yet.
func DefaultConfig() Config {
	return Config{
		FPSLimit:    60,
		ShowWelcome: true,
	}
}

// Store is a preference store with deferred persistence: mutations
// mark the store dirty, and the control loop polls NeedsSave once per
// iteration and writes the file outside the event hot path.
//
// Store is not safe for concurrent use; the control loop owns it.
type Store struct {
	path  string
	cfg   Config
	dirty bool
}

// Load reads preferences from path, falling back to defaults when the
// file does not exist, then applies PRESENT_* environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Store, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("prefs: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// first run
		default:
			return nil, fmt.Errorf("prefs: read %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("prefs: environment overrides: %w", err)
	}
	return &Store{path: path, cfg: cfg}, nil
}

// Config returns the current values.
func (s *Store) Config() Config {
	return s.cfg
}

// SetFPSLimit updates the target frame rate and marks the store dirty.
func (s *Store) SetFPSLimit(fps int) {
	if fps == s.cfg.FPSLimit {
		return
	}
	s.cfg.FPSLimit = fps
	s.dirty = true
}

// SetShowWelcome updates the welcome flag and marks the store dirty.
func (s *Store) SetShowWelcome(show bool) {
	if show == s.cfg.ShowWelcome {
		return
	}
	s.cfg.ShowWelcome = show
	s.dirty = true
}

// SetTheme updates the theme selection and marks the store dirty.
func (s *Store) SetTheme(theme string) {
	if theme == s.cfg.Theme {
		return
	}
	s.cfg.Theme = theme
	s.dirty = true
}

// FrameDuration returns the target frame interval derived from the
// configured frame rate.
func (s *Store) FrameDuration() time.Duration {
	if s.cfg.FPSLimit <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.cfg.FPSLimit)
}

// NeedsSave reports whether there are unpersisted changes.
func (s *Store) NeedsSave() bool {
	return s.dirty
}

// Save writes the preferences file and clears the dirty flag. The
// flag stays set on failure so the next poll retries.
func (s *Store) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}
