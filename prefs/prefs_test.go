// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Config(); got != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults %+v", got, DefaultConfig())
	}
	if s.NeedsSave() {
		t.Error("fresh store should not need saving")
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	data := "fps_limit = 30\nshow_welcome_at_startup = false\ntheme = \"light\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := s.Config()
	if cfg.FPSLimit != 30 {
		t.Errorf("FPSLimit = %d, want 30", cfg.FPSLimit)
	}
	if cfg.ShowWelcome {
		t.Error("ShowWelcome = true, want false")
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Theme)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("fps_limit = = 30"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(malformed) = nil error, want parse error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRESENT_FPS_LIMIT", "144")
	t.Setenv("PRESENT_THEME", "dark")

	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("fps_limit = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Config().FPSLimit; got != 144 {
		t.Errorf("FPSLimit = %d, want env override 144", got)
	}
	if got := s.Config().Theme; got != "dark" {
		t.Errorf("Theme = %q, want env override dark", got)
	}
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}
	for _, tt := range tests {
		s := &Store{cfg: Config{FPSLimit: tt.fps}}
		if got := s.FrameDuration(); got != tt.want {
			t.Errorf("FrameDuration(fps=%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestDirtyTracking(t *testing.T) {
	s := &Store{cfg: DefaultConfig()}

	// Setting the current value is not a change.
	s.SetFPSLimit(DefaultConfig().FPSLimit)
	if s.NeedsSave() {
		t.Error("no-op set marked the store dirty")
	}

	s.SetFPSLimit(30)
	if !s.NeedsSave() {
		t.Error("SetFPSLimit did not mark the store dirty")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.toml")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.SetFPSLimit(75)
	s.SetTheme("light")
	s.SetShowWelcome(false)

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.NeedsSave() {
		t.Error("store still dirty after Save")
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := again.Config(); got != s.Config() {
		t.Errorf("reloaded config = %+v, want %+v", got, s.Config())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save() = %v, want ErrNoPath", err)
	}
}
