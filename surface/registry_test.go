// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry()
	factory := func(cfg Config) (Swapchain, error) {
		return NewImageSwapchain(cfg.Width, cfg.Height), nil
	}
	r.Register("software", 10, factory, nil)
	r.Register("host", 100, factory, nil)
	r.Register("fallback", 1, factory, nil)

	got := r.List()
	want := []string{"host", "software", "fallback"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryAvailabilityFilter(t *testing.T) {
	r := NewRegistry()
	factory := func(cfg Config) (Swapchain, error) {
		return NewImageSwapchain(cfg.Width, cfg.Height), nil
	}
	r.Register("present", 10, factory, func() bool { return true })
	r.Register("absent", 100, factory, func() bool { return false })

	got := r.Available()
	if len(got) != 1 || got[0] != "present" {
		t.Errorf("Available() = %v, want [present]", got)
	}
}

func TestRegistryNewSwapchainPicksBestAvailable(t *testing.T) {
	r := NewRegistry()
	made := ""
	mkFactory := func(name string) Factory {
		return func(cfg Config) (Swapchain, error) {
			made = name
			return NewImageSwapchain(cfg.Width, cfg.Height), nil
		}
	}
	r.Register("low", 1, mkFactory("low"), nil)
	r.Register("high", 100, mkFactory("high"), func() bool { return false })
	r.Register("mid", 50, mkFactory("mid"), nil)

	sc, err := r.NewSwapchain(Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("NewSwapchain: %v", err)
	}
	defer sc.Close()
	if made != "mid" {
		t.Errorf("selected backend = %q, want mid", made)
	}
}

func TestRegistryNewSwapchainFallsThroughFailures(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("no device")
	r.Register("broken", 100, func(cfg Config) (Swapchain, error) {
		return nil, boom
	}, nil)
	r.Register("working", 10, func(cfg Config) (Swapchain, error) {
		return NewImageSwapchain(cfg.Width, cfg.Height), nil
	}, nil)

	sc, err := r.NewSwapchain(Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("NewSwapchain: %v", err)
	}
	sc.Close()
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.NewSwapchain(Config{}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("empty registry NewSwapchain = %v, want ErrNoBackendAvailable", err)
	}

	var notFound *BackendNotFoundError
	if _, err := r.NewSwapchainByName("ghost", Config{}); !errors.As(err, &notFound) {
		t.Errorf("NewSwapchainByName(ghost) = %v, want BackendNotFoundError", err)
	}

	r.Register("off", 10, func(cfg Config) (Swapchain, error) {
		return NewImageSwapchain(1, 1), nil
	}, func() bool { return false })
	var unavailable *BackendUnavailableError
	if _, err := r.NewSwapchainByName("off", Config{}); !errors.As(err, &unavailable) {
		t.Errorf("NewSwapchainByName(off) = %v, want BackendUnavailableError", err)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("tmp", 10, func(cfg Config) (Swapchain, error) {
		return NewImageSwapchain(1, 1), nil
	}, nil)
	r.Unregister("tmp")
	if got := r.List(); len(got) != 0 {
		t.Errorf("List() after Unregister = %v, want empty", got)
	}
}

func TestGlobalRegistryHasImageBackend(t *testing.T) {
	sc, err := NewSwapchainByName("image", Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("NewSwapchainByName(image): %v", err)
	}
	defer sc.Close()
	if _, ok := sc.(*ImageSwapchain); !ok {
		t.Errorf("image backend = %T, want *ImageSwapchain", sc)
	}
}
