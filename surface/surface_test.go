// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"testing"
)

// countChain records calls and serves scripted acquisition errors.
type countChain struct {
	configures []string
	next       error
	closed     bool
}

func (c *countChain) Configure(width, height int) {
	c.configures = append(c.configures, fmt.Sprintf("%dx%d", width, height))
}

func (c *countChain) Acquire() (Target, error) {
	if c.next != nil {
		err := c.next
		c.next = nil
		return nil, err
	}
	return nopTarget{}, nil
}

func (c *countChain) Close() error {
	c.closed = true
	return nil
}

type nopTarget struct{}

func (nopTarget) Size() (int, int) { return 1, 1 }
func (nopTarget) Present() error   { return nil }

func TestNewManagerNilSwapchain(t *testing.T) {
	if _, err := NewManager(nil, Config{}); !errors.Is(err, ErrNilSwapchain) {
		t.Errorf("NewManager(nil) = %v, want ErrNilSwapchain", err)
	}
}

func TestNewManagerConfiguresOnce(t *testing.T) {
	chain := &countChain{}
	m, err := NewManager(chain, Config{Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if len(chain.configures) != 1 || chain.configures[0] != "640x480" {
		t.Errorf("configures = %v, want [640x480]", chain.configures)
	}
	if got := m.Config(); got.Scale != 1 {
		t.Errorf("default scale = %v, want 1", got.Scale)
	}
}

func TestNewManagerClampsSize(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 0, Height: -5})
	cfg := m.Config()
	if cfg.Width != 1 || cfg.Height != 1 {
		t.Errorf("clamped size = %dx%d, want 1x1", cfg.Width, cfg.Height)
	}
}

func TestReconfigureIdempotent(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 640, Height: 480})

	m.Reconfigure(640, 480)
	m.Reconfigure(640, 480)
	if len(chain.configures) != 1 {
		t.Errorf("configures = %v, want only the initial one", chain.configures)
	}

	m.Reconfigure(800, 600)
	if len(chain.configures) != 2 || chain.configures[1] != "800x600" {
		t.Errorf("configures = %v, want [640x480 800x600]", chain.configures)
	}
}

func TestReconfigureConvergesToLast(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 640, Height: 480})

	sizes := [][2]int{{800, 600}, {640, 480}, {1024, 768}, {1024, 768}, {320, 200}}
	for _, s := range sizes {
		m.Reconfigure(s[0], s[1])
	}
	cfg := m.Config()
	if cfg.Width != 320 || cfg.Height != 200 {
		t.Errorf("final size = %dx%d, want 320x200", cfg.Width, cfg.Height)
	}
	last := chain.configures[len(chain.configures)-1]
	if last != "320x200" {
		t.Errorf("last configure = %s, want 320x200", last)
	}
}

func TestSetScaleFactor(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 640, Height: 480, Scale: 1.5})
	if got := m.Config().Scale; got != 1.5 {
		t.Errorf("Scale = %v, want 1.5", got)
	}

	m.SetScaleFactor(2)
	if got := m.Config().Scale; got != 2 {
		t.Errorf("Scale = %v, want 2", got)
	}

	// Ignored inputs.
	m.SetScaleFactor(0)
	m.SetScaleFactor(-1)
	if got := m.Config().Scale; got != 2 {
		t.Errorf("Scale after invalid input = %v, want 2", got)
	}
}

func TestAcquirePolicy(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantConfigures int
		wantFatal      bool
	}{
		{name: "outdated skips quietly", err: ErrOutdated},
		{name: "lost reconfigures", err: ErrLost, wantConfigures: 1},
		{name: "out of memory is fatal", err: ErrOutOfMemory, wantFatal: true},
		{name: "unknown error drops frame", err: errors.New("timeout")},
		{name: "wrapped sentinel", err: fmt.Errorf("backend: %w", ErrLost), wantConfigures: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := &countChain{}
			m, _ := NewManager(chain, Config{Width: 640, Height: 480})
			baseline := len(chain.configures)

			chain.next = tt.err
			target, err := m.Acquire()
			if target != nil {
				t.Error("Acquire returned a target alongside an error")
			}
			if err == nil {
				t.Fatal("Acquire = nil error, want error")
			}
			if got := len(chain.configures) - baseline; got != tt.wantConfigures {
				t.Errorf("configures = %d, want %d", got, tt.wantConfigures)
			}
			if m.Fatal() != tt.wantFatal {
				t.Errorf("Fatal() = %v, want %v", m.Fatal(), tt.wantFatal)
			}
			if tt.wantFatal && !errors.Is(err, ErrFatal) {
				t.Errorf("err = %v, want wrapping ErrFatal", err)
			}
		})
	}
}

func TestAcquireLostKeepsLastSize(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 640, Height: 480})
	m.Reconfigure(800, 600)

	chain.next = ErrLost
	m.Acquire()
	last := chain.configures[len(chain.configures)-1]
	if last != "800x600" {
		t.Errorf("lost reconfigure used %s, want 800x600", last)
	}
}

func TestFatalStateSticks(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 640, Height: 480})

	chain.next = ErrOutOfMemory
	m.Acquire()
	if m.State() != StateFatal {
		t.Fatalf("State() = %v, want StateFatal", m.State())
	}

	// Acquire never reaches the swapchain again.
	chain.next = nil
	if _, err := m.Acquire(); !errors.Is(err, ErrFatal) {
		t.Errorf("Acquire in fatal state = %v, want ErrFatal", err)
	}

	// Reconfigure is a no-op.
	before := len(chain.configures)
	m.Reconfigure(100, 100)
	if len(chain.configures) != before {
		t.Error("Reconfigure touched the swapchain in fatal state")
	}
}

func TestAcquireSuccess(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 640, Height: 480})
	target, err := m.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if target == nil {
		t.Fatal("Acquire returned nil target")
	}
	if err := target.Present(); err != nil {
		t.Errorf("Present: %v", err)
	}
}

func TestManagerClose(t *testing.T) {
	chain := &countChain{}
	m, _ := NewManager(chain, Config{Width: 640, Height: 480})
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !chain.closed {
		t.Error("swapchain not closed")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateConfigured, "configured"},
		{StateFatal, "fatal"},
		{State(7), "State(7)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", uint8(tt.state), got, tt.want)
		}
	}
}
