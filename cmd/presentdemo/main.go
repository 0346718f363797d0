// Command presentdemo runs the presentation loop against a gogpu
// window, or against a headless image swapchain with -headless.
//
// Windowed mode wires the loop's collaborators to the host window:
// key presses are dispatched through the consumer chain, resizes
// reconfigure the surfaces, and every redraw runs one loop iteration
// that composites an animated content texture with a UI overlay.
//
// Headless mode probes the GPU adapter, then runs the same loop on an
// in-memory swapchain with the software recorder and writes the last
// presented frame to a PNG.
//
// Keys (windowed mode):
//
//	Space  toggle light/dark theme
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/present"
	"github.com/gogpu/present/prefs"
	"github.com/gogpu/present/render"
	"github.com/gogpu/present/surface"
	"github.com/gogpu/present/theme"
)

func main() {
	var (
		title    = flag.String("title", "presentdemo", "window title")
		config   = flag.String("config", "", "preferences file (TOML)")
		headless = flag.Bool("headless", false, "render to memory instead of a window")
		frames   = flag.Int("frames", 120, "frame count in headless mode")
		out      = flag.String("o", "", "write the last headless frame to this PNG")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		present.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	store, err := prefs.Load(*config)
	if err != nil {
		log.Fatalf("preferences: %v", err)
	}

	if *headless {
		runHeadless(store, *frames, *out, flag.Arg(0))
		return
	}
	runWindowed(store, *title, flag.Arg(0))
}

const width, height = 800, 600

func runWindowed(store *prefs.Store, title, initialFile string) {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(title).
		WithSize(width, height).
		WithContinuousRender(true))

	themes := theme.NewManager()
	initTheme(themes, store)

	chain := &hostSwapchain{}
	surfaces, err := surface.NewManager(chain, surface.Config{Width: width, Height: height})
	if err != nil {
		log.Fatalf("surface manager: %v", err)
	}

	creator := &deferredCreator{}
	recorder := &render.GPURecorder{}
	content := newWaveContent()
	ui := newOverlayUI(store.Config().ShowWelcome)

	loop, err := present.New(present.Config{
		UI:       ui,
		App:      &demoApp{},
		Popup:    ui.popup,
		Surfaces: surfaces,
		Themes:   themes,
		Prefs:    store,
		Content:  content,
		Creator:  creator,
		Recorder: recorder,
	})
	if err != nil {
		log.Fatalf("loop: %v", err)
	}
	ui.bridge = loop.Bridge()
	if initialFile != "" {
		loop.Dispatch(present.AppEvent{Payload: initialFile})
	}

	app.EventSource().OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		switch key {
		case gpucontext.KeySpace:
			mode := theme.ModeLight
			if themes.Style().Mode == theme.ModeLight {
				mode = theme.ModeDark
			}
			loop.Dispatch(present.ThemeEvent{Mode: mode})
		default:
			loop.Dispatch(present.KeyEvent{Code: key, Mods: mods, Pressed: true})
		}
	})

	var frame int
	app.OnDraw(func(dc *gogpu.Context) {
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		if frame == 0 {
			log.Printf("backend: %s", dc.Backend())
		}
		frame++

		cfg := surfaces.Config()
		if cfg.Width != w || cfg.Height != h {
			loop.Dispatch(present.ResizeEvent{Width: w, Height: h})
		}

		drawer := dc.AsTextureDrawer()
		if drawer == nil {
			return
		}
		recorder.DC = drawer
		creator.inner = render.CreatorForHost(drawer.TextureCreator())

		if err := loop.RunIteration(time.Now()); err != nil {
			log.Printf("shutting down: %v", err)
			os.Exit(1)
		}
	})

	app.OnClose(func() {
		log.Printf("rendered %d frames", frame)
	})

	if err := app.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func runHeadless(store *prefs.Store, frames int, out, initialFile string) {
	// Probe the adapter so headless runs still report GPU availability.
	if dev, err := render.OpenDevice(); err != nil {
		log.Printf("no GPU device (continuing in software): %v", err)
	} else {
		log.Printf("adapter: %s", dev.Info())
		dev.Close()
	}

	chain, err := surface.NewSwapchainByName("image", surface.Config{Width: width, Height: height})
	if err != nil {
		log.Fatalf("swapchain: %v", err)
	}
	img, ok := chain.(*surface.ImageSwapchain)
	if !ok {
		log.Fatalf("unexpected swapchain %T", chain)
	}

	surfaces, err := surface.NewManager(chain, surface.Config{Width: width, Height: height})
	if err != nil {
		log.Fatalf("surface manager: %v", err)
	}

	themes := theme.NewManager()
	initTheme(themes, store)

	ui := newOverlayUI(store.Config().ShowWelcome)
	loop, err := present.New(present.Config{
		UI:       ui,
		App:      &demoApp{},
		Popup:    ui.popup,
		Surfaces: surfaces,
		Themes:   themes,
		Prefs:    store,
		Content:  newWaveContent(),
		Creator:  &render.SoftwareCreator{},
		Recorder: &render.SoftwareRecorder{},
	})
	if err != nil {
		log.Fatalf("loop: %v", err)
	}
	ui.bridge = loop.Bridge()
	if initialFile != "" {
		loop.Dispatch(present.AppEvent{Payload: initialFile})
	}

	interval := store.FrameDuration()
	now := time.Now()
	for i := 0; i < frames; i++ {
		if err := loop.RunIteration(now); err != nil {
			log.Fatalf("iteration %d: %v", i, err)
		}
		now = now.Add(interval)
	}
	log.Printf("measured fps: %d", loop.Scheduler().FPS())

	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			log.Fatalf("create %s: %v", out, err)
		}
		defer f.Close()
		if err := png.Encode(f, img.Front()); err != nil {
			log.Fatalf("encode: %v", err)
		}
		log.Printf("wrote %s", out)
	}
}

// initTheme honors an explicit preference and falls back to system
// detection otherwise.
func initTheme(themes *theme.Manager, store *prefs.Store) {
	switch store.Config().Theme {
	case "light":
		themes.Apply(theme.ModeLight)
	case "dark":
		themes.Apply(theme.ModeDark)
	default:
		themes.DetectInitial()
	}
}

// hostSwapchain adapts the host window to the Swapchain interface.
// The host presents after the draw callback returns, so targets
// acquired from it have a no-op Present.
type hostSwapchain struct {
	width, height int
}

func (s *hostSwapchain) Configure(width, height int) {
	s.width, s.height = width, height
}

func (s *hostSwapchain) Acquire() (surface.Target, error) {
	return hostTarget{width: s.width, height: s.height}, nil
}

func (s *hostSwapchain) Close() error { return nil }

type hostTarget struct {
	width, height int
}

func (t hostTarget) Size() (int, int) { return t.width, t.height }
func (t hostTarget) Present() error   { return nil }

// deferredCreator delegates to a creator that only exists once the
// host has produced its first draw context.
type deferredCreator struct {
	inner render.TextureCreator
}

func (c *deferredCreator) NewTextureFromRGBA(w, h int, data []byte) (any, error) {
	if c.inner == nil {
		return nil, render.ErrNilCreator
	}
	return c.inner.NewTextureFromRGBA(w, h, data)
}

var (
	_ surface.Swapchain     = (*hostSwapchain)(nil)
	_ surface.Target        = hostTarget{}
	_ render.TextureCreator = (*deferredCreator)(nil)
)
