// aeony-demo bounces boxes across several layers, viewed through a main
// camera and a zoomed-out minimap camera that skips the HUD layer.
//
//	go run ./cmd/aeony-demo -config demo.toml -profile cpu
//
// Press F12 to save a screenshot, P to pause or resume updates, and N to
// advance one frame while paused. -script plays a YAML or JSON test script
// of screenshots, window resizes, and waits, then quits.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/profile"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/phanxgames/aeony"
)

const (
	boxCount  = 48
	boxSize   = 24
	hudLayer  = aeony.LayerCount - 1
	layerStep = 2.0 // seconds between layer hops
)

type box struct {
	aeony.EntityBase
	x, y, dx, dy float64
	color        aeony.Color
	hop          float64
	w, h         float64
}

func (b *box) Update(dt float64) {
	b.x += b.dx * dt
	b.y += b.dy * dt
	if b.x < 0 || b.x+boxSize > b.w {
		b.dx = -b.dx
	}
	if b.y < 0 || b.y+boxSize > b.h {
		b.dy = -b.dy
	}
	b.hop += dt
	if b.hop >= layerStep {
		b.hop = 0
		_ = b.UpdateLayer((b.Layer() + 1) % hudLayer)
	}
}

func (b *box) Draw(r aeony.Renderer) {
	r.FillRect(b.x, b.y, boxSize, boxSize, b.color)
}

// banner is drawn on the HUD layer only.
type banner struct {
	aeony.EntityBase
}

func (b *banner) Draw(r aeony.Renderer) {
	r.FillRect(8, 8, 200, 16, aeony.Color{R: 1, G: 1, B: 1, A: 0.6})
}

// hotkeys handles demo keyboard shortcuts. It runs from Engine.OnTick so
// that P and N still work while updates are paused.
func hotkeys(engine *aeony.Engine) func() {
	return func() {
		if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
			engine.Screenshot("demo")
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			engine.Quit()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			engine.SetPaused(!engine.Paused())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			engine.StepFrame()
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML or YAML config file")
	profileMode := flag.String("profile", "", "write a profile: cpu or mem")
	scriptPath := flag.String("script", "", "YAML or JSON test script to play")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	cfg := aeony.DefaultConfig()
	if *configPath != "" {
		loaded, err := aeony.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	log, err := aeony.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	engine, err := aeony.NewEngine(cfg, log)
	if err != nil {
		return err
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := aeony.LoadTestScript(data)
		if err != nil {
			return err
		}
		engine.SetTestRunner(runner)
	}

	scene, err := buildScene(engine)
	if err != nil {
		return err
	}
	engine.Scenes().Push(scene)
	engine.OnTick(hotkeys(engine))

	log.Info("demo ready", zap.Int("entities", scene.Len()), zap.Int("cameras", len(scene.Cameras())))
	return engine.Run()
}

func buildScene(engine *aeony.Engine) (*aeony.Scene, error) {
	w, h := engine.View().DesignSize()
	minimapBg := aeony.Color{R: 0.1, G: 0.1, B: 0.15, A: 1}

	scene := engine.NewScene(
		aeony.CameraOptions{},
		aeony.CameraOptions{
			Zoom:          0.25,
			View:          aeony.Rect{X: 0.75, Y: 0, Width: 0.25, Height: 0.25},
			Background:    &minimapBg,
			IgnoredLayers: []int{hudLayer},
		},
	)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < boxCount; i++ {
		base, err := aeony.NewEntityBase(aeony.EntityOptions{Layer: i % hudLayer, Tag: "box"})
		if err != nil {
			return nil, err
		}
		scene.AddEntity(&box{
			EntityBase: base,
			x:          rng.Float64() * (w - boxSize),
			y:          rng.Float64() * (h - boxSize),
			dx:         rng.Float64()*200 - 100,
			dy:         rng.Float64()*200 - 100,
			color:      aeony.Color{R: rng.Float64(), G: rng.Float64(), B: 1, A: 1},
			hop:        rng.Float64() * layerStep,
			w:          w,
			h:          h,
		})
	}

	base, err := aeony.NewEntityBase(aeony.EntityOptions{Layer: hudLayer, Tag: "hud"})
	if err != nil {
		return nil, err
	}
	scene.AddEntity(&banner{EntityBase: base})

	fps, err := aeony.NewFPSCounter(hudLayer)
	if err != nil {
		return nil, err
	}
	fps.Y = 28
	scene.AddEntity(fps)

	// Pan the main camera across the playfield once at startup.
	cam := scene.Cameras()[0]
	cam.X, cam.Y = 0, 0
	cam.ScrollTo(w/2, h/2, 2, ease.OutQuad)

	return scene, nil
}
