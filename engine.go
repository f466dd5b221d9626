package aeony

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// screenBinder is implemented by renderers that draw to the ebiten screen.
type screenBinder interface {
	BindScreen(screen *ebiten.Image)
}

// Engine drives a SceneStack from the Ebitengine game loop. It implements
// ebiten.Game: Update runs the three update phases, Draw renders the top
// scene at the design resolution and scales it to the window, and Layout
// forwards window size changes.
type Engine struct {
	cfg      Config
	renderer Renderer
	view     *ViewScaler
	scenes   SceneStack
	log      *zap.Logger

	windowW, windowH int
	focused          bool
	quit             bool
	running          bool
	drawErr          error

	paused    bool
	stepFrame bool
	onTick    func()

	screenshots []string
	runner      *TestRunner
}

// NewEngine creates an engine rendering through an EbitenRenderer.
func NewEngine(cfg Config, log *zap.Logger) (*Engine, error) {
	return newEngine(cfg, log, NewEbitenRenderer())
}

func newEngine(cfg Config, log *zap.Logger, r Renderer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	mode, err := ScaleModeByName(cfg.View.ScaleMode)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	view, err := NewViewScaler(r,
		Size{Width: float64(cfg.View.DesignWidth), Height: float64(cfg.View.DesignHeight)},
		Size{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)},
		Vec2{X: cfg.View.AnchorX, Y: cfg.View.AnchorY})
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	view.SetLogger(log.Named("view"))
	if err := view.SetScaleMode(mode); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		renderer: r,
		view:     view,
		log:      log,
		windowW:  cfg.Window.Width,
		windowH:  cfg.Window.Height,
		focused:  true,
	}
	// Cameras follow every view change, including scale mode and anchor
	// changes made through View().
	view.OnScaled(e.resizeScenes)
	return e, nil
}

// View returns the engine's view scaler.
func (e *Engine) View() *ViewScaler { return e.view }

// Renderer returns the renderer scenes should draw through.
func (e *Engine) Renderer() Renderer { return e.renderer }

// Scenes returns the scene stack.
func (e *Engine) Scenes() *SceneStack { return &e.scenes }

// NewScene creates a scene bound to the engine's view and renderer, with the
// engine's logger and debug setting.
func (e *Engine) NewScene(cameras ...CameraOptions) *Scene {
	s := NewScene(e.view, e.renderer, cameras...)
	s.SetLogger(e.log.Named("scene"))
	s.SetDebugMode(e.cfg.Logging.Debug)
	return s
}

// Quit ends the game loop after the current frame.
func (e *Engine) Quit() {
	e.quit = true
}

// Update implements ebiten.Game. A draw error from the previous frame is
// returned here, which stops the loop.
func (e *Engine) Update() error {
	if err := e.drawErr; err != nil {
		e.drawErr = nil
		return err
	}
	if e.quit {
		return ebiten.Termination
	}

	if focused := ebiten.IsFocused(); focused != e.focused {
		e.setFocused(focused)
	}

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = e.cfg.Window.TPS
	}
	e.tick(1 / float64(tps))
	return nil
}

// tick runs the tick hook and the test runner, then one update unless the
// engine is paused. Drawing is not affected by pausing.
func (e *Engine) tick(dt float64) {
	if e.onTick != nil {
		e.onTick()
	}
	if e.runner != nil {
		e.runner.step(e)
	}
	if e.paused {
		if !e.stepFrame {
			return
		}
		e.stepFrame = false
	}
	e.Step(dt)
}

// OnTick registers fn to run at the start of every Update, before the pause
// check. Use it for input that must work while paused. Nil removes it.
func (e *Engine) OnTick(fn func()) {
	e.onTick = fn
}

// SetPaused stops or resumes scene updates. A paused engine keeps drawing
// the last state.
func (e *Engine) SetPaused(paused bool) {
	if paused == e.paused {
		return
	}
	e.paused = paused
	e.stepFrame = false
	e.log.Debug("pause changed", zap.Bool("paused", paused))
}

// Paused reports whether scene updates are paused.
func (e *Engine) Paused() bool { return e.paused }

// StepFrame runs exactly one update on the next tick while paused. It has no
// effect when the engine is running.
func (e *Engine) StepFrame() {
	if e.paused {
		e.stepFrame = true
	}
}

// Step runs one update with dt clamped to the configured maximum.
func (e *Engine) Step(dt float64) {
	if dt > e.cfg.Loop.MaxDelta {
		dt = e.cfg.Loop.MaxDelta
	}
	e.scenes.PreUpdate(dt)
	e.scenes.Update(dt)
	e.scenes.PostUpdate(dt)
}

func (e *Engine) setFocused(focused bool) {
	e.focused = focused
	if focused {
		e.scenes.ToForeground()
	} else {
		e.scenes.ToBackground()
	}
	e.log.Debug("focus changed", zap.Bool("focused", focused))
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	if b, ok := e.renderer.(screenBinder); ok {
		b.BindScreen(screen)
	}
	if err := e.drawFrame(); err != nil {
		e.log.Error("draw frame", zap.Error(err))
		e.drawErr = err
	}
	e.flushScreenshots(screen)
}

func (e *Engine) drawFrame() error {
	if err := e.view.Begin(true); err != nil {
		return err
	}
	err := e.scenes.Draw()
	if perr := e.view.Present(); perr != nil {
		return errors.Join(err, perr)
	}
	return err
}

// Layout implements ebiten.Game. The screen matches the window; the view
// scaler handles the design resolution.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return e.windowW, e.windowH
	}
	if outsideWidth != e.windowW || outsideHeight != e.windowH {
		e.resize(outsideWidth, outsideHeight)
	}
	return e.windowW, e.windowH
}

func (e *Engine) resize(w, h int) {
	if err := e.view.SetWindowSize(w, h); err != nil {
		e.log.Warn("resize", zap.Int("width", w), zap.Int("height", h), zap.Error(err))
		return
	}
	e.windowW, e.windowH = w, h
}

func (e *Engine) resizeScenes() {
	w, h := e.view.WindowSize()
	e.scenes.Resize(int(w), int(h))
}

// resizeWindow asks the OS window for a new size while running, and rescales
// right away so the next frame already uses it.
func (e *Engine) resizeWindow(w, h int) {
	if e.running {
		ebiten.SetWindowSize(w, h)
	}
	e.resize(w, h)
}

// Run opens the window and blocks until the game ends. Every scene and the
// view target are destroyed afterwards.
func (e *Engine) Run() error {
	ebiten.SetWindowTitle(e.cfg.Window.Title)
	ebiten.SetWindowSize(e.cfg.Window.Width, e.cfg.Window.Height)
	if e.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(e.cfg.Window.TPS)

	e.log.Info("starting",
		zap.String("title", e.cfg.Window.Title),
		zap.Int("design_width", e.cfg.View.DesignWidth),
		zap.Int("design_height", e.cfg.View.DesignHeight),
		zap.String("scale_mode", e.cfg.View.ScaleMode))

	e.running = true
	err := ebiten.RunGame(e)
	e.running = false
	e.Destroy()
	return err
}

// Destroy clears the scene stack and releases the view target.
func (e *Engine) Destroy() {
	e.scenes.Clear()
	e.view.Destroy()
}
