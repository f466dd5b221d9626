package aeony

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsInterval is how often, in seconds, the overlay text is refreshed.
const fpsInterval = 0.5

// debugPrinter is implemented by renderers that can draw debug text.
type debugPrinter interface {
	DebugPrint(msg string, x, y int)
}

// FPSCounter is an entity that shows the current FPS and TPS in the corner
// of every camera that draws its layer. Renderers without debug text
// support draw only the background panel.
type FPSCounter struct {
	EntityBase
	X, Y float64

	text    string
	elapsed float64
	sample  func() (fps, tps float64)
}

// NewFPSCounter creates a counter on layer, typically the top layer.
func NewFPSCounter(layer int) (*FPSCounter, error) {
	base, err := NewEntityBase(EntityOptions{Layer: layer, Tag: "fps"})
	if err != nil {
		return nil, err
	}
	return &FPSCounter{
		EntityBase: base,
		X:          4,
		Y:          4,
		elapsed:    fpsInterval,
		sample:     func() (float64, float64) { return ebiten.ActualFPS(), ebiten.ActualTPS() },
	}, nil
}

// Text returns the text shown by the overlay.
func (f *FPSCounter) Text() string {
	return f.text
}

// Update refreshes the text every fpsInterval seconds.
func (f *FPSCounter) Update(dt float64) {
	f.elapsed += dt
	if f.elapsed < fpsInterval {
		return
	}
	f.elapsed = 0
	fps, tps := f.sample()
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}

// Draw implements Drawer.
func (f *FPSCounter) Draw(r Renderer) {
	// 100x32 fits two lines of debug text.
	r.FillRect(f.X, f.Y, 100, 32, Color{A: 0.5})
	if p, ok := r.(debugPrinter); ok && f.text != "" {
		p.DebugPrint(f.text, int(f.X), int(f.Y))
	}
}
