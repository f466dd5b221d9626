package aeony

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ebitenTarget wraps an ebiten.Image as a RenderTarget. The screen image is
// wrapped with owned == false and is never deallocated.
type ebitenTarget struct {
	img      *ebiten.Image
	owned    bool
	released bool
	r        *EbitenRenderer
}

func (t *ebitenTarget) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Release deallocates the GPU image. Safe to call more than once.
func (t *ebitenTarget) Release() {
	if !t.owned || t.released {
		return
	}
	t.released = true
	t.img.Deallocate()
	t.r.live--
}

// EbitenRenderer implements Renderer on Ebitengine images. Bind the frame's
// screen with BindScreen before drawing.
type EbitenRenderer struct {
	screen  *ebitenTarget
	target  *ebitenTarget
	current ebiten.GeoM
	stack   []ebiten.GeoM
	white   *ebiten.Image
	live    int
}

// NewEbitenRenderer creates a renderer with nothing bound.
func NewEbitenRenderer() *EbitenRenderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(ColorWhite.RGBA())
	return &EbitenRenderer{white: white}
}

// BindScreen makes screen the default target and resets the transform stack.
// Call it at the start of every ebiten Draw.
func (r *EbitenRenderer) BindScreen(screen *ebiten.Image) {
	if r.screen == nil || r.screen.img != screen {
		r.screen = &ebitenTarget{img: screen, r: r}
	}
	r.target = r.screen
	r.current.Reset()
	r.stack = r.stack[:0]
}

// LiveTargets returns the number of allocated, unreleased offscreen targets.
func (r *EbitenRenderer) LiveTargets() int {
	return r.live
}

// NewTarget implements Renderer.
func (r *EbitenRenderer) NewTarget(w, h int) RenderTarget {
	img := ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
	r.live++
	return &ebitenTarget{img: img, owned: true, r: r}
}

// Target implements Renderer.
func (r *EbitenRenderer) Target() RenderTarget {
	if r.target == nil {
		return nil
	}
	return r.target
}

// SetTarget implements Renderer. A nil target rebinds the screen.
func (r *EbitenRenderer) SetTarget(t RenderTarget) {
	if t == nil {
		r.target = r.screen
		return
	}
	r.target = t.(*ebitenTarget)
}

// Clear implements Renderer.
func (r *EbitenRenderer) Clear(c Color) {
	if r.target == nil {
		return
	}
	if c == ColorTransparent {
		r.target.img.Clear()
		return
	}
	r.target.img.Fill(c.RGBA())
}

// PushTransform implements Renderer.
func (r *EbitenRenderer) PushTransform(m Affine) {
	r.stack = append(r.stack, r.current)
	g := geoM(m)
	g.Concat(r.current)
	r.current = g
}

// PopTransform implements Renderer.
func (r *EbitenRenderer) PopTransform() {
	n := len(r.stack)
	if n == 0 {
		r.current.Reset()
		return
	}
	r.current = r.stack[n-1]
	r.stack = r.stack[:n-1]
}

// FillRect implements Renderer.
func (r *EbitenRenderer) FillRect(x, y, w, h float64, c Color) {
	if r.target == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(r.current)
	op.ColorScale.ScaleWithColor(c.RGBA())
	r.target.img.DrawImage(r.white, &op)
}

// DrawTarget implements Renderer.
func (r *EbitenRenderer) DrawTarget(src RenderTarget, x, y, scaleX, scaleY float64) {
	if r.target == nil || src == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scaleX, scaleY)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(r.current)
	r.target.img.DrawImage(src.(*ebitenTarget).img, &op)
}

// DebugPrint draws msg with the Ebitengine debug font at (x, y) mapped
// through the current transform. The glyphs are not scaled or rotated.
func (r *EbitenRenderer) DebugPrint(msg string, x, y int) {
	if r.target == nil {
		return
	}
	tx, ty := r.current.Apply(float64(x), float64(y))
	ebitenutil.DebugPrintAt(r.target.img, msg, int(tx), int(ty))
}

// geoM converts an Affine to an ebiten.GeoM.
func geoM(m Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}
