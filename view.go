package aeony

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ViewScaler maps the fixed design resolution onto the window with a
// ScaleMode. It owns the render target scenes draw into; Present composites
// that target onto the window using the derived scale and offset.
type ViewScaler struct {
	design Size
	window Size
	anchor Vec2
	mode   ScaleMode
	result ScaleResult

	renderer Renderer
	target   RenderTarget
	prev     RenderTarget
	onScaled func()

	log *zap.Logger
}

// NewViewScaler creates a scaler using FitView and scales it to window.
func NewViewScaler(r Renderer, design, window Size, anchor Vec2) (*ViewScaler, error) {
	if design.Width <= 0 || design.Height <= 0 {
		return nil, fmt.Errorf("new view scaler %vx%v: %w", design.Width, design.Height, ErrInvalidDesignSize)
	}
	v := &ViewScaler{
		design:   design,
		window:   window,
		anchor:   anchor,
		mode:     FitView,
		renderer: r,
		log:      zap.NewNop(),
	}
	if err := v.ScaleToWindow(); err != nil {
		return nil, err
	}
	return v, nil
}

// SetLogger sets the logger used for debug output. Nil restores the no-op logger.
func (v *ViewScaler) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	v.log = log
}

// ScaleToWindow runs the scale mode for the current window size, stores the
// results, and replaces the render target with one of the new view size.
// A window without area returns ErrZeroWindowSize and changes nothing.
func (v *ViewScaler) ScaleToWindow() error {
	if v.window.Width <= 0 || v.window.Height <= 0 {
		return fmt.Errorf("scale to window %vx%v: %w", v.window.Width, v.window.Height, ErrZeroWindowSize)
	}
	v.result = v.mode(v.design, v.window, v.anchor)

	v.target = reallocTarget(v.renderer, v.target,
		int(math.Ceil(v.result.ViewWidth)), int(math.Ceil(v.result.ViewHeight)))

	v.log.Debug("view scaled",
		zap.Float64("window_width", v.window.Width),
		zap.Float64("window_height", v.window.Height),
		zap.Float64("view_width", v.result.ViewWidth),
		zap.Float64("view_height", v.result.ViewHeight),
		zap.Float64("scale_x", v.result.ScaleX),
		zap.Float64("scale_y", v.result.ScaleY),
		zap.Float64("offset_x", v.result.OffsetX),
		zap.Float64("offset_y", v.result.OffsetY))
	if v.onScaled != nil {
		v.onScaled()
	}
	return nil
}

// OnScaled registers fn to run after every successful rescale, whichever
// setter caused it. Nil removes the callback.
func (v *ViewScaler) OnScaled(fn func()) {
	v.onScaled = fn
}

// SetWindowSize records a new window size and rescales.
func (v *ViewScaler) SetWindowSize(w, h int) error {
	prev := v.window
	v.window = Size{Width: float64(w), Height: float64(h)}
	if err := v.ScaleToWindow(); err != nil {
		v.window = prev
		return err
	}
	return nil
}

// SetScaleMode swaps the scale mode and rescales immediately.
func (v *ViewScaler) SetScaleMode(mode ScaleMode) error {
	v.mode = mode
	return v.ScaleToWindow()
}

// SetAnchor changes the anchor and rescales immediately.
func (v *ViewScaler) SetAnchor(anchor Vec2) error {
	v.anchor = anchor
	return v.ScaleToWindow()
}

// DesignSize returns the design resolution.
func (v *ViewScaler) DesignSize() (w, h float64) {
	return v.design.Width, v.design.Height
}

// ViewSize returns the size the game renders at. Implements ViewSizer.
func (v *ViewScaler) ViewSize() (w, h float64) {
	return v.result.ViewWidth, v.result.ViewHeight
}

// ViewCenter returns the center of the view, rounded down.
func (v *ViewScaler) ViewCenter() (x, y float64) {
	return math.Floor(v.result.ViewWidth * 0.5), math.Floor(v.result.ViewHeight * 0.5)
}

// WindowSize returns the window size last scaled to.
func (v *ViewScaler) WindowSize() (w, h float64) {
	return v.window.Width, v.window.Height
}

// WindowCenter returns the center of the window, rounded down.
func (v *ViewScaler) WindowCenter() (x, y float64) {
	return math.Floor(v.window.Width * 0.5), math.Floor(v.window.Height * 0.5)
}

// ScaleFactor returns the factors that scale the view to the window.
func (v *ViewScaler) ScaleFactor() (x, y float64) {
	return v.result.ScaleX, v.result.ScaleY
}

// Offset returns the position of the scaled view inside the window.
func (v *ViewScaler) Offset() (x, y float64) {
	return v.result.OffsetX, v.result.OffsetY
}

// Result returns every value computed by the last ScaleToWindow.
func (v *ViewScaler) Result() ScaleResult {
	return v.result
}

// Target returns the scaler's render target.
func (v *ViewScaler) Target() RenderTarget {
	return v.target
}

// ViewOrigin returns where the top-left corner of the view lands in the
// window. The design area sits inside the view at the anchor, so when the
// view is larger or smaller than the design the origin differs from Offset.
func (v *ViewScaler) ViewOrigin() (x, y float64) {
	r := v.result
	return r.OffsetX - (r.ViewWidth-v.design.Width)*v.anchor.X*r.ScaleX,
		r.OffsetY - (r.ViewHeight-v.design.Height)*v.anchor.Y*r.ScaleY
}

// ScreenToView converts a window pixel position to a view pixel position.
func (v *ViewScaler) ScreenToView(x, y float64) (float64, float64) {
	ox, oy := v.ViewOrigin()
	return (x - ox) / v.result.ScaleX, (y - oy) / v.result.ScaleY
}

// Begin binds the scaler's target, remembering the target bound before, and
// clears it when clear is true. Scenes drawn after Begin render at the view
// resolution.
func (v *ViewScaler) Begin(clear bool) error {
	if v.target == nil {
		return fmt.Errorf("begin view: %w", ErrZeroViewSize)
	}
	v.prev = v.renderer.Target()
	v.renderer.SetTarget(v.target)
	if clear {
		v.renderer.Clear(ColorTransparent)
	}
	return nil
}

// Present rebinds the target that was bound at Begin, clears it, and draws the
// view onto it at ViewOrigin with the scale factors.
func (v *ViewScaler) Present() error {
	if v.target == nil {
		return fmt.Errorf("present view: %w", ErrZeroViewSize)
	}
	r := v.renderer
	ox, oy := v.ViewOrigin()
	r.SetTarget(v.prev)
	r.Clear(ColorBlack)
	r.DrawTarget(v.target, ox, oy, v.result.ScaleX, v.result.ScaleY)
	v.prev = nil
	return nil
}

// Destroy releases the render target. Safe to call more than once.
func (v *ViewScaler) Destroy() {
	if v.target != nil {
		v.target.Release()
		v.target = nil
	}
}
