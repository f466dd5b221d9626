package aeony

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// CameraOptions configures a new Camera. The zero value gives a camera
// centered on the view, unrotated, at zoom 1, covering the whole view, with a
// black background.
type CameraOptions struct {
	// Position is the world point the camera centers on. Nil centers on the
	// middle of the view.
	Position *Vec2
	// Angle is the rotation in degrees.
	Angle float64
	// Zoom is the scale factor; 0 means 1.
	Zoom float64
	// View is the normalized rectangle (0..1) of the view this camera covers.
	// The zero value covers the whole view.
	View Rect
	// Background is the clear color. Nil means opaque black.
	Background *Color
	// IgnoredLayers lists layers this camera does not draw.
	IgnoredLayers []int
}

// Camera is a 2D viewport into a scene. It renders into its own target, which
// the scene then composites at ScreenBounds.
type Camera struct {
	// Active cameras render and composite during Scene.Draw.
	Active bool
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Angle is the camera rotation in degrees (clockwise).
	Angle float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Background is the color the target is cleared with before drawing.
	Background Color

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	ignored uint32

	viewRect     Rect
	screenBounds Rect
	target       RenderTarget

	transform Affine
	inverse   Affine
	invertOK  bool
	computed  bool

	view     ViewSizer
	renderer Renderer

	scrollTween *scrollAnim
}

// NewCamera creates a camera and allocates its render target from the
// current size of view.
func NewCamera(view ViewSizer, r Renderer, opts CameraOptions) *Camera {
	c := &Camera{
		Active:     true,
		Angle:      opts.Angle,
		Zoom:       opts.Zoom,
		Background: ColorBlack,
		view:       view,
		renderer:   r,
	}
	if c.Zoom == 0 {
		c.Zoom = 1
	}
	if opts.Background != nil {
		c.Background = *opts.Background
	}
	if opts.Position != nil {
		c.X, c.Y = opts.Position.X, opts.Position.Y
	} else {
		vw, vh := view.ViewSize()
		c.X, c.Y = vw*0.5, vh*0.5
	}
	for _, l := range opts.IgnoredLayers {
		c.IgnoreLayer(l)
	}
	vr := opts.View
	if vr == (Rect{}) {
		vr = Rect{Width: 1, Height: 1}
	}
	c.UpdateView(vr.X, vr.Y, vr.Width, vr.Height)
	return c
}

// UpdateTransform rebuilds the camera matrix:
//
//	Translate(screenCenter) * Rotate(angle) * Scale(zoom) * Translate(-X, -Y)
//
// The center is that of the camera's own target, so X, Y always lands in the
// middle of the viewport regardless of zoom and rotation.
func (c *Camera) UpdateTransform() {
	c.transform = Identity.
		Translate(c.screenBounds.Width*0.5, c.screenBounds.Height*0.5).
		Rotate(c.Angle * math.Pi / 180).
		Scale(c.Zoom, c.Zoom).
		Translate(-c.X, -c.Y)
	c.inverse, c.invertOK = c.transform.Invert()
	c.computed = true
}

// Transform returns the matrix computed by the last UpdateTransform.
func (c *Camera) Transform() Affine {
	return c.transform
}

// ScreenToWorld converts a point in the camera's target to world coordinates.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64, error) {
	if !c.computed {
		return 0, 0, fmt.Errorf("screen to world: %w", ErrTransformNotComputed)
	}
	if !c.invertOK {
		return 0, 0, fmt.Errorf("screen to world at zoom %g: %w", c.Zoom, ErrSingularTransform)
	}
	wx, wy := c.inverse.Apply(x, y)
	return wx, wy, nil
}

// WorldToScreen converts world coordinates to a point in the camera's target.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64, error) {
	if !c.computed {
		return 0, 0, fmt.Errorf("world to screen: %w", ErrTransformNotComputed)
	}
	sx, sy := c.transform.Apply(x, y)
	return sx, sy, nil
}

// UpdateView sets the normalized view rectangle. Each value is clamped to
// [0, 1]; the screen bounds follow from the current view size and the render
// target is reallocated to match.
func (c *Camera) UpdateView(x, y, width, height float64) {
	c.viewRect = Rect{X: clamp01(x), Y: clamp01(y), Width: clamp01(width), Height: clamp01(height)}

	vw, vh := c.view.ViewSize()
	c.screenBounds = c.viewRect.Scale(vw, vh)

	c.target = reallocTarget(c.renderer, c.target,
		int(math.Round(c.screenBounds.Width)), int(math.Round(c.screenBounds.Height)))
}

// Resize recomputes the screen bounds and target for a new view size,
// keeping the normalized view rectangle.
func (c *Camera) Resize() {
	c.UpdateView(c.viewRect.X, c.viewRect.Y, c.viewRect.Width, c.viewRect.Height)
}

// ViewRect returns the normalized view rectangle.
func (c *Camera) ViewRect() Rect {
	return c.viewRect
}

// ScreenBounds returns where, in view pixels, the camera's image is drawn.
func (c *Camera) ScreenBounds() Rect {
	return c.screenBounds
}

// Target returns the camera's render target, or nil when the view is empty
// or the camera was destroyed.
func (c *Camera) Target() RenderTarget {
	return c.target
}

// Destroy releases the render target. Safe to call more than once.
func (c *Camera) Destroy() {
	if c.target != nil {
		c.target.Release()
		c.target = nil
	}
}

// IgnoreLayer stops the camera drawing layer. Out-of-range layers are ignored.
func (c *Camera) IgnoreLayer(layer int) {
	if validLayer(layer) {
		c.ignored |= 1 << uint(layer)
	}
}

// IncludeLayer undoes IgnoreLayer.
func (c *Camera) IncludeLayer(layer int) {
	if validLayer(layer) {
		c.ignored &^= 1 << uint(layer)
	}
}

// Ignores reports whether the camera skips layer.
func (c *Camera) Ignores(layer int) bool {
	return validLayer(layer) && c.ignored&(1<<uint(layer)) != 0
}

// ScrollTo animates the camera to the given world position over duration
// seconds. The animation advances with Scene.Update.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// update advances the scroll animation and bounds clamping.
func (c *Camera) update(dt float64) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(float32(dt))
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(float32(dt))
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	if c.Zoom <= 0 {
		return
	}
	halfW := c.screenBounds.Width / (2 * c.Zoom)
	halfH := c.screenBounds.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// Bounds smaller than the visible area: center on them.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space, as of the last UpdateTransform.
func (c *Camera) VisibleBounds() (Rect, error) {
	if !c.computed {
		return Rect{}, fmt.Errorf("visible bounds: %w", ErrTransformNotComputed)
	}
	if !c.invertOK {
		return Rect{}, fmt.Errorf("visible bounds: %w", ErrSingularTransform)
	}
	inv := c.inverse
	w, h := c.screenBounds.Width, c.screenBounds.Height

	// Transform the four target corners to world space.
	x0, y0 := inv.Apply(0, 0)
	x1, y1 := inv.Apply(w, 0)
	x2, y2 := inv.Apply(w, h)
	x3, y3 := inv.Apply(0, h)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, nil
}
