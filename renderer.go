package aeony

// RenderTarget is an offscreen image that can be drawn into and later drawn
// as a texture. Its owner must Release it; releasing twice is a no-op.
type RenderTarget interface {
	Size() (w, h int)
	Release()
}

// Renderer is the rendering backend the core draws through. Implementations
// keep one bound target and a transform stack; drawing calls are transformed
// by the product of every pushed matrix.
type Renderer interface {
	// NewTarget allocates an offscreen target. w and h are positive.
	NewTarget(w, h int) RenderTarget
	// Target returns the currently bound target.
	Target() RenderTarget
	// SetTarget binds t for subsequent drawing.
	SetTarget(t RenderTarget)
	// Clear fills the bound target with c.
	Clear(c Color)
	// PushTransform multiplies m onto the transform stack.
	PushTransform(m Affine)
	// PopTransform undoes the most recent PushTransform.
	PopTransform()
	// FillRect draws a solid rectangle with the current transform.
	FillRect(x, y, w, h float64, c Color)
	// DrawTarget composites src onto the bound target at (x, y) scaled by
	// (scaleX, scaleY), with the current transform.
	DrawTarget(src RenderTarget, x, y, scaleX, scaleY float64)
}

// ViewSizer reports the size, in pixels, of the view cameras render into.
type ViewSizer interface {
	ViewSize() (w, h float64)
}

// reallocTarget releases old, then allocates a w x h target. It returns nil
// when the size has no area, so callers can report ErrZeroViewSize at draw
// time instead of handing the backend an empty image.
func reallocTarget(r Renderer, old RenderTarget, w, h int) RenderTarget {
	if old != nil {
		old.Release()
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	return r.NewTarget(w, h)
}
