package aeony

import (
	"fmt"
	"math"
	"strings"
)

// ScaleResult is the output of a ScaleMode: the view size the game renders
// at, the factors that scale the view to the window, and the offset of the
// scaled design inside the window.
type ScaleResult struct {
	ViewWidth, ViewHeight float64
	ScaleX, ScaleY        float64
	OffsetX, OffsetY      float64
}

// ScaleMode maps a design resolution and a window size to a ScaleResult.
// anchor positions the scaled design in the window on each axis: 0 is
// left/top, 0.5 centered, 1 right/bottom. Scale modes are pure functions.
type ScaleMode func(design, window Size, anchor Vec2) ScaleResult

// FitView letterboxes: the design is scaled uniformly so it is fully visible,
// and the view grows along the axis where the window has spare room.
func FitView(design, window Size, anchor Vec2) ScaleResult {
	designRatio := design.Width / design.Height
	windowRatio := window.Width / window.Height

	var viewW, viewH float64
	if windowRatio < designRatio {
		viewW = design.Width
		viewH = math.Ceil(viewW / windowRatio)
	} else {
		viewH = design.Height
		viewW = math.Ceil(viewH * windowRatio)
	}

	scale := window.Width / viewW
	return uniformResult(design, window, anchor, viewW, viewH, scale)
}

// FitWidth keeps the design width and derives the view height from the
// window aspect ratio. The design may be cropped vertically.
func FitWidth(design, window Size, anchor Vec2) ScaleResult {
	windowRatio := window.Width / window.Height
	viewW := design.Width
	viewH := math.Ceil(viewW / windowRatio)

	scale := window.Width / viewW
	return uniformResult(design, window, anchor, viewW, viewH, scale)
}

// FitHeight keeps the design height and derives the view width from the
// window aspect ratio. The design may be cropped horizontally.
func FitHeight(design, window Size, anchor Vec2) ScaleResult {
	windowRatio := window.Width / window.Height
	viewH := design.Height
	viewW := math.Ceil(viewH * windowRatio)

	scale := window.Height / viewH
	return uniformResult(design, window, anchor, viewW, viewH, scale)
}

// NoScale renders the design at 1:1 and anchors it in the window.
func NoScale(design, window Size, anchor Vec2) ScaleResult {
	return ScaleResult{
		ViewWidth:  design.Width,
		ViewHeight: design.Height,
		ScaleX:     1,
		ScaleY:     1,
		OffsetX:    (window.Width - design.Width) * anchor.X,
		OffsetY:    (window.Height - design.Height) * anchor.Y,
	}
}

// Stretch scales each axis independently to fill the window exactly. The
// aspect ratio is not preserved and the anchor is unused.
func Stretch(design, window Size, _ Vec2) ScaleResult {
	return ScaleResult{
		ViewWidth:  design.Width,
		ViewHeight: design.Height,
		ScaleX:     window.Width / design.Width,
		ScaleY:     window.Height / design.Height,
	}
}

func uniformResult(design, window Size, anchor Vec2, viewW, viewH, scale float64) ScaleResult {
	return ScaleResult{
		ViewWidth:  viewW,
		ViewHeight: viewH,
		ScaleX:     scale,
		ScaleY:     scale,
		OffsetX:    (window.Width - design.Width*scale) * anchor.X,
		OffsetY:    (window.Height - design.Height*scale) * anchor.Y,
	}
}

// scaleModes maps configuration names to scale modes.
var scaleModes = map[string]ScaleMode{
	"fit_view":   FitView,
	"fit_width":  FitWidth,
	"fit_height": FitHeight,
	"no_scale":   NoScale,
	"stretch":    Stretch,
}

// ScaleModeByName resolves a configuration name such as "fit_view" or
// "stretch". Names are case-insensitive and may use '-' instead of '_'.
func ScaleModeByName(name string) (ScaleMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	mode, ok := scaleModes[key]
	if !ok {
		return nil, fmt.Errorf("scale mode %q: %w", name, ErrUnknownScaleMode)
	}
	return mode, nil
}
