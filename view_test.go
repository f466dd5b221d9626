package aeony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestViewScaler(t *testing.T, window Size) (*ViewScaler, *recordRenderer) {
	t.Helper()
	r := newRecordRenderer()
	v, err := NewViewScaler(r, design800x600, window, centered)
	require.NoError(t, err)
	return v, r
}

func TestNewViewScalerInvalidDesign(t *testing.T) {
	r := newRecordRenderer()
	for _, design := range []Size{{}, {Width: 800}, {Width: -1, Height: 600}} {
		_, err := NewViewScaler(r, design, Size{Width: 800, Height: 600}, centered)
		assert.ErrorIs(t, err, ErrInvalidDesignSize, "%v", design)
	}
	assert.Empty(t, r.ops)
}

func TestNewViewScalerZeroWindow(t *testing.T) {
	r := newRecordRenderer()
	_, err := NewViewScaler(r, design800x600, Size{Width: 800}, centered)
	assert.ErrorIs(t, err, ErrZeroWindowSize)
	assert.Equal(t, 0, r.live)
}

func TestViewScalerDefaultsToFitView(t *testing.T) {
	v, r := newTestViewScaler(t, Size{Width: 1600, Height: 900})

	assert.Equal(t, FitView(design800x600, Size{Width: 1600, Height: 900}, centered), v.Result())
	w, h := v.ViewSize()
	assert.Equal(t, 1067.0, w)
	assert.Equal(t, 600.0, h)

	tw, th := v.Target().Size()
	assert.Equal(t, 1067, tw)
	assert.Equal(t, 600, th)
	assert.Equal(t, 1, r.live)
}

func TestViewScalerAccessors(t *testing.T) {
	v, _ := newTestViewScaler(t, Size{Width: 1001, Height: 701})
	require.NoError(t, v.SetScaleMode(NoScale))

	dw, dh := v.DesignSize()
	assert.Equal(t, 800.0, dw)
	assert.Equal(t, 600.0, dh)

	cx, cy := v.ViewCenter()
	assert.Equal(t, 400.0, cx)
	assert.Equal(t, 300.0, cy)

	ww, wh := v.WindowSize()
	assert.Equal(t, 1001.0, ww)
	assert.Equal(t, 701.0, wh)

	wx, wy := v.WindowCenter()
	assert.Equal(t, 500.0, wx)
	assert.Equal(t, 350.0, wy)

	sx, sy := v.ScaleFactor()
	assert.Equal(t, 1.0, sx)
	assert.Equal(t, 1.0, sy)

	ox, oy := v.Offset()
	assert.Equal(t, 100.5, ox)
	assert.Equal(t, 50.5, oy)
}

func TestViewScalerSetScaleModeRescales(t *testing.T) {
	v, r := newTestViewScaler(t, Size{Width: 1000, Height: 500})
	old := v.Target().(*fakeTarget)
	r.reset()

	require.NoError(t, v.SetScaleMode(Stretch))

	sx, sy := v.ScaleFactor()
	assert.Equal(t, 1.25, sx)
	assert.InDelta(t, 0.8333, sy, 1e-4)

	// The old target is released before the new one is allocated.
	require.Len(t, r.ops, 2)
	assert.Equal(t, "release", r.ops[0].Kind)
	assert.Equal(t, old.id, r.ops[0].Target)
	assert.Equal(t, "new", r.ops[1].Kind)
	assert.Equal(t, 800.0, r.ops[1].W)
	assert.Equal(t, 600.0, r.ops[1].H)
	assert.Equal(t, 1, r.live)
}

func TestViewScalerSetWindowSize(t *testing.T) {
	v, _ := newTestViewScaler(t, Size{Width: 800, Height: 600})

	require.NoError(t, v.SetWindowSize(400, 300))
	sx, _ := v.ScaleFactor()
	assert.Equal(t, 0.5, sx)

	err := v.SetWindowSize(0, 300)
	assert.ErrorIs(t, err, ErrZeroWindowSize)

	// A rejected size leaves the previous state in place.
	w, h := v.WindowSize()
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 300.0, h)
	assert.NotNil(t, v.Target())
}

func TestViewScalerSetAnchor(t *testing.T) {
	v, _ := newTestViewScaler(t, Size{Width: 1000, Height: 700})
	require.NoError(t, v.SetScaleMode(NoScale))

	require.NoError(t, v.SetAnchor(Vec2{X: 1, Y: 0}))
	ox, oy := v.Offset()
	assert.Equal(t, 200.0, ox)
	assert.Equal(t, 0.0, oy)
}

func TestViewScalerViewOrigin(t *testing.T) {
	// FitView widens the view to fill the window, so the view starts at the
	// window edge while the design area is centered inside it.
	v, _ := newTestViewScaler(t, Size{Width: 1600, Height: 900})
	ox, oy := v.ViewOrigin()
	assert.InDelta(t, 0, ox, 1e-6)
	assert.InDelta(t, 0.14, oy, 0.01)

	// With the view equal to the design, the origin is the offset.
	require.NoError(t, v.SetScaleMode(NoScale))
	ox, oy = v.ViewOrigin()
	offX, offY := v.Offset()
	assert.Equal(t, offX, ox)
	assert.Equal(t, offY, oy)
}

func TestViewScalerScreenToView(t *testing.T) {
	v, _ := newTestViewScaler(t, Size{Width: 1000, Height: 700})
	require.NoError(t, v.SetScaleMode(NoScale))

	x, y := v.ScreenToView(100, 50)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	require.NoError(t, v.SetScaleMode(Stretch))
	x, y = v.ScreenToView(1000, 700)
	assert.InDelta(t, 800, x, epsilon)
	assert.InDelta(t, 600, y, epsilon)
}

func TestViewScalerScreenToViewFitView(t *testing.T) {
	v, _ := newTestViewScaler(t, Size{Width: 1600, Height: 900})

	// The window center maps to the view center.
	x, y := v.ScreenToView(800, 450)
	vw, vh := v.ViewSize()
	assert.InDelta(t, vw/2, x, 1e-6)
	assert.InDelta(t, vh/2, y, 0.1)
}

func TestViewScalerBeginPresent(t *testing.T) {
	v, r := newTestViewScaler(t, Size{Width: 1000, Height: 500})
	require.NoError(t, v.SetScaleMode(Stretch))
	viewTarget := v.Target().(*fakeTarget).id
	r.reset()

	require.NoError(t, v.Begin(true))
	assert.Equal(t, viewTarget, r.target.id)
	r.FillRect(0, 0, 1, 1, ColorWhite)
	require.NoError(t, v.Present())

	kinds := make([]string, len(r.ops))
	for i, op := range r.ops {
		kinds[i] = op.Kind
	}
	require.Equal(t, []string{"bind", "clear", "fill", "bind", "clear", "draw"}, kinds)

	assert.Equal(t, ColorTransparent, r.ops[1].Color)
	assert.Equal(t, 0, r.ops[3].Target)
	assert.Equal(t, ColorBlack, r.ops[4].Color)
	draw := r.ops[5]
	assert.Equal(t, viewTarget, draw.Src)
	assert.Equal(t, 1.25, draw.W)
	assert.InDelta(t, 0.8333, draw.H, 1e-4)
}

func TestViewScalerBeginNoClear(t *testing.T) {
	v, r := newTestViewScaler(t, Size{Width: 800, Height: 600})
	r.reset()
	require.NoError(t, v.Begin(false))
	assert.Empty(t, r.opsOf("clear"))
}

func TestViewScalerDestroy(t *testing.T) {
	v, r := newTestViewScaler(t, Size{Width: 800, Height: 600})
	v.Destroy()
	v.Destroy()

	assert.Equal(t, 0, r.live)
	assert.Nil(t, v.Target())
	assert.ErrorIs(t, v.Begin(true), ErrZeroViewSize)
	assert.ErrorIs(t, v.Present(), ErrZeroViewSize)
}

func TestViewScalerLogsRescale(t *testing.T) {
	v, _ := newTestViewScaler(t, Size{Width: 800, Height: 600})
	core, logs := observer.New(zapcore.DebugLevel)
	v.SetLogger(zap.New(core))

	require.NoError(t, v.SetWindowSize(1600, 900))

	entries := logs.FilterMessage("view scaled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, 1067.0, entries[0].ContextMap()["view_width"])
}

func TestViewScalerAsViewSizer(t *testing.T) {
	v, r := newTestViewScaler(t, Size{Width: 1600, Height: 900})
	s := NewScene(v, r)
	assert.Equal(t, Rect{Width: 1067, Height: 600}, s.Cameras()[0].ScreenBounds())

	require.NoError(t, v.SetWindowSize(800, 600))
	s.Resize(800, 600)
	assert.Equal(t, Rect{Width: 800, Height: 600}, s.Cameras()[0].ScreenBounds())
}

func TestViewScalerOnScaled(t *testing.T) {
	v, _ := newTestViewScaler(t, Size{Width: 1600, Height: 900})
	calls := 0
	v.OnScaled(func() { calls++ })

	require.NoError(t, v.SetScaleMode(NoScale))
	require.NoError(t, v.SetAnchor(Vec2{}))
	require.NoError(t, v.SetWindowSize(1000, 700))
	assert.ErrorIs(t, v.SetWindowSize(0, 0), ErrZeroWindowSize)
	assert.Equal(t, 3, calls)

	v.OnScaled(nil)
	require.NoError(t, v.ScaleToWindow())
	assert.Equal(t, 3, calls)
}
