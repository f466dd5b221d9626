package aeony

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- Recording renderer ---

// renderOp is one backend call captured by recordRenderer.
type renderOp struct {
	Kind   string // new, release, bind, clear, push, pop, fill, draw
	Target int    // bound target (or the target created/released)
	Src    int    // source target for draw
	X, Y   float64
	W, H   float64
	Color  Color
	M      Affine
}

func (o renderOp) String() string {
	switch o.Kind {
	case "new":
		return fmt.Sprintf("new %d %vx%v", o.Target, o.W, o.H)
	case "draw":
		return fmt.Sprintf("draw %d<-%d @%v,%v", o.Target, o.Src, o.X, o.Y)
	default:
		return fmt.Sprintf("%s %d", o.Kind, o.Target)
	}
}

type fakeTarget struct {
	id       int
	w, h     int
	released int
	r        *recordRenderer
}

func (t *fakeTarget) Size() (int, int) { return t.w, t.h }

func (t *fakeTarget) Release() {
	t.released++
	if t.released > 1 {
		return
	}
	t.r.live--
	t.r.record(renderOp{Kind: "release", Target: t.id})
}

// recordRenderer is a Renderer that records every call. Target 0 is the
// screen.
type recordRenderer struct {
	ops     []renderOp
	screen  *fakeTarget
	target  *fakeTarget
	targets []*fakeTarget
	current Affine
	stack   []Affine
	live    int
}

func newRecordRenderer() *recordRenderer {
	r := &recordRenderer{current: Identity}
	r.screen = &fakeTarget{id: 0, w: 1, h: 1, r: r}
	r.target = r.screen
	return r
}

func (r *recordRenderer) record(op renderOp) {
	r.ops = append(r.ops, op)
}

func (r *recordRenderer) reset() {
	r.ops = r.ops[:0]
}

func (r *recordRenderer) opsOf(kind string) []renderOp {
	var out []renderOp
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (r *recordRenderer) NewTarget(w, h int) RenderTarget {
	t := &fakeTarget{id: len(r.targets) + 1, w: w, h: h, r: r}
	r.targets = append(r.targets, t)
	r.live++
	r.record(renderOp{Kind: "new", Target: t.id, W: float64(w), H: float64(h)})
	return t
}

func (r *recordRenderer) Target() RenderTarget {
	return r.target
}

func (r *recordRenderer) SetTarget(t RenderTarget) {
	if t == nil {
		r.target = r.screen
	} else {
		r.target = t.(*fakeTarget)
	}
	r.record(renderOp{Kind: "bind", Target: r.target.id})
}

func (r *recordRenderer) Clear(c Color) {
	r.record(renderOp{Kind: "clear", Target: r.target.id, Color: c})
}

func (r *recordRenderer) PushTransform(m Affine) {
	r.stack = append(r.stack, r.current)
	r.current = r.current.Multiply(m)
	r.record(renderOp{Kind: "push", Target: r.target.id, M: m})
}

func (r *recordRenderer) PopTransform() {
	n := len(r.stack)
	r.current = r.stack[n-1]
	r.stack = r.stack[:n-1]
	r.record(renderOp{Kind: "pop", Target: r.target.id})
}

func (r *recordRenderer) FillRect(x, y, w, h float64, c Color) {
	r.record(renderOp{Kind: "fill", Target: r.target.id, X: x, Y: y, W: w, H: h, Color: c, M: r.current})
}

func (r *recordRenderer) DrawTarget(src RenderTarget, x, y, sx, sy float64) {
	r.record(renderOp{Kind: "draw", Target: r.target.id, Src: src.(*fakeTarget).id, X: x, Y: y, W: sx, H: sy})
}

// --- Fixed view ---

type fixedView struct {
	w, h float64
}

func (v *fixedView) ViewSize() (float64, float64) { return v.w, v.h }

// --- Test entities ---

// plain has no hooks.
type plain struct {
	EntityBase
}

// hooked implements every hook and appends "<hook>:<name>" to a shared log.
type hooked struct {
	EntityBase
	name string
	log  *[]string

	onUpdate func()
}

func (p *hooked) PreUpdate(dt float64)  { *p.log = append(*p.log, "pre:"+p.name) }
func (p *hooked) PostUpdate(dt float64) { *p.log = append(*p.log, "post:"+p.name) }

func (p *hooked) Update(dt float64) {
	*p.log = append(*p.log, "update:"+p.name)
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *hooked) Draw(r Renderer) {
	*p.log = append(*p.log, "draw:"+p.name)
	r.FillRect(0, 0, 1, 1, ColorWhite)
}

// marker draws a single colored rect so tests can find it in the op log.
type marker struct {
	EntityBase
	color Color
}

func (m *marker) Draw(r Renderer) {
	r.FillRect(0, 0, 10, 10, m.color)
}

func newBase(t *testing.T, ids *IDAllocator, opts EntityOptions) EntityBase {
	t.Helper()
	b, err := ids.NewEntityBase(opts)
	require.NoError(t, err)
	return b
}

func newHooked(t *testing.T, ids *IDAllocator, name string, layer int, log *[]string) *hooked {
	t.Helper()
	return &hooked{EntityBase: newBase(t, ids, EntityOptions{Layer: layer}), name: name, log: log}
}

// layerMembers counts every bucket appearance of e.
func layerMembers(s *Scene, e Entity) (layers []int) {
	for i := 0; i < LayerCount; i++ {
		for _, x := range s.Layer(i) {
			if x == e {
				layers = append(layers, i)
			}
		}
	}
	return layers
}

// assertBucketsMatch checks that the layer buckets together hold exactly the
// scene's entities, each once.
func assertBucketsMatch(t *testing.T, s *Scene) {
	t.Helper()
	var all []Entity
	for i := 0; i < LayerCount; i++ {
		all = append(all, s.Layer(i)...)
	}
	assert.ElementsMatch(t, s.Entities(), all)
}
