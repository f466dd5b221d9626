package aeony

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Scene owns a set of entities sorted into LayerCount ordered layers, and the
// cameras that render them. Entity removal and layer changes are deferred so
// that hooks may request them while the scene is iterating.
//
// Scene implements Lifecycle. Embed *Scene to override Pause, Resume,
// ToForeground, or ToBackground.
type Scene struct {
	layers        [LayerCount][]Entity
	entities      []Entity
	layerTracking map[*EntityBase]int
	toRemove      []Entity

	cameras  []*Camera
	view     ViewSizer
	renderer Renderer

	log   *zap.Logger
	debug bool
}

// NewScene creates a scene rendering through r. With no camera options the
// scene gets one camera covering the whole view; otherwise one camera is
// created per option, in order.
func NewScene(view ViewSizer, r Renderer, cameras ...CameraOptions) *Scene {
	s := &Scene{
		layerTracking: make(map[*EntityBase]int),
		view:          view,
		renderer:      r,
		log:           zap.NewNop(),
	}
	if len(cameras) == 0 {
		cameras = []CameraOptions{{}}
	}
	for _, opts := range cameras {
		s.AddCamera(opts)
	}
	return s
}

// SetLogger sets the logger used for debug output. Nil restores the no-op logger.
func (s *Scene) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	s.log = log
}

// SetDebugMode enables per-draw frame stats, logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// AddEntity adds e to the entity list and to the end of its layer.
func (s *Scene) AddEntity(e Entity) {
	b := e.Base()
	s.entities = append(s.entities, e)
	s.layers[b.layer] = append(s.layers[b.layer], e)
	s.layerTracking[b] = b.layer
}

// RemoveEntity queues e for removal. The entity is destroyed and leaves the
// scene at the start of the next PreUpdate.
func (s *Scene) RemoveEntity(e Entity) {
	s.toRemove = append(s.toRemove, e)
}

// Entities returns every entity in update order. The returned slice MUST NOT
// be mutated.
func (s *Scene) Entities() []Entity {
	return s.entities
}

// Layer returns the entities in layer i in draw order, or nil for an invalid
// index. The returned slice MUST NOT be mutated.
func (s *Scene) Layer(i int) []Entity {
	if !validLayer(i) {
		return nil
	}
	return s.layers[i]
}

// Len returns the number of entities in the scene, including ones queued for
// removal.
func (s *Scene) Len() int {
	return len(s.entities)
}

// FindByTag returns the active entities with the given tag, in update order.
func (s *Scene) FindByTag(tag string) []Entity {
	var out []Entity
	for _, e := range s.entities {
		if b := e.Base(); b.active && b.tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// AddCamera creates a camera and appends it to the render order. Later
// cameras composite on top of earlier ones.
func (s *Scene) AddCamera(opts CameraOptions) *Camera {
	cam := NewCamera(s.view, s.renderer, opts)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes cam from the scene and releases its target.
func (s *Scene) RemoveCamera(cam *Camera) {
	if i := slices.Index(s.cameras, cam); i >= 0 {
		s.cameras = slices.Delete(s.cameras, i, i+1)
		cam.Destroy()
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// PreUpdate applies queued removals, then runs PreUpdate on active entities.
func (s *Scene) PreUpdate(dt float64) {
	s.removeEntities()

	for _, e := range s.entities {
		if h, ok := e.(PreUpdater); ok && e.Base().active {
			h.PreUpdate(dt)
		}
	}
}

// Update runs Update on active entities, then advances camera animations.
func (s *Scene) Update(dt float64) {
	for _, e := range s.entities {
		if h, ok := e.(Updater); ok && e.Base().active {
			h.Update(dt)
		}
	}
	for _, cam := range s.cameras {
		cam.update(dt)
	}
}

// PostUpdate runs PostUpdate on active entities.
func (s *Scene) PostUpdate(dt float64) {
	for _, e := range s.entities {
		if h, ok := e.(PostUpdater); ok && e.Base().active {
			h.PostUpdate(dt)
		}
	}
}

// Draw moves entities whose layer changed into their new layer, renders every
// active camera into its own target, then composites the camera targets onto
// the target that was bound when Draw was called, in camera order.
func (s *Scene) Draw() error {
	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	stats.relocated = s.reconcileLayers()

	if len(s.cameras) == 0 {
		return fmt.Errorf("draw scene: %w", ErrNoCameras)
	}
	for i, cam := range s.cameras {
		if cam.Active && cam.target == nil {
			return fmt.Errorf("draw scene: camera %d: %w", i, ErrZeroViewSize)
		}
	}

	if s.debug {
		stats.reconcileTime = time.Since(t0)
		t0 = time.Now()
	}

	r := s.renderer
	prev := r.Target()

	for _, cam := range s.cameras {
		if !cam.Active {
			continue
		}
		cam.UpdateTransform()

		r.SetTarget(cam.target)
		r.Clear(cam.Background)
		r.PushTransform(cam.transform)
		stats.drawn += s.drawWithCamera(cam)
		r.PopTransform()
		stats.cameras++
	}

	if s.debug {
		stats.renderTime = time.Since(t0)
		t0 = time.Now()
	}

	r.SetTarget(prev)
	for _, cam := range s.cameras {
		if cam.Active {
			r.DrawTarget(cam.target, cam.screenBounds.X, cam.screenBounds.Y, 1, 1)
		}
	}

	if s.debug {
		stats.compositeTime = time.Since(t0)
		stats.entities = len(s.entities)
		s.debugLog(stats)
	}
	return nil
}

// drawWithCamera draws every layer the camera does not ignore, lowest layer
// first. Returns the number of entities drawn.
func (s *Scene) drawWithCamera(cam *Camera) int {
	drawn := 0
	for i := range s.layers {
		if len(s.layers[i]) == 0 || cam.Ignores(i) {
			continue
		}
		for _, e := range s.layers[i] {
			if d, ok := e.(Drawer); ok && e.Base().active {
				d.Draw(s.renderer)
				drawn++
			}
		}
	}
	return drawn
}

// Pause is called when another scene is pushed on top of this one.
func (s *Scene) Pause() {}

// Resume is called when the scene above this one is popped.
func (s *Scene) Resume() {}

// ToForeground is called when the scene becomes the focused top scene.
func (s *Scene) ToForeground() {}

// ToBackground is called when the scene loses focus.
func (s *Scene) ToBackground() {}

// Resize recomputes every camera for the current view size. The view size is
// read from the scene's ViewSizer; width and height are the new window size.
func (s *Scene) Resize(width, height int) {
	for _, cam := range s.cameras {
		cam.Resize()
	}
	if s.debug {
		s.log.Debug("scene resized",
			zap.Int("window_width", width),
			zap.Int("window_height", height),
			zap.Int("cameras", len(s.cameras)))
	}
}

// Destroy releases every camera's target, then destroys every entity.
func (s *Scene) Destroy() {
	for _, cam := range s.cameras {
		cam.Destroy()
	}
	for _, e := range s.entities {
		e.Base().Destroy()
	}
	s.entities = nil
	s.toRemove = nil
	for i := range s.layers {
		s.layers[i] = nil
	}
	clear(s.layerTracking)
}

// reconcileLayers moves active entities whose layer changed since the last
// draw. Returns the number of entities moved.
func (s *Scene) reconcileLayers() int {
	moved := 0
	for _, e := range s.entities {
		b := e.Base()
		if !b.active || !b.layerUpdated {
			continue
		}
		current, tracked := s.layerTracking[b]
		if !tracked || current != b.layer {
			if tracked {
				s.layers[current] = removeEntity(s.layers[current], e)
			}
			s.layers[b.layer] = append(s.layers[b.layer], e)
			s.layerTracking[b] = b.layer
			moved++
		}
		b.layerUpdated = false
	}
	return moved
}

// removeEntities drains the removal queue, last queued first.
func (s *Scene) removeEntities() {
	for len(s.toRemove) > 0 {
		n := len(s.toRemove) - 1
		e := s.toRemove[n]
		s.toRemove[n] = nil
		s.toRemove = s.toRemove[:n]

		b := e.Base()
		b.Destroy()
		s.entities = removeEntity(s.entities, e)

		if layer, ok := s.layerTracking[b]; ok {
			s.layers[layer] = removeEntity(s.layers[layer], e)
			delete(s.layerTracking, b)
		}
	}
}

// removeEntity deletes e from list, keeping order.
func removeEntity(list []Entity, e Entity) []Entity {
	if i := slices.Index(list, e); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
