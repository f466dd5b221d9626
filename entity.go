package aeony

import "fmt"

// LayerCount is the number of draw/update order buckets in a Scene.
const LayerCount = 32

// DefaultTag is the tag given to entities created without one.
const DefaultTag = "default"

// Entity is anything a Scene can own. Application types embed EntityBase to
// satisfy it, then opt into per-frame behavior by implementing any of
// PreUpdater, Updater, PostUpdater, and Drawer.
type Entity interface {
	Base() *EntityBase
}

// PreUpdater runs before Update, after the scene has applied pending removals.
type PreUpdater interface {
	PreUpdate(dt float64)
}

// Updater runs once per frame.
type Updater interface {
	Update(dt float64)
}

// PostUpdater runs after every entity has been updated.
type PostUpdater interface {
	PostUpdate(dt float64)
}

// Drawer draws the entity with the active camera's transform applied.
type Drawer interface {
	Draw(r Renderer)
}

// EntityOptions configures a new EntityBase.
type EntityOptions struct {
	// Inactive creates the entity with Active() == false.
	Inactive bool
	// Layer is the initial layer, in [0, LayerCount).
	Layer int
	// Tag defaults to DefaultTag.
	Tag string
}

// EntityBase holds the identity and bookkeeping state shared by every entity.
type EntityBase struct {
	id           EntityID
	active       bool
	destroyed    bool
	layer        int
	layerUpdated bool
	tag          string
	ids          *IDAllocator
}

// NewEntityBase allocates an id from DefaultIDs and returns the base state
// for an entity.
func NewEntityBase(opts EntityOptions) (EntityBase, error) {
	return DefaultIDs.NewEntityBase(opts)
}

// NewEntityBase allocates an id from a and returns the base state for an
// entity. The id is released back to a when the entity is destroyed.
func (a *IDAllocator) NewEntityBase(opts EntityOptions) (EntityBase, error) {
	if !validLayer(opts.Layer) {
		return EntityBase{}, fmt.Errorf("new entity: layer %d: %w", opts.Layer, ErrLayerOutOfRange)
	}
	id, err := a.Allocate()
	if err != nil {
		return EntityBase{}, fmt.Errorf("new entity: %w", err)
	}
	tag := opts.Tag
	if tag == "" {
		tag = DefaultTag
	}
	return EntityBase{
		id:     id,
		active: !opts.Inactive,
		layer:  opts.Layer,
		tag:    tag,
		ids:    a,
	}, nil
}

// Base implements Entity.
func (e *EntityBase) Base() *EntityBase { return e }

// ID returns the entity's identity.
func (e *EntityBase) ID() EntityID { return e.id }

// Active reports whether the scene runs hooks for and draws this entity.
func (e *EntityBase) Active() bool { return e.active }

// SetActive toggles the entity. Destroyed entities stay inactive.
func (e *EntityBase) SetActive(active bool) {
	if e.destroyed {
		return
	}
	e.active = active
}

// Tag returns the entity's tag.
func (e *EntityBase) Tag() string { return e.tag }

// SetTag changes the entity's tag.
func (e *EntityBase) SetTag(tag string) { e.tag = tag }

// Layer returns the layer the entity wants to be drawn on. The scene moves
// the entity to this layer on its next draw.
func (e *EntityBase) Layer() int { return e.layer }

// UpdateLayer requests a move to another layer. The move happens during the
// owning scene's next Draw, so changing layers while the scene iterates a
// bucket is safe.
func (e *EntityBase) UpdateLayer(layer int) error {
	if !validLayer(layer) {
		return fmt.Errorf("update layer %d of entity %d: %w", layer, e.id, ErrLayerOutOfRange)
	}
	e.layer = layer
	e.layerUpdated = true
	return nil
}

// Destroyed reports whether Destroy has run.
func (e *EntityBase) Destroyed() bool { return e.destroyed }

// Destroy releases the id and deactivates the entity. Calling it again is a
// no-op, so an id is never released twice.
func (e *EntityBase) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.active = false
	if e.ids != nil {
		e.ids.Release(e.id)
	}
}

func validLayer(layer int) bool {
	return layer >= 0 && layer < LayerCount
}
