package aeony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityBaseDefaults(t *testing.T) {
	ids := NewIDAllocator(16)
	b, err := ids.NewEntityBase(EntityOptions{})
	require.NoError(t, err)

	assert.True(t, b.Active())
	assert.False(t, b.Destroyed())
	assert.Equal(t, 0, b.Layer())
	assert.Equal(t, DefaultTag, b.Tag())
	assert.Equal(t, EntityID(0), b.ID())
}

func TestNewEntityBaseOptions(t *testing.T) {
	ids := NewIDAllocator(16)
	b, err := ids.NewEntityBase(EntityOptions{Inactive: true, Layer: 31, Tag: "enemy"})
	require.NoError(t, err)

	assert.False(t, b.Active())
	assert.Equal(t, 31, b.Layer())
	assert.Equal(t, "enemy", b.Tag())
}

func TestNewEntityBaseUniqueIDs(t *testing.T) {
	ids := NewIDAllocator(16)
	seen := make(map[EntityID]bool)
	for i := 0; i < 16; i++ {
		b := newBase(t, ids, EntityOptions{})
		assert.False(t, seen[b.ID()], "duplicate id %d", b.ID())
		seen[b.ID()] = true
	}
}

func TestNewEntityBaseLayerOutOfRange(t *testing.T) {
	ids := NewIDAllocator(16)
	for _, layer := range []int{-1, LayerCount, 100} {
		_, err := ids.NewEntityBase(EntityOptions{Layer: layer})
		assert.ErrorIs(t, err, ErrLayerOutOfRange, "layer %d", layer)
	}
	// A rejected entity does not consume an id.
	assert.Equal(t, 0, ids.Live())
}

func TestNewEntityBaseExhausted(t *testing.T) {
	ids := NewIDAllocator(1)
	_ = newBase(t, ids, EntityOptions{})
	_, err := ids.NewEntityBase(EntityOptions{})
	assert.ErrorIs(t, err, ErrResourceExhausted)
}

func TestEntityUpdateLayer(t *testing.T) {
	ids := NewIDAllocator(16)
	b := newBase(t, ids, EntityOptions{Layer: 2})

	require.NoError(t, b.UpdateLayer(5))
	assert.Equal(t, 5, b.Layer())
	assert.True(t, b.layerUpdated)

	err := b.UpdateLayer(LayerCount)
	assert.ErrorIs(t, err, ErrLayerOutOfRange)
	assert.Equal(t, 5, b.Layer(), "failed UpdateLayer must not change the layer")
}

func TestEntityDestroyReleasesIDOnce(t *testing.T) {
	ids := NewIDAllocator(1)
	b := newBase(t, ids, EntityOptions{})

	b.Destroy()
	b.Destroy()

	assert.True(t, b.Destroyed())
	assert.False(t, b.Active())
	assert.Len(t, ids.free, 1)

	// The id comes back exactly once.
	id, err := ids.Allocate()
	require.NoError(t, err)
	assert.Equal(t, b.ID(), id)
	_, err = ids.Allocate()
	assert.ErrorIs(t, err, ErrResourceExhausted)
}

func TestEntitySetActiveAfterDestroy(t *testing.T) {
	ids := NewIDAllocator(4)
	b := newBase(t, ids, EntityOptions{})
	b.SetActive(false)
	assert.False(t, b.Active())
	b.SetActive(true)
	assert.True(t, b.Active())

	b.Destroy()
	b.SetActive(true)
	assert.False(t, b.Active())
}

func TestEntitySetTag(t *testing.T) {
	ids := NewIDAllocator(4)
	b := newBase(t, ids, EntityOptions{})
	b.SetTag("player")
	assert.Equal(t, "player", b.Tag())
}

func TestEntityBaseSatisfiesEntity(t *testing.T) {
	ids := NewIDAllocator(4)
	p := &plain{EntityBase: newBase(t, ids, EntityOptions{})}
	var e Entity = p
	assert.Same(t, &p.EntityBase, e.Base())

	_, isDrawer := e.(Drawer)
	_, isUpdater := e.(Updater)
	assert.False(t, isDrawer)
	assert.False(t, isUpdater)
}

func TestNewEntityBaseDefaultIDs(t *testing.T) {
	ResetIDs()
	t.Cleanup(ResetIDs)

	a, err := NewEntityBase(EntityOptions{})
	require.NoError(t, err)
	b, err := NewEntityBase(EntityOptions{})
	require.NoError(t, err)

	assert.Equal(t, EntityID(0), a.ID())
	assert.Equal(t, EntityID(1), b.ID())
	assert.Equal(t, 2, DefaultIDs.Live())

	a.Destroy()
	assert.Equal(t, 1, DefaultIDs.Live())
}
