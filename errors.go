package aeony

import "errors"

var (
	// ErrResourceExhausted means the entity id space is used up: the counter
	// reached its ceiling and no released ids are available.
	ErrResourceExhausted = errors.New("aeony: entity ids exhausted")

	// ErrLayerOutOfRange is returned for a layer index outside [0, LayerCount).
	ErrLayerOutOfRange = errors.New("aeony: layer out of range")

	// ErrTransformNotComputed is returned when camera coordinates are
	// converted before UpdateTransform has run.
	ErrTransformNotComputed = errors.New("aeony: camera transform not computed")

	// ErrSingularTransform is returned when a camera transform cannot be
	// inverted, e.g. at zoom 0.
	ErrSingularTransform = errors.New("aeony: camera transform is singular")

	// ErrNoCameras is returned when a scene is drawn without any camera.
	ErrNoCameras = errors.New("aeony: scene has no cameras")

	// ErrZeroViewSize is returned when drawing into a render target that
	// could not be allocated because its size is zero.
	ErrZeroViewSize = errors.New("aeony: zero view size")

	// ErrZeroWindowSize is returned when scaling to a window without area.
	ErrZeroWindowSize = errors.New("aeony: zero window size")

	// ErrInvalidDesignSize is returned for a non-positive design resolution.
	ErrInvalidDesignSize = errors.New("aeony: invalid design size")

	// ErrEmptyStack is returned by SceneStack operations that need a scene.
	ErrEmptyStack = errors.New("aeony: scene stack is empty")

	// ErrUnknownScaleMode is returned by ScaleModeByName.
	ErrUnknownScaleMode = errors.New("aeony: unknown scale mode")
)
