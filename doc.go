// Package aeony is the runtime core of a 2D scene/entity framework for
// [Ebitengine].
//
// It keeps a layered, mutable collection of entities per [Scene], renders
// that collection through one or more independently transformed [Camera]s
// into offscreen targets, and maps the fixed design resolution onto the
// window with a [ViewScaler] and a selectable [ScaleMode].
//
// # Quick start
//
//	cfg := aeony.DefaultConfig()
//	engine, err := aeony.NewEngine(cfg, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := engine.NewScene()
//	scene.AddEntity(player)
//	engine.Scenes().Push(scene)
//	if err := engine.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Entities
//
// Entity types embed [EntityBase] and implement any of [PreUpdater],
// [Updater], [PostUpdater], and [Drawer]. Hooks an entity does not implement
// are skipped.
//
//	type Box struct {
//		aeony.EntityBase
//		X, Y float64
//	}
//
//	func (b *Box) Update(dt float64)     { b.X += 60 * dt }
//	func (b *Box) Draw(r aeony.Renderer) { r.FillRect(b.X, b.Y, 16, 16, aeony.ColorWhite) }
//
//	base, err := aeony.NewEntityBase(aeony.EntityOptions{Layer: 2})
//	box := &Box{EntityBase: base}
//
// [Scene.RemoveEntity] and [EntityBase.UpdateLayer] take effect at the next
// PreUpdate and Draw respectively, so hooks may call them freely.
//
// # Cameras and scaling
//
// Each camera covers a normalized rectangle of the view and renders into its
// own target; the scene composites camera targets in list order, so later
// cameras cover earlier ones. The [ViewScaler] owns the view-sized target
// scenes composite into and draws it to the window with the scale factors and
// letterbox offsets computed by [FitView], [FitWidth], [FitHeight],
// [NoScale], or [Stretch].
//
// [Ebitengine]: https://ebitengine.org
package aeony
