package aeony

import "fmt"

// Lifecycle is the set of hooks a scene exposes to whatever drives it.
// *Scene implements it.
type Lifecycle interface {
	PreUpdate(dt float64)
	Update(dt float64)
	PostUpdate(dt float64)
	Draw() error
	Resize(width, height int)
	Pause()
	Resume()
	ToForeground()
	ToBackground()
	Destroy()
}

// SceneStack is a plain stack of scenes. Only the top scene is updated and
// drawn; scenes below it are paused.
type SceneStack struct {
	scenes []Lifecycle
}

// Push pauses the current top scene and makes s the top.
func (st *SceneStack) Push(s Lifecycle) {
	if top := st.Top(); top != nil {
		top.Pause()
	}
	st.scenes = append(st.scenes, s)
	s.ToForeground()
}

// Pop destroys the top scene and resumes the one below it.
func (st *SceneStack) Pop() (Lifecycle, error) {
	n := len(st.scenes)
	if n == 0 {
		return nil, fmt.Errorf("pop scene: %w", ErrEmptyStack)
	}
	top := st.scenes[n-1]
	st.scenes[n-1] = nil
	st.scenes = st.scenes[:n-1]
	top.Destroy()

	if next := st.Top(); next != nil {
		next.Resume()
		next.ToForeground()
	}
	return top, nil
}

// Switch destroys the top scene and replaces it with s.
func (st *SceneStack) Switch(s Lifecycle) error {
	n := len(st.scenes)
	if n == 0 {
		return fmt.Errorf("switch scene: %w", ErrEmptyStack)
	}
	st.scenes[n-1].Destroy()
	st.scenes[n-1] = s
	s.ToForeground()
	return nil
}

// Top returns the top scene, or nil.
func (st *SceneStack) Top() Lifecycle {
	if len(st.scenes) == 0 {
		return nil
	}
	return st.scenes[len(st.scenes)-1]
}

// Len returns the number of scenes on the stack.
func (st *SceneStack) Len() int {
	return len(st.scenes)
}

// Clear destroys every scene, top first.
func (st *SceneStack) Clear() {
	for i := len(st.scenes) - 1; i >= 0; i-- {
		st.scenes[i].Destroy()
		st.scenes[i] = nil
	}
	st.scenes = st.scenes[:0]
}

// PreUpdate forwards to the top scene.
func (st *SceneStack) PreUpdate(dt float64) {
	if top := st.Top(); top != nil {
		top.PreUpdate(dt)
	}
}

// Update forwards to the top scene.
func (st *SceneStack) Update(dt float64) {
	if top := st.Top(); top != nil {
		top.Update(dt)
	}
}

// PostUpdate forwards to the top scene.
func (st *SceneStack) PostUpdate(dt float64) {
	if top := st.Top(); top != nil {
		top.PostUpdate(dt)
	}
}

// Draw draws the top scene.
func (st *SceneStack) Draw() error {
	top := st.Top()
	if top == nil {
		return fmt.Errorf("draw: %w", ErrEmptyStack)
	}
	return top.Draw()
}

// Resize forwards to every scene, bottom first, so paused scenes are ready
// when they resume.
func (st *SceneStack) Resize(width, height int) {
	for _, s := range st.scenes {
		s.Resize(width, height)
	}
}

// ToForeground forwards to the top scene.
func (st *SceneStack) ToForeground() {
	if top := st.Top(); top != nil {
		top.ToForeground()
	}
}

// ToBackground forwards to the top scene.
func (st *SceneStack) ToBackground() {
	if top := st.Top(); top != nil {
		top.ToBackground()
	}
}
