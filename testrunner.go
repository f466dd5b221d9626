package aeony

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a test script.
type scriptStep struct {
	Action string `yaml:"action" json:"action"`
	Label  string `yaml:"label,omitempty" json:"label,omitempty"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`
	Frames int    `yaml:"frames,omitempty" json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps" json:"steps"`
}

// TestRunner plays a script of screenshots, window resizes, and waits across
// frames for automated visual checks. Attach it with Engine.SetTestRunner.
//
// Supported actions: "screenshot" (label), "resize" (width, height),
// "wait" (frames), and "quit".
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML or JSON test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "screenshot", "wait", "quit":
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse test script: step %d: resize %dx%d: %w",
					i, st.Width, st.Height, ErrZeroWindowSize)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches a runner. It is stepped at the start of every Update.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.runner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one action per frame.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	e.log.Debug("test step", zap.Int("step", r.cursor-1), zap.String("action", st.Action))

	switch st.Action {
	case "screenshot":
		e.Screenshot(st.Label)
	case "resize":
		e.resizeWindow(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		e.Quit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
