package world

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript reports a script without steps.
var ErrEmptyScript = errors.New("script has no steps")

// ScriptStep is one scripted action. Width and Height apply to resize steps,
// Index to option and undo steps and Label to screenshot steps.
type ScriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Index  int     `yaml:"index"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Frames int     `yaml:"frames"`
}

var scriptActions = map[string]EventType{
	"select":     EventSelect,
	"option":     EventOption,
	"undo":       EventUndo,
	"begin":      EventBeginSimulation,
	"fullscreen": EventFullscreen,
	"resize":     EventWindowed,
}

// Script replays world events across frames, one step per frame, so a
// session can be driven without input devices. Call Step once per frame
// before World.Update.
type Script struct {
	// Screenshot is called for screenshot steps; nil skips them.
	Screenshot func(label string)

	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a script. YAML and JSON are both accepted:
//
//	steps:
//	  - {action: select, x: 96, y: 224}
//	  - {action: option, index: 0}
//	  - {action: wait, frames: 60}
//	  - {action: begin}
//	  - {action: screenshot, label: night}
func LoadScript(data []byte) (*Script, error) {
	var doc struct {
		Steps []ScriptStep `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("world: parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("world: parse script: %w", ErrEmptyScript)
	}
	for i, st := range doc.Steps {
		if _, ok := scriptActions[st.Action]; !ok && st.Action != "wait" && st.Action != "screenshot" {
			return nil, fmt.Errorf("world: script step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame.
func (s *Script) Step(w *World) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if s.Screenshot != nil {
			s.Screenshot(st.Label)
		}
	default:
		w.HandleEvent(Event{
			Type:   scriptActions[st.Action],
			X:      st.X,
			Y:      st.Y,
			Width:  st.Width,
			Height: st.Height,
			Index:  st.Index,
		})
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}
