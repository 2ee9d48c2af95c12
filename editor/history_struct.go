package editor

import (
	"flowedit/diagram"
)

// StructHistory keeps committed diagram states as deep copies for undo/redo.
type StructHistory struct {
	states  []*diagram.Diagram
	current int // index of the state the editor shows
	max     int // oldest states are dropped beyond this
}

// NewStructHistory creates a history holding at most max states.
func NewStructHistory(max int) *StructHistory {
	if max <= 0 {
		max = 50
	}
	return &StructHistory{
		states:  make([]*diagram.Diagram, 0, max),
		current: -1,
		max:     max,
	}
}

// Record stores a copy of d as the newest state, discarding anything that
// was undone.
func (sh *StructHistory) Record(d *diagram.Diagram) {
	if sh.current < len(sh.states)-1 {
		sh.states = sh.states[:sh.current+1]
	}
	sh.states = append(sh.states, d.Clone())

	if len(sh.states) > sh.max {
		sh.states = sh.states[1:]
	} else {
		sh.current++
	}
}

// CanUndo returns true if we can undo
func (sh *StructHistory) CanUndo() bool {
	return sh.current > 0
}

// CanRedo returns true if we can redo
func (sh *StructHistory) CanRedo() bool {
	return sh.current < len(sh.states)-1
}

// Undo steps back one state and returns a copy of it.
func (sh *StructHistory) Undo() (*diagram.Diagram, bool) {
	if !sh.CanUndo() {
		return nil, false
	}
	sh.current--
	return sh.states[sh.current].Clone(), true
}

// Redo steps forward one state and returns a copy of it.
func (sh *StructHistory) Redo() (*diagram.Diagram, bool) {
	if !sh.CanRedo() {
		return nil, false
	}
	sh.current++
	return sh.states[sh.current].Clone(), true
}

// Reset clears the history and records d as the only state.
func (sh *StructHistory) Reset(d *diagram.Diagram) {
	sh.states = sh.states[:0]
	sh.current = -1
	sh.Record(d)
}

// Stats returns current position and total states
func (sh *StructHistory) Stats() (current, total int) {
	return sh.current + 1, len(sh.states)
}
