package interact

import (
	"log/slog"
	"slices"
)

// Manager keeps one controller per edge id. Controllers share only the
// collaborators in Env, never drag state.
type Manager struct {
	env         *Env
	controllers map[string]*Controller
}

// NewManager creates a manager over env.
func NewManager(env Env) *Manager {
	if env.Logger == nil {
		env.Logger = slog.New(slog.DiscardHandler)
	}
	if env.Bus == nil {
		env.Bus = NewPointerBus()
	}
	return &Manager{env: &env, controllers: make(map[string]*Controller)}
}

// Bus returns the pointer bus drags subscribe to.
func (m *Manager) Bus() *PointerBus {
	return m.env.Bus
}

// Controller returns the controller for edge id, creating it on first use.
func (m *Manager) Controller(id string) *Controller {
	c, ok := m.controllers[id]
	if !ok {
		c = NewController(id, m.env)
		m.controllers[id] = c
	}
	return c
}

// PointerDown offers a press to every edge, topmost (last drawn) first, and
// returns the id of the edge that took it. Any open label edit is committed first.
func (m *Manager) PointerDown(ev PointerEvent) (string, bool) {
	m.Blur()
	ids := m.env.Store.EdgeIDs()
	for _, id := range slices.Backward(ids) {
		if m.Controller(id).PointerDown(ev) {
			return id, true
		}
	}
	return "", false
}

// DoubleClick offers a double-click to every edge, topmost first.
func (m *Manager) DoubleClick(ev PointerEvent) (string, bool) {
	ids := m.env.Store.EdgeIDs()
	for _, id := range slices.Backward(ids) {
		if m.Controller(id).DoubleClick(ev) {
			return id, true
		}
	}
	return "", false
}

// Editing returns the controller whose label editor is open, if any.
func (m *Manager) Editing() *Controller {
	for _, c := range m.controllers {
		if c.State() == EditingLabel {
			return c
		}
	}
	return nil
}

// Dragging reports whether any edge is being dragged.
func (m *Manager) Dragging() bool {
	for _, c := range m.controllers {
		if c.State().Dragging() {
			return true
		}
	}
	return false
}

// Blur commits any open label edit.
func (m *Manager) Blur() {
	if c := m.Editing(); c != nil {
		c.Blur()
	}
}

// Prune drops controllers whose edge no longer exists, releasing their drags.
func (m *Manager) Prune() {
	live := make(map[string]bool)
	for _, id := range m.env.Store.EdgeIDs() {
		live[id] = true
	}
	for id, c := range m.controllers {
		if live[id] {
			continue
		}
		if c.State().Dragging() {
			c.end()
		}
		delete(m.controllers, id)
	}
}
