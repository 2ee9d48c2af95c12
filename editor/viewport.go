package editor

import (
	"flowedit/geometry"
	"flowedit/interact"
)

const (
	panStep  = 40.0 // screen pixels per arrow key
	zoomStep = 1.25
)

// Transform returns the current viewport transform.
func (e *Editor) Transform() geometry.Transform {
	return e.transform
}

// SetTransform replaces the viewport transform, clamping the zoom.
func (e *Editor) SetTransform(t geometry.Transform) {
	if t.Zoom <= 0 {
		t.Zoom = 1
	}
	t.Zoom = geometry.Clamp(t.Zoom, MinZoom, MaxZoom)
	e.transform = t
}

// ResetView returns to no pan and unit zoom.
func (e *Editor) ResetView() {
	e.transform = geometry.Identity
}

// Pan moves the view by a screen-space offset.
func (e *Editor) Pan(dx, dy float64) {
	e.transform.PanX += dx
	e.transform.PanY += dy
}

// ZoomAt scales the view by factor, keeping the canvas point under at fixed.
func (e *Editor) ZoomAt(factor float64, at geometry.ScreenPoint) {
	c := e.transform.ToCanvas(at)
	z := geometry.Clamp(e.transform.Zoom*factor, MinZoom, MaxZoom)
	e.transform = geometry.Transform{
		PanX: at.X - c.X*z,
		PanY: at.Y - c.Y*z,
		Zoom: z,
	}
}

func (e *Editor) viewCentre() geometry.ScreenPoint {
	return geometry.ScreenPoint{X: e.viewW / 2, Y: e.viewH / 2}
}

// PointerDown routes a press: edges first, then nodes, then empty canvas.
// With the pan tool any primary press drags the view.
func (e *Editor) PointerDown(ev interact.PointerEvent) {
	if ev.Button != interact.ButtonPrimary {
		return
	}
	e.endDrag()

	if e.tool == ToolPan {
		e.manager.Blur()
		e.beginPan(ev)
		return
	}

	if id, ok := e.manager.PointerDown(ev); ok {
		e.SelectEdge(id)
		return
	}
	if n, ok := e.NodeAt(ev.Screen); ok {
		e.SelectNode(n.ID)
		e.beginNodeMove(n.ID, ev)
		return
	}
	e.ClearSelection()
}

// DoubleClick routes a double-click to the edges.
func (e *Editor) DoubleClick(ev interact.PointerEvent) {
	if e.tool != ToolSelect {
		return
	}
	if id, ok := e.manager.DoubleClick(ev); ok {
		e.SelectEdge(id)
	}
}

func (e *Editor) beginPan(ev interact.PointerEvent) {
	last := ev.Screen
	e.drag = e.bus.Subscribe(interact.Listener{
		Move: func(ev interact.PointerEvent) {
			e.Pan(ev.Screen.X-last.X, ev.Screen.Y-last.Y)
			last = ev.Screen
		},
		Up: func(ev interact.PointerEvent) {
			e.Pan(ev.Screen.X-last.X, ev.Screen.Y-last.Y)
			e.endDrag()
		},
		Cancel: e.endDrag,
	})
}

// beginNodeMove drags a node, keeping the grab offset. One history state is
// recorded on release if the node moved.
func (e *Editor) beginNodeMove(id string, ev interact.PointerEvent) {
	n, _ := e.diagram.NodeByID(id)
	grab := n.Position.Sub(e.transform.ToCanvas(ev.Screen))
	moved := false

	move := func(ev interact.PointerEvent) {
		pos := e.transform.ToCanvas(ev.Screen).Add(grab)
		if cur, ok := e.diagram.NodeByID(id); ok && cur.Position != pos {
			moved = e.MoveNode(id, pos) || moved
		}
	}
	done := func() {
		e.endDrag()
		if moved {
			e.commit("node moved", "node", id)
		}
	}
	e.drag = e.bus.Subscribe(interact.Listener{
		Move: move,
		Up: func(ev interact.PointerEvent) {
			move(ev)
			done()
		},
		Cancel: done,
	})
}

func (e *Editor) endDrag() {
	e.drag.Close()
	e.drag = nil
}
