package interact

import (
	"log/slog"
	"slices"

	"flowedit/diagram"
	"flowedit/geometry"
	"flowedit/routing"
)

const (
	// DragThreshold is the cumulative pointer travel, in screen pixels, that
	// turns a press on the path into a new waypoint.
	DragThreshold = 5.0
	// HandleOffset is the distance of default freeform handles from their waypoint.
	HandleOffset = 30.0
	// HitTolerance is the default pick radius in screen pixels.
	HitTolerance = 8.0
)

// EdgeStore is the edge collection a controller edits. Edge returns a copy;
// ReplaceEdge swaps the stored edge with the same id and reports whether it existed.
type EdgeStore interface {
	Edge(id string) (diagram.Edge, bool)
	ReplaceEdge(e diagram.Edge) bool
	EdgeIDs() []string
}

// Viewport supplies the pan/zoom transform in effect right now.
type Viewport interface {
	Transform() geometry.Transform
}

// Endpoints resolves where an edge attaches to its nodes.
type Endpoints interface {
	Endpoints(e diagram.Edge) (src, tgt geometry.Point, ok bool)
}

// Env holds the collaborators shared by every controller of an editor.
type Env struct {
	Store     EdgeStore
	View      Viewport
	Ends      Endpoints
	Bus       *PointerBus
	Tolerance float64 // pick radius in screen pixels; 0 means HitTolerance

	// OnCommit is called once for every committed mutation with the edge as stored.
	OnCommit func(diagram.Edge)
	Logger   *slog.Logger
}

func (env *Env) tolerance() float64 {
	if env.Tolerance <= 0 {
		return HitTolerance
	}
	return env.Tolerance
}

// Controller owns the interaction state of a single edge. It keeps only the
// edge id: the edge itself is looked up in the store on every event.
type Controller struct {
	id    string
	env   *Env
	state State
	sub   *Subscription

	index  int        // waypoint being dragged
	handle HandleKind // handle being dragged
	last   geometry.ScreenPoint
	travel float64        // screen distance moved since press
	grab   geometry.Point // label anchor minus pointer at press
	dirty  bool           // the store was changed during this drag

	draft     string
	selectAll bool
}

// NewController creates a controller for the edge with the given id.
func NewController(id string, env *Env) *Controller {
	if env.Logger == nil {
		env.Logger = slog.New(slog.DiscardHandler)
	}
	if env.Bus == nil {
		env.Bus = NewPointerBus()
	}
	return &Controller{id: id, env: env, index: -1}
}

// ID returns the id of the edge this controller edits.
func (c *Controller) ID() string { return c.id }

// State returns the current interaction state.
func (c *Controller) State() State { return c.state }

// Index returns the waypoint being dragged, or -1.
func (c *Controller) Index() int { return c.index }

// Handle returns the handle being dragged in DraggingHandle.
func (c *Controller) Handle() HandleKind { return c.handle }

func (c *Controller) snapshot() (diagram.Edge, bool) {
	return c.env.Store.Edge(c.id)
}

func (c *Controller) toCanvas(s geometry.ScreenPoint) geometry.Point {
	return c.env.View.Transform().ToCanvas(s)
}

// Route returns the current path and label anchor of the edge.
func (c *Controller) Route() (routing.Result, bool) {
	e, ok := c.snapshot()
	if !ok {
		return routing.Result{}, false
	}
	src, tgt, ok := c.env.Ends.Endpoints(e)
	if !ok {
		return routing.Result{}, false
	}
	return routing.RouteEdgeAt(e, src, tgt), true
}

// HitAt tests the screen point against the edge as it is now.
func (c *Controller) HitAt(s geometry.ScreenPoint) Hit {
	e, ok := c.snapshot()
	if !ok {
		return Hit{Kind: HitNone, Index: -1}
	}
	res, ok := c.Route()
	if !ok {
		return Hit{Kind: HitNone, Index: -1}
	}
	t := c.env.View.Transform()
	return HitTest(e, res, t.ToCanvas(s), t.ScaleToCanvas(c.env.tolerance()))
}

// PointerDown starts the interaction for whatever part of the edge is under
// the pointer and reports whether the edge was hit. Only the primary button
// is handled. An open label edit is committed first, as on blur.
func (c *Controller) PointerDown(ev PointerEvent) bool {
	if ev.Button != ButtonPrimary {
		return false
	}
	if c.state == EditingLabel {
		c.CommitLabel()
	}
	if c.state != Idle {
		return false
	}

	hit := c.HitAt(ev.Screen)
	switch hit.Kind {
	case HitHandle:
		c.BeginHandleDrag(hit.Index, hit.Handle, ev)
	case HitWaypoint:
		c.BeginWaypointDrag(hit.Index, ev)
	case HitLabel:
		c.BeginLabelDrag(ev)
	case HitPath:
		c.BeginPathDrag(ev)
	default:
		return false
	}
	return true
}

// BeginPathDrag arms waypoint creation from a press on the path. Nothing is
// created until the pointer travels past DragThreshold.
func (c *Controller) BeginPathDrag(ev PointerEvent) bool {
	e, ok := c.snapshot()
	if !ok || c.state != Idle || !routing.CapabilitiesOf(e.Mode).DragCreate {
		return false
	}
	c.begin(DraggingNewWaypoint, ev)
	return true
}

// BeginWaypointDrag starts moving waypoint i.
func (c *Controller) BeginWaypointDrag(i int, ev PointerEvent) bool {
	e, ok := c.snapshot()
	if !ok || c.state != Idle || i < 0 || i >= len(e.Waypoints) {
		return false
	}
	c.begin(DraggingWaypoint, ev)
	c.index = i
	return true
}

// BeginHandleDrag starts moving one handle of waypoint i. Only modes with
// handles allow it, and the handle must exist.
func (c *Controller) BeginHandleDrag(i int, which HandleKind, ev PointerEvent) bool {
	e, ok := c.snapshot()
	if !ok || c.state != Idle || !routing.CapabilitiesOf(e.Mode).Handles {
		return false
	}
	if i < 0 || i >= len(e.Waypoints) {
		return false
	}
	w := e.Waypoints[i]
	if (which == HandleIn && w.HandleIn == nil) || (which == HandleOut && w.HandleOut == nil) {
		return false
	}
	c.begin(DraggingHandle, ev)
	c.index, c.handle = i, which
	return true
}

// BeginLabelDrag starts moving the label chip. The chip keeps its offset
// from the pointer.
func (c *Controller) BeginLabelDrag(ev PointerEvent) bool {
	e, ok := c.snapshot()
	if !ok || c.state != Idle || !e.HasLabel() {
		return false
	}
	res, ok := c.Route()
	if !ok {
		return false
	}
	c.begin(DraggingLabel, ev)
	c.grab = res.LabelAnchor.Sub(c.toCanvas(ev.Screen))
	return true
}

func (c *Controller) begin(s State, ev PointerEvent) {
	c.state = s
	c.last = ev.Screen
	c.travel = 0
	c.dirty = false
	c.index = -1
	c.sub = c.env.Bus.Subscribe(Listener{
		Move:   c.onMove,
		Up:     c.onUp,
		Cancel: c.finish,
	})
}

func (c *Controller) onMove(ev PointerEvent) {
	e, ok := c.snapshot()
	if !ok {
		c.env.Logger.Debug("edge vanished during drag", "edge", c.id, "state", c.state)
		c.end()
		return
	}
	p := c.toCanvas(ev.Screen)

	// A press and release in place leaves the edge as it was
	if c.state != DraggingNewWaypoint {
		if ev.Screen == c.last {
			return
		}
		c.last = ev.Screen
	}

	switch c.state {
	case DraggingNewWaypoint:
		c.travel += ev.Screen.Dist(c.last)
		c.last = ev.Screen
		if c.travel <= DragThreshold {
			return
		}
		idx, ok := c.insert(&e, p)
		if !ok {
			c.end()
			return
		}
		c.state, c.index = DraggingWaypoint, idx

	case DraggingWaypoint:
		if c.index >= len(e.Waypoints) {
			c.end()
			return
		}
		w := e.Waypoints[c.index]
		e.Waypoints[c.index] = w.Translate(p.Sub(w.Point))

	case DraggingHandle:
		if c.index >= len(e.Waypoints) {
			c.end()
			return
		}
		h := p
		if c.handle == HandleIn {
			e.Waypoints[c.index].HandleIn = &h
		} else {
			e.Waypoints[c.index].HandleOut = &h
		}

	case DraggingLabel:
		pos := p.Add(c.grab)
		e.LabelPosition = &pos

	default:
		return
	}

	if c.env.Store.ReplaceEdge(e) {
		c.dirty = true
	}
}

func (c *Controller) onUp(ev PointerEvent) {
	c.onMove(ev)
	c.finish()
}

// finish ends the current drag, committing it if it changed the edge.
func (c *Controller) finish() {
	if !c.state.Dragging() {
		return
	}
	dirty := c.dirty
	c.end()
	if dirty {
		if e, ok := c.snapshot(); ok {
			c.commit(e)
		}
	}
}

// end drops back to Idle and releases the pointer subscription.
func (c *Controller) end() {
	c.state = Idle
	c.index = -1
	c.sub.Close()
	c.sub = nil
	c.dirty = false
	c.travel = 0
}

func (c *Controller) commit(e diagram.Edge) {
	c.env.Logger.Debug("edge committed", "edge", e.ID, "waypoints", len(e.Waypoints), "label", e.LabelText())
	if c.env.OnCommit != nil {
		c.env.OnCommit(e)
	}
}

// insert adds a waypoint at p on the path segment nearest to it, so waypoints
// stay in path order. Modes with handles get default handles.
func (c *Controller) insert(e *diagram.Edge, p geometry.Point) (int, bool) {
	src, tgt, ok := c.env.Ends.Endpoints(*e)
	if !ok {
		return 0, false
	}
	pts := routing.Polyline(routing.InputFor(*e, src, tgt))
	idx := routing.NearestSegment(pts, p)

	w := diagram.Waypoint{Point: p}
	if routing.CapabilitiesOf(e.Mode).Handles {
		in, out := DefaultHandles(p, pts[idx], pts[idx+1])
		w.HandleIn, w.HandleOut = &in, &out
	}
	e.Waypoints = slices.Insert(e.Waypoints, idx, w)
	return idx, true
}

// DefaultHandles places handles HandleOffset either side of p along the
// dominant axis of the segment from -> to, pointing in travel direction.
func DefaultHandles(p, from, to geometry.Point) (in, out geometry.Point) {
	d := to.Sub(from)
	var dir geometry.Point
	if geometry.Abs(d.X) >= geometry.Abs(d.Y) {
		dir.X = 1
		if d.X < 0 {
			dir.X = -1
		}
	} else {
		dir.Y = 1
		if d.Y < 0 {
			dir.Y = -1
		}
	}
	off := dir.Scale(HandleOffset)
	return p.Sub(off), p.Add(off)
}

// InsertWaypoint adds a waypoint at the canvas point p. It is only available
// while idle and in modes that insert on double-click.
func (c *Controller) InsertWaypoint(p geometry.Point) bool {
	e, ok := c.snapshot()
	if !ok || c.state != Idle || !routing.CapabilitiesOf(e.Mode).DoubleClickInsert {
		return false
	}
	if _, ok := c.insert(&e, p); !ok {
		return false
	}
	if !c.env.Store.ReplaceEdge(e) {
		return false
	}
	c.commit(e)
	return true
}

// DeleteWaypoint removes waypoint i, ending any drag first. An index that no
// longer exists is ignored.
func (c *Controller) DeleteWaypoint(i int) bool {
	c.finish()
	e, ok := c.snapshot()
	if !ok || i < 0 || i >= len(e.Waypoints) {
		return false
	}
	e.Waypoints = slices.Delete(e.Waypoints, i, i+1)
	if !c.env.Store.ReplaceEdge(e) {
		return false
	}
	c.commit(e)
	return true
}

// DoubleClick handles a double-click: on a waypoint it deletes it, on the
// label it opens the label editor and on the path it inserts a waypoint.
// It reports whether the edge was hit.
func (c *Controller) DoubleClick(ev PointerEvent) bool {
	if ev.Button != ButtonPrimary {
		return false
	}
	hit := c.HitAt(ev.Screen)
	switch hit.Kind {
	case HitWaypoint:
		c.DeleteWaypoint(hit.Index)
	case HitLabel:
		c.BeginLabelEdit()
	case HitPath:
		if c.state == Idle {
			c.InsertWaypoint(c.toCanvas(ev.Screen))
		}
	case HitHandle:
		// handles ignore double-clicks
	default:
		return false
	}
	return true
}
