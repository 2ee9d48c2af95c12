package interact

import (
	"testing"

	"flowedit/diagram"
	"flowedit/geometry"
)

// testStore adapts a diagram to the collaborator interfaces.
type testStore struct {
	d *diagram.Diagram
}

func (s *testStore) Edge(id string) (diagram.Edge, bool) { return s.d.EdgeByID(id) }
func (s *testStore) ReplaceEdge(e diagram.Edge) bool { return s.d.ReplaceEdge(e) }

func (s *testStore) EdgeIDs() []string {
	ids := make([]string, len(s.d.Edges))
	for i, e := range s.d.Edges {
		ids[i] = e.ID
	}
	return ids
}

func (s *testStore) Endpoints(e diagram.Edge) (geometry.Point, geometry.Point, bool) {
	return s.d.Endpoints(e)
}

type testView struct {
	t geometry.Transform
}

func (v *testView) Transform() geometry.Transform { return v.t }

type fixture struct {
	store   *testStore
	view    *testView
	mgr     *Manager
	commits []diagram.Edge
}

// newFixture builds two nodes whose facing anchors are (100,80) and (300,80)
// and the given edges between them.
func newFixture(edges ...diagram.Edge) *fixture {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{
			{ID: "node_1", Type: diagram.Task, Position: geometry.Pt(0, 50), Width: 100, Height: 60},
			{ID: "node_2", Type: diagram.Task, Position: geometry.Pt(300, 50), Width: 100, Height: 60},
		},
	}
	for _, e := range edges {
		e.Source, e.Target = "node_1", "node_2"
		e.SourceSide, e.TargetSide = geometry.Right, geometry.Left
		d.Edges = append(d.Edges, e)
	}

	f := &fixture{store: &testStore{d: d}, view: &testView{t: geometry.Identity}}
	f.mgr = NewManager(Env{
		Store:    f.store,
		View:     f.view,
		Ends:     f.store,
		OnCommit: func(e diagram.Edge) { f.commits = append(f.commits, e) },
	})
	return f
}

func (f *fixture) edge(t *testing.T, id string) diagram.Edge {
	t.Helper()
	e, ok := f.store.Edge(id)
	if !ok {
		t.Fatalf("edge %s not found", id)
	}
	return e
}

func at(x, y float64) PointerEvent {
	return PointerEvent{Screen: geometry.ScreenPoint{X: x, Y: y}}
}

func ptr(x, y float64) *geometry.Point {
	p := geometry.Pt(x, y)
	return &p
}

func TestDoubleClickInsertsFreeformWaypoint(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Freeform})

	id, ok := f.mgr.DoubleClick(at(150, 80))
	if !ok || id != "e1" {
		t.Fatalf("Double-click on the path should hit e1, got %q %v", id, ok)
	}

	e := f.edge(t, "e1")
	if len(e.Waypoints) != 1 {
		t.Fatalf("Expected exactly one waypoint, got %d", len(e.Waypoints))
	}
	w := e.Waypoints[0]
	if w.Point != geometry.Pt(150, 80) {
		t.Errorf("Waypoint at %v, want (150,80)", w.Point)
	}
	if w.HandleIn == nil || *w.HandleIn != geometry.Pt(120, 80) {
		t.Errorf("HandleIn = %v, want (120,80)", w.HandleIn)
	}
	if w.HandleOut == nil || *w.HandleOut != geometry.Pt(180, 80) {
		t.Errorf("HandleOut = %v, want (180,80)", w.HandleOut)
	}
	if len(f.commits) != 1 {
		t.Errorf("Expected 1 commit, got %d", len(f.commits))
	}
}

func TestDoubleClickInsertRespectsMode(t *testing.T) {
	tests := []struct {
		mode diagram.RoutingMode
		want int
	}{
		{diagram.Freeform, 1},
		{diagram.Orthogonal, 1},
		{diagram.Straight, 0},
		{diagram.Smooth, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			f := newFixture(diagram.Edge{ID: "e1", Mode: tt.mode})
			// (150,80) lies on every mode's path between the two anchors
			f.mgr.DoubleClick(at(150, 80))

			e := f.edge(t, "e1")
			if len(e.Waypoints) != tt.want {
				t.Errorf("Expected %d waypoints, got %d", tt.want, len(e.Waypoints))
			}
			if tt.mode == diagram.Orthogonal && len(e.Waypoints) == 1 && e.Waypoints[0].HasHandles() {
				t.Error("Orthogonal waypoints should not get handles")
			}
		})
	}
}

func TestDeleteWaypoint(t *testing.T) {
	a, b, c := diagram.WP(150, 20), diagram.WP(200, 20), diagram.WP(250, 20)
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Orthogonal, Waypoints: []diagram.Waypoint{a, b, c}})
	ctrl := f.mgr.Controller("e1")

	if !ctrl.DeleteWaypoint(1) {
		t.Fatal("Deleting index 1 should succeed")
	}
	e := f.edge(t, "e1")
	if len(e.Waypoints) != 2 || e.Waypoints[0].Point != a.Point || e.Waypoints[1].Point != c.Point {
		t.Fatalf("Expected [A,C], got %v", e.Waypoints)
	}

	if ctrl.DeleteWaypoint(5) {
		t.Error("Deleting an index out of range should be a no-op")
	}
	e = f.edge(t, "e1")
	if len(e.Waypoints) != 2 || e.Waypoints[0].Point != a.Point || e.Waypoints[1].Point != c.Point {
		t.Errorf("Out of range delete changed the waypoints: %v", e.Waypoints)
	}
	if len(f.commits) != 1 {
		t.Errorf("Expected 1 commit, got %d", len(f.commits))
	}
}

func TestDoubleClickWaypointDeletes(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 20)}})

	if _, ok := f.mgr.DoubleClick(at(201, 21)); !ok {
		t.Fatal("Double-click on the waypoint should hit the edge")
	}
	if n := len(f.edge(t, "e1").Waypoints); n != 0 {
		t.Errorf("Waypoint should be deleted, %d left", n)
	}
}

func TestDragWaypointMovesHandlesRigidly(t *testing.T) {
	wp := diagram.Waypoint{Point: geometry.Pt(200, 80), HandleIn: ptr(170, 80), HandleOut: ptr(230, 80)}
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Freeform, Waypoints: []diagram.Waypoint{wp}})
	bus := f.mgr.Bus()

	if _, ok := f.mgr.PointerDown(at(200, 80)); !ok {
		t.Fatal("Press on the waypoint should hit the edge")
	}
	ctrl := f.mgr.Controller("e1")
	if ctrl.State() != DraggingWaypoint || ctrl.Index() != 0 {
		t.Fatalf("Expected DraggingWaypoint(0), got %v(%d)", ctrl.State(), ctrl.Index())
	}

	bus.Move(at(205, 90))
	bus.Up(at(210, 100))

	w := f.edge(t, "e1").Waypoints[0]
	if w.Point != geometry.Pt(210, 100) {
		t.Errorf("Waypoint at %v, want (210,100)", w.Point)
	}
	if *w.HandleIn != geometry.Pt(180, 100) || *w.HandleOut != geometry.Pt(240, 100) {
		t.Errorf("Handles should move by the same delta: in=%v out=%v", *w.HandleIn, *w.HandleOut)
	}
	if ctrl.State() != Idle {
		t.Errorf("Expected Idle after release, got %v", ctrl.State())
	}
	if bus.Active() != 0 {
		t.Errorf("Subscription leaked: %d active", bus.Active())
	}
	if len(f.commits) != 1 {
		t.Errorf("Expected 1 commit, got %d", len(f.commits))
	}
}

func TestDragHandleIsIndependent(t *testing.T) {
	wp := diagram.Waypoint{Point: geometry.Pt(200, 80), HandleIn: ptr(170, 80), HandleOut: ptr(230, 80)}
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Freeform, Waypoints: []diagram.Waypoint{wp}})
	bus := f.mgr.Bus()

	f.mgr.PointerDown(at(230, 80))
	ctrl := f.mgr.Controller("e1")
	if ctrl.State() != DraggingHandle || ctrl.Handle() != HandleOut {
		t.Fatalf("Expected DraggingHandle(out), got %v(%v)", ctrl.State(), ctrl.Handle())
	}

	bus.Move(at(240, 60))
	bus.Up(at(240, 60))

	w := f.edge(t, "e1").Waypoints[0]
	if *w.HandleOut != geometry.Pt(240, 60) {
		t.Errorf("HandleOut = %v, want (240,60)", *w.HandleOut)
	}
	if w.Point != geometry.Pt(200, 80) || *w.HandleIn != geometry.Pt(170, 80) {
		t.Errorf("Point and HandleIn must not move: %v %v", w.Point, *w.HandleIn)
	}
	if bus.Active() != 0 {
		t.Errorf("Subscription leaked: %d active", bus.Active())
	}
}

func TestHandleDragRequiresFreeform(t *testing.T) {
	wp := diagram.Waypoint{Point: geometry.Pt(200, 80), HandleOut: ptr(230, 80)}
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Smooth, Waypoints: []diagram.Waypoint{wp}})
	ctrl := f.mgr.Controller("e1")

	if ctrl.BeginHandleDrag(0, HandleOut, at(230, 80)) {
		t.Error("Smooth edges should not allow handle drags")
	}
	if f.mgr.Bus().Active() != 0 {
		t.Error("No subscription should be taken")
	}
}

func TestDragCreatesWaypointAfterThreshold(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Orthogonal})
	bus := f.mgr.Bus()
	ctrl := f.mgr.Controller("e1")

	if _, ok := f.mgr.PointerDown(at(150, 80)); !ok {
		t.Fatal("Press on the path should hit the edge")
	}
	if ctrl.State() != DraggingNewWaypoint {
		t.Fatalf("Expected DraggingNewWaypoint, got %v", ctrl.State())
	}
	if bus.Active() != 1 {
		t.Fatalf("Expected 1 subscription, got %d", bus.Active())
	}

	bus.Move(at(152, 80))
	if n := len(f.edge(t, "e1").Waypoints); n != 0 {
		t.Fatalf("No waypoint should exist below the threshold, got %d", n)
	}

	bus.Move(at(155, 84))
	e := f.edge(t, "e1")
	if len(e.Waypoints) != 1 || e.Waypoints[0].Point != geometry.Pt(155, 84) {
		t.Fatalf("Waypoint should be created at the crossing position, got %v", e.Waypoints)
	}
	if ctrl.State() != DraggingWaypoint || ctrl.Index() != 0 {
		t.Errorf("Expected DraggingWaypoint(0), got %v(%d)", ctrl.State(), ctrl.Index())
	}

	bus.Move(at(160, 120))
	bus.Up(at(160, 120))

	e = f.edge(t, "e1")
	if e.Waypoints[0].Point != geometry.Pt(160, 120) {
		t.Errorf("Waypoint at %v, want (160,120)", e.Waypoints[0].Point)
	}
	if len(f.commits) != 1 {
		t.Errorf("Expected 1 commit, got %d", len(f.commits))
	}
	if bus.Active() != 0 {
		t.Errorf("Subscription leaked: %d active", bus.Active())
	}
}

func TestDragCreateInsertsInPathOrder(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 80)}})
	bus := f.mgr.Bus()

	f.mgr.PointerDown(at(250, 80))
	bus.Move(at(250, 90))
	bus.Up(at(250, 90))

	e := f.edge(t, "e1")
	if len(e.Waypoints) != 2 {
		t.Fatalf("Expected 2 waypoints, got %v", e.Waypoints)
	}
	if e.Waypoints[0].Point != geometry.Pt(200, 80) || e.Waypoints[1].Point != geometry.Pt(250, 90) {
		t.Errorf("New waypoint should follow the existing one: %v", e.Waypoints)
	}
}

func TestClickWithoutDragChangesNothing(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Freeform})
	bus := f.mgr.Bus()

	f.mgr.PointerDown(at(150, 80))
	bus.Move(at(151, 81))
	bus.Up(at(151, 81))

	if n := len(f.edge(t, "e1").Waypoints); n != 0 {
		t.Errorf("A click should not create a waypoint, got %d", n)
	}
	if len(f.commits) != 0 {
		t.Errorf("A click should not commit, got %d commits", len(f.commits))
	}
	if bus.Active() != 0 {
		t.Errorf("Subscription leaked: %d active", bus.Active())
	}
}

func TestClickInPlaceLeavesEdgeUnchanged(t *testing.T) {
	label := "yes"
	tests := []struct {
		name  string
		edge  diagram.Edge
		press PointerEvent
		state State
	}{
		{
			name:  "label",
			edge:  diagram.Edge{ID: "e1", Mode: diagram.Straight, Label: &label},
			press: at(203, 82),
			state: DraggingLabel,
		},
		{
			name:  "waypoint",
			edge:  diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 80)}},
			press: at(205, 84),
			state: DraggingWaypoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.edge)
			bus := f.mgr.Bus()

			f.mgr.PointerDown(tt.press)
			if s := f.mgr.Controller("e1").State(); s != tt.state {
				t.Fatalf("Expected %v, got %v", tt.state, s)
			}
			bus.Up(tt.press)

			e := f.edge(t, "e1")
			if e.LabelPosition != nil {
				t.Errorf("LabelPosition should stay unset, got %v", *e.LabelPosition)
			}
			if len(e.Waypoints) > 0 && e.Waypoints[0].Point != geometry.Pt(200, 80) {
				t.Errorf("Waypoint moved to %v", e.Waypoints[0].Point)
			}
			if len(f.commits) != 0 {
				t.Errorf("A click in place should not commit, got %d commits", len(f.commits))
			}
			if bus.Active() != 0 {
				t.Errorf("Subscription leaked: %d active", bus.Active())
			}
		})
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Freeform})

	ev := at(150, 80)
	ev.Button = ButtonSecondary
	if _, ok := f.mgr.PointerDown(ev); ok {
		t.Error("Secondary button should not start anything")
	}
	if f.mgr.Bus().Active() != 0 {
		t.Error("No subscription should be taken")
	}
}

func TestZoomChangeMidDrag(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 20)}})
	bus := f.mgr.Bus()

	f.mgr.PointerDown(at(200, 20))
	f.view.t = geometry.Transform{PanX: 10, PanY: 0, Zoom: 2}
	bus.Move(at(410, 200))

	if w := f.edge(t, "e1").Waypoints[0]; w.Point != geometry.Pt(200, 100) {
		t.Errorf("Move should use the transform at move time: %v, want (200,100)", w.Point)
	}
	bus.Up(at(410, 200))
}

func TestDragReadsFreshSnapshot(t *testing.T) {
	f := newFixture(
		diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 20)}},
		diagram.Edge{ID: "e2", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 200)}},
	)
	bus := f.mgr.Bus()

	if id, _ := f.mgr.PointerDown(at(200, 20)); id != "e1" {
		t.Fatalf("Expected e1 to take the press, got %q", id)
	}

	// External updates while e1 is being dragged
	e1 := f.edge(t, "e1")
	e1.SetLabel("yes")
	f.store.ReplaceEdge(e1)
	e2 := f.edge(t, "e2")
	e2.Waypoints[0] = diagram.WP(220, 220)
	f.store.ReplaceEdge(e2)

	bus.Move(at(180, 40))
	bus.Up(at(180, 40))

	e1 = f.edge(t, "e1")
	if e1.LabelText() != "yes" {
		t.Errorf("External label change was overwritten: %q", e1.LabelText())
	}
	if e1.Waypoints[0].Point != geometry.Pt(180, 40) {
		t.Errorf("e1 waypoint at %v, want (180,40)", e1.Waypoints[0].Point)
	}
	if e2 = f.edge(t, "e2"); e2.Waypoints[0].Point != geometry.Pt(220, 220) {
		t.Errorf("e2 should be untouched by e1's drag: %v", e2.Waypoints[0].Point)
	}
}

func TestTwoEdgesDragIndependently(t *testing.T) {
	f := newFixture(
		diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 20)}},
		diagram.Edge{ID: "e2", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 200)}},
	)
	bus := f.mgr.Bus()
	c1, c2 := f.mgr.Controller("e1"), f.mgr.Controller("e2")

	c1.BeginWaypointDrag(0, at(200, 20))
	c2.BeginWaypointDrag(0, at(200, 200))
	if bus.Active() != 2 {
		t.Fatalf("Expected 2 subscriptions, got %d", bus.Active())
	}

	bus.Move(at(250, 100))
	bus.Up(at(250, 100))

	for _, id := range []string{"e1", "e2"} {
		e := f.edge(t, id)
		if len(e.Waypoints) != 1 || e.Waypoints[0].Point != geometry.Pt(250, 100) {
			t.Errorf("%s waypoints = %v", id, e.Waypoints)
		}
	}
	if len(f.commits) != 2 {
		t.Errorf("Expected one commit per edge, got %d", len(f.commits))
	}
	if bus.Active() != 0 {
		t.Errorf("Subscriptions leaked: %d active", bus.Active())
	}
	if c1.State() != Idle || c2.State() != Idle {
		t.Error("Both controllers should be idle")
	}
}

func TestEdgeRemovedMidDrag(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 20)}})
	bus := f.mgr.Bus()

	f.mgr.PointerDown(at(200, 20))
	if err := f.store.d.RemoveEdge("e1"); err != nil {
		t.Fatal(err)
	}
	bus.Move(at(220, 40))

	if bus.Active() != 0 {
		t.Errorf("Drag on a removed edge should release its subscription, %d active", bus.Active())
	}
	if f.mgr.Controller("e1").State() != Idle {
		t.Error("Controller should be idle")
	}
	if len(f.commits) != 0 {
		t.Errorf("Nothing should be committed, got %d", len(f.commits))
	}
}

func TestCancelEndsDragAtLastPosition(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 20)}})
	bus := f.mgr.Bus()

	f.mgr.PointerDown(at(200, 20))
	bus.Move(at(230, 30))
	bus.Cancel()

	if w := f.edge(t, "e1").Waypoints[0]; w.Point != geometry.Pt(230, 30) {
		t.Errorf("Waypoint at %v, want (230,30)", w.Point)
	}
	if len(f.commits) != 1 {
		t.Errorf("Expected 1 commit, got %d", len(f.commits))
	}
	if bus.Active() != 0 {
		t.Errorf("Subscription leaked: %d active", bus.Active())
	}
}

func TestPruneReleasesDrags(t *testing.T) {
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Waypoints: []diagram.Waypoint{diagram.WP(200, 20)}})
	bus := f.mgr.Bus()

	f.mgr.PointerDown(at(200, 20))
	f.store.d.Edges = nil
	f.mgr.Prune()

	if bus.Active() != 0 {
		t.Errorf("Prune should release subscriptions, %d active", bus.Active())
	}
	if f.mgr.Dragging() {
		t.Error("Nothing should be dragging after prune")
	}
}

func TestLabelDrag(t *testing.T) {
	label := "yes"
	f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Label: &label})
	bus := f.mgr.Bus()

	// Straight edge without waypoints anchors its label at (200,80)
	f.mgr.PointerDown(at(205, 82))
	if s := f.mgr.Controller("e1").State(); s != DraggingLabel {
		t.Fatalf("Expected DraggingLabel, got %v", s)
	}
	bus.Move(at(215, 52))
	bus.Up(at(215, 52))

	e := f.edge(t, "e1")
	if e.LabelPosition == nil || *e.LabelPosition != geometry.Pt(210, 50) {
		t.Errorf("LabelPosition = %v, want (210,50)", e.LabelPosition)
	}
}

func TestLabelEditing(t *testing.T) {
	t.Run("enter commits", func(t *testing.T) {
		label := "yes"
		f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Label: &label})

		f.mgr.DoubleClick(at(200, 80))
		ctrl := f.mgr.Controller("e1")
		if ctrl.State() != EditingLabel {
			t.Fatalf("Expected EditingLabel, got %v", ctrl.State())
		}
		if draft, all := ctrl.Draft(); draft != "yes" || !all {
			t.Errorf("Draft = %q (selected %v), want \"yes\" selected", draft, all)
		}

		ctrl.TypeRune('n')
		ctrl.TypeRune('o')
		ctrl.CommitLabel()

		if got := f.edge(t, "e1").LabelText(); got != "no" {
			t.Errorf("Label = %q, want \"no\"", got)
		}
		if ctrl.State() != Idle {
			t.Errorf("Expected Idle, got %v", ctrl.State())
		}
	})

	t.Run("empty label", func(t *testing.T) {
		label := "yes"
		f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Label: &label})
		ctrl := f.mgr.Controller("e1")

		ctrl.BeginLabelEdit()
		ctrl.DeleteBackward()
		ctrl.CommitLabel()

		e := f.edge(t, "e1")
		if e.Label == nil || *e.Label != "" {
			t.Fatalf("Label should be stored as the empty string, got %v", e.Label)
		}
		if e.HasLabel() {
			t.Error("Empty label should render as no label")
		}
	})

	t.Run("escape restores", func(t *testing.T) {
		label := "yes"
		f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Label: &label})
		ctrl := f.mgr.Controller("e1")

		ctrl.BeginLabelEdit()
		ctrl.TypeRune('x')
		ctrl.CancelLabel()

		if got := f.edge(t, "e1").LabelText(); got != "yes" {
			t.Errorf("Label = %q, want \"yes\"", got)
		}
		if len(f.commits) != 0 {
			t.Errorf("Escape should not commit, got %d commits", len(f.commits))
		}
	})

	t.Run("blur commits", func(t *testing.T) {
		f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight})
		ctrl := f.mgr.Controller("e1")

		ctrl.BeginLabelEdit()
		ctrl.TypeRune('o')
		ctrl.TypeRune('k')
		// Pressing anywhere else blurs the field
		f.mgr.PointerDown(at(1000, 1000))

		if got := f.edge(t, "e1").LabelText(); got != "ok" {
			t.Errorf("Label = %q, want \"ok\"", got)
		}
		if f.mgr.Editing() != nil {
			t.Error("No editor should be open after blur")
		}
	})

	t.Run("backspace", func(t *testing.T) {
		label := "abc"
		f := newFixture(diagram.Edge{ID: "e1", Mode: diagram.Straight, Label: &label})
		ctrl := f.mgr.Controller("e1")

		ctrl.BeginLabelEdit()
		ctrl.TypeRune('x')
		ctrl.TypeRune('é')
		ctrl.DeleteBackward()
		if draft, _ := ctrl.Draft(); draft != "x" {
			t.Errorf("Draft = %q, want \"x\"", draft)
		}
	})
}

func TestHitTestPriority(t *testing.T) {
	label := "go"
	e := diagram.Edge{
		ID:   "e1",
		Mode: diagram.Freeform,
		Waypoints: []diagram.Waypoint{
			{Point: geometry.Pt(200, 80), HandleIn: ptr(194, 80), HandleOut: ptr(206, 80)},
		},
		Label:         &label,
		LabelPosition: ptr(300, 300),
	}
	f := newFixture(e)
	ctrl := f.mgr.Controller("e1")
	res, ok := ctrl.Route()
	if !ok {
		t.Fatal("Edge should route")
	}

	tests := []struct {
		name string
		p    geometry.Point
		want HitKind
	}{
		{"handle beats waypoint", geometry.Pt(204, 80), HitHandle},
		{"waypoint", geometry.Pt(200, 87), HitWaypoint},
		{"label", geometry.Pt(305, 302), HitLabel},
		{"path", geometry.Pt(120, 80), HitPath},
		{"nothing", geometry.Pt(120, 200), HitNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(f.edge(t, "e1"), res, tt.p, 8); got.Kind != tt.want {
				t.Errorf("HitTest(%v) = %v, want %v", tt.p, got.Kind, tt.want)
			}
		})
	}
}

func TestDefaultHandles(t *testing.T) {
	tests := []struct {
		name      string
		from, to  geometry.Point
		wantIn    geometry.Point
		wantOut   geometry.Point
	}{
		{"left to right", geometry.Pt(0, 0), geometry.Pt(100, 10), geometry.Pt(20, 50), geometry.Pt(80, 50)},
		{"right to left", geometry.Pt(100, 0), geometry.Pt(0, 10), geometry.Pt(80, 50), geometry.Pt(20, 50)},
		{"downward", geometry.Pt(0, 0), geometry.Pt(10, 100), geometry.Pt(50, 20), geometry.Pt(50, 80)},
		{"degenerate", geometry.Pt(5, 5), geometry.Pt(5, 5), geometry.Pt(20, 50), geometry.Pt(80, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := DefaultHandles(geometry.Pt(50, 50), tt.from, tt.to)
			if in != tt.wantIn || out != tt.wantOut {
				t.Errorf("DefaultHandles = %v %v, want %v %v", in, out, tt.wantIn, tt.wantOut)
			}
		})
	}
}
