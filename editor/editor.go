// Package editor is the diagram editing shell: it owns the node and edge
// collections, selection, tools, viewport and history, and hands edge
// interaction to the interact package.
package editor

import (
	"fmt"
	"log/slog"
	"slices"

	"flowedit/diagram"
	"flowedit/geometry"
	"flowedit/interact"
)

// SaveFunc receives the full node and edge collections on an explicit save.
type SaveFunc func(nodes []diagram.Node, edges []diagram.Edge)

// Options configures a new editor.
type Options struct {
	OnSave      SaveFunc
	Logger      *slog.Logger
	HistorySize int     // states kept for undo; 0 means 500
	Tolerance   float64 // pick radius in screen pixels; 0 uses the interact default
	ViewWidth   float64 // screen size used to centre click-to-add nodes
	ViewHeight  float64
	Bus         *interact.PointerBus
}

// Zoom limits
const (
	MinZoom = 0.25
	MaxZoom = 4.0
)

// cascadeStep offsets consecutive click-to-add nodes so they do not stack.
const cascadeStep = 24.0

// Editor holds the diagram being edited and all session state around it.
type Editor struct {
	diagram *diagram.Diagram
	nextID  int // sequence number of the next node id

	tool         Tool
	selectedNode string
	selectedEdge string
	expanded     map[string]bool

	transform    geometry.Transform
	viewW, viewH float64
	added        int // click-to-add count for cascading

	history *StructHistory
	manager *interact.Manager
	bus     *interact.PointerBus
	drag    *interact.Subscription // node move or pan in progress

	onSave SaveFunc
	log    *slog.Logger
}

// New creates an editor over the initial collections. Edges are normalised
// and the node id counter starts after the highest existing node id.
func New(nodes []diagram.Node, edges []diagram.Edge, opts Options) *Editor {
	d := &diagram.Diagram{
		Nodes: make([]diagram.Node, len(nodes)),
		Edges: diagram.NormalizeEdges(edges),
	}
	for i, n := range nodes {
		d.Nodes[i] = n.Clone()
	}

	size := opts.HistorySize
	if size <= 0 {
		size = 500
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	bus := opts.Bus
	if bus == nil {
		bus = interact.NewPointerBus()
	}

	e := &Editor{
		diagram:   d,
		nextID:    diagram.MaxNodeSequence(d.Nodes) + 1,
		tool:      ToolSelect,
		expanded:  map[string]bool{CategoryEvents: true},
		transform: geometry.Identity,
		viewW:     opts.ViewWidth,
		viewH:     opts.ViewHeight,
		history:   NewStructHistory(size),
		bus:       bus,
		onSave:    opts.OnSave,
		log:       logger,
	}
	e.manager = interact.NewManager(interact.Env{
		Store:     e,
		View:      e,
		Ends:      e,
		Bus:       bus,
		Tolerance: opts.Tolerance,
		OnCommit:  e.edgeCommitted,
		Logger:    logger,
	})
	e.history.Reset(d)

	logger.Info("editor ready", "nodes", len(d.Nodes), "edges", len(d.Edges), "next_node", e.nextID)
	return e
}

// Diagram returns the live diagram. Callers must not modify it.
func (e *Editor) Diagram() *diagram.Diagram {
	return e.diagram
}

// Manager returns the edge interaction manager.
func (e *Editor) Manager() *interact.Manager {
	return e.manager
}

// Bus returns the pointer bus that drags listen on.
func (e *Editor) Bus() *interact.PointerBus {
	return e.bus
}

// NextNodeSequence returns the sequence number the next node id will use.
func (e *Editor) NextNodeSequence() int {
	return e.nextID
}

// SetViewSize records the screen size used for click-to-add placement.
func (e *Editor) SetViewSize(w, h float64) {
	e.viewW, e.viewH = w, h
}

// Edge returns a copy of the edge with the given id.
func (e *Editor) Edge(id string) (diagram.Edge, bool) {
	return e.diagram.EdgeByID(id)
}

// ReplaceEdge swaps in e by id, keeping its selection flag in sync.
func (e *Editor) ReplaceEdge(edge diagram.Edge) bool {
	edge.Selected = edge.ID == e.selectedEdge
	return e.diagram.ReplaceEdge(edge)
}

// EdgeIDs returns edge ids in drawing order.
func (e *Editor) EdgeIDs() []string {
	ids := make([]string, len(e.diagram.Edges))
	for i, edge := range e.diagram.Edges {
		ids[i] = edge.ID
	}
	return ids
}

// Endpoints resolves an edge's attachment points in the current diagram.
func (e *Editor) Endpoints(edge diagram.Edge) (src, tgt geometry.Point, ok bool) {
	return e.diagram.Endpoints(edge)
}

func (e *Editor) edgeCommitted(edge diagram.Edge) {
	e.commit("edge changed", "edge", edge.ID)
}

// commit records the current diagram as a new undo state.
func (e *Editor) commit(msg string, args ...any) {
	e.history.Record(e.diagram)
	e.log.Debug(msg, args...)
}

func (e *Editor) newNode(t diagram.NodeType, pos geometry.Point) diagram.Node {
	n := diagram.Node{
		ID:       diagram.NodeID(e.nextID),
		Type:     t,
		Position: pos,
		Data:     diagram.NodeData{Label: DefaultLabel(t)},
	}
	n.Width, n.Height = diagram.DefaultSize(t)
	e.nextID++

	e.diagram.Nodes = append(e.diagram.Nodes, n)
	e.commit("node added", "node", n.ID, "type", t)
	return n
}

// DropNode creates a node of type t centred where it was dropped.
func (e *Editor) DropNode(t diagram.NodeType, at geometry.ScreenPoint) diagram.Node {
	c := e.transform.ToCanvas(at)
	w, h := diagram.DefaultSize(t)
	return e.newNode(t, geometry.Pt(c.X-w/2, c.Y-h/2))
}

// AddNode creates a node of type t in the middle of the view, each
// consecutive one offset a little further.
func (e *Editor) AddNode(t diagram.NodeType) diagram.Node {
	c := e.transform.ToCanvas(geometry.ScreenPoint{X: e.viewW / 2, Y: e.viewH / 2})
	w, h := diagram.DefaultSize(t)
	off := float64(e.added%10) * cascadeStep
	e.added++
	return e.newNode(t, geometry.Pt(c.X-w/2+off, c.Y-h/2+off))
}

// Connect adds an orthogonal edge between two existing nodes.
func (e *Editor) Connect(source string, sourceSide geometry.Side, target string, targetSide geometry.Side) (diagram.Edge, error) {
	for _, id := range []string{source, target} {
		if _, ok := e.diagram.NodeByID(id); !ok {
			return diagram.Edge{}, fmt.Errorf("connect %s: %w", id, diagram.ErrNodeNotFound)
		}
	}
	style := diagram.DefaultEdgeStyle
	edge := diagram.Edge{
		ID:         diagram.NewEdgeID(),
		Source:     source,
		Target:     target,
		SourceSide: sourceSide,
		TargetSide: targetSide,
		Type:       diagram.InteractiveEdgeType,
		Mode:       diagram.Orthogonal,
		Style:      &style,
	}
	e.diagram.Edges = append(e.diagram.Edges, edge)
	e.commit("edge added", "edge", edge.ID, "source", source, "target", target)
	return edge.Clone(), nil
}

// SetRoutingMode changes the routing mode of an edge.
func (e *Editor) SetRoutingMode(id string, mode diagram.RoutingMode) bool {
	edge, ok := e.diagram.EdgeByID(id)
	if !ok {
		return false
	}
	edge.Mode = diagram.ParseRoutingMode(string(mode))
	e.ReplaceEdge(edge)
	e.commit("routing mode changed", "edge", id, "mode", edge.Mode)
	return true
}

// MoveNode places a node at pos without recording history.
func (e *Editor) MoveNode(id string, pos geometry.Point) bool {
	n, ok := e.diagram.NodeByID(id)
	if !ok {
		return false
	}
	n.Position = pos
	return e.diagram.ReplaceNode(n)
}

// NodeAt returns the topmost node under a screen point.
func (e *Editor) NodeAt(at geometry.ScreenPoint) (diagram.Node, bool) {
	p := e.transform.ToCanvas(at)
	for _, n := range slices.Backward(e.diagram.Nodes) {
		if n.Contains(p) {
			return n, true
		}
	}
	return diagram.Node{}, false
}

// Save hands copies of the current collections to the save callback.
func (e *Editor) Save() {
	e.manager.Blur()
	d := e.diagram.Clone()
	e.log.Info("save", "nodes", len(d.Nodes), "edges", len(d.Edges))
	if e.onSave != nil {
		e.onSave(d.Nodes, d.Edges)
	}
}

// Undo restores the previous committed state.
func (e *Editor) Undo() bool {
	d, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(d)
	e.log.Debug("undo")
	return true
}

// Redo re-applies an undone state.
func (e *Editor) Redo() bool {
	d, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(d)
	e.log.Debug("redo")
	return true
}

func (e *Editor) restore(d *diagram.Diagram) {
	e.bus.Cancel()
	e.diagram = d
	e.manager.Prune()
	e.syncSelection()
}

// ReplaceDiagram swaps in an externally updated diagram, for example after
// the file was edited elsewhere. Edges are normalised, the node counter never
// moves backwards and edge interactions keep working by id.
func (e *Editor) ReplaceDiagram(d *diagram.Diagram) {
	nd := d.Clone()
	nd.Edges = diagram.NormalizeEdges(nd.Edges)
	e.diagram = nd
	e.nextID = max(e.nextID, diagram.MaxNodeSequence(nd.Nodes)+1)
	e.manager.Prune()
	e.syncSelection()
	e.commit("diagram replaced", "nodes", len(nd.Nodes), "edges", len(nd.Edges))
}
