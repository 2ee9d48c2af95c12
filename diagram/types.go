// Package diagram contains the node/edge data model shared by the routing,
// interaction and editor layers.
package diagram

import "flowedit/geometry"

// RoutingMode selects the algorithm that turns endpoints and waypoints into a path.
type RoutingMode string

// Routing modes
const (
	Straight   RoutingMode = "straight"
	Orthogonal RoutingMode = "orthogonal"
	Smooth     RoutingMode = "smooth"
	Freeform   RoutingMode = "freeform"
)

// DefaultRoutingMode is used for any unrecognised mode.
const DefaultRoutingMode = Orthogonal

// ParseRoutingMode converts a mode name. Anything unrecognised, including the
// empty string, falls back to DefaultRoutingMode.
func ParseRoutingMode(s string) RoutingMode {
	switch RoutingMode(s) {
	case Straight, Orthogonal, Smooth, Freeform:
		return RoutingMode(s)
	case "bezier":
		return Freeform
	default:
		return DefaultRoutingMode
	}
}

// RoutingModes returns all modes in cycling order.
func RoutingModes() []RoutingMode {
	return []RoutingMode{Straight, Orthogonal, Smooth, Freeform}
}

// Next returns the mode after m in cycling order.
func (m RoutingMode) Next() RoutingMode {
	modes := RoutingModes()
	for i, mode := range modes {
		if mode == ParseRoutingMode(string(m)) {
			return modes[(i+1)%len(modes)]
		}
	}
	return DefaultRoutingMode
}

// Waypoint is a user-placed point the edge passes through. HandleIn and
// HandleOut are freeform control handles in the same space as the point.
type Waypoint struct {
	geometry.Point
	HandleIn  *geometry.Point `json:"handleIn,omitempty"`
	HandleOut *geometry.Point `json:"handleOut,omitempty"`
}

// WP creates a waypoint without handles.
func WP(x, y float64) Waypoint {
	return Waypoint{Point: geometry.Pt(x, y)}
}

// HasHandles reports whether either handle is set.
func (w Waypoint) HasHandles() bool {
	return w.HandleIn != nil || w.HandleOut != nil
}

// Translate moves the waypoint and both of its handles by d.
func (w Waypoint) Translate(d geometry.Point) Waypoint {
	out := Waypoint{Point: w.Point.Add(d)}
	if w.HandleIn != nil {
		h := w.HandleIn.Add(d)
		out.HandleIn = &h
	}
	if w.HandleOut != nil {
		h := w.HandleOut.Add(d)
		out.HandleOut = &h
	}
	return out
}

// Clone returns a copy that shares no handle pointers with w.
func (w Waypoint) Clone() Waypoint {
	return w.Translate(geometry.Point{})
}

// EdgeStyle is the stroke used to draw an edge.
type EdgeStyle struct {
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dashed      bool    `json:"dashed,omitempty"`
}

// DefaultEdgeStyle is applied to edges normalised onto the interactive renderer.
var DefaultEdgeStyle = EdgeStyle{Stroke: "#64748b", StrokeWidth: 2}

// InteractiveEdgeType is the renderer type every editable edge is drawn with.
const InteractiveEdgeType = "interactive"

// Edge is a directed connection between two nodes.
type Edge struct {
	ID            string          `json:"id"`
	Source        string          `json:"source"`
	Target        string          `json:"target"`
	SourceSide    geometry.Side   `json:"sourceHandle"`
	TargetSide    geometry.Side   `json:"targetHandle"`
	Type          string          `json:"type,omitempty"`
	Mode          RoutingMode     `json:"routingMode,omitempty"`
	Style         *EdgeStyle      `json:"style,omitempty"`
	Waypoints     []Waypoint      `json:"waypoints,omitempty"`
	Label         *string         `json:"label,omitempty"`
	LabelPosition *geometry.Point `json:"labelPosition,omitempty"`
	Selected      bool            `json:"-"`
}

// LabelText returns the label, or "" when absent.
func (e Edge) LabelText() string {
	if e.Label == nil {
		return ""
	}
	return *e.Label
}

// HasLabel reports whether a label chip should be shown. Both an absent label
// and a committed empty label mean "no label".
func (e Edge) HasLabel() bool {
	return e.Label != nil && *e.Label != ""
}

// SetLabel stores text as the committed label, including the empty string.
func (e *Edge) SetLabel(text string) {
	e.Label = &text
}

// Clone creates a deep copy of the edge.
func (e Edge) Clone() Edge {
	clone := e
	if e.Style != nil {
		s := *e.Style
		clone.Style = &s
	}
	if e.Label != nil {
		l := *e.Label
		clone.Label = &l
	}
	if e.LabelPosition != nil {
		p := *e.LabelPosition
		clone.LabelPosition = &p
	}
	if e.Waypoints != nil {
		clone.Waypoints = make([]Waypoint, len(e.Waypoints))
		for i, w := range e.Waypoints {
			clone.Waypoints[i] = w.Clone()
		}
	}
	return clone
}

// NodeType discriminates the visual kind of a node.
type NodeType string

// Node types
const (
	StartEvent        NodeType = "startEvent"
	EndEvent          NodeType = "endEvent"
	IntermediateEvent NodeType = "intermediateEvent"
	Task              NodeType = "task"
	UserTask          NodeType = "userTask"
	ServiceTask       NodeType = "serviceTask"
	Gateway           NodeType = "gateway"
	DataStore         NodeType = "dataStore"
	Subprocess        NodeType = "subprocess"
	Annotation        NodeType = "annotation"
	Frame             NodeType = "frame"
	Swimlane          NodeType = "swimlane"
	Document          NodeType = "document"
)

// NodeData holds the attributes shown and edited on a node.
type NodeData struct {
	Label       string         `json:"label"`
	Color       string         `json:"color,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Node represents a shape on the canvas.
type Node struct {
	ID       string         `json:"id"`
	Type     NodeType       `json:"type"`
	Position geometry.Point `json:"position"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Data     NodeData       `json:"data"`
	Selected bool           `json:"-"`
}

// DefaultSize returns the size a node of the given type is drawn with when none is set.
func DefaultSize(t NodeType) (w, h float64) {
	switch t {
	case StartEvent, EndEvent, IntermediateEvent:
		return 48, 48
	case Gateway:
		return 64, 64
	case DataStore, Document:
		return 80, 64
	case Annotation:
		return 140, 48
	case Frame:
		return 320, 200
	case Swimlane:
		return 480, 160
	case Subprocess:
		return 200, 120
	default:
		return 160, 64
	}
}

// Size returns the node's width and height, falling back to the type default.
func (n Node) Size() (w, h float64) {
	w, h = DefaultSize(n.Type)
	if n.Width > 0 {
		w = n.Width
	}
	if n.Height > 0 {
		h = n.Height
	}
	return w, h
}

// Center returns the center point of the node.
func (n Node) Center() geometry.Point {
	w, h := n.Size()
	return geometry.Pt(n.Position.X+w/2, n.Position.Y+h/2)
}

// Contains checks if a point is inside the node.
func (n Node) Contains(p geometry.Point) bool {
	w, h := n.Size()
	return p.X >= n.Position.X && p.X < n.Position.X+w &&
		p.Y >= n.Position.Y && p.Y < n.Position.Y+h
}

// Anchor returns the connection point in the middle of the given face.
func (n Node) Anchor(side geometry.Side) geometry.Point {
	w, h := n.Size()
	c := n.Center()
	d := side.Direction()
	return geometry.Pt(c.X+d.X*w/2, c.Y+d.Y*h/2)
}

// Clone creates a deep copy of the node.
func (n Node) Clone() Node {
	clone := n
	if n.Data.Config != nil {
		clone.Data.Config = make(map[string]any, len(n.Data.Config))
		for k, v := range n.Data.Config {
			clone.Data.Config[k] = v
		}
	}
	return clone
}

// Metadata contains optional diagram metadata.
type Metadata struct {
	Name    string `json:"name,omitempty"`
	Created string `json:"created,omitempty"`
	Version string `json:"version,omitempty"`
}

// Diagram represents a complete diagram with nodes and edges.
type Diagram struct {
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Clone creates a deep copy of the diagram
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}

	clone := &Diagram{
		Nodes:    make([]Node, len(d.Nodes)),
		Edges:    make([]Edge, len(d.Edges)),
		Metadata: d.Metadata,
	}
	for i, node := range d.Nodes {
		clone.Nodes[i] = node.Clone()
	}
	for i, edge := range d.Edges {
		clone.Edges[i] = edge.Clone()
	}
	return clone
}
