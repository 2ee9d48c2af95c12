package canvas

import (
	"math"

	"flowedit/diagram"
	"flowedit/geometry"
	"flowedit/routing"
)

// Default cell size in canvas pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Options controls how a diagram is mapped onto the grid.
type Options struct {
	Width, Height int // grid size in cells
	CellWidth     float64
	CellHeight    float64
	Transform     geometry.Transform
	ShowWaypoints bool // draw waypoints and handles on every edge, not only selected ones
}

func (o Options) cellSize() (float64, float64) {
	w, h := o.CellWidth, o.CellHeight
	if w <= 0 {
		w = DefaultCellWidth
	}
	if h <= 0 {
		h = DefaultCellHeight
	}
	return w, h
}

// CellAt maps a canvas point to the grid cell under it.
func (o Options) CellAt(p geometry.Point) Cell {
	cw, ch := o.cellSize()
	s := o.Transform.ToScreen(p)
	return Cell{int(math.Floor(s.X / cw)), int(math.Floor(s.Y / ch))}
}

// ScreenOf returns the screen point at the centre of a cell.
func (o Options) ScreenOf(c Cell) geometry.ScreenPoint {
	cw, ch := o.cellSize()
	return geometry.ScreenPoint{X: (float64(c.X) + 0.5) * cw, Y: (float64(c.Y) + 0.5) * ch}
}

// box is a node's footprint in cells, inclusive.
type box struct {
	x0, y0, x1, y1 int
}

func (b box) contains(c Cell) bool {
	return c.X >= b.x0 && c.X <= b.x1 && c.Y >= b.y0 && c.Y <= b.y1
}

func (o Options) nodeBox(n diagram.Node) box {
	w, h := n.Size()
	lo := o.CellAt(n.Position)
	hi := o.CellAt(n.Position.Add(geometry.Pt(w, h)))
	return box{lo.X, lo.Y, max(hi.X-1, lo.X+1), max(hi.Y-1, lo.Y+1)}
}

// NodeStyle returns the box style a node type is drawn with.
func NodeStyle(t diagram.NodeType) BoxStyle {
	switch t {
	case diagram.StartEvent, diagram.IntermediateEvent:
		return RoundedBox
	case diagram.EndEvent:
		return HeavyBox
	case diagram.Gateway:
		return DoubleBox
	case diagram.Annotation, diagram.Frame, diagram.Swimlane:
		return DashedBox
	default:
		return SquareBox
	}
}

// Rasterize draws the diagram with the given routes. Edges go down first so
// node boxes cover the path ends, then arrowheads, edge labels and, for
// selected edges, waypoints (●) and handles (○).
func Rasterize(d *diagram.Diagram, routes map[string]routing.Result, opts Options) (*MatrixCanvas, error) {
	c, err := NewMatrixCanvas(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	cw, _ := opts.cellSize()
	tolerance := opts.Transform.ScaleToCanvas(cw / 2)

	traces := make(map[string][]Cell, len(d.Edges))
	for _, e := range d.Edges {
		r, ok := routes[e.ID]
		if !ok {
			continue
		}
		pts := r.Path.Flatten(tolerance)
		vertices := make([]Cell, len(pts))
		for i, p := range pts {
			vertices[i] = opts.CellAt(p)
		}
		if len(vertices) == 0 {
			continue
		}
		c.DrawPolyline(vertices, edgeRole(e))
		traces[e.ID] = Trace(vertices)
	}

	boxes := make(map[string]box, len(d.Nodes))
	for _, n := range d.Nodes {
		b := opts.nodeBox(n)
		boxes[n.ID] = b
		drawNode(c, n, b)
	}

	for _, e := range d.Edges {
		path := traces[e.ID]
		b, ok := boxes[e.Target]
		if !ok {
			continue
		}
		for i := len(path) - 1; i > 0; i-- {
			if !b.contains(path[i]) {
				c.Put(path[i].X, path[i].Y, arrowRune(path[i-1], path[i]), edgeRole(e))
				break
			}
		}
	}

	for _, e := range d.Edges {
		r, ok := routes[e.ID]
		if !ok {
			continue
		}
		if e.HasLabel() {
			at := opts.CellAt(r.LabelAnchor)
			c.DrawTextCentered(at.X, at.Y, " "+e.LabelText()+" ", RoleLabel)
		}
		if e.Selected || opts.ShowWaypoints {
			drawWaypoints(c, e, opts)
		}
	}
	return c, nil
}

func edgeRole(e diagram.Edge) Role {
	if e.Selected {
		return RoleEdgeSelected
	}
	return RoleEdge
}

func drawNode(c *MatrixCanvas, n diagram.Node, b box) {
	role := RoleNode
	if n.Selected {
		role = RoleNodeSelected
	}
	w, h := b.x1-b.x0+1, b.y1-b.y0+1
	if err := c.DrawBox(b.x0, b.y0, w, h, NodeStyle(n.Type), role); err != nil {
		return
	}
	if h < 3 || w < 3 {
		return
	}

	lines := WrapText(n.Data.Label, w-2)
	if len(lines) > h-2 {
		lines = lines[:h-2]
	}
	top := b.y0 + 1 + (h-2-len(lines))/2
	cx := b.x0 + w/2
	for i, line := range lines {
		line = FitText(line, w-2, "…")
		c.DrawTextCentered(cx, top+i, line, role)
	}
}

func drawWaypoints(c *MatrixCanvas, e diagram.Edge, opts Options) {
	for _, w := range e.Waypoints {
		for _, h := range []*geometry.Point{w.HandleIn, w.HandleOut} {
			if h != nil {
				at := opts.CellAt(*h)
				c.Put(at.X, at.Y, '○', RoleHandle)
			}
		}
		at := opts.CellAt(w.Point)
		c.Put(at.X, at.Y, '●', RoleWaypoint)
	}
}
