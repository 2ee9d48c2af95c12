package diagram

import (
	"errors"
	"slices"

	"flowedit/geometry"
)

// Common errors
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
)

// NodeByID returns the node with the given id.
func (d *Diagram) NodeByID(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EdgeByID returns a copy of the edge with the given id.
func (d *Diagram) EdgeByID(id string) (Edge, bool) {
	for _, e := range d.Edges {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return Edge{}, false
}

// ReplaceEdge replaces the edge with e.ID in place. No other edge is touched
// and the order of the collection is preserved. It reports whether the edge existed.
func (d *Diagram) ReplaceEdge(e Edge) bool {
	for i := range d.Edges {
		if d.Edges[i].ID == e.ID {
			d.Edges[i] = e.Clone()
			return true
		}
	}
	return false
}

// ReplaceNode replaces the node with n.ID in place.
func (d *Diagram) ReplaceNode(n Node) bool {
	for i := range d.Nodes {
		if d.Nodes[i].ID == n.ID {
			d.Nodes[i] = n.Clone()
			return true
		}
	}
	return false
}

// RemoveEdge deletes the edge with the given id.
func (d *Diagram) RemoveEdge(id string) error {
	for i := range d.Edges {
		if d.Edges[i].ID == id {
			d.Edges = slices.Delete(d.Edges, i, i+1)
			return nil
		}
	}
	return ErrEdgeNotFound
}

// RemoveNode deletes a node and every edge whose source or target is that node.
func (d *Diagram) RemoveNode(id string) error {
	idx := slices.IndexFunc(d.Nodes, func(n Node) bool { return n.ID == id })
	if idx < 0 {
		return ErrNodeNotFound
	}
	d.Nodes = slices.Delete(d.Nodes, idx, idx+1)

	kept := d.Edges[:0]
	for _, e := range d.Edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	d.Edges = kept
	return nil
}

// Endpoints resolves the canvas positions where e leaves its source and enters its target.
func (d *Diagram) Endpoints(e Edge) (src, tgt geometry.Point, ok bool) {
	s, ok := d.NodeByID(e.Source)
	if !ok {
		return src, tgt, false
	}
	t, ok := d.NodeByID(e.Target)
	if !ok {
		return src, tgt, false
	}
	return s.Anchor(e.SourceSide), t.Anchor(e.TargetSide), true
}
