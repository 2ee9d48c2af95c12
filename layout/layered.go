package layout

import (
	"fmt"
	"sort"

	"flowedit/diagram"
	"flowedit/geometry"
)

// Layered arranges nodes in layers along the flow direction. Each node sits
// one layer after the furthest of its predecessors; edges closing a cycle are
// ignored for layering.
type Layered struct {
	Direction    Direction
	LayerSpacing float64 // gap between consecutive layers
	NodeSpacing  float64 // gap between nodes in the same layer
	Origin       geometry.Point
}

// NewLayered creates a left-to-right layout with default spacing.
func NewLayered() *Layered {
	return &Layered{
		Direction:    LeftToRight,
		LayerSpacing: 80,
		NodeSpacing:  40,
		Origin:       geometry.Pt(40, 40),
	}
}

// Layout positions every node of d and points each edge's sides at its
// other end. Edges to unknown nodes are an error and leave d unchanged.
func (l *Layered) Layout(d *diagram.Diagram) error {
	if len(d.Nodes) == 0 {
		return nil
	}

	index := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		index[n.ID] = i
	}

	outgoing := make([][]int, len(d.Nodes))
	incoming := make([][]int, len(d.Nodes))
	for _, e := range d.Edges {
		from, ok := index[e.Source]
		if !ok {
			return fmt.Errorf("edge %s: %w: %s", e.ID, diagram.ErrNodeNotFound, e.Source)
		}
		to, ok := index[e.Target]
		if !ok {
			return fmt.Errorf("edge %s: %w: %s", e.ID, diagram.ErrNodeNotFound, e.Target)
		}
		// Skip self-loops for layout purposes
		if from == to {
			continue
		}
		outgoing[from] = append(outgoing[from], to)
		incoming[to] = append(incoming[to], from)
	}

	dag := withoutBackEdges(outgoing)
	cross := 0.0
	for _, component := range components(outgoing, incoming) {
		span := l.place(d.Nodes, assignLayers(component, dag), cross)
		cross += span + l.LayerSpacing
	}

	if l.Direction == RightToLeft || l.Direction == BottomToTop {
		l.mirror(d.Nodes)
	}
	for i := range d.Nodes {
		d.Nodes[i].Position = d.Nodes[i].Position.Add(l.Origin)
	}

	for i, e := range d.Edges {
		src := d.Nodes[index[e.Source]]
		tgt := d.Nodes[index[e.Target]]
		d.Edges[i].SourceSide, d.Edges[i].TargetSide = FacingSides(src, tgt)
	}
	return nil
}

// extent returns a node's size along and across the flow.
func (l *Layered) extent(n diagram.Node) (along, across float64) {
	w, h := n.Size()
	if l.Direction.horizontal() {
		return w, h
	}
	return h, w
}

func (l *Layered) set(n *diagram.Node, along, across float64) {
	if l.Direction.horizontal() {
		n.Position = geometry.Pt(along, across)
	} else {
		n.Position = geometry.Pt(across, along)
	}
}

func (l *Layered) along(n diagram.Node) float64 {
	if l.Direction.horizontal() {
		return n.Position.X
	}
	return n.Position.Y
}

func (l *Layered) across(n diagram.Node) float64 {
	if l.Direction.horizontal() {
		return n.Position.Y
	}
	return n.Position.X
}

// place positions one component's layers starting at the cross offset and
// returns the component's span across the flow. Layers are centred on the
// widest one and nodes on their layer's axis.
func (l *Layered) place(nodes []diagram.Node, layers [][]int, crossOffset float64) float64 {
	spans := make([]float64, len(layers))
	maxSpan := 0.0
	for i, layer := range layers {
		for j, v := range layer {
			_, c := l.extent(nodes[v])
			spans[i] += c
			if j > 0 {
				spans[i] += l.NodeSpacing
			}
		}
		maxSpan = max(maxSpan, spans[i])
	}

	along := 0.0
	for i, layer := range layers {
		depth := 0.0
		for _, v := range layer {
			a, _ := l.extent(nodes[v])
			depth = max(depth, a)
		}
		across := crossOffset + (maxSpan-spans[i])/2
		for _, v := range layer {
			a, c := l.extent(nodes[v])
			l.set(&nodes[v], along+(depth-a)/2, across)
			across += c + l.NodeSpacing
		}
		along += depth + l.LayerSpacing
	}
	return maxSpan
}

// mirror reverses the flow axis so the first layer ends up last.
func (l *Layered) mirror(nodes []diagram.Node) {
	end := 0.0
	for _, n := range nodes {
		a, _ := l.extent(n)
		end = max(end, l.along(n)+a)
	}
	for i, n := range nodes {
		a, _ := l.extent(n)
		l.set(&nodes[i], end-l.along(n)-a, l.across(n))
	}
}

// withoutBackEdges drops the edges that close a cycle, found by depth-first
// search in node order.
func withoutBackEdges(outgoing [][]int) [][]int {
	const (
		unvisited = iota
		visiting
		visited
	)
	state := make([]int, len(outgoing))
	dag := make([][]int, len(outgoing))

	var dfs func(v int)
	dfs = func(v int) {
		state[v] = visiting
		for _, w := range outgoing[v] {
			switch state[w] {
			case visiting:
				// back edge
			case unvisited:
				dag[v] = append(dag[v], w)
				dfs(w)
			default:
				dag[v] = append(dag[v], w)
			}
		}
		state[v] = visited
	}
	for v := range outgoing {
		if state[v] == unvisited {
			dfs(v)
		}
	}
	return dag
}

// components returns the weakly connected components, each sorted, in order
// of their first node.
func components(outgoing, incoming [][]int) [][]int {
	seen := make([]bool, len(outgoing))
	var out [][]int
	for start := range outgoing {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, v)
			for _, next := range [][]int{outgoing[v], incoming[v]} {
				for _, w := range next {
					if !seen[w] {
						seen[w] = true
						stack = append(stack, w)
					}
				}
			}
		}
		sort.Ints(comp)
		out = append(out, comp)
	}
	return out
}

// assignLayers groups a component's nodes into layers by topological sort:
// a node joins the layer after the last of its predecessors.
func assignLayers(component []int, dag [][]int) [][]int {
	inDegree := make(map[int]int, len(component))
	for _, v := range component {
		for _, w := range dag[v] {
			inDegree[w]++
		}
	}

	var queue []int
	for _, v := range component {
		if inDegree[v] == 0 {
			queue = append(queue, v)
		}
	}

	var layers [][]int
	for len(queue) > 0 {
		layers = append(layers, queue)
		var next []int
		for _, v := range queue {
			for _, w := range dag[v] {
				inDegree[w]--
				if inDegree[w] == 0 {
					next = append(next, w)
				}
			}
		}
		sort.Ints(next) // deterministic ordering
		queue = next
	}
	return layers
}
