package canvas

import (
	"math"

	"flowedit/diagram"
	"flowedit/geometry"
	"flowedit/routing"
)

// Bounds returns the box covering every node, routed path and label anchor.
// ok is false for an empty diagram.
func Bounds(d *diagram.Diagram, routes map[string]routing.Result) (lo, hi geometry.Point, ok bool) {
	lo = geometry.Pt(math.Inf(1), math.Inf(1))
	hi = geometry.Pt(math.Inf(-1), math.Inf(-1))
	grow := func(p geometry.Point) {
		lo = geometry.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = geometry.Pt(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
		ok = true
	}

	for _, n := range d.Nodes {
		w, h := n.Size()
		grow(n.Position)
		grow(n.Position.Add(geometry.Pt(w, h)))
	}
	for _, e := range d.Edges {
		r, found := routes[e.ID]
		if !found {
			continue
		}
		for _, p := range r.Path.Flatten(routing.Tolerance) {
			grow(p)
		}
		if e.HasLabel() {
			grow(r.LabelAnchor)
		}
	}
	return lo, hi, ok
}

// Fit returns options sized to hold the whole diagram at unit zoom with
// margin cells on every side.
func Fit(d *diagram.Diagram, routes map[string]routing.Result, margin int) Options {
	opts := Options{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight}
	lo, hi, ok := Bounds(d, routes)
	if !ok {
		opts.Width, opts.Height = 1, 1
		return opts
	}
	m := float64(margin)
	opts.Transform = geometry.Transform{
		PanX: m*DefaultCellWidth - lo.X,
		PanY: m*DefaultCellHeight - lo.Y,
		Zoom: 1,
	}
	opts.Width = int(math.Ceil((hi.X-lo.X)/DefaultCellWidth)) + 2*margin + 1
	opts.Height = int(math.Ceil((hi.Y-lo.Y)/DefaultCellHeight)) + 2*margin + 1
	return opts
}
