package routing

import (
	"flowedit/diagram"
	"flowedit/geometry"
)

// Input is the geometry a path builder works from. Waypoints are in the same
// canvas space as Source and Target.
type Input struct {
	Source     geometry.Point
	Target     geometry.Point
	SourceSide geometry.Side
	TargetSide geometry.Side
	Waypoints  []diagram.Waypoint
}

// Result is a renderable path and the point its label is anchored at.
type Result struct {
	Path        Path           `json:"path"`
	LabelAnchor geometry.Point `json:"labelAnchor"`
}

// Builder computes the path for one routing mode.
type Builder func(in Input) Result

// Default geometric parameters.
const (
	// Clearance is how far orthogonal routes leave a node before turning.
	Clearance = 25.0
	// Curvature scales the smooth-mode control offset by edge length.
	Curvature = 0.5
	// MaxBulge caps the smooth-mode control offset.
	MaxBulge = 150.0
	// FreeformTension is the Catmull-Rom tension for auto-generated freeform curves.
	FreeformTension = 0.35
	// HandleSpan is the fraction of the neighbour span used for a missing freeform handle.
	HandleSpan = 0.15
)

var builders = map[diagram.RoutingMode]Builder{
	diagram.Straight:   StraightPath,
	diagram.Orthogonal: OrthogonalPath,
	diagram.Smooth:     SmoothPath,
	diagram.Freeform:   FreeformPath,
}

// BuilderFor returns the builder for mode. Unknown modes use orthogonal routing.
func BuilderFor(mode diagram.RoutingMode) Builder {
	return builders[diagram.ParseRoutingMode(string(mode))]
}

// Build routes in with the builder for mode.
func Build(mode diagram.RoutingMode, in Input) Result {
	return BuilderFor(mode)(in)
}

// InputFor assembles the builder input for an edge whose endpoints are known.
func InputFor(e diagram.Edge, src, tgt geometry.Point) Input {
	return Input{
		Source:     src,
		Target:     tgt,
		SourceSide: e.SourceSide,
		TargetSide: e.TargetSide,
		Waypoints:  e.Waypoints,
	}
}

// RouteEdgeAt routes e between src and tgt, applying the edge's explicit
// label position when it has one.
func RouteEdgeAt(e diagram.Edge, src, tgt geometry.Point) Result {
	r := Build(e.Mode, InputFor(e, src, tgt))
	if e.LabelPosition != nil {
		r.LabelAnchor = *e.LabelPosition
	}
	return r
}

// RouteEdge resolves e's endpoints in d and routes it.
func RouteEdge(d *diagram.Diagram, e diagram.Edge) (Result, bool) {
	src, tgt, ok := d.Endpoints(e)
	if !ok {
		return Result{}, false
	}
	return RouteEdgeAt(e, src, tgt), true
}

// RouteDiagram routes every edge whose endpoints resolve, keyed by edge id.
func RouteDiagram(d *diagram.Diagram) map[string]Result {
	out := make(map[string]Result, len(d.Edges))
	for _, e := range d.Edges {
		if r, ok := RouteEdge(d, e); ok {
			out[e.ID] = r
		}
	}
	return out
}

// DefaultLabelAnchor is the label anchor used when an edge has no explicit
// position: the middle waypoint for an odd count, the midpoint of the two
// central waypoints for an even count, or the endpoint midpoint without waypoints.
func DefaultLabelAnchor(src, tgt geometry.Point, pts []geometry.Point) geometry.Point {
	n := len(pts)
	switch {
	case n == 0:
		return src.Mid(tgt)
	case n%2 == 1:
		return pts[n/2]
	default:
		return pts[n/2-1].Mid(pts[n/2])
	}
}

func waypointPoints(wps []diagram.Waypoint) []geometry.Point {
	pts := make([]geometry.Point, len(wps))
	for i, w := range wps {
		pts[i] = w.Point
	}
	return pts
}

// polyline returns source, waypoints and target as one point sequence.
func polyline(in Input) []geometry.Point {
	pts := make([]geometry.Point, 0, len(in.Waypoints)+2)
	pts = append(pts, in.Source)
	for _, w := range in.Waypoints {
		pts = append(pts, w.Point)
	}
	return append(pts, in.Target)
}

// NearestSegment returns the index of the segment of the polyline pts closest
// to p. Inserting a waypoint at that index keeps waypoints in path order when
// pts is source, waypoints..., target.
func NearestSegment(pts []geometry.Point, p geometry.Point) int {
	best, bestIdx := -1.0, 0
	for i := 1; i < len(pts); i++ {
		_, d := geometry.ClosestOnSegment(p, pts[i-1], pts[i])
		if best < 0 || d < best {
			best, bestIdx = d, i-1
		}
	}
	return bestIdx
}

// Polyline exposes the source, waypoint, target sequence of in.
func Polyline(in Input) []geometry.Point {
	return polyline(in)
}
