package routing

import (
	"flowedit/geometry"
)

// FreeformPath draws a cubic spline through the source, every waypoint and the
// target.
//
// When the first waypoint carries a HandleIn the stored handles shape each segment:
// a segment leaves its start through that point's HandleOut and enters its end
// through HandleIn. A missing handle defaults to HandleSpan of the point's
// neighbour span. Otherwise the curve is generated from Catmull-Rom tangents
// and any stored handles are ignored.
//
// With no waypoints the result is a single quadratic whose control point is
// the straight-line midpoint, which draws a straight line.
func FreeformPath(in Input) Result {
	var p Path
	p.MoveTo(in.Source)

	if len(in.Waypoints) == 0 {
		p.QuadTo(in.Source.Mid(in.Target), in.Target)
		return Result{Path: p, LabelAnchor: in.Source.Mid(in.Target)}
	}

	pts := polyline(in)
	ins, outs := freeformControls(in, pts)
	for i := 0; i < len(pts)-1; i++ {
		p.CubicTo(outs[i], ins[i+1], pts[i+1])
	}

	return Result{
		Path:        p,
		LabelAnchor: DefaultLabelAnchor(in.Source, in.Target, waypointPoints(in.Waypoints)),
	}
}

// freeformControls returns the incoming and outgoing control point for every
// point of pts (source, waypoints..., target).
func freeformControls(in Input, pts []geometry.Point) (ins, outs []geometry.Point) {
	n := len(pts)
	ins = make([]geometry.Point, n)
	outs = make([]geometry.Point, n)
	explicit := len(in.Waypoints) > 0 && in.Waypoints[0].HandleIn != nil

	for i := range pts {
		prev := pts[max(i-1, 0)]
		next := pts[min(i+1, n-1)]

		if !explicit {
			ins[i], outs[i] = geometry.CatmullRomControls(prev, pts[i], next, FreeformTension)
			continue
		}

		span := next.Sub(prev).Scale(HandleSpan)
		ins[i] = pts[i].Sub(span)
		outs[i] = pts[i].Add(span)

		// pts[0] and pts[n-1] are the endpoints; waypoint k is pts[k+1]
		if i == 0 || i == n-1 {
			continue
		}
		w := in.Waypoints[i-1]
		if w.HandleIn != nil {
			ins[i] = *w.HandleIn
		}
		if w.HandleOut != nil {
			outs[i] = *w.HandleOut
		}
	}
	return ins, outs
}
