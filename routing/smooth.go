package routing

import "flowedit/geometry"

// SmoothPath draws a rolling quadratic curve through the waypoints: each
// waypoint is the control point of a quadratic that ends halfway to the next
// point, and the last one ends on the target. Without waypoints it draws a
// single cubic whose controls leave each endpoint along its side by
// min(distance*Curvature, MaxBulge).
func SmoothPath(in Input) Result {
	var p Path
	p.MoveTo(in.Source)

	if len(in.Waypoints) == 0 {
		offset := geometry.Min(in.Source.Dist(in.Target)*Curvature, MaxBulge)
		c1 := in.Source.Add(in.SourceSide.Direction().Scale(offset))
		c2 := in.Target.Add(in.TargetSide.Direction().Scale(offset))
		p.CubicTo(c1, c2, in.Target)
		return Result{
			Path:        p,
			LabelAnchor: geometry.CubicBezierPoint(in.Source, c1, c2, in.Target, 0.5),
		}
	}

	pts := waypointPoints(in.Waypoints)
	for i, ctrl := range pts {
		if i == len(pts)-1 {
			p.QuadTo(ctrl, in.Target)
			break
		}
		p.QuadTo(ctrl, ctrl.Mid(pts[i+1]))
	}

	return Result{
		Path:        p,
		LabelAnchor: DefaultLabelAnchor(in.Source, in.Target, pts),
	}
}
