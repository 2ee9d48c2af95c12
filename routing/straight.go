package routing

// StraightPath draws a polyline from the source through each waypoint to the target.
func StraightPath(in Input) Result {
	var p Path
	p.MoveTo(in.Source)
	for _, w := range in.Waypoints {
		p.LineTo(w.Point)
	}
	p.LineTo(in.Target)

	return Result{
		Path:        p,
		LabelAnchor: DefaultLabelAnchor(in.Source, in.Target, waypointPoints(in.Waypoints)),
	}
}
