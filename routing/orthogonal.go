package routing

import "flowedit/geometry"

// OrthogonalPath draws a Manhattan route. User-placed waypoints are trusted as
// corners and connected as they are. Without waypoints the route leaves each
// node along its side by Clearance and turns once (perpendicular sides, or
// sides on the same axis that do not face each other) or twice on a shared
// midline (facing sides: Right/Left or Top/Bottom).
func OrthogonalPath(in Input) Result {
	var corners []geometry.Point
	if len(in.Waypoints) > 0 {
		corners = waypointPoints(in.Waypoints)
	} else {
		corners = orthogonalCorners(in)
	}

	var p Path
	p.MoveTo(in.Source)
	for _, c := range corners {
		p.LineTo(c)
	}
	p.LineTo(in.Target)

	return Result{
		Path:        p,
		LabelAnchor: DefaultLabelAnchor(in.Source, in.Target, corners),
	}
}

// orthogonalCorners returns the offset points and the turning corners between them.
// Duplicate corners are kept so the shape of the result does not depend on alignment.
func orthogonalCorners(in Input) []geometry.Point {
	s := in.Source.Add(in.SourceSide.Direction().Scale(Clearance))
	t := in.Target.Add(in.TargetSide.Direction().Scale(Clearance))

	if facing(in.SourceSide, in.TargetSide) {
		if in.SourceSide.IsHorizontal() {
			midX := (s.X + t.X) / 2
			return []geometry.Point{s, geometry.Pt(midX, s.Y), geometry.Pt(midX, t.Y), t}
		}
		midY := (s.Y + t.Y) / 2
		return []geometry.Point{s, geometry.Pt(s.X, midY), geometry.Pt(t.X, midY), t}
	}

	if in.SourceSide.IsHorizontal() {
		return []geometry.Point{s, geometry.Pt(t.X, s.Y), t}
	}
	return []geometry.Point{s, geometry.Pt(s.X, t.Y), t}
}

// facing reports whether two sides are collinear opposites.
func facing(a, b geometry.Side) bool {
	return a.Opposite() == b
}
