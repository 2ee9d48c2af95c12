// Package routing turns edge endpoints, connection sides and waypoints into
// drawable paths, one pure builder per routing mode.
package routing

import (
	"strconv"
	"strings"

	"flowedit/geometry"
)

// Op is a path drawing operation.
type Op uint8

const (
	MoveTo  Op = iota
	LineTo
	QuadTo  // quadratic Bézier (C1, To)
	CubicTo // cubic Bézier (C1, C2, To)
)

// Command is one drawing operation. Unused control points are zero.
type Command struct {
	Op Op             `json:"op"`
	C1 geometry.Point `json:"c1"`
	C2 geometry.Point `json:"c2"`
	To geometry.Point `json:"to"`
}

// Path is an ordered sequence of drawing commands, independent of any output format.
type Path struct {
	Commands []Command `json:"commands"`
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(to geometry.Point) {
	p.Commands = append(p.Commands, Command{Op: MoveTo, To: to})
}

// LineTo appends a straight segment.
func (p *Path) LineTo(to geometry.Point) {
	p.Commands = append(p.Commands, Command{Op: LineTo, To: to})
}

// QuadTo appends a quadratic Bézier segment.
func (p *Path) QuadTo(c, to geometry.Point) {
	p.Commands = append(p.Commands, Command{Op: QuadTo, C1: c, To: to})
}

// CubicTo appends a cubic Bézier segment.
func (p *Path) CubicTo(c1, c2, to geometry.Point) {
	p.Commands = append(p.Commands, Command{Op: CubicTo, C1: c1, C2: c2, To: to})
}

// Start returns the first point of the path.
func (p Path) Start() geometry.Point {
	if len(p.Commands) == 0 {
		return geometry.Point{}
	}
	return p.Commands[0].To
}

// End returns the last point of the path.
func (p Path) End() geometry.Point {
	if len(p.Commands) == 0 {
		return geometry.Point{}
	}
	return p.Commands[len(p.Commands)-1].To
}

// Points returns the on-curve points of the path (the end point of every command).
func (p Path) Points() []geometry.Point {
	pts := make([]geometry.Point, len(p.Commands))
	for i, c := range p.Commands {
		pts[i] = c.To
	}
	return pts
}

// SVG returns the path in SVG path-data syntax.
func (p Path) SVG() string {
	var sb strings.Builder
	for i, c := range p.Commands {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			sb.WriteString("M ")
			writePoints(&sb, c.To)
		case LineTo:
			sb.WriteString("L ")
			writePoints(&sb, c.To)
		case QuadTo:
			sb.WriteString("Q ")
			writePoints(&sb, c.C1, c.To)
		case CubicTo:
			sb.WriteString("C ")
			writePoints(&sb, c.C1, c.C2, c.To)
		}
	}
	return sb.String()
}

func writePoints(sb *strings.Builder, pts ...geometry.Point) {
	for i, pt := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatFloat(pt.X))
		sb.WriteByte(' ')
		sb.WriteString(formatFloat(pt.Y))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Tolerance is the default maximum distance between a curve and its flattened polyline.
const Tolerance = 0.5

// Flatten converts the path into a polyline, subdividing curves until they
// are within tolerance of a straight line.
func (p Path) Flatten(tolerance float64) []geometry.Point {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	var points []geometry.Point
	var current geometry.Point

	for _, c := range p.Commands {
		switch c.Op {
		case MoveTo, LineTo:
			points = append(points, c.To)
		case QuadTo:
			// Degree elevation keeps one subdivision routine
			c1 := current.Add(c.C1.Sub(current).Scale(2.0 / 3))
			c2 := c.To.Add(c.C1.Sub(c.To).Scale(2.0 / 3))
			flattenCubic(current, c1, c2, c.To, tolerance, 0, &points)
		case CubicTo:
			flattenCubic(current, c.C1, c.C2, c.To, tolerance, 0, &points)
		}
		current = c.To
	}
	return points
}

const maxFlattenDepth = 16

func flattenCubic(p0, p1, p2, p3 geometry.Point, tolerance float64, depth int, points *[]geometry.Point) {
	_, d1 := geometry.ClosestOnSegment(p1, p0, p3)
	_, d2 := geometry.ClosestOnSegment(p2, p0, p3)
	if depth >= maxFlattenDepth || geometry.Max(d1, d2) <= tolerance {
		*points = append(*points, p3)
		return
	}

	p01 := p0.Mid(p1)
	p12 := p1.Mid(p2)
	p23 := p2.Mid(p3)
	p012 := p01.Mid(p12)
	p123 := p12.Mid(p23)
	mid := p012.Mid(p123)

	flattenCubic(p0, p01, p012, mid, tolerance, depth+1, points)
	flattenCubic(mid, p123, p23, p3, tolerance, depth+1, points)
}

// Length returns the length of the flattened path.
func (p Path) Length() float64 {
	pts := p.Flatten(Tolerance)
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	return total
}

// Distance returns the distance from pt to the nearest point on the path,
// and that nearest point.
func (p Path) Distance(pt geometry.Point) (float64, geometry.Point) {
	pts := p.Flatten(Tolerance)
	if len(pts) == 0 {
		return 0, pt
	}
	if len(pts) == 1 {
		return pt.Dist(pts[0]), pts[0]
	}
	best, bestPt := -1.0, pts[0]
	for i := 1; i < len(pts); i++ {
		c, d := geometry.ClosestOnSegment(pt, pts[i-1], pts[i])
		if best < 0 || d < best {
			best, bestPt = d, c
		}
	}
	return best, bestPt
}
