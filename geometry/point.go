package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Near.
const Epsilon = 1e-9

// Point is a position in canvas (model) space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point {
	return p.Lerp(q, 0.5)
}

// Len returns the length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 {
	return q.Sub(p).Len()
}

// Near reports whether p and q are within eps of each other on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return Abs(p.X-q.X) <= eps && Abs(p.Y-q.Y) <= eps
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// ClosestOnSegment returns the point on segment ab closest to p and its distance to p.
func ClosestOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return a, p.Dist(a)
	}
	t := Clamp(((p.X-a.X)*ab.X+(p.Y-a.Y)*ab.Y)/l2, 0, 1)
	c := a.Lerp(b, t)
	return c, p.Dist(c)
}
