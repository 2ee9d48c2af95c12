// Package geometry provides the float geometry used by the routing and
// interaction layers: points, vectors, connection sides, Bézier evaluation and
// the screen/canvas transform.
package geometry

import "math"

// Abs returns the absolute value of a float.
func Abs(x float64) float64 {
	return math.Abs(x)
}

// Min returns the minimum of two floats.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two floats.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b Point) float64 {
	return Abs(b.X-a.X) + Abs(b.Y-a.Y)
}

// IsHorizontal returns true if the line from a to b is at least as horizontal as it is vertical.
func IsHorizontal(a, b Point) bool {
	return Abs(b.X-a.X) >= Abs(b.Y-a.Y)
}

// IsVertical returns true if the line from a to b is more vertical than horizontal.
func IsVertical(a, b Point) bool {
	return Abs(b.Y-a.Y) > Abs(b.X-a.X)
}
