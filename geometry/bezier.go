package geometry

// DefaultTension is the Catmull-Rom tension used when none is configured.
const DefaultTension = 0.3

// CubicBezierPoint evaluates a cubic Bézier curve at t using De Casteljau's algorithm.
func CubicBezierPoint(p0, p1, p2, p3 Point, t float64) Point {
	t = Clamp(t, 0, 1)
	a := p0.Lerp(p1, t)
	b := p1.Lerp(p2, t)
	c := p2.Lerp(p3, t)
	d := a.Lerp(b, t)
	e := b.Lerp(c, t)
	return d.Lerp(e, t)
}

// QuadraticBezierPoint evaluates a quadratic Bézier curve at t.
func QuadraticBezierPoint(p0, p1, p2 Point, t float64) Point {
	t = Clamp(t, 0, 1)
	return p0.Lerp(p1, t).Lerp(p1.Lerp(p2, t), t)
}

// CatmullRomControls returns the incoming and outgoing Bézier control points
// for curr so that a chain of cubics through ...prev, curr, next... is C1 continuous.
// The central-difference tangent (next-prev)/2 is scaled by tension.
// At the ends of a sequence pass curr as prev or next.
func CatmullRomControls(prev, curr, next Point, tension float64) (in, out Point) {
	tangent := next.Sub(prev).Scale(0.5 * tension)
	return curr.Sub(tangent), curr.Add(tangent)
}
