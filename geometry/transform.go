package geometry

// ScreenPoint is a pointer position in screen pixels. It is deliberately a
// separate type from Point so that screen and canvas coordinates cannot be
// mixed without going through a Transform.
type ScreenPoint struct {
	X, Y float64
}

// Dist returns the distance between two screen points.
func (s ScreenPoint) Dist(o ScreenPoint) float64 {
	return Point(s).Dist(Point(o))
}

// Transform is the viewport pan/zoom relating screen and canvas space:
// screen = canvas*Zoom + Pan.
type Transform struct {
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
	Zoom float64 `json:"zoom"`
}

// Identity is the transform with no pan and unit zoom.
var Identity = Transform{Zoom: 1}

func (t Transform) zoom() float64 {
	if t.Zoom <= 0 {
		return 1
	}
	return t.Zoom
}

// ToCanvas converts a screen position into canvas space.
func (t Transform) ToCanvas(s ScreenPoint) Point {
	z := t.zoom()
	return Point{X: (s.X - t.PanX) / z, Y: (s.Y - t.PanY) / z}
}

// ToScreen converts a canvas position into screen space.
func (t Transform) ToScreen(p Point) ScreenPoint {
	z := t.zoom()
	return ScreenPoint{X: p.X*z + t.PanX, Y: p.Y*z + t.PanY}
}

// ScaleToCanvas converts a screen distance into a canvas distance.
func (t Transform) ScaleToCanvas(d float64) float64 {
	return d / t.zoom()
}
