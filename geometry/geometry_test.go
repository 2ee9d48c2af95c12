package geometry

import (
	"encoding/json"
	"testing"
)

func TestSideDirection(t *testing.T) {
	tests := []struct {
		side Side
		want Point
	}{
		{Top, Pt(0, -1)},
		{Bottom, Pt(0, 1)},
		{Left, Pt(-1, 0)},
		{Right, Pt(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			if got := tt.side.Direction(); got != tt.want {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
			if got := tt.side.Direction().Len(); got != 1 {
				t.Errorf("Direction length = %v, want 1", got)
			}
		})
	}
}

func TestSideOpposite(t *testing.T) {
	for _, s := range []Side{Top, Right, Bottom, Left} {
		if s.Opposite().Opposite() != s {
			t.Errorf("Opposite of opposite of %v should be itself", s)
		}
		if s.Opposite().Direction().Add(s.Direction()) != Pt(0, 0) {
			t.Errorf("%v and its opposite should point in opposite directions", s)
		}
	}
}

func TestSideJSON(t *testing.T) {
	var v struct {
		Side Side `json:"side"`
	}
	if err := json.Unmarshal([]byte(`{"side":"left"}`), &v); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if v.Side != Left {
		t.Errorf("Expected Left, got %v", v.Side)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(data) != `{"side":"left"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	// Unknown names are tolerated and fall back to bottom
	if err := json.Unmarshal([]byte(`{"side":"diagonal"}`), &v); err != nil {
		t.Fatalf("Unknown side should not be an error: %v", err)
	}
	if v.Side != Bottom {
		t.Errorf("Expected Bottom fallback, got %v", v.Side)
	}
}

func TestCubicBezierPoint(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)

	if got := CubicBezierPoint(p0, p1, p2, p3, 0); got != p0 {
		t.Errorf("t=0 should be p0, got %v", got)
	}
	if got := CubicBezierPoint(p0, p1, p2, p3, 1); got != p3 {
		t.Errorf("t=1 should be p3, got %v", got)
	}
	if got := CubicBezierPoint(p0, p1, p2, p3, 0.5); !got.Near(Pt(50, 75), Epsilon) {
		t.Errorf("t=0.5 should be (50,75), got %v", got)
	}
	// Out of range parameters are clamped
	if got := CubicBezierPoint(p0, p1, p2, p3, 7); got != p3 {
		t.Errorf("t>1 should clamp to p3, got %v", got)
	}
}

func TestQuadraticBezierPoint(t *testing.T) {
	got := QuadraticBezierPoint(Pt(0, 0), Pt(50, 100), Pt(100, 0), 0.5)
	if !got.Near(Pt(50, 50), Epsilon) {
		t.Errorf("Expected (50,50), got %v", got)
	}
}

func TestCatmullRomControls(t *testing.T) {
	in, out := CatmullRomControls(Pt(0, 0), Pt(100, 0), Pt(200, 0), 0.5)
	if !in.Near(Pt(50, 0), Epsilon) || !out.Near(Pt(150, 0), Epsilon) {
		t.Errorf("Unexpected controls in=%v out=%v", in, out)
	}

	// Controls are symmetric around the point, giving C1 continuity
	in, out = CatmullRomControls(Pt(0, 0), Pt(40, 30), Pt(90, 10), DefaultTension)
	if !in.Mid(out).Near(Pt(40, 30), Epsilon) {
		t.Errorf("Controls should be symmetric around the point: in=%v out=%v", in, out)
	}

	// At an endpoint the point itself is passed as neighbour
	in, out = CatmullRomControls(Pt(0, 0), Pt(0, 0), Pt(100, 0), 0.35)
	if !out.Near(Pt(17.5, 0), Epsilon) || !in.Near(Pt(-17.5, 0), Epsilon) {
		t.Errorf("Unexpected endpoint controls in=%v out=%v", in, out)
	}
}

func TestClosestOnSegment(t *testing.T) {
	tests := []struct {
		name     string
		p, a, b  Point
		want     Point
		wantDist float64
	}{
		{"perpendicular", Pt(50, 10), Pt(0, 0), Pt(100, 0), Pt(50, 0), 10},
		{"before start", Pt(-10, 0), Pt(0, 0), Pt(100, 0), Pt(0, 0), 10},
		{"after end", Pt(103, 4), Pt(0, 0), Pt(100, 0), Pt(100, 0), 5},
		{"degenerate", Pt(3, 4), Pt(0, 0), Pt(0, 0), Pt(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, d := ClosestOnSegment(tt.p, tt.a, tt.b)
			if !got.Near(tt.want, Epsilon) || Abs(d-tt.wantDist) > Epsilon {
				t.Errorf("got %v (dist %v), want %v (dist %v)", got, d, tt.want, tt.wantDist)
			}
		})
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{PanX: 40, PanY: -20, Zoom: 2}

	c := tr.ToCanvas(ScreenPoint{X: 140, Y: 80})
	if c != Pt(50, 50) {
		t.Errorf("ToCanvas = %v, want (50,50)", c)
	}
	if s := tr.ToScreen(c); s != (ScreenPoint{X: 140, Y: 80}) {
		t.Errorf("ToScreen = %v, want (140,80)", s)
	}

	// A zero transform behaves like identity zoom
	var zero Transform
	if got := zero.ToCanvas(ScreenPoint{X: 3, Y: 4}); got != Pt(3, 4) {
		t.Errorf("Zero transform should not scale, got %v", got)
	}
	if got := tr.ScaleToCanvas(10); got != 5 {
		t.Errorf("ScaleToCanvas = %v, want 5", got)
	}
}

func TestManhattanDistance(t *testing.T) {
	if got := ManhattanDistance(Pt(1, 2), Pt(4, -2)); got != 7 {
		t.Errorf("Expected 7, got %v", got)
	}
	if !IsHorizontal(Pt(0, 0), Pt(10, 3)) || IsVertical(Pt(0, 0), Pt(10, 3)) {
		t.Error("(0,0)->(10,3) should be horizontal")
	}
}
