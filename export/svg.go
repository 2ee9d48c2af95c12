package export

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"flowedit/diagram"
)

const (
	svgNodeStyle  = "fill:#ffffff;stroke:#333333;stroke-width:1.5"
	svgEdgeStyle  = "fill:none;stroke:#555555;stroke-width:1.5"
	svgTextStyle  = "text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:12px;fill:#222222"
	svgLabelStyle = "text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:11px;fill:#555555"
)

// SVGExporter draws the routed diagram as an SVG document.
type SVGExporter struct{}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{}
}

// Export converts the diagram to SVG
func (e *SVGExporter) Export(d *diagram.Diagram) ([]byte, error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	f := newFrame(d)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(int(math.Ceil(f.width)), int(math.Ceil(f.height)))
	canvas.Def()
	canvas.Marker("arrow", 10, 5, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	canvas.Path("M 0 0 L 10 5 L 0 10 z", "fill:#555555")
	canvas.MarkerEnd()
	canvas.DefEnd()
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", formatNum(f.offset.X), formatNum(f.offset.Y)))

	for _, edge := range d.Edges {
		r, ok := f.routes[edge.ID]
		if !ok {
			continue
		}
		canvas.Path(r.Path.SVG(), svgEdgeStyle, `marker-end="url(#arrow)"`, fmt.Sprintf("id=%q", edge.ID))
	}

	for _, n := range d.Nodes {
		drawSVGNode(canvas, n)
	}

	for _, edge := range d.Edges {
		r, ok := f.routes[edge.ID]
		if !ok || !edge.HasLabel() {
			continue
		}
		x, y := round(r.LabelAnchor.X), round(r.LabelAnchor.Y)
		canvas.Text(x, y, edge.LabelText(), svgLabelStyle)
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes(), nil
}

func drawSVGNode(canvas *svg.SVG, n diagram.Node) {
	w, h := n.Size()
	x, y := round(n.Position.X), round(n.Position.Y)
	iw, ih := round(w), round(h)
	c := n.Center()
	cx, cy := round(c.X), round(c.Y)

	switch shapeOf(n.Type) {
	case shapeCircle:
		style := svgNodeStyle
		if n.Type == diagram.EndEvent {
			style = "fill:#ffffff;stroke:#333333;stroke-width:3"
		}
		canvas.Circle(cx, cy, round(math.Min(w, h)/2), style)
	case shapeDiamond:
		canvas.Polygon([]int{cx, x + iw, cx, x}, []int{y, cy, y + ih, cy}, svgNodeStyle)
	case shapeDashed:
		canvas.Rect(x, y, iw, ih, svgNodeStyle+";stroke-dasharray:4,3")
	case shapeRect:
		canvas.Rect(x, y, iw, ih, svgNodeStyle)
	default:
		canvas.Roundrect(x, y, iw, ih, 8, 8, svgNodeStyle)
	}

	if n.Data.Label != "" {
		canvas.Text(cx, cy, n.Data.Label, svgTextStyle)
	}
}

// GetFileExtension returns the recommended file extension
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}

func round(f float64) int {
	return int(math.Round(f))
}

func formatNum(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int(f))
	}
	return fmt.Sprintf("%.2f", f)
}
