package export

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"flowedit/diagram"
	"flowedit/routing"
)

var (
	pngBackground = color.White
	pngInk        = color.RGBA{51, 51, 51, 255}
	pngEdge       = color.RGBA{85, 85, 85, 255}
	pngLabelFill  = color.RGBA{255, 255, 255, 230}
)

// PNGExporter renders the routed diagram to a PNG image, one pixel per
// canvas unit.
type PNGExporter struct {
	FontSize float64
}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{FontSize: 12}
}

// Export converts the diagram to PNG
func (e *PNGExporter) Export(d *diagram.Diagram) ([]byte, error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	f := newFrame(d)

	dc := gg.NewContext(int(math.Ceil(f.width)), int(math.Ceil(f.height)))
	dc.SetColor(pngBackground)
	dc.Clear()

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    e.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.Translate(f.offset.X, f.offset.Y)

	// Edges go first so nodes cover the path ends
	for _, edge := range d.Edges {
		if r, ok := f.routes[edge.ID]; ok {
			drawPNGPath(dc, r.Path)
		}
	}
	for _, n := range d.Nodes {
		drawPNGNode(dc, n)
	}
	for _, edge := range d.Edges {
		r, ok := f.routes[edge.ID]
		if !ok || !edge.HasLabel() {
			continue
		}
		text := edge.LabelText()
		w, h := dc.MeasureString(text)
		a := r.LabelAnchor
		dc.SetColor(pngLabelFill)
		dc.DrawRectangle(a.X-w/2-4, a.Y-h/2-2, w+8, h+4)
		dc.Fill()
		dc.SetColor(pngEdge)
		dc.DrawStringAnchored(text, a.X, a.Y, 0.5, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPNGPath replays the path commands and adds an arrowhead along the end
// tangent.
func drawPNGPath(dc *gg.Context, p routing.Path) {
	dc.NewSubPath()
	for _, c := range p.Commands {
		switch c.Op {
		case routing.MoveTo:
			dc.MoveTo(c.To.X, c.To.Y)
		case routing.LineTo:
			dc.LineTo(c.To.X, c.To.Y)
		case routing.QuadTo:
			dc.QuadraticTo(c.C1.X, c.C1.Y, c.To.X, c.To.Y)
		case routing.CubicTo:
			dc.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
		}
	}
	dc.SetColor(pngEdge)
	dc.SetLineWidth(1.5)
	dc.Stroke()

	tail, ok := arrowTail(p)
	if !ok {
		return
	}
	tip := p.End()
	l, r := arrowHead(tail, tip, 10)
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(l.X, l.Y)
	dc.LineTo(r.X, r.Y)
	dc.ClosePath()
	dc.Fill()
}

func drawPNGNode(dc *gg.Context, n diagram.Node) {
	w, h := n.Size()
	x, y := n.Position.X, n.Position.Y
	c := n.Center()

	switch shapeOf(n.Type) {
	case shapeCircle:
		dc.DrawCircle(c.X, c.Y, math.Min(w, h)/2)
	case shapeDiamond:
		dc.MoveTo(c.X, y)
		dc.LineTo(x+w, c.Y)
		dc.LineTo(c.X, y+h)
		dc.LineTo(x, c.Y)
		dc.ClosePath()
	case shapeRect, shapeDashed:
		dc.DrawRectangle(x, y, w, h)
	default:
		dc.DrawRoundedRectangle(x, y, w, h, 8)
	}
	dc.SetColor(pngBackground)
	dc.FillPreserve()

	lineWidth := 1.5
	if n.Type == diagram.EndEvent {
		lineWidth = 3
	}
	if shapeOf(n.Type) == shapeDashed {
		dc.SetDash(4, 3)
	}
	dc.SetColor(pngInk)
	dc.SetLineWidth(lineWidth)
	dc.Stroke()
	dc.SetDash()

	if n.Data.Label != "" {
		dc.DrawStringWrapped(n.Data.Label, c.X, c.Y, 0.5, 0.5, w-8, 1.2, gg.AlignCenter)
	}
}

// GetFileExtension returns the recommended file extension
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}
