// Package export writes diagrams out as files: JSON for round trips, SVG and
// PNG images of the routed edges, terminal art, Mermaid text and an edge report.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"flowedit/canvas"
	"flowedit/diagram"
	"flowedit/geometry"
	"flowedit/routing"
)

// Format represents an export format
type Format string

const (
	FormatJSON    Format = "json"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatASCII   Format = "ascii"
	FormatMermaid Format = "mermaid"
	FormatReport  Format = "report"
)

// Common errors
var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNilDiagram        = errors.New("diagram is nil")
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a diagram to the target format
	Export(d *diagram.Diagram) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatReport:
		return NewReportExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "report":
		return FormatReport, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{FormatJSON, FormatSVG, FormatPNG, FormatASCII, FormatMermaid, FormatReport}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON:    "Diagram document (round-trips through the editor)",
		FormatSVG:     "Scalable vector image of the routed diagram",
		FormatPNG:     "Raster image of the routed diagram",
		FormatASCII:   "Unicode box-drawing art",
		FormatMermaid: "Mermaid flowchart syntax (for Markdown)",
		FormatReport:  "Table of edges with their routing details",
	}
}

// ContentType returns the MIME type of a format's output.
func ContentType(f Format) string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

// margin is the blank border around image exports, in canvas pixels.
const margin = 20.0

// frame is a routed diagram placed on an image of a given size.
type frame struct {
	routes map[string]routing.Result
	offset geometry.Point // added to canvas coordinates
	width  float64
	height float64
}

func newFrame(d *diagram.Diagram) frame {
	f := frame{routes: routing.RouteDiagram(d), width: 2 * margin, height: 2 * margin}
	lo, hi, ok := canvas.Bounds(d, f.routes)
	if !ok {
		return f
	}
	f.offset = geometry.Pt(margin-lo.X, margin-lo.Y)
	f.width += hi.X - lo.X
	f.height += hi.Y - lo.Y
	return f
}

// shape is how a node type is outlined in image exports.
type shape int

const (
	shapeRounded shape = iota
	shapeCircle
	shapeDiamond
	shapeDashed
	shapeRect
)

func shapeOf(t diagram.NodeType) shape {
	switch t {
	case diagram.StartEvent, diagram.EndEvent, diagram.IntermediateEvent:
		return shapeCircle
	case diagram.Gateway:
		return shapeDiamond
	case diagram.Annotation, diagram.Frame:
		return shapeDashed
	case diagram.DataStore, diagram.Document, diagram.Swimlane:
		return shapeRect
	default:
		return shapeRounded
	}
}

// arrowTail returns the point the final segment of a path arrives from, so
// an arrowhead can be oriented along the path's end tangent.
func arrowTail(p routing.Path) (geometry.Point, bool) {
	n := len(p.Commands)
	if n < 2 {
		return geometry.Point{}, false
	}
	last := p.Commands[n-1]
	var from geometry.Point
	switch last.Op {
	case routing.QuadTo:
		from = last.C1
	case routing.CubicTo:
		from = last.C2
	default:
		from = p.Commands[n-2].To
	}
	if from.Near(last.To, geometry.Epsilon) {
		from = p.Commands[n-2].To
	}
	return from, !from.Near(last.To, geometry.Epsilon)
}

// arrowHead returns the two back corners of an arrowhead at tip pointing away
// from tail.
func arrowHead(tail, tip geometry.Point, size float64) (geometry.Point, geometry.Point) {
	d := tip.Sub(tail)
	d = d.Scale(1 / d.Len())
	back := tip.Sub(d.Scale(size))
	n := geometry.Pt(-d.Y, d.X).Scale(size / 2)
	return back.Add(n), back.Sub(n)
}
