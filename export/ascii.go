package export

import (
	"fmt"

	"flowedit/canvas"
	"flowedit/diagram"
	"flowedit/routing"
)

// ASCIIExporter exports diagrams to ASCII/Unicode art format
type ASCIIExporter struct {
	// Color adds ANSI colors per cell role, for writing to a terminal.
	Color bool
	// Waypoints draws waypoints and handles on every edge.
	Waypoints bool
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{}
}

// Export converts the diagram to ASCII/Unicode art
func (e *ASCIIExporter) Export(d *diagram.Diagram) ([]byte, error) {
	if d == nil {
		return nil, ErrNilDiagram
	}

	routes := routing.RouteDiagram(d)
	opts := canvas.Fit(d, routes, 1)
	opts.ShowWaypoints = e.Waypoints
	c, err := canvas.Rasterize(d, routes, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to render diagram: %w", err)
	}

	out := c.String()
	if e.Color {
		out = c.ColoredString()
	}
	return []byte(out + "\n"), nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII/Unicode Art"
}
