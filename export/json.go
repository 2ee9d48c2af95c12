package export

import (
	"encoding/json"

	"flowedit/diagram"
)

// JSONExporter exports diagrams to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a diagram to JSON
func (e *JSONExporter) Export(d *diagram.Diagram) ([]byte, error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
