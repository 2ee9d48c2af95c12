package diagram

import (
	"encoding/json"
	"fmt"
	"os"
)

// Decode parses a diagram document and normalises its edges.
func Decode(data []byte) (*Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode diagram: %w", err)
	}
	d.Edges = NormalizeEdges(d.Edges)
	return &d, nil
}

// ReadFile loads a diagram document from disk.
func ReadFile(path string) (*Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	d, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
