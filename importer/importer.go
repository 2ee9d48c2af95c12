// Package importer reads diagrams written in other tools' formats.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"flowedit/diagram"
)

// ErrUnknownFormat is returned when no importer accepts the input.
var ErrUnknownFormat = errors.New("unknown import format")

// Importer interface defines methods for importing diagrams from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the input content into a diagram
	Import(content string) (*diagram.Diagram, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a new importer registry
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(),
			NewMermaidImporter(),
			NewMarkdownImporter(0),
		},
	}
}

// Register adds an importer to the registry, replacing any importer with
// the same format name
func (r *ImporterRegistry) Register(importer Importer) {
	for i, imp := range r.importers {
		if strings.EqualFold(imp.GetFormatName(), importer.GetFormatName()) {
			r.importers[i] = importer
			return
		}
	}
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, ErrUnknownFormat
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content string) (*diagram.Diagram, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content, format string) (*diagram.Diagram, error) {
	format = strings.ToLower(format)
	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp.Import(content)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ForPath returns the importer registered for a file's extension.
func (r *ImporterRegistry) ForPath(path string) (Importer, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, imp := range r.importers {
		if slices.Contains(imp.GetFileExtensions(), ext) {
			return imp, true
		}
	}
	return nil, false
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}

// JSONImporter reads the editor's own document format.
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport checks if the content looks like a JSON document
func (j *JSONImporter) CanImport(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "{")
}

// Import decodes the document, normalising its edges
func (j *JSONImporter) Import(content string) (*diagram.Diagram, error) {
	return diagram.Decode([]byte(content))
}

// GetFormatName returns the format name
func (j *JSONImporter) GetFormatName() string {
	return "JSON"
}

// GetFileExtensions returns common file extensions
func (j *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}
