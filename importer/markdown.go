package importer

import (
	"fmt"
	"strings"

	"flowedit/diagram"
	"flowedit/markdown"
)

// MarkdownImporter reads a mermaid or json code block out of a Markdown
// document.
type MarkdownImporter struct {
	// Block is the 1-based block to read. Zero requires exactly one block.
	Block int
}

// NewMarkdownImporter creates an importer for the given block.
func NewMarkdownImporter(block int) *MarkdownImporter {
	return &MarkdownImporter{Block: block}
}

// CanImport checks if the document contains a diagram block
func (m *MarkdownImporter) CanImport(content string) bool {
	return len(markdown.NewScanner(content).FindDiagramBlocks()) > 0
}

// Import decodes the chosen block with the importer for its language
func (m *MarkdownImporter) Import(content string) (*diagram.Diagram, error) {
	block, err := markdown.NewScanner(content).Block(m.Block)
	if err != nil {
		return nil, err
	}

	var inner Importer = NewMermaidImporter()
	if block.Type == "json" {
		inner = NewJSONImporter()
	}
	d, err := inner.Import(block.Content)
	if err != nil {
		return nil, fmt.Errorf("%s block at line %d: %w", block.Type, block.StartLine+1, err)
	}
	return d, nil
}

// GetFormatName returns the format name
func (m *MarkdownImporter) GetFormatName() string {
	return "Markdown"
}

// GetFileExtensions returns common file extensions
func (m *MarkdownImporter) GetFileExtensions() []string {
	return []string{".md", ".markdown"}
}

// IsMarkdownPath reports whether a path names a Markdown document.
func IsMarkdownPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
