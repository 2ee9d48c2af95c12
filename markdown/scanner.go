// Package markdown finds diagram code blocks in Markdown documents and
// rewrites them in place.
package markdown

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoBlocks is returned when a document has no diagram blocks.
var ErrNoBlocks = errors.New("no diagram blocks found")

// DiagramBlock represents a diagram code block found in markdown
type DiagramBlock struct {
	Type      string // mermaid or json
	Content   string // The diagram content, without the block's indentation
	StartLine int    // Line of the opening fence (0-based)
	EndLine   int    // Line of the closing fence
	Indent    string // Indentation before the code fence
}

// Scanner finds and extracts diagram blocks from markdown content
type Scanner struct {
	lines []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{lines: strings.Split(content, "\n")}
}

// FindDiagramBlocks finds all diagram code blocks in the markdown. An
// unclosed block at the end of the document is ignored.
func (s *Scanner) FindDiagramBlocks() []DiagramBlock {
	var blocks []DiagramBlock
	var current *DiagramBlock
	var content []string

	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " \t")
		if current == nil {
			lang, ok := strings.CutPrefix(trimmed, "```")
			if !ok || !isDiagramLanguage(strings.TrimSpace(lang)) {
				continue
			}
			current = &DiagramBlock{
				Type:      strings.ToLower(strings.TrimSpace(lang)),
				StartLine: i,
				Indent:    line[:len(line)-len(trimmed)],
			}
			content = content[:0]
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i
			current.Content = strings.Join(content, "\n")
			blocks = append(blocks, *current)
			current = nil
			continue
		}
		content = append(content, strings.TrimPrefix(line, current.Indent))
	}
	return blocks
}

// Block returns the diagram block with the 1-based index, or the only block
// when index is 0.
func (s *Scanner) Block(index int) (DiagramBlock, error) {
	blocks := s.FindDiagramBlocks()
	switch {
	case len(blocks) == 0:
		return DiagramBlock{}, ErrNoBlocks
	case index == 0 && len(blocks) == 1:
		return blocks[0], nil
	case index == 0:
		return DiagramBlock{}, fmt.Errorf("found %d diagram blocks, choose one", len(blocks))
	case index < 0 || index > len(blocks):
		return DiagramBlock{}, fmt.Errorf("block index %d is out of range (found %d blocks)", index, len(blocks))
	}
	return blocks[index-1], nil
}

// ReplaceBlock returns the document with the block's content replaced,
// keeping its fences and indentation.
func (s *Scanner) ReplaceBlock(block DiagramBlock, newContent string) (string, error) {
	if block.StartLine < 0 || block.EndLine >= len(s.lines) || block.StartLine >= block.EndLine {
		return "", fmt.Errorf("invalid block boundaries: start=%d, end=%d, total lines=%d",
			block.StartLine, block.EndLine, len(s.lines))
	}

	// Verify the block markers are still in place
	start := strings.TrimLeft(s.lines[block.StartLine], " \t")
	if !strings.HasPrefix(strings.ToLower(start), "```"+block.Type) {
		return "", fmt.Errorf("block start marker has changed at line %d", block.StartLine+1)
	}
	if end := strings.TrimLeft(s.lines[block.EndLine], " \t"); !strings.HasPrefix(end, "```") {
		return "", fmt.Errorf("block end marker has changed at line %d", block.EndLine+1)
	}

	out := make([]string, 0, len(s.lines))
	out = append(out, s.lines[:block.StartLine+1]...)
	for _, line := range strings.Split(strings.TrimRight(newContent, "\n"), "\n") {
		out = append(out, block.Indent+line)
	}
	out = append(out, s.lines[block.EndLine:]...)
	return strings.Join(out, "\n"), nil
}

// isDiagramLanguage checks if a language identifier is a diagram type we support
func isDiagramLanguage(lang string) bool {
	switch strings.ToLower(lang) {
	case "mermaid", "json":
		return true
	default:
		return false
	}
}
