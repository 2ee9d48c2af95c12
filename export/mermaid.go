package export

import (
	"fmt"
	"strings"

	"flowedit/diagram"
)

// MermaidExporter exports diagrams to Mermaid flowchart syntax
type MermaidExporter struct {
	// Direction is the flowchart direction, LR when empty.
	Direction string
}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{Direction: "LR"}
}

// Export converts the diagram to Mermaid syntax
func (e *MermaidExporter) Export(d *diagram.Diagram) ([]byte, error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	dir := e.Direction
	if dir == "" {
		dir = "LR"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "flowchart %s\n", dir)

	types := make(map[string]diagram.NodeType, len(d.Nodes))
	for _, n := range d.Nodes {
		types[n.ID] = n.Type
		label := n.Data.Label
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(&sb, "    %s%s\n", n.ID, formatNodeWithShape(escapeLabel(label), n.Type))
	}

	if len(d.Edges) > 0 {
		sb.WriteString("\n")
	}
	for _, edge := range d.Edges {
		src, ok := types[edge.Source]
		if !ok {
			continue
		}
		tgt, ok := types[edge.Target]
		if !ok {
			continue
		}

		// Annotations attach by association, not sequence flow
		connStyle := "-->"
		if src == diagram.Annotation || tgt == diagram.Annotation {
			connStyle = "-.-"
		}
		if edge.HasLabel() {
			fmt.Fprintf(&sb, "    %s %s|%s| %s\n", edge.Source, connStyle, escapeLabel(edge.LabelText()), edge.Target)
		} else {
			fmt.Fprintf(&sb, "    %s %s %s\n", edge.Source, connStyle, edge.Target)
		}
	}
	return []byte(sb.String()), nil
}

// escapeLabel quotes a label, replacing characters Mermaid would parse.
func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "#quot;")
	label = strings.ReplaceAll(label, "\n", "<br/>")
	return `"` + label + `"`
}

// formatNodeWithShape wraps a label in the Mermaid shape for a node type
func formatNodeWithShape(label string, t diagram.NodeType) string {
	switch t {
	case diagram.StartEvent, diagram.IntermediateEvent:
		return fmt.Sprintf("((%s))", label)
	case diagram.EndEvent:
		return fmt.Sprintf("(((%s)))", label)
	case diagram.Gateway:
		return fmt.Sprintf("{%s}", label)
	case diagram.DataStore:
		return fmt.Sprintf("[(%s)]", label)
	case diagram.Subprocess:
		return fmt.Sprintf("[[%s]]", label)
	case diagram.Annotation, diagram.Document:
		return fmt.Sprintf(">%s]", label)
	case diagram.Task, diagram.UserTask, diagram.ServiceTask:
		return fmt.Sprintf("(%s)", label)
	default:
		return fmt.Sprintf("[%s]", label)
	}
}

// GetFileExtension returns the recommended file extension
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
