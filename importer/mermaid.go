package importer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"flowedit/diagram"
	"flowedit/layout"
)

// MermaidImporter imports Mermaid flowcharts. Nodes are laid out in the
// chart's direction since Mermaid carries no coordinates.
type MermaidImporter struct{}

// NewMermaidImporter creates a new Mermaid importer
func NewMermaidImporter() *MermaidImporter {
	return &MermaidImporter{}
}

var (
	headerPattern = regexp.MustCompile(`^(?:graph|flowchart)(?:\s+([A-Za-z]{2}))?\s*;?$`)
	idPattern     = regexp.MustCompile(`^[A-Za-z0-9_]+`)

	// A -->|label| B, A -.- B, A ==> B ...
	linkPattern = regexp.MustCompile(`^(<-->|-\.->|-\.-|-->|---|==>|===)\s*(?:\|("[^"]*"|[^|]*)\|)?`)
	// A -- label --> B, A -. label .-> B, A == label ==> B
	textLinkPattern = regexp.MustCompile(`^(--|-\.|==)\s+(.+?)\s+(-->|---|\.->|\.-|==>|===)`)

	// Statements with no counterpart in the diagram model
	skipPattern = regexp.MustCompile(`^(subgraph|end|classDef|class|style|linkStyle|click|direction)\b`)
)

// shapes maps node brackets to node types, longest opener first.
var shapes = []struct {
	open, close string
	nodeType    diagram.NodeType
}{
	{"(((", ")))", diagram.EndEvent},
	{"((", "))", diagram.StartEvent},
	{"([", "])", diagram.Task},
	{"[[", "]]", diagram.Subprocess},
	{"[(", ")]", diagram.DataStore},
	{"{{", "}}", diagram.Gateway},
	{"(", ")", diagram.Task},
	{"[", "]", diagram.Task},
	{"{", "}", diagram.Gateway},
	{">", "]", diagram.Annotation},
}

// CanImport checks if the content is a Mermaid flowchart
func (m *MermaidImporter) CanImport(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		return headerPattern.MatchString(line)
	}
	return false
}

// Import converts a Mermaid flowchart to a diagram
func (m *MermaidImporter) Import(content string) (*diagram.Diagram, error) {
	f := &flowchart{d: &diagram.Diagram{}, index: make(map[string]int)}
	header := false
	direction := ""

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if !header {
			match := headerPattern.FindStringSubmatch(line)
			if match == nil {
				return nil, errors.New("not a Mermaid flowchart")
			}
			header, direction = true, match[1]
			continue
		}
		if skipPattern.MatchString(line) {
			continue
		}
		if err := f.statement(strings.TrimSuffix(line, ";")); err != nil {
			return nil, fmt.Errorf("mermaid line %d: %w", i+1, err)
		}
	}
	if !header {
		return nil, errors.New("not a Mermaid flowchart")
	}

	f.d.Edges = diagram.NormalizeEdges(f.d.Edges)
	l := layout.NewLayered()
	l.Direction = layout.ParseDirection(direction)
	if err := l.Layout(f.d); err != nil {
		return nil, err
	}
	return f.d, nil
}

// GetFormatName returns the format name
func (m *MermaidImporter) GetFormatName() string {
	return "Mermaid"
}

// GetFileExtensions returns common file extensions
func (m *MermaidImporter) GetFileExtensions() []string {
	return []string{".mmd", ".mermaid"}
}

type flowchart struct {
	d     *diagram.Diagram
	index map[string]int
}

// link is the connector between two node references.
type link struct {
	label  string
	dashed bool
	thick  bool
}

// statement parses a node declaration or a chain of links such as
// A --> B{"x"} -.-> C.
func (f *flowchart) statement(s string) error {
	from, rest, err := f.nodeRef(s)
	if err != nil {
		return err
	}
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return nil
		}
		l, after, ok := parseLink(rest)
		if !ok {
			return fmt.Errorf("unexpected %q", rest)
		}
		to, remaining, err := f.nodeRef(strings.TrimSpace(after))
		if err != nil {
			return err
		}
		f.addEdge(from, to, l)
		from, rest = to, remaining
	}
}

// nodeRef reads a node id with an optional shape and returns the rest of s.
func (f *flowchart) nodeRef(s string) (string, string, error) {
	id := idPattern.FindString(s)
	if id == "" {
		return "", s, fmt.Errorf("expected a node id at %q", s)
	}
	rest := s[len(id):]

	for _, sh := range shapes {
		body, ok := strings.CutPrefix(rest, sh.open)
		if !ok {
			continue
		}
		var text string
		if quoted, ok := strings.CutPrefix(body, `"`); ok {
			end := strings.Index(quoted, `"`)
			if end < 0 {
				return "", s, fmt.Errorf("unterminated label for %s", id)
			}
			text, body = quoted[:end], quoted[end+1:]
			if !strings.HasPrefix(body, sh.close) {
				return "", s, fmt.Errorf("expected %q after label of %s", sh.close, id)
			}
		} else {
			end := strings.Index(body, sh.close)
			if end < 0 {
				return "", s, fmt.Errorf("unterminated shape for %s", id)
			}
			text, body = body[:end], body[end:]
		}
		n := f.node(id)
		n.Type = sh.nodeType
		n.Data.Label = unescape(strings.TrimSpace(text))
		return id, body[len(sh.close):], nil
	}

	f.node(id)
	return id, rest, nil
}

// node returns the node with id, creating a task labelled with its id on
// first mention.
func (f *flowchart) node(id string) *diagram.Node {
	if i, ok := f.index[id]; ok {
		return &f.d.Nodes[i]
	}
	f.d.Nodes = append(f.d.Nodes, diagram.Node{ID: id, Type: diagram.Task, Data: diagram.NodeData{Label: id}})
	f.index[id] = len(f.d.Nodes) - 1
	return &f.d.Nodes[len(f.d.Nodes)-1]
}

func (f *flowchart) addEdge(from, to string, l link) {
	e := diagram.Edge{Source: from, Target: to}
	if l.label != "" {
		e.SetLabel(l.label)
	}
	if l.dashed || l.thick {
		style := diagram.DefaultEdgeStyle
		style.Dashed = l.dashed
		if l.thick {
			style.StrokeWidth = 3
		}
		e.Style = &style
	}
	f.d.Edges = append(f.d.Edges, e)
}

func parseLink(s string) (link, string, bool) {
	if m := textLinkPattern.FindStringSubmatch(s); m != nil {
		return link{
			label:  unescape(unquote(m[2])),
			dashed: m[1] == "-.",
			thick:  m[1] == "==",
		}, s[len(m[0]):], true
	}
	if m := linkPattern.FindStringSubmatch(s); m != nil {
		return link{
			label:  unescape(unquote(m[2])),
			dashed: strings.Contains(m[1], "."),
			thick:  strings.HasPrefix(m[1], "=="),
		}, s[len(m[0]):], true
	}
	return link{}, s, false
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// unescape reverses the entity and line break escapes used in labels.
func unescape(s string) string {
	s = strings.ReplaceAll(s, "#quot;", `"`)
	s = strings.ReplaceAll(s, "<br/>", "\n")
	return strings.ReplaceAll(s, "<br>", "\n")
}
