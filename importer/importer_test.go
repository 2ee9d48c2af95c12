package importer_test

import (
	"errors"
	"strings"
	"testing"

	"flowedit/diagram"
	"flowedit/export"
	"flowedit/geometry"
	"flowedit/importer"
)

func TestMermaidFlowchart(t *testing.T) {
	src := strings.Join([]string{
		"%% order handling",
		"graph TD",
		"    A[Start] --> B{Ok?}",
		"    B -- yes --> C(((Done)))",
		`    B -.->|"no"| A;`,
		"    B ==> D[(Orders)]",
		"    subgraph extra",
		"    E",
		"    end",
		"    classDef hot fill:#f00",
	}, "\n")

	d, err := importer.NewMermaidImporter().Import(src)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	wantNodes := []struct {
		id    string
		typ   diagram.NodeType
		label string
	}{
		{"A", diagram.Task, "Start"},
		{"B", diagram.Gateway, "Ok?"},
		{"C", diagram.EndEvent, "Done"},
		{"D", diagram.DataStore, "Orders"},
		{"E", diagram.Task, "E"},
	}
	if len(d.Nodes) != len(wantNodes) {
		t.Fatalf("Nodes = %d, want %d", len(d.Nodes), len(wantNodes))
	}
	for i, want := range wantNodes {
		n := d.Nodes[i]
		if n.ID != want.id || n.Type != want.typ || n.Data.Label != want.label {
			t.Errorf("Node %d = %s %s %q, want %s %s %q", i, n.ID, n.Type, n.Data.Label, want.id, want.typ, want.label)
		}
	}

	if len(d.Edges) != 4 {
		t.Fatalf("Edges = %d, want 4", len(d.Edges))
	}
	labels := []string{"", "yes", "no", ""}
	for i, e := range d.Edges {
		if e.LabelText() != labels[i] {
			t.Errorf("Edge %d label = %q, want %q", i, e.LabelText(), labels[i])
		}
		if e.ID == "" || e.Type != diagram.InteractiveEdgeType || e.Mode != diagram.Orthogonal {
			t.Errorf("Edge %d not normalised: %+v", i, e)
		}
	}
	if back := d.Edges[2]; back.Style == nil || !back.Style.Dashed {
		t.Error("-.-> should import as a dashed edge")
	}
	if thick := d.Edges[3]; thick.Style == nil || thick.Style.StrokeWidth != 3 {
		t.Error("==> should import as a thick edge")
	}

	// TD puts each layer below the previous one
	a, _ := d.NodeByID("A")
	b, _ := d.NodeByID("B")
	c, _ := d.NodeByID("C")
	if !(a.Position.Y < b.Position.Y && b.Position.Y < c.Position.Y) {
		t.Errorf("Layers not top to bottom: A %v, B %v, C %v", a.Position, b.Position, c.Position)
	}
	if e := d.Edges[0]; e.SourceSide != geometry.Bottom || e.TargetSide != geometry.Top {
		t.Errorf("A -> B sides = %v/%v, want bottom/top", e.SourceSide, e.TargetSide)
	}
}

func TestMermaidRoundTrip(t *testing.T) {
	orig := &diagram.Diagram{
		Nodes: []diagram.Node{
			{ID: "node_1", Type: diagram.StartEvent, Data: diagram.NodeData{Label: "Begin"}},
			{ID: "node_2", Type: diagram.Task, Data: diagram.NodeData{Label: "Check\n\"stock\""}},
			{ID: "node_3", Type: diagram.Gateway, Data: diagram.NodeData{Label: "In stock?"}},
			{ID: "node_4", Type: diagram.Subprocess, Data: diagram.NodeData{Label: "Ship"}},
			{ID: "node_5", Type: diagram.Annotation, Data: diagram.NodeData{Label: "note"}},
		},
	}
	yes := "yes"
	orig.Edges = []diagram.Edge{
		{ID: "e1", Source: "node_1", Target: "node_2"},
		{ID: "e2", Source: "node_2", Target: "node_3"},
		{ID: "e3", Source: "node_3", Target: "node_4", Label: &yes},
		{ID: "e4", Source: "node_5", Target: "node_3"},
	}

	text, err := export.NewMermaidExporter().Export(orig)
	if err != nil {
		t.Fatal(err)
	}
	d, err := importer.NewMermaidImporter().Import(string(text))
	if err != nil {
		t.Fatalf("Import of exported text: %v\n%s", err, text)
	}

	for i, want := range orig.Nodes {
		got := d.Nodes[i]
		if got.ID != want.ID || got.Type != want.Type || got.Data.Label != want.Data.Label {
			t.Errorf("Node %d = %s %s %q, want %s %s %q", i, got.ID, got.Type, got.Data.Label, want.ID, want.Type, want.Data.Label)
		}
	}
	for i, want := range orig.Edges {
		got := d.Edges[i]
		if got.Source != want.Source || got.Target != want.Target || got.LabelText() != want.LabelText() {
			t.Errorf("Edge %d = %s->%s %q", i, got.Source, got.Target, got.LabelText())
		}
	}
	if s := d.Edges[3].Style; s == nil || !s.Dashed {
		t.Error("Annotation association should come back dashed")
	}
}

func TestMermaidErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"no header", "A --> B", "not a Mermaid flowchart"},
		{"empty", "  \n%% nothing\n", "not a Mermaid flowchart"},
		{"unterminated label", "flowchart LR\nA[\"open --> B", "line 2"},
		{"unterminated shape", "flowchart LR\n\nA(open", "line 3"},
		{"dangling link", "flowchart LR\nA -->", "line 2"},
		{"junk", "flowchart LR\nA ?? B", "line 2"},
	}
	for _, tt := range tests {
		_, err := importer.NewMermaidImporter().Import(tt.src)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := importer.NewImporterRegistry()

	tests := []struct {
		content string
		format  string
	}{
		{`{"nodes": [], "edges": []}`, "JSON"},
		{"flowchart LR\nA --> B", "Mermaid"},
		{"%% comment\ngraph TD\nA", "Mermaid"},
		{"# Notes\n\n```mermaid\ngraph LR\nA --> B\n```\n", "Markdown"},
	}
	for _, tt := range tests {
		imp, err := r.DetectFormat(tt.content)
		if err != nil {
			t.Errorf("DetectFormat(%q): %v", tt.content, err)
			continue
		}
		if imp.GetFormatName() != tt.format {
			t.Errorf("DetectFormat(%q) = %s, want %s", tt.content, imp.GetFormatName(), tt.format)
		}
	}

	if _, err := r.Import("sequenceDiagram\nA->>B: hi"); !errors.Is(err, importer.ErrUnknownFormat) {
		t.Errorf("Import of unsupported text: %v, want ErrUnknownFormat", err)
	}
	if _, err := r.ImportWithFormat("x", "plantuml"); !errors.Is(err, importer.ErrUnknownFormat) {
		t.Errorf("ImportWithFormat(plantuml): %v, want ErrUnknownFormat", err)
	}

	d, err := r.ImportWithFormat("flowchart LR\nA --> B", "mermaid")
	if err != nil || len(d.Nodes) != 2 || len(d.Edges) != 1 {
		t.Errorf("ImportWithFormat(mermaid) = %+v, %v", d, err)
	}

	if imp, ok := r.ForPath("flows/order.MMD"); !ok || imp.GetFormatName() != "Mermaid" {
		t.Error("ForPath should find the Mermaid importer by extension")
	}
	if _, ok := r.ForPath("order.txt"); ok {
		t.Error("ForPath should not match unknown extensions")
	}
	if got := r.GetAvailableFormats(); len(got) != 3 {
		t.Errorf("GetAvailableFormats = %v", got)
	}
}

func TestMarkdownImporter(t *testing.T) {
	doc := "# Order flow\n\n" +
		"```mermaid\nflowchart LR\n    a[Receive] --> b[Ship]\n```\n\n" +
		"```json\n{\"nodes\": [{\"id\": \"node_1\", \"type\": \"task\", \"position\": {\"x\": 0, \"y\": 0}}], \"edges\": []}\n```\n"

	if _, err := importer.NewMarkdownImporter(0).Import(doc); err == nil {
		t.Error("Block 0 should be ambiguous with two blocks")
	}

	d, err := importer.NewMarkdownImporter(1).Import(doc)
	if err != nil {
		t.Fatalf("Import block 1: %v", err)
	}
	if len(d.Nodes) != 2 || len(d.Edges) != 1 {
		t.Errorf("Mermaid block gave %d nodes and %d edges", len(d.Nodes), len(d.Edges))
	}

	d, err = importer.NewMarkdownImporter(2).Import(doc)
	if err != nil {
		t.Fatalf("Import block 2: %v", err)
	}
	if len(d.Nodes) != 1 || d.Nodes[0].ID != "node_1" {
		t.Errorf("JSON block gave %+v", d.Nodes)
	}

	bad := "```mermaid\nsequenceDiagram\n```"
	if _, err := importer.NewMarkdownImporter(0).Import(bad); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("Bad block error = %v, want the block line", err)
	}

	r := importer.NewImporterRegistry()
	r.Register(importer.NewMarkdownImporter(2))
	imp, ok := r.ForPath("README.md")
	if !ok || imp.(*importer.MarkdownImporter).Block != 2 {
		t.Error("Register should replace the Markdown importer")
	}
	if len(r.GetAvailableFormats()) != 3 {
		t.Error("Register should not add a second Markdown importer")
	}
	if !importer.IsMarkdownPath("docs/Flow.MD") || importer.IsMarkdownPath("flow.mmd") {
		t.Error("IsMarkdownPath mismatch")
	}
}
