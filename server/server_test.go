package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flowedit/diagram"
	"flowedit/geometry"
)

const testDoc = `{
  "nodes": [
    {"id": "node_1", "type": "task", "position": {"x": 0, "y": 0}, "width": 100, "height": 60, "data": {"label": "Receive"}},
    {"id": "node_2", "type": "gateway", "position": {"x": 300, "y": 0}, "width": 100, "height": 60, "data": {"label": "Approve"}}
  ],
  "edges": [
    {"id": "e1", "source": "node_1", "target": "node_2", "sourceHandle": "right", "targetHandle": "left", "routingMode": "straight"},
    {"source": "node_1", "target": "node_2", "sourceHandle": "bottom", "targetHandle": "bottom"}
  ]
}`

func do(t *testing.T, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	app := New(Config{})
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func errorOf(t *testing.T, data []byte) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("error body %q: %v", data, err)
	}
	return body.Error
}

func TestHealthz(t *testing.T) {
	resp, data := do(t, http.MethodGet, "/healthz", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), `"ok"`) {
		t.Errorf("GET /healthz = %d %s", resp.StatusCode, data)
	}
}

func TestRoute(t *testing.T) {
	body := `{"routingMode": "straight", "source": {"x": 0, "y": 0}, "target": {"x": 100, "y": 0},
		"sourceSide": "right", "targetSide": "left", "waypoints": [{"x": 50, "y": 40}]}`
	resp, data := do(t, http.MethodPost, "/route", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /route = %d %s", resp.StatusCode, data)
	}

	var got RouteResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.D != "M 0 0 L 50 40 L 100 0" {
		t.Errorf("d = %q", got.D)
	}
	if got.LabelAnchor != geometry.Pt(50, 40) {
		t.Errorf("labelAnchor = %v, want the single waypoint", got.LabelAnchor)
	}
	if len(got.Commands) != 3 || got.Mode != diagram.Straight {
		t.Errorf("commands = %d, mode = %q", len(got.Commands), got.Mode)
	}
	if got.Length < 128 || got.Length > 129 {
		t.Errorf("length = %v, want about 128.06", got.Length)
	}
}

func TestRouteLabelPositionAndDefaultMode(t *testing.T) {
	body := `{"routingMode": "zigzag", "source": {"x": 0, "y": 0}, "target": {"x": 100, "y": 100},
		"sourceSide": "right", "targetSide": "left", "labelPosition": {"x": 7, "y": 9}}`
	resp, data := do(t, http.MethodPost, "/route", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /route = %d %s", resp.StatusCode, data)
	}
	var got RouteResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Mode != diagram.Orthogonal {
		t.Errorf("Unknown mode should route orthogonally, got %q", got.Mode)
	}
	if got.LabelAnchor != geometry.Pt(7, 9) {
		t.Errorf("labelAnchor = %v, want the explicit position", got.LabelAnchor)
	}
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name, target, body string
	}{
		{"route garbage", "/route", "{nope"},
		{"normalize garbage", "/normalize", "[1,2"},
		{"render unknown format", "/render/gif", testDoc},
		{"render garbage", "/render/svg", "{"},
	}
	for _, tt := range tests {
		resp, data := do(t, http.MethodPost, tt.target, tt.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", tt.name, resp.StatusCode)
			continue
		}
		if errorOf(t, data) == "" {
			t.Errorf("%s: empty error message", tt.name)
		}
	}
}

func TestNotFound(t *testing.T) {
	resp, data := do(t, http.MethodGet, "/nowhere", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d, want 404", resp.StatusCode)
	}
	if errorOf(t, data) == "" {
		t.Error("404 should carry an error message")
	}
}

func TestNormalize(t *testing.T) {
	resp, data := do(t, http.MethodPost, "/normalize", testDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /normalize = %d %s", resp.StatusCode, data)
	}
	d, err := diagram.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(d.Edges))
	}
	e := d.Edges[1]
	if !strings.HasPrefix(e.ID, "edge_") {
		t.Errorf("Missing id should be generated, got %q", e.ID)
	}
	if e.Type != diagram.InteractiveEdgeType || e.Mode != diagram.Orthogonal || e.Style == nil {
		t.Errorf("Edge not normalised: %+v", e)
	}
	if d.Edges[0].ID != "e1" || d.Edges[0].Mode != diagram.Straight {
		t.Errorf("Valid edge changed: %+v", d.Edges[0])
	}
}

func TestRoutes(t *testing.T) {
	resp, data := do(t, http.MethodPost, "/routes", testDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /routes = %d %s", resp.StatusCode, data)
	}
	var got map[string]RouteResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("routes = %d, want 2", len(got))
	}
	if got["e1"].D != "M 100 30 L 300 30" {
		t.Errorf("e1 d = %q", got["e1"].D)
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		target, body string
		nodes        int
	}{
		{"/import", "flowchart LR\n  a[One] --> b{Two}", 2},
		{"/import/mermaid", "graph TD\n  a --> b --> c", 3},
		{"/import/json", testDoc, 2},
		{"/import/markdown", "# Flow\n\n```mermaid\ngraph LR\n  a --> b\n```\n", 2},
	}
	for _, tt := range tests {
		resp, data := do(t, http.MethodPost, tt.target, tt.body)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status %d %s", tt.target, resp.StatusCode, data)
			continue
		}
		d, err := diagram.Decode(data)
		if err != nil {
			t.Fatalf("%s: %v", tt.target, err)
		}
		if len(d.Nodes) != tt.nodes {
			t.Errorf("%s: %d nodes, want %d", tt.target, len(d.Nodes), tt.nodes)
		}
	}

	resp, data := do(t, http.MethodPost, "/import", "sequenceDiagram\nA->>B: hi")
	if resp.StatusCode != http.StatusBadRequest || errorOf(t, data) == "" {
		t.Errorf("Unknown input: %d %s", resp.StatusCode, data)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		format, contentType, contains string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"ascii", "text/plain", "Receive"},
		{"json", "application/json", `"node_2"`},
		{"mermaid", "text/plain", "flowchart LR"},
	}
	for _, tt := range tests {
		resp, data := do(t, http.MethodPost, "/render/"+tt.format, testDoc)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status %d %s", tt.format, resp.StatusCode, data)
			continue
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Errorf("%s: Content-Type %q, want %q", tt.format, ct, tt.contentType)
		}
		if !bytes.Contains(data, []byte(tt.contains)) {
			t.Errorf("%s: body does not contain %q", tt.format, tt.contains)
		}
	}
}
