package export

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"flowedit/diagram"
	"flowedit/routing"
)

var (
	reportTitle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	reportBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	reportHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	reportCell   = lipgloss.NewStyle().Padding(0, 1)
)

// ReportHeaders are the columns of the edge report.
var ReportHeaders = []string{"EDGE", "FROM", "TO", "MODE", "WAYPOINTS", "HANDLES", "LABEL", "ANCHOR", "LENGTH"}

// ReportExporter lists every edge with its routing details as a table.
type ReportExporter struct{}

// NewReportExporter creates a new report exporter
func NewReportExporter() *ReportExporter {
	return &ReportExporter{}
}

// Export renders the edge table
func (e *ReportExporter) Export(d *diagram.Diagram) ([]byte, error) {
	if d == nil {
		return nil, ErrNilDiagram
	}

	rows := ReportRows(d)
	widths := make([]int, len(ReportHeaders))
	for col, h := range ReportHeaders {
		widths[col] = lipgloss.Width(h)
		for _, row := range rows {
			widths[col] = max(widths[col], lipgloss.Width(row[col]))
		}
	}

	// Columns are rendered whole and joined so each keeps its width
	columns := make([]string, len(ReportHeaders))
	for col, h := range ReportHeaders {
		cells := []string{reportHeader.Width(widths[col] + 2).Render(h)}
		for _, row := range rows {
			cells = append(cells, reportCell.Width(widths[col]+2).Render(row[col]))
		}
		columns[col] = lipgloss.JoinVertical(lipgloss.Left, cells...)
	}
	table := reportBorder.Render(lipgloss.JoinHorizontal(lipgloss.Top, columns...))

	title := reportTitle.Render(fmt.Sprintf("%d nodes, %d edges", len(d.Nodes), len(d.Edges)))
	return []byte(lipgloss.JoinVertical(lipgloss.Left, title, table) + "\n"), nil
}

// ReportRows returns the report cells for each edge, in diagram order.
// Edges whose endpoints are missing are reported as unrouted.
func ReportRows(d *diagram.Diagram) [][]string {
	rows := make([][]string, 0, len(d.Edges))
	for _, edge := range d.Edges {
		handles := 0
		for _, w := range edge.Waypoints {
			if w.HandleIn != nil {
				handles++
			}
			if w.HandleOut != nil {
				handles++
			}
		}
		anchor, length := "-", "unrouted"
		if r, ok := routing.RouteEdge(d, edge); ok {
			anchor = r.LabelAnchor.String()
			length = strconv.FormatFloat(r.Path.Length(), 'f', 1, 64)
		}
		rows = append(rows, []string{
			edge.ID,
			edge.Source,
			edge.Target,
			string(diagram.ParseRoutingMode(string(edge.Mode))),
			strconv.Itoa(len(edge.Waypoints)),
			strconv.Itoa(handles),
			edge.LabelText(),
			anchor,
			length,
		})
	}
	return rows
}

// GetFileExtension returns the recommended file extension
func (e *ReportExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ReportExporter) GetFormatName() string {
	return "Edge report"
}
