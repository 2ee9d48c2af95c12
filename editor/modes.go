package editor

// Tool is what a primary press on empty canvas does.
type Tool int

const (
	ToolSelect Tool = iota // select and move nodes and edges
	ToolPan                // drag the viewport
)

// String returns the tool name for display
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "SELECT"
	case ToolPan:
		return "PAN"
	default:
		return "UNKNOWN"
	}
}

// SetTool changes the current tool. Switching tools finishes any open label edit.
func (e *Editor) SetTool(t Tool) {
	if e.tool == t {
		return
	}
	e.manager.Blur()
	e.tool = t
	e.log.Debug("tool changed", "tool", t)
}

// Tool returns the current tool.
func (e *Editor) Tool() Tool {
	return e.tool
}
