// Package interact implements the per-edge pointer and keyboard state machine
// that edits waypoints, freeform handles and labels.
package interact

// State is the interaction an edge controller is currently in.
type State int

const (
	Idle                State = iota
	DraggingNewWaypoint       // pressed on the path, waiting for the drag threshold
	DraggingWaypoint          // moving waypoint Index
	DraggingHandle            // moving one handle of waypoint Index
	DraggingLabel             // moving the label chip
	EditingLabel              // typing into the label field
)

// String returns the state name for display
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case DraggingNewWaypoint:
		return "DRAG_NEW"
	case DraggingWaypoint:
		return "DRAG_WAYPOINT"
	case DraggingHandle:
		return "DRAG_HANDLE"
	case DraggingLabel:
		return "DRAG_LABEL"
	case EditingLabel:
		return "EDIT_LABEL"
	default:
		return "UNKNOWN"
	}
}

// Dragging reports whether s holds a pointer subscription.
func (s State) Dragging() bool {
	return s >= DraggingNewWaypoint && s <= DraggingLabel
}

// HandleKind selects one of the two freeform control handles of a waypoint.
type HandleKind int

const (
	HandleIn HandleKind = iota
	HandleOut
)

func (h HandleKind) String() string {
	if h == HandleIn {
		return "in"
	}
	return "out"
}
