package routing

import "flowedit/diagram"

// Capabilities describes which interactive edits a routing mode supports.
type Capabilities struct {
	Waypoints         bool // waypoints can be held and dragged
	Handles           bool // waypoints carry independent in/out handles
	DragCreate        bool // pressing and dragging the path creates a waypoint
	DoubleClickInsert bool // double-clicking the path inserts a waypoint
}

var capabilities = map[diagram.RoutingMode]Capabilities{
	diagram.Straight:   {Waypoints: true, DragCreate: true},
	diagram.Orthogonal: {Waypoints: true, DragCreate: true, DoubleClickInsert: true},
	diagram.Smooth:     {Waypoints: true, DragCreate: true},
	diagram.Freeform:   {Waypoints: true, Handles: true, DragCreate: true, DoubleClickInsert: true},
}

// CapabilitiesOf returns the capabilities of mode. Unknown modes behave as orthogonal.
func CapabilitiesOf(mode diagram.RoutingMode) Capabilities {
	return capabilities[diagram.ParseRoutingMode(string(mode))]
}
