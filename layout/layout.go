// Package layout positions nodes for diagrams that arrive without
// coordinates, such as imported flowcharts.
package layout

import (
	"strings"

	"flowedit/diagram"
	"flowedit/geometry"
)

// Direction is the way edges flow in a layered layout.
type Direction int

const (
	LeftToRight Direction = iota
	TopToBottom
	RightToLeft
	BottomToTop
)

// ParseDirection reads a flowchart direction (LR, TD, TB, RL, BT).
// Anything else is left to right.
func ParseDirection(s string) Direction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TB", "TD":
		return TopToBottom
	case "RL":
		return RightToLeft
	case "BT":
		return BottomToTop
	default:
		return LeftToRight
	}
}

func (d Direction) String() string {
	switch d {
	case TopToBottom:
		return "TB"
	case RightToLeft:
		return "RL"
	case BottomToTop:
		return "BT"
	default:
		return "LR"
	}
}

func (d Direction) horizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// FacingSides picks the sides two nodes should be joined on, along the axis
// that separates their centres the most.
func FacingSides(src, tgt diagram.Node) (geometry.Side, geometry.Side) {
	d := tgt.Center().Sub(src.Center())
	if geometry.Abs(d.X) >= geometry.Abs(d.Y) {
		if d.X >= 0 {
			return geometry.Right, geometry.Left
		}
		return geometry.Left, geometry.Right
	}
	if d.Y >= 0 {
		return geometry.Bottom, geometry.Top
	}
	return geometry.Top, geometry.Bottom
}
