package interact

import (
	"unicode/utf8"

	"flowedit/diagram"
	"flowedit/geometry"
	"flowedit/routing"
)

// HitKind is the part of an edge under the pointer.
type HitKind int

const (
	HitNone HitKind = iota
	HitHandle
	HitWaypoint
	HitLabel
	HitPath
)

// Hit describes what the pointer landed on. Index and Handle are only
// meaningful for handle and waypoint hits.
type Hit struct {
	Kind   HitKind
	Index  int
	Handle HandleKind
}

// Label chip metrics in canvas units.
const (
	LabelCharWidth = 7.0
	LabelPadding   = 8.0
	LabelHeight    = 20.0
)

// LabelBounds returns the chip rectangle for text centred on anchor.
func LabelBounds(text string, anchor geometry.Point) (lo, hi geometry.Point) {
	w := float64(utf8.RuneCountInString(text))*LabelCharWidth + 2*LabelPadding
	half := geometry.Pt(w/2, LabelHeight/2)
	return anchor.Sub(half), anchor.Add(half)
}

// HitTest finds the part of e nearest the canvas point p within tol, checking
// handles, then waypoints, then the label chip, then the path itself.
func HitTest(e diagram.Edge, res routing.Result, p geometry.Point, tol float64) Hit {
	caps := routing.CapabilitiesOf(e.Mode)

	if caps.Handles {
		for i, w := range e.Waypoints {
			if w.HandleIn != nil && p.Dist(*w.HandleIn) <= tol {
				return Hit{Kind: HitHandle, Index: i, Handle: HandleIn}
			}
			if w.HandleOut != nil && p.Dist(*w.HandleOut) <= tol {
				return Hit{Kind: HitHandle, Index: i, Handle: HandleOut}
			}
		}
	}

	if caps.Waypoints {
		best, bestIdx := tol, -1
		for i, w := range e.Waypoints {
			if d := p.Dist(w.Point); d <= best {
				best, bestIdx = d, i
			}
		}
		if bestIdx >= 0 {
			return Hit{Kind: HitWaypoint, Index: bestIdx}
		}
	}

	if e.HasLabel() {
		lo, hi := LabelBounds(e.LabelText(), res.LabelAnchor)
		if p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y {
			return Hit{Kind: HitLabel, Index: -1}
		}
	}

	if len(res.Path.Commands) > 0 {
		if d, _ := res.Path.Distance(p); d <= tol {
			return Hit{Kind: HitPath, Index: -1}
		}
	}

	return Hit{Kind: HitNone, Index: -1}
}
