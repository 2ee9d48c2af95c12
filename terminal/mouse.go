package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"flowedit/canvas"
	"flowedit/geometry"
	"flowedit/interact"
)

// DoubleClickInterval is the longest gap between two presses on the same
// cell that still counts as a double-click.
const DoubleClickInterval = 400 * time.Millisecond

const wheelZoom = 1.1

// clickTracker recognises double-clicks from press times and cells.
type clickTracker struct {
	interval time.Duration
	last     time.Time
	x, y     int
	armed    bool
}

// Press records a press and reports whether it completes a double-click.
func (c *clickTracker) Press(x, y int, at time.Time) bool {
	double := c.armed && x == c.x && y == c.y && at.Sub(c.last) <= c.interval
	// a completed double-click does not start the next one
	c.armed = !double
	c.last, c.x, c.y = at, x, y
	return double
}

// mouseState tracks the primary button between events, since tcell reports
// the buttons held rather than presses and releases.
type mouseState struct {
	held   bool
	double bool // the current press completes a double-click
}

// CellPoint returns the screen pixel at the centre of cell (x,y).
func CellPoint(x, y int) geometry.ScreenPoint {
	return canvas.Options{CellWidth: CellWidth, CellHeight: CellHeight}.ScreenOf(canvas.Cell{X: x, Y: y})
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pe := interact.PointerEvent{Screen: CellPoint(x, y), Button: interact.ButtonPrimary}
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.editor.ZoomAt(wheelZoom, pe.Screen)
	case buttons&tcell.WheelDown != 0:
		a.editor.ZoomAt(1/wheelZoom, pe.Screen)
	case buttons&tcell.Button1 != 0:
		if a.mouse.held {
			a.editor.Bus().Move(pe)
			return
		}
		a.mouse.held = true
		if a.connectTo(pe.Screen) {
			return
		}
		a.mouse.double = a.clicks.Press(x, y, ev.When())
		a.editor.PointerDown(pe)
	case buttons&(tcell.Button2|tcell.Button3) != 0:
		// secondary buttons start nothing
	default:
		if !a.mouse.held {
			return
		}
		a.mouse.held = false
		a.editor.Bus().Up(pe)
		if a.mouse.double {
			a.mouse.double = false
			a.editor.DoubleClick(pe)
		}
	}
}

// cancelPointer abandons any press in progress, as when focus is lost.
func (a *App) cancelPointer() {
	if a.mouse.held || a.editor.Bus().Active() > 0 {
		a.log.Debug("pointer cancelled")
	}
	a.mouse = mouseState{}
	a.editor.Bus().Cancel()
}
