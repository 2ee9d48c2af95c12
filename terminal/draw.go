package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"flowedit/canvas"
	"flowedit/routing"
)

var roleStyles = map[canvas.Role]tcell.Style{
	canvas.RoleNone:         tcell.StyleDefault,
	canvas.RoleNode:         tcell.StyleDefault,
	canvas.RoleNodeSelected: tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	canvas.RoleEdge:         tcell.StyleDefault.Foreground(tcell.ColorSilver),
	canvas.RoleEdgeSelected: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	canvas.RoleLabel:        tcell.StyleDefault.Foreground(tcell.ColorGreen),
	canvas.RoleWaypoint:     tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	canvas.RoleHandle:       tcell.StyleDefault.Foreground(tcell.ColorBlue),
}

var (
	statusStyle = tcell.StyleDefault.Reverse(true)
	inputStyle  = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
)

// Draw renders the diagram and the status line into the screen buffer.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		return
	}

	d := a.editor.Diagram()
	opts := canvas.Options{
		Width:      w,
		Height:     rows,
		CellWidth:  CellWidth,
		CellHeight: CellHeight,
		Transform:  a.editor.Transform(),
	}
	c, err := canvas.Rasterize(d, routing.RouteDiagram(d), opts)
	if err != nil {
		a.log.Error("rasterize failed", "error", err)
		return
	}
	for y := range rows {
		for x := range w {
			r := c.Get(x, y)
			if r == 0 {
				continue
			}
			a.screen.SetContent(x, y, r, nil, roleStyles[c.RoleAt(x, y)])
		}
	}

	a.drawLabelEditor(opts)
	a.drawStatus(w, rows)
}

// drawLabelEditor shows the draft of an open label edit at the label anchor.
func (a *App) drawLabelEditor(opts canvas.Options) {
	ctrl := a.editor.Manager().Editing()
	if ctrl == nil {
		return
	}
	draft, _ := ctrl.Draft()
	res, ok := ctrl.Route()
	if !ok {
		return
	}
	at := opts.CellAt(res.LabelAnchor)
	text := " " + draft + "▏"
	a.drawText(at.X-runewidth.StringWidth(text)/2, at.Y, text, inputStyle)
}

func (a *App) drawStatus(w, y int) {
	for x := range w {
		a.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	left := fmt.Sprintf(" %s  %d%%", a.editor.Tool(), int(a.editor.Transform().Zoom*100+0.5))
	node, edge := a.editor.Selection()
	switch {
	case edge != "":
		e, _ := a.editor.Diagram().EdgeByID(edge)
		state := a.editor.Manager().Controller(edge).State()
		left += fmt.Sprintf("  %s [%s] %s", edge, e.Mode, state)
	case node != "":
		left += "  " + node
	}
	if a.connectFrom != "" {
		left += "  connecting"
	}
	a.drawText(0, y, left, statusStyle)

	if a.status != "" {
		right := a.status + " "
		a.drawText(w-runewidth.StringWidth(right), y, right, statusStyle)
	}
}

func (a *App) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
}
