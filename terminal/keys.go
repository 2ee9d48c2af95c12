package terminal

import (
	"github.com/gdamore/tcell/v2"

	"flowedit/editor"
	"flowedit/geometry"
	"flowedit/layout"
	"flowedit/routing"
)

// handleKey applies app-level keys and passes the rest to the editor.
// It returns false when the user quits.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	// While a label is open every key belongs to it
	if a.editor.Manager().Editing() == nil && ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r == 'y':
			a.copySelectedPath()
			return true
		case r == 'c':
			a.armConnect()
			return true
		case r >= '1' && r <= '9':
			a.addPaletteItem(int(r - '1'))
			return true
		}
	}

	if k, ok := translateKey(ev); ok {
		if k.SpecialKey == editor.KeyEscape {
			a.connectFrom = ""
		}
		a.editor.HandleKey(k)
	}
	return true
}

// translateKey maps a tcell key to the editor's key model.
func translateKey(ev *tcell.EventKey) (editor.KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return editor.Special(editor.KeyEnter), true
	case tcell.KeyEscape:
		return editor.Special(editor.KeyEscape), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return editor.Special(editor.KeyBackspace), true
	case tcell.KeyDelete:
		return editor.Special(editor.KeyDelete), true
	case tcell.KeyTab:
		return editor.Special(editor.KeyTab), true
	case tcell.KeyUp:
		return editor.Special(editor.KeyArrowUp), true
	case tcell.KeyDown:
		return editor.Special(editor.KeyArrowDown), true
	case tcell.KeyLeft:
		return editor.Special(editor.KeyArrowLeft), true
	case tcell.KeyRight:
		return editor.Special(editor.KeyArrowRight), true
	case tcell.KeyCtrlZ:
		return editor.CtrlKey('z'), true
	case tcell.KeyCtrlY:
		return editor.CtrlKey('y'), true
	case tcell.KeyCtrlS:
		return editor.CtrlKey('s'), true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return editor.CtrlKey(ev.Rune()), true
		}
		return editor.Key(ev.Rune()), true
	}
	return editor.KeyEvent{}, false
}

// copySelectedPath puts the SVG path data of the selected edge on the clipboard.
func (a *App) copySelectedPath() {
	_, id := a.editor.Selection()
	if id == "" {
		a.setStatus("select an edge to copy its path")
		return
	}
	d := a.editor.Diagram()
	edge, _ := d.EdgeByID(id)
	r, ok := routing.RouteEdge(d, edge)
	if !ok {
		a.setStatus("edge %s has no route", id)
		return
	}
	if err := a.copy(r.Path.SVG()); err != nil {
		a.log.Warn("clipboard write failed", "error", err)
		a.setStatus("copy failed: %v", err)
		return
	}
	a.setStatus("copied path of %s", id)
}

func (a *App) addPaletteItem(i int) {
	items := editor.Palette()
	if i >= len(items) {
		return
	}
	n := a.editor.AddNode(items[i].Type)
	a.editor.SelectNode(n.ID)
	a.setStatus("added %s", n.Data.Label)
}

// armConnect makes the next click on a node connect the selected node to it.
func (a *App) armConnect() {
	id, _ := a.editor.Selection()
	if id == "" {
		a.setStatus("select a node to connect from")
		return
	}
	a.connectFrom = id
	a.setStatus("click the node to connect %s to", id)
}

// connectTo finishes an armed connection at the node under at. It reports
// whether the press was used.
func (a *App) connectTo(at geometry.ScreenPoint) bool {
	from := a.connectFrom
	if from == "" {
		return false
	}
	a.connectFrom = ""

	d := a.editor.Diagram()
	src, ok := d.NodeByID(from)
	tgt, hit := a.editor.NodeAt(at)
	if !ok || !hit {
		a.setStatus("connection cancelled")
		return true
	}
	srcSide, tgtSide := layout.FacingSides(src, tgt)
	edge, err := a.editor.Connect(src.ID, srcSide, tgt.ID, tgtSide)
	if err != nil {
		a.setStatus("connect failed: %v", err)
		return true
	}
	a.editor.SelectEdge(edge.ID)
	a.setStatus("connected %s to %s", src.ID, tgt.ID)
	return true
}
