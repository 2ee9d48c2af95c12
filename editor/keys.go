package editor

// HandleKey applies a key press and reports whether the editor used it.
// While a label is being edited every key goes to the label field, so
// Delete and Backspace edit text instead of deleting the selection.
func (e *Editor) HandleKey(k KeyEvent) bool {
	if c := e.manager.Editing(); c != nil {
		switch k.SpecialKey {
		case KeyEnter:
			c.CommitLabel()
		case KeyEscape:
			c.CancelLabel()
		case KeyBackspace, KeyDelete:
			c.DeleteBackward()
		case KeyNone:
			if k.Ctrl {
				return false
			}
			c.TypeRune(k.Rune)
		default:
			return false
		}
		return true
	}

	if k.Ctrl {
		switch k.Rune {
		case 'z':
			return e.Undo()
		case 'y':
			return e.Redo()
		case 's':
			e.Save()
			return true
		}
		return false
	}

	switch k.SpecialKey {
	case KeyDelete, KeyBackspace:
		return e.DeleteSelected()
	case KeyEscape:
		e.ClearSelection()
		return true
	case KeyArrowUp:
		e.Pan(0, panStep)
		return true
	case KeyArrowDown:
		e.Pan(0, -panStep)
		return true
	case KeyArrowLeft:
		e.Pan(panStep, 0)
		return true
	case KeyArrowRight:
		e.Pan(-panStep, 0)
		return true
	case KeyNone:
	default:
		return false
	}

	switch k.Rune {
	case 'v':
		e.SetTool(ToolSelect)
	case 'h':
		e.SetTool(ToolPan)
	case 'm': // cycle routing mode
		if e.selectedEdge == "" {
			return false
		}
		edge, _ := e.diagram.EdgeByID(e.selectedEdge)
		return e.SetRoutingMode(edge.ID, edge.Mode.Next())
	case 'l': // edit label
		if e.selectedEdge == "" {
			return false
		}
		return e.manager.Controller(e.selectedEdge).BeginLabelEdit()
	case '+', '=':
		e.ZoomAt(zoomStep, e.viewCentre())
	case '-':
		e.ZoomAt(1/zoomStep, e.viewCentre())
	case '0':
		e.ResetView()
	default:
		return false
	}
	return true
}
