package editor

// SelectNode selects a single node, clearing any edge selection.
func (e *Editor) SelectNode(id string) bool {
	if _, ok := e.diagram.NodeByID(id); !ok {
		return false
	}
	e.selectedNode, e.selectedEdge = id, ""
	e.syncSelection()
	return true
}

// SelectEdge selects a single edge, clearing any node selection.
func (e *Editor) SelectEdge(id string) bool {
	if _, ok := e.diagram.EdgeByID(id); !ok {
		return false
	}
	e.selectedNode, e.selectedEdge = "", id
	e.syncSelection()
	return true
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() {
	e.selectedNode, e.selectedEdge = "", ""
	e.syncSelection()
}

// Selection returns the selected node id and edge id. At most one is set.
func (e *Editor) Selection() (node, edge string) {
	return e.selectedNode, e.selectedEdge
}

// syncSelection drops selections that no longer exist and mirrors the
// selection onto the view-only Selected flags.
func (e *Editor) syncSelection() {
	if _, ok := e.diagram.NodeByID(e.selectedNode); !ok {
		e.selectedNode = ""
	}
	if _, ok := e.diagram.EdgeByID(e.selectedEdge); !ok {
		e.selectedEdge = ""
	}
	for i := range e.diagram.Nodes {
		e.diagram.Nodes[i].Selected = e.diagram.Nodes[i].ID == e.selectedNode
	}
	for i := range e.diagram.Edges {
		e.diagram.Edges[i].Selected = e.diagram.Edges[i].ID == e.selectedEdge
	}
}

// DeleteSelected removes the selected node, with every edge attached to it,
// or the selected edge.
func (e *Editor) DeleteSelected() bool {
	switch {
	case e.selectedNode != "":
		id := e.selectedNode
		if err := e.diagram.RemoveNode(id); err != nil {
			e.log.Warn("delete node", "node", id, "err", err)
			return false
		}
		e.selectedNode = ""
		e.manager.Prune()
		e.syncSelection()
		e.commit("node deleted", "node", id)
		return true

	case e.selectedEdge != "":
		id := e.selectedEdge
		if err := e.diagram.RemoveEdge(id); err != nil {
			e.log.Warn("delete edge", "edge", id, "err", err)
			return false
		}
		e.selectedEdge = ""
		e.manager.Prune()
		e.syncSelection()
		e.commit("edge deleted", "edge", id)
		return true
	}
	return false
}
