package interact

// BeginLabelEdit opens the label editor with the current label, all of it
// selected. Any drag in progress is finished first.
func (c *Controller) BeginLabelEdit() bool {
	e, ok := c.snapshot()
	if !ok {
		return false
	}
	c.finish()
	c.state = EditingLabel
	c.draft = e.LabelText()
	c.selectAll = true
	return true
}

// Draft returns the text being edited and whether it is all selected.
func (c *Controller) Draft() (string, bool) {
	return c.draft, c.selectAll
}

// TypeRune inserts r at the end of the draft, replacing a full selection.
func (c *Controller) TypeRune(r rune) {
	if c.state != EditingLabel {
		return
	}
	if c.selectAll {
		c.draft = ""
		c.selectAll = false
	}
	c.draft += string(r)
}

// DeleteBackward removes the last rune of the draft, or all of it when selected.
func (c *Controller) DeleteBackward() {
	if c.state != EditingLabel {
		return
	}
	if c.selectAll {
		c.draft = ""
		c.selectAll = false
		return
	}
	r := []rune(c.draft)
	if len(r) > 0 {
		c.draft = string(r[:len(r)-1])
	}
}

// CommitLabel stores the draft as the label. An empty draft is stored as
// the empty label, which renders as no label.
func (c *Controller) CommitLabel() bool {
	if c.state != EditingLabel {
		return false
	}
	draft := c.draft
	c.closeEditor()

	e, ok := c.snapshot()
	if !ok {
		return false
	}
	e.SetLabel(draft)
	if !c.env.Store.ReplaceEdge(e) {
		return false
	}
	c.commit(e)
	return true
}

// CancelLabel discards the draft. The stored label is never touched while
// editing, so the previous label stays in place.
func (c *Controller) CancelLabel() {
	if c.state != EditingLabel {
		return
	}
	c.closeEditor()
}

// Blur is focus leaving the label field; it commits like Enter.
func (c *Controller) Blur() bool {
	return c.CommitLabel()
}

func (c *Controller) closeEditor() {
	c.state = Idle
	c.draft = ""
	c.selectAll = false
}
