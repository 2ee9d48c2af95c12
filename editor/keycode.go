package editor

// SpecialKey represents non-printing keys the editor reacts to.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

// KeyEvent represents either a regular character or a special key, with the
// Ctrl modifier for shortcuts.
type KeyEvent struct {
	Rune       rune
	SpecialKey SpecialKey
	Ctrl       bool
}

// IsSpecial returns true if this is a special key event
func (k KeyEvent) IsSpecial() bool {
	return k.SpecialKey != KeyNone
}

// Key is a plain character.
func Key(r rune) KeyEvent {
	return KeyEvent{Rune: r}
}

// CtrlKey is a Ctrl+letter shortcut.
func CtrlKey(r rune) KeyEvent {
	return KeyEvent{Rune: r, Ctrl: true}
}

// Special is a non-printing key.
func Special(k SpecialKey) KeyEvent {
	return KeyEvent{SpecialKey: k}
}
