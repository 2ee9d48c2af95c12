package canvas

// arms is the set of directions a box-drawing rune connects to.
type arms uint8

const (
	armN arms = 1 << iota
	armE
	armS
	armW
)

// CharacterMerger combines two runes drawn into the same cell.
type CharacterMerger struct {
	arms  map[rune]arms
	glyph map[arms]rune
}

// NewCharacterMerger creates a merger with the light box-drawing rules.
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{
		arms: map[rune]arms{
			'─': armE | armW,
			'│': armN | armS,
			'┌': armE | armS, '╭': armE | armS,
			'┐': armW | armS, '╮': armW | armS,
			'└': armN | armE, '╰': armN | armE,
			'┘': armN | armW, '╯': armN | armW,
			'├': armN | armS | armE,
			'┤': armN | armS | armW,
			'┬': armE | armW | armS,
			'┴': armE | armW | armN,
			'┼': armN | armE | armS | armW,
		},
		glyph: make(map[arms]rune),
	}
	for _, r := range "─│┌┐└┘├┤┬┴┼" {
		m.glyph[m.arms[r]] = r
	}
	return m
}

// Merge returns the rune for new drawn over existing. Line runes join into
// junctions, arrows always win, and anything else is overwritten.
func (m *CharacterMerger) Merge(existing, new rune) rune {
	switch {
	case existing == ' ' || existing == continuation || existing == new:
		return new
	case isArrow(existing):
		return existing
	case isArrow(new):
		return new
	}
	a, okA := m.arms[existing]
	b, okB := m.arms[new]
	if !okA || !okB {
		return new
	}
	if a|b == a {
		return existing
	}
	if r, ok := m.glyph[a|b]; ok {
		return r
	}
	return new
}

func isArrow(r rune) bool {
	switch r {
	case '▶', '◀', '▲', '▼':
		return true
	}
	return false
}
