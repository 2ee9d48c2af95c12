package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// MeasureText returns the display width of a string in terminal cells.
func MeasureText(text string) int {
	return runewidth.StringWidth(text)
}

// WrapText wraps text to fit within maxWidth at word boundaries. Words wider
// than the line are broken at rune boundaries.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	width := 0
	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
			width = 0
		}
	}

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if width > 0 && width+1+w <= maxWidth {
			line.WriteByte(' ')
			line.WriteString(word)
			width += 1 + w
			continue
		}
		flush()
		for w > maxWidth {
			head := runewidth.Truncate(word, maxWidth, "")
			if head == "" {
				// a wide rune in a one-cell column; emit it anyway
				head = string([]rune(word)[:1])
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		if word != "" {
			line.WriteString(word)
			width = w
		}
	}
	flush()
	return lines
}

// FitText truncates text to fit within maxWidth, adding ellipsis if needed.
func FitText(text string, maxWidth int, ellipsis string) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(ellipsis) >= maxWidth {
		ellipsis = ""
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}
