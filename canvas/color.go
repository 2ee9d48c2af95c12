package canvas

import "strings"

// ANSI color codes
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	StyleBold    = "\033[1m"
	StyleDim     = "\033[2m"
)

// RoleColors maps cell roles to ANSI codes for ColoredString.
var RoleColors = map[Role]string{
	RoleNodeSelected: StyleBold + ColorCyan,
	RoleEdge:         StyleDim,
	RoleEdgeSelected: ColorYellow,
	RoleLabel:        ColorGreen,
	RoleWaypoint:     ColorMagenta,
	RoleHandle:       ColorBlue,
}

// ColoredString returns the canvas with ANSI colors applied per role.
// Trailing blanks are trimmed the same way as String.
func (c *MatrixCanvas) ColoredString() string {
	var sb strings.Builder
	for y, line := range c.Lines() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		current := ""
		x := 0
		for _, r := range line {
			for c.matrix[y][x] == continuation {
				x++
			}
			color := RoleColors[c.roles[y][x]]
			if color != current {
				if current != "" {
					sb.WriteString(ColorReset)
				}
				sb.WriteString(color)
				current = color
			}
			sb.WriteRune(r)
			x++
		}
		if current != "" {
			sb.WriteString(ColorReset)
		}
	}
	return sb.String()
}
