// Package canvas rasterises diagrams onto a character grid for the terminal
// editor and the ASCII exporter.
package canvas

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// Role tags what a cell was drawn for, so a front end can style it.
type Role uint8

const (
	RoleNone Role = iota
	RoleNode
	RoleNodeSelected
	RoleEdge
	RoleEdgeSelected
	RoleLabel
	RoleWaypoint
	RoleHandle
)

// continuation marks the cell covered by the right half of a wide rune.
const continuation = '\x00'

// MatrixCanvas is a rune grid with a role per cell.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward, Y downward
//   - All coordinates are in character cells
//
// It is not safe for concurrent writes.
type MatrixCanvas struct {
	matrix [][]rune
	roles  [][]Role
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a blank canvas of the given size in cells.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	c := &MatrixCanvas{
		matrix: make([][]rune, height),
		roles:  make([][]Role, height),
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}
	for y := range height {
		c.matrix[y] = make([]rune, width)
		c.roles[y] = make([]Role, width)
	}
	c.Clear()
	return c, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *MatrixCanvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the rune at (x,y), or a space outside the canvas.
func (c *MatrixCanvas) Get(x, y int) rune {
	if !c.inside(x, y) {
		return ' '
	}
	return c.matrix[y][x]
}

// RoleAt returns the role of the cell at (x,y).
func (c *MatrixCanvas) RoleAt(x, y int) Role {
	if !c.inside(x, y) {
		return RoleNone
	}
	return c.roles[y][x]
}

// Set merges r into the cell at (x,y) so crossing lines form junctions.
func (c *MatrixCanvas) Set(x, y int, r rune, role Role) error {
	if !c.inside(x, y) {
		return ErrOutOfBounds
	}
	c.matrix[y][x] = c.merger.Merge(c.matrix[y][x], r)
	c.roles[y][x] = role
	return nil
}

// Put overwrites the cell at (x,y) without merging. Out of range is ignored.
func (c *MatrixCanvas) Put(x, y int, r rune, role Role) {
	if c.inside(x, y) {
		c.matrix[y][x] = r
		c.roles[y][x] = role
	}
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for y := range c.height {
		for x := range c.width {
			c.matrix[y][x] = ' '
			c.roles[y][x] = RoleNone
		}
	}
}

// Lines returns each row as a string with trailing spaces removed.
func (c *MatrixCanvas) Lines() []string {
	lines := make([]string, c.height)
	var sb strings.Builder
	for y := range c.height {
		sb.Reset()
		for x := range c.width {
			if r := c.matrix[y][x]; r != continuation {
				sb.WriteRune(r)
			}
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// String returns the canvas as newline separated rows.
func (c *MatrixCanvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// BoxStyle is the set of runes a rectangle is drawn with.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

// Box styles
var (
	SquareBox  = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}
	RoundedBox = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	DoubleBox  = BoxStyle{'╔', '╗', '╚', '╝', '═', '║'}
	DashedBox  = BoxStyle{'┌', '┐', '└', '┘', '╌', '╎'}
	HeavyBox   = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
)

// DrawBox draws a rectangle, clipping whatever falls outside the canvas.
// The interior is blanked. It returns ErrOutOfBounds when nothing is visible.
func (c *MatrixCanvas) DrawBox(x, y, width, height int, style BoxStyle, role Role) error {
	if width < 2 || height < 2 {
		return ErrInvalidSize
	}
	if x+width <= 0 || y+height <= 0 || x >= c.width || y >= c.height {
		return ErrOutOfBounds
	}
	right, bottom := x+width-1, y+height-1

	for j := y + 1; j < bottom; j++ {
		for i := x + 1; i < right; i++ {
			c.Put(i, j, ' ', role)
		}
		c.Put(x, j, style.Vertical, role)
		c.Put(right, j, style.Vertical, role)
	}
	for i := x + 1; i < right; i++ {
		c.Put(i, y, style.Horizontal, role)
		c.Put(i, bottom, style.Horizontal, role)
	}
	c.Put(x, y, style.TopLeft, role)
	c.Put(right, y, style.TopRight, role)
	c.Put(x, bottom, style.BottomLeft, role)
	c.Put(right, bottom, style.BottomRight, role)
	return nil
}

// DrawText writes text starting at (x,y). Wide runes take two cells; text
// running off the canvas is clipped.
func (c *MatrixCanvas) DrawText(x, y int, text string, role Role) error {
	if y < 0 || y >= c.height {
		return ErrOutOfBounds
	}
	cx := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cx >= c.width {
			break
		}
		if w == 2 && cx+1 >= c.width {
			break
		}
		c.Put(cx, y, r, role)
		if w == 2 {
			c.Put(cx+1, y, continuation, role)
		}
		cx += w
	}
	return nil
}

// DrawTextCentered writes text centred on column cx.
func (c *MatrixCanvas) DrawTextCentered(cx, y int, text string, role Role) error {
	return c.DrawText(cx-runewidth.StringWidth(text)/2, y, text, role)
}

// Cell is a grid position.
type Cell struct {
	X, Y int
}

// LineCells returns the cells of the straight line from a to b, both included.
func LineCells(a, b Cell) []Cell {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	cells := make([]Cell, 0, max(dx, dy)+1)
	x, y := a.X, a.Y
	err := dx - dy
	for {
		cells = append(cells, Cell{x, y})
		if x == b.X && y == b.Y {
			return cells
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// lineRune picks the rune for a step between two neighbouring cells.
func lineRune(from, to Cell) rune {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// arrowRune is the arrowhead pointing from one cell towards the next.
func arrowRune(from, to Cell) rune {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return '◀'
		}
		return '▶'
	}
	if dy < 0 {
		return '▲'
	}
	return '▼'
}

// Trace expands polyline vertices into a gap-free cell path with no
// repeated consecutive cells.
func Trace(vertices []Cell) []Cell {
	var path []Cell
	for i, v := range vertices {
		if i == 0 {
			path = append(path, v)
			continue
		}
		for _, cell := range LineCells(vertices[i-1], v)[1:] {
			if cell != path[len(path)-1] {
				path = append(path, cell)
			}
		}
	}
	return path
}

// DrawPolyline draws connected line segments through the vertices, turning
// axis changes into rounded corners.
func (c *MatrixCanvas) DrawPolyline(vertices []Cell, role Role) {
	path := Trace(vertices)
	for i, cell := range path {
		c.Set(cell.X, cell.Y, pathRune(path, i), role)
	}
}

func pathRune(path []Cell, i int) rune {
	switch {
	case len(path) == 1:
		return '·'
	case i == 0:
		return lineRune(path[0], path[1])
	case i == len(path)-1:
		return lineRune(path[i-1], path[i])
	}
	in, out := lineRune(path[i-1], path[i]), lineRune(path[i], path[i+1])
	if in == out || !isAxisRune(in) || !isAxisRune(out) {
		return out
	}
	return selectCorner(direction(path[i-1], path[i]), direction(path[i], path[i+1]))
}

func isAxisRune(r rune) bool {
	return r == '─' || r == '│'
}

// selectCorner chooses the corner rune for a turn from one heading to another.
func selectCorner(from, to rune) rune {
	switch {
	case from == 'E' && to == 'S', from == 'N' && to == 'W':
		return '╮'
	case from == 'E' && to == 'N', from == 'S' && to == 'W':
		return '╯'
	case from == 'W' && to == 'S', from == 'N' && to == 'E':
		return '╭'
	default:
		return '╰'
	}
}

// direction returns the compass heading from a to b.
func direction(a, b Cell) rune {
	switch {
	case b.X > a.X:
		return 'E'
	case b.X < a.X:
		return 'W'
	case b.Y > a.Y:
		return 'S'
	default:
		return 'N'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
