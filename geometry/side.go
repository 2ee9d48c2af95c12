package geometry

import "strings"

// Side is the face of a node where an edge attaches.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// String returns the string representation of a Side.
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// ParseSide converts a side name. Unknown names yield Bottom and false.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "t", "n", "north":
		return Top, true
	case "right", "r", "e", "east":
		return Right, true
	case "bottom", "b", "s", "south":
		return Bottom, true
	case "left", "l", "w", "west":
		return Left, true
	default:
		return Bottom, false
	}
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name. Unknown names decode to Bottom.
func (s *Side) UnmarshalText(text []byte) error {
	*s, _ = ParseSide(string(text))
	return nil
}

// Direction returns the unit vector pointing outward from the side.
func (s Side) Direction() Point {
	switch s {
	case Top:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 0, Y: 1}
	}
}

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Right:
		return Left
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return s
	}
}

// IsHorizontal reports whether the side's outward direction lies on the x axis.
func (s Side) IsHorizontal() bool {
	return s == Left || s == Right
}
