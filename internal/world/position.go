package world

import (
	"fmt"
	"strings"
)

// Position is a tile coordinate. X is the column, Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four unit vectors an entity can face.
type Direction int

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

var directionNames = map[Direction]string{
	DirDown:  "down",
	DirUp:    "up",
	DirLeft:  "left",
	DirRight: "right",
}

// Vector returns the (dx, dy) offset for the direction.
func (d Direction) Vector() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 1
	}
}

// DirectionOf maps a unit step back to its direction. Returns false unless
// exactly one axis is non-zero and that axis is -1 or 1.
func DirectionOf(dx, dy int) (Direction, bool) {
	switch {
	case dx == 0 && dy == 1:
		return DirDown, true
	case dx == 0 && dy == -1:
		return DirUp, true
	case dx == -1 && dy == 0:
		return DirLeft, true
	case dx == 1 && dy == 0:
		return DirRight, true
	}
	return DirDown, false
}

// ParseDirection accepts the long names as well as the single letter forms
// used by some map files (z/q/s/d and u/d/l/r).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "s", "south":
		return DirDown, nil
	case "up", "z", "u", "north":
		return DirUp, nil
	case "left", "q", "l", "west":
		return DirLeft, nil
	case "right", "d", "r", "east":
		return DirRight, nil
	}
	return DirDown, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Rect is a tile footprint anchored at its top-left corner.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Contains reports whether p lies inside the footprint. The right and bottom
// edges are exclusive.
func (r Rect) Contains(p Position) bool {
	return r.X <= p.X && p.X < r.X+r.W && r.Y <= p.Y && p.Y < r.Y+r.H
}

// Origin returns the top-left tile of the footprint.
func (r Rect) Origin() Position {
	return Position{X: r.X, Y: r.Y}
}
