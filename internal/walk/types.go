package walk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection reports a choice that is neither left nor right.
var ErrInvalidDirection = errors.New("walk: invalid direction")

type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Delta is the horizontal move of one step.
func (d Direction) Delta() int {
	if d == Left {
		return -1
	}
	return 1
}

// ParseDirection accepts l/left/r/right in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// ParseChoices reads a compact choice string such as "RRLRL". Spaces and
// commas are ignored.
func ParseChoices(s string) ([]Direction, error) {
	dirs := make([]Direction, 0, len(s))
	for i, c := range s {
		switch c {
		case ' ', ',', '\t':
			continue
		case 'l', 'L':
			dirs = append(dirs, Left)
		case 'r', 'R':
			dirs = append(dirs, Right)
		default:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidDirection, c, i)
		}
	}
	return dirs, nil
}

// FormatChoices is the inverse of ParseChoices.
func FormatChoices(dirs []Direction) string {
	var b strings.Builder
	for _, d := range dirs {
		if d == Left {
			b.WriteByte('L')
		} else {
			b.WriteByte('R')
		}
	}
	return b.String()
}

// Position is a node of the board lattice. Y is the step index.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Move returns the position one step below in direction d.
func (p Position) Move(d Direction) Position {
	return Position{X: p.X + d.Delta(), Y: p.Y + 1}
}

type Path []Position

func (p Path) Clone() Path {
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// End returns the last position of the path.
func (p Path) End() (Position, bool) {
	if len(p) == 0 {
		return Position{}, false
	}
	return p[len(p)-1], true
}

// Directions recovers the choices that produced the path.
func (p Path) Directions() []Direction {
	if len(p) < 2 {
		return nil
	}
	dirs := make([]Direction, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		if p[i].X > p[i-1].X {
			dirs = append(dirs, Right)
		} else {
			dirs = append(dirs, Left)
		}
	}
	return dirs
}
