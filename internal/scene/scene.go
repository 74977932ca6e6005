// Package scene describes the board as plain 2D primitives in grid units so
// that the terminal canvas and the SVG exporter draw the same picture.
//
// Columns and rows are board coordinates: row 0 is the top, row Steps is
// where paths end, column Steps/2 is the origin.
package scene

import (
	"strconv"

	"github.com/san-kum/galton/internal/binomial"
	"github.com/san-kum/galton/internal/sim"
)

// StackLimit caps the balls drawn per stack. Labels keep the real count.
const StackLimit = 1000

type Point struct {
	Col, Row float64
}

type BallKind int

const (
	BallTheory BallKind = iota
	BallEndpoint
	BallCurrent
)

// Ball is a marker. Stack counts how many balls sit below it on the same
// cell; renderers lift it by Stack times their ball spacing.
type Ball struct {
	Point
	Stack int
	Kind  BallKind
}

type Segment struct {
	From, To Point
	Faded    bool
}

// Label is drawn half a row below its point.
type Label struct {
	Point
	Text string
}

type Scene struct {
	Cols, Rows int
	Mode       sim.Mode
	Dots       []Point
	Segments   []Segment
	Balls      []Ball
	Labels     []Label
}

// Build lays out a snapshot the way the board is drawn: the dot grid, then
// either the theoretical stacks or the manual paths and endpoint stacks.
func Build(snap sim.Snapshot) Scene {
	steps := snap.Params.Steps
	sc := Scene{
		Cols: steps + 1,
		Rows: steps + 1,
		Mode: snap.Mode,
	}

	for y := 0; y < sc.Rows; y++ {
		for x := 0; x < sc.Cols; x++ {
			sc.Dots = append(sc.Dots, Point{Col: float64(x), Row: float64(y)})
		}
	}

	if snap.Mode == sim.Manual {
		sc.addManual(snap)
	} else {
		sc.addTheory(snap)
	}
	return sc
}

func (sc *Scene) addTheory(snap sim.Snapshot) {
	steps := snap.Params.Steps
	bottom := float64(steps)
	for k, count := range snap.Distribution {
		col := binomial.Column(k, snap.Origin.X, steps)
		for i := 0; i < min(count, StackLimit); i++ {
			sc.Balls = append(sc.Balls, Ball{
				Point: Point{Col: col, Row: bottom},
				Stack: i,
				Kind:  BallTheory,
			})
		}
		sc.Labels = append(sc.Labels, Label{
			Point: Point{Col: col, Row: bottom},
			Text:  strconv.Itoa(count),
		})
	}
}

func (sc *Scene) addManual(snap sim.Snapshot) {
	for _, path := range snap.Completed {
		for i := 1; i < len(path); i++ {
			sc.Segments = append(sc.Segments, Segment{
				From:  Point{Col: float64(path[i-1].X), Row: float64(path[i-1].Y)},
				To:    Point{Col: float64(path[i].X), Row: float64(path[i].Y)},
				Faded: true,
			})
		}
	}

	for i := 1; i < len(snap.Path); i++ {
		sc.Segments = append(sc.Segments, Segment{
			From: Point{Col: float64(snap.Path[i-1].X), Row: float64(snap.Path[i-1].Y)},
			To:   Point{Col: float64(snap.Path[i].X), Row: float64(snap.Path[i].Y)},
		})
	}

	positions := snap.Stacks.Positions()
	for _, pos := range positions {
		pt := Point{Col: float64(pos.X), Row: float64(pos.Y)}
		for i := 0; i < min(len(snap.Stacks[pos]), StackLimit); i++ {
			sc.Balls = append(sc.Balls, Ball{Point: pt, Stack: i, Kind: BallEndpoint})
		}
	}

	if !snap.Complete {
		sc.Balls = append(sc.Balls, Ball{
			Point: Point{Col: float64(snap.Position.X), Row: float64(snap.Position.Y)},
			Kind:  BallCurrent,
		})
	}

	for _, pos := range positions {
		sc.Labels = append(sc.Labels, Label{
			Point: Point{Col: float64(pos.X), Row: float64(pos.Y)},
			Text:  strconv.Itoa(snap.Stacks.Count(pos)),
		})
	}
}

// Bounds returns the column range covered by the grid and every primitive.
// Manual endpoints can land outside the dot grid.
func (sc Scene) Bounds() (minCol, maxCol float64) {
	minCol, maxCol = 0, float64(sc.Cols-1)
	if sc.Cols < 1 {
		maxCol = 0
	}
	grow := func(c float64) {
		if c < minCol {
			minCol = c
		}
		if c > maxCol {
			maxCol = c
		}
	}
	for _, b := range sc.Balls {
		grow(b.Col)
	}
	for _, s := range sc.Segments {
		grow(s.From.Col)
		grow(s.To.Col)
	}
	return minCol, maxCol
}

// MaxStack returns the height of the tallest ball stack.
func (sc Scene) MaxStack() int {
	m := 0
	for _, b := range sc.Balls {
		if b.Stack+1 > m {
			m = b.Stack + 1
		}
	}
	return m
}
