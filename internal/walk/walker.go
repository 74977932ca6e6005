// Package walk tracks a single path built from left/right decisions on a
// Galton board and the history of paths that reached the bottom.
package walk

import "sort"

// DefaultSteps is the number of decisions per path on the standard board.
const DefaultSteps = 10

// Walker is not safe for concurrent use.
type Walker struct {
	steps     int
	origin    Position
	position  Position
	choices   []Direction
	path      Path
	complete  bool
	completed []Path
}

func New(steps int) *Walker {
	if steps < 0 {
		steps = 0
	}
	w := &Walker{
		steps:  steps,
		origin: Position{X: steps / 2, Y: 0},
	}
	w.Reset()
	return w
}

func (w *Walker) Steps() int         { return w.steps }
func (w *Walker) Origin() Position   { return w.origin }
func (w *Walker) Position() Position { return w.position }
func (w *Walker) Complete() bool     { return w.complete }
func (w *Walker) Taken() int         { return len(w.choices) }
func (w *Walker) Remaining() int     { return w.steps - len(w.choices) }

// Choose moves one step. It reports false and changes nothing once the path
// has all its steps.
func (w *Walker) Choose(d Direction) bool {
	if len(w.choices) >= w.steps {
		return false
	}

	w.choices = append(w.choices, d)
	w.position = w.position.Move(d)
	w.path = append(w.path, w.position)

	if len(w.choices) == w.steps {
		w.complete = true
		w.completed = append(w.completed, w.path.Clone())
	}
	return true
}

// Reset starts a fresh path at the origin. Completed paths are kept. A
// zero-step walker is complete at the origin.
func (w *Walker) Reset() {
	w.position = w.origin
	w.choices = w.choices[:0]
	w.complete = w.steps == 0
	w.path = Path{w.origin}
}

// Clear forgets every completed path and resets.
func (w *Walker) Clear() {
	w.completed = nil
	w.Reset()
}

// Choices returns a copy of the decisions taken on the current path.
func (w *Walker) Choices() []Direction {
	c := make([]Direction, len(w.choices))
	copy(c, w.choices)
	return c
}

// Path returns a copy of the current path.
func (w *Walker) Path() Path {
	return w.path.Clone()
}

// Completed returns copies of every finished path in completion order.
func (w *Walker) Completed() []Path {
	out := make([]Path, len(w.completed))
	for i, p := range w.completed {
		out[i] = p.Clone()
	}
	return out
}

func (w *Walker) CompletedCount() int { return len(w.completed) }

// Bucket converts a terminal position into the number of right choices that
// lead there.
func (w *Walker) Bucket(p Position) int {
	return (p.X - w.origin.X + w.steps) / 2
}

// Stacks groups completed paths by their final position.
func (w *Walker) Stacks() Stacks {
	return GroupByEndpoint(w.completed)
}

// Histogram counts completed paths per bucket, len = steps+1.
func (w *Walker) Histogram() []int {
	hist := make([]int, w.steps+1)
	for _, p := range w.completed {
		end, ok := p.End()
		if !ok {
			continue
		}
		if k := w.Bucket(end); k >= 0 && k < len(hist) {
			hist[k]++
		}
	}
	return hist
}

// Stacks maps a terminal position to the completed paths ending there.
type Stacks map[Position][]Path

// GroupByEndpoint builds Stacks from paths, preserving their order inside
// each group. The paths are copied.
func GroupByEndpoint(paths []Path) Stacks {
	stacks := make(Stacks)
	for _, p := range paths {
		end, ok := p.End()
		if !ok {
			continue
		}
		stacks[end] = append(stacks[end], p.Clone())
	}
	return stacks
}

func (s Stacks) Count(p Position) int {
	return len(s[p])
}

// Positions returns the stack positions ordered by row then column.
func (s Stacks) Positions() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
