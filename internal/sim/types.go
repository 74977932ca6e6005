package sim

import (
	"fmt"

	"github.com/san-kum/galton/internal/binomial"
	"github.com/san-kum/galton/internal/walk"
)

const (
	DefaultProbability = 0.5
	DefaultTotalUnits  = 100
)

type Mode int

const (
	Automatic Mode = iota
	Manual
)

func (m Mode) String() string {
	switch m {
	case Automatic:
		return "automatic"
	case Manual:
		return "manual"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Parameters drive the theoretical distribution.
type Parameters struct {
	RightProbability float64
	TotalUnits       float64
	Steps            int
}

func DefaultParameters() Parameters {
	return Parameters{
		RightProbability: DefaultProbability,
		TotalUnits:       DefaultTotalUnits,
		Steps:            walk.DefaultSteps,
	}
}

// Metric accumulates a statistic over completed paths.
type Metric interface {
	Name() string
	Observe(p walk.Path)
	Value() float64
	Reset()
}

type EventKind int

const (
	EventParams EventKind = iota
	EventMode
	EventChoice
	EventComplete
	EventReset
	EventRecompute
)

func (k EventKind) String() string {
	switch k {
	case EventParams:
		return "params"
	case EventMode:
		return "mode"
	case EventChoice:
		return "choice"
	case EventComplete:
		return "complete"
	case EventReset:
		return "reset"
	case EventRecompute:
		return "recompute"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event describes one accepted mutation of a Session.
type Event struct {
	Kind      EventKind
	Mode      Mode
	Params    Parameters
	Direction walk.Direction
	Position  walk.Position
	Completed int
}

// Observer is notified synchronously after every accepted mutation.
type Observer interface {
	OnEvent(e Event)
}

type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Source supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Params       Parameters
	Mode         Mode
	Distribution binomial.Result
	Origin       walk.Position
	Position     walk.Position
	Path         walk.Path
	Choices      []walk.Direction
	Complete     bool
	Completed    []walk.Path
	Stacks       walk.Stacks
	Histogram    []int
	Metrics      map[string]float64
}
