package sim

import (
	"github.com/san-kum/galton/internal/binomial"
	"github.com/san-kum/galton/internal/walk"
)

type Session struct {
	params    Parameters
	mode      Mode
	walker    *walk.Walker
	dist      binomial.Result
	dirty     bool
	observers []Observer
	metrics   []Metric
}

func New(params Parameters) *Session {
	if params.Steps < 0 {
		params.Steps = 0
	}
	return &Session{
		params: params,
		mode:   Automatic,
		walker: walk.New(params.Steps),
		dirty:  true,
	}
}

func (s *Session) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Session) AddMetric(m Metric) {
	s.metrics = append(s.metrics, m)
}

func (s *Session) Parameters() Parameters { return s.params }
func (s *Session) Mode() Mode             { return s.mode }
func (s *Session) Manual() bool           { return s.mode == Manual }

// SetProbability is accepted only in automatic mode.
func (s *Session) SetProbability(p float64) bool {
	if s.mode != Automatic {
		return false
	}
	if p == s.params.RightProbability {
		return true
	}
	s.params.RightProbability = p
	s.dirty = true
	s.emit(Event{Kind: EventParams})
	return true
}

// SetTotalUnits is accepted only in automatic mode.
func (s *Session) SetTotalUnits(n float64) bool {
	if s.mode != Automatic {
		return false
	}
	if n == s.params.TotalUnits {
		return true
	}
	s.params.TotalUnits = n
	s.dirty = true
	s.emit(Event{Kind: EventParams})
	return true
}

// SwitchMode moves to the requested mode. Entering manual mode forgets all
// completed paths and starts a fresh one. Asking for the current mode does
// nothing.
func (s *Session) SwitchMode(manual bool) bool {
	target := Automatic
	if manual {
		target = Manual
	}
	if target == s.mode {
		return false
	}

	s.mode = target
	if target == Manual {
		s.walker.Clear()
		for _, m := range s.metrics {
			m.Reset()
		}
	} else {
		s.dirty = true
	}
	s.emit(Event{Kind: EventMode})
	return true
}

func (s *Session) ToggleMode() {
	s.SwitchMode(s.mode == Automatic)
}

// Choose applies one decision in manual mode.
func (s *Session) Choose(d walk.Direction) bool {
	if s.mode != Manual {
		return false
	}
	if !s.walker.Choose(d) {
		return false
	}

	s.emit(Event{Kind: EventChoice, Direction: d})
	if s.walker.Complete() {
		completed := s.walker.Completed()
		last := completed[len(completed)-1]
		for _, m := range s.metrics {
			m.Observe(last)
		}
		s.emit(Event{Kind: EventComplete})
	}
	return true
}

// Reset starts a new path in manual mode, keeping completed paths.
func (s *Session) Reset() bool {
	if s.mode != Manual {
		return false
	}
	s.walker.Reset()
	s.emit(Event{Kind: EventReset})
	return true
}

// Drop finishes a path with random choices weighted by the right
// probability. A completed path is reset first.
func (s *Session) Drop(src Source) bool {
	if s.mode != Manual {
		return false
	}
	if s.walker.Complete() {
		s.Reset()
	}
	for !s.walker.Complete() {
		d := walk.Left
		if src.Float64() < s.params.RightProbability {
			d = walk.Right
		}
		if !s.Choose(d) {
			break
		}
	}
	return true
}

// Distribution returns the theoretical distribution, recomputing it first
// when the parameters changed since the last read.
func (s *Session) Distribution() binomial.Result {
	if s.dirty {
		s.dist = binomial.Distribution(s.params.RightProbability, s.params.TotalUnits, s.params.Steps)
		s.dirty = false
		s.emit(Event{Kind: EventRecompute})
	}
	out := make(binomial.Result, len(s.dist))
	copy(out, s.dist)
	return out
}

// Probabilities returns the per-bucket probabilities for the current
// parameters.
func (s *Session) Probabilities() []float64 {
	return binomial.Probabilities(s.params.Steps, s.params.RightProbability)
}

func (s *Session) Position() walk.Position { return s.walker.Position() }
func (s *Session) Complete() bool          { return s.walker.Complete() }
func (s *Session) CompletedCount() int     { return s.walker.CompletedCount() }
func (s *Session) Completed() []walk.Path  { return s.walker.Completed() }
func (s *Session) Stacks() walk.Stacks     { return s.walker.Stacks() }
func (s *Session) Histogram() []int        { return s.walker.Histogram() }

func (s *Session) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Params:       s.params,
		Mode:         s.mode,
		Distribution: s.Distribution(),
		Origin:       s.walker.Origin(),
		Position:     s.walker.Position(),
		Path:         s.walker.Path(),
		Choices:      s.walker.Choices(),
		Complete:     s.walker.Complete(),
		Completed:    s.walker.Completed(),
		Stacks:       s.walker.Stacks(),
		Histogram:    s.walker.Histogram(),
		Metrics:      s.Metrics(),
	}
}

func (s *Session) emit(e Event) {
	if len(s.observers) == 0 {
		return
	}
	e.Mode = s.mode
	e.Params = s.params
	e.Position = s.walker.Position()
	e.Completed = s.walker.CompletedCount()
	for _, o := range s.observers {
		o.OnEvent(e)
	}
}
