package metrics

import (
	"math"

	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/walk"
)

// RightFraction is the share of right moves over every observed step.
type RightFraction struct {
	rights int
	moves  int
}

func NewRightFraction() *RightFraction {
	return &RightFraction{}
}

func (r *RightFraction) Name() string { return "right_fraction" }

func (r *RightFraction) Observe(p walk.Path) {
	if len(p) < 2 {
		return
	}
	r.rights += Rights(p)
	r.moves += len(p) - 1
}

func (r *RightFraction) Value() float64 {
	if r.moves == 0 {
		return 0
	}
	return float64(r.rights) / float64(r.moves)
}

func (r *RightFraction) Reset() {
	r.rights = 0
	r.moves = 0
}

// Defaults returns the metrics attached to a new session.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewEndpointMean(),
		NewEndpointVariance(),
		NewRightFraction(),
	}
}

// TotalVariation is half the L1 distance between the empirical histogram
// (normalised) and a theoretical law. An empty histogram gives 0.
func TotalVariation(hist []int, probs []float64) float64 {
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 0
	}

	n := len(hist)
	if len(probs) > n {
		n = len(probs)
	}
	sum := 0.0
	for k := 0; k < n; k++ {
		emp, theo := 0.0, 0.0
		if k < len(hist) {
			emp = float64(hist[k]) / float64(total)
		}
		if k < len(probs) {
			theo = probs[k]
		}
		sum += math.Abs(emp - theo)
	}
	return sum / 2
}
