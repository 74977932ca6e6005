package metrics

import (
	"github.com/san-kum/galton/internal/walk"
)

// Rights counts the right moves along a path.
func Rights(p walk.Path) int {
	n := 0
	for i := 1; i < len(p); i++ {
		if p[i].X > p[i-1].X {
			n++
		}
	}
	return n
}

// EndpointMean is the mean bucket (number of right moves) of observed paths.
type EndpointMean struct {
	count int
	sum   float64
}

func NewEndpointMean() *EndpointMean {
	return &EndpointMean{}
}

func (m *EndpointMean) Name() string { return "endpoint_mean" }

func (m *EndpointMean) Observe(p walk.Path) {
	m.count++
	m.sum += float64(Rights(p))
}

func (m *EndpointMean) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func (m *EndpointMean) Reset() {
	m.count = 0
	m.sum = 0
}

// EndpointVariance tracks the population variance of the bucket using
// Welford's update.
type EndpointVariance struct {
	count int
	mean  float64
	m2    float64
}

func NewEndpointVariance() *EndpointVariance {
	return &EndpointVariance{}
}

func (v *EndpointVariance) Name() string { return "endpoint_variance" }

func (v *EndpointVariance) Observe(p walk.Path) {
	x := float64(Rights(p))
	v.count++
	delta := x - v.mean
	v.mean += delta / float64(v.count)
	v.m2 += delta * (x - v.mean)
}

func (v *EndpointVariance) Value() float64 {
	if v.count == 0 {
		return 0
	}
	return v.m2 / float64(v.count)
}

func (v *EndpointVariance) Reset() {
	v.count = 0
	v.mean = 0
	v.m2 = 0
}
