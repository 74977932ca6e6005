package binomial

import "math"

// Result holds the unit count of each bucket, index k = number of right
// choices.
type Result []int

// Coeff returns C(n, k), accumulated iteratively so intermediate values stay
// small.
func Coeff(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	res := 1.0
	for i := 0; i < k; i++ {
		res *= float64(n - i)
		res /= float64(i + 1)
	}
	return res
}

// PMF returns the probability of exactly k right choices out of n.
func PMF(n, k int, p float64) float64 {
	return Coeff(n, k) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

// Probabilities returns PMF for every bucket 0..n.
func Probabilities(n int, p float64) []float64 {
	if n < 0 {
		return nil
	}
	probs := make([]float64, n+1)
	for k := range probs {
		probs[k] = PMF(n, k, p)
	}
	return probs
}

// Distribution spreads totalUnits over the n+1 buckets. Every bucket is
// rounded on its own, so the sum may differ from totalUnits by up to n.
func Distribution(p, totalUnits float64, n int) Result {
	if n < 0 {
		return Result{}
	}
	dist := make(Result, n+1)
	for k := range dist {
		dist[k] = int(math.Round(PMF(n, k, p) * totalUnits))
	}
	return dist
}

// Total returns the number of units actually placed.
func (r Result) Total() int {
	sum := 0
	for _, c := range r {
		sum += c
	}
	return sum
}

// Drift is the difference between placed and requested units.
func (r Result) Drift(totalUnits float64) float64 {
	return float64(r.Total()) - totalUnits
}

// Max returns the largest bucket count.
func (r Result) Max() int {
	m := 0
	for _, c := range r {
		if c > m {
			m = c
		}
	}
	return m
}

// Floats converts the counts for plotting.
func (r Result) Floats() []float64 {
	out := make([]float64, len(r))
	for i, c := range r {
		out[i] = float64(c)
	}
	return out
}

// Column maps bucket k onto the board column it is drawn under.
func Column(k, center, n int) float64 {
	return float64(center) + float64(k) - float64(n)/2
}

// Mean is the expected number of right choices.
func Mean(n int, p float64) float64 {
	return float64(n) * p
}

// Variance of the number of right choices.
func Variance(n int, p float64) float64 {
	return float64(n) * p * (1 - p)
}
