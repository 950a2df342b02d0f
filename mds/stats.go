package mds

import (
	"math"
	"sort"
)

// mean is the unweighted arithmetic mean of v; it returns InvalidValue if
// the result is NaN (e.g. v is empty).
func mean(v []float64) float64 {
	if len(v) == 0 {
		return InvalidValue
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	m := sum / float64(len(v))
	if math.IsNaN(m) {
		return InvalidValue
	}
	return m
}

// stdDev is the sample standard deviation of v. It requires n>=2 and
// returns InvalidValue otherwise or if the result is NaN.
func stdDev(v []float64, avg float64) float64 {
	n := len(v)
	if n < 2 {
		return InvalidValue
	}
	var sumSq float64
	for _, x := range v {
		d := x - avg
		sumSq += d * d
	}
	s := math.Sqrt(sumSq / float64(n-1))
	if math.IsNaN(s) {
		return InvalidValue
	}
	return s
}

// median sorts a copy of v ascending and returns the middle element (odd
// n) or the mean of the two middle elements (even n). Empty returns
// InvalidValue; a singleton returns its only element.
func median(v []float64) float64 {
	n := len(v)
	if n == 0 {
		return InvalidValue
	}
	if n == 1 {
		return v[0]
	}
	cp := make([]float64, n)
	copy(cp, v)
	sort.Float64s(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}
