// Package stats holds the small numeric kernels the analytics stages share:
// linear-interpolated quantiles, equal-frequency bucketing and basic moments.
// All functions are pure and operate on copies of their input.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInsufficientPopulation is returned when a value set cannot be split into
// the requested number of equal-frequency buckets, either because there are
// fewer values than buckets or because the computed bin edges collapse.
var ErrInsufficientPopulation = errors.New("insufficient population for quantile binning")

// Quantile returns the q-th quantile (0 <= q <= 1) of sorted using linear
// interpolation between closest ranks. sorted must be ascending and non-empty.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// QuantileEdges computes the k+1 bin edges that split values into k
// equal-frequency buckets. The edges are returned for auditability; they are
// data-dependent and recomputed from the input on every call.
func QuantileEdges(values []float64, k int) ([]float64, error) {
	if k < 2 {
		return nil, fmt.Errorf("bucket count %d: need at least 2", k)
	}
	if len(values) < k {
		return nil, fmt.Errorf("%w: %d values for %d buckets", ErrInsufficientPopulation, len(values), k)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	edges := make([]float64, k+1)
	for i := 0; i <= k; i++ {
		edges[i] = Quantile(sorted, float64(i)/float64(k))
	}
	for i := 1; i <= k; i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("%w: duplicate bin edge %v", ErrInsufficientPopulation, edges[i])
		}
	}
	return edges, nil
}

// QuantileBuckets assigns each value to one of k equal-frequency buckets,
// returning zero-based bucket indexes plus the computed edges. Intervals are
// right-closed, (edge[i], edge[i+1]], with the minimum value included in
// bucket 0.
func QuantileBuckets(values []float64, k int) ([]int, []float64, error) {
	edges, err := QuantileEdges(values, k)
	if err != nil {
		return nil, nil, err
	}

	buckets := make([]int, len(values))
	for i, v := range values {
		buckets[i] = bucketOf(v, edges)
	}
	return buckets, edges, nil
}

func bucketOf(v float64, edges []float64) int {
	k := len(edges) - 1
	for j := 1; j < k; j++ {
		if v <= edges[j] {
			return j - 1
		}
	}
	return k - 1
}

// RankFirst returns 1-based ranks with ties broken by input order, matching a
// stable sort by value. Ranking before bucketing is what keeps quantile cuts
// on heavily tied integer metrics from degenerating.
func RankFirst(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, len(values))
	for pos, orig := range idx {
		ranks[orig] = float64(pos + 1)
	}
	return ranks
}

// Sum adds values; an empty input sums to 0.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, reporting ok=false for empty input.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return Sum(values) / float64(len(values)), true
}

// SampleStd returns the sample standard deviation (n-1 denominator). It is
// undefined for fewer than two values, reported as ok=false.
func SampleStd(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	mean, _ := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1)), true
}
