package changeforest

import (
	"math"

	"golang.org/x/exp/constraints"
)

// eps is the pseudocount added inside logEta to avoid ln(0), per spec.md
// §4.3.
const eps = 1e-6

// logEta computes ln(eps + (1-2*eps)*x), the numerically safeguarded log
// used throughout the classifier gain.
func logEta(x float64) float64 {
	return math.Log(eps + (1-2*eps)*x)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func sum[T constraints.Float | constraints.Integer](data []T) T {
	var s T
	for _, d := range data {
		s += d
	}
	return s
}

func mean[T constraints.Float | constraints.Integer](data []T) float64 {
	if len(data) == 0 {
		return 0
	}
	return float64(sum(data)) / float64(len(data))
}

// argMax returns the index of the largest value in data. Ties keep the
// first (lowest-index) occurrence, matching the upstream grid-search
// optimizer's "first wins" tie-break.
func argMax(data []float64) int {
	best := 0
	bestValue := math.Inf(-1)
	for i, v := range data {
		if v > bestValue {
			best = i
			bestValue = v
		}
	}
	return best
}

// cumulativeColumnSums returns S where S[i][j] = sum_{k<i} X[k][j], with
// S having one more row than X (S[0] is all zeros). Used by the
// change-in-mean gain's lazily computed, memoized cache.
func cumulativeColumnSums(X [][]float64) [][]float64 {
	n := len(X)
	d := 0
	if n > 0 {
		d = len(X[0])
	}
	S := make([][]float64, n+1)
	S[0] = make([]float64, d)
	for i := 0; i < n; i++ {
		row := make([]float64, d)
		copy(row, S[i])
		for j := 0; j < d; j++ {
			row[j] += X[i][j]
		}
		S[i+1] = row
	}
	return S
}
