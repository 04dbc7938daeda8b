package changeforest

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// KNNClassifier predicts via a leave-one-out k-nearest-neighbor vote, per
// spec.md §4.5. The n×n neighbor ranking (order of all rows by ascending
// Euclidean distance from each row) is computed once, lazily, and
// memoized; the core is single-threaded so no synchronization is
// required.
type KNNClassifier struct {
	X       [][]float64
	control Control

	ordering [][]int // nil until first use
}

// NewKNNClassifier returns a Classifier over X using control.
func NewKNNClassifier(X [][]float64, control Control) *KNNClassifier {
	return &KNNClassifier{X: X, control: control}
}

func (c *KNNClassifier) N() int          { return len(c.X) }
func (c *KNNClassifier) Control() Control { return c.control }

func (c *KNNClassifier) getOrdering() [][]int {
	if c.ordering == nil {
		c.ordering = c.calculateOrdering()
	}
	return c.ordering
}

func (c *KNNClassifier) calculateOrdering() [][]int {
	n := len(c.X)
	distances := make([][]float64, n)
	for i := range distances {
		distances[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := squaredDistance(c.X[i], c.X[j])
			distances[i][j] = d
			distances[j][i] = d
		}
	}

	ordering := make([][]int, n)
	for i := 0; i < n; i++ {
		order := make([]int, n)
		for j := range order {
			order[j] = j
		}
		row := distances[i]
		sort.SliceStable(order, func(a, b int) bool {
			return row[order[a]] < row[order[b]]
		})
		ordering[i] = order
	}
	return ordering
}

// squaredDistance returns the squared Euclidean distance between a and b,
// computed via gonum/floats rather than a hand-rolled loop.
func squaredDistance(a, b []float64) float64 {
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	return floats.Dot(diff, diff)
}

// Predict returns, for each row in [start, stop), the fraction of its k
// nearest in-segment neighbors (k = floor(sqrt(stop-start)), self
// excluded for leave-one-out) that fall in [split, stop).
func (c *KNNClassifier) Predict(start, stop, split int) []float64 {
	ordering := c.getOrdering()
	segmentLength := stop - start
	predictions := make([]float64, segmentLength)
	if segmentLength == 0 {
		return predictions
	}
	k := math.Floor(math.Sqrt(float64(segmentLength)))
	kInt := int(k)

	for i := start; i < stop; i++ {
		row := ordering[i]
		found := 0
		right := 0
		for _, j := range row {
			if j == i {
				continue // leave-one-out
			}
			if j < start || j >= stop {
				continue // outside segment
			}
			found++
			if j >= split {
				right++
			}
			if found >= kInt {
				break
			}
		}
		if k == 0 {
			predictions[i-start] = 0
		} else {
			predictions[i-start] = float64(right) / k
		}
	}
	return predictions
}
