// Package forest implements the minimal regression-forest oracle required
// by the "random_forest" changepoint-detection method: a bagged ensemble
// of CART regression trees with out-of-bag scoring. It is adapted from
// github.com/wlattner/rf's tree/forest split, narrowed from a
// general-purpose classifier+regressor package to the single contract
// needed here: fit on 0/1 labels, return OOB predictions per row.
package forest

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// tree is a single CART regression tree: variance-reduction split search
// over a random feature subset, grown with an explicit stack (as in
// wlattner/rf's tree.Regressor.FitInx) rather than recursion.
type tree struct {
	root *node

	maxDepth    int
	maxFeatures int
	minLeaf     int
	rng         *rand.Rand
}

type node struct {
	left, right *node
	splitVar    int
	splitVal    float64
	value       float64
	leaf        bool
}

func newTree(maxDepth, maxFeatures, minLeaf int, rng *rand.Rand) *tree {
	return &tree{maxDepth: maxDepth, maxFeatures: maxFeatures, minLeaf: minLeaf, rng: rng}
}

type stackItem struct {
	n     *node
	inx   []int
	depth int
}

// fit grows the tree on X[inx], y[inx].
func (t *tree) fit(X [][]float64, y []float64, inx []int) {
	nFeatures := len(X[0])
	maxFeatures := t.maxFeatures
	if maxFeatures <= 0 || maxFeatures > nFeatures {
		maxFeatures = nFeatures
	}
	minLeaf := t.minLeaf
	if minLeaf < 1 {
		minLeaf = 1
	}

	features := make([]int, nFeatures)
	for i := range features {
		features[i] = i
	}

	t.root = &node{}
	stack := []stackItem{{n: t.root, inx: inx, depth: 0}}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := w.n

		mean, variance := meanVariance(y, w.inx)
		n.value = mean

		if len(w.inx) < 2*minLeaf || variance <= 1e-12 ||
			(t.maxDepth > 0 && w.depth >= t.maxDepth) {
			n.leaf = true
			continue
		}

		splitVar, splitVal, splitPos, bestDelta := t.bestSplit(X, y, w.inx, variance, features, maxFeatures, minLeaf)
		if splitPos <= 0 {
			n.leaf = true
			continue
		}
		_ = bestDelta

		left, right := partition(X, w.inx, splitVar, splitVal)

		n.left = &node{}
		n.right = &node{}
		n.splitVar = splitVar
		n.splitVal = splitVal

		stack = append(stack,
			stackItem{n: n.left, inx: left, depth: w.depth + 1},
			stackItem{n: n.right, inx: right, depth: w.depth + 1},
		)
	}
}

func (t *tree) bestSplit(X [][]float64, y []float64, inx []int, initialVariance float64, features []int, maxFeatures, minLeaf int) (feature int, val float64, pos int, delta float64) {
	pos = -1
	order := make([]int, maxFeatures)
	perm := t.rng.Perm(len(features))
	copy(order, perm[:maxFeatures])

	xBuf := make([]float64, len(inx))
	idxBuf := make([]int, len(inx))

	for _, f := range order {
		for i, id := range inx {
			xBuf[i] = X[id][f]
			idxBuf[i] = id
		}
		sortByKey(xBuf, idxBuf)

		if xBuf[len(xBuf)-1] <= xBuf[0]+1e-9 {
			continue // constant feature
		}

		v, d, p := bestSplitOnSortedFeature(xBuf, y, idxBuf, minLeaf, initialVariance)
		if d > delta {
			delta = d
			feature = f
			val = v
			pos = p
		}
	}
	return feature, val, pos, delta
}

func bestSplitOnSortedFeature(xSorted []float64, y []float64, idxSorted []int, minLeaf int, initialVariance float64) (val, delta float64, pos int) {
	n := len(xSorted)
	pos = -1

	var sL, ssL float64
	var sR, ssR float64
	for _, id := range idxSorted {
		sR += y[id]
		ssR += y[id] * y[id]
	}

	nLeft, nRight := 0, n
	for i := 1; i < n; i++ {
		yVal := y[idxSorted[i-1]]
		nLeft++
		sL += yVal
		ssL += yVal * yVal
		nRight--
		sR -= yVal
		ssR -= yVal * yVal

		if xSorted[i] <= xSorted[i-1]+1e-9 {
			continue
		}
		if nLeft < minLeaf || nRight < minLeaf {
			continue
		}

		lMean := sL / float64(nLeft)
		lVar := ssL/float64(nLeft) - lMean*lMean
		rMean := sR / float64(nRight)
		rVar := ssR/float64(nRight) - rMean*rMean

		d := initialVariance - (float64(nLeft)/float64(n))*lVar - (float64(nRight)/float64(n))*rVar
		if d > delta {
			delta = d
			val = (xSorted[i-1] + xSorted[i]) / 2
			pos = nLeft
		}
	}
	return val, delta, pos
}

func partition(X [][]float64, inx []int, feature int, val float64) (left, right []int) {
	for _, id := range inx {
		if X[id][feature] <= val {
			left = append(left, id)
		} else {
			right = append(right, id)
		}
	}
	return left, right
}

// meanVariance computes the population mean and variance of y[inx],
// delegating to gonum/stat rather than hand-rolling the two-pass
// reduction (this runs once per node, not per split candidate, so it is
// not on the hot path that justifies the hand-rolled loops in
// bestSplitOnSortedFeature).
func meanVariance(y []float64, inx []int) (mean, variance float64) {
	sample := make([]float64, len(inx))
	for i, idx := range inx {
		sample[i] = y[idx]
	}
	mean, sampleVariance := stat.MeanVariance(sample, nil)
	n := float64(len(inx))
	variance = sampleVariance * (n - 1) / n
	return mean, variance
}

func sortByKey(key []float64, vals []int) {
	idx := make([]int, len(key))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return key[idx[a]] < key[idx[b]] })

	sortedKey := make([]float64, len(key))
	sortedVals := make([]int, len(vals))
	for i, j := range idx {
		sortedKey[i] = key[j]
		sortedVals[i] = vals[j]
	}
	copy(key, sortedKey)
	copy(vals, sortedVals)
}

// predict returns the tree's prediction for X[i].
func (t *tree) predict(x []float64) float64 {
	n := t.root
	for !n.leaf {
		if x[n.splitVar] <= n.splitVal {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}
