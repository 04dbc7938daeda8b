package forest

import (
	"math/rand"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Params bundles the hyperparameters of the regression-forest oracle.
type Params struct {
	NTrees      int
	MaxDepth    int
	MaxFeatures int // resolved column count, not a MaxFeatures policy
	NJobs       int // <= 0 means use every available core
	Seed        int64
}

// Regressor is a bagged ensemble of CART regression trees, fit with
// bootstrap resampling, grounded on wlattner/rf's forest.Regressor.Fit
// worker-pool pattern but bounded with an errgroup instead of hand-rolled
// channels. FitOOB builds one, uses it for its out-of-bag predictions,
// and discards it; Predict lets a caller reuse the fitted ensemble
// in-sample, e.g. to sanity-check an OOB estimate against a plain
// in-sample one.
type Regressor struct {
	trees []*tree
}

// Predict averages every tree's prediction for x.
func (r *Regressor) Predict(x []float64) float64 {
	var sum float64
	for _, tr := range r.trees {
		sum += tr.predict(x)
	}
	return sum / float64(len(r.trees))
}

// fit bootstrap-fits params.NTrees trees on X, y across an errgroup-bounded
// worker pool, returning the ensemble plus the per-row out-of-bag sum and
// count needed by both FitOOB and any future full-OOB consumer.
func fit(X [][]float64, y []float64, params Params) (*Regressor, []float64, []int) {
	n := len(y)
	nWorkers := params.NJobs
	if nWorkers <= 0 {
		nWorkers = runtime.NumCPU()
	}

	oobSum := make([]float64, n)
	oobCount := make([]int, n)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(nWorkers)

	trees := make([]*tree, params.NTrees)
	for t := 0; t < params.NTrees; t++ {
		t := t
		g.Go(func() error {
			rng := rand.New(rand.NewSource(params.Seed + int64(t)))
			inBag, inx := bootstrap(n, rng)

			tr := newTree(params.MaxDepth, params.MaxFeatures, 1, rng)
			tr.fit(X, y, inx)
			trees[t] = tr

			var localSum []float64
			var localIdx []int
			for i := 0; i < n; i++ {
				if !inBag[i] {
					localSum = append(localSum, tr.predict(X[i]))
					localIdx = append(localIdx, i)
				}
			}

			mu.Lock()
			for k, i := range localIdx {
				oobSum[i] += localSum[k]
				oobCount[i]++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return &Regressor{trees: trees}, oobSum, oobCount
}

// FitOOB bootstrap-fits params.NTrees trees on X, y and returns the
// out-of-bag prediction for each row, substituting fallback[i] for rows
// that never landed out-of-bag in any tree (can happen with few trees or
// small segments), per spec.md §4.5.
func FitOOB(X [][]float64, y []float64, params Params, fallback func(i int) float64) []float64 {
	_, oobSum, oobCount := fit(X, y, params)

	n := len(y)
	predictions := make([]float64, n)
	for i := 0; i < n; i++ {
		if oobCount[i] > 0 {
			predictions[i] = oobSum[i] / float64(oobCount[i])
		} else {
			predictions[i] = fallback(i)
		}
	}
	return predictions
}

// Fit bootstrap-fits params.NTrees trees on X, y and returns the ensemble
// for direct in-sample prediction via Regressor.Predict.
func Fit(X [][]float64, y []float64, params Params) *Regressor {
	r, _, _ := fit(X, y, params)
	return r
}

// bootstrap draws n indices with replacement, returning both the
// resampled index list and an inBag mask over the original n rows.
func bootstrap(n int, rng *rand.Rand) (inBag []bool, inx []int) {
	inBag = make([]bool, n)
	inx = make([]int, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		inx[i] = j
		inBag[j] = true
	}
	return inBag, inx
}
