package forest

import (
	"math/rand"
	"testing"
)

func TestFitOOBSeparatesCleanStep(t *testing.T) {
	n := 200
	X := make([][]float64, n)
	y := make([]float64, n)
	rng := rand.New(rand.NewSource(1))
	for i := range X {
		x0 := rng.Float64()
		X[i] = []float64{x0}
		if x0 < 0.5 {
			y[i] = 0
		} else {
			y[i] = 1
		}
	}

	params := Params{NTrees: 50, MaxDepth: 6, MaxFeatures: 1, NJobs: 2, Seed: 7}
	predictions := FitOOB(X, y, params, func(i int) float64 { return 0.5 })

	var correct int
	for i, p := range predictions {
		if (p >= 0.5) == (y[i] >= 0.5) {
			correct++
		}
	}
	accuracy := float64(correct) / float64(n)
	if accuracy < 0.9 {
		t.Fatalf("expected out-of-bag accuracy >= 0.9 on a clean step function, got %f", accuracy)
	}
}

func TestFitOOBFallsBackWhenNeverOutOfBag(t *testing.T) {
	n := 10
	X := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}}
	y := make([]float64, n)

	// A single bootstrap sample of n draws lands about 63% of the rows in
	// the bag; with NTrees=1 those rows are never out-of-bag, exercising
	// the fallback path.
	params := Params{NTrees: 1, MaxDepth: 2, MaxFeatures: 1, NJobs: 1, Seed: 0}
	called := make([]bool, n)
	predictions := FitOOB(X, y, params, func(i int) float64 {
		called[i] = true
		return -1
	})

	fellBack := false
	for i, c := range called {
		if c && predictions[i] != -1 {
			t.Fatalf("row %d: fallback was invoked but its value was not used", i)
		}
		if c {
			fellBack = true
		}
	}
	if !fellBack {
		t.Fatalf("expected at least one row to fall back with only 1 tree")
	}
}

func TestFitReturnsUsableRegressor(t *testing.T) {
	n := 100
	X := make([][]float64, n)
	y := make([]float64, n)
	rng := rand.New(rand.NewSource(2))
	for i := range X {
		x0 := rng.Float64()
		X[i] = []float64{x0}
		y[i] = x0 * x0
	}

	params := Params{NTrees: 30, MaxDepth: 8, MaxFeatures: 1, NJobs: 4, Seed: 3}
	r := Fit(X, y, params)

	got := r.Predict([]float64{0.5})
	if got < 0 || got > 1 {
		t.Fatalf("prediction %f out of the expected [0, 1] range for y = x^2, x in [0, 1]", got)
	}
}

func TestBootstrapCoversAndExcludesRows(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	inBag, inx := bootstrap(20, rng)

	if len(inx) != 20 {
		t.Fatalf("expected 20 resampled indices, got %d", len(inx))
	}
	var anyOut bool
	for _, b := range inBag {
		if !b {
			anyOut = true
		}
	}
	if !anyOut {
		t.Fatalf("expected at least one row to be left out of a 20-draw bootstrap sample")
	}
}
