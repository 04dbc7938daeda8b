package changeforest

import "math"

// ChangeInMeanGain scores splits by the likelihood-ratio statistic for a
// Gaussian mean shift with homoscedastic variance, aggregated over
// columns, per spec.md §4.2. The per-column cumulative sums are computed
// lazily on first use and memoized; the core is single-threaded so no
// synchronization is needed for the cache.
type ChangeInMeanGain struct {
	X       [][]float64
	control Control

	cumsum [][]float64 // nil until first use
}

// NewChangeInMeanGain returns a Gain over X using control's thresholds.
func NewChangeInMeanGain(X [][]float64, control Control) *ChangeInMeanGain {
	return &ChangeInMeanGain{X: X, control: control}
}

func (g *ChangeInMeanGain) N() int { return len(g.X) }

func (g *ChangeInMeanGain) Control() Control { return g.control }

func (g *ChangeInMeanGain) getCumsum() [][]float64 {
	if g.cumsum == nil {
		g.cumsum = cumulativeColumnSums(g.X)
	}
	return g.cumsum
}

// Loss returns the sum-of-squares loss over [start, stop):
// sum_j [ sum_i x_ij^2 - (sum_i x_ij)^2 / (stop-start) ].
func (g *ChangeInMeanGain) Loss(start, stop int) float64 {
	if start == stop {
		return 0
	}
	ncols := 0
	if len(g.X) > 0 {
		ncols = len(g.X[0])
	}
	n := float64(stop - start)
	var loss float64
	for j := 0; j < ncols; j++ {
		var sq, s float64
		for i := start; i < stop; i++ {
			sq += g.X[i][j] * g.X[i][j]
			s += g.X[i][j]
		}
		loss += sq - s*s/n
	}
	return loss
}

// Gain implements spec.md §4.2:
//
//	sum_j (s1*S[stop,j] + s2*S[start,j] - s*S[split,j])^2 / (s*s1*s2)
func (g *ChangeInMeanGain) Gain(start, stop, split int) float64 {
	if split == start || split == stop {
		return 0
	}

	cumsum := g.getCumsum()
	s1 := float64(split - start)
	s2 := float64(stop - split)
	s := s1 + s2

	var result float64
	for j := range cumsum[0] {
		d := s1*cumsum[stop][j] + s2*cumsum[start][j] - s*cumsum[split][j]
		result += d * d
	}
	return result / (s * s1 * s2)
}

func (g *ChangeInMeanGain) GainFull(start, stop int, candidates []int) *FullGainResult {
	gain := make([]float64, stop-start)
	for i := range gain {
		gain[i] = math.NaN()
	}
	for _, c := range candidates {
		gain[c-start] = g.Gain(start, stop, c)
	}
	return newFullGainResult(start, stop, gain)
}

// ModelSelection declares a split significant iff max_gain exceeds
// minimal_gain_to_split, defaulting to the BIC-motivated ln(n)*(d+1) per
// spec.md §4.2.
func (g *ChangeInMeanGain) ModelSelection(result OptimizerResult) ModelSelectionResult {
	threshold := g.minimalGainToSplit()
	return ModelSelectionResult{IsSignificant: result.MaxGain > threshold}
}

func (g *ChangeInMeanGain) minimalGainToSplit() float64 {
	if g.control.minimalGainToSplit != nil {
		return *g.control.minimalGainToSplit
	}
	ncols := 0
	if len(g.X) > 0 {
		ncols = len(g.X[0])
	}
	return math.Log(float64(len(g.X))) * float64(ncols+1)
}
