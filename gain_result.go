package changeforest

import "math"

// GainResult is the tagged-variant result of scoring all candidate splits
// in an interval, per spec.md §3. Exactly one of FullGain or ApproxGain is
// set; model selection inspects which.
type GainResult struct {
	FullGain   *FullGainResult
	ApproxGain *ApproxGainResult
}

// bestSplit returns the argmax split recorded on whichever variant is set.
func (r GainResult) bestSplit() int {
	if r.FullGain != nil {
		return r.FullGain.BestSplit
	}
	return r.ApproxGain.BestSplit
}

// maxGain returns the recorded max gain on whichever variant is set.
func (r GainResult) maxGain() float64 {
	if r.FullGain != nil {
		return r.FullGain.MaxGain
	}
	return r.ApproxGain.MaxGain
}

// FullGainResult holds the gain at every candidate split in [start, stop);
// Gain[i] is NaN for indices start+i that were not a candidate.
type FullGainResult struct {
	Start, Stop int
	Gain        []float64
	BestSplit   int
	MaxGain     float64
}

func newFullGainResult(start, stop int, gain []float64) *FullGainResult {
	r := &FullGainResult{Start: start, Stop: stop, Gain: gain, BestSplit: start, MaxGain: math.Inf(-1)}
	for i, v := range gain {
		if !math.IsNaN(v) && v > r.MaxGain {
			r.MaxGain = v
			r.BestSplit = start + i
		}
	}
	return r
}

// ApproxGainResult holds the gain curve derived from a single reference
// fit at Guess, plus the likelihoods/predictions needed for classifier
// model selection, per spec.md §4.1 and §4.3.
type ApproxGainResult struct {
	Start, Stop  int
	Guess        int
	Gain         []float64
	Likelihoods  [2][]float64
	Predictions  []float64
	BestSplit    int
	MaxGain      float64
}

func newApproxGainResult(start, stop, guess int, gain []float64, likelihoods [2][]float64, predictions []float64) *ApproxGainResult {
	r := &ApproxGainResult{
		Start: start, Stop: stop, Guess: guess,
		Gain: gain, Likelihoods: likelihoods, Predictions: predictions,
		BestSplit: start, MaxGain: math.Inf(-1),
	}
	for i, v := range gain {
		if !math.IsNaN(v) && v > r.MaxGain {
			r.MaxGain = v
			r.BestSplit = start + i
		}
	}
	return r
}

// OptimizerResult is the outcome of finding the best split in [start, stop):
// best_split in [start, stop), max_gain, and the ordered sequence of
// GainResults produced while searching (one for grid search, step1+step2
// for two-step search). The last element's best_split/max_gain equal the
// outer fields.
type OptimizerResult struct {
	Start, Stop int
	BestSplit   int
	MaxGain     float64
	GainResults []GainResult
}
