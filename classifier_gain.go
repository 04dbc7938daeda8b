package changeforest

import (
	"math"
	"math/rand"
)

// ClassifierGain scores splits via a classifier's log-likelihood ratio,
// per spec.md §4.3. It wraps any [Classifier] (kNN or random forest) and
// implements both [Gain] and [ApproxGain].
type ClassifierGain struct {
	Classifier Classifier
}

// NewClassifierGain wraps classifier as a Gain.
func NewClassifierGain(classifier Classifier) *ClassifierGain {
	return &ClassifierGain{Classifier: classifier}
}

func (g *ClassifierGain) N() int          { return g.Classifier.N() }
func (g *ClassifierGain) Control() Control { return g.Classifier.Control() }

// singleLikelihood implements L(p, g) from spec.md §4.3. Returns 0 when
// either side of the split has <= 1 element.
func singleLikelihood(p []float64, start, stop, split int) float64 {
	if stop-split <= 1 || split-start <= 1 {
		return 0
	}
	cL := float64(stop-start-1) / float64(split-start-1)
	cR := float64(stop-start-1) / float64(stop-split-1)

	var total float64
	for i, x := range p {
		idx := start + i
		if idx < split {
			total += logEta((1 - x) * cL)
		} else {
			total += logEta(x * cR)
		}
	}
	return total
}

// fullLikelihood implements the 2x(stop-start) likelihood matrix Λ from
// spec.md §4.3. Returns an all-zero matrix when either side of the split
// has <= 1 element (matching singleLikelihood's degenerate case).
func fullLikelihood(p []float64, start, stop, split int) [2][]float64 {
	n := stop - start
	var lambda [2][]float64
	lambda[0] = make([]float64, n)
	lambda[1] = make([]float64, n)

	if stop-split <= 1 || split-start <= 1 {
		return lambda
	}

	prior00 := float64(stop-start-1) / float64(split-start-1)
	prior01 := float64(stop-start-1) / float64(split-start)
	prior10 := float64(stop-start-1) / float64(stop-split)
	prior11 := float64(stop-start-1) / float64(stop-split-1)

	for i, x := range p {
		idx := start + i
		if idx < split {
			lambda[0][i] = logEta((1 - x) * prior00)
			lambda[1][i] = logEta(x * prior10)
		} else {
			lambda[0][i] = logEta((1 - x) * prior01)
			lambda[1][i] = logEta(x * prior11)
		}
	}
	return lambda
}

func (g *ClassifierGain) Gain(start, stop, split int) float64 {
	predictions := g.Classifier.Predict(start, stop, split)
	return singleLikelihood(predictions, start, stop, split)
}

func (g *ClassifierGain) GainFull(start, stop int, candidates []int) *FullGainResult {
	gain := make([]float64, stop-start)
	for i := range gain {
		gain[i] = math.NaN()
	}
	for _, c := range candidates {
		gain[c-start] = g.Gain(start, stop, c)
	}
	return newFullGainResult(start, stop, gain)
}

// GainApprox fits the classifier once at guess and derives the gain curve
// G[k] = sum_{i<k}(Λ[0,i]-Λ[1,i]) + sum_i Λ[1,i] for every k in
// [0, stop-start), per spec.md §4.3.
func (g *ClassifierGain) GainApprox(start, stop, guess int, candidates []int) *ApproxGainResult {
	predictions := g.Classifier.Predict(start, stop, guess)
	lambda := fullLikelihood(predictions, start, stop, guess)

	n := stop - start
	gain := make([]float64, n)
	var baseline float64
	for _, v := range lambda[1] {
		baseline += v
	}

	var acc float64
	for i := 0; i < n; i++ {
		gain[i] = acc + baseline
		acc += lambda[0][i] - lambda[1][i]
	}

	// Non-candidate indices carry NaN so the optimizer's argmax ignores
	// them, matching GainFull's contract.
	isCandidate := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		isCandidate[c] = true
	}
	for i := 0; i < n; i++ {
		if !isCandidate[start+i] {
			gain[i] = math.NaN()
		}
	}

	return newApproxGainResult(start, stop, guess, gain, lambda, predictions)
}

// ModelSelection runs the permutation test over the three first-round
// guesses of a [TwoStepSearch] optimizer result, per spec.md §4.3. It
// requires result.GainResults[0:3] to hold ApproxGainResults (i.e.
// result was produced by TwoStepSearch); panics otherwise since this is a
// programming error, not a runtime condition.
func (g *ClassifierGain) ModelSelection(result OptimizerResult) ModelSelectionResult {
	if len(result.GainResults) < 3 {
		panic("changeforest: classifier gain model selection requires a two-step optimizer result")
	}

	type guess struct {
		delta []float64
		base  float64
	}
	guesses := make([]guess, 3)
	observedMax := math.Inf(-1)
	for j := 0; j < 3; j++ {
		approx := result.GainResults[j].ApproxGain
		if approx == nil {
			panic("changeforest: classifier gain model selection requires ApproxGainResults")
		}
		n := len(approx.Likelihoods[0])
		delta := make([]float64, n)
		var base float64
		for i := 0; i < n; i++ {
			delta[i] = approx.Likelihoods[0][i] - approx.Likelihoods[1][i]
			base += approx.Likelihoods[1][i]
		}
		guesses[j] = guess{delta: delta, base: base}
		if approx.MaxGain > observedMax {
			observedMax = approx.MaxGain
		}
	}

	start, stop := result.Start, result.Stop
	n := stop - start
	delta := g.Control().minimalSegmentLength(g.N())

	rng := rand.New(rand.NewSource(int64(g.Control().seed)))
	nPerm := g.Control().modelSelectionNPermutations

	exceed := 0
	for p := 0; p < nPerm; p++ {
		perm := rng.Perm(n)
		exceeded := false
		for j := 0; j < 3 && !exceeded; j++ {
			v := guesses[j].base
			for k := 0; k < n; k++ {
				v += guesses[j].delta[perm[k]]
				if k < delta-1 || k >= n-(delta-1) {
					continue
				}
				if v >= observedMax {
					exceeded = true
					break
				}
			}
		}
		if exceeded {
			exceed++
		}
	}

	pValue := float64(exceed+1) / float64(nPerm+1)
	return ModelSelectionResult{
		IsSignificant: pValue <= g.Control().modelSelectionAlpha,
		PValue:        &pValue,
	}
}
