package changeforest

// TwoStepSearch fits three reference guesses, picks the best, and
// refits once more at that guess, per spec.md §4.4. Required for
// [ApproxGain] gains (kNN/random-forest classifier gains); unlike
// [GridSearch] it never refits at every candidate.
type TwoStepSearch struct {
	Gain ApproxGain
}

// NewTwoStepSearch wraps gain as an Optimizer.
func NewTwoStepSearch(gain ApproxGain) *TwoStepSearch {
	return &TwoStepSearch{Gain: gain}
}

func (o *TwoStepSearch) N() int           { return o.Gain.N() }
func (o *TwoStepSearch) Control() Control { return o.Gain.Control() }

func (o *TwoStepSearch) FindBestSplit(start, stop int) (OptimizerResult, error) {
	candidates, err := splitCandidates(start, stop, o.N(), o.Control())
	if err != nil {
		return OptimizerResult{}, err
	}

	guesses := firstRoundGuesses(start, stop, candidates)

	step1 := make([]*ApproxGainResult, 3)
	gainResults := make([]GainResult, 0, 4)
	for i, g := range guesses {
		step1[i] = o.Gain.GainApprox(start, stop, g, candidates)
		gainResults = append(gainResults, GainResult{ApproxGain: step1[i]})
	}

	// Pick in precedence order mid, left, right: ties favor the earlier
	// entry in this order (open question resolved in spec.md §9).
	order := []int{1, 0, 2}
	best := step1[order[0]]
	for _, idx := range order[1:] {
		if step1[idx].MaxGain > best.MaxGain {
			best = step1[idx]
		}
	}

	step2 := o.Gain.GainApprox(start, stop, best.BestSplit, candidates)
	gainResults = append(gainResults, GainResult{ApproxGain: step2})

	return OptimizerResult{
		Start:       start,
		Stop:        stop,
		BestSplit:   step2.BestSplit,
		MaxGain:     step2.MaxGain,
		GainResults: gainResults,
	}, nil
}

func (o *TwoStepSearch) ModelSelection(result OptimizerResult) ModelSelectionResult {
	return o.Gain.ModelSelection(result)
}

// firstRoundGuesses returns the three quartile guesses g1=(3*start+stop)/4,
// g2=(start+stop)/2, g3=(start+3*stop)/4, each snapped to the nearest
// member of candidates, falling back to the quartiles of candidates
// itself if none of the three lie in candidates, per spec.md §4.4.
func firstRoundGuesses(start, stop int, candidates []int) [3]int {
	raw := [3]int{
		(3*start + stop) / 4,
		(start + stop) / 2,
		(start + 3*stop) / 4,
	}

	inCandidates := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		inCandidates[c] = true
	}

	var guesses [3]int
	anyQualify := false
	for i, g := range raw {
		if inCandidates[g] {
			guesses[i] = g
			anyQualify = true
		}
	}
	if anyQualify {
		// Fill in any guess that didn't land on a candidate with the
		// candidate closest to it, so every slot has a usable guess.
		for i, g := range raw {
			if !inCandidates[g] {
				guesses[i] = nearestCandidate(g, candidates)
			}
		}
		return guesses
	}

	n := len(candidates)
	guesses = [3]int{
		candidates[n/4],
		candidates[n/2],
		candidates[min(3*n/4, n-1)],
	}
	return guesses
}

func nearestCandidate(target int, candidates []int) int {
	best := candidates[0]
	bestDist := abs(target - best)
	for _, c := range candidates[1:] {
		if d := abs(target - c); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
