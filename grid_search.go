package changeforest

// GridSearch evaluates every candidate split via Gain.GainFull and picks
// the argmax, per spec.md §4.4. Works with any [Gain].
type GridSearch struct {
	Gain Gain
}

// NewGridSearch wraps gain as an Optimizer.
func NewGridSearch(gain Gain) *GridSearch {
	return &GridSearch{Gain: gain}
}

func (o *GridSearch) N() int           { return o.Gain.N() }
func (o *GridSearch) Control() Control { return o.Gain.Control() }

func (o *GridSearch) FindBestSplit(start, stop int) (OptimizerResult, error) {
	candidates, err := splitCandidates(start, stop, o.N(), o.Control())
	if err != nil {
		return OptimizerResult{}, err
	}

	full := o.Gain.GainFull(start, stop, candidates)
	result := GainResult{FullGain: full}

	return OptimizerResult{
		Start:       start,
		Stop:        stop,
		BestSplit:   full.BestSplit,
		MaxGain:     full.MaxGain,
		GainResults: []GainResult{result},
	}, nil
}

func (o *GridSearch) ModelSelection(result OptimizerResult) ModelSelectionResult {
	return o.Gain.ModelSelection(result)
}
