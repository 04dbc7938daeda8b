package changeforest

// Optimizer picks the best split inside an interval using a [Gain].
// Implementations: [GridSearch] (any Gain) and [TwoStepSearch] (requires
// an [ApproxGain]).
type Optimizer interface {
	// FindBestSplit returns the best split in [start, stop), or
	// errSegmentTooSmall / errNoCandidates if none exists.
	FindBestSplit(start, stop int) (OptimizerResult, error)

	N() int
	Control() Control

	// ModelSelection delegates to the underlying Gain's model selection.
	ModelSelection(result OptimizerResult) ModelSelectionResult
}
