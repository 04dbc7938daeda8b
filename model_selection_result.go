package changeforest

// ModelSelectionResult reports whether a proposed split is statistically
// significant, and (for classifier gains) the permutation-test p-value.
// The zero value {false, nil} is the correct default for a node that was
// never tested.
type ModelSelectionResult struct {
	IsSignificant bool
	PValue        *float64
}
