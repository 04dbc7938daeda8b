package changeforest

// BinarySegmentationResult is the immutable snapshot built from a grown
// [binarySegmentationTree], per spec.md §3/§4.7. It carries the same
// per-node fields as the mutable tree plus, at the root, the auxiliary
// Segments collected during growth.
type BinarySegmentationResult struct {
	Start, Stop int

	OptimizerResult      *OptimizerResult
	ModelSelectionResult ModelSelectionResult

	Left, Right *BinarySegmentationResult

	Segments []OptimizerResult
}

// fromTree consumes tree, recursively converting children, and returns an
// immutable record — a builder that moves optimizer results out of the
// mutable node into the immutable result node, per spec.md §9.
func fromTree(tree *binarySegmentationTree) *BinarySegmentationResult {
	if tree == nil {
		return nil
	}
	return &BinarySegmentationResult{
		Start:                tree.start,
		Stop:                 tree.stop,
		OptimizerResult:      tree.optimizerResult,
		ModelSelectionResult: tree.modelSelectionResult,
		Left:                 fromTree(tree.left),
		Right:                fromTree(tree.right),
	}
}

// withSegments attaches the auxiliary segments vector for diagnostics.
// Only meaningful on the root node.
func (r *BinarySegmentationResult) withSegments(segments []OptimizerResult) *BinarySegmentationResult {
	r.Segments = segments
	return r
}

// SplitPoints returns the in-order vector of change points: this node's
// left subtree's split points, then (if significant) this node's own
// best split, then the right subtree's split points. Strictly increasing
// by construction, per spec.md §8.
func (r *BinarySegmentationResult) SplitPoints() []int {
	if r == nil || !r.ModelSelectionResult.IsSignificant || r.OptimizerResult == nil {
		return nil
	}
	points := r.Left.SplitPoints()
	points = append(points, r.OptimizerResult.BestSplit)
	points = append(points, r.Right.SplitPoints()...)
	return points
}
