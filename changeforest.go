package changeforest

// ChangeForest detects change points in X, an n-by-d matrix of observations
// (each row X[i] a d-dimensional sample), using the given gain/classifier
// method and segmentation strategy. method defaults to "random_forest" and
// segmentationType defaults to "bs" when passed as the empty string,
// matching spec.md §6. Unknown values return an error.
func ChangeForest(X [][]float64, method, segmentationType string, control Control) (*BinarySegmentationResult, error) {
	if method == "" {
		method = "random_forest"
	}
	if segmentationType == "" {
		segmentationType = "bs"
	}

	if len(X) == 0 || len(X[0]) == 0 {
		return nil, ErrEmptyInput
	}

	segType, err := ParseSegmentationType(segmentationType)
	if err != nil {
		return nil, err
	}

	optimizer, err := buildOptimizer(X, method, control)
	if err != nil {
		return nil, err
	}

	segmentation := NewSegmentation(segType, optimizer)

	n := len(X)
	tree := growTree(0, n, n, segmentation)
	result := fromTree(tree).withSegments(segmentation.Segments())

	return result, nil
}

// buildOptimizer wires up the Gain/Classifier/Optimizer combination for
// method, per spec.md §2's data-flow table: change_in_mean uses
// GridSearch over a parametric loss; knn/random_forest use TwoStepSearch
// over a classifier log-likelihood-ratio gain.
func buildOptimizer(X [][]float64, method string, control Control) (Optimizer, error) {
	switch method {
	case "change_in_mean":
		gain := NewChangeInMeanGain(X, control)
		return NewGridSearch(gain), nil
	case "knn":
		classifier := NewKNNClassifier(X, control)
		gain := NewClassifierGain(classifier)
		return NewTwoStepSearch(gain), nil
	case "random_forest":
		classifier := NewRandomForestClassifier(X, control)
		gain := NewClassifierGain(classifier)
		return NewTwoStepSearch(gain), nil
	default:
		return nil, ErrInvalidMethod
	}
}
