// Package changeforest detects multiple change points in a multivariate
// numeric time series X ∈ R^{n×d} via binary segmentation: recursively
// split an interval at its most significant change point, until no
// further split is significant.
//
// # Quick Start
//
// Detect change points with the default random-forest classifier gain and
// plain binary segmentation:
//
//	control := changeforest.NewControl()
//	result, err := changeforest.ChangeForest(X, "random_forest", "bs", control)
//	points := result.SplitPoints()
//
// Use the parametric change-in-mean gain instead, which is far cheaper
// when the shift is known to be a mean shift under homoscedastic noise:
//
//	result, err := changeforest.ChangeForest(X, "change_in_mean", "bs", control)
//
// # Segmentation strategies
//
// "bs" (plain binary segmentation) only ever queries the interval being
// split. "wbs" (wild binary segmentation) additionally draws random
// auxiliary intervals up front and reuses their best splits when they
// beat the local optimum. "sbs" (seeded binary segmentation) does the
// same with a deterministic multi-scale family of intervals instead of
// random draws.
//
// # Hyperparameters
//
// [Control] bundles every hyperparameter; build one with [NewControl]
// and its WithX methods, each of which validates its argument.
package changeforest
