package changeforest

import "errors"

// Errors returned by [Control] builder methods for invalid hyperparameter
// values. These are fatal at construction time.
var (
	ErrInvalidRelativeSegmentLength = errors.New("minimal_relative_segment_length must be strictly between 0 and 0.5")
	ErrInvalidModelSelectionAlpha   = errors.New("model_selection_alpha must be strictly between 0 and 1")
	ErrInvalidSeededSegmentsAlpha   = errors.New("seeded_segments_alpha must be strictly between 0 and 1")
	ErrInvalidForbiddenSegment      = errors.New("forbidden segments must be specified as (a, b) with a <= b")
)

// Errors returned by [ChangeForest] for invalid top-level arguments.
var (
	ErrInvalidMethod           = errors.New("method must be one of \"knn\", \"random_forest\", \"change_in_mean\"")
	ErrInvalidSegmentationType = errors.New("segmentation_type must be one of \"bs\", \"wbs\", \"sbs\"")
	ErrEmptyInput              = errors.New("X must have at least one row and one column")
)

// errSegmentTooSmall is returned by an [Optimizer] when an interval is too
// short to contain any candidate split. It is recovered by the caller:
// [growTree] turns the offending node into a leaf.
var errSegmentTooSmall = errors.New("segment too small to split")

// errNoCandidates is returned when forbidden_segments removes every
// otherwise-valid candidate split. Recovered the same way as
// errSegmentTooSmall.
var errNoCandidates = errors.New("no split candidates after applying forbidden segments")
