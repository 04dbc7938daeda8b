package changeforest

import "math"

// MaxFeatures selects how many candidate columns a random-forest split
// search considers at each node.
type MaxFeatures struct {
	// Sqrt, when true, uses ceil(sqrt(nFeatures)) columns. All, when true,
	// considers every column. Otherwise N fixes an explicit column count.
	Sqrt bool
	All  bool
	N    int
}

// MaxFeaturesSqrt considers ceil(sqrt(nFeatures)) columns per split, the
// scikit-learn default for regression forests.
func MaxFeaturesSqrt() MaxFeatures { return MaxFeatures{Sqrt: true} }

// MaxFeaturesAll considers every column at each split.
func MaxFeaturesAll() MaxFeatures { return MaxFeatures{All: true} }

// MaxFeaturesN fixes the number of columns considered per split.
func MaxFeaturesN(n int) MaxFeatures { return MaxFeatures{N: n} }

func (m MaxFeatures) resolve(nFeatures int) int {
	switch {
	case m.All:
		return nFeatures
	case m.N > 0:
		return min(m.N, nFeatures)
	default:
		return max(1, int(math.Ceil(math.Sqrt(float64(nFeatures)))))
	}
}

// RandomForestParameters are the hyperparameters passed to the
// [internal/forest] oracle backing the "random_forest" method.
type RandomForestParameters struct {
	// MaxDepth bounds tree depth. Zero or negative means unbounded.
	MaxDepth int
	// MaxFeatures selects how many columns are considered per split.
	MaxFeatures MaxFeatures
	// NJobs bounds the number of goroutines fitting trees concurrently.
	// Zero or negative means use every available core.
	NJobs int
	// NTrees is the ensemble size.
	NTrees int
}

// DefaultRandomForestParameters returns max_depth=8, max_features=sqrt,
// n_jobs=all cores, 100 trees, matching the upstream default control.
func DefaultRandomForestParameters() RandomForestParameters {
	return RandomForestParameters{
		MaxDepth:    8,
		MaxFeatures: MaxFeaturesSqrt(),
		NJobs:       -1,
		NTrees:      100,
	}
}

// ForbiddenSegment excludes candidate splits x with a < x <= b.
type ForbiddenSegment struct {
	A, B int
}

// Control is the immutable hyperparameter bundle threaded through every
// component. Build one with [NewControl] and the WithX methods; each
// mutator validates its argument and returns an error instead of the
// upstream Rust implementation's panic.
type Control struct {
	minimalRelativeSegmentLength float64
	minimalGainToSplit           *float64
	modelSelectionAlpha          float64
	modelSelectionNPermutations  int
	numberOfWildSegments         int
	seededSegmentsAlpha          float64
	seed                         uint64
	randomForestParameters       RandomForestParameters
	forbiddenSegments            []ForbiddenSegment
}

// NewControl returns a Control with the package defaults: 0.01 minimal
// relative segment length, BIC-auto minimal gain to split, 0.02 model
// selection alpha, 199 permutations, 100 wild segments, seeded_segments_alpha
// 1/sqrt(2), seed 0, and [DefaultRandomForestParameters].
func NewControl() Control {
	return Control{
		minimalRelativeSegmentLength: 0.01,
		minimalGainToSplit:           nil,
		modelSelectionAlpha:          0.02,
		modelSelectionNPermutations:  199,
		numberOfWildSegments:         100,
		seededSegmentsAlpha:          1 / math.Sqrt2,
		seed:                         0,
		randomForestParameters:       DefaultRandomForestParameters(),
		forbiddenSegments:            nil,
	}
}

// WithMinimalRelativeSegmentLength sets the fraction of n below which a
// segment is never split. Must be strictly between 0 and 0.5.
func (c Control) WithMinimalRelativeSegmentLength(v float64) (Control, error) {
	if v <= 0 || v >= 0.5 {
		return c, ErrInvalidRelativeSegmentLength
	}
	c.minimalRelativeSegmentLength = v
	return c, nil
}

// WithMinimalGainToSplit overrides the change-in-mean significance
// threshold. Pass nil to restore the BIC-motivated auto default,
// ln(n) * (d + 1).
func (c Control) WithMinimalGainToSplit(v *float64) (Control, error) {
	c.minimalGainToSplit = v
	return c, nil
}

// WithModelSelectionAlpha sets the classifier permutation-test
// significance level. Must be strictly between 0 and 1.
func (c Control) WithModelSelectionAlpha(v float64) (Control, error) {
	if v <= 0 || v >= 1 {
		return c, ErrInvalidModelSelectionAlpha
	}
	c.modelSelectionAlpha = v
	return c, nil
}

// WithModelSelectionNPermutations sets the number of permutations drawn
// in the classifier-gain model-selection test.
func (c Control) WithModelSelectionNPermutations(v int) (Control, error) {
	c.modelSelectionNPermutations = v
	return c, nil
}

// WithNumberOfWildSegments sets how many auxiliary intervals wild binary
// segmentation keeps.
func (c Control) WithNumberOfWildSegments(v int) (Control, error) {
	c.numberOfWildSegments = v
	return c, nil
}

// WithSeededSegmentsAlpha sets the decay parameter for seeded binary
// segmentation. Must be strictly between 0 and 1.
func (c Control) WithSeededSegmentsAlpha(v float64) (Control, error) {
	if v <= 0 || v >= 1 {
		return c, ErrInvalidSeededSegmentsAlpha
	}
	c.seededSegmentsAlpha = v
	return c, nil
}

// WithSeed sets the seed used for wild-segment sampling, permutation
// tests, and random-forest bootstrapping.
func (c Control) WithSeed(v uint64) (Control, error) {
	c.seed = v
	return c, nil
}

// WithRandomForestParameters overrides the random-forest oracle
// hyperparameters.
func (c Control) WithRandomForestParameters(v RandomForestParameters) (Control, error) {
	c.randomForestParameters = v
	return c, nil
}

// WithForbiddenSegments marks segments (a, b) where a <= b as disallowed:
// any candidate split x with a < x <= b is excluded.
func (c Control) WithForbiddenSegments(segments []ForbiddenSegment) (Control, error) {
	for _, s := range segments {
		if s.A > s.B {
			return c, ErrInvalidForbiddenSegment
		}
	}
	c.forbiddenSegments = segments
	return c, nil
}

// minimalSegmentLength returns delta = ceil(minimalRelativeSegmentLength * n).
func (c Control) minimalSegmentLength(n int) int {
	return int(math.Ceil(c.minimalRelativeSegmentLength * float64(n)))
}
