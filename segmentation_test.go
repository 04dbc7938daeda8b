package changeforest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticX(n, d int) [][]float64 {
	X := make([][]float64, n)
	for i := range X {
		row := make([]float64, d)
		for j := range row {
			row[j] = float64((i*(j+3))%7) - 3
		}
		X[i] = row
	}
	return X
}

func TestParseSegmentationType(t *testing.T) {
	cases := map[string]SegmentationType{"bs": BS, "wbs": WBS, "sbs": SBS}
	for s, want := range cases {
		got, err := ParseSegmentationType(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseSegmentationType("nonsense")
	assert.ErrorIs(t, err, ErrInvalidSegmentationType)
}

func TestWBSDrawsExactlyNumberOfWildSegments(t *testing.T) {
	X := syntheticX(50, 2)
	control, err := NewControl().WithNumberOfWildSegments(7)
	require.NoError(t, err)

	gain := NewChangeInMeanGain(X, control)
	optimizer := NewGridSearch(gain)
	seg := NewSegmentation(WBS, optimizer)

	assert.Len(t, seg.Segments(), 7)
}

func TestWBSIsReproducibleGivenSameSeed(t *testing.T) {
	X := syntheticX(50, 2)
	control, err := NewControl().WithSeed(123)
	require.NoError(t, err)
	control, err = control.WithNumberOfWildSegments(10)
	require.NoError(t, err)

	buildSegments := func() []OptimizerResult {
		gain := NewChangeInMeanGain(X, control)
		optimizer := NewGridSearch(gain)
		return NewSegmentation(WBS, optimizer).Segments()
	}

	a := buildSegments()
	b := buildSegments()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Start, b[i].Start)
		assert.Equal(t, a[i].Stop, b[i].Stop)
		assert.Equal(t, a[i].BestSplit, b[i].BestSplit)
	}
}

func TestSBSGeneratesMultiScaleSegments(t *testing.T) {
	X := syntheticX(100, 2)
	control := NewControl()

	gain := NewChangeInMeanGain(X, control)
	optimizer := NewGridSearch(gain)
	seg := NewSegmentation(SBS, optimizer)

	segments := seg.Segments()
	require.NotEmpty(t, segments)

	// Layers start at k=1, so the coarsest segments have length
	// ceil(100 * alpha) = ceil(100 / sqrt(2)) = 71.
	hasTopLayer := false
	hasShorter := false
	for _, s := range segments {
		length := s.Stop - s.Start
		if length == 71 {
			hasTopLayer = true
		}
		if length < 71 {
			hasShorter = true
		}
	}
	assert.True(t, hasTopLayer, "SBS should include top-layer segments of length 71")
	assert.True(t, hasShorter, "SBS should include shorter, finer-scale segments")
}

func TestBSGeneratesNoAuxiliarySegments(t *testing.T) {
	X := syntheticX(30, 2)
	control := NewControl()
	gain := NewChangeInMeanGain(X, control)
	optimizer := NewGridSearch(gain)
	seg := NewSegmentation(BS, optimizer)

	assert.Empty(t, seg.Segments())
}

func TestSegmentationFindBestSplitAlwaysAppendsLocalResult(t *testing.T) {
	X := syntheticX(30, 2)
	control := NewControl()
	gain := NewChangeInMeanGain(X, control)
	optimizer := NewGridSearch(gain)
	seg := NewSegmentation(BS, optimizer)

	_, err := seg.FindBestSplit(0, 30)
	require.NoError(t, err)
	assert.Len(t, seg.Segments(), 1)

	_, err = seg.FindBestSplit(0, 15)
	require.NoError(t, err)
	assert.Len(t, seg.Segments(), 2)
}
